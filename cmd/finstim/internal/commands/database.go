package commands

import (
	"fmt"

	"finstim/experiment"
	"finstim/internal/config"
	"finstim/internal/logger"
	"finstim/internal/persistence"
)

// openDatabase connects, migrates and builds the repositories.
func openDatabase(cfg *config.Config, log logger.Logger) (*persistence.DBRecorder, experiment.SessionRepository, experiment.EventRepository, func(), error) {
	db, err := persistence.NewDBConnection(cfg.Database.DSN)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	cleanup := func() {
		if err := persistence.CloseDB(db); err != nil {
			log.Warn("close database: ", err)
		}
	}

	if err := persistence.Migrate(db); err != nil {
		cleanup()
		return nil, nil, nil, nil, err
	}

	sessions, err := persistence.NewGormSessionRepository(db, log)
	if err != nil {
		cleanup()
		return nil, nil, nil, nil, err
	}
	events, err := persistence.NewGormEventRepository(db, log)
	if err != nil {
		cleanup()
		return nil, nil, nil, nil, err
	}

	rec, err := persistence.NewDBRecorder(sessions, events)
	if err != nil {
		cleanup()
		return nil, nil, nil, nil, fmt.Errorf("failed to create database recorder: %w", err)
	}
	log.Info("session database at ", cfg.Database.DSN)
	return rec, sessions, events, cleanup, nil
}
