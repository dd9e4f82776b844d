package persistence

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"finstim/internal/persistence/models"
)

// NewDBConnection opens the session database. An empty DSN means an
// in-memory database.
func NewDBConnection(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		dsn = ":memory:"
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("persistence: connect to %q: %w", dsn, err)
	}
	return db, nil
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.SessionModel{}, &models.StimulusEventModel{}); err != nil {
		return fmt.Errorf("persistence: migrate schema: %w", err)
	}
	return nil
}

// CloseDB closes the underlying connection.
func CloseDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("persistence: get database instance: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("persistence: close database: %w", err)
	}
	return nil
}
