package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"finstim/experiment"
	"finstim/internal/logger"
	"finstim/internal/persistence/models"
)

type gormSessionRepository struct {
	db  *gorm.DB
	log logger.Logger
}

// NewGormSessionRepository creates a GORM-backed SessionRepository.
func NewGormSessionRepository(db *gorm.DB, log logger.Logger) (experiment.SessionRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("persistence: nil database")
	}
	return &gormSessionRepository{db: db, log: log}, nil
}

func (r *gormSessionRepository) Create(ctx context.Context, s *experiment.Session) error {
	if s.ID == "" {
		return fmt.Errorf("persistence: session needs an id")
	}
	model := &models.SessionModel{}
	model.FromDomain(s)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("persistence: create session: %w", err)
	}
	r.log.Info("stored session ", s.ID, " for protocol ", s.Protocol)
	return nil
}

func (r *gormSessionRepository) GetByID(ctx context.Context, id string) (*experiment.Session, error) {
	var model models.SessionModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("persistence: session %s not found", id)
		}
		return nil, fmt.Errorf("persistence: fetch session: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormSessionRepository) List(ctx context.Context, limit, offset int) ([]*experiment.Session, error) {
	var modelList []*models.SessionModel
	q := r.db.WithContext(ctx).Model(&models.SessionModel{}).Order("started_at desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	if err := q.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("persistence: list sessions: %w", err)
	}
	out := make([]*experiment.Session, len(modelList))
	for i, m := range modelList {
		out[i] = m.ToDomain()
	}
	return out, nil
}

func (r *gormSessionRepository) Finish(ctx context.Context, id string, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&models.SessionModel{}).
		Where("id = ?", id).Update("finished_at", at)
	if res.Error != nil {
		return fmt.Errorf("persistence: finish session: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("persistence: session %s not found", id)
	}
	return nil
}
