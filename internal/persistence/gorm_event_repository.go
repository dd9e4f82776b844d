package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"finstim/experiment"
	"finstim/internal/logger"
	"finstim/internal/persistence/models"
)

type gormEventRepository struct {
	db  *gorm.DB
	log logger.Logger
}

// NewGormEventRepository creates a GORM-backed EventRepository.
func NewGormEventRepository(db *gorm.DB, log logger.Logger) (experiment.EventRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("persistence: nil database")
	}
	return &gormEventRepository{db: db, log: log}, nil
}

func (r *gormEventRepository) Create(ctx context.Context, e *experiment.Event) error {
	if e.SessionID == "" {
		return fmt.Errorf("persistence: event needs a session id")
	}
	model := &models.StimulusEventModel{}
	model.FromDomain(e)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("persistence: create event: %w", err)
	}
	return nil
}

func (r *gormEventRepository) List(ctx context.Context, query *experiment.EventQuery) ([]*experiment.Event, error) {
	if query == nil {
		query = &experiment.EventQuery{}
	}

	var modelList []*models.StimulusEventModel
	q := r.db.WithContext(ctx).Model(&models.StimulusEventModel{}).Order("onset_ns asc")

	if query.SessionID != "" {
		q = q.Where("session_id = ?", query.SessionID)
	}
	if query.Stimulus != "" {
		q = q.Where("stimulus_name = ?", query.Stimulus)
	}
	if query.Limit > 0 {
		q = q.Limit(query.Limit)
	}
	if query.Offset > 0 {
		q = q.Offset(query.Offset)
	}

	if err := q.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("persistence: list events: %w", err)
	}
	out := make([]*experiment.Event, len(modelList))
	for i, m := range modelList {
		out[i] = m.ToDomain()
	}
	return out, nil
}
