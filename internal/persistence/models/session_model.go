package models

import (
	"time"

	"finstim/experiment"
)

// SessionModel is the GORM model for experiment sessions.
type SessionModel struct {
	ID         string     `gorm:"primaryKey;type:uuid"`
	Protocol   string     `gorm:"not null;type:varchar(255)"`
	StartedAt  time.Time  `gorm:"not null;index"`
	FinishedAt *time.Time `gorm:""`
}

// TableName specifies the table name for GORM.
func (SessionModel) TableName() string {
	return "sessions"
}

// ToDomain converts the GORM model to the domain session.
func (m *SessionModel) ToDomain() *experiment.Session {
	return &experiment.Session{
		ID:        m.ID,
		Protocol:  m.Protocol,
		StartedAt: m.StartedAt,
	}
}

// FromDomain fills the GORM model from the domain session.
func (m *SessionModel) FromDomain(s *experiment.Session) {
	m.ID = s.ID
	m.Protocol = s.Protocol
	m.StartedAt = s.StartedAt
}
