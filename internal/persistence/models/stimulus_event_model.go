package models

import (
	"time"

	"finstim/experiment"
)

// StimulusEventModel is the GORM model for presented epochs. Onset and
// offset are stored as nanoseconds of session time.
type StimulusEventModel struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"`
	SessionID    string `gorm:"not null;index;type:uuid"`
	Seq          int    `gorm:"not null"`
	StimIndex    int    `gorm:"not null"`
	StimulusName string `gorm:"not null;index;type:varchar(64)"`
	Params       string `gorm:"type:text"`
	OnsetNs      int64  `gorm:"not null"`
	OffsetNs     int64  `gorm:"not null"`
	Frames       int    `gorm:"not null"`
}

// TableName specifies the table name for GORM.
func (StimulusEventModel) TableName() string {
	return "stimulus_events"
}

// ToDomain converts the GORM model to the domain event.
func (m *StimulusEventModel) ToDomain() *experiment.Event {
	return &experiment.Event{
		SessionID:    m.SessionID,
		Seq:          m.Seq,
		StimIndex:    m.StimIndex,
		StimulusName: m.StimulusName,
		Params:       m.Params,
		Onset:        time.Duration(m.OnsetNs),
		Offset:       time.Duration(m.OffsetNs),
		Frames:       m.Frames,
	}
}

// FromDomain fills the GORM model from the domain event.
func (m *StimulusEventModel) FromDomain(e *experiment.Event) {
	m.SessionID = e.SessionID
	m.Seq = e.Seq
	m.StimIndex = e.StimIndex
	m.StimulusName = e.StimulusName
	m.Params = e.Params
	m.OnsetNs = int64(e.Onset)
	m.OffsetNs = int64(e.Offset)
	m.Frames = e.Frames
}
