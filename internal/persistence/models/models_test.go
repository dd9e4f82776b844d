package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"finstim/experiment"
)

func TestSessionModelConversion(t *testing.T) {
	s := &experiment.Session{
		ID:        uuid.NewString(),
		Protocol:  "habituation",
		StartedAt: time.Now().UTC(),
	}

	var m SessionModel
	m.FromDomain(s)
	assert.Equal(t, s, m.ToDomain())
	assert.Equal(t, "sessions", m.TableName())
}

func TestStimulusEventModelConversion(t *testing.T) {
	e := &experiment.Event{
		SessionID:    uuid.NewString(),
		Seq:          2,
		StimIndex:    1,
		StimulusName: "BinocularDrift",
		Params:       `{"band_radius":2}`,
		Onset:        1500 * time.Millisecond,
		Offset:       3 * time.Second,
		Frames:       90,
	}

	var m StimulusEventModel
	m.FromDomain(e)
	assert.Equal(t, int64(1500*time.Millisecond), m.OnsetNs)
	assert.Equal(t, e, m.ToDomain())
	assert.Equal(t, "stimulus_events", m.TableName())
}
