//go:build integration
// +build integration

package persistence

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"finstim/experiment"
	"finstim/internal/logger"
)

// TestContext holds the test database and repositories.
type TestContext struct {
	DB       *gorm.DB
	Sessions experiment.SessionRepository
	Events   experiment.EventRepository
}

// SetupTestDB opens an in-memory database with automatic cleanup.
func SetupTestDB(t *testing.T) *TestContext {
	t.Helper()

	db, err := NewDBConnection("")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = CloseDB(db)
	})
	require.NoError(t, Migrate(db))

	log := logger.NewConsoleLogger(logger.LevelError)

	sessions, err := NewGormSessionRepository(db, log)
	require.NoError(t, err)
	events, err := NewGormEventRepository(db, log)
	require.NoError(t, err)

	return &TestContext{DB: db, Sessions: sessions, Events: events}
}

// CreateTestSession builds a session with a fresh id.
func CreateTestSession(t *testing.T, protocol string) *experiment.Session {
	t.Helper()
	return &experiment.Session{
		ID:        uuid.NewString(),
		Protocol:  protocol,
		StartedAt: time.Now(),
	}
}

// CreateTestEvent builds an event within the given session.
func CreateTestEvent(t *testing.T, sessionID string, seq int, name string) *experiment.Event {
	t.Helper()
	return &experiment.Event{
		SessionID:    sessionID,
		Seq:          seq,
		StimIndex:    seq % 2,
		StimulusName: name,
		Onset:        time.Duration(seq) * time.Second,
		Offset:       time.Duration(seq+1) * time.Second,
		Frames:       60,
	}
}
