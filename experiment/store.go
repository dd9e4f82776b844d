package experiment

import (
	"context"
	"time"
)

// EventQuery filters stored stimulus events.
type EventQuery struct {
	SessionID string
	Stimulus  string
	Limit     int
	Offset    int
}

// SessionRepository stores session records.
type SessionRepository interface {
	Create(ctx context.Context, s *Session) error
	GetByID(ctx context.Context, id string) (*Session, error)
	List(ctx context.Context, limit, offset int) ([]*Session, error)
	// Finish stamps the session end time.
	Finish(ctx context.Context, id string, at time.Time) error
}

// EventRepository stores stimulus presentation events.
type EventRepository interface {
	Create(ctx context.Context, e *Event) error
	List(ctx context.Context, query *EventQuery) ([]*Event, error)
}
