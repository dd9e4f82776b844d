package persistence

import (
	"context"
	"fmt"
	"sync"
	"time"

	"finstim/experiment"
)

// DBRecorder implements experiment.Recorder on top of the session and
// event repositories. Record runs on the frame loop, so writes go
// through with a bounded timeout rather than blocking indefinitely.
type DBRecorder struct {
	sessions experiment.SessionRepository
	events   experiment.EventRepository
	timeout  time.Duration

	mu      sync.Mutex
	session experiment.Session
	begun   bool
	closed  bool
}

// NewDBRecorder wires a recorder to the given repositories.
func NewDBRecorder(sessions experiment.SessionRepository, events experiment.EventRepository) (*DBRecorder, error) {
	if sessions == nil || events == nil {
		return nil, fmt.Errorf("persistence: recorder needs both repositories")
	}
	return &DBRecorder{
		sessions: sessions,
		events:   events,
		timeout:  5 * time.Second,
	}, nil
}

func (r *DBRecorder) Begin(s experiment.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return fmt.Errorf("persistence: recorder closed")
	}
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	if err := r.sessions.Create(ctx, &s); err != nil {
		return err
	}
	r.session = s
	r.begun = true
	return nil
}

func (r *DBRecorder) Record(e experiment.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return fmt.Errorf("persistence: recorder closed")
	}
	if !r.begun {
		return fmt.Errorf("persistence: Record before Begin")
	}
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	return r.events.Create(ctx, &e)
}

func (r *DBRecorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	if !r.begun {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	return r.sessions.Finish(ctx, r.session.ID, time.Now())
}
