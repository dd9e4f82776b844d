package experiment

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Session identifies one run of a protocol.
type Session struct {
	ID        string    `json:"id"`
	Protocol  string    `json:"protocol"`
	StartedAt time.Time `json:"started_at"`
}

// Event is one presented epoch: which stimulus, when it went on and
// off in session time, and how many frames it was shown for.
type Event struct {
	SessionID    string        `json:"session_id"`
	Seq          int           `json:"seq"`
	StimIndex    int           `json:"stim_index"`
	StimulusName string        `json:"stimulus_name"`
	Params       string        `json:"params,omitempty"`
	Onset        time.Duration `json:"onset_ns"`
	Offset       time.Duration `json:"offset_ns"`
	Frames       int           `json:"frames"`
}

// Recorder persists a session and its events. Implementations must
// tolerate Record being called from the frame loop.
type Recorder interface {
	Begin(s Session) error
	Record(e Event) error
	Close() error
}

// NopRecorder discards everything.
type NopRecorder struct{}

func (NopRecorder) Begin(Session) error { return nil }
func (NopRecorder) Record(Event) error  { return nil }
func (NopRecorder) Close() error        { return nil }

// JSONRecorder accumulates events in memory and writes a single JSON
// document on Close. It covers rigs that run without a database.
type JSONRecorder struct {
	mu      sync.Mutex
	path    string
	dir     string
	session Session
	events  []Event
	closed  bool
}

// NewJSONRecorder creates a recorder writing to path on Close. Parent
// directories are created as needed.
func NewJSONRecorder(path string) (*JSONRecorder, error) {
	if path == "" {
		return nil, fmt.Errorf("experiment: empty record path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("experiment: create record dir: %w", err)
		}
	}
	return &JSONRecorder{path: path}, nil
}

// NewSessionDirRecorder creates a recorder that writes one file per
// session into dir, named after the session ID so sessions started
// within the same second never collide.
func NewSessionDirRecorder(dir string) (*JSONRecorder, error) {
	if dir == "" {
		return nil, fmt.Errorf("experiment: empty record dir")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("experiment: create record dir: %w", err)
	}
	return &JSONRecorder{dir: dir}, nil
}

func (r *JSONRecorder) Begin(s Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return fmt.Errorf("experiment: recorder closed")
	}
	r.session = s
	if r.dir != "" {
		name := fmt.Sprintf("session-%s-%s.json", s.StartedAt.Format("20060102-150405"), s.ID)
		r.path = filepath.Join(r.dir, name)
	}
	return nil
}

// Path returns the file the recorder will write. In directory mode it
// is empty until Begin has named the session.
func (r *JSONRecorder) Path() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.path
}

func (r *JSONRecorder) Record(e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return fmt.Errorf("experiment: recorder closed")
	}
	r.events = append(r.events, e)
	return nil
}

// Close writes the session document. Closing twice is an error.
func (r *JSONRecorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return fmt.Errorf("experiment: recorder closed")
	}
	if r.path == "" {
		return fmt.Errorf("experiment: no session begun")
	}
	r.closed = true

	doc := struct {
		Session Session `json:"session"`
		Events  []Event `json:"events"`
	}{Session: r.session, Events: r.events}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("experiment: marshal session: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("experiment: write session: %w", err)
	}
	return nil
}

// Events returns a copy of what has been recorded so far.
func (r *JSONRecorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// MultiRecorder fans out to several recorders, e.g. SQLite plus a
// JSON file. The first error wins but all recorders are attempted.
type MultiRecorder []Recorder

func (m MultiRecorder) Begin(s Session) error {
	var first error
	for _, r := range m {
		if err := r.Begin(s); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (m MultiRecorder) Record(e Event) error {
	var first error
	for _, r := range m {
		if err := r.Record(e); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (m MultiRecorder) Close() error {
	var first error
	for _, r := range m {
		if err := r.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
