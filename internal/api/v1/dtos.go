package v1

import (
	"time"

	"github.com/go-playground/validator/v10"

	"finstim/experiment"
)

// BasePath prefixes all version 1 routes.
const BasePath = "/api/v1"

var validate = validator.New()

// ErrorResponse carries a failure message.
type ErrorResponse struct {
	Message string `json:"message"`
}

// PositionRequest reports a tracked subject position in NDC, heading
// in degrees clockwise from up.
type PositionRequest struct {
	X       float64 `json:"x" validate:"gte=-1,lte=1"`
	Y       float64 `json:"y" validate:"gte=-1,lte=1"`
	Heading float64 `json:"heading"`
}

// Validate checks field constraints.
func (r *PositionRequest) Validate() error {
	return validate.Struct(r)
}

// StatusResponse describes the running presentation.
type StatusResponse struct {
	SessionID      string  `json:"session_id"`
	Phase          int     `json:"phase"`
	Phases         int     `json:"phases"`
	Stimulus       string  `json:"stimulus"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
	Frames         uint64  `json:"frames"`
	Done           bool    `json:"done"`
}

func newStatusResponse(s experiment.Status) StatusResponse {
	return StatusResponse{
		SessionID:      s.SessionID,
		Phase:          s.Phase,
		Phases:         s.Phases,
		Stimulus:       s.Stimulus,
		ElapsedSeconds: s.Elapsed.Seconds(),
		Frames:         s.Frames,
		Done:           s.Done,
	}
}

// EventResponse is one stored presentation epoch.
type EventResponse struct {
	SessionID     string  `json:"session_id"`
	Seq           int     `json:"seq"`
	StimIndex     int     `json:"stim_index"`
	StimulusName  string  `json:"stimulus_name"`
	Params        string  `json:"params,omitempty"`
	OnsetSeconds  float64 `json:"onset_seconds"`
	OffsetSeconds float64 `json:"offset_seconds"`
	Frames        int     `json:"frames"`
}

func newEventResponse(e *experiment.Event) EventResponse {
	return EventResponse{
		SessionID:     e.SessionID,
		Seq:           e.Seq,
		StimIndex:     e.StimIndex,
		StimulusName:  e.StimulusName,
		Params:        e.Params,
		OnsetSeconds:  e.Onset.Seconds(),
		OffsetSeconds: e.Offset.Seconds(),
		Frames:        e.Frames,
	}
}

// SessionResponse is one stored session.
type SessionResponse struct {
	ID        string    `json:"id"`
	Protocol  string    `json:"protocol"`
	StartedAt time.Time `json:"started_at"`
}

func newSessionResponse(s *experiment.Session) SessionResponse {
	return SessionResponse{
		ID:        s.ID,
		Protocol:  s.Protocol,
		StartedAt: s.StartedAt,
	}
}
