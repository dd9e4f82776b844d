package v1

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"finstim/experiment"
)

// ExperimentController is the slice of the running presentation the
// API drives: position input and status readout.
type ExperimentController interface {
	SetPosition(p experiment.Position) error
	Status() experiment.Status
}

// StimulusHandler defines the handlers for stimulus control routes.
type StimulusHandler interface {
	PostPosition(ctx *gin.Context)
	GetStatus(ctx *gin.Context)
	GetEvents(ctx *gin.Context)
	GetSessions(ctx *gin.Context)
}

type stimulusHandler struct {
	controller ExperimentController
	events     experiment.EventRepository
	sessions   experiment.SessionRepository
}

// NewStimulusHandler creates a StimulusHandler. The repositories may
// be nil when the rig runs without a database.
func NewStimulusHandler(controller ExperimentController, events experiment.EventRepository, sessions experiment.SessionRepository) StimulusHandler {
	return &stimulusHandler{
		controller: controller,
		events:     events,
		sessions:   sessions,
	}
}

// PostPosition handles the POST request feeding a subject position
// into the closed loop.
func (h *stimulusHandler) PostPosition(ctx *gin.Context) {
	var request PositionRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("invalid position data: %v", err)})
		return
	}
	if err := request.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("validation failed: %v", err)})
		return
	}

	err := h.controller.SetPosition(experiment.Position{
		X:       request.X,
		Y:       request.Y,
		Heading: request.Heading,
	})
	if err != nil {
		ctx.JSON(http.StatusConflict, ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusAccepted, newStatusResponse(h.controller.Status()))
}

// GetStatus handles the GET request for the presentation status.
func (h *stimulusHandler) GetStatus(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, newStatusResponse(h.controller.Status()))
}

// GetEvents handles the GET request listing stored stimulus events.
func (h *stimulusHandler) GetEvents(ctx *gin.Context) {
	if h.events == nil {
		ctx.JSON(http.StatusServiceUnavailable, ErrorResponse{Message: "no session database configured"})
		return
	}

	query := &experiment.EventQuery{
		SessionID: ctx.Query("session"),
		Stimulus:  ctx.Query("stimulus"),
		Limit:     intQuery(ctx, "limit"),
		Offset:    intQuery(ctx, "offset"),
	}

	events, err := h.events.List(ctx, query)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Message: err.Error()})
		return
	}

	response := make([]EventResponse, len(events))
	for i, e := range events {
		response[i] = newEventResponse(e)
	}
	ctx.JSON(http.StatusOK, response)
}

// GetSessions handles the GET request listing stored sessions.
func (h *stimulusHandler) GetSessions(ctx *gin.Context) {
	if h.sessions == nil {
		ctx.JSON(http.StatusServiceUnavailable, ErrorResponse{Message: "no session database configured"})
		return
	}

	sessions, err := h.sessions.List(ctx, intQuery(ctx, "limit"), intQuery(ctx, "offset"))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Message: err.Error()})
		return
	}

	response := make([]SessionResponse, len(sessions))
	for i, s := range sessions {
		response[i] = newSessionResponse(s)
	}
	ctx.JSON(http.StatusOK, response)
}

func intQuery(ctx *gin.Context, name string) int {
	v, err := strconv.Atoi(ctx.Query(name))
	if err != nil || v < 0 {
		return 0
	}
	return v
}
