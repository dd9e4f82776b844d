// Package metrics exposes Prometheus collectors for the render loop
// and the control API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metric collectors.
type Metrics struct {
	// Presentation metrics
	FramesPresented  *prometheus.CounterVec // frames presented, by stimulus name
	PhaseTransitions prometheus.Counter     // protocol phase changes
	CurrentPhase     prometheus.Gauge       // index of the active phase
	DrawDuration     prometheus.Histogram   // frame draw latency in seconds

	// Input metrics
	PositionUpdates prometheus.Counter // subject position reports accepted
	StimulusSwitch  prometheus.Counter // input-driven stimulus switches

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec   // requests by method, path, status
	HTTPRequestDuration *prometheus.HistogramVec // request latency in seconds
}

// New initializes a Metrics instance against the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		FramesPresented: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finstim_frames_presented_total",
				Help: "Frames presented, labeled by stimulus name (baseline included)",
			},
			[]string{"stimulus"},
		),
		PhaseTransitions: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "finstim_phase_transitions_total",
				Help: "Protocol phase changes",
			},
		),
		CurrentPhase: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "finstim_current_phase",
				Help: "Index of the active protocol phase",
			},
		),
		DrawDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "finstim_draw_duration_seconds",
				Help:    "Frame draw latency",
				Buckets: prometheus.ExponentialBuckets(0.0001, 2, 12),
			},
		),
		PositionUpdates: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "finstim_position_updates_total",
				Help: "Subject position reports accepted by the control API",
			},
		),
		StimulusSwitch: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "finstim_stimulus_switches_total",
				Help: "Stimulus switches triggered by input",
			},
		),
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finstim_http_requests_total",
				Help: "HTTP requests by method, path and status code",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "finstim_http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}
}
