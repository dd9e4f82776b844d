package v1

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"finstim/experiment"
	"finstim/internal/metrics"
)

// SetupRoutes sets up all the API routes for version 1. The event and
// session repositories may be nil; their routes then report the
// database as unavailable.
func SetupRoutes(r *gin.Engine,
	controller ExperimentController,
	events experiment.EventRepository,
	sessions experiment.SessionRepository,
	m *metrics.Metrics,
	registry *prometheus.Registry) {

	if m != nil {
		r.Use(metricsMiddleware(m))
	}

	handler := NewStimulusHandler(controller, events, sessions)

	v1 := r.Group(BasePath)
	v1.POST("/position", handler.PostPosition)
	v1.GET("/status", handler.GetStatus)
	v1.GET("/events", handler.GetEvents)
	v1.GET("/sessions", handler.GetSessions)

	if registry != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	}
}

// metricsMiddleware counts requests and observes latency per route.
func metricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		path := ctx.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.HTTPRequestsTotal.WithLabelValues(
			ctx.Request.Method, path, strconv.Itoa(ctx.Writer.Status()),
		).Inc()
		m.HTTPRequestDuration.WithLabelValues(
			ctx.Request.Method, path,
		).Observe(time.Since(start).Seconds())
	}
}
