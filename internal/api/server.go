// Package api serves the rig control API: position input for the
// closed loop, presentation status, stored sessions and metrics.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"finstim/experiment"
	v1 "finstim/internal/api/v1"
	"finstim/internal/logger"
	"finstim/internal/metrics"
)

// ServerConfig wires the control API server.
type ServerConfig struct {
	Port       string
	Controller v1.ExperimentController
	Events     experiment.EventRepository
	Sessions   experiment.SessionRepository
	Metrics    *metrics.Metrics
	Registry   *prometheus.Registry
	Logger     logger.Logger
}

// Server runs the control API next to the render loop.
type Server struct {
	srv *http.Server
	log logger.Logger
}

// NewServer builds the gin engine and routes.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Controller == nil {
		return nil, fmt.Errorf("api: server needs an experiment controller")
	}
	if cfg.Port == "" {
		return nil, fmt.Errorf("api: server needs a port")
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.NewConsoleLogger(logger.LevelInfo)
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	v1.SetupRoutes(engine, cfg.Controller, cfg.Events, cfg.Sessions, cfg.Metrics, cfg.Registry)

	return &Server{
		srv: &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      engine,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		log: cfg.Logger,
	}, nil
}

// Start serves in a new goroutine.
func (s *Server) Start() {
	s.log.Info("control API listening on ", s.srv.Addr)
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("control API: ", err)
		}
	}()
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("api: shutdown: %w", err)
	}
	return nil
}
