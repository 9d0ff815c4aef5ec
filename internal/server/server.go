// Package server exposes the portfolio analysis workflow over a REST API.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/bobmcallan/advisor/internal/common"
	"github.com/bobmcallan/advisor/internal/interfaces"
)

// Server wraps the HTTP server and its service dependencies.
type Server struct {
	pipeline  interfaces.PipelineService
	store     interfaces.PortfolioStore
	validate  *validator.Validate
	server    *http.Server
	logger    *common.Logger
	startedAt time.Time
}

// NewServer creates a new HTTP REST API server.
func NewServer(cfg *common.Config, pipeline interfaces.PipelineService, store interfaces.PortfolioStore, logger *common.Logger) *Server {
	s := &Server{
		pipeline:  pipeline,
		store:     store,
		validate:  validator.New(),
		logger:    logger,
		startedAt: time.Now(),
	}

	mux := http.NewServeMux()
	s.registerRoutes(mux)

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      applyMiddleware(mux, logger),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)

	// Portfolio
	mux.HandleFunc("/api/portfolio", s.handlePortfolio)

	// Analysis
	mux.HandleFunc("/api/analyze", s.handleAnalyze)
}

// Handler returns the HTTP handler for testing.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server (blocking).
func (s *Server) Start() error {
	s.logger.Info().
		Str("addr", s.server.Addr).
		Msg("Starting REST API server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
