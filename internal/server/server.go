// Package server exposes the simulator over a JSON REST API.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/me/cpusim/internal/batch"
	"github.com/me/cpusim/internal/config"
	"github.com/me/cpusim/internal/logging"
	"github.com/me/cpusim/internal/store"
)

// Version is reported by the health and discovery endpoints.
const Version = "0.3.0"

// Server is the simulation REST API server.
type Server struct {
	router    chi.Router
	logger    *slog.Logger
	config    config.ServerConfig
	startTime time.Time
	store     store.Store
	comparer  *batch.Comparer
}

// Option configures optional Server dependencies.
type Option func(*Server)

// WithComparer replaces the default batch comparer.
func WithComparer(c *batch.Comparer) Option {
	return func(s *Server) {
		s.comparer = c
	}
}

// New creates a new Server with all routes registered.
func New(cfg config.ServerConfig, st store.Store, logger *slog.Logger, opts ...Option) *Server {
	logger = logging.OrDiscard(logger)
	if cfg.MaxTicks <= 0 {
		cfg.MaxTicks = config.DefaultMaxTicks
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = config.DefaultMaxBodyBytes
	}
	s := &Server{
		router:    chi.NewRouter(),
		logger:    logger.With("component", "server"),
		config:    cfg,
		startTime: time.Now(),
		store:     st,
		comparer:  batch.NewComparer(logger),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Handler returns the http.Handler for this server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	r := s.router

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(tracingMiddleware)
	r.Use(loggingMiddleware(s.logger))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/", s.handleDiscovery)
		r.Get("/health", s.handleHealth)
		r.Get("/algorithms", s.handleListAlgorithms)

		r.Route("/simulations", func(r chi.Router) {
			r.Get("/", s.handleListSimulations)
			r.Post("/", s.handleCreateSimulation)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetSimulation)
				r.Delete("/", s.handleDeleteSimulation)
				r.Get("/report", s.handleSimulationReport)
			})
		})

		r.Post("/comparisons", s.handleCreateComparison)
	})
}
