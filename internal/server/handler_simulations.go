package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/me/cpusim/internal/render"
	"github.com/me/cpusim/internal/scheduler"
	"github.com/me/cpusim/internal/tracing"
	"github.com/me/cpusim/pkg/model"
)

var listOne = model.ListOptions{Limit: 1}

type dryRunResponse struct {
	Valid        bool                   `json:"valid"`
	Config       model.SimulationConfig `json:"config"`
	ProcessCount int                    `json:"process_count"`
}

func (s *Server) handleCreateSimulation(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	var req model.SimulationRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	cfg, err := req.Config()
	if err != nil {
		respondInvalid(w, reqID, "invalid simulation configuration", err)
		return
	}
	if err := model.ValidateProcesses(req.Processes); err != nil {
		respondInvalid(w, reqID, "invalid workload", err)
		return
	}
	if !s.checkTicks(w, reqID, req.Processes) {
		return
	}

	if r.URL.Query().Get("dry_run") == "true" {
		respondOK(w, reqID, dryRunResponse{Valid: true, Config: cfg, ProcessCount: len(req.Processes)})
		return
	}

	_, span := tracing.Start(r.Context(), "scheduler.run",
		attribute.String("algorithm", cfg.Label()),
		attribute.Int("processes", len(req.Processes)),
	)
	res, err := scheduler.Run(req.Processes, cfg, s.logger)
	tracing.End(span, err)
	if err != nil {
		respondInvalid(w, reqID, "simulation rejected", err)
		return
	}

	run := &model.Run{
		ID:        "run_" + uuid.New().String(),
		Name:      req.Name,
		Config:    res.Config,
		Processes: req.Processes,
		Result:    res,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.CreateRun(r.Context(), run); err != nil {
		s.respondInternal(w, reqID, err)
		return
	}

	s.logger.Info("simulation stored", "id", run.ID, "algorithm", cfg.Label(), "processes", len(req.Processes), "duration", res.Duration)
	respondCreated(w, reqID, run)
}

func (s *Server) handleListSimulations(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	opts := model.DefaultListOptions()
	q := r.URL.Query()
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			respondError(w, reqID, http.StatusBadRequest, model.NewValidationError("invalid query",
				model.FieldError{Field: "limit", Message: "must be an integer"}))
			return
		}
		opts.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			respondError(w, reqID, http.StatusBadRequest, model.NewValidationError("invalid query",
				model.FieldError{Field: "offset", Message: "must be a non-negative integer"}))
			return
		}
		opts.Offset = n
	}
	if v := q.Get("algorithm"); v != "" {
		alg, err := model.ParseAlgorithm(v)
		if err != nil {
			respondInvalid(w, reqID, "invalid query", err)
			return
		}
		opts.Algorithm = string(alg)
	}
	opts.Clamp()

	runs, total, err := s.store.ListRuns(r.Context(), opts)
	if err != nil {
		s.respondInternal(w, reqID, err)
		return
	}
	if runs == nil {
		runs = []*model.Run{}
	}

	respondList(w, reqID, runs, &model.Pagination{
		Total:   total,
		Limit:   opts.Limit,
		Offset:  opts.Offset,
		HasMore: opts.Offset+len(runs) < total,
	})
}

// loadRun fetches the run named in the URL, writing the error response itself
// when it returns nil.
func (s *Server) loadRun(w http.ResponseWriter, r *http.Request) *model.Run {
	reqID := RequestIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	run, err := s.store.GetRun(r.Context(), id)
	if err != nil {
		s.respondInternal(w, reqID, err)
		return nil
	}
	if run == nil {
		respondError(w, reqID, http.StatusNotFound, model.NewNotFoundError("simulation", id))
		return nil
	}
	return run
}

func (s *Server) handleGetSimulation(w http.ResponseWriter, r *http.Request) {
	if run := s.loadRun(w, r); run != nil {
		respondOK(w, RequestIDFromContext(r.Context()), run)
	}
}

func (s *Server) handleSimulationReport(w http.ResponseWriter, r *http.Request) {
	run := s.loadRun(w, r)
	if run == nil {
		return
	}
	if run.Result == nil {
		respondError(w, RequestIDFromContext(r.Context()), http.StatusNotFound, model.NewNotFoundError("report for simulation", run.ID))
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	render.Report(w, run.Name, run.Result)
}

func (s *Server) handleDeleteSimulation(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	deleted, err := s.store.DeleteRun(r.Context(), id)
	if err != nil {
		s.respondInternal(w, reqID, err)
		return
	}
	if !deleted {
		respondError(w, reqID, http.StatusNotFound, model.NewNotFoundError("simulation", id))
		return
	}
	s.logger.Info("simulation deleted", "id", id)
	respondOK(w, reqID, map[string]any{"id": id, "deleted": true})
}
