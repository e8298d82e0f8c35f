package server

import (
	"errors"
	"net/http"

	"github.com/me/cpusim/internal/batch"
	"github.com/me/cpusim/pkg/model"
)

const defaultCompareQuantum = 2

func (s *Server) handleCreateComparison(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	var req model.ComparisonRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := model.ValidateProcesses(req.Processes); err != nil {
		respondInvalid(w, reqID, "invalid comparison request", err)
		return
	}
	if !s.checkTicks(w, reqID, req.Processes) {
		return
	}
	quantum := req.Quantum
	if quantum == 0 {
		quantum = defaultCompareQuantum
	}

	outcomes, err := s.comparer.Compare(r.Context(), req.Processes, batch.Options{
		Quantum:     quantum,
		Parallelism: s.config.CompareParallelism,
	})
	switch {
	case errors.Is(err, model.ErrInvalidProcess), errors.Is(err, model.ErrConfiguration):
		respondInvalid(w, reqID, "invalid comparison request", err)
		return
	case err != nil:
		s.respondInternal(w, reqID, err)
		return
	}
	respondOK(w, reqID, outcomes)
}
