package server

import (
	"net/http"

	"github.com/me/cpusim/pkg/model"
)

type algorithmInfo struct {
	Name          model.Algorithm `json:"name"`
	NeedsModality bool            `json:"needs_modality"`
	NeedsQuantum  bool            `json:"needs_quantum"`
	Description   string          `json:"description"`
}

var algorithmDescriptions = map[model.Algorithm]string{
	model.AlgorithmFCFS:     "First come, first served; runs each process to completion in arrival order",
	model.AlgorithmSJF:      "Shortest job first; preemptive modality re-decides every tick on remaining time",
	model.AlgorithmRR:       "Round-Robin; the queue head runs for at most quantum ticks",
	model.AlgorithmPriority: "Lowest priority value first; preemptive modality re-decides every tick",
}

func (s *Server) handleListAlgorithms(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	out := make([]algorithmInfo, 0, len(model.Algorithms))
	for _, a := range model.Algorithms {
		out = append(out, algorithmInfo{
			Name:          a,
			NeedsModality: a.NeedsModality(),
			NeedsQuantum:  a == model.AlgorithmRR,
			Description:   algorithmDescriptions[a],
		})
	}
	respondOK(w, reqID, out)
}
