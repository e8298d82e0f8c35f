package server

import "net/http"

type endpointInfo struct {
	Path        string   `json:"path"`
	Methods     []string `json:"methods"`
	Description string   `json:"description"`
}

type discoveryResponse struct {
	Name        string         `json:"name"`
	Version     string         `json:"version"`
	Description string         `json:"description"`
	Endpoints   []endpointInfo `json:"endpoints"`
}

func (s *Server) handleDiscovery(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	respondOK(w, reqID, discoveryResponse{
		Name:        "cpusim API",
		Version:     "v1",
		Description: "CPU scheduling simulator: run, compare and store simulations",
		Endpoints: []endpointInfo{
			{"/api/v1/algorithms", []string{"GET"}, "Supported algorithms and their parameters"},
			{"/api/v1/simulations", []string{"GET", "POST"}, "Run a simulation or list stored runs. POST accepts ?dry_run=true for validation only"},
			{"/api/v1/simulations/{id}", []string{"GET", "DELETE"}, "Single stored run"},
			{"/api/v1/simulations/{id}/report", []string{"GET"}, "Plain-text report of a stored run"},
			{"/api/v1/comparisons", []string{"POST"}, "Run a workload under every algorithm"},
			{"/api/v1/health", []string{"GET"}, "Server health and version"},
		},
	})
}
