package model

import "time"

// Response is the standard API response envelope.
type Response struct {
	Status     string      `json:"status"`
	RequestID  string      `json:"request_id"`
	Timestamp  time.Time   `json:"timestamp"`
	Data       any         `json:"data"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Error      *APIError   `json:"error"`
}

// Pagination holds pagination metadata for list endpoints.
type Pagination struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
}

// ListOptions configures run listing.
type ListOptions struct {
	Limit     int
	Offset    int
	Algorithm string // Optional algorithm filter
}

// DefaultListOptions returns sensible defaults.
func DefaultListOptions() ListOptions {
	return ListOptions{Limit: 20, Offset: 0}
}

// Clamp enforces limits (max 100, min 1).
func (o *ListOptions) Clamp() {
	if o.Limit <= 0 {
		o.Limit = 20
	}
	if o.Limit > 100 {
		o.Limit = 100
	}
	if o.Offset < 0 {
		o.Offset = 0
	}
}

// SimulationRequest is the body of POST /api/v1/simulations.
type SimulationRequest struct {
	Name      string    `json:"name"`
	Algorithm string    `json:"algorithm"`
	Modality  string    `json:"modality,omitempty"`
	Quantum   int       `json:"quantum,omitempty"`
	Processes []Process `json:"processes"`
}

// Config parses the algorithm and modality fields.
func (r SimulationRequest) Config() (SimulationConfig, error) {
	alg, err := ParseAlgorithm(r.Algorithm)
	if err != nil {
		return SimulationConfig{}, err
	}
	mod, err := ParseModality(r.Modality)
	if err != nil {
		return SimulationConfig{}, err
	}
	cfg := SimulationConfig{Algorithm: alg, Modality: mod, Quantum: r.Quantum}
	if err := cfg.Validate(); err != nil {
		return SimulationConfig{}, err
	}
	return cfg.Normalized(), nil
}

// ComparisonRequest is the body of POST /api/v1/comparisons.
type ComparisonRequest struct {
	Quantum   int       `json:"quantum"`
	Processes []Process `json:"processes"`
}
