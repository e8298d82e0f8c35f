package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/me/cpusim/pkg/model"
)

// requestID generates a unique request identifier.
func requestID() string {
	return "req_" + uuid.New().String()[:8]
}

// respondOK writes a success response with the standard envelope.
func respondOK(w http.ResponseWriter, reqID string, data any) {
	respondJSON(w, http.StatusOK, reqID, data, nil, nil)
}

// respondCreated writes a 201 response with the standard envelope.
func respondCreated(w http.ResponseWriter, reqID string, data any) {
	respondJSON(w, http.StatusCreated, reqID, data, nil, nil)
}

// respondList writes a success response with pagination.
func respondList(w http.ResponseWriter, reqID string, data any, pg *model.Pagination) {
	respondJSON(w, http.StatusOK, reqID, data, pg, nil)
}

// respondError writes an error response with the standard envelope.
func respondError(w http.ResponseWriter, reqID string, status int, apiErr *model.APIError) {
	respondJSON(w, status, reqID, nil, nil, apiErr)
}

// respondInternal hides err behind INTERNAL_ERROR after logging it.
func (s *Server) respondInternal(w http.ResponseWriter, reqID string, err error) {
	s.logger.Error("request failed", "request_id", reqID, "error", err)
	respondError(w, reqID, http.StatusInternalServerError,
		&model.APIError{Code: model.ErrInternal, Message: err.Error()})
}

// respondInvalid maps ingestion and configuration errors to a 400.
func respondInvalid(w http.ResponseWriter, reqID string, msg string, err error) {
	details := model.ValidationDetails(err)
	if len(details) == 0 {
		details = []model.FieldError{{Message: err.Error()}}
	}
	respondError(w, reqID, http.StatusBadRequest, model.NewValidationError(msg, details...))
}

func respondJSON(w http.ResponseWriter, status int, reqID string, data any, pg *model.Pagination, apiErr *model.APIError) {
	resp := model.Response{
		RequestID:  reqID,
		Timestamp:  time.Now().UTC(),
		Data:       data,
		Pagination: pg,
		Error:      apiErr,
	}
	if apiErr != nil {
		resp.Status = "error"
	} else {
		resp.Status = "ok"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

// decodeJSON reads a body of at most MaxBodyBytes into v, writing the error
// response itself when it returns false.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	reqID := RequestIDFromContext(r.Context())
	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		respondError(w, reqID, http.StatusRequestEntityTooLarge, &model.APIError{
			Code:    model.ErrValidation,
			Message: fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit),
		})
		return false
	}
	respondError(w, reqID, http.StatusBadRequest, &model.APIError{
		Code:    model.ErrValidation,
		Message: "Invalid JSON body: " + err.Error(),
	})
	return false
}

// checkTicks rejects workloads that could run longer than MaxTicks. Processes
// must already be validated.
func (s *Server) checkTicks(w http.ResponseWriter, reqID string, processes []model.Process) bool {
	bound := model.TickBound(processes)
	if bound <= s.config.MaxTicks {
		return true
	}
	respondError(w, reqID, http.StatusBadRequest, model.NewValidationError("workload too large",
		model.FieldError{
			Field:   "processes",
			Message: fmt.Sprintf("latest arrival plus total burst is %d ticks, limit is %d", bound, s.config.MaxTicks),
		}))
	return false
}
