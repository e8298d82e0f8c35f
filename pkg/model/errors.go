package model

import (
	"errors"
	"fmt"
)

// Sentinels matched by the typed errors below through errors.Is.
var (
	ErrInvalidProcess       = errors.New("invalid process")
	ErrConfiguration        = errors.New("configuration error")
	ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")
	ErrDegenerateMetrics    = errors.New("metrics undefined: zero duration or zero processes")
)

// InvalidProcessError is raised at ingestion for a process that cannot be simulated.
type InvalidProcessError struct {
	Index  int
	Name   string
	Field  string
	Reason string
}

func (e *InvalidProcessError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("process #%d (%s): %s %s", e.Index, e.Name, e.Field, e.Reason)
	}
	return fmt.Sprintf("process #%d: %s %s", e.Index, e.Field, e.Reason)
}

func (e *InvalidProcessError) Is(target error) bool {
	return target == ErrInvalidProcess
}

// ConfigurationError is returned before the simulation starts when the run
// parameters are unusable.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// UnsupportedAlgorithmError is returned for an algorithm identifier that has no policy.
type UnsupportedAlgorithmError struct {
	Name string
}

func (e *UnsupportedAlgorithmError) Error() string {
	return fmt.Sprintf("unsupported algorithm %q (want one of fcfs, sjf, rr, priority)", e.Name)
}

func (e *UnsupportedAlgorithmError) Is(target error) bool {
	return target == ErrUnsupportedAlgorithm || target == ErrConfiguration
}

// ErrorCode represents a structured API error code.
type ErrorCode string

const (
	ErrValidation ErrorCode = "VALIDATION_ERROR"
	ErrNotFound   ErrorCode = "NOT_FOUND"
	ErrInternal   ErrorCode = "INTERNAL_ERROR"
)

// APIError is a structured error returned by the simulation API.
type APIError struct {
	Code    ErrorCode    `json:"code"`
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// FieldError describes a validation error on a specific field.
type FieldError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// NewValidationError creates an APIError with validation details.
func NewValidationError(msg string, details ...FieldError) *APIError {
	return &APIError{Code: ErrValidation, Message: msg, Details: details}
}

// NewNotFoundError creates a NOT_FOUND APIError.
func NewNotFoundError(resource, id string) *APIError {
	return &APIError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s '%s' not found", resource, id),
	}
}

// ValidationDetails flattens ingestion and configuration errors into field
// errors. Errors of other kinds are ignored.
func ValidationDetails(err error) []FieldError {
	var out []FieldError
	var walk func(error)
	walk = func(err error) {
		if err == nil {
			return
		}
		if joined, ok := err.(interface{ Unwrap() []error }); ok {
			for _, e := range joined.Unwrap() {
				walk(e)
			}
			return
		}
		switch e := err.(type) {
		case *InvalidProcessError:
			out = append(out, FieldError{
				Field:   fmt.Sprintf("processes[%d].%s", e.Index, e.Field),
				Message: e.Reason,
			})
		case *ConfigurationError:
			out = append(out, FieldError{Field: e.Field, Message: e.Reason})
		case *UnsupportedAlgorithmError:
			out = append(out, FieldError{Field: "algorithm", Message: e.Error()})
		default:
			walk(errors.Unwrap(err))
		}
	}
	walk(err)
	return out
}
