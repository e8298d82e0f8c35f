package model

import (
	"errors"
	"fmt"
	"testing"
)

func TestAPIError_Error(t *testing.T) {
	err := &APIError{Code: ErrNotFound, Message: "run 'run_123' not found"}
	want := "NOT_FOUND: run 'run_123' not found"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("run", "run_abc")
	if err.Code != ErrNotFound {
		t.Errorf("Code = %q, want %q", err.Code, ErrNotFound)
	}
	if err.Message != "run 'run_abc' not found" {
		t.Errorf("Message = %q, want %q", err.Message, "run 'run_abc' not found")
	}
}

func TestErrorKinds_Is(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{"invalid process", &InvalidProcessError{Index: 1, Field: "burst", Reason: "must be > 0"}, ErrInvalidProcess, true},
		{"invalid process is not config", &InvalidProcessError{}, ErrConfiguration, false},
		{"configuration", &ConfigurationError{Field: "quantum"}, ErrConfiguration, true},
		{"unsupported is configuration", &UnsupportedAlgorithmError{Name: "edf"}, ErrConfiguration, true},
		{"unsupported", &UnsupportedAlgorithmError{Name: "edf"}, ErrUnsupportedAlgorithm, true},
		{"wrapped", fmt.Errorf("load: %w", &ConfigurationError{Field: "modality"}), ErrConfiguration, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, tt.target); got != tt.want {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.target, got, tt.want)
			}
		})
	}
}

func TestInvalidProcessError_Error(t *testing.T) {
	err := &InvalidProcessError{Index: 2, Name: "P3", Field: "arrival", Reason: "must be >= 0"}
	want := "process #2 (P3): arrival must be >= 0"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestValidationDetails(t *testing.T) {
	err := errors.Join(
		&InvalidProcessError{Index: 0, Name: "A", Field: "burst", Reason: "must be > 0"},
		fmt.Errorf("wrapped: %w", &ConfigurationError{Field: "quantum", Reason: "must be > 0"}),
		errors.New("unrelated"),
	)
	details := ValidationDetails(err)
	if len(details) != 2 {
		t.Fatalf("details = %+v, want 2 entries", details)
	}
	if details[0].Field != "processes[0].burst" {
		t.Errorf("details[0].Field = %q, want processes[0].burst", details[0].Field)
	}
	if details[1].Field != "quantum" {
		t.Errorf("details[1].Field = %q, want quantum", details[1].Field)
	}
}
