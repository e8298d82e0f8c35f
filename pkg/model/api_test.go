package model

import (
	"errors"
	"testing"
)

func TestListOptions_Clamp(t *testing.T) {
	tests := []struct {
		name      string
		input     ListOptions
		wantLimit int
		wantOffset int
	}{
		{"defaults", ListOptions{Limit: 0, Offset: 0}, 20, 0},
		{"negative limit", ListOptions{Limit: -5, Offset: 0}, 20, 0},
		{"over max", ListOptions{Limit: 200, Offset: 0}, 100, 0},
		{"negative offset", ListOptions{Limit: 10, Offset: -3}, 10, 0},
		{"valid", ListOptions{Limit: 50, Offset: 10}, 50, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.input.Clamp()
			if tt.input.Limit != tt.wantLimit {
				t.Errorf("Limit = %d, want %d", tt.input.Limit, tt.wantLimit)
			}
			if tt.input.Offset != tt.wantOffset {
				t.Errorf("Offset = %d, want %d", tt.input.Offset, tt.wantOffset)
			}
		})
	}
}

func TestDefaultListOptions(t *testing.T) {
	opts := DefaultListOptions()
	if opts.Limit != 20 {
		t.Errorf("Limit = %d, want 20", opts.Limit)
	}
	if opts.Offset != 0 {
		t.Errorf("Offset = %d, want 0", opts.Offset)
	}
}

func TestSimulationRequest_Config(t *testing.T) {
	tests := []struct {
		name    string
		req     SimulationRequest
		want    SimulationConfig
		wantErr error
	}{
		{"fcfs drops modality", SimulationRequest{Algorithm: "FCFS", Modality: "preemptive", Quantum: 3},
			SimulationConfig{Algorithm: AlgorithmFCFS}, nil},
		{"srtf", SimulationRequest{Algorithm: "sjf", Modality: "preemptive"},
			SimulationConfig{Algorithm: AlgorithmSJF, Modality: ModalityPreemptive}, nil},
		{"rr keeps quantum", SimulationRequest{Algorithm: "rr", Quantum: 4},
			SimulationConfig{Algorithm: AlgorithmRR, Quantum: 4}, nil},
		{"unknown algorithm", SimulationRequest{Algorithm: "lottery"}, SimulationConfig{}, ErrUnsupportedAlgorithm},
		{"missing modality", SimulationRequest{Algorithm: "priority"}, SimulationConfig{}, ErrConfiguration},
		{"bad quantum", SimulationRequest{Algorithm: "rr"}, SimulationConfig{}, ErrConfiguration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.req.Config()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Config() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
