package model

import (
	"fmt"
	"strings"
)

// Algorithm identifies a scheduling discipline.
type Algorithm string

const (
	AlgorithmFCFS     Algorithm = "fcfs"
	AlgorithmSJF      Algorithm = "sjf"
	AlgorithmRR       Algorithm = "rr"
	AlgorithmPriority Algorithm = "priority"
)

// Algorithms lists every supported algorithm in display order.
var Algorithms = []Algorithm{AlgorithmFCFS, AlgorithmSJF, AlgorithmRR, AlgorithmPriority}

// String returns the string representation of the algorithm.
func (a Algorithm) String() string {
	return string(a)
}

// NeedsModality reports whether the algorithm has both a preemptive and a
// non-preemptive form.
func (a Algorithm) NeedsModality() bool {
	return a == AlgorithmSJF || a == AlgorithmPriority
}

// ParseAlgorithm converts a user supplied name to an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fcfs", "fifo":
		return AlgorithmFCFS, nil
	case "sjf":
		return AlgorithmSJF, nil
	case "rr", "round-robin", "roundrobin":
		return AlgorithmRR, nil
	case "priority", "priorities":
		return AlgorithmPriority, nil
	}
	return "", &UnsupportedAlgorithmError{Name: s}
}

// Modality selects between the preemptive and non-preemptive form of an algorithm.
type Modality string

const (
	ModalityPreemptive    Modality = "preemptive"
	ModalityNonPreemptive Modality = "nonpreemptive"
)

// String returns the string representation of the modality.
func (m Modality) String() string {
	return string(m)
}

// ParseModality converts a user supplied name to a Modality. The empty string
// maps to the empty Modality.
func ParseModality(s string) (Modality, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case "preemptive", "p":
		return ModalityPreemptive, nil
	case "nonpreemptive", "non-preemptive", "np":
		return ModalityNonPreemptive, nil
	}
	return "", &ConfigurationError{Field: "modality", Reason: fmt.Sprintf("unknown modality %q (want preemptive or nonpreemptive)", s)}
}

// SimulationConfig holds the parameters of one simulation run.
type SimulationConfig struct {
	Algorithm Algorithm `json:"algorithm" yaml:"algorithm"`
	Modality  Modality  `json:"modality,omitempty" yaml:"modality,omitempty"`
	Quantum   int       `json:"quantum,omitempty" yaml:"quantum,omitempty"`
}

// Validate checks the configuration before any simulation starts.
func (c SimulationConfig) Validate() error {
	switch c.Algorithm {
	case AlgorithmFCFS, AlgorithmSJF, AlgorithmRR, AlgorithmPriority:
	default:
		return &UnsupportedAlgorithmError{Name: string(c.Algorithm)}
	}
	if c.Algorithm.NeedsModality() {
		switch c.Modality {
		case ModalityPreemptive, ModalityNonPreemptive:
		case "":
			return &ConfigurationError{Field: "modality", Reason: fmt.Sprintf("required for %s", c.Algorithm)}
		default:
			return &ConfigurationError{Field: "modality", Reason: fmt.Sprintf("unknown modality %q", c.Modality)}
		}
	}
	if c.Algorithm == AlgorithmRR && c.Quantum <= 0 {
		return &ConfigurationError{Field: "quantum", Reason: fmt.Sprintf("must be > 0 for rr, got %d", c.Quantum)}
	}
	return nil
}

// Normalized drops the parameters the algorithm ignores, so equal runs compare equal.
func (c SimulationConfig) Normalized() SimulationConfig {
	if !c.Algorithm.NeedsModality() {
		c.Modality = ""
	}
	if c.Algorithm != AlgorithmRR {
		c.Quantum = 0
	}
	return c
}

// Label returns a short human-readable name such as "sjf/preemptive" or "rr(q=2)".
func (c SimulationConfig) Label() string {
	switch {
	case c.Algorithm == AlgorithmRR:
		return fmt.Sprintf("rr(q=%d)", c.Quantum)
	case c.Algorithm.NeedsModality() && c.Modality != "":
		return fmt.Sprintf("%s/%s", c.Algorithm, c.Modality)
	}
	return string(c.Algorithm)
}
