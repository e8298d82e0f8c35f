package model

import (
	"errors"
	"math"
	"strconv"
)

// Process is one entry of the input workload. Its fields never change once the
// simulation starts.
type Process struct {
	Name     string `json:"name" yaml:"name"`
	Arrival  int    `json:"arrival" yaml:"arrival"`
	Burst    int    `json:"burst" yaml:"burst"`
	Priority int    `json:"priority" yaml:"priority"` // Lower is more urgent.
}

// ProcessRecord is a Process plus the state accumulated while it is simulated.
// Only the dispatcher mutates a record; policies read it.
type ProcessRecord struct {
	Process

	Index          int      `json:"index"` // Position in the input workload; final tie-break key.
	Remaining      int      `json:"remaining"`
	ResponseTime   *int     `json:"response_time"`   // nil until first dispatch
	CompletionTime *int     `json:"completion_time"` // nil until Remaining reaches 0
	WaitingTime    int      `json:"waiting_time"`
	Completed      bool     `json:"completed"`
	Lifecycle      Timeline `json:"lifecycle"`
}

// NewProcessRecord creates the initial simulation state for p.
func NewProcessRecord(p Process, index int) *ProcessRecord {
	return &ProcessRecord{
		Process:   p,
		Index:     index,
		Remaining: p.Burst,
	}
}

// CurrentBurstAt returns the number of ticks the process ran strictly before tick t.
func (r *ProcessRecord) CurrentBurstAt(t int) int {
	return r.Lifecycle.CountBefore(StateRunning, t)
}

// IsArrivedAndUnfinished reports whether the process is eligible to run at tick t.
func (r *ProcessRecord) IsArrivedAndUnfinished(t int) bool {
	return r.Arrival <= t && !r.Completed
}

// Turnaround returns completion - arrival, or 0 while the process is unfinished.
func (r *ProcessRecord) Turnaround() int {
	if r.CompletionTime == nil {
		return 0
	}
	return *r.CompletionTime - r.Arrival
}

// Clone returns a deep copy of the record.
func (r *ProcessRecord) Clone() *ProcessRecord {
	c := *r
	if r.ResponseTime != nil {
		v := *r.ResponseTime
		c.ResponseTime = &v
	}
	if r.CompletionTime != nil {
		v := *r.CompletionTime
		c.CompletionTime = &v
	}
	c.Lifecycle = append(Timeline(nil), r.Lifecycle...)
	return &c
}

// ValidateProcesses checks the ingestion preconditions of a workload: every
// process has a unique non-empty name, a non-negative arrival and a positive
// burst. All problems are returned joined.
func ValidateProcesses(processes []Process) error {
	var errs []error
	seen := make(map[string]int, len(processes))
	for i, p := range processes {
		if p.Name == "" {
			errs = append(errs, &InvalidProcessError{Index: i, Field: "name", Reason: "must not be empty"})
		} else if first, ok := seen[p.Name]; ok {
			errs = append(errs, &InvalidProcessError{Index: i, Name: p.Name, Field: "name",
				Reason: "duplicates process #" + strconv.Itoa(first)})
		} else {
			seen[p.Name] = i
		}
		if p.Arrival < 0 {
			errs = append(errs, &InvalidProcessError{Index: i, Name: p.Name, Field: "arrival", Reason: "must be >= 0"})
		}
		if p.Burst <= 0 {
			errs = append(errs, &InvalidProcessError{Index: i, Name: p.Name, Field: "burst", Reason: "must be > 0"})
		}
	}
	return errors.Join(errs...)
}

// TickBound returns max(arrival) + sum(burst), an upper bound on the duration
// of any simulation of processes. It saturates at math.MaxInt and treats
// negative values as zero.
func TickBound(processes []Process) int {
	latest, total := 0, 0
	for _, p := range processes {
		latest = max(latest, p.Arrival)
		if p.Burst > 0 {
			if total > math.MaxInt-p.Burst {
				return math.MaxInt
			}
			total += p.Burst
		}
	}
	if latest > math.MaxInt-total {
		return math.MaxInt
	}
	return latest + total
}
