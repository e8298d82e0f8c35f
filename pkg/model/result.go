package model

import "time"

// Result is the output of one simulation run.
type Result struct {
	Config   SimulationConfig `json:"config"`
	Records  []*ProcessRecord `json:"records"` // input order
	Duration int              `json:"duration"`
	Metrics  Metrics          `json:"metrics"`
}

// Timeline returns the lifecycle of every process keyed by name.
func (r *Result) Timeline() map[string]Timeline {
	out := make(map[string]Timeline, len(r.Records))
	for _, rec := range r.Records {
		out[rec.Name] = rec.Lifecycle
	}
	return out
}

// Record returns the record named name, or nil.
func (r *Result) Record(name string) *ProcessRecord {
	for _, rec := range r.Records {
		if rec.Name == name {
			return rec
		}
	}
	return nil
}

// Slice is a maximal span of consecutive ticks during which one process ran.
type Slice struct {
	Process string `json:"process"`
	Start   int    `json:"start"`
	End     int    `json:"end"` // exclusive
}

// Slices returns the execution slices of the run in tick order.
func (r *Result) Slices() []Slice {
	return BuildSlices(r.Records, r.Duration)
}

// BuildSlices derives execution slices from the records' lifecycles.
func BuildSlices(records []*ProcessRecord, duration int) []Slice {
	var slices []Slice
	for t := 0; t < duration; t++ {
		var running *ProcessRecord
		for _, rec := range records {
			if rec.Lifecycle.At(t) == StateRunning {
				running = rec
				break
			}
		}
		if running == nil {
			continue
		}
		if n := len(slices); n > 0 && slices[n-1].Process == running.Name && slices[n-1].End == t {
			slices[n-1].End = t + 1
			continue
		}
		slices = append(slices, Slice{Process: running.Name, Start: t, End: t + 1})
	}
	return slices
}

// Run is a persisted simulation: the request and its result.
type Run struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Config    SimulationConfig `json:"config"`
	Processes []Process        `json:"processes"`
	Result    *Result          `json:"result,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}
