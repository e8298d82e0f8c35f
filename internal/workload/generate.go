package workload

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/me/cpusim/pkg/model"
)

// GenerateOptions controls synthetic workload generation.
type GenerateOptions struct {
	Count       int
	Seed        int64
	MaxArrival  int // arrivals drawn from [0, MaxArrival]
	MaxBurst    int // bursts drawn from [1, MaxBurst]
	MaxPriority int // priorities drawn from [0, MaxPriority]
}

// DefaultGenerateOptions returns a small workload setup.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{Count: 5, Seed: 1, MaxArrival: 10, MaxBurst: 8, MaxPriority: 4}
}

// Validate checks the option ranges.
func (o GenerateOptions) Validate() error {
	switch {
	case o.Count <= 0:
		return &model.ConfigurationError{Field: "count", Reason: "must be > 0"}
	case o.MaxArrival < 0:
		return &model.ConfigurationError{Field: "max_arrival", Reason: "must be >= 0"}
	case o.MaxBurst <= 0:
		return &model.ConfigurationError{Field: "max_burst", Reason: "must be > 0"}
	case o.MaxPriority < 0:
		return &model.ConfigurationError{Field: "max_priority", Reason: "must be >= 0"}
	}
	return nil
}

// Generate builds a deterministic random workload named P1..Pn, listed in
// arrival order. The same options always produce the same workload.
func Generate(opts GenerateOptions) (*Workload, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(opts.Seed))
	arrivals := make([]int, opts.Count)
	for i := range arrivals {
		arrivals[i] = rng.Intn(opts.MaxArrival + 1)
	}
	sort.Ints(arrivals)

	w := &Workload{Name: fmt.Sprintf("generated-%d", opts.Seed)}
	for i, arrival := range arrivals {
		w.Processes = append(w.Processes, model.Process{
			Name:     fmt.Sprintf("P%d", i+1),
			Arrival:  arrival,
			Burst:    1 + rng.Intn(opts.MaxBurst),
			Priority: rng.Intn(opts.MaxPriority + 1),
		})
	}
	return w, nil
}
