// Package batch runs the same workload under every scheduling variant in
// parallel. Runs never share state: each builds its own records.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/me/cpusim/internal/logging"
	"github.com/me/cpusim/internal/scheduler"
	"github.com/me/cpusim/internal/tracing"
	"github.com/me/cpusim/pkg/model"
)

// Options configures a comparison.
type Options struct {
	Quantum     int // Round-Robin quantum
	Parallelism int // max concurrent runs; <= 0 means unbounded
}

// DefaultOptions returns quantum 2 and one run per CPU.
func DefaultOptions() Options {
	return Options{Quantum: 2, Parallelism: runtime.NumCPU()}
}

// Outcome is the result of one variant.
type Outcome struct {
	Config model.SimulationConfig `json:"config"`
	Result *model.Result          `json:"result"`
}

// Variants lists the compared configurations in report order.
func Variants(quantum int) []model.SimulationConfig {
	return []model.SimulationConfig{
		{Algorithm: model.AlgorithmFCFS},
		{Algorithm: model.AlgorithmSJF, Modality: model.ModalityNonPreemptive},
		{Algorithm: model.AlgorithmSJF, Modality: model.ModalityPreemptive},
		{Algorithm: model.AlgorithmRR, Quantum: quantum},
		{Algorithm: model.AlgorithmPriority, Modality: model.ModalityNonPreemptive},
		{Algorithm: model.AlgorithmPriority, Modality: model.ModalityPreemptive},
	}
}

// Comparer runs comparisons.
type Comparer struct {
	logger *slog.Logger
}

// NewComparer creates a Comparer. A nil logger discards output.
func NewComparer(logger *slog.Logger) *Comparer {
	return &Comparer{logger: logging.OrDiscard(logger).With("component", "batch")}
}

// Compare simulates processes under every variant and returns the outcomes in
// Variants order. Cancelling ctx stops runs that have not started yet.
func (c *Comparer) Compare(ctx context.Context, processes []model.Process, opts Options) (_ []Outcome, err error) {
	if opts.Quantum <= 0 {
		return nil, &model.ConfigurationError{Field: "quantum", Reason: "must be > 0"}
	}
	if err := model.ValidateProcesses(processes); err != nil {
		return nil, fmt.Errorf("validate workload: %w", err)
	}

	ctx, span := tracing.Start(ctx, "batch.compare",
		attribute.Int("processes", len(processes)),
		attribute.Int("quantum", opts.Quantum),
		attribute.Int("parallelism", opts.Parallelism),
	)
	defer func() { tracing.End(span, err) }()

	start := time.Now()
	variants := Variants(opts.Quantum)
	outcomes := make([]Outcome, len(variants))
	errs := make([]error, len(variants))
	sem := NewSemaphore(opts.Parallelism)
	done := make(chan struct{}, len(variants))

	for i, cfg := range variants {
		i, cfg := i, cfg
		go func() {
			defer func() { done <- struct{}{} }()
			if !sem.Acquire(ctx) {
				errs[i] = fmt.Errorf("%s: %w", cfg.Label(), ctx.Err())
				return
			}
			defer sem.Release()
			outcomes[i], errs[i] = c.runOne(ctx, processes, cfg)
		}()
	}
	for range variants {
		<-done
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	c.logger.Info("comparison finished", "variants", len(variants), "processes", len(processes), "elapsed", time.Since(start))
	return outcomes, nil
}

func (c *Comparer) runOne(ctx context.Context, processes []model.Process, cfg model.SimulationConfig) (Outcome, error) {
	_, span := tracing.Start(ctx, "batch.simulate", attribute.String("algorithm", cfg.Label()))
	own := append([]model.Process(nil), processes...)
	res, err := scheduler.Run(own, cfg, c.logger)
	if res != nil {
		span.SetAttributes(attribute.Int("duration", res.Duration))
	}
	tracing.End(span, err)
	if err != nil {
		return Outcome{}, fmt.Errorf("%s: %w", cfg.Label(), err)
	}
	c.logger.Debug("variant finished", "algorithm", cfg.Label(), "duration", res.Duration)
	return Outcome{Config: res.Config, Result: res}, nil
}

// Results extracts the results in order.
func Results(outcomes []Outcome) []*model.Result {
	out := make([]*model.Result, len(outcomes))
	for i, o := range outcomes {
		out[i] = o.Result
	}
	return out
}
