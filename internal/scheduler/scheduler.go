// Package scheduler is the CPU scheduling engine: a tick-by-tick Dispatcher
// driven by a pluggable Policy, and the metrics derived from its result.
package scheduler

import (
	"fmt"
	"log/slog"

	"github.com/me/cpusim/pkg/model"
)

// Run simulates processes under cfg and returns the per-process timelines and
// metrics. Configuration and workload errors are reported before any tick runs.
func Run(processes []model.Process, cfg model.SimulationConfig, logger *slog.Logger) (*model.Result, error) {
	policy, err := NewPolicy(cfg)
	if err != nil {
		return nil, err
	}
	if err := model.ValidateProcesses(processes); err != nil {
		return nil, fmt.Errorf("validate workload: %w", err)
	}

	d := NewDispatcher(policy, processes, logger)
	duration := d.Run()

	return &model.Result{
		Config:   cfg.Normalized(),
		Records:  d.Records(),
		Duration: duration,
		Metrics:  CalculateMetrics(d.Records(), duration),
	}, nil
}
