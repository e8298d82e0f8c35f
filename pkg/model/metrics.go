package model

import (
	"encoding/json"
	"math"
)

// Metrics are the aggregate statistics of a finished simulation. When Defined
// is false (zero duration or zero processes) every ratio is NaN.
type Metrics struct {
	Defined      bool
	Duration     int
	ProcessCount int

	CPUUsage   float64 // sum(burst) / duration
	Throughput float64 // processes / duration

	AvgWaitingTime  float64
	AvgResponseTime float64

	// AvgReturnTime is the mean completion tick and AvgNormalizedReturnTime the
	// mean of completion / burst. AvgTurnaround is the mean of completion - arrival.
	AvgReturnTime           float64
	AvgNormalizedReturnTime float64
	AvgTurnaround           float64

	ContextSwitches int
}

// UndefinedMetrics returns the degenerate result for a run without work.
func UndefinedMetrics(duration, processCount int) Metrics {
	nan := math.NaN()
	return Metrics{
		Duration:                duration,
		ProcessCount:            processCount,
		CPUUsage:                nan,
		Throughput:              nan,
		AvgWaitingTime:          nan,
		AvgResponseTime:         nan,
		AvgReturnTime:           nan,
		AvgNormalizedReturnTime: nan,
		AvgTurnaround:           nan,
	}
}

// Err returns ErrDegenerateMetrics when the metrics are undefined.
func (m Metrics) Err() error {
	if !m.Defined {
		return ErrDegenerateMetrics
	}
	return nil
}

// metricsJSON mirrors Metrics with nullable ratios, since JSON has no NaN.
type metricsJSON struct {
	Defined                 bool     `json:"defined"`
	Duration                int      `json:"duration"`
	ProcessCount            int      `json:"process_count"`
	CPUUsage                *float64 `json:"cpu_usage"`
	Throughput              *float64 `json:"throughput"`
	AvgWaitingTime          *float64 `json:"avg_waiting_time"`
	AvgResponseTime         *float64 `json:"avg_response_time"`
	AvgReturnTime           *float64 `json:"avg_return_time"`
	AvgNormalizedReturnTime *float64 `json:"avg_normalized_return_time"`
	AvgTurnaround           *float64 `json:"avg_turnaround"`
	ContextSwitches         int      `json:"context_switches"`
}

func nullable(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func orNaN(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}

// MarshalJSON encodes undefined ratios as null.
func (m Metrics) MarshalJSON() ([]byte, error) {
	return json.Marshal(metricsJSON{
		Defined:                 m.Defined,
		Duration:                m.Duration,
		ProcessCount:            m.ProcessCount,
		CPUUsage:                nullable(m.CPUUsage),
		Throughput:              nullable(m.Throughput),
		AvgWaitingTime:          nullable(m.AvgWaitingTime),
		AvgResponseTime:         nullable(m.AvgResponseTime),
		AvgReturnTime:           nullable(m.AvgReturnTime),
		AvgNormalizedReturnTime: nullable(m.AvgNormalizedReturnTime),
		AvgTurnaround:           nullable(m.AvgTurnaround),
		ContextSwitches:         m.ContextSwitches,
	})
}

// UnmarshalJSON decodes null ratios back to NaN.
func (m *Metrics) UnmarshalJSON(data []byte) error {
	var raw metricsJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*m = Metrics{
		Defined:                 raw.Defined,
		Duration:                raw.Duration,
		ProcessCount:            raw.ProcessCount,
		CPUUsage:                orNaN(raw.CPUUsage),
		Throughput:              orNaN(raw.Throughput),
		AvgWaitingTime:          orNaN(raw.AvgWaitingTime),
		AvgResponseTime:         orNaN(raw.AvgResponseTime),
		AvgReturnTime:           orNaN(raw.AvgReturnTime),
		AvgNormalizedReturnTime: orNaN(raw.AvgNormalizedReturnTime),
		AvgTurnaround:           orNaN(raw.AvgTurnaround),
		ContextSwitches:         raw.ContextSwitches,
	}
	return nil
}
