package model

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
)

func TestMetrics_JSONUndefined(t *testing.T) {
	m := UndefinedMetrics(0, 0)
	if !errors.Is(m.Err(), ErrDegenerateMetrics) {
		t.Fatalf("Err() = %v, want ErrDegenerateMetrics", m.Err())
	}

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal undefined metrics: %v", err)
	}
	if !strings.Contains(string(data), `"cpu_usage":null`) {
		t.Errorf("expected null cpu_usage, got %s", data)
	}

	var back Metrics
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Defined || !math.IsNaN(back.Throughput) {
		t.Errorf("decoded metrics = %+v, want undefined with NaN throughput", back)
	}
}

func TestMetrics_JSONDefined(t *testing.T) {
	m := Metrics{Defined: true, Duration: 9, ProcessCount: 3, CPUUsage: 1, Throughput: 1.0 / 3, AvgWaitingTime: 10.0 / 3}
	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Metrics
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Err() != nil {
		t.Errorf("Err() = %v, want nil", back.Err())
	}
	if back.Duration != 9 || back.CPUUsage != 1 || back.AvgWaitingTime != m.AvgWaitingTime {
		t.Errorf("decoded = %+v, want %+v", back, m)
	}
}
