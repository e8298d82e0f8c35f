package scheduler

import (
	"errors"
	"testing"

	"github.com/me/cpusim/pkg/model"
)

func rec(name string, index, arrival, burst, prio int) *model.ProcessRecord {
	return model.NewProcessRecord(model.Process{Name: name, Arrival: arrival, Burst: burst, Priority: prio}, index)
}

func TestNewPolicy(t *testing.T) {
	tests := []struct {
		cfg      model.SimulationConfig
		wantName string
		wantErr  error
	}{
		{model.SimulationConfig{Algorithm: model.AlgorithmFCFS}, "fcfs", nil},
		{model.SimulationConfig{Algorithm: model.AlgorithmSJF, Modality: model.ModalityNonPreemptive}, "sjf/nonpreemptive", nil},
		{model.SimulationConfig{Algorithm: model.AlgorithmSJF, Modality: model.ModalityPreemptive}, "sjf/preemptive", nil},
		{model.SimulationConfig{Algorithm: model.AlgorithmRR, Quantum: 3}, "rr", nil},
		{model.SimulationConfig{Algorithm: model.AlgorithmPriority, Modality: model.ModalityNonPreemptive}, "priority/nonpreemptive", nil},
		{model.SimulationConfig{Algorithm: model.AlgorithmPriority, Modality: model.ModalityPreemptive}, "priority/preemptive", nil},
		{model.SimulationConfig{Algorithm: model.AlgorithmRR}, "", model.ErrConfiguration},
		{model.SimulationConfig{Algorithm: "lottery"}, "", model.ErrUnsupportedAlgorithm},
	}
	for _, tt := range tests {
		p, err := NewPolicy(tt.cfg)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewPolicy(%+v) err = %v, want %v", tt.cfg, err, tt.wantErr)
			}
			continue
		}
		if err != nil {
			t.Errorf("NewPolicy(%+v): %v", tt.cfg, err)
			continue
		}
		if p.Name() != tt.wantName {
			t.Errorf("Name() = %q, want %q", p.Name(), tt.wantName)
		}
	}
}

func TestPolicy_SelectIgnoresReadyOrder(t *testing.T) {
	a := rec("A", 0, 0, 4, 2)
	b := rec("B", 1, 0, 4, 2)
	c := rec("C", 2, 1, 1, 1)

	tests := []struct {
		policy Policy
		want   *model.ProcessRecord
	}{
		{fcfs{}, a},
		{sjf{}, c},
		{srtf{}, c},
		{priority{}, c},
		{preemptivePriority{}, c},
	}
	orders := [][]*model.ProcessRecord{{a, b, c}, {c, b, a}, {b, c, a}}
	for _, tt := range tests {
		for _, ready := range orders {
			if got := tt.policy.Select(ready, 1, nil); got != tt.want {
				t.Errorf("%s.Select(%v) = %s, want %s", tt.policy.Name(), names(ready), got.Name, tt.want.Name)
			}
		}
	}
}

func TestPolicy_TiesResolveByInputOrder(t *testing.T) {
	a := rec("A", 0, 0, 3, 1)
	b := rec("B", 1, 0, 3, 1)
	for _, p := range []Policy{fcfs{}, sjf{}, srtf{}, priority{}, preemptivePriority{}} {
		if got := p.Select([]*model.ProcessRecord{b, a}, 0, nil); got != a {
			t.Errorf("%s picked %s on a full tie, want A", p.Name(), got.Name)
		}
	}
}

func TestPolicy_PreemptiveTieKeepsRunning(t *testing.T) {
	first := rec("first", 0, 1, 3, 1)
	running := rec("running", 1, 0, 3, 1)
	ready := []*model.ProcessRecord{first, running}

	if got := (preemptivePriority{}).Select(ready, 1, running); got != running {
		t.Errorf("priority/preemptive preempted on a tie: got %s", got.Name)
	}
	if got := (srtf{}).Select(ready, 1, running); got != running {
		t.Errorf("sjf/preemptive preempted on a tie: got %s", got.Name)
	}

	urgent := rec("urgent", 2, 1, 3, 0)
	if got := (preemptivePriority{}).Select(append(ready, urgent), 1, running); got != urgent {
		t.Errorf("priority/preemptive did not preempt for a more urgent process: got %s", got.Name)
	}
}

func TestPolicy_Slice(t *testing.T) {
	p := rec("P", 0, 0, 5, 0)
	p.Remaining = 3
	tests := []struct {
		policy Policy
		want   int
	}{
		{fcfs{}, 3},
		{sjf{}, 3},
		{priority{}, 3},
		{srtf{}, 1},
		{preemptivePriority{}, 1},
		{roundRobin{quantum: 2}, 2},
		{roundRobin{quantum: 10}, 3},
	}
	for _, tt := range tests {
		if got := tt.policy.Slice(p); got != tt.want {
			t.Errorf("%s.Slice() = %d, want %d", tt.policy.Name(), got, tt.want)
		}
	}
}

func TestRoundRobin_SelectsHead(t *testing.T) {
	a := rec("A", 0, 0, 1, 0)
	b := rec("B", 1, 0, 9, 0)
	if got := (roundRobin{quantum: 1}).Select([]*model.ProcessRecord{b, a}, 0, nil); got != b {
		t.Errorf("rr selected %s, want queue head B", got.Name)
	}
	if got := (roundRobin{quantum: 1}).Select(nil, 0, nil); got != nil {
		t.Errorf("rr on empty ready set = %v, want nil", got)
	}
}

func names(recs []*model.ProcessRecord) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Name
	}
	return out
}
