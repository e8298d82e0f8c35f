package scheduler

import (
	"github.com/me/cpusim/pkg/model"
)

// Policy decides which ready process runs next and for how long.
// Implementations are read-only over the records they are given.
type Policy interface {
	// Name returns the label used in logs and reports.
	Name() string

	// Select returns the process to dispatch at tick among ready (which is in
	// ready-queue order and never empty), or nil to leave the CPU idle.
	// running is the process dispatched on the previous tick if it is still
	// unfinished, otherwise nil.
	Select(ready []*model.ProcessRecord, tick int, running *model.ProcessRecord) *model.ProcessRecord

	// Slice returns how many ticks p may run once dispatched. The Dispatcher
	// clamps the value to [1, p.Remaining].
	Slice(p *model.ProcessRecord) int
}

// NewPolicy returns the policy for cfg. cfg must already be valid.
func NewPolicy(cfg model.SimulationConfig) (Policy, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	preemptive := cfg.Modality == model.ModalityPreemptive
	switch cfg.Algorithm {
	case model.AlgorithmFCFS:
		return fcfs{}, nil
	case model.AlgorithmSJF:
		if preemptive {
			return srtf{}, nil
		}
		return sjf{}, nil
	case model.AlgorithmRR:
		return roundRobin{quantum: cfg.Quantum}, nil
	case model.AlgorithmPriority:
		if preemptive {
			return preemptivePriority{}, nil
		}
		return priority{}, nil
	}
	return nil, &model.UnsupportedAlgorithmError{Name: string(cfg.Algorithm)}
}

// lessFunc orders two candidates; it must be a strict total order so that the
// choice never depends on the order of ready.
type lessFunc func(a, b *model.ProcessRecord) bool

// pick returns the minimum of ready under less.
func pick(ready []*model.ProcessRecord, less lessFunc) *model.ProcessRecord {
	var best *model.ProcessRecord
	for _, p := range ready {
		if best == nil || less(p, best) {
			best = p
		}
	}
	return best
}

func byArrival(a, b *model.ProcessRecord) bool {
	if a.Arrival != b.Arrival {
		return a.Arrival < b.Arrival
	}
	return a.Index < b.Index
}

func byBurst(a, b *model.ProcessRecord) bool {
	if a.Burst != b.Burst {
		return a.Burst < b.Burst
	}
	return byArrival(a, b)
}

func byRemaining(a, b *model.ProcessRecord) bool {
	if a.Remaining != b.Remaining {
		return a.Remaining < b.Remaining
	}
	return byArrival(a, b)
}

func byPriority(a, b *model.ProcessRecord) bool {
	if a.Priority != b.Priority {
		return a.Priority < b.Priority
	}
	return a.Index < b.Index
}

func runToCompletion(p *model.ProcessRecord) int { return p.Remaining }

// fcfs runs the earliest arrival to completion.
type fcfs struct{}

func (fcfs) Name() string { return "fcfs" }

func (fcfs) Select(ready []*model.ProcessRecord, _ int, _ *model.ProcessRecord) *model.ProcessRecord {
	return pick(ready, byArrival)
}

func (fcfs) Slice(p *model.ProcessRecord) int { return runToCompletion(p) }

// sjf runs the shortest total burst to completion.
type sjf struct{}

func (sjf) Name() string { return "sjf/nonpreemptive" }

func (sjf) Select(ready []*model.ProcessRecord, _ int, _ *model.ProcessRecord) *model.ProcessRecord {
	return pick(ready, byBurst)
}

func (sjf) Slice(p *model.ProcessRecord) int { return runToCompletion(p) }

// srtf re-decides every tick on the shortest remaining time. A running process
// whose remaining time ties the best candidate keeps the CPU.
type srtf struct{}

func (srtf) Name() string { return "sjf/preemptive" }

func (srtf) Select(ready []*model.ProcessRecord, _ int, running *model.ProcessRecord) *model.ProcessRecord {
	best := pick(ready, byRemaining)
	if running != nil && best != nil && running.Remaining == best.Remaining && contains(ready, running) {
		return running
	}
	return best
}

func (srtf) Slice(*model.ProcessRecord) int { return 1 }

// roundRobin runs the head of the ready queue for at most quantum ticks.
type roundRobin struct {
	quantum int
}

func (roundRobin) Name() string { return "rr" }

func (roundRobin) Select(ready []*model.ProcessRecord, _ int, _ *model.ProcessRecord) *model.ProcessRecord {
	if len(ready) == 0 {
		return nil
	}
	return ready[0]
}

func (rr roundRobin) Slice(p *model.ProcessRecord) int {
	return min(rr.quantum, p.Remaining)
}

// priority runs the most urgent process to completion.
type priority struct{}

func (priority) Name() string { return "priority/nonpreemptive" }

func (priority) Select(ready []*model.ProcessRecord, _ int, _ *model.ProcessRecord) *model.ProcessRecord {
	return pick(ready, byPriority)
}

func (priority) Slice(p *model.ProcessRecord) int { return runToCompletion(p) }

// preemptivePriority re-decides every tick on priority. A running process whose
// priority ties the best candidate keeps the CPU.
type preemptivePriority struct{}

func (preemptivePriority) Name() string { return "priority/preemptive" }

func (preemptivePriority) Select(ready []*model.ProcessRecord, _ int, running *model.ProcessRecord) *model.ProcessRecord {
	best := pick(ready, byPriority)
	if running != nil && best != nil && running.Priority == best.Priority && contains(ready, running) {
		return running
	}
	return best
}

func (preemptivePriority) Slice(*model.ProcessRecord) int { return 1 }

func contains(ready []*model.ProcessRecord, p *model.ProcessRecord) bool {
	for _, r := range ready {
		if r == p {
			return true
		}
	}
	return false
}
