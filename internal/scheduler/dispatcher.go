package scheduler

import (
	"log/slog"
	"sort"

	"github.com/me/cpusim/internal/logging"
	"github.com/me/cpusim/pkg/model"
)

// Dispatcher runs one simulation. It owns the ready queue and every
// ProcessRecord for the lifetime of the run; construct a fresh one per run.
type Dispatcher struct {
	policy  Policy
	records []*model.ProcessRecord // input order
	pending []*model.ProcessRecord // not yet admitted, by (arrival, index)
	next    int                    // first unadmitted entry of pending

	queue  *ReadyQueue
	queued map[*model.ProcessRecord]bool

	running *model.ProcessRecord // dispatched last and still unfinished
	tick    int
	done    int

	logger *slog.Logger
}

// NewDispatcher creates a dispatcher for processes, which must already be
// validated. A nil logger discards output.
func NewDispatcher(policy Policy, processes []model.Process, logger *slog.Logger) *Dispatcher {
	records := make([]*model.ProcessRecord, len(processes))
	for i, p := range processes {
		records[i] = model.NewProcessRecord(p, i)
	}
	pending := append([]*model.ProcessRecord(nil), records...)
	sort.SliceStable(pending, func(i, j int) bool {
		return byArrival(pending[i], pending[j])
	})
	return &Dispatcher{
		policy:  policy,
		records: records,
		pending: pending,
		queue:   NewReadyQueue(),
		queued:  make(map[*model.ProcessRecord]bool, len(records)),
		logger:  logging.OrDiscard(logger).With("component", "dispatcher", "policy", policy.Name()),
	}
}

// Done reports whether every process has completed.
func (d *Dispatcher) Done() bool {
	return d.done == len(d.records)
}

// Now returns the current tick.
func (d *Dispatcher) Now() int {
	return d.tick
}

// Records returns the process records in input order.
func (d *Dispatcher) Records() []*model.ProcessRecord {
	return d.records
}

// Run ticks until every process has completed and returns the elapsed
// duration. The loop terminates because every dispatch consumes at least one
// unit of remaining burst and arrivals are finite.
func (d *Dispatcher) Run() int {
	for !d.Done() {
		d.Tick()
	}
	d.logger.Debug("simulation finished", "duration", d.tick, "processes", len(d.records))
	return d.tick
}

// Tick makes one scheduling decision. It either records a single idle tick or
// runs the selected process for the slice its policy grants.
func (d *Dispatcher) Tick() {
	if d.Done() {
		return
	}
	d.admit()

	var selected *model.ProcessRecord
	if d.queue.Size() > 0 {
		selected = d.policy.Select(d.queue.Snapshot(), d.tick, d.running)
	}
	if selected == nil {
		d.record(nil)
		d.tick++
		d.running = nil
		return
	}

	d.queue.Remove(selected)
	delete(d.queued, selected)

	if selected.ResponseTime == nil {
		rt := d.tick - selected.Arrival
		selected.ResponseTime = &rt
	}

	slice := min(max(d.policy.Slice(selected), 1), selected.Remaining)
	d.logger.Debug("dispatch", "tick", d.tick, "process", selected.Name, "slice", slice, "remaining", selected.Remaining)

	for i := 0; i < slice; i++ {
		d.record(selected)
		selected.Remaining--
		d.tick++
		d.admit()
	}

	if selected.Remaining == 0 {
		d.complete(selected)
		d.running = nil
		return
	}
	// Arrivals during the slice were admitted above, so they precede it.
	d.enqueue(selected)
	d.running = selected
}

// admit moves every process with arrival <= tick into the ready queue.
func (d *Dispatcher) admit() {
	for d.next < len(d.pending) && d.pending[d.next].Arrival <= d.tick {
		d.enqueue(d.pending[d.next])
		d.next++
	}
}

func (d *Dispatcher) enqueue(p *model.ProcessRecord) {
	if d.queued[p] {
		return
	}
	d.queued[p] = true
	d.queue.Enqueue(p)
}

// record appends the state of every process at the current tick.
func (d *Dispatcher) record(running *model.ProcessRecord) {
	for _, rec := range d.records {
		var s model.State
		switch {
		case rec == running:
			s = model.StateRunning
		case rec.Completed:
			s = model.StateFinished
		case rec.Arrival <= d.tick:
			s = model.StateReady
		default:
			s = model.StateNotArrived
		}
		rec.Lifecycle = append(rec.Lifecycle, s)
	}
}

func (d *Dispatcher) complete(p *model.ProcessRecord) {
	ct := d.tick
	p.Completed = true
	p.CompletionTime = &ct
	p.WaitingTime = ct - p.Arrival - p.Burst
	d.done++
	d.logger.Debug("process finished", "tick", ct, "process", p.Name, "waiting_time", p.WaitingTime)
}
