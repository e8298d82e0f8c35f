package scheduler

import "github.com/me/cpusim/pkg/model"

// ReadyQueue is a FIFO of processes waiting for the CPU. It does not
// de-duplicate; the Dispatcher guarantees a process is queued at most once.
type ReadyQueue struct {
	items []*model.ProcessRecord
}

// NewReadyQueue creates an empty queue.
func NewReadyQueue() *ReadyQueue {
	return &ReadyQueue{}
}

// Enqueue appends p at the tail.
func (q *ReadyQueue) Enqueue(p *model.ProcessRecord) {
	q.items = append(q.items, p)
}

// Dequeue removes and returns the head, or false when the queue is empty.
func (q *ReadyQueue) Dequeue() (*model.ProcessRecord, bool) {
	if len(q.items) == 0 {
		return nil, false
	}
	p := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	return p, true
}

// Remove deletes p from anywhere in the queue, keeping the order of the rest.
func (q *ReadyQueue) Remove(p *model.ProcessRecord) bool {
	for i, item := range q.items {
		if item == p {
			copy(q.items[i:], q.items[i+1:])
			q.items[len(q.items)-1] = nil
			q.items = q.items[:len(q.items)-1]
			return true
		}
	}
	return false
}

// Size returns the number of queued processes.
func (q *ReadyQueue) Size() int {
	return len(q.items)
}

// Snapshot returns the queued processes head first. The slice is a copy.
func (q *ReadyQueue) Snapshot() []*model.ProcessRecord {
	out := make([]*model.ProcessRecord, len(q.items))
	copy(out, q.items)
	return out
}
