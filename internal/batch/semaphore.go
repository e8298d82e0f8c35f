package batch

import "context"

// Semaphore bounds how many simulations of a comparison run at once.
// A nil *Semaphore imposes no bound.
type Semaphore struct {
	slots chan struct{}
}

// NewSemaphore returns a semaphore admitting n holders, or nil when n <= 0.
func NewSemaphore(n int) *Semaphore {
	if n <= 0 {
		return nil
	}
	return &Semaphore{slots: make(chan struct{}, n)}
}

// Acquire waits for a slot. It returns false if ctx ends first.
func (s *Semaphore) Acquire(ctx context.Context) bool {
	if ctx.Err() != nil {
		return false
	}
	if s == nil {
		return true
	}
	select {
	case s.slots <- struct{}{}:
		return true
	case <-ctx.Done():
		return false
	}
}

// Release frees a slot taken by Acquire.
func (s *Semaphore) Release() {
	if s == nil {
		return
	}
	<-s.slots
}

// Capacity returns the bound, or 0 when unbounded.
func (s *Semaphore) Capacity() int {
	if s == nil {
		return 0
	}
	return cap(s.slots)
}
