package model

// State is the condition of a process during one simulated tick.
type State string

const (
	StateNotArrived State = "NOT_ARRIVED"
	StateReady      State = "READY"
	StateRunning    State = "RUNNING"
	StateFinished   State = "FINISHED"
)

// String returns the string representation of the state.
func (s State) String() string {
	return string(s)
}

// IsTerminal returns true once the process can no longer run.
func (s State) IsTerminal() bool {
	return s == StateFinished
}

// ValidStateTransitions lists, for each state, the states the next tick may hold.
// Staying in the same state is always allowed.
var ValidStateTransitions = map[State][]State{
	StateNotArrived: {StateReady, StateRunning},
	StateReady:      {StateRunning},
	StateRunning:    {StateReady, StateFinished},
}

// CanTransitionTo returns true if a tick in state s may be followed by a tick in next.
func (s State) CanTransitionTo(next State) bool {
	if s == next {
		return true
	}
	for _, allowed := range ValidStateTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Timeline is the per-tick state history of one process. Index i holds the
// state during tick i.
type Timeline []State

// At returns the state at tick t, or StateNotArrived outside the recorded range.
func (tl Timeline) At(t int) State {
	if t < 0 || t >= len(tl) {
		return StateNotArrived
	}
	return tl[t]
}

// Count returns how many ticks hold state s.
func (tl Timeline) Count(s State) int {
	return tl.CountBefore(s, len(tl))
}

// CountBefore returns how many ticks strictly before t hold state s.
func (tl Timeline) CountBefore(s State, t int) int {
	if t > len(tl) {
		t = len(tl)
	}
	n := 0
	for i := 0; i < t; i++ {
		if tl[i] == s {
			n++
		}
	}
	return n
}
