package localsync

import (
	"errors"
	"sync"
)

// ErrRejected is returned by Result.Wait when the operation rejected.
var ErrRejected = errors.New("sync rejected")

// State is the lifecycle state of a Result.
type State int

const (
	// Pending means the operation has been scheduled but not yet run.
	Pending State = iota
	// Resolved means the operation succeeded; the Result carries its value.
	Resolved
	// Rejected means the operation failed; the Result carries no value.
	Rejected
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Resolved:
		return "resolved"
	case Rejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Result is the future-like handle returned by Sync. It starts Pending and
// makes exactly one terminal transition, to Resolved or Rejected. A Result
// is created fresh per call and never reused.
type Result struct {
	mu    sync.Mutex
	state State
	value any
	done  chan struct{}
}

func newResult() *Result {
	return &Result{done: make(chan struct{})}
}

// State returns the current lifecycle state.
func (r *Result) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Value returns the resolved value, or nil while Pending or after Rejected.
func (r *Result) Value() any {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.value
}

// Done returns a channel that is closed once the Result reaches a terminal
// state.
func (r *Result) Done() <-chan struct{} {
	return r.done
}

// Wait blocks until the Result is terminal. It returns the resolved value,
// or ErrRejected if the operation rejected.
func (r *Result) Wait() (any, error) {
	<-r.done
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == Rejected {
		return nil, ErrRejected
	}
	return r.value, nil
}

// resolve moves the Result to Resolved with the given value. A second
// terminal transition is a no-op.
func (r *Result) resolve(v any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != Pending {
		return
	}
	r.state = Resolved
	r.value = v
	close(r.done)
}

// reject moves the Result to Rejected. A second terminal transition is a
// no-op.
func (r *Result) reject() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != Pending {
		return
	}
	r.state = Rejected
	close(r.done)
}
