package workz

import (
	"fmt"
	"sync"
)

// Status describes the execution state of a worker.
//
// A worker is always in exactly one of three states: it is still running,
// it returned normally, or it panicked. Status values are cheap to copy
// and safe to compare directly.
type Status int

const (
	// StatusRunning means the worker has not yet terminated. This is the
	// initial state, assigned before the worker goroutine is guaranteed to
	// have been scheduled.
	StatusRunning Status = iota

	// StatusFinished means the worker returned normally.
	StatusFinished

	// StatusPanicked means the worker terminated with a panic.
	StatusPanicked
)

// IsRunning reports whether the worker has not yet terminated.
func (s Status) IsRunning() bool { return s == StatusRunning }

// IsFinished reports whether the worker returned normally.
func (s Status) IsFinished() bool { return s == StatusFinished }

// IsPanicked reports whether the worker terminated with a panic.
func (s Status) IsPanicked() bool { return s == StatusPanicked }

// String returns a human-readable form of the status, suitable for
// log fields and span tags.
func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusFinished:
		return "finished"
	case StatusPanicked:
		return "panicked"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// StatusCell is the shared location holding a worker's current Status.
//
// Exactly one writer exists (the worker goroutine, which writes once, after
// the user function has returned or panicked) and arbitrarily many readers
// (anyone holding the cell, including observers that outlive the handle).
// The cell starts at StatusRunning and transitions at most once, to either
// StatusFinished or StatusPanicked. Terminal states stick: a late write is
// ignored, so readers never observe a regression to StatusRunning.
//
// Status never fails and never blocks beyond the critical section needed
// to read the guarded value.
type StatusCell struct {
	mu     sync.Mutex
	status Status
}

func newStatusCell() *StatusCell {
	return &StatusCell{status: StatusRunning}
}

// Status returns a snapshot of the current worker status. The worker may
// transition between this call and any subsequent action by the caller.
func (c *StatusCell) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// set records the worker's terminal status. Only the first terminal write
// takes effect.
func (c *StatusCell) set(status Status) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status != StatusRunning {
		return
	}
	c.status = status
}
