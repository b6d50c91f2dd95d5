package workz

import (
	"sync/atomic"
)

type outcome[T any] struct {
	err   error
	value T
}

// Handle is the caller-facing side of a spawned worker. It pairs the
// worker's join primitive (a buffered result channel) with a reader
// reference to the shared StatusCell, so any holder can observe the
// worker's lifecycle without blocking.
//
// A Handle is bound to exactly one worker. The worker holds its own
// reference to the status cell, so abandoning the handle without joining
// detaches the worker: it runs to completion on its own, its final status
// is still written, and the result value is discarded because no one is
// left to join.
type Handle[T any] struct {
	cell   *StatusCell
	result chan outcome[T]
	done   chan struct{}
	thread Thread
	joined atomic.Bool
}

func newHandle[T any](thread Thread) *Handle[T] {
	return &Handle[T]{
		cell:   newStatusCell(),
		result: make(chan outcome[T], 1),
		done:   make(chan struct{}),
		thread: thread,
	}
}

// Status returns a snapshot of the worker's current status.
//
// The status write inside the worker is sequenced strictly before the join
// result is published, so a caller that observes StatusFinished or
// StatusPanicked here is guaranteed that Join returns without blocking.
func (h *Handle[T]) Status() Status {
	return h.cell.Status()
}

// Cell returns the shared status cell. Observers that should outlive the
// handle can hold the cell directly; it remains readable after the handle
// is gone and after the worker has terminated.
func (h *Handle[T]) Cell() *StatusCell {
	return h.cell
}

// Thread returns the worker's identity without blocking or consuming
// the handle.
func (h *Handle[T]) Thread() Thread {
	return h.thread
}

// Done returns a channel that is closed once the worker has terminated and
// its final status and result are observable. It enables select-based
// waiting alongside other channels.
func (h *Handle[T]) Done() <-chan struct{} {
	return h.done
}

// Join blocks until the worker terminates, then returns the worker's value
// or the error describing its panic. Join never panics and never hangs past
// worker termination.
//
// The result is consumed by the first call; subsequent calls return
// ErrAlreadyJoined immediately.
func (h *Handle[T]) Join() (T, error) {
	if !h.joined.CompareAndSwap(false, true) {
		var zero T
		return zero, ErrAlreadyJoined
	}
	out := <-h.result
	return out.value, out.err
}
