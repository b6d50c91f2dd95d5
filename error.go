package workz

import (
	"errors"
	"fmt"
	"time"
)

// ErrAlreadyJoined is returned by Handle.Join when the handle's result has
// already been consumed by a previous Join call.
var ErrAlreadyJoined = errors.New("worker already joined")

// PanicError is the error returned by Handle.Join when the worker panicked.
// It carries the recovered panic value, the worker's stack at the point of
// the panic, and enough context to identify which worker failed and when.
//
// The panic never propagates past the worker goroutine: it is converted into
// a PanicError before crossing the goroutine boundary, so the spawning
// goroutine and the process are unaffected.
type PanicError struct {
	Timestamp time.Time     // When the panic was recovered
	Value     any           // The recovered panic value
	Stack     []byte        // Worker stack captured at recovery
	Thread    Thread        // Identity of the worker that panicked
	Duration  time.Duration // How long the worker ran before panicking
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("worker %s panicked after %v: %v", e.Thread, e.Duration, e.Value)
}

// Unwrap returns the panic value when it was itself an error, supporting
// errors.Is and errors.As against the original cause. It returns nil for
// non-error panic values.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
