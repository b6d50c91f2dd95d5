// Package workz provides observable worker goroutines: single-shot workers
// whose execution status can be polled at any time, from any goroutine,
// including after an abnormal termination that would otherwise stay hidden
// until join time.
//
// # Overview
//
// A plain goroutine gives its spawner no way to ask "is it still running?"
// and a panic inside it takes the process down. workz wraps both concerns:
// every worker runs inside a panic-isolation boundary and records its
// lifecycle state in a shared, lock-guarded StatusCell that any observer can
// read without blocking.
//
// # Core Concepts
//
// Three pieces, in dependency order:
//
//   - Status / StatusCell: a tri-state flag (running, finished, panicked)
//     written exactly once by the worker and read arbitrarily often.
//   - Handle[T]: the caller-facing object pairing the worker's join
//     primitive with a reader reference to the cell.
//   - Spawner[T]: starts workers and carries the observability stack
//     (metrics, tracing, lifecycle hooks, injectable clock).
//
// The status write inside the worker is sequenced strictly before the join
// result is published. A caller that observes a terminal status is therefore
// guaranteed that Join returns immediately.
//
// # Usage Example
//
//	// Spawn a worker and poll it
//	handle := workz.Spawn("sleepy", func() struct{} {
//	    time.Sleep(10 * time.Millisecond)
//	    return struct{}{}
//	})
//	handle.Status().IsRunning() // true, almost certainly
//	time.Sleep(20 * time.Millisecond)
//	handle.Status().IsFinished() // true
//
//	// Spawn a worker that panics - the process survives
//	handle2 := workz.Spawn("doomed", func() int { panic("boom") })
//	<-handle2.Done()
//	handle2.Status().IsPanicked() // true
//	_, err := handle2.Join()      // err is a *workz.PanicError
//
//	// Collect a result
//	handle3 := workz.Spawn("answer", func() int { return 42 })
//	v, _ := handle3.Join() // 42
//
// # Scope
//
// workz is deliberately not a pool. There is no concurrency limit, no
// queue, no scheduling policy, and no cancellation protocol: a spawned
// worker runs to completion or panic. Callers needing cancellation build it
// into the work function itself, for example via a channel the closure
// observes. Abandoning a Handle without joining detaches the worker; its
// status stays readable through any surviving reference to the cell.
package workz
