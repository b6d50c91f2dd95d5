package workz

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zoobzio/clockz"
	"github.com/zoobzio/hookz"
	"github.com/zoobzio/metricz"
	"github.com/zoobzio/tracez"
)

// Observability constants for spawned workers.
const (
	// Metrics.
	WorkerSpawnedTotal  = metricz.Key("worker.spawned.total")
	WorkerFinishedTotal = metricz.Key("worker.finished.total")
	WorkerPanicsTotal   = metricz.Key("worker.panics.total")
	WorkerActive        = metricz.Key("worker.active")
	WorkerDurationMs    = metricz.Key("worker.duration.ms")

	// Spans.
	WorkerRunSpan = tracez.Key("worker.run")

	// Tags.
	WorkerTagName   = tracez.Tag("worker.name")
	WorkerTagID     = tracez.Tag("worker.id")
	WorkerTagStatus = tracez.Tag("worker.status")
	WorkerTagPanic  = tracez.Tag("worker.panic")

	// Hook event keys.
	WorkerEventStarted  = hookz.Key("worker.started")
	WorkerEventFinished = hookz.Key("worker.finished")
	WorkerEventPanicked = hookz.Key("worker.panicked")
)

// Name is a type alias for spawner and worker names.
// Using this type encourages storing names as constants rather than
// using inline strings throughout your code.
//
// Example:
//
//	const (
//	    IndexRebuildName Name = "index-rebuild"
//	    CacheWarmupName  Name = "cache-warmup"
//	)
type Name = string

// WorkerEvent represents a worker lifecycle event.
// This is emitted via hookz when a worker starts, finishes, or panics,
// allowing external systems to monitor worker health without polling status.
type WorkerEvent struct {
	Name       Name          // Spawner name
	Thread     Thread        // Identity of the worker
	Status     Status        // Worker status at the time of the event
	PanicValue any           // Recovered panic value (for worker.panicked)
	Duration   time.Duration // How long the worker ran (terminal events only)
	Timestamp  time.Time     // When the event occurred
}

// Spawner starts workers whose lifecycle is observable at any time.
//
// Each spawned worker runs the user function inside a panic-isolation
// boundary and records its terminal state in a shared StatusCell exactly
// once: StatusFinished on normal return, StatusPanicked on panic. The panic
// is contained at the worker boundary and surfaced as data through the
// returned Handle, never crashing the spawning goroutine or the process.
//
// Spawner is not a pool: it applies no concurrency limit, no queue, and no
// scheduling policy. It also provides no cancellation path - a spawned
// worker runs to completion. Callers that need cancellation must build it
// into the work function itself, for example via a flag or channel the
// closure observes.
//
// Example:
//
//	spawner := workz.NewSpawner[int]("report-builder")
//	handle := spawner.Spawn(func() int {
//	    return buildReport()
//	})
//
//	for handle.Status().IsRunning() {
//	    // do something else
//	}
//	report, err := handle.Join()
//
// # Observability
//
// Spawner provides observability through metrics, tracing, and events:
//
// Metrics:
//   - worker.spawned.total: Counter of workers started
//   - worker.finished.total: Counter of workers that returned normally
//   - worker.panics.total: Counter of workers that panicked
//   - worker.active: Gauge of currently running workers
//   - worker.duration.ms: Gauge of the last worker's run duration
//
// Traces:
//   - worker.run: Span covering a worker's execution, tagged with the
//     worker identity and its terminal status
//
// Events (via hooks):
//   - worker.started: Fired when a worker begins executing
//   - worker.finished: Fired when a worker returns normally
//   - worker.panicked: Fired when a worker panics
//
// Example with hooks:
//
//	spawner.OnPanicked(func(_ context.Context, event workz.WorkerEvent) error {
//	    log.Printf("worker %s panicked: %v", event.Thread, event.PanicValue)
//	    return nil
//	})
type Spawner[T any] struct {
	name    Name
	clock   clockz.Clock
	metrics *metricz.Registry
	tracer  *tracez.Tracer
	hooks   *hookz.Hooks[WorkerEvent]
	active  atomic.Int64
	mu      sync.RWMutex
}

// NewSpawner creates a Spawner for workers producing values of type T.
func NewSpawner[T any](name Name) *Spawner[T] {
	// Initialize observability
	metrics := metricz.New()
	metrics.Counter(WorkerSpawnedTotal)
	metrics.Counter(WorkerFinishedTotal)
	metrics.Counter(WorkerPanicsTotal)
	metrics.Gauge(WorkerActive)
	metrics.Gauge(WorkerDurationMs)

	return &Spawner[T]{
		name:    name,
		clock:   clockz.RealClock,
		metrics: metrics,
		tracer:  tracez.New(),
		hooks:   hookz.New[WorkerEvent](),
	}
}

// Name returns the name of this spawner.
func (s *Spawner[T]) Name() Name {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

// Spawn starts a worker that runs work on its own goroutine and returns a
// Handle for observing and joining it.
//
// The worker writes its terminal status to the shared cell strictly before
// the join result is published, so any caller that sees a terminal status
// via Handle.Status is guaranteed a non-blocking Join. Spawning itself never
// blocks beyond goroutine-creation cost.
func (s *Spawner[T]) Spawn(work func() T) *Handle[T] {
	clock := s.getClock()
	started := clock.Now()
	h := newHandle[T](newThread(s.Name(), started))

	s.metrics.Counter(WorkerSpawnedTotal).Inc()
	s.metrics.Gauge(WorkerActive).Set(float64(s.active.Add(1)))

	go func() {
		defer close(h.done)

		_, span := s.tracer.StartSpan(context.Background(), WorkerRunSpan)
		span.SetTag(WorkerTagName, h.thread.Name())
		span.SetTag(WorkerTagID, fmt.Sprintf("%d", h.thread.ID()))
		defer span.Finish()

		_ = s.hooks.Emit(context.Background(), WorkerEventStarted, WorkerEvent{ //nolint:errcheck
			Name:      h.thread.Name(),
			Thread:    h.thread,
			Status:    StatusRunning,
			Timestamp: started,
		})

		value, perr := runIsolated(work)
		elapsed := clock.Now().Sub(started)

		// The status write must land before the result is published.
		if perr != nil {
			perr.Thread = h.thread
			perr.Timestamp = clock.Now()
			perr.Duration = elapsed
			h.cell.set(StatusPanicked)
			h.result <- outcome[T]{err: perr}
		} else {
			h.cell.set(StatusFinished)
			h.result <- outcome[T]{value: value}
		}

		s.metrics.Gauge(WorkerActive).Set(float64(s.active.Add(-1)))
		s.metrics.Gauge(WorkerDurationMs).Set(float64(elapsed.Milliseconds()))

		if perr != nil {
			s.metrics.Counter(WorkerPanicsTotal).Inc()
			span.SetTag(WorkerTagStatus, StatusPanicked.String())
			span.SetTag(WorkerTagPanic, fmt.Sprintf("%v", perr.Value))

			_ = s.hooks.Emit(context.Background(), WorkerEventPanicked, WorkerEvent{ //nolint:errcheck
				Name:       h.thread.Name(),
				Thread:     h.thread,
				Status:     StatusPanicked,
				PanicValue: perr.Value,
				Duration:   elapsed,
				Timestamp:  perr.Timestamp,
			})
		} else {
			s.metrics.Counter(WorkerFinishedTotal).Inc()
			span.SetTag(WorkerTagStatus, StatusFinished.String())

			_ = s.hooks.Emit(context.Background(), WorkerEventFinished, WorkerEvent{ //nolint:errcheck
				Name:      h.thread.Name(),
				Thread:    h.thread,
				Status:    StatusFinished,
				Duration:  elapsed,
				Timestamp: clock.Now(),
			})
		}
	}()

	return h
}

// WithClock sets a custom clock for testing.
func (s *Spawner[T]) WithClock(clock clockz.Clock) *Spawner[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock = clock
	return s
}

// getClock returns the clock to use.
func (s *Spawner[T]) getClock() clockz.Clock {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.clock == nil {
		return clockz.RealClock
	}
	return s.clock
}

// Metrics returns the metrics registry for this spawner.
func (s *Spawner[T]) Metrics() *metricz.Registry {
	return s.metrics
}

// Tracer returns the tracer for this spawner.
func (s *Spawner[T]) Tracer() *tracez.Tracer {
	return s.tracer
}

// ActiveWorkers returns the number of workers spawned by this spawner that
// have not yet terminated.
func (s *Spawner[T]) ActiveWorkers() int {
	return int(s.active.Load())
}

// Close gracefully shuts down observability components. Workers already
// spawned are unaffected and run to completion.
func (s *Spawner[T]) Close() error {
	if s.tracer != nil {
		s.tracer.Close()
	}
	s.hooks.Close()
	return nil
}

// OnStarted registers a handler for when a worker begins executing.
// The handler is called asynchronously.
func (s *Spawner[T]) OnStarted(handler func(context.Context, WorkerEvent) error) error {
	_, err := s.hooks.Hook(WorkerEventStarted, handler)
	return err
}

// OnFinished registers a handler for when a worker returns normally.
// The handler is called asynchronously after the worker's terminal status
// and join result are observable.
func (s *Spawner[T]) OnFinished(handler func(context.Context, WorkerEvent) error) error {
	_, err := s.hooks.Hook(WorkerEventFinished, handler)
	return err
}

// OnPanicked registers a handler for when a worker panics.
// The handler is called asynchronously after the panic has been contained
// and converted into the worker's join result.
func (s *Spawner[T]) OnPanicked(handler func(context.Context, WorkerEvent) error) error {
	_, err := s.hooks.Hook(WorkerEventPanicked, handler)
	return err
}

// Spawn starts a single worker without constructing a Spawner. It provides
// the same status, containment, and join guarantees with none of the
// observability plumbing - the lightweight form for one-shot use.
//
// Example:
//
//	handle := workz.Spawn("answer", func() int { return 42 })
//	value, err := handle.Join()
func Spawn[T any](name Name, work func() T) *Handle[T] {
	started := time.Now()
	h := newHandle[T](newThread(name, started))

	go func() {
		defer close(h.done)

		value, perr := runIsolated(work)

		if perr != nil {
			perr.Thread = h.thread
			perr.Timestamp = time.Now()
			perr.Duration = time.Since(started)
			h.cell.set(StatusPanicked)
			h.result <- outcome[T]{err: perr}
			return
		}
		h.cell.set(StatusFinished)
		h.result <- outcome[T]{value: value}
	}()

	return h
}

// runIsolated invokes work inside a panic-isolation boundary. A panic is
// recovered and returned as a *PanicError with the worker stack attached;
// identity and timing fields are filled in by the caller.
func runIsolated[T any](work func() T) (value T, perr *PanicError) {
	defer func() {
		if r := recover(); r != nil {
			perr = &PanicError{
				Value: r,
				Stack: debug.Stack(),
			}
		}
	}()
	value = work()
	return value, nil
}
