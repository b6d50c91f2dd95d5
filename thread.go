package workz

import (
	"fmt"
	"sync/atomic"
	"time"
)

var threadSeq atomic.Uint64

// Thread identifies a spawned worker. Goroutines carry no platform
// identity, so the library mints its own: a process-unique id, the
// spawner's name, and the time the worker was started.
//
// Thread is a small value type; it can be copied freely and read without
// blocking or consuming the handle it came from.
type Thread struct {
	started time.Time
	name    Name
	id      uint64
}

func newThread(name Name, started time.Time) Thread {
	return Thread{
		id:      threadSeq.Add(1),
		name:    name,
		started: started,
	}
}

// ID returns the process-unique identifier of the worker.
func (t Thread) ID() uint64 { return t.id }

// Name returns the name the worker was spawned under.
func (t Thread) Name() Name { return t.name }

// Started returns the time the worker was started.
func (t Thread) Started() time.Time { return t.started }

// String returns the worker identity as "name#id", the form used in
// error messages and span tags.
func (t Thread) String() string {
	return fmt.Sprintf("%s#%d", t.name, t.id)
}
