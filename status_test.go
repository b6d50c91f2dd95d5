package workz

import (
	"sync"
	"testing"
)

func TestStatus(t *testing.T) {
	t.Run("Predicates", func(t *testing.T) {
		if !StatusRunning.IsRunning() || StatusRunning.IsFinished() || StatusRunning.IsPanicked() {
			t.Error("StatusRunning predicates wrong")
		}
		if StatusFinished.IsRunning() || !StatusFinished.IsFinished() || StatusFinished.IsPanicked() {
			t.Error("StatusFinished predicates wrong")
		}
		if StatusPanicked.IsRunning() || StatusPanicked.IsFinished() || !StatusPanicked.IsPanicked() {
			t.Error("StatusPanicked predicates wrong")
		}
	})

	t.Run("String", func(t *testing.T) {
		cases := map[Status]string{
			StatusRunning:  "running",
			StatusFinished: "finished",
			StatusPanicked: "panicked",
			Status(99):     "status(99)",
		}
		for status, want := range cases {
			if got := status.String(); got != want {
				t.Errorf("expected %q, got %q", want, got)
			}
		}
	})

	t.Run("Zero Value Is Running", func(t *testing.T) {
		var s Status
		if !s.IsRunning() {
			t.Errorf("expected zero value to be running, got %v", s)
		}
	})
}

func TestStatusCell(t *testing.T) {
	t.Run("Starts Running", func(t *testing.T) {
		cell := newStatusCell()
		if got := cell.Status(); !got.IsRunning() {
			t.Errorf("expected running, got %v", got)
		}
	})

	t.Run("Transitions Once To Finished", func(t *testing.T) {
		cell := newStatusCell()
		cell.set(StatusFinished)
		if got := cell.Status(); !got.IsFinished() {
			t.Errorf("expected finished, got %v", got)
		}
	})

	t.Run("Terminal State Sticks", func(t *testing.T) {
		cell := newStatusCell()
		cell.set(StatusFinished)
		cell.set(StatusPanicked)
		if got := cell.Status(); !got.IsFinished() {
			t.Errorf("expected finished to stick, got %v", got)
		}

		cell = newStatusCell()
		cell.set(StatusPanicked)
		cell.set(StatusFinished)
		if got := cell.Status(); !got.IsPanicked() {
			t.Errorf("expected panicked to stick, got %v", got)
		}
	})

	t.Run("Concurrent Readers", func(t *testing.T) {
		cell := newStatusCell()

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 1000; j++ {
					switch cell.Status() {
					case StatusRunning, StatusFinished:
					default:
						t.Error("observed a status that was never written")
						return
					}
				}
			}()
		}

		cell.set(StatusFinished)
		wg.Wait()

		if got := cell.Status(); !got.IsFinished() {
			t.Errorf("expected finished, got %v", got)
		}
	})
}
