// Package debounce defers a callback until a burst of triggers goes quiet.
package debounce

import (
	"time"

	"github.com/bethropolis/jotter/internal/logger"
)

// DefaultDelay is the quiescence window used for snapshot recording.
const DefaultDelay = 500 * time.Millisecond

// Task is a scheduled callback that may still be cancelled.
type Task interface {
	// Stop cancels the task. It reports whether the task was still pending.
	Stop() bool
}

// Scheduler runs f once after d has elapsed.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Task
}

// Timer holds at most one pending callback. Every Trigger replaces the pending
// one, so the callback runs once per burst, delay after the last trigger.
//
// Timer is not safe for concurrent use. The scheduler must deliver callbacks on
// the goroutine that calls Trigger and Stop (see LoopScheduler).
type Timer struct {
	sched Scheduler
	delay time.Duration
	fn    func()

	task    Task
	gen     uint64 // Bumped on every Trigger/Stop; stale callbacks compare against it
	pending bool
}

// New creates an idle Timer that calls fn delay after the last Trigger.
func New(sched Scheduler, delay time.Duration, fn func()) *Timer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Timer{sched: sched, delay: delay, fn: fn}
}

// Trigger (re)starts the quiescence window.
func (t *Timer) Trigger() {
	t.cancel()
	gen := t.gen
	t.pending = true
	t.task = t.sched.AfterFunc(t.delay, func() {
		if gen != t.gen || !t.pending {
			// Superseded after the underlying timer already fired
			logger.DebugTagf("debounce", "Debounce: dropping stale callback (gen %d, current %d)", gen, t.gen)
			return
		}
		t.pending = false
		t.task = nil
		t.fn()
	})
}

// Stop cancels the pending callback, if any. It reports whether one was pending.
func (t *Timer) Stop() bool {
	was := t.pending
	t.cancel()
	return was
}

// Flush runs the pending callback immediately. It reports whether one was pending.
func (t *Timer) Flush() bool {
	if !t.Stop() {
		return false
	}
	t.fn()
	return true
}

// Pending reports whether a callback is scheduled.
func (t *Timer) Pending() bool {
	return t.pending
}

// Delay returns the quiescence window.
func (t *Timer) Delay() time.Duration {
	return t.delay
}

// SetDelay changes the window for subsequent triggers.
func (t *Timer) SetDelay(d time.Duration) {
	if d > 0 {
		t.delay = d
	}
}

func (t *Timer) cancel() {
	if t.task != nil {
		t.task.Stop()
		t.task = nil
	}
	t.pending = false
	t.gen++
}
