package debounce

import (
	"time"
)

// LoopScheduler fires callbacks through post, which should queue them onto the
// owner's event loop. The wall-clock timer runs on its own goroutine but the
// callback itself never does.
type LoopScheduler struct {
	post func(func())
}

// NewLoopScheduler creates a scheduler delivering callbacks through post.
func NewLoopScheduler(post func(func())) *LoopScheduler {
	return &LoopScheduler{post: post}
}

// AfterFunc implements Scheduler.
func (s *LoopScheduler) AfterFunc(d time.Duration, f func()) Task {
	return time.AfterFunc(d, func() { s.post(f) })
}

// Manual is a Scheduler driven by Advance instead of the wall clock.
type Manual struct {
	now   time.Duration
	seq   int
	tasks []*manualTask
}

type manualTask struct {
	at      time.Duration
	seq     int
	f       func()
	stopped bool
	fired   bool
}

func (t *manualTask) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// NewManual creates a manual scheduler at time zero.
func NewManual() *Manual {
	return &Manual{}
}

// AfterFunc implements Scheduler.
func (m *Manual) AfterFunc(d time.Duration, f func()) Task {
	m.seq++
	t := &manualTask{at: m.now + d, seq: m.seq, f: f}
	m.tasks = append(m.tasks, t)
	return t
}

// Advance moves the clock forward by d and runs every task that became due, in
// due-time order. Tasks scheduled by those callbacks run too if they fall due
// within the same advance. It returns the number of callbacks run.
func (m *Manual) Advance(d time.Duration) int {
	target := m.now + d
	ran := 0
	for {
		next := m.nextDue(target)
		if next == nil {
			break
		}
		m.now = max(m.now, next.at)
		next.fired = true
		next.f()
		ran++
	}
	m.now = target
	m.compact()
	return ran
}

// Pending returns the number of tasks neither fired nor stopped.
func (m *Manual) Pending() int {
	n := 0
	for _, t := range m.tasks {
		if !t.fired && !t.stopped {
			n++
		}
	}
	return n
}

// Now returns the elapsed manual time.
func (m *Manual) Now() time.Duration {
	return m.now
}

func (m *Manual) nextDue(until time.Duration) *manualTask {
	var next *manualTask
	for _, t := range m.tasks {
		if t.fired || t.stopped || t.at > until {
			continue
		}
		if next == nil || t.at < next.at || (t.at == next.at && t.seq < next.seq) {
			next = t
		}
	}
	return next
}

func (m *Manual) compact() {
	live := m.tasks[:0]
	for _, t := range m.tasks {
		if !t.fired && !t.stopped {
			live = append(live, t)
		}
	}
	clear(m.tasks[len(live):])
	m.tasks = live
}

var (
	_ Scheduler = (*LoopScheduler)(nil)
	_ Scheduler = (*Manual)(nil)
)
