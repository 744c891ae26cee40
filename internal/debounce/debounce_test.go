package debounce

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTriggerCoalesces(t *testing.T) {
	m := NewManual()
	calls := 0
	timer := New(m, 500*time.Millisecond, func() { calls++ })

	for i := 0; i < 3; i++ {
		timer.Trigger()
		m.Advance(100 * time.Millisecond)
	}
	assert.Equal(t, 0, calls, "still inside the window")
	assert.True(t, timer.Pending())

	m.Advance(500 * time.Millisecond)
	assert.Equal(t, 1, calls)
	assert.False(t, timer.Pending())
	assert.Equal(t, 0, m.Pending())
}

func TestStopCancels(t *testing.T) {
	m := NewManual()
	calls := 0
	timer := New(m, time.Second, func() { calls++ })

	assert.False(t, timer.Stop(), "nothing pending yet")
	timer.Trigger()
	assert.True(t, timer.Stop())
	m.Advance(2 * time.Second)
	assert.Equal(t, 0, calls)
}

func TestFlushRunsImmediately(t *testing.T) {
	m := NewManual()
	calls := 0
	timer := New(m, time.Second, func() { calls++ })

	assert.False(t, timer.Flush())
	timer.Trigger()
	assert.True(t, timer.Flush())
	assert.Equal(t, 1, calls)

	m.Advance(time.Second)
	assert.Equal(t, 1, calls, "flushed task must not fire again")
}

// staleScheduler hands out tasks whose Stop always fails, like a wall-clock
// timer that has already fired and queued its callback.
type staleScheduler struct {
	queued []func()
}

type unstoppable struct{}

func (unstoppable) Stop() bool { return false }

func (s *staleScheduler) AfterFunc(_ time.Duration, f func()) Task {
	s.queued = append(s.queued, f)
	return unstoppable{}
}

func TestSupersededCallbackIsIgnored(t *testing.T) {
	s := &staleScheduler{}
	calls := 0
	timer := New(s, time.Second, func() { calls++ })

	timer.Trigger()
	timer.Trigger()
	require.Len(t, s.queued, 2)

	s.queued[0]()
	assert.Equal(t, 0, calls, "first callback was superseded")
	s.queued[1]()
	assert.Equal(t, 1, calls)

	timer.Trigger()
	timer.Stop()
	s.queued[2]()
	assert.Equal(t, 1, calls, "stopped callback must not run")
}

func TestDefaultAndSetDelay(t *testing.T) {
	timer := New(NewManual(), 0, func() {})
	assert.Equal(t, DefaultDelay, timer.Delay())
	timer.SetDelay(-1)
	assert.Equal(t, DefaultDelay, timer.Delay())
	timer.SetDelay(time.Second)
	assert.Equal(t, time.Second, timer.Delay())
}

func TestManualOrdersByDueTime(t *testing.T) {
	m := NewManual()
	var order []string
	m.AfterFunc(3*time.Second, func() { order = append(order, "c") })
	m.AfterFunc(time.Second, func() {
		order = append(order, "a")
		m.AfterFunc(time.Second, func() { order = append(order, "b") })
	})

	assert.Equal(t, 3, m.Advance(5*time.Second))
	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Equal(t, 5*time.Second, m.Now())
}

func TestLoopSchedulerPostsCallback(t *testing.T) {
	posted := make(chan func(), 1)
	s := NewLoopScheduler(func(f func()) { posted <- f })

	ran := false
	s.AfterFunc(time.Millisecond, func() { ran = true })

	select {
	case f := <-posted:
		assert.False(t, ran, "callback must wait for the loop")
		f()
		assert.True(t, ran)
	case <-time.After(2 * time.Second):
		t.Fatal("callback was never posted")
	}
}
