// Package clock provides the delayed-callback primitive used for debouncing,
// with an event-loop implementation and a virtual one for tests.
package clock

import (
	"sort"
	"sync"
	"time"
)

// Timer is a pending callback that can be stopped before it fires.
type Timer interface {
	// Stop prevents the callback from running. It reports whether the
	// timer was still pending.
	Stop() bool
}

// Clock schedules callbacks.
type Clock interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// Loop schedules with wall-clock timers but never runs a callback on the
// timer goroutine: a due timer hands a run function to Post, and the host
// calls it from its own event loop. Stop and run must both be called on
// that loop.
type Loop struct {
	Post func(run func())
}

func (l Loop) AfterFunc(d time.Duration, fn func()) Timer {
	t := &loopTimer{fn: fn}
	post := l.Post
	t.inner = time.AfterFunc(d, func() {
		if post != nil {
			post(t.run)
		}
	})
	return t
}

type loopTimer struct {
	fn      func()
	stopped bool
	fired   bool
	inner   *time.Timer
}

func (t *loopTimer) Stop() bool {
	pending := !t.stopped && !t.fired
	t.stopped = true
	t.inner.Stop()
	return pending
}

func (t *loopTimer) run() {
	if t.stopped || t.fired {
		return
	}
	t.fired = true
	t.fn()
}

// Task is a cancelable scheduled callback with last-write-wins semantics:
// every Reschedule cancels the pending run and starts a fresh delay. A task
// without a clock never runs.
type Task struct {
	clock Clock
	delay time.Duration
	fn    func()

	mu    sync.Mutex
	timer Timer
}

func NewTask(c Clock, delay time.Duration, fn func()) *Task {
	return &Task{clock: c, delay: delay, fn: fn}
}

// Reschedule cancels any pending run and arms the task again.
func (t *Task) Reschedule() {
	if t.clock == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
	var armed Timer
	armed = t.clock.AfterFunc(t.delay, func() {
		t.mu.Lock()
		if t.timer != armed {
			t.mu.Unlock()
			return
		}
		t.timer = nil
		t.mu.Unlock()
		t.fn()
	})
	t.timer = armed
}

// Cancel drops the pending run, if any.
func (t *Task) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
}

// Pending reports whether a run is armed.
func (t *Task) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.timer != nil
}

func (t *Task) stopLocked() {
	if t.timer == nil {
		return
	}
	t.timer.Stop()
	t.timer = nil
}

// Fake is a virtual clock. Time only moves through Advance, and due
// callbacks run synchronously on the caller's goroutine in deadline order.
type Fake struct {
	now    time.Time
	seq    int
	timers []*fakeTimer
}

type fakeTimer struct {
	at      time.Time
	seq     int
	fn      func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	pending := !t.stopped && !t.fired
	t.stopped = true
	return pending
}

// NewFake returns a virtual clock starting at start.
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

func (f *Fake) Now() time.Time { return f.now }

func (f *Fake) AfterFunc(d time.Duration, fn func()) Timer {
	f.seq++
	t := &fakeTimer{at: f.now.Add(d), seq: f.seq, fn: fn}
	f.timers = append(f.timers, t)
	return t
}

// Advance moves the clock forward by d and fires every timer that becomes
// due, including timers scheduled by callbacks within the window.
func (f *Fake) Advance(d time.Duration) {
	end := f.now.Add(d)
	for {
		next := f.nextDue(end)
		if next == nil {
			break
		}
		f.now = next.at
		next.fired = true
		next.fn()
	}
	f.now = end
	f.compact()
}

// Pending returns the number of armed timers.
func (f *Fake) Pending() int {
	n := 0
	for _, t := range f.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

func (f *Fake) nextDue(end time.Time) *fakeTimer {
	live := make([]*fakeTimer, 0, len(f.timers))
	for _, t := range f.timers {
		if !t.stopped && !t.fired && !t.at.After(end) {
			live = append(live, t)
		}
	}
	if len(live) == 0 {
		return nil
	}
	sort.Slice(live, func(i, j int) bool {
		if live[i].at.Equal(live[j].at) {
			return live[i].seq < live[j].seq
		}
		return live[i].at.Before(live[j].at)
	})
	return live[0]
}

func (f *Fake) compact() {
	kept := f.timers[:0]
	for _, t := range f.timers {
		if !t.stopped && !t.fired {
			kept = append(kept, t)
		}
	}
	f.timers = kept
}
