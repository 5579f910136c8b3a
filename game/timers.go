package game

import (
	"sort"
	"time"
)

// TimerID identifies a pending timer. The zero value is never issued.
type TimerID int

type timer struct {
	id TimerID
	at time.Time
	fn func()
}

// Timers holds deferred callbacks. They only run from Fire, which the host
// calls between frames, so a callback never lands inside a tick.
type Timers struct {
	clock   Clock
	next    TimerID
	pending []timer
}

func NewTimers(clock Clock) *Timers {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Timers{clock: clock}
}

// After schedules fn to run once d has elapsed.
func (t *Timers) After(d time.Duration, fn func()) TimerID {
	t.next++
	t.pending = append(t.pending, timer{id: t.next, at: t.clock.Now().Add(d), fn: fn})
	return t.next
}

// Cancel drops a pending timer. It reports whether the timer was pending.
func (t *Timers) Cancel(id TimerID) bool {
	for i, tm := range t.pending {
		if tm.id == id {
			t.pending = append(t.pending[:i], t.pending[i+1:]...)
			return true
		}
	}
	return false
}

func (t *Timers) CancelAll() {
	t.pending = t.pending[:0]
}

func (t *Timers) Pending() int {
	return len(t.pending)
}

// Fire runs every due timer in due order and returns how many ran. Timers
// scheduled by a callback wait for the next call.
func (t *Timers) Fire() int {
	if len(t.pending) == 0 {
		return 0
	}
	now := t.clock.Now()
	var due []timer
	keep := t.pending[:0]
	for _, tm := range t.pending {
		if !tm.at.After(now) {
			due = append(due, tm)
		} else {
			keep = append(keep, tm)
		}
	}
	t.pending = keep
	sort.SliceStable(due, func(i, j int) bool { return due[i].at.Before(due[j].at) })
	for _, tm := range due {
		tm.fn()
	}
	return len(due)
}
