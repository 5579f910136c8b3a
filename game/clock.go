package game

import (
	"sync"
	"time"
)

// Clock is the monotonic time source of the loop and timers.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ManualClock only moves when told to. It drives tests and headless replays.
type ManualClock struct {
	mu  sync.RWMutex
	now time.Time
}

func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// AdvanceMs advances the clock by a fractional number of milliseconds.
func (c *ManualClock) AdvanceMs(ms float64) {
	c.Advance(time.Duration(ms * float64(time.Millisecond)))
}

func sinceMs(from, to time.Time) float64 {
	return float64(to.Sub(from)) / float64(time.Millisecond)
}
