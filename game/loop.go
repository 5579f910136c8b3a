package game

import (
	"context"
	"time"

	"github.com/milk9111/pixelplatformer/common"
)

const (
	// TickMs is the fixed simulation step.
	TickMs = common.IdealFrameMs
	// MaxUpdatesPerFrame bounds catch-up work after a stall.
	MaxUpdatesPerFrame = 5
)

// Stepper advances the simulation by one fixed tick.
type Stepper interface {
	Step(dtMs float64)
	// Playing reports whether the loop should keep scheduling frames.
	Playing() bool
}

// Presenter is called exactly once per frame after the fixed updates.
type Presenter interface {
	Present()
}

// FrameStats describes one loop frame.
type FrameStats struct {
	DeltaMs     float64
	Updates     int
	Dropped     bool
	Accumulator float64
}

// Metrics observes loop frames.
type Metrics interface {
	ObserveFrame(FrameStats)
	ObserveParticles(n int)
}

type LoopOptions struct {
	TickMs     float64
	MaxUpdates int
	Metrics    Metrics
}

// Loop is a fixed-timestep accumulator loop. It does not own a goroutine;
// the host calls Frame once per display frame, or uses Run.
type Loop struct {
	clock   Clock
	step    Stepper
	present Presenter
	metrics Metrics

	tickMs     float64
	maxUpdates int

	last    time.Time
	acc     float64
	running bool
}

func NewLoop(clock Clock, step Stepper, present Presenter, opts LoopOptions) *Loop {
	if clock == nil {
		clock = SystemClock{}
	}
	if opts.TickMs <= 0 {
		opts.TickMs = TickMs
	}
	if opts.MaxUpdates <= 0 {
		opts.MaxUpdates = MaxUpdatesPerFrame
	}
	return &Loop{
		clock:      clock,
		step:       step,
		present:    present,
		metrics:    opts.Metrics,
		tickMs:     opts.TickMs,
		maxUpdates: opts.MaxUpdates,
	}
}

// Start begins scheduling frames with a fresh timing baseline.
func (l *Loop) Start() {
	l.last = l.clock.Now()
	l.acc = 0
	l.running = true
}

func (l *Loop) Stop() {
	l.running = false
}

func (l *Loop) Running() bool        { return l.running }
func (l *Loop) Accumulator() float64 { return l.acc }

// Frame runs as many fixed updates as the elapsed time allows, up to the
// per-frame cap, then presents once. Time beyond the cap is discarded.
func (l *Loop) Frame() FrameStats {
	var stats FrameStats
	if !l.running {
		return stats
	}
	now := l.clock.Now()
	stats.DeltaMs = sinceMs(l.last, now)
	l.last = now
	if stats.DeltaMs > 0 {
		l.acc += stats.DeltaMs
	}

	for l.acc >= l.tickMs && stats.Updates < l.maxUpdates {
		l.step.Step(l.tickMs)
		l.acc -= l.tickMs
		stats.Updates++
	}
	if stats.Updates >= l.maxUpdates {
		stats.Dropped = l.acc >= l.tickMs
		l.acc = 0
	}
	stats.Accumulator = l.acc

	if l.present != nil {
		l.present.Present()
	}
	if !l.step.Playing() {
		l.running = false
	}
	if l.metrics != nil {
		l.metrics.ObserveFrame(stats)
	}
	return stats
}

// Run drives Frame from a ticker until ctx is done or the loop stops.
func (l *Loop) Run(ctx context.Context, frameInterval time.Duration) error {
	if frameInterval <= 0 {
		frameInterval = time.Duration(l.tickMs * float64(time.Millisecond))
	}
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for l.running {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			l.Frame()
		}
	}
	return nil
}
