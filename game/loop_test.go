package game

import (
	"context"
	"math"
	"testing"
	"time"
)

type countingStepper struct {
	steps   int
	dts     []float64
	playing bool
	stopAt  int
}

func (s *countingStepper) Step(dt float64) {
	s.steps++
	s.dts = append(s.dts, dt)
	if s.stopAt > 0 && s.steps >= s.stopAt {
		s.playing = false
	}
}

func (s *countingStepper) Playing() bool { return s.playing }

type countingPresenter struct{ frames int }

func (p *countingPresenter) Present() { p.frames++ }

type recordingMetrics struct {
	frames []FrameStats
}

func (r *recordingMetrics) ObserveFrame(s FrameStats) { r.frames = append(r.frames, s) }
func (r *recordingMetrics) ObserveParticles(int)      {}

func newTestLoop() (*Loop, *ManualClock, *countingStepper, *countingPresenter) {
	clock := NewManualClock(time.Unix(0, 0))
	step := &countingStepper{playing: true}
	present := &countingPresenter{}
	return NewLoop(clock, step, present, LoopOptions{}), clock, step, present
}

func TestLoopCapsCatchUpAfterStall(t *testing.T) {
	l, clock, step, present := newTestLoop()
	l.Start()
	clock.Advance(500 * time.Millisecond)

	stats := l.Frame()
	if stats.Updates != MaxUpdatesPerFrame || step.steps != 5 {
		t.Fatalf("expected 5 updates, got %d", stats.Updates)
	}
	if l.Accumulator() != 0 {
		t.Fatalf("accumulator should be dropped to 0, got %v", l.Accumulator())
	}
	if !stats.Dropped {
		t.Fatalf("expected the frame to report dropped time")
	}
	if present.frames != 1 {
		t.Fatalf("expected one render, got %d", present.frames)
	}
	for _, dt := range step.dts {
		if dt != TickMs {
			t.Fatalf("updates must use the fixed tick, got %v", dt)
		}
	}
}

func TestLoopAccumulates(t *testing.T) {
	cases := []struct {
		name    string
		deltas  []time.Duration
		updates int
		acc     float64
	}{
		{"under_one_tick", []time.Duration{10 * time.Millisecond}, 0, 10},
		{"one_tick_and_change", []time.Duration{20 * time.Millisecond}, 1, 20 - TickMs},
		{"two_frames_make_a_tick", []time.Duration{10 * time.Millisecond, 10 * time.Millisecond}, 1, 20 - TickMs},
		{"three_ticks", []time.Duration{51 * time.Millisecond}, 3, 51 - 3*TickMs},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			l, clock, step, present := newTestLoop()
			l.Start()
			for _, d := range c.deltas {
				clock.Advance(d)
				l.Frame()
			}
			if step.steps != c.updates {
				t.Fatalf("expected %d updates, got %d", c.updates, step.steps)
			}
			if math.Abs(l.Accumulator()-c.acc) > 1e-6 {
				t.Fatalf("accumulator %v, want %v", l.Accumulator(), c.acc)
			}
			if present.frames != len(c.deltas) {
				t.Fatalf("expected one render per frame, got %d", present.frames)
			}
		})
	}
}

func TestLoopStopsWhenNotPlaying(t *testing.T) {
	l, clock, step, present := newTestLoop()
	step.stopAt = 2
	l.Start()
	clock.Advance(100 * time.Millisecond)
	l.Frame()
	if l.Running() {
		t.Fatalf("loop should stop once the stepper leaves playing")
	}
	if step.steps != 5 {
		t.Fatalf("the frame in progress still finishes its updates, got %d", step.steps)
	}

	clock.Advance(100 * time.Millisecond)
	if stats := l.Frame(); stats.Updates != 0 || present.frames != 1 {
		t.Fatalf("stopped loop must not step or render")
	}
}

func TestLoopStartResetsTiming(t *testing.T) {
	l, clock, step, _ := newTestLoop()
	l.Start()
	clock.Advance(10 * time.Millisecond)
	l.Frame()
	l.Stop()

	clock.Advance(time.Hour)
	l.Start()
	if l.Accumulator() != 0 {
		t.Fatalf("start should clear the accumulator")
	}
	l.Frame()
	if step.steps != 0 {
		t.Fatalf("paused time leaked into the loop: %d updates", step.steps)
	}
}

func TestLoopMetrics(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	metrics := &recordingMetrics{}
	l := NewLoop(clock, &countingStepper{playing: true}, nil, LoopOptions{Metrics: metrics})
	l.Start()
	clock.Advance(40 * time.Millisecond)
	l.Frame()
	if len(metrics.frames) != 1 || metrics.frames[0].Updates != 2 {
		t.Fatalf("unexpected metrics %+v", metrics.frames)
	}
}

func TestLoopRun(t *testing.T) {
	step := &countingStepper{playing: true, stopAt: 3}
	l := NewLoop(SystemClock{}, step, nil, LoopOptions{})
	l.Start()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := l.Run(ctx, time.Millisecond); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if step.steps < 3 {
		t.Fatalf("expected at least 3 steps, got %d", step.steps)
	}
}

func TestLoopRunCancelled(t *testing.T) {
	l := NewLoop(SystemClock{}, &countingStepper{playing: true}, nil, LoopOptions{})
	l.Start()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := l.Run(ctx, time.Millisecond); err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
