package engine

import (
	"context"
	"sync/atomic"
	"time"
)

// FrameFunc receives the clock reading and the clamped delta since the previous frame
type FrameFunc func(now time.Time, dt time.Duration)

// Loop drives a FrameFunc from a ticker until its context ends
type Loop struct {
	clock    TimeProvider
	interval time.Duration
	maxDelta time.Duration

	frames atomic.Uint64
}

// NewLoop creates a frame loop; maxDelta caps dt after stalls, 0 disables the cap
func NewLoop(clock TimeProvider, interval, maxDelta time.Duration) *Loop {
	return &Loop{
		clock:    clock,
		interval: interval,
		maxDelta: maxDelta,
	}
}

// Run blocks, calling fn once per tick, and returns nil when ctx is cancelled
func (l *Loop) Run(ctx context.Context, fn FrameFunc) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	last := l.clock.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			now := l.clock.Now()
			dt := now.Sub(last)
			last = now
			if dt < 0 {
				dt = 0
			}
			if l.maxDelta > 0 && dt > l.maxDelta {
				dt = l.maxDelta
			}
			l.frames.Add(1)
			fn(now, dt)
		}
	}
}

// Frames returns the number of frames delivered so far
func (l *Loop) Frames() uint64 {
	return l.frames.Load()
}
