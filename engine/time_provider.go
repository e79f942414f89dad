package engine

import (
	"sync/atomic"
	"time"
)

// TimeProvider is the wall-clock source for timers and frame deltas
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTimeProvider reads the system clock with its monotonic component
type MonotonicTimeProvider struct{}

// NewMonotonicTimeProvider creates a system clock provider
func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

// Now returns the current time with monotonic clock reading
func (p *MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}

// ManualClock is a TimeProvider that only moves when told to
// Safe for concurrent use; time is kept as an offset from the start instant
type ManualClock struct {
	start  time.Time
	offset atomic.Int64
}

// NewManualClock returns a clock reading start
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{start: start}
}

func (c *ManualClock) Now() time.Time {
	return c.start.Add(time.Duration(c.offset.Load()))
}

// Set jumps to t, which may lie before the current reading
func (c *ManualClock) Set(t time.Time) {
	c.offset.Store(int64(t.Sub(c.start)))
}

// Advance moves the clock forward by d and returns the new reading
func (c *ManualClock) Advance(d time.Duration) time.Time {
	return c.start.Add(time.Duration(c.offset.Add(int64(d))))
}
