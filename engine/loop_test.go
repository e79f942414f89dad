package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// TestLoopRunsUntilCancelled verifies frames are delivered and Run returns on cancel
func TestLoopRunsUntilCancelled(t *testing.T) {
	defer goleak.VerifyNone(t)

	loop := NewLoop(NewMonotonicTimeProvider(), 2*time.Millisecond, 50*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	frames := make(chan time.Duration, 1024)
	done := make(chan error, 1)
	go func() {
		done <- loop.Run(ctx, func(_ time.Time, dt time.Duration) {
			select {
			case frames <- dt:
			default:
			}
		})
	}()

	require.Eventually(t, func() bool { return loop.Frames() >= 3 }, time.Second, time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	close(frames)
	for dt := range frames {
		assert.GreaterOrEqual(t, dt, time.Duration(0))
		assert.LessOrEqual(t, dt, 50*time.Millisecond)
	}
}

// TestLoopClampsDelta verifies a stalled clock jump is capped at maxDelta
func TestLoopClampsDelta(t *testing.T) {
	defer goleak.VerifyNone(t)

	src := NewManualClock(epoch)
	loop := NewLoop(src, time.Millisecond, 100*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan time.Duration, 1)
	go func() {
		_ = loop.Run(ctx, func(_ time.Time, dt time.Duration) {
			select {
			case got <- dt:
			default:
			}
			cancel()
		})
	}()

	src.Advance(10 * time.Second)
	dt := <-got
	assert.LessOrEqual(t, dt, 100*time.Millisecond)
}
