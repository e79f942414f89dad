package motion

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/tiaohai/splash/engine"
	"github.com/tiaohai/splash/particle"
	"github.com/tiaohai/splash/physics"
	"github.com/tiaohai/splash/status"
	"github.com/tiaohai/splash/vmath"
)

var epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

type harness struct {
	clock    *engine.ManualClock
	reg      *status.Registry
	monitor  *Monitor
	triggers []Trigger
}

func newHarness(t *testing.T) *harness {
	h := &harness{
		clock: engine.NewManualClock(epoch),
		reg:   status.NewRegistry(),
	}
	h.monitor = NewMonitor(DefaultConfig(), h.clock, h.reg, zaptest.NewLogger(t), func(tr Trigger) {
		h.triggers = append(h.triggers, tr)
	})
	return h
}

// at feeds a vertical-only velocity sample at epoch+offset
func (h *harness) at(offset time.Duration, vy float64) {
	h.clock.Set(epoch.Add(offset))
	h.monitor.OnVelocity(vmath.V3(0, vy, 0))
}

// TestMonitorFlipScenario verifies flips at 0, 150 and 400ms yield triggers at 0 and 400ms only
func TestMonitorFlipScenario(t *testing.T) {
	h := newHarness(t)

	h.at(-10*time.Millisecond, 2)
	require.Empty(t, h.triggers)

	h.at(0, -2)
	require.Len(t, h.triggers, 1)
	assert.Equal(t, particle.KindSplash, h.triggers[0].Kind)
	assert.Equal(t, "direction", h.triggers[0].Rule)
	assert.Equal(t, epoch, h.triggers[0].At)

	h.at(150*time.Millisecond, 2)
	assert.Len(t, h.triggers, 1, "flip inside the window is suppressed")

	h.at(400*time.Millisecond, -2)
	require.Len(t, h.triggers, 2)
	assert.Equal(t, particle.KindSplash, h.triggers[1].Kind)
	assert.Equal(t, epoch.Add(400*time.Millisecond), h.triggers[1].At)

	assert.Equal(t, int64(2), h.reg.Ints.Get(status.MotionTriggered).Load())
	assert.Equal(t, int64(1), h.reg.Ints.Get(status.MotionSuppressed).Load())
}

// TestMonitorImpulseDeltaScenario verifies a 3.0 velocity jump fires one splash at the latest position
func TestMonitorImpulseDeltaScenario(t *testing.T) {
	h := newHarness(t)

	h.monitor.OnPosition(vmath.V3(9, 9, 9))
	h.clock.Set(epoch)
	h.monitor.OnVelocity(vmath.V3(0, 0.2, 0))
	require.Empty(t, h.triggers)

	h.monitor.OnPosition(vmath.V3(1, 2, 3))
	h.clock.Set(epoch.Add(10 * time.Millisecond))
	h.monitor.OnVelocity(vmath.V3(3, 0.2, 0))

	require.Len(t, h.triggers, 1)
	tr := h.triggers[0]
	assert.Equal(t, particle.KindSplash, tr.Kind)
	assert.Equal(t, "impulse", tr.Rule)
	assert.Equal(t, vmath.V3(1, 2.5, 3), tr.Origin)
	assert.Equal(t, vmath.V3(3, 0.2, 0), tr.Velocity)
}

// TestMonitorFastMotionFlow verifies sustained fast motion emits debounced flow bursts
func TestMonitorFastMotionFlow(t *testing.T) {
	h := newHarness(t)

	for ms := 0; ms <= 700; ms += 10 {
		h.at(time.Duration(ms)*time.Millisecond, -5)
	}

	// 0, 310, 620
	require.Len(t, h.triggers, 3)
	for _, tr := range h.triggers {
		assert.Equal(t, particle.KindFlow, tr.Kind)
		assert.Equal(t, "fast", tr.Rule)
	}
	assert.Equal(t, epoch.Add(310*time.Millisecond), h.triggers[1].At)
}

// TestMonitorPriority verifies direction change wins when every rule qualifies on one sample
func TestMonitorPriority(t *testing.T) {
	h := newHarness(t)

	h.at(0, 5)
	require.Len(t, h.triggers, 1)
	assert.Equal(t, "fast", h.triggers[0].Rule)

	h.at(500*time.Millisecond, -5)
	require.Len(t, h.triggers, 2)
	assert.Equal(t, particle.KindSplash, h.triggers[1].Kind)
	assert.Equal(t, "direction", h.triggers[1].Rule)
}

// TestMonitorGuardSpacing verifies no two triggers of one body are less than the window apart
func TestMonitorGuardSpacing(t *testing.T) {
	h := newHarness(t)
	rng := rand.New(rand.NewPCG(42, 7))

	offset := time.Duration(0)
	for i := 0; i < 5000; i++ {
		offset += time.Duration(1+rng.IntN(15)) * time.Millisecond
		h.clock.Set(epoch.Add(offset))
		h.monitor.OnVelocity(vmath.V3(rng.Float64()*6-3, rng.Float64()*12-6, rng.Float64()*6-3))
	}

	require.NotEmpty(t, h.triggers)
	for i := 1; i < len(h.triggers); i++ {
		gap := h.triggers[i].At.Sub(h.triggers[i-1].At)
		assert.Greater(t, gap, 300*time.Millisecond)
	}
}

// TestMonitorNoneTransitionIsNotFlip verifies up→none→down does not count as a reversal
func TestMonitorNoneTransitionIsNotFlip(t *testing.T) {
	h := newHarness(t)
	h.at(0, 1)
	h.at(10*time.Millisecond, 0)
	h.at(20*time.Millisecond, -1)
	assert.Empty(t, h.triggers)
	assert.Equal(t, DirDown, h.monitor.Direction())
}

// TestMonitorAttachDetach verifies the monitor follows a physics body until detached
func TestMonitorAttachDetach(t *testing.T) {
	h := newHarness(t)
	world := physics.NewWorld(physics.DefaultWorldConfig())
	body := world.Spawn(physics.BodySpec{ModelID: 2, Position: vmath.V3(0, -4, 0)})

	h.monitor.Attach(body)
	body.ApplyImpulse(vmath.V3(0, 12, 0))

	h.clock.Set(epoch)
	world.Step(1.0 / 60)

	// First sample: fast upward motion
	require.Len(t, h.triggers, 1)
	assert.Equal(t, particle.KindFlow, h.triggers[0].Kind)
	assert.Equal(t, body.ID(), h.triggers[0].BodyID)
	assert.Equal(t, 2, h.triggers[0].ModelID)
	assert.InDelta(t, -3.5, h.triggers[0].Origin[1], 0.5)

	h.monitor.Detach()
	h.clock.Set(epoch.Add(time.Second))
	world.Step(1.0 / 60)
	assert.Len(t, h.triggers, 1)
}

// TestMonitorAttachStartsFresh verifies a re-attached monitor carries no history from the previous body
func TestMonitorAttachStartsFresh(t *testing.T) {
	h := newHarness(t)
	world := physics.NewWorld(physics.DefaultWorldConfig())
	first := world.Spawn(physics.BodySpec{ModelID: 0})
	second := world.Spawn(physics.BodySpec{ModelID: 1, Position: vmath.V3(4, 0, 0)})

	h.monitor.Attach(first)
	h.monitor.OnPosition(vmath.V3(1, 2, 3))
	h.at(0, 5)
	require.Len(t, h.triggers, 1)
	h.at(time.Second, 3)
	require.Len(t, h.triggers, 1)
	require.Equal(t, DirUp, h.monitor.Direction())

	h.monitor.Attach(second)
	assert.Equal(t, second.ID(), h.monitor.BodyID())
	assert.Equal(t, DirNone, h.monitor.Direction())
	assert.Equal(t, vmath.Vec3{}, h.monitor.Origin())
	_, ok := h.monitor.LastTrigger()
	assert.False(t, ok)

	// Opposite direction to the first body's last sample is not a flip
	h.at(2*time.Second, -2)
	assert.Len(t, h.triggers, 1)

	h.at(2*time.Second+50*time.Millisecond, 5)
	require.Len(t, h.triggers, 2)
	assert.Equal(t, "direction", h.triggers[1].Rule)
	assert.Equal(t, second.ID(), h.triggers[1].BodyID)

	// Guard window does not carry over either
	h.monitor.Attach(first)
	h.at(2*time.Second+150*time.Millisecond, 5)
	require.Len(t, h.triggers, 3)
	assert.Equal(t, first.ID(), h.triggers[2].BodyID)
	assert.Equal(t, "fast", h.triggers[2].Rule)
}

func TestDebouncerStrictWindow(t *testing.T) {
	d := NewDebouncer(300 * time.Millisecond)
	assert.True(t, d.Allow(epoch))
	assert.True(t, d.TryFire(epoch))

	assert.False(t, d.Allow(epoch.Add(300*time.Millisecond)))
	assert.True(t, d.Allow(epoch.Add(301*time.Millisecond)))

	last, ok := d.Last()
	assert.True(t, ok)
	assert.Equal(t, epoch, last)

	d.Reset()
	assert.True(t, d.Allow(epoch))
}

func TestClassify(t *testing.T) {
	assert.Equal(t, DirUp, Classify(0.51, 0.5))
	assert.Equal(t, DirNone, Classify(0.5, 0.5))
	assert.Equal(t, DirNone, Classify(-0.5, 0.5))
	assert.Equal(t, DirDown, Classify(-0.51, 0.5))
	assert.True(t, Flipped(DirUp, DirDown))
	assert.True(t, Flipped(DirDown, DirUp))
	assert.False(t, Flipped(DirNone, DirDown))
	assert.Equal(t, "up", DirUp.String())
}
