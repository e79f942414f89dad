package motion

import (
	"math"
	"time"

	"github.com/tiaohai/splash/particle"
	"github.com/tiaohai/splash/vmath"
)

// Sample is one velocity observation with the state carried from the previous one
type Sample struct {
	Now           time.Time
	Velocity      vmath.Vec3
	PrevVelocity  vmath.Vec3
	HasPrev       bool
	Direction     Direction
	PrevDirection Direction
}

// Rule classifies a sample into a burst kind
type Rule interface {
	Name() string
	Match(s Sample) (particle.Kind, bool)
}

// DirectionChangeRule fires a splash on an up↔down reversal
type DirectionChangeRule struct{}

func (DirectionChangeRule) Name() string { return "direction" }

func (DirectionChangeRule) Match(s Sample) (particle.Kind, bool) {
	return particle.KindSplash, Flipped(s.PrevDirection, s.Direction)
}

// ImpulseDeltaRule fires a splash when velocity jumps by more than Threshold between samples
type ImpulseDeltaRule struct {
	Threshold float64
}

func (ImpulseDeltaRule) Name() string { return "impulse" }

func (r ImpulseDeltaRule) Match(s Sample) (particle.Kind, bool) {
	if !s.HasPrev {
		return particle.KindSplash, false
	}
	return particle.KindSplash, s.Velocity.Sub(s.PrevVelocity).Len() > r.Threshold
}

// FastMotionRule fires a flow while vertical speed exceeds Threshold
type FastMotionRule struct {
	Threshold float64
}

func (FastMotionRule) Name() string { return "fast" }

func (r FastMotionRule) Match(s Sample) (particle.Kind, bool) {
	return particle.KindFlow, math.Abs(s.Velocity[1]) > r.Threshold
}
