package render

import (
	"github.com/tiaohai/splash/parameter"
	"github.com/tiaohai/splash/particle"
	"github.com/tiaohai/splash/vmath"
)

// Instance is the drawable transform of one particle
type Instance struct {
	Position vmath.Vec3
	Scale    float64
	Opacity  float64
	Live     bool
}

// Parked is the transform of a dead particle: far off-scene with zero scale
var Parked = Instance{
	Position: vmath.V3(parameter.ParkedCoord, parameter.ParkedCoord, parameter.ParkedCoord),
	Scale:    parameter.ParkedScale,
}

// Project maps every particle of a batch to an instance, one per index
// dst is reused when it has capacity
func Project(b *particle.Batch, dst []Instance) []Instance {
	n := len(b.Particles)
	if cap(dst) < n {
		dst = make([]Instance, n)
	}
	dst = dst[:n]

	for i := range b.Particles {
		p := &b.Particles[i]
		if p.Dead() {
			dst[i] = Parked
			continue
		}
		dst[i] = Instance{
			Position: p.Position,
			Scale:    p.CurrentScale,
			Opacity:  p.CurrentOpacity,
			Live:     true,
		}
	}
	return dst
}
