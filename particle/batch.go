package particle

import (
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/tiaohai/splash/parameter"
	"github.com/tiaohai/splash/vmath"
)

// Particle is one droplet of a burst
type Particle struct {
	Position vmath.Vec3
	Velocity vmath.Vec3

	Scale   float64 // Size at birth
	Life    float64 // Seconds elapsed
	MaxLife float64 // Seconds until dead
	Opacity float64 // Peak opacity of the fade envelope

	// Derived each update, read by the render projection
	CurrentScale   float64
	CurrentOpacity float64
}

// Dead reports whether the particle has outlived its MaxLife
func (p *Particle) Dead() bool {
	return p.Life > p.MaxLife
}

// Spec describes a burst to create
type Spec struct {
	Origin vmath.Vec3
	// Velocity of the triggering body, nil for no blend
	Velocity *vmath.Vec3
	Kind     Kind
	Color    string
	Preset   Preset
	At       time.Time
}

// Batch is a fixed-size group of particles from one trigger
// The particle slice length never changes after NewBatch
type Batch struct {
	ID        uuid.UUID
	Origin    vmath.Vec3
	Velocity  vmath.Vec3
	Kind      Kind
	Color     string
	CreatedAt time.Time
	Preset    Preset

	Particles []Particle

	live int
}

// NewBatch creates and seeds a batch
func NewBatch(rng *rand.Rand, spec Spec) *Batch {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}

	b := &Batch{
		ID:        id,
		Origin:    spec.Origin,
		Kind:      spec.Kind,
		Color:     spec.Color,
		CreatedAt: spec.At,
		Preset:    spec.Preset,
	}

	// Malformed body velocity falls back to no blend
	blend := spec.Velocity
	if blend != nil && !vmath.Finite(*blend) {
		blend = nil
	}
	if blend != nil {
		b.Velocity = *blend
	}

	count := spec.Preset.Count
	if count < 0 {
		count = 0
	}
	b.Particles = make([]Particle, count)
	for i := range b.Particles {
		seed(rng, &b.Particles[i], spec.Origin, blend, spec.Preset)
	}
	b.live = count
	return b
}

func seed(rng *rand.Rand, p *Particle, origin vmath.Vec3, blend *vmath.Vec3, preset Preset) {
	dir := vmath.RandomUnitSphere(rng)

	// Fountain: outward on x/z from the sphere sample, always upward on y
	vel := vmath.Vec3{
		dir[0] * vmath.RandRange(rng, parameter.BaseHorizontalMin, parameter.BaseHorizontalSpan) * preset.VelocityMult,
		vmath.RandRange(rng, parameter.BaseVerticalMin, parameter.BaseVerticalSpan) * preset.VelocityMult,
		dir[2] * vmath.RandRange(rng, parameter.BaseHorizontalMin, parameter.BaseHorizontalSpan) * preset.VelocityMult,
	}

	if blend != nil {
		vel[0] += blend[0] * parameter.BlendHorizontal * rng.Float64()
		vel[1] += abs(blend[1]) * parameter.BlendVertical * rng.Float64()
		vel[2] += blend[2] * parameter.BlendHorizontal * rng.Float64()
	}

	lifeVar := vmath.RandRange(rng, parameter.LifeVariationMin, parameter.LifeVariationSpan)
	sizeVar := vmath.RandRange(rng, parameter.SizeVariationMin, parameter.SizeVariationSpan)

	*p = Particle{
		Position: vmath.Vec3{
			origin[0] + vmath.Jitter(rng, preset.Spread*parameter.SpreadHorizontal),
			origin[1] + vmath.Jitter(rng, preset.Spread*parameter.SpreadVertical),
			origin[2] + vmath.Jitter(rng, preset.Spread*parameter.SpreadHorizontal),
		},
		Velocity: vel,
		Scale:    preset.Scale * sizeVar,
		MaxLife:  preset.Lifespan * lifeVar,
		Opacity:  vmath.RandRange(rng, parameter.BaseOpacityMin, parameter.BaseOpacitySpan),
	}
	p.CurrentScale = p.Scale
}

// Update advances every live particle by dt seconds
func (b *Batch) Update(dt float64) {
	if dt <= 0 || b.live == 0 {
		return
	}

	gravity := b.Preset.Gravity * parameter.GravityFactor
	live := 0
	for i := range b.Particles {
		p := &b.Particles[i]
		if p.Dead() {
			continue
		}

		p.Life += dt
		if p.Dead() {
			continue
		}
		live++

		p.Velocity[1] -= gravity * dt
		p.Velocity = vmath.ScaleXZ(p.Velocity, parameter.HorizontalDrag)
		p.Position = p.Position.Add(p.Velocity.Mul(dt * parameter.SpeedMultiplier))

		ratio := p.Life / p.MaxLife
		p.CurrentScale = p.Scale * (1 - ratio*parameter.ShrinkFactor)
		p.CurrentOpacity = p.Opacity * FadeEnvelope(ratio)
	}
	b.live = live
}

// AllDead reports whether every particle is past its MaxLife
func (b *Batch) AllDead() bool {
	return b.live == 0
}

// Live returns the number of particles still animating
func (b *Batch) Live() int {
	return b.live
}

// Len returns the fixed particle count
func (b *Batch) Len() int {
	return len(b.Particles)
}

// Age returns wall-clock time since creation
func (b *Batch) Age(now time.Time) time.Duration {
	return now.Sub(b.CreatedAt)
}

// FadeEnvelope maps a life ratio to an opacity multiplier
// Linear fade-in over [0, 0.1), plateau on [0.1, 0.6], linear fade-out over (0.6, 1]
func FadeEnvelope(ratio float64) float64 {
	switch {
	case ratio <= 0:
		return 0
	case ratio < parameter.FadeInEnd:
		return ratio / parameter.FadeInEnd
	case ratio <= parameter.FadeOutStart:
		return 1
	case ratio < 1:
		return 1 - (ratio-parameter.FadeOutStart)/(1-parameter.FadeOutStart)
	default:
		return 0
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
