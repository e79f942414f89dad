package physics

import (
	"math"
	"slices"

	"github.com/akmonengine/feather/actor"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/tiaohai/splash/parameter"
	"github.com/tiaohai/splash/vmath"
)

// WorldConfig tunes the reference world
type WorldConfig struct {
	Gravity     float64
	FloorY      float64
	Radius      float64
	Mass        float64
	Restitution float64
	SpinRate    float64
}

// DefaultWorldConfig mirrors the scene's sphere colliders
func DefaultWorldConfig() WorldConfig {
	return WorldConfig{
		Gravity:     parameter.Gravity,
		FloorY:      parameter.FloorY,
		Radius:      parameter.BodyRadius,
		Mass:        parameter.BodyMass,
		Restitution: parameter.BodyRestitution,
		SpinRate:    parameter.BodySpinRate,
	}
}

// World is a small sphere simulation implementing Provider
// Bodies are feather rigid bodies; contacts against the floor and between
// spheres are resolved here after integration
// Step pushes samples to subscribers synchronously on the caller's goroutine
type World struct {
	cfg    WorldConfig
	bodies []*SphereBody
	nextID uint64
}

// NewWorld creates an empty world
func NewWorld(cfg WorldConfig) *World {
	return &World{cfg: cfg}
}

// Spawn adds a sphere at rest
func (w *World) Spawn(spec BodySpec) Body {
	w.nextID++
	t := actor.NewTransform()
	t.Position = spec.Position
	rb := actor.NewRigidBody(t, &actor.Sphere{Radius: w.cfg.Radius}, actor.BodyTypeDynamic, sphereDensity(w.cfg.Mass, w.cfg.Radius))
	rb.Material.Restitution = w.cfg.Restitution
	b := &SphereBody{
		id:      w.nextID,
		modelID: spec.ModelID,
		model:   spec.Model,
		rb:      rb,
		radius:  w.cfg.Radius,
	}
	w.bodies = append(w.bodies, b)
	return b
}

// sphereDensity is the uniform density giving a sphere of radius r the mass m
func sphereDensity(m, r float64) float64 {
	return m / (4.0 / 3.0 * math.Pi * r * r * r)
}

// Remove drops a body and its subscribers
func (w *World) Remove(body Body) {
	for i, b := range w.bodies {
		if b.id == body.ID() {
			b.position.clear()
			b.velocity.clear()
			w.bodies = slices.Delete(w.bodies, i, i+1)
			return
		}
	}
}

// Bodies returns the live bodies in spawn order
func (w *World) Bodies() []*SphereBody {
	return w.bodies
}

// Step integrates dt seconds, resolves contacts and publishes samples
func (w *World) Step(dt float64) {
	if dt <= 0 {
		return
	}

	gravity := mgl64.Vec3{0, w.cfg.Gravity, 0}
	for _, b := range w.bodies {
		b.rb.Integrate(dt, gravity)
		ReflectFloor(&b.rb.Transform.Position, &b.rb.Velocity, b.radius, w.cfg.FloorY, b.rb.Material.Restitution)
		b.spin += w.cfg.SpinRate
	}

	for i := 0; i < len(w.bodies); i++ {
		for j := i + 1; j < len(w.bodies); j++ {
			a, c := w.bodies[i].rb, w.bodies[j].rb
			ma, mc := a.Material.GetMass(), c.Material.GetMass()
			if SeparateOverlap(&a.Transform.Position, &c.Transform.Position, w.bodies[i].radius, w.bodies[j].radius, ma, mc) {
				e := math.Min(a.Material.Restitution, c.Material.Restitution)
				ElasticCollision(&a.Transform.Position, &c.Transform.Position, &a.Velocity, &c.Velocity, ma, mc, e)
			}
		}
	}

	// Snapshot: listeners may remove bodies
	for _, b := range slices.Clone(w.bodies) {
		b.position.publish(b.rb.Transform.Position)
		b.velocity.publish(b.rb.Velocity)
	}
}

// SphereBody is the World's Body implementation
type SphereBody struct {
	id      uint64
	modelID int
	model   string

	position topic
	velocity topic
	rb       *actor.RigidBody

	radius float64
	spin   float64
}

func (b *SphereBody) ID() uint64           { return b.id }
func (b *SphereBody) ModelID() int         { return b.modelID }
func (b *SphereBody) Model() string        { return b.model }
func (b *SphereBody) Position() vmath.Vec3 { return b.rb.Transform.Position }
func (b *SphereBody) Velocity() vmath.Vec3 { return b.rb.Velocity }
func (b *SphereBody) Spin() float64        { return b.spin }
func (b *SphereBody) Radius() float64      { return b.radius }
func (b *SphereBody) Mass() float64        { return b.rb.Material.GetMass() }

func (b *SphereBody) OnPositionChanged(fn Listener) Unsubscribe {
	return b.position.subscribe(fn)
}

func (b *SphereBody) OnVelocityChanged(fn Listener) Unsubscribe {
	return b.velocity.subscribe(fn)
}

func (b *SphereBody) SetPosition(p vmath.Vec3) {
	b.rb.Transform.Position = p
}

func (b *SphereBody) SetVelocity(v vmath.Vec3) {
	b.rb.Velocity = v
}

// ApplyImpulse changes velocity by j / mass at the center of mass
func (b *SphereBody) ApplyImpulse(j vmath.Vec3) {
	b.rb.Velocity = b.rb.Velocity.Add(j.Mul(1 / b.rb.Material.GetMass()))
}

// topic fans a sample out to listeners in subscription order
type topic struct {
	listeners []subscription
	next      int
}

type subscription struct {
	id int
	fn Listener
}

func (t *topic) subscribe(fn Listener) Unsubscribe {
	t.next++
	id := t.next
	t.listeners = append(t.listeners, subscription{id: id, fn: fn})
	return func() {
		t.listeners = slices.DeleteFunc(t.listeners, func(s subscription) bool { return s.id == id })
	}
}

func (t *topic) publish(v vmath.Vec3) {
	for _, s := range slices.Clone(t.listeners) {
		s.fn(v)
	}
}

func (t *topic) clear() {
	t.listeners = nil
}
