package physics

import "github.com/tiaohai/splash/vmath"

// Unsubscribe detaches a listener, safe to call more than once
type Unsubscribe func()

// Listener receives a pushed vector sample
type Listener func(v vmath.Vec3)

// Body is a rigid body owned by a physics provider
// Position and velocity arrive through push subscriptions at the provider's tick rate
type Body interface {
	ID() uint64
	ModelID() int

	OnPositionChanged(fn Listener) Unsubscribe
	OnVelocityChanged(fn Listener) Unsubscribe

	SetPosition(p vmath.Vec3)
	SetVelocity(v vmath.Vec3)
	ApplyImpulse(j vmath.Vec3)
}

// BodySpec describes a body to spawn
type BodySpec struct {
	ModelID  int
	Model    string
	Position vmath.Vec3
}

// Provider creates and destroys rigid bodies
type Provider interface {
	Spawn(spec BodySpec) Body
	Remove(b Body)
}
