package scene

import (
	"time"

	"github.com/tiaohai/splash/physics"
	"github.com/tiaohai/splash/vmath"
)

// fakeProvider records spawns and removals
type fakeProvider struct {
	nextID  uint64
	live    map[uint64]*fakeBody
	spawned []*fakeBody
	removed []uint64
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{live: make(map[uint64]*fakeBody)}
}

func (p *fakeProvider) Spawn(spec physics.BodySpec) physics.Body {
	p.nextID++
	b := &fakeBody{id: p.nextID, spec: spec, pos: spec.Position}
	p.live[b.id] = b
	p.spawned = append(p.spawned, b)
	return b
}

func (p *fakeProvider) Remove(b physics.Body) {
	delete(p.live, b.ID())
	p.removed = append(p.removed, b.ID())
}

type fakeBody struct {
	id       uint64
	spec     physics.BodySpec
	pos      vmath.Vec3
	vel      vmath.Vec3
	impulses []vmath.Vec3

	posListeners map[int]physics.Listener
	velListeners map[int]physics.Listener
	next         int
}

func (b *fakeBody) ID() uint64   { return b.id }
func (b *fakeBody) ModelID() int { return b.spec.ModelID }

func (b *fakeBody) OnPositionChanged(fn physics.Listener) physics.Unsubscribe {
	return b.subscribe(&b.posListeners, fn)
}

func (b *fakeBody) OnVelocityChanged(fn physics.Listener) physics.Unsubscribe {
	return b.subscribe(&b.velListeners, fn)
}

func (b *fakeBody) subscribe(m *map[int]physics.Listener, fn physics.Listener) physics.Unsubscribe {
	if *m == nil {
		*m = make(map[int]physics.Listener)
	}
	b.next++
	id := b.next
	(*m)[id] = fn
	return func() { delete(*m, id) }
}

func (b *fakeBody) SetPosition(p vmath.Vec3) { b.pos = p }
func (b *fakeBody) SetVelocity(v vmath.Vec3) { b.vel = v }
func (b *fakeBody) ApplyImpulse(j vmath.Vec3) {
	b.impulses = append(b.impulses, j)
	b.vel = b.vel.Add(j)
}

// push delivers a position then a velocity sample
func (b *fakeBody) push(pos, vel vmath.Vec3) {
	for _, fn := range b.posListeners {
		fn(pos)
	}
	for _, fn := range b.velListeners {
		fn(vel)
	}
}

func (b *fakeBody) listeners() int {
	return len(b.posListeners) + len(b.velListeners)
}

// tickingClock moves forward by step on every read
type tickingClock struct {
	now  time.Time
	step time.Duration
}

func (c *tickingClock) Now() time.Time {
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}
