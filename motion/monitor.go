package motion

import (
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/tiaohai/splash/engine"
	"github.com/tiaohai/splash/parameter"
	"github.com/tiaohai/splash/particle"
	"github.com/tiaohai/splash/physics"
	"github.com/tiaohai/splash/status"
	"github.com/tiaohai/splash/vmath"
)

// Trigger is a burst request emitted by a Monitor
type Trigger struct {
	BodyID   uint64
	ModelID  int
	Origin   vmath.Vec3
	Velocity vmath.Vec3
	Kind     particle.Kind
	Rule     string
	At       time.Time
}

// TriggerFunc receives triggers synchronously on the sample's goroutine
type TriggerFunc func(Trigger)

// Config holds the classification thresholds
type Config struct {
	DirectionThreshold float64
	FastThreshold      float64
	ImpulseThreshold   float64
	Window             time.Duration
	OriginBias         float64
}

// DefaultConfig returns the scene thresholds
func DefaultConfig() Config {
	return Config{
		DirectionThreshold: parameter.DirectionThreshold,
		FastThreshold:      parameter.FastMotionThreshold,
		ImpulseThreshold:   parameter.ImpulseDeltaThreshold,
		Window:             parameter.DebounceWindow,
		OriginBias:         parameter.SpawnOriginBias,
	}
}

// Rules returns the rule chain in priority order: direction change, impulse delta, fast motion
func (c Config) Rules() []Rule {
	return []Rule{
		DirectionChangeRule{},
		ImpulseDeltaRule{Threshold: c.ImpulseThreshold},
		FastMotionRule{Threshold: c.FastThreshold},
	}
}

// Monitor turns one body's sample stream into debounced burst triggers
// Not safe for concurrent use; the physics host serializes its callbacks
type Monitor struct {
	cfg       Config
	clock     engine.TimeProvider
	rules     []Rule
	debouncer *Debouncer
	onTrigger TriggerFunc
	logger    *zap.Logger

	bodyID  uint64
	modelID int

	origin   vmath.Vec3
	prevDir  Direction
	prevVel  vmath.Vec3
	hasPrev  bool
	unsubPos physics.Unsubscribe
	unsubVel physics.Unsubscribe

	statTriggered  *atomic.Int64
	statSuppressed *atomic.Int64
}

// NewMonitor creates a detached monitor; logger may be nil
func NewMonitor(cfg Config, clock engine.TimeProvider, reg *status.Registry, logger *zap.Logger, onTrigger TriggerFunc) *Monitor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		cfg:            cfg,
		clock:          clock,
		rules:          cfg.Rules(),
		debouncer:      NewDebouncer(cfg.Window),
		onTrigger:      onTrigger,
		logger:         logger,
		statTriggered:  reg.Ints.Get(status.MotionTriggered),
		statSuppressed: reg.Ints.Get(status.MotionSuppressed),
	}
}

// Attach subscribes to a body's position and velocity streams
func (m *Monitor) Attach(body physics.Body) {
	m.Detach()
	m.bodyID = body.ID()
	m.modelID = body.ModelID()
	m.origin = vmath.Vec3{}
	m.prevDir = DirNone
	m.prevVel = vmath.Vec3{}
	m.hasPrev = false
	m.debouncer.Reset()
	m.unsubPos = body.OnPositionChanged(m.OnPosition)
	m.unsubVel = body.OnVelocityChanged(m.OnVelocity)
}

// Detach drops both subscriptions
func (m *Monitor) Detach() {
	if m.unsubPos != nil {
		m.unsubPos()
		m.unsubPos = nil
	}
	if m.unsubVel != nil {
		m.unsubVel()
		m.unsubVel = nil
	}
}

// OnPosition records the burst origin just above the body
func (m *Monitor) OnPosition(p vmath.Vec3) {
	m.origin = vmath.Vec3{p[0], p[1] + m.cfg.OriginBias, p[2]}
}

// OnVelocity classifies one velocity sample and fires at most one trigger
func (m *Monitor) OnVelocity(v vmath.Vec3) {
	now := m.clock.Now()
	cur := Classify(v[1], m.cfg.DirectionThreshold)

	s := Sample{
		Now:           now,
		Velocity:      v,
		PrevVelocity:  m.prevVel,
		HasPrev:       m.hasPrev,
		Direction:     cur,
		PrevDirection: m.prevDir,
	}

	// State advances on every sample, triggered or not
	m.prevDir = cur
	m.prevVel = v
	m.hasPrev = true

	rule, kind, ok := m.match(s)
	if !ok {
		return
	}

	if !m.debouncer.TryFire(now) {
		m.statSuppressed.Add(1)
		return
	}

	m.statTriggered.Add(1)
	m.logger.Debug("burst triggered",
		zap.Uint64("body", m.bodyID),
		zap.Stringer("kind", kind),
		zap.String("rule", rule.Name()),
		zap.Float64("vy", v[1]),
	)

	if m.onTrigger != nil {
		m.onTrigger(Trigger{
			BodyID:   m.bodyID,
			ModelID:  m.modelID,
			Origin:   m.origin,
			Velocity: v,
			Kind:     kind,
			Rule:     rule.Name(),
			At:       now,
		})
	}
}

func (m *Monitor) match(s Sample) (Rule, particle.Kind, bool) {
	for _, r := range m.rules {
		if kind, ok := r.Match(s); ok {
			return r, kind, true
		}
	}
	return nil, 0, false
}

// Origin returns the current burst origin
func (m *Monitor) Origin() vmath.Vec3 {
	return m.origin
}

// Direction returns the last classified direction
func (m *Monitor) Direction() Direction {
	return m.prevDir
}

// LastTrigger returns when this body last fired
func (m *Monitor) LastTrigger() (time.Time, bool) {
	return m.debouncer.Last()
}

// BodyID returns the attached body's id
func (m *Monitor) BodyID() uint64 {
	return m.bodyID
}
