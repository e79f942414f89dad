package scene

import (
	"math/rand/v2"
	"slices"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tiaohai/splash/config"
	"github.com/tiaohai/splash/engine"
	"github.com/tiaohai/splash/motion"
	"github.com/tiaohai/splash/particle"
	"github.com/tiaohai/splash/physics"
	"github.com/tiaohai/splash/status"
	"github.com/tiaohai/splash/vmath"
)

// Deps are the collaborators of an Orchestrator
type Deps struct {
	Provider  physics.Provider
	Scheduler *engine.Scheduler
	Clock     engine.TimeProvider
	Rand      *rand.Rand
	Registry  *status.Registry
	Logger    *zap.Logger // nil for no logging
}

// slot is one launched body and its monitor
type slot struct {
	body    physics.Body
	monitor *motion.Monitor
	launch  engine.TimerID
}

// Orchestrator owns the body generations and the active batch set
// All methods run on the host loop goroutine; timers fire from Scheduler.Run
type Orchestrator struct {
	cfg      config.Config
	provider physics.Provider
	sched    *engine.Scheduler
	clock    engine.TimeProvider
	rng      *rand.Rand
	reg      *status.Registry
	logger   *zap.Logger

	slots      []slot
	generation int
	regenTimer engine.TimerID
	running    bool

	// Creation order, oldest first
	batches []*particle.Batch
	expiry  map[uuid.UUID]engine.TimerID

	batchAdded []func(*particle.Batch)

	statGenerations *atomic.Int64
	statSpawned     *atomic.Int64
	statExpired     *atomic.Int64
	statEvicted     *atomic.Int64
	statCompleted   *atomic.Int64
	statActive      *atomic.Int64
	statLive        *atomic.Int64
}

// New creates a stopped orchestrator
func New(cfg config.Config, deps Deps) *Orchestrator {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	rng := deps.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	reg := deps.Registry
	if reg == nil {
		reg = status.NewRegistry()
	}

	return &Orchestrator{
		cfg:      cfg,
		provider: deps.Provider,
		sched:    deps.Scheduler,
		clock:    deps.Clock,
		rng:      rng,
		reg:      reg,
		logger:   logger.Named("scene"),
		expiry:   make(map[uuid.UUID]engine.TimerID),

		statGenerations: reg.Ints.Get(status.SceneGenerations),
		statSpawned:     reg.Ints.Get(status.BatchSpawned),
		statExpired:     reg.Ints.Get(status.BatchExpired),
		statEvicted:     reg.Ints.Get(status.BatchEvicted),
		statCompleted:   reg.Ints.Get(status.BatchCompleted),
		statActive:      reg.Ints.Get(status.BatchActive),
		statLive:        reg.Ints.Get(status.ParticleLive),
	}
}

// OnBatchAdded registers an observer called after each batch insertion
func (o *Orchestrator) OnBatchAdded(fn func(*particle.Batch)) {
	o.batchAdded = append(o.batchAdded, fn)
}

// Start launches the first generation and arms periodic regeneration
func (o *Orchestrator) Start() {
	if o.running {
		return
	}
	o.running = true
	o.regenerate()
	o.regenTimer = o.sched.Every(o.cfg.RegenInterval, o.regenerate)
}

// Stop cancels every timer, removes the bodies and drops all batches
func (o *Orchestrator) Stop() {
	if !o.running {
		return
	}
	o.running = false
	o.sched.Cancel(o.regenTimer)
	o.clearBodies()

	for _, id := range o.expiry {
		o.sched.Cancel(id)
	}
	clear(o.expiry)
	o.batches = nil
	o.statActive.Store(0)
	o.statLive.Store(0)
}

// regenerate replaces the current bodies with a fresh generation
func (o *Orchestrator) regenerate() {
	o.clearBodies()
	o.generation++
	o.statGenerations.Add(1)

	n := len(o.cfg.Models)
	launch := o.cfg.Launch
	for i, model := range o.cfg.Models {
		pos := vmath.V3((float64(i)-float64(n-1)/2)*launch.SlotSpacing, launch.SpawnHeight, 0)
		impulse := vmath.V3(
			vmath.Jitter(o.rng, launch.ImpulseXSpan),
			vmath.RandRange(o.rng, launch.ImpulseYBase, launch.ImpulseYBonus),
			0,
		)

		body := o.provider.Spawn(physics.BodySpec{ModelID: i, Model: model, Position: pos})
		mon := motion.NewMonitor(o.cfg.MotionConfig(), o.clock, o.reg, o.logger, o.onTrigger)
		mon.Attach(body)

		s := slot{body: body, monitor: mon}
		s.launch = o.sched.After(time.Duration(i)*launch.Stagger, func() {
			body.SetPosition(pos)
			body.SetVelocity(vmath.Vec3{})
			body.ApplyImpulse(impulse)
		})
		o.slots = append(o.slots, s)
	}

	o.logger.Debug("generation launched",
		zap.Int("generation", o.generation),
		zap.Int("bodies", n),
		zap.Int("active_batches", len(o.batches)),
	)
}

func (o *Orchestrator) clearBodies() {
	for _, s := range o.slots {
		o.sched.Cancel(s.launch)
		s.monitor.Detach()
		o.provider.Remove(s.body)
	}
	o.slots = o.slots[:0]
}

func (o *Orchestrator) onTrigger(tr motion.Trigger) {
	o.AddBatch(tr)
}

// AddBatch inserts a burst for a trigger and schedules its removal after BatchTTL
func (o *Orchestrator) AddBatch(tr motion.Trigger) *particle.Batch {
	vel := tr.Velocity
	now := o.clock.Now()
	b := particle.NewBatch(o.rng, particle.Spec{
		Origin:   tr.Origin,
		Velocity: &vel,
		Kind:     tr.Kind,
		Color:    o.cfg.Color(tr.ModelID),
		Preset:   o.cfg.Presets.For(tr.Kind),
		At:       now,
	})

	if limit := o.cfg.MaxActiveBatches; limit > 0 {
		for len(o.batches) >= limit {
			oldest := o.batches[0]
			o.remove(oldest.ID)
			o.statEvicted.Add(1)
			o.logger.Debug("batch evicted", zap.Stringer("id", oldest.ID))
		}
	}

	o.batches = append(o.batches, b)
	id := b.ID
	o.expiry[id] = o.sched.At(now.Add(o.cfg.BatchTTL), func() {
		if o.remove(id) {
			o.statExpired.Add(1)
		}
	})

	o.statSpawned.Add(1)
	o.statActive.Store(int64(len(o.batches)))

	for _, fn := range o.batchAdded {
		fn(b)
	}
	return b
}

// remove drops a batch and cancels its pending expiry
func (o *Orchestrator) remove(id uuid.UUID) bool {
	i := slices.IndexFunc(o.batches, func(b *particle.Batch) bool { return b.ID == id })
	if i < 0 {
		return false
	}
	o.batches = slices.Delete(o.batches, i, i+1)
	if timer, ok := o.expiry[id]; ok {
		o.sched.Cancel(timer)
		delete(o.expiry, id)
	}
	o.statActive.Store(int64(len(o.batches)))
	return true
}

// Update advances every batch that still has live particles
// Fully dead batches stay in the set until their expiry timer fires
func (o *Orchestrator) Update(dt time.Duration) {
	secs := dt.Seconds()
	var live int64
	for _, b := range o.batches {
		if b.AllDead() {
			continue
		}
		b.Update(secs)
		if b.AllDead() {
			o.statCompleted.Add(1)
		}
		live += int64(b.Live())
	}
	o.statLive.Store(live)
}

// Batches returns the active batches, oldest first; callers must not modify the slice
func (o *Orchestrator) Batches() []*particle.Batch {
	return o.batches
}

// Bodies returns the current generation
func (o *Orchestrator) Bodies() []physics.Body {
	bodies := make([]physics.Body, len(o.slots))
	for i, s := range o.slots {
		bodies[i] = s.body
	}
	return bodies
}

// Generation returns how many generations have launched
func (o *Orchestrator) Generation() int {
	return o.generation
}

// Running reports whether Start was called without a matching Stop
func (o *Orchestrator) Running() bool {
	return o.running
}
