package status

import (
	"math"
	"sync/atomic"
)

// Metric names shared by the scene packages
const (
	SceneGenerations = "scene.generations"
	BatchSpawned     = "batch.spawned"
	BatchExpired     = "batch.expired"
	BatchEvicted     = "batch.evicted"
	BatchActive      = "batch.active"
	BatchCompleted   = "batch.completed"
	MotionTriggered  = "motion.triggered"
	MotionSuppressed = "motion.suppressed"
	ParticleLive     = "particle.live"
	FrameTime        = "frame.ms"
)

// Registry is the central metrics facade
// Components cache pointers at construction; update paths write atomics directly
type Registry struct {
	Ints   MetricSet[atomic.Int64]
	Floats MetricSet[AtomicFloat]
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{}
}

// Snapshot copies every metric into a plain map, ints widened to float64
func (r *Registry) Snapshot() map[string]float64 {
	out := make(map[string]float64, r.Ints.Len()+r.Floats.Len())
	for k, v := range r.Ints.All() {
		out[k] = float64(v.Load())
	}
	for k, v := range r.Floats.All() {
		out[k] = v.Get()
	}
	return out
}

// AtomicFloat stores a float64 atomically through its bit pattern
// Zero value is ready to use (0.0)
type AtomicFloat struct {
	bits atomic.Uint64
}

func (f *AtomicFloat) Set(val float64) {
	f.bits.Store(math.Float64bits(val))
}

func (f *AtomicFloat) Get() float64 {
	return math.Float64frombits(f.bits.Load())
}
