package status

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestRegistryCachedPointers verifies Get returns a stable pointer per key
func TestRegistryCachedPointers(t *testing.T) {
	r := NewRegistry()
	a := r.Ints.Get(BatchSpawned)
	b := r.Ints.Get(BatchSpawned)
	assert.Same(t, a, b)

	a.Add(3)
	r.Floats.Get(FrameTime).Set(16.5)

	assert.Equal(t, map[string]float64{BatchSpawned: 3, FrameTime: 16.5}, r.Snapshot())
}

// TestRegistryConcurrentGet verifies concurrent registration yields one metric
func TestRegistryConcurrentGet(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Ints.Get(MotionTriggered).Add(1)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, r.Ints.Len())
	assert.Equal(t, int64(32), r.Ints.Get(MotionTriggered).Load())
}

// TestMetricSetOrder verifies All yields names sorted and stops when asked
func TestMetricSetOrder(t *testing.T) {
	var s MetricSet[atomic.Int64]
	s.Get(MotionTriggered).Store(2)
	s.Get(BatchSpawned).Store(1)
	s.Get(FrameTime)

	var names []string
	for name := range s.All() {
		names = append(names, name)
	}
	assert.Equal(t, []string{BatchSpawned, FrameTime, MotionTriggered}, names)

	seen := 0
	for range s.All() {
		seen++
		break
	}
	assert.Equal(t, 1, seen)
}
