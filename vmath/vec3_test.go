package vmath

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestRandomUnitSphere verifies samples lie on the unit sphere
func TestRandomUnitSphere(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 1000; i++ {
		v := RandomUnitSphere(rng)
		assert.InDelta(t, 1.0, v.Len(), 1e-9)
		assert.GreaterOrEqual(t, v[2], -1.0)
		assert.LessOrEqual(t, v[2], 1.0)
	}
}

// TestJitterBounds verifies jitter stays within half the spread
func TestJitterBounds(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	for i := 0; i < 1000; i++ {
		j := Jitter(rng, 0.8)
		assert.GreaterOrEqual(t, j, -0.4)
		assert.Less(t, j, 0.4)
	}
}

func TestRandRange(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	for i := 0; i < 1000; i++ {
		v := RandRange(rng, 0.7, 0.8)
		assert.GreaterOrEqual(t, v, 0.7)
		assert.Less(t, v, 1.5)
	}
}

func TestFinite(t *testing.T) {
	assert.True(t, Finite(V3(1, -2, 3)))
	assert.False(t, Finite(V3(math.NaN(), 0, 0)))
	assert.False(t, Finite(V3(0, math.Inf(1), 0)))
}

func TestScaleXZ(t *testing.T) {
	assert.Equal(t, V3(2, 3, 8), ScaleXZ(V3(1, 3, 4), 2))
}
