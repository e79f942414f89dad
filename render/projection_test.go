package render

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiaohai/splash/particle"
	"github.com/tiaohai/splash/vmath"
)

func newBatch(t *testing.T, kind particle.Kind) *particle.Batch {
	t.Helper()
	rng := rand.New(rand.NewPCG(7, 11))
	return particle.NewBatch(rng, particle.Spec{
		Origin: vmath.V3(0, 1, 0),
		Kind:   kind,
		Color:  "#f9a825",
		Preset: particle.DefaultPresets()[kind],
		At:     time.Unix(0, 0),
	})
}

func TestProjectLiveParticles(t *testing.T) {
	b := newBatch(t, particle.KindSplash)
	b.Update(0.2)

	out := Project(b, nil)
	require.Len(t, out, b.Len())
	for i, inst := range out {
		p := b.Particles[i]
		assert.True(t, inst.Live)
		assert.Equal(t, p.Position, inst.Position)
		assert.Equal(t, p.CurrentScale, inst.Scale)
		assert.Equal(t, p.CurrentOpacity, inst.Opacity)
	}
}

func TestProjectParksDeadParticles(t *testing.T) {
	b := newBatch(t, particle.KindFlow)
	for range 100 {
		b.Update(0.05)
	}
	require.True(t, b.AllDead())

	out := Project(b, nil)
	require.Len(t, out, b.Len())
	for _, inst := range out {
		assert.Equal(t, Parked, inst)
		assert.False(t, inst.Live)
		assert.Zero(t, inst.Scale)
		assert.Equal(t, vmath.V3(1000, 1000, 1000), inst.Position)
	}
}

func TestProjectIndexStable(t *testing.T) {
	b := newBatch(t, particle.KindSplash)
	// Kill one particle only
	b.Particles[3].Life = b.Particles[3].MaxLife + 1
	b.Update(0.01)

	out := Project(b, nil)
	assert.Equal(t, Parked, out[3])
	assert.True(t, out[2].Live)
	assert.True(t, out[4].Live)
}

func TestProjectReusesBuffer(t *testing.T) {
	b := newBatch(t, particle.KindSplash)
	buf := make([]Instance, 0, 512)
	require.GreaterOrEqual(t, cap(buf), b.Len())

	out := Project(b, buf)
	assert.Len(t, out, b.Len())
	assert.Same(t, &buf[:1][0], &out[0], "backing array should be reused")
}

// TestProjectGrowsSmallBuffer verifies a short buffer is replaced by one holding every particle
func TestProjectGrowsSmallBuffer(t *testing.T) {
	b := newBatch(t, particle.KindSplash)
	small := make([]Instance, 0, 2)

	out := Project(b, small)
	assert.Len(t, out, b.Len())
	assert.GreaterOrEqual(t, cap(out), b.Len())
}
