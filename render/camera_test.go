package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiaohai/splash/vmath"
)

func TestCameraOriginNearCenter(t *testing.T) {
	cam := NewCamera(80, 24)
	x, y, ok := cam.ToCell(vmath.V3(0, 0, 0))
	require.True(t, ok)
	assert.InDelta(t, 40, x, 1)
	assert.InDelta(t, 11, y, 1)
}

func TestCameraAxes(t *testing.T) {
	cam := NewCamera(80, 24)
	cx, cy, ok := cam.ToCell(vmath.V3(0, 0, 0))
	require.True(t, ok)

	_, upY, ok := cam.ToCell(vmath.V3(0, 2, 0))
	require.True(t, ok)
	assert.Less(t, upY, cy, "higher world y should be a smaller row")

	rx, _, ok := cam.ToCell(vmath.V3(2, 0, 0))
	require.True(t, ok)
	assert.Greater(t, rx, cx)
}

func TestCameraRejects(t *testing.T) {
	cam := NewCamera(80, 24)

	_, _, ok := cam.ToCell(vmath.V3(0, 0, 20))
	assert.False(t, ok, "behind the eye")

	_, _, ok = cam.ToCell(vmath.V3(1000, 1000, 1000))
	assert.False(t, ok, "parked particles are off-grid")
}

func TestCameraResize(t *testing.T) {
	cam := NewCamera(0, 0)
	w, h := cam.Size()
	assert.Equal(t, 1, w)
	assert.Equal(t, 1, h)

	cam.Resize(120, 40)
	w, h = cam.Size()
	assert.Equal(t, 120, w)
	assert.Equal(t, 40, h)

	x, y, ok := cam.ToCell(vmath.V3(0, 0, 0))
	require.True(t, ok)
	assert.InDelta(t, 60, x, 1)
	assert.InDelta(t, 19, y, 1)
}
