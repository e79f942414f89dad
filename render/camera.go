package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tiaohai/splash/parameter"
	"github.com/tiaohai/splash/vmath"
)

// Camera projects world points onto a cell grid
type Camera struct {
	Eye    vmath.Vec3
	Target vmath.Vec3
	FovDeg float64

	width, height int
	view          mgl64.Mat4
	proj          mgl64.Mat4
	viewProj      mgl64.Mat4
}

// NewCamera looks from (0, 0, CameraZ) toward the origin
func NewCamera(width, height int) *Camera {
	c := &Camera{
		Eye:    vmath.V3(0, 0, parameter.CameraZ),
		FovDeg: parameter.CameraFovDeg,
	}
	c.Resize(width, height)
	return c
}

// Resize rebuilds the projection for a new grid size
func (c *Camera) Resize(width, height int) {
	c.width = max(width, 1)
	c.height = max(height, 1)

	// Cells are taller than wide, so the pixel aspect uses the cell ratio
	aspect := float64(c.width) / (float64(c.height) * parameter.CellAspect)
	c.view = mgl64.LookAtV(c.Eye, c.Target, mgl64.Vec3{0, 1, 0})
	c.proj = mgl64.Perspective(mgl64.DegToRad(c.FovDeg), aspect, parameter.CameraNear, parameter.CameraFar)
	c.viewProj = c.proj.Mul4(c.view)
}

// Size returns the grid size
func (c *Camera) Size() (int, int) {
	return c.width, c.height
}

// ToCell maps a world point to a cell; ok is false when off-grid or behind the camera
func (c *Camera) ToCell(p vmath.Vec3) (x, y int, ok bool) {
	clip := c.viewProj.Mul4x1(p.Vec4(1))
	if clip[3] <= 0 {
		return 0, 0, false
	}

	win := mgl64.Project(p, c.view, c.proj, 0, 0, c.width, c.height)
	if math.IsNaN(win[0]) || math.IsNaN(win[1]) {
		return 0, 0, false
	}

	// Window origin is bottom-left, rows grow downward
	x = int(math.Floor(win[0]))
	y = c.height - 1 - int(math.Floor(win[1]))
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return 0, 0, false
	}
	return x, y, true
}
