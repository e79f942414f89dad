package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/tiaohai/splash/parameter"
	"github.com/tiaohai/splash/particle"
	"github.com/tiaohai/splash/vmath"
)

// BodySprite is a body as the renderer sees it
type BodySprite struct {
	Position vmath.Vec3
	Color    string
}

// Frame is everything drawn in one pass
type Frame struct {
	Bodies  []BodySprite
	Batches []*particle.Batch
	Status  string
}

// TerminalRenderer draws frames onto a tcell screen
type TerminalRenderer struct {
	screen tcell.Screen
	cam    *Camera

	instances []Instance // Reused projection buffer
	colors    map[string]tcell.Color

	background tcell.Style
	floorStyle tcell.Style
	statusBar  tcell.Style
}

// NewTerminalRenderer sizes the camera from the screen
func NewTerminalRenderer(screen tcell.Screen) *TerminalRenderer {
	w, h := screen.Size()
	return &TerminalRenderer{
		screen:     screen,
		cam:        NewCamera(w, max(h-1, 1)),
		colors:     make(map[string]tcell.Color),
		background: tcell.StyleDefault.Background(tcell.ColorBlack),
		floorStyle: tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorDimGray),
		statusBar:  tcell.StyleDefault.Background(tcell.ColorDarkSlateGray).Foreground(tcell.ColorWhite),
	}
}

// Resize follows a terminal resize; the last row is the status bar
func (r *TerminalRenderer) Resize(width, height int) {
	r.cam.Resize(width, max(height-1, 1))
}

// Camera returns the scene camera
func (r *TerminalRenderer) Camera() *Camera {
	return r.cam
}

// Draw renders a frame and shows it
func (r *TerminalRenderer) Draw(f Frame) {
	r.screen.SetStyle(r.background)
	r.screen.Clear()

	w, h := r.cam.Size()
	r.drawFloor(w)

	for _, b := range f.Batches {
		r.drawBatch(b)
	}

	for _, body := range f.Bodies {
		if x, y, ok := r.cam.ToCell(body.Position); ok {
			style := r.background.Foreground(r.color(body.Color)).Bold(true)
			r.screen.SetContent(x, y, parameter.BodyGlyph, nil, style)
		}
	}

	r.drawStatus(f.Status, w, h)
	r.screen.Show()
}

func (r *TerminalRenderer) drawFloor(w int) {
	_, y, ok := r.cam.ToCell(vmath.V3(0, parameter.FloorY, 0))
	if !ok {
		return
	}
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, parameter.FloorGlyph, nil, r.floorStyle)
	}
}

func (r *TerminalRenderer) drawBatch(b *particle.Batch) {
	if b.AllDead() {
		return
	}
	style := r.background.Foreground(r.color(b.Color))
	r.instances = Project(b, r.instances)
	for _, inst := range r.instances {
		if !inst.Live {
			continue
		}
		glyph, visible := Glyph(inst.Opacity)
		if !visible {
			continue
		}
		if x, y, ok := r.cam.ToCell(inst.Position); ok {
			r.screen.SetContent(x, y, glyph, nil, style)
		}
	}
}

func (r *TerminalRenderer) drawStatus(text string, w, row int) {
	col := 0
	for _, ch := range text {
		if col >= w {
			break
		}
		r.screen.SetContent(col, row, ch, nil, r.statusBar)
		col++
	}
	for ; col < w; col++ {
		r.screen.SetContent(col, row, ' ', nil, r.statusBar)
	}
}

func (r *TerminalRenderer) color(hex string) tcell.Color {
	if c, ok := r.colors[hex]; ok {
		return c
	}
	c := tcell.GetColor(hex)
	if c == tcell.ColorDefault {
		c = tcell.ColorWhite
	}
	r.colors[hex] = c
	return c
}

// Glyph picks a ramp glyph for an opacity; fully transparent particles are not drawn
func Glyph(opacity float64) (rune, bool) {
	if opacity <= 0 {
		return 0, false
	}
	ramp := parameter.OpacityRamp
	i := int(opacity * float64(len(ramp)))
	if i >= len(ramp) {
		i = len(ramp) - 1
	}
	return ramp[i], true
}
