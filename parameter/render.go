package parameter

import "time"

// Camera
const (
	CameraZ      = 10.0
	CameraFovDeg = 50.0
	CameraNear   = 0.1
	CameraFar    = 100.0

	// CellAspect is the height/width ratio of a terminal cell
	CellAspect = 2.0
)

// Frame loop
const (
	DefaultFPS           = 30
	FrameInterval        = time.Second / DefaultFPS
	MaxFrameDelta        = 100 * time.Millisecond
	EventChannelCapacity = 64
)

// OpacityRamp maps opacity buckets to glyphs, faintest first
var OpacityRamp = []rune{'·', '.', ':', 'o', 'O', '●'}

const (
	BodyGlyph  = 'U'
	FloorGlyph = '▔'
)
