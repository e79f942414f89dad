package parameter

import "time"

// Scene lifecycle
const (
	// BodyCount is the number of glasses per generation
	BodyCount = 3

	// RegenInterval is the period between generations
	RegenInterval = 5 * time.Second

	// LaunchStagger delays each body's impulse by index * stagger
	LaunchStagger = 100 * time.Millisecond

	// BatchTTL is the hard lifetime of a particle batch in the active set
	BatchTTL = 5 * time.Second

	// MaxActiveBatches caps the active set, 0 keeps it unbounded
	MaxActiveBatches = 0
)

// Launch geometry
const (
	// SlotSpacing is the horizontal distance between body slots, centered on x=0
	SlotSpacing = 2.5

	// SpawnHeight is the y coordinate bodies start from
	SpawnHeight = -4.0

	// ImpulseXSpan gives a horizontal impulse of (rand-0.5) * span
	ImpulseXSpan = 3.0

	// ImpulseYBase and ImpulseYBonus give a vertical impulse of base + rand*bonus
	ImpulseYBase  = 10.0
	ImpulseYBonus = 3.0
)

// ModelPaths are the glass assets, one per body slot
var ModelPaths = []string{
	"models/glass.glb",
	"models/1.glb",
	"models/2.glb",
}

// LiquidColors is the burst palette indexed by model id
var LiquidColors = []string{
	"#f9a825", // beer
	"#e57373",
	"#81c784",
}
