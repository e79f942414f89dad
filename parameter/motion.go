package parameter

import "time"

// Body motion classification
const (
	// DirectionThreshold is the vertical speed (units/sec) above which a body counts as moving up or down
	DirectionThreshold = 0.5

	// FastMotionThreshold is the absolute vertical speed that triggers a flow burst
	FastMotionThreshold = 4.0

	// ImpulseDeltaThreshold is the velocity change magnitude between two samples that triggers a splash burst
	ImpulseDeltaThreshold = 2.5

	// DebounceWindow is the minimum spacing between two triggers of the same body
	DebounceWindow = 300 * time.Millisecond

	// SpawnOriginBias lifts the burst origin above the body center
	SpawnOriginBias = 0.5
)
