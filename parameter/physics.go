package parameter

// Reference physics world
const (
	Gravity         = -9.8
	FloorY          = -6.0
	BodyRadius      = 0.8
	BodyMass        = 1.0
	BodyRestitution = 0.8

	// BodySpinRate is the cosmetic y-axis rotation per step
	BodySpinRate = 0.01

	// SeparationMargin is the extra gap pushed between overlapping bodies
	SeparationMargin = 1.0 / 16
)
