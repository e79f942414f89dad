package parameter

// Burst presets
const (
	SplashCount        = 400
	SplashScale        = 0.08
	SplashLifespan     = 1.2
	SplashVelocityMult = 1.6
	SplashSpread       = 0.8
	SplashGravity      = 0.15

	FlowCount        = 200
	FlowScale        = 0.05
	FlowLifespan     = 0.8
	FlowVelocityMult = 0.7
	FlowSpread       = 0.4
	FlowGravity      = 0.12
)

// Particle initialization
const (
	// BaseHorizontalMin/Span shape the outward component of the fountain: (min + rand*span) * velocityMult
	BaseHorizontalMin  = 0.3
	BaseHorizontalSpan = 0.6

	// BaseVerticalMin/Span shape the upward component, always larger than the horizontal one
	BaseVerticalMin  = 0.5
	BaseVerticalSpan = 0.8

	// BlendHorizontal is the fraction of the body's horizontal velocity carried into particles
	BlendHorizontal = 0.3
	// BlendVertical is the fraction of the body's |vy| pushed upward into particles
	BlendVertical = 0.2

	// LifeVariationMin/Span randomize maxLife in [0.7, 1.5] x lifespan
	LifeVariationMin  = 0.7
	LifeVariationSpan = 0.8

	// SizeVariationMin/Span randomize scale in [0.7, 1.5] x scale
	SizeVariationMin  = 0.7
	SizeVariationSpan = 0.8

	// SpreadHorizontal and SpreadVertical scale the preset spread per axis at spawn
	SpreadHorizontal = 1.2
	SpreadVertical   = 0.4

	// BaseOpacityMin/Span give each particle a peak opacity in [0.8, 1.0]
	BaseOpacityMin  = 0.8
	BaseOpacitySpan = 0.2
)

// Particle integration
const (
	// GravityFactor doubles the preset gravity
	GravityFactor = 2.0

	// HorizontalDrag is applied to x/z velocity once per frame
	HorizontalDrag = 0.98

	// SpeedMultiplier scales position integration, not physically derived
	SpeedMultiplier = 2.5

	// ShrinkFactor is how much of the birth scale is lost at end of life (ends at 20%)
	ShrinkFactor = 0.8

	// FadeInEnd and FadeOutStart bound the full-opacity plateau as fractions of maxLife
	FadeInEnd    = 0.1
	FadeOutStart = 0.6
)

// Dead particle parking
const (
	ParkedCoord = 1000.0
	ParkedScale = 0.0
)
