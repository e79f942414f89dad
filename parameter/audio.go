package parameter

import "time"

// Audio cues
const (
	AudioSampleRate   = 48000
	AudioBufferWindow = 100 * time.Millisecond
	CueVolume         = 0.5
	MaxConcurrentCues = 8

	// Splash: filtered noise burst over a low body tone
	SplashCueDuration = 180 * time.Millisecond
	SplashCueAttack   = 5 * time.Millisecond
	SplashCueRelease  = 150 * time.Millisecond
	SplashCueToneFreq = 180.0

	// Flow: short sine blip
	FlowCueDuration = 90 * time.Millisecond
	FlowCueAttack   = 10 * time.Millisecond
	FlowCueRelease  = 60 * time.Millisecond
	FlowCueFreq     = 660.0
)
