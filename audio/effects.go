package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/tiaohai/splash/parameter"
	"github.com/tiaohai/splash/particle"
)

// source yields the mono sample at frame i
type source func(i int) float64

func sine(freq float64, rate beep.SampleRate) source {
	step := 2 * math.Pi * freq / float64(rate)
	return func(i int) float64 { return math.Sin(step * float64(i)) }
}

func noise(int) float64 { return rand.Float64()*2 - 1 }

// gain is the linear attack/release level at frame i of an n-frame voice
// Release never starts before the attack has finished
func gain(i, n, attack, release int) float64 {
	g := 1.0
	if attack > 0 && i < attack {
		g = float64(i) / float64(attack)
	}
	if release > 0 && i >= max(n-release, attack) {
		g = math.Max(0, float64(n-i)/float64(release))
	}
	return g
}

// voice renders src for d with linear attack and release ramps
func voice(src source, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	n, att, rel := rate.N(d), rate.N(attack), rate.N(release)
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= n {
			return 0, false
		}
		k := 0
		for ; k < len(samples) && pos < n; k++ {
			v := src(pos) * gain(pos, n, att, rel)
			samples[k] = [2]float64{v, v}
			pos++
		}
		return k, true
	})
}

// newVolume scales linearly; zero or less is silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// SplashCue is a noise burst over a short low tone
func SplashCue(rate beep.SampleRate, volume float64) beep.Streamer {
	d, att, rel := parameter.SplashCueDuration, parameter.SplashCueAttack, parameter.SplashCueRelease
	mixed := beep.Take(rate.N(d), beep.Mix(
		newVolume(voice(noise, d, att, rel, rate), 0.6),
		newVolume(voice(sine(parameter.SplashCueToneFreq, rate), d, att, rel, rate), 0.4),
	))
	return newVolume(mixed, volume)
}

// FlowCue is a short sine blip
func FlowCue(rate beep.SampleRate, volume float64) beep.Streamer {
	v := voice(sine(parameter.FlowCueFreq, rate), parameter.FlowCueDuration, parameter.FlowCueAttack, parameter.FlowCueRelease, rate)
	return newVolume(v, volume)
}

// Cue returns the streamer for a batch kind, nil for unknown kinds
func Cue(kind particle.Kind, rate beep.SampleRate, volume float64) beep.Streamer {
	switch kind {
	case particle.KindSplash:
		return SplashCue(rate, volume)
	case particle.KindFlow:
		return FlowCue(rate, volume)
	default:
		return nil
	}
}
