package particle

import (
	"fmt"

	"github.com/tiaohai/splash/parameter"
)

// Kind selects the burst preset
type Kind uint8

const (
	KindSplash Kind = iota
	KindFlow
)

func (k Kind) String() string {
	switch k {
	case KindSplash:
		return "splash"
	case KindFlow:
		return "flow"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// ParseKind maps a preset name to its Kind
func ParseKind(s string) (Kind, error) {
	switch s {
	case "splash":
		return KindSplash, nil
	case "flow":
		return KindFlow, nil
	}
	return 0, fmt.Errorf("unknown burst kind %q", s)
}

// MarshalText renders the kind name, so kinds work as YAML map keys
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses a kind name
func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Preset is the per-kind burst shape
type Preset struct {
	Count        int     `yaml:"count"`
	Scale        float64 `yaml:"scale"`
	Lifespan     float64 `yaml:"lifespan"`
	VelocityMult float64 `yaml:"velocity_mult"`
	Spread       float64 `yaml:"spread"`
	Gravity      float64 `yaml:"gravity"`
}

// DefaultPresets returns the built-in splash and flow presets
func DefaultPresets() map[Kind]Preset {
	return map[Kind]Preset{
		KindSplash: {
			Count:        parameter.SplashCount,
			Scale:        parameter.SplashScale,
			Lifespan:     parameter.SplashLifespan,
			VelocityMult: parameter.SplashVelocityMult,
			Spread:       parameter.SplashSpread,
			Gravity:      parameter.SplashGravity,
		},
		KindFlow: {
			Count:        parameter.FlowCount,
			Scale:        parameter.FlowScale,
			Lifespan:     parameter.FlowLifespan,
			VelocityMult: parameter.FlowVelocityMult,
			Spread:       parameter.FlowSpread,
			Gravity:      parameter.FlowGravity,
		},
	}
}

// MaxLifetime is the longest any particle of this preset can live, in seconds
func (p Preset) MaxLifetime() float64 {
	return p.Lifespan * (parameter.LifeVariationMin + parameter.LifeVariationSpan)
}
