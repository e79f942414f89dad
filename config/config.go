package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tiaohai/splash/motion"
	"github.com/tiaohai/splash/parameter"
	"github.com/tiaohai/splash/particle"
)

var (
	ErrNoModels      = errors.New("no body models configured")
	ErrNoColors      = errors.New("no liquid colors configured")
	ErrInvalidPreset = errors.New("invalid burst preset")
	ErrInvalidTiming = errors.New("invalid timing")
)

// Presets holds one preset per burst kind
type Presets struct {
	Splash particle.Preset `yaml:"splash"`
	Flow   particle.Preset `yaml:"flow"`
}

// For returns the preset of a kind, splash for unknown kinds
func (p Presets) For(kind particle.Kind) particle.Preset {
	if kind == particle.KindFlow {
		return p.Flow
	}
	return p.Splash
}

// Motion holds the trigger thresholds
type Motion struct {
	DirectionThreshold float64       `yaml:"direction_threshold"`
	FastThreshold      float64       `yaml:"fast_threshold"`
	ImpulseThreshold   float64       `yaml:"impulse_threshold"`
	DebounceWindow     time.Duration `yaml:"debounce_window"`
	OriginBias         float64       `yaml:"origin_bias"`
}

// Launch holds body placement and impulse ranges
type Launch struct {
	SlotSpacing   float64       `yaml:"slot_spacing"`
	SpawnHeight   float64       `yaml:"spawn_height"`
	ImpulseXSpan  float64       `yaml:"impulse_x_span"`
	ImpulseYBase  float64       `yaml:"impulse_y_base"`
	ImpulseYBonus float64       `yaml:"impulse_y_bonus"`
	Stagger       time.Duration `yaml:"stagger"`
}

// Config is the static scene configuration
type Config struct {
	Models  []string `yaml:"models"`
	Colors  []string `yaml:"colors"`
	Presets Presets  `yaml:"presets"`
	Motion  Motion   `yaml:"motion"`
	Launch  Launch   `yaml:"launch"`

	RegenInterval time.Duration `yaml:"regen_interval"`
	BatchTTL      time.Duration `yaml:"batch_ttl"`

	// MaxActiveBatches caps concurrent batches with oldest-first eviction, 0 is unbounded
	MaxActiveBatches int `yaml:"max_active_batches"`
}

// Default returns the built-in scene
func Default() Config {
	presets := particle.DefaultPresets()
	return Config{
		Models: append([]string(nil), parameter.ModelPaths...),
		Colors: append([]string(nil), parameter.LiquidColors...),
		Presets: Presets{
			Splash: presets[particle.KindSplash],
			Flow:   presets[particle.KindFlow],
		},
		Motion: Motion{
			DirectionThreshold: parameter.DirectionThreshold,
			FastThreshold:      parameter.FastMotionThreshold,
			ImpulseThreshold:   parameter.ImpulseDeltaThreshold,
			DebounceWindow:     parameter.DebounceWindow,
			OriginBias:         parameter.SpawnOriginBias,
		},
		Launch: Launch{
			SlotSpacing:   parameter.SlotSpacing,
			SpawnHeight:   parameter.SpawnHeight,
			ImpulseXSpan:  parameter.ImpulseXSpan,
			ImpulseYBase:  parameter.ImpulseYBase,
			ImpulseYBonus: parameter.ImpulseYBonus,
			Stagger:       parameter.LaunchStagger,
		},
		RegenInterval:    parameter.RegenInterval,
		BatchTTL:         parameter.BatchTTL,
		MaxActiveBatches: parameter.MaxActiveBatches,
	}
}

// Parse overlays YAML onto the defaults and validates the result
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and parses a YAML file
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(data)
}

// Marshal renders the configuration as YAML
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate reports the first inconsistency found
func (c Config) Validate() error {
	if len(c.Models) == 0 {
		return ErrNoModels
	}
	if len(c.Colors) == 0 {
		return ErrNoColors
	}
	if err := validatePreset(particle.KindSplash, c.Presets.Splash); err != nil {
		return err
	}
	if err := validatePreset(particle.KindFlow, c.Presets.Flow); err != nil {
		return err
	}
	if c.RegenInterval <= 0 {
		return fmt.Errorf("%w: regen_interval must be positive", ErrInvalidTiming)
	}
	if c.BatchTTL <= 0 {
		return fmt.Errorf("%w: batch_ttl must be positive", ErrInvalidTiming)
	}
	if c.Launch.Stagger < 0 || c.Motion.DebounceWindow < 0 {
		return fmt.Errorf("%w: negative stagger or debounce window", ErrInvalidTiming)
	}
	if c.MaxActiveBatches < 0 {
		return fmt.Errorf("%w: max_active_batches must not be negative", ErrInvalidTiming)
	}
	return nil
}

func validatePreset(kind particle.Kind, p particle.Preset) error {
	switch {
	case p.Count <= 0:
		return fmt.Errorf("%w: %s count %d", ErrInvalidPreset, kind, p.Count)
	case p.Lifespan <= 0:
		return fmt.Errorf("%w: %s lifespan %g", ErrInvalidPreset, kind, p.Lifespan)
	case p.Scale <= 0:
		return fmt.Errorf("%w: %s scale %g", ErrInvalidPreset, kind, p.Scale)
	}
	return nil
}

// MotionConfig converts to the monitor's thresholds
func (c Config) MotionConfig() motion.Config {
	return motion.Config{
		DirectionThreshold: c.Motion.DirectionThreshold,
		FastThreshold:      c.Motion.FastThreshold,
		ImpulseThreshold:   c.Motion.ImpulseThreshold,
		Window:             c.Motion.DebounceWindow,
		OriginBias:         c.Motion.OriginBias,
	}
}

// Color returns the liquid color of a model id
func (c Config) Color(modelID int) string {
	if modelID < 0 {
		modelID = -modelID
	}
	return c.Colors[modelID%len(c.Colors)]
}

// OutlivesParticles reports whether the batch TTL exceeds the longest particle life
func (c Config) OutlivesParticles() bool {
	longest := max(c.Presets.Splash.MaxLifetime(), c.Presets.Flow.MaxLifetime())
	return c.BatchTTL.Seconds() > longest
}
