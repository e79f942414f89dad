package audio

import (
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/tiaohai/splash/parameter"
	"github.com/tiaohai/splash/particle"
)

// speakerLock guards the mixer while the speaker goroutine streams it
type speakerLock struct{}

func (speakerLock) Lock()   { speaker.Lock() }
func (speakerLock) Unlock() { speaker.Unlock() }

// Config controls cue playback
type Config struct {
	SampleRate int
	Volume     float64
	MaxCues    int
	Muted      bool
}

// DefaultConfig returns the built-in audio settings
func DefaultConfig() Config {
	return Config{
		SampleRate: parameter.AudioSampleRate,
		Volume:     parameter.CueVolume,
		MaxCues:    parameter.MaxConcurrentCues,
	}
}

// Player mixes batch cues onto the speaker
// A player without an output device accepts Play calls and discards them
type Player struct {
	mu     sync.Mutex
	lock   sync.Locker
	mixer  *beep.Mixer
	rate   beep.SampleRate
	cfg    Config
	active bool
	logger *zap.Logger

	played  int
	dropped int
}

// NewPlayer initializes the speaker; on failure the player stays silent
func NewPlayer(cfg Config, logger *zap.Logger) *Player {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := newPlayer(cfg, speakerLock{}, logger.Named("audio"))
	if cfg.Muted {
		p.logger.Debug("audio muted")
		return p
	}

	if err := speaker.Init(p.rate, p.rate.N(parameter.AudioBufferWindow)); err != nil {
		p.logger.Warn("speaker unavailable, audio disabled", zap.Error(err))
		return p
	}
	speaker.Play(p.mixer)
	p.active = true
	return p
}

func newPlayer(cfg Config, lock sync.Locker, logger *zap.Logger) *Player {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = parameter.AudioSampleRate
	}
	return &Player{
		lock:   lock,
		mixer:  &beep.Mixer{},
		rate:   beep.SampleRate(cfg.SampleRate),
		cfg:    cfg,
		logger: logger,
	}
}

// Active reports whether cues reach an output device
func (p *Player) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

// Play queues the cue for kind
func (p *Player) Play(kind particle.Kind) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.active {
		return
	}

	s := Cue(kind, p.rate, p.cfg.Volume)
	if s == nil {
		return
	}

	p.lock.Lock()
	defer p.lock.Unlock()

	// Bursty scenes would stack dozens of cues; extra ones are dropped
	if p.cfg.MaxCues > 0 && p.mixer.Len() >= p.cfg.MaxCues {
		p.dropped++
		return
	}
	p.mixer.Add(s)
	p.played++
}

// OnBatch plays the cue for a new batch
func (p *Player) OnBatch(b *particle.Batch) {
	p.Play(b.Kind)
}

// Stats returns played and dropped cue counts
func (p *Player) Stats() (played, dropped int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.played, p.dropped
}

// Close stops all cues; the speaker itself stays initialized
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.active {
		return
	}
	p.lock.Lock()
	p.mixer.Clear()
	p.lock.Unlock()
	p.active = false
}
