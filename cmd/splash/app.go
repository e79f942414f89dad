package main

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/tiaohai/splash/config"
	"github.com/tiaohai/splash/engine"
	"github.com/tiaohai/splash/physics"
	"github.com/tiaohai/splash/render"
	"github.com/tiaohai/splash/scene"
	"github.com/tiaohai/splash/status"
)

// app wires the scene to a screen; every method runs on the loop goroutine
type app struct {
	cfg      config.Config
	clock    *engine.PausableClock
	sched    *engine.Scheduler
	world    *physics.World
	orch     *scene.Orchestrator
	screen   tcell.Screen
	renderer *render.TerminalRenderer
	reg      *status.Registry
	logger   *zap.Logger

	frameMs *status.AtomicFloat
	sprites []render.BodySprite
}

func newApp(screen tcell.Screen, cfg config.Config, source engine.TimeProvider, rng *rand.Rand, logger *zap.Logger) *app {
	if logger == nil {
		logger = zap.NewNop()
	}
	clock := engine.NewPausableClock(source)
	sched := engine.NewScheduler(clock)
	world := physics.NewWorld(physics.DefaultWorldConfig())
	reg := status.NewRegistry()

	return &app{
		cfg:   cfg,
		clock: clock,
		sched: sched,
		world: world,
		orch: scene.New(cfg, scene.Deps{
			Provider:  world,
			Scheduler: sched,
			Clock:     clock,
			Rand:      rng,
			Registry:  reg,
			Logger:    logger,
		}),
		screen:   screen,
		renderer: render.NewTerminalRenderer(screen),
		reg:      reg,
		logger:   logger,
		frameMs:  reg.Floats.Get(status.FrameTime),
	}
}

func (a *app) start() {
	a.orch.Start()
}

func (a *app) stop() {
	a.orch.Stop()
	a.sched.Clear()
}

// drainEvents handles queued input without blocking; false means quit
func (a *app) drainEvents(events <-chan tcell.Event) bool {
	for {
		select {
		case ev := <-events:
			if !a.handleEvent(ev) {
				return false
			}
		default:
			return true
		}
	}
}

// handleEvent returns false when the user asks to quit
func (a *app) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q', 'Q':
				return false
			case 'p', 'P':
				paused := a.clock.Toggle()
				a.logger.Debug("pause toggled", zap.Bool("paused", paused))
			}
		}

	case *tcell.EventResize:
		w, h := ev.Size()
		a.renderer.Resize(w, h)
		a.screen.Sync()
	}
	return true
}

// frame runs one tick: timers, physics, particles, then drawing
// Triggers raised during the physics step create batches first advanced next frame
func (a *app) frame(now time.Time, dt time.Duration) {
	start := time.Now()

	if !a.clock.IsPaused() {
		a.sched.Run(now)
		a.world.Step(dt.Seconds())
		a.orch.Update(dt)
	}

	a.sprites = a.sprites[:0]
	for _, b := range a.world.Bodies() {
		a.sprites = append(a.sprites, render.BodySprite{
			Position: b.Position(),
			Color:    a.cfg.Color(b.ModelID()),
		})
	}

	a.renderer.Draw(render.Frame{
		Bodies:  a.sprites,
		Batches: a.orch.Batches(),
		Status:  a.statusLine(),
	})

	a.frameMs.Set(float64(time.Since(start).Microseconds()) / 1000)
}

func (a *app) statusLine() string {
	snap := a.reg.Snapshot()
	state := "running"
	if a.clock.IsPaused() {
		state = "PAUSED"
	}
	return fmt.Sprintf(" %s | gen %d | batches %d | particles %d | spawned %d expired %d | %.1fms | p pause  q quit",
		state,
		a.orch.Generation(),
		len(a.orch.Batches()),
		int64(snap[status.ParticleLive]),
		int64(snap[status.BatchSpawned]),
		int64(snap[status.BatchExpired]),
		snap[status.FrameTime],
	)
}
