package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tiaohai/splash/audio"
	"github.com/tiaohai/splash/config"
	"github.com/tiaohai/splash/engine"
	"github.com/tiaohai/splash/parameter"
)

var (
	// Global flags
	configPath string
	fps        int
	maxBatches int
	mute       bool
	debugLog   bool
	seed       uint64

	// Logger
	logger *zap.Logger
)

// rootCmd runs the scene when called without a subcommand
var rootCmd = &cobra.Command{
	Use:   "splash",
	Short: "Liquid splash particles for bodies tossed in a terminal scene",
	Long: `splash launches a row of bodies every few seconds and emits a burst of
particles whenever one flips direction, takes a hard hit, or moves fast.

Keys: p pauses, q or Esc quits.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = setupLogging(debugLog, logDir)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runScene,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the splash scene in the terminal",
	RunE:  runScene,
}

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "Print the effective configuration as YAML",
	RunE:  printPresets,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "YAML file overriding the built-in scene")
	flags.IntVar(&maxBatches, "max-batches", 0, "cap on concurrent batches, 0 for unbounded")
	flags.BoolVar(&debugLog, "debug", false, "write debug logs to "+logDir+"/"+logFileName)
	flags.IntVar(&fps, "fps", parameter.DefaultFPS, "frames per second")
	flags.BoolVar(&mute, "mute", false, "disable audio cues")
	flags.Uint64Var(&seed, "seed", 0, "random seed, 0 for a fresh one")

	rootCmd.AddCommand(runCmd, presetsCmd)
}

// loadConfig reads the config file if given and applies flag overrides
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return config.Config{}, err
		}
	}

	if cmd.Flags().Changed("max-batches") {
		cfg.MaxActiveBatches = maxBatches
		if err := cfg.Validate(); err != nil {
			return config.Config{}, err
		}
	}
	return cfg, nil
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func printPresets(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	out, err := cfg.Marshal()
	if err != nil {
		return fmt.Errorf("failed to render config: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

func runScene(cmd *cobra.Command, args []string) error {
	if fps <= 0 {
		return fmt.Errorf("fps must be positive, got %d", fps)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	// Fini is idempotent; the watcher below also calls it to unblock PollEvent
	defer screen.Fini()

	audioCfg := audio.DefaultConfig()
	audioCfg.Muted = mute
	player := audio.NewPlayer(audioCfg, logger)
	defer player.Close()

	a := newApp(screen, cfg, engine.NewMonotonicTimeProvider(), newRand(seed), logger)
	a.orch.OnBatchAdded(player.OnBatch)
	a.start()
	defer a.stop()

	logger.Info("scene started",
		zap.Int("fps", fps),
		zap.Int("max_batches", cfg.MaxActiveBatches),
		zap.Bool("audio", player.Active()))

	sigCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(sigCtx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	events := make(chan tcell.Event, parameter.EventChannelCapacity)

	// Input polling uses its own goroutine as PollEvent blocks
	g.Go(func() error {
		defer recoverCrash("EVENT POLLER CRASHED")
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return nil
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return nil
			}
		}
	})

	g.Go(func() error {
		<-ctx.Done()
		screen.Fini()
		return nil
	})

	loop := engine.NewLoop(a.clock, time.Second/time.Duration(fps), parameter.MaxFrameDelta)
	g.Go(func() error {
		defer recoverCrash("SCENE LOOP CRASHED")
		return loop.Run(ctx, func(now time.Time, dt time.Duration) {
			if !a.drainEvents(events) {
				cancel()
				return
			}
			a.frame(now, dt)
		})
	})

	err = g.Wait()
	logger.Info("scene stopped", zap.Uint64("frames", loop.Frames()), zap.Int("generations", a.orch.Generation()))
	return err
}
