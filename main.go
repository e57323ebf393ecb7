package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/iburimskiy/gyro-rings/internal/app"
	"github.com/iburimskiy/gyro-rings/internal/config"
)

var (
	// Global flags
	flagConfig  string
	flagWidth   int
	flagHeight  int
	flagPeriod  float64
	flagBPM     float64
	flagBeats   int
	flagMode    string
	flagVerbose bool

	logger *zap.Logger
)

// rootCmd opens the interactive ring visualizer window.
var rootCmd = &cobra.Command{
	Use:   "gyro-rings",
	Short: "Tempo-locked 3D ring visualizer",
	Long: `gyro-rings animates concentric rings whose spin and tilt are locked to
integer multiples of a shared phase, so every ring realigns to its
reference pose once per reset period, flagged by a brightness pulse.

Controls: Space pause, [ / ] period, Up/Down BPM, i/u/- rings,
, / . zoom, o open audio file, m metronome, d dual core, q/Esc quit.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zapCfg := zap.NewProductionConfig()
		if flagVerbose {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zapCfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		game, err := app.New(cfg, logger)
		if err != nil {
			return err
		}
		logger.Info("starting window renderer",
			zap.Int("width", cfg.Width),
			zap.Int("height", cfg.Height),
			zap.Float64("period", cfg.Period),
			zap.String("mode", cfg.Mode),
		)
		return game.Run()
	},
}

// loadConfig reads the optional YAML config and overlays any flags the
// user set explicitly.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Width = flagWidth
	}
	if flags.Changed("height") {
		cfg.Height = flagHeight
	}
	if flags.Changed("period") {
		cfg.Period = flagPeriod
	}
	if flags.Changed("bpm") {
		cfg.BPM = flagBPM
	}
	if flags.Changed("beats") {
		cfg.BeatsPerMeasure = flagBeats
	}
	if flags.Changed("mode") {
		cfg.Mode = flagMode
	}
	return cfg, cfg.Validate()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "YAML config file")
	pf.IntVar(&flagWidth, "width", 900, "window width in pixels")
	pf.IntVar(&flagHeight, "height", 900, "window height in pixels")
	pf.Float64Var(&flagPeriod, "period", 10.0, "seconds between full realignments")
	pf.Float64Var(&flagBPM, "bpm", 96.0, "target beats per minute")
	pf.IntVar(&flagBeats, "beats", 8, "beats per measure")
	pf.StringVar(&flagMode, "mode", "tempo", "lock mode: tempo, ratio, or beat")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
