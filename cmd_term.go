package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iburimskiy/gyro-rings/internal/ringfield"
	"github.com/iburimskiy/gyro-rings/internal/scene"
	"github.com/iburimskiy/gyro-rings/internal/tempo"
	"github.com/iburimskiy/gyro-rings/internal/term"
)

// termCmd renders the ring scene in the terminal.
var termCmd = &cobra.Command{
	Use:   "term",
	Short: "Render the rings in the terminal",
	Long: `Draws the ring scene into the current terminal using half-block
cells with 24-bit color. Key bindings match the window renderer, minus
the audio controls.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		field, err := ringfield.New(cfg.Specs(), cfg.Period, tempo.ParseMode(cfg.Mode), cfg.Seed)
		if err != nil {
			return err
		}
		clock := tempo.NewClock(cfg.Period, cfg.BPM)

		params := scene.ConfigParams(cfg)
		// Terminal strokes are cell-sized; the window thickness would
		// swamp the grid.
		params.Render.BaseThickness = 1.0

		composer := scene.NewComposer(field, clock, params)
		logger.Info("starting terminal renderer", zap.String("mode", cfg.Mode))
		return term.Run(composer, logger)
	},
}

func init() {
	rootCmd.AddCommand(termCmd)
}
