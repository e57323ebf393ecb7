package main

import (
	"github.com/spf13/cobra"

	"github.com/iburimskiy/gyro-rings/internal/export"
)

var (
	flagFrames int
	flagFPS    float64
	flagOut    string
)

// exportCmd renders a deterministic PNG frame sequence headlessly.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render PNG frames without opening a window",
	Long: `Renders the ring scene to numbered PNG files. Frames are pure
functions of (config, frame index, fps), so identical runs produce
identical files and frames render in parallel.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		opt := export.Options{
			Frames: flagFrames,
			FPS:    flagFPS,
			OutDir: flagOut,
			Width:  cfg.Width,
			Height: cfg.Height,
		}
		return export.Run(cmd.Context(), cfg, opt, logger)
	},
}

func init() {
	exportCmd.Flags().IntVar(&flagFrames, "frames", 300, "number of frames to render")
	exportCmd.Flags().Float64Var(&flagFPS, "fps", 60, "frames per second of the sequence")
	exportCmd.Flags().StringVar(&flagOut, "out", "frames", "output directory")
	rootCmd.AddCommand(exportCmd)
}
