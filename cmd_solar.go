package main

import (
	"github.com/spf13/cobra"

	"github.com/iburimskiy/gyro-rings/internal/app"
)

// solarCmd opens the n-body solar system playground.
var solarCmd = &cobra.Command{
	Use:   "solar",
	Short: "Run the solar system playground",
	Long: `A softened-gravity n-body toy: the sun and eight planets with
polyline trails under a tilted camera. Space pauses, , and . change the
time warp, q/Esc quits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return app.NewSolarGame(cfg.Width, cfg.Height, logger).Run()
	},
}

func init() {
	rootCmd.AddCommand(solarCmd)
}
