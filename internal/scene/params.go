package scene

import (
	"github.com/iburimskiy/gyro-rings/internal/config"
	"github.com/iburimskiy/gyro-rings/internal/math3d"
	"github.com/iburimskiy/gyro-rings/internal/tempo"
)

// ConfigParams maps the runtime configuration onto composition params.
// Frontends tweak the result for their medium (the terminal thins the
// strokes, for example) before handing it to NewComposer.
func ConfigParams(cfg config.Config) Params {
	p := DefaultParams()
	p.BeatsPerMeasure = cfg.BeatsPerMeasure
	p.DualCore = cfg.DualCore
	p.Pulse = tempo.PulseParams{
		AlignWidth:     cfg.Pulse.AlignWidth,
		AlignSharpness: cfg.Pulse.AlignSharpness,
		BeatSharpness:  cfg.Pulse.BeatSharpness,
		MeasureSharp:   cfg.Pulse.MeasureSharpness,
	}
	p.Render.Camera = math3d.Camera{
		Distance:    cfg.Camera.Distance,
		FocalLength: cfg.Camera.FocalLength,
		MinDepth:    cfg.Camera.MinDepth,
	}
	p.Render.TubeShading = cfg.TubeShading
	return p
}
