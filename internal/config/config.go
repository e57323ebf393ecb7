// Package config holds the typed runtime configuration: compiled-in
// defaults, an optional YAML overlay, and construction-time validation.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/iburimskiy/gyro-rings/internal/math3d"
	"github.com/iburimskiy/gyro-rings/internal/ringfield"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Camera mirrors math3d.Camera. MinDepth is the perspective denominator
// floor; the scenes historically used 0.1 or 0.2, so it is a knob here
// rather than a constant.
type Camera struct {
	Distance    float64 `yaml:"distance"`
	FocalLength float64 `yaml:"focal_length"`
	MinDepth    float64 `yaml:"min_depth"`
}

// Pulse holds the alignment/beat envelope shaping constants.
type Pulse struct {
	AlignWidth       float64 `yaml:"align_width"`
	AlignSharpness   float64 `yaml:"align_sharpness"`
	BeatSharpness    float64 `yaml:"beat_sharpness"`
	MeasureSharpness float64 `yaml:"measure_sharpness"`
}

// Ring configures one ring. Den is the shared ratio denominator for
// ratio-lock mode; 0 means 1. The axis fields give the ring plane a
// fixed axis-angle pose; a zero angle leaves it flat.
type Ring struct {
	Radius    float64 `yaml:"radius"`
	Points    int     `yaml:"points"`
	Spin      int     `yaml:"spin"`
	TiltX     int     `yaml:"tilt_x"`
	TiltY     int     `yaml:"tilt_y"`
	Den       int     `yaml:"den"`
	Bands     int     `yaml:"bands"`
	AxisX     float64 `yaml:"axis_x"`
	AxisY     float64 `yaml:"axis_y"`
	AxisZ     float64 `yaml:"axis_z"`
	AxisAngle float64 `yaml:"axis_angle"`
}

// Config is the full runtime configuration.
type Config struct {
	Width           int     `yaml:"width"`
	Height          int     `yaml:"height"`
	Period          float64 `yaml:"period"`
	BPM             float64 `yaml:"bpm"`
	BeatsPerMeasure int     `yaml:"beats_per_measure"`
	Mode            string  `yaml:"mode"` // tempo, ratio, beat
	Seed            int64   `yaml:"seed"`
	DualCore        bool    `yaml:"dual_core"`
	TubeShading     bool    `yaml:"tube_shading"`
	Metronome       bool    `yaml:"metronome"`

	Camera Camera `yaml:"camera"`
	Pulse  Pulse  `yaml:"pulse"`
	Rings  []Ring `yaml:"rings"` // empty: the default four-ring set
}

// Default returns the desktop scene's constants.
func Default() Config {
	return Config{
		Width:           900,
		Height:          900,
		Period:          10.0,
		BPM:             96.0,
		BeatsPerMeasure: 8,
		Mode:            "tempo",
		Seed:            1,
		Camera:          Camera{Distance: 3.5, FocalLength: 1.0, MinDepth: 0.1},
		Pulse: Pulse{
			AlignWidth:       0.05,
			AlignSharpness:   3.2,
			BeatSharpness:    3.5,
			MeasureSharpness: 2.5,
		},
	}
}

// Load returns the defaults overlaid with the YAML file at path. An
// empty path returns plain defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate rejects configurations the renderer would choke on. All
// checks happen here, never at render time.
func (c Config) Validate() error {
	if c.Width < 400 || c.Height < 400 {
		return fmt.Errorf("%w: window %dx%d, want at least 400x400", ErrInvalid, c.Width, c.Height)
	}
	if c.Period <= 0 {
		return fmt.Errorf("%w: period %v, want > 0", ErrInvalid, c.Period)
	}
	if c.BPM < 20 || c.BPM > 300 {
		return fmt.Errorf("%w: bpm %v, want 20..300", ErrInvalid, c.BPM)
	}
	if c.BeatsPerMeasure < 1 {
		return fmt.Errorf("%w: beats per measure %d, want >= 1", ErrInvalid, c.BeatsPerMeasure)
	}
	switch c.Mode {
	case "tempo", "ratio", "beat":
	default:
		return fmt.Errorf("%w: mode %q, want tempo, ratio, or beat", ErrInvalid, c.Mode)
	}
	if c.Camera.Distance <= 0 || c.Camera.FocalLength <= 0 || c.Camera.MinDepth <= 0 {
		return fmt.Errorf("%w: camera %+v, want positive distance, focal length, min depth", ErrInvalid, c.Camera)
	}
	if c.Pulse.AlignWidth <= 0 || c.Pulse.AlignWidth >= 0.5 {
		return fmt.Errorf("%w: align width %v, want (0, 0.5)", ErrInvalid, c.Pulse.AlignWidth)
	}
	for i, r := range c.Rings {
		if r.Radius <= 0 {
			return fmt.Errorf("%w: ring %d radius %v, want > 0", ErrInvalid, i, r.Radius)
		}
		if r.Points != 0 && r.Points < 3 {
			return fmt.Errorf("%w: ring %d points %d, want >= 3", ErrInvalid, i, r.Points)
		}
		if r.Den < 0 {
			return fmt.Errorf("%w: ring %d denominator %d, want >= 0", ErrInvalid, i, r.Den)
		}
	}
	return nil
}

// Specs maps the configured rings to ringfield specs, falling back to
// the default arrangement when none are configured.
func (c Config) Specs() []ringfield.Spec {
	if len(c.Rings) == 0 {
		return ringfield.DefaultSpecs()
	}
	specs := make([]ringfield.Spec, len(c.Rings))
	for i, r := range c.Rings {
		den := r.Den
		if den == 0 {
			den = 1
		}
		points := r.Points
		if points == 0 {
			points = int(360 * r.Radius)
			if points < 160 {
				points = 160
			}
		}
		specs[i] = ringfield.Spec{
			Radius:     r.Radius,
			PointCount: points,
			SpinRatio:  ringfield.Ratio{Num: r.Spin, Den: den},
			TiltXRatio: ringfield.Ratio{Num: r.TiltX, Den: den},
			TiltYRatio: ringfield.Ratio{Num: r.TiltY, Den: den},
			Color:      ringfield.RingGold,
			BandCount:  r.Bands,
			Axis:       math3d.Vec3{X: r.AxisX, Y: r.AxisY, Z: r.AxisZ},
			AxisAngle:  r.AxisAngle,
		}
	}
	return specs
}
