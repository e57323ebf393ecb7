package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rings.yaml")
	body := `
period: 16
mode: beat
bpm: 120
rings:
  - radius: 1.06
    spin: 5
    tilt_x: 2
    tilt_y: 3
  - radius: 0.84
    spin: 7
    tilt_x: 3
    tilt_y: 5
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 16.0, cfg.Period)
	assert.Equal(t, "beat", cfg.Mode)
	assert.Equal(t, 120.0, cfg.BPM)
	// Untouched keys keep their defaults.
	assert.Equal(t, 900, cfg.Width)
	assert.Equal(t, 0.1, cfg.Camera.MinDepth)
	require.Len(t, cfg.Rings, 2)

	specs := cfg.Specs()
	require.Len(t, specs, 2)
	assert.Equal(t, 5, specs[0].SpinRatio.Num)
	assert.Equal(t, 1, specs[0].SpinRatio.Den, "zero denominator defaults to 1")
	assert.Equal(t, 381, specs[0].PointCount, "points derived from radius 1.06")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/rings.yaml")
	assert.Error(t, err)
}

func TestLoadMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("period: [oops"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidateRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"tiny window", func(c *Config) { c.Width = 100 }},
		{"zero period", func(c *Config) { c.Period = 0 }},
		{"negative period", func(c *Config) { c.Period = -1 }},
		{"bpm too low", func(c *Config) { c.BPM = 5 }},
		{"bpm too high", func(c *Config) { c.BPM = 500 }},
		{"zero beats", func(c *Config) { c.BeatsPerMeasure = 0 }},
		{"bad mode", func(c *Config) { c.Mode = "polka" }},
		{"zero camera distance", func(c *Config) { c.Camera.Distance = 0 }},
		{"zero min depth", func(c *Config) { c.Camera.MinDepth = 0 }},
		{"align width too wide", func(c *Config) { c.Pulse.AlignWidth = 0.7 }},
		{"zero ring radius", func(c *Config) { c.Rings = []Ring{{Radius: 0}} }},
		{"two-point ring", func(c *Config) { c.Rings = []Ring{{Radius: 1, Points: 2}} }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestSpecsDefaultFallback(t *testing.T) {
	specs := Default().Specs()
	assert.Len(t, specs, 4)
	assert.Equal(t, 1.06, specs[0].Radius)
}
