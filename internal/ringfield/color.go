package ringfield

import (
	"image/color"
	"math"
)

// RGBA is a normalized color with every channel in [0, 1]. Backends
// convert to their own formats at the edge.
type RGBA struct {
	R, G, B, A float64
}

// Helios / Orbital Sun Core palette shared by the ring scenes.
var (
	CoreColor  = RGBA{0.98, 0.99, 1.0, 1}
	CoreGlow   = RGBA{0.62, 0.8, 1.0, 1}
	RingGold   = RGBA{0.93, 0.76, 0.30, 1}
	AccentTeal = RGBA{0.18, 0.74, 0.7, 1}
)

// FromHSV converts HSV to RGBA (hue: 0-360, saturation: 0-1, value: 0-1).
func FromHSV(h, s, v float64) RGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return RGBA{r + m, g + m, b + m, 1}
}

// ToHSV returns hue in degrees (0-360) plus saturation and value in [0, 1].
func (col RGBA) ToHSV() (h, s, v float64) {
	maxc := math.Max(col.R, math.Max(col.G, col.B))
	minc := math.Min(col.R, math.Min(col.G, col.B))
	v = maxc
	d := maxc - minc
	if maxc > 0 {
		s = d / maxc
	}
	if d == 0 {
		return 0, s, v
	}
	switch maxc {
	case col.R:
		h = math.Mod((col.G-col.B)/d, 6)
	case col.G:
		h = (col.B-col.R)/d + 2
	default:
		h = (col.R-col.G)/d + 4
	}
	h *= 60
	if h < 0 {
		h += 360
	}
	return h, s, v
}

// Scale multiplies the color channels by s, leaving alpha untouched.
func (col RGBA) Scale(s float64) RGBA {
	return RGBA{col.R * s, col.G * s, col.B * s, col.A}
}

// WithAlpha returns the color with alpha replaced.
func (col RGBA) WithAlpha(a float64) RGBA {
	return RGBA{col.R, col.G, col.B, a}
}

// Lerp interpolates toward other by t in [0, 1].
func (col RGBA) Lerp(other RGBA, t float64) RGBA {
	return RGBA{
		col.R + (other.R-col.R)*t,
		col.G + (other.G-col.G)*t,
		col.B + (other.B-col.B)*t,
		col.A + (other.A-col.A)*t,
	}
}

// Clamp snaps every channel into [0, 1].
func (col RGBA) Clamp() RGBA {
	return RGBA{clamp01(col.R), clamp01(col.G), clamp01(col.B), clamp01(col.A)}
}

// NRGBA converts to an 8-bit non-premultiplied color for drawing
// backends.
func (col RGBA) NRGBA() color.NRGBA {
	c := col.Clamp()
	return color.NRGBA{
		R: uint8(c.R * 255),
		G: uint8(c.G * 255),
		B: uint8(c.B * 255),
		A: uint8(c.A * 255),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
