// Package ringfield models the tempo-locked concentric rings: their
// specs, the deterministic field mutations that preserve the realignment
// invariant, and the projection of ring points into ordered draw
// primitives.
package ringfield

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/iburimskiy/gyro-rings/internal/math3d"
)

// ErrInvalidSpec is wrapped by every construction-time validation
// failure. Render-time arithmetic never fails.
var ErrInvalidSpec = errors.New("invalid ring spec")

// Ratio is a rational angular-velocity multiplier. Tempo-lock uses
// Den == 1; ratio-lock mode allows small denominators, stretching the
// common realignment period by their least common multiple.
type Ratio struct {
	Num int
	Den int
}

// Int is shorthand for an integer ratio.
func Int(n int) Ratio { return Ratio{Num: n, Den: 1} }

func (r Ratio) Value() float64 {
	return float64(r.Num) / float64(r.Den)
}

func (r Ratio) validate() error {
	if r.Den < 1 {
		return fmt.Errorf("%w: ratio denominator %d, want >= 1", ErrInvalidSpec, r.Den)
	}
	return nil
}

// Spec describes one ring at construction time.
type Spec struct {
	Radius     float64
	PointCount int
	SpinRatio  Ratio
	TiltXRatio Ratio
	TiltYRatio Ratio
	Color      RGBA
	BandCount  int // hue bands around the circumference; 0 means flat color

	// Axis and AxisAngle pose the ring plane: the fixed rotation is
	// applied after the spin and inverted again after the tilts, so the
	// tumble runs in the posed frame. A zero angle leaves the ring in
	// the base plane. Constant over time, so it never disturbs
	// realignment.
	Axis      math3d.Vec3
	AxisAngle float64
}

func (s Spec) validate() error {
	if s.Radius <= 0 {
		return fmt.Errorf("%w: radius %v, want > 0", ErrInvalidSpec, s.Radius)
	}
	if s.PointCount < 3 {
		return fmt.Errorf("%w: point count %d, want >= 3", ErrInvalidSpec, s.PointCount)
	}
	for _, r := range []Ratio{s.SpinRatio, s.TiltXRatio, s.TiltYRatio} {
		if err := r.validate(); err != nil {
			return err
		}
	}
	return nil
}

// Ring is one rotating band. The angle fields are recomputed from
// absolute elapsed time on every Advance, never integrated, so no drift
// accumulates and realignment at period boundaries is exact.
type Ring struct {
	Radius     float64
	PointCount int

	SpinRatio  Ratio
	TiltXRatio Ratio
	TiltYRatio Ratio
	SpeedScale float64

	Color       RGBA
	BandCount   int
	bandColors  []RGBA
	bandPhase   int
	Offset      math3d.Vec3
	Axis        math3d.Vec3
	AxisAngle   float64
	GlyphStride int
	GlyphPhase  int

	// Current orientation, a pure function of the clock.
	Spin, TiltX, TiltY float64
}

var glyphStrides = []int{9, 11, 13}

// positionJitter de-perfects concentric alignment; fractions of the ring
// radius, matching the desktop scene.
const positionJitter = 0.06

func newRing(s Spec, rng *rand.Rand) *Ring {
	stride := glyphStrides[rng.Intn(len(glyphStrides))]
	r := &Ring{
		Radius:      s.Radius,
		PointCount:  s.PointCount,
		SpinRatio:   s.SpinRatio,
		TiltXRatio:  s.TiltXRatio,
		TiltYRatio:  s.TiltYRatio,
		SpeedScale:  1.0,
		Color:       s.Color,
		BandCount:   s.BandCount,
		Axis:        s.Axis,
		AxisAngle:   s.AxisAngle,
		GlyphStride: stride,
		GlyphPhase:  rng.Intn(stride),
		Offset: math3d.Vec3{
			X: (rng.Float64()*2 - 1) * positionJitter * s.Radius,
			Y: (rng.Float64()*2 - 1) * positionJitter * 0.6 * s.Radius,
			Z: (rng.Float64()*2 - 1) * positionJitter * s.Radius,
		},
	}
	r.bandPhase = rng.Intn(s.PointCount)
	r.refreshBandColors()
	return r
}

// refreshBandColors rebuilds the per-band tint table from the ring's
// base color: a slight hue walk with brighter, slightly desaturated
// bands toward one side.
func (r *Ring) refreshBandColors() {
	if r.BandCount < 2 {
		r.bandColors = nil
		return
	}
	h, s, v := r.Color.ToHSV()
	r.bandColors = make([]RGBA, r.BandCount)
	for band := 0; band < r.BandCount; band++ {
		pos := float64(band)/float64(r.BandCount-1) - 0.5
		hue := h + pos*18 // ±9 degrees across the ring
		sat := clamp01(s * (1.0 - abs(pos)*0.12))
		val := clamp01(v * (1.0 + pos*0.25))
		r.bandColors[band] = FromHSV(hue, sat, val)
	}
}

// segmentColor picks the color for segment idx: the band table when
// bands are enabled, the flat base color otherwise.
func (r *Ring) segmentColor(idx int) RGBA {
	if len(r.bandColors) == 0 {
		return r.Color
	}
	n := r.PointCount
	offset := (idx + r.bandPhase) % n
	band := offset * r.BandCount / n
	if band >= r.BandCount {
		band = r.BandCount - 1
	}
	return r.bandColors[band]
}

// setAngles recomputes the orientation from the shared base phase.
func (r *Ring) setAngles(basePhase float64) {
	r.Spin = r.SpinRatio.Value() * r.SpeedScale * basePhase
	r.TiltX = r.TiltXRatio.Value() * r.SpeedScale * basePhase
	r.TiltY = r.TiltYRatio.Value() * r.SpeedScale * basePhase
}

// point returns the i-th sample point in scene space under the current
// orientation. The axis pose is a conjugation around the tilt pair, so
// it reorients the tumble without disturbing where the ring lands when
// the tilts return to zero.
func (r *Ring) point(i int) math3d.Vec3 {
	t := 2 * math.Pi * float64(i) / float64(r.PointCount)
	p := math3d.Vec3{X: r.Radius * math.Cos(t), Y: r.Radius * math.Sin(t)}
	p = p.RotateZ(r.Spin)
	if r.AxisAngle != 0 {
		p = p.RotateAxis(r.Axis, r.AxisAngle)
	}
	p = p.RotateX(r.TiltX)
	p = p.RotateY(r.TiltY)
	if r.AxisAngle != 0 {
		p = p.RotateAxis(r.Axis, -r.AxisAngle)
	}
	return p.Add(r.Offset)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
