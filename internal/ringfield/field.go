package ringfield

import (
	"fmt"
	"math/rand"

	"github.com/iburimskiy/gyro-rings/internal/tempo"
)

const (
	maxRings = 12

	innerShrink = 0.78
	innerFloor  = 0.08
	outerGrow   = 1.22
	outerCap    = 2.0
)

// Field is the ordered (outermost first) set of rings plus the shared
// timing parameters. The host loop owns the single instance and threads
// it through Advance and the renderer; there is no hidden global state.
type Field struct {
	Rings       []*Ring
	ResetPeriod float64
	Mode        tempo.Mode

	rng *rand.Rand
}

// New validates the specs and builds a field. The seed drives the only
// randomness in the model (glyph strides, position jitter), so a given
// (specs, seed) pair always produces the same field.
func New(specs []Spec, resetPeriod float64, mode tempo.Mode, seed int64) (*Field, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("%w: no rings", ErrInvalidSpec)
	}
	if len(specs) > maxRings {
		return nil, fmt.Errorf("%w: %d rings, max %d", ErrInvalidSpec, len(specs), maxRings)
	}
	if resetPeriod <= 0 {
		return nil, fmt.Errorf("%w: reset period %v, want > 0", ErrInvalidSpec, resetPeriod)
	}
	f := &Field{
		ResetPeriod: resetPeriod,
		Mode:        mode,
		rng:         rand.New(rand.NewSource(seed)),
	}
	for i, s := range specs {
		if err := s.validate(); err != nil {
			return nil, fmt.Errorf("ring %d: %w", i, err)
		}
		f.Rings = append(f.Rings, newRing(s, f.rng))
	}
	return f, nil
}

// DefaultSpecs is the four-ring gold arrangement the desktop scene
// starts with, ratios assigned by the same rule reindex applies after
// mutations.
func DefaultSpecs() []Spec {
	radii := []float64{1.06, 0.84, 0.62, 0.44}
	specs := make([]Spec, len(radii))
	for i, r := range radii {
		n := int(360 * r)
		if n < 160 {
			n = 160
		}
		sign := 1
		if i%2 == 1 {
			sign = -1
		}
		tone := 0.98 - 0.04*float64(i%4)
		specs[i] = Spec{
			Radius:     r,
			PointCount: n,
			SpinRatio:  Int(sign * (i + 1)),
			TiltXRatio: Int(sign * (i + 1)),
			TiltYRatio: Int(sign * (i + 2)),
			Color:      RingGold.Scale(tone).Clamp(),
			BandCount:  6,
		}
	}
	return specs
}

// reindex restores the deterministic ratio/color assignment after any
// mutation: rings sorted outermost first, alternating direction by
// index parity, ratios sign*(i+1), sign*(i+1), sign*(i+2), and a gold
// tone stepped by index. Integer ratios keep the realignment invariant.
func (f *Field) reindex() {
	for i := 1; i < len(f.Rings); i++ {
		for j := i; j > 0 && f.Rings[j].Radius > f.Rings[j-1].Radius; j-- {
			f.Rings[j], f.Rings[j-1] = f.Rings[j-1], f.Rings[j]
		}
	}
	for i, ring := range f.Rings {
		sign := 1
		if i%2 == 1 {
			sign = -1
		}
		ring.SpinRatio = Int(sign * (i + 1))
		ring.TiltXRatio = Int(sign * (i + 1))
		ring.TiltYRatio = Int(sign * (i + 2))
		tone := 0.98 - 0.04*float64(i%4)
		ring.Color = RingGold.Scale(tone).Clamp()
		ring.SpeedScale = 1.0
		ring.refreshBandColors()
	}
}

// AddInner appends a ring inside the current innermost one.
func (f *Field) AddInner() {
	if len(f.Rings) >= maxRings {
		return
	}
	radius := 1.0
	if len(f.Rings) > 0 {
		radius = f.Rings[len(f.Rings)-1].Radius * innerShrink
	}
	if radius < innerFloor {
		radius = innerFloor
	}
	f.append(radius)
}

// AddOuter appends a ring outside the current outermost one.
func (f *Field) AddOuter() {
	if len(f.Rings) >= maxRings {
		return
	}
	radius := 1.0
	if len(f.Rings) > 0 {
		radius = f.Rings[0].Radius * outerGrow
	}
	if radius > outerCap {
		radius = outerCap
	}
	f.append(radius)
}

func (f *Field) append(radius float64) {
	n := int(360 * radius)
	if n < 160 {
		n = 160
	}
	s := Spec{
		Radius:     radius,
		PointCount: n,
		SpinRatio:  Int(1),
		TiltXRatio: Int(1),
		TiltYRatio: Int(2),
		Color:      RingGold,
		BandCount:  6,
	}
	f.Rings = append(f.Rings, newRing(s, f.rng))
	f.reindex()
}

// Remove drops the innermost ring, keeping at least one.
func (f *Field) Remove() {
	if len(f.Rings) <= 1 {
		return
	}
	f.Rings = f.Rings[:len(f.Rings)-1]
	f.reindex()
}

// SetResetPeriod updates the shared period; angle recomputation picks it
// up on the next Advance.
func (f *Field) SetResetPeriod(period float64) {
	if period > 0 {
		f.ResetPeriod = period
	}
}

// Advance recomputes every ring's orientation from absolute elapsed
// time. The stateless recompute is what makes realignment at k×period
// exact even after hours of frames.
func (f *Field) Advance(elapsed, bpm float64) {
	basePhase := tempo.BasePhase(f.Mode, elapsed, f.ResetPeriod, bpm)
	for _, ring := range f.Rings {
		ring.setAngles(basePhase)
	}
}
