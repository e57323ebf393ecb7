package ringfield

import (
	"errors"
	"math"
	"testing"

	"github.com/iburimskiy/gyro-rings/internal/math3d"
	"github.com/iburimskiy/gyro-rings/internal/tempo"
)

const twoPi = 2 * math.Pi

// angleDist folds an angle to its distance from the nearest multiple
// of 2π.
func angleDist(a float64) float64 {
	m := math.Mod(math.Abs(a), twoPi)
	return math.Min(m, twoPi-m)
}

func mustField(t *testing.T, specs []Spec, period float64, mode tempo.Mode) *Field {
	t.Helper()
	f, err := New(specs, period, mode, 1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return f
}

func TestNewValidation(t *testing.T) {
	valid := Spec{Radius: 1, PointCount: 64, SpinRatio: Int(1), TiltXRatio: Int(1), TiltYRatio: Int(2), Color: RingGold}
	cases := []struct {
		name   string
		specs  []Spec
		period float64
	}{
		{"no rings", nil, 10},
		{"zero radius", []Spec{{Radius: 0, PointCount: 64, SpinRatio: Int(1), TiltXRatio: Int(1), TiltYRatio: Int(1)}}, 10},
		{"negative radius", []Spec{{Radius: -1, PointCount: 64, SpinRatio: Int(1), TiltXRatio: Int(1), TiltYRatio: Int(1)}}, 10},
		{"too few points", []Spec{{Radius: 1, PointCount: 2, SpinRatio: Int(1), TiltXRatio: Int(1), TiltYRatio: Int(1)}}, 10},
		{"zero denominator", []Spec{{Radius: 1, PointCount: 64, SpinRatio: Ratio{1, 0}, TiltXRatio: Int(1), TiltYRatio: Int(1)}}, 10},
		{"zero period", []Spec{valid}, 0},
		{"negative period", []Spec{valid}, -5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.specs, tc.period, tempo.ModeTempoLock, 1)
			if !errors.Is(err, ErrInvalidSpec) {
				t.Errorf("New = %v, want ErrInvalidSpec", err)
			}
		})
	}

	if _, err := New([]Spec{valid}, 10, tempo.ModeTempoLock, 1); err != nil {
		t.Errorf("valid spec rejected: %v", err)
	}
}

func TestExactRealignment(t *testing.T) {
	const period = 10.0
	f := mustField(t, DefaultSpecs(), period, tempo.ModeTempoLock)

	for _, k := range []int{0, 1, 2, 7, 100, 500, 1000} {
		f.Advance(float64(k)*period, 96)
		for i, ring := range f.Rings {
			for name, a := range map[string]float64{
				"spin": ring.Spin, "tiltX": ring.TiltX, "tiltY": ring.TiltY,
			} {
				if d := angleDist(a); d > 1e-6 {
					t.Errorf("k=%d ring %d %s: %v rad from alignment", k, i, name, d)
				}
			}
		}
	}
}

func TestQuarterPeriodSpin(t *testing.T) {
	// Single ring, spin ratio 1, no tilt, quarter period puts the spin
	// at exactly π/2.
	specs := []Spec{{
		Radius:     1.0,
		PointCount: 4,
		SpinRatio:  Int(1),
		TiltXRatio: Int(0),
		TiltYRatio: Int(0),
		Color:      RingGold,
	}}
	f := mustField(t, specs, 10.0, tempo.ModeTempoLock)

	f.Advance(0, 96)
	if f.Rings[0].Spin != 0 {
		t.Errorf("spin at t=0: %v, want 0", f.Rings[0].Spin)
	}
	f.Advance(2.5, 96)
	if math.Abs(f.Rings[0].Spin-math.Pi/2) > 1e-9 {
		t.Errorf("spin at t=2.5: %v, want π/2", f.Rings[0].Spin)
	}
	f.Advance(10.0, 96)
	if d := angleDist(f.Rings[0].Spin); d > 1e-9 {
		t.Errorf("spin at t=10 is %v rad from t=0 pose", d)
	}
	if f.Rings[0].TiltX != 0 || f.Rings[0].TiltY != 0 {
		t.Errorf("zero tilt ratios produced tilt (%v, %v)", f.Rings[0].TiltX, f.Rings[0].TiltY)
	}
}

func TestReindexPreservesInvariant(t *testing.T) {
	const period = 10.0
	f := mustField(t, DefaultSpecs(), period, tempo.ModeTempoLock)

	mutations := []struct {
		name string
		do   func()
	}{
		{"add inner", f.AddInner},
		{"add outer", f.AddOuter},
		{"add inner again", f.AddInner},
		{"remove", f.Remove},
	}
	for _, m := range mutations {
		m.do()
		// Outermost first.
		for i := 1; i < len(f.Rings); i++ {
			if f.Rings[i].Radius > f.Rings[i-1].Radius {
				t.Fatalf("%s: rings not sorted by radius desc", m.name)
			}
		}
		// Ratios stay integers with the parity rule.
		for i, ring := range f.Rings {
			sign := 1
			if i%2 == 1 {
				sign = -1
			}
			if ring.SpinRatio != Int(sign*(i+1)) ||
				ring.TiltXRatio != Int(sign*(i+1)) ||
				ring.TiltYRatio != Int(sign*(i+2)) {
				t.Fatalf("%s: ring %d ratios %v/%v/%v violate the reindex rule",
					m.name, i, ring.SpinRatio, ring.TiltXRatio, ring.TiltYRatio)
			}
		}
		// Realignment still holds for the mutated set.
		for _, k := range []int{1, 10, 1000} {
			f.Advance(float64(k)*period, 96)
			for i, ring := range f.Rings {
				if d := angleDist(ring.Spin); d > 1e-6 {
					t.Fatalf("%s: k=%d ring %d spin %v rad off alignment", m.name, k, i, d)
				}
			}
		}
	}
}

func TestAddRemoveBounds(t *testing.T) {
	f := mustField(t, DefaultSpecs(), 10, tempo.ModeTempoLock)

	for i := 0; i < 20; i++ {
		f.AddInner()
	}
	if len(f.Rings) != maxRings {
		t.Errorf("ring count = %d, want cap %d", len(f.Rings), maxRings)
	}
	for _, ring := range f.Rings {
		if ring.Radius < innerFloor {
			t.Errorf("inner radius %v below floor %v", ring.Radius, innerFloor)
		}
	}

	for i := 0; i < 20; i++ {
		f.Remove()
	}
	if len(f.Rings) != 1 {
		t.Errorf("ring count = %d, want floor 1", len(f.Rings))
	}

	for i := 0; i < 20; i++ {
		f.AddOuter()
	}
	if f.Rings[0].Radius > outerCap {
		t.Errorf("outer radius %v above cap %v", f.Rings[0].Radius, outerCap)
	}
}

func TestRatioLockRealignment(t *testing.T) {
	// p/q ratios with denominator q realign after q base periods.
	specs := []Spec{{
		Radius:     1.0,
		PointCount: 64,
		SpinRatio:  Ratio{3, 2},
		TiltXRatio: Ratio{1, 2},
		TiltYRatio: Int(1),
		Color:      RingGold,
	}}
	const period = 10.0
	f := mustField(t, specs, period, tempo.ModeRatioLock)

	f.Advance(period, 96) // one base period: 3/2 turn, not aligned
	if d := angleDist(f.Rings[0].Spin); d < 1e-3 {
		t.Errorf("half-ratio ring aligned too early (dist %v)", d)
	}
	f.Advance(2*period, 96) // two base periods: exact
	if d := angleDist(f.Rings[0].Spin); d > 1e-6 {
		t.Errorf("spin %v rad off after denominator periods", d)
	}
}

func TestBeatLockPhase(t *testing.T) {
	specs := []Spec{{
		Radius:     1.0,
		PointCount: 64,
		SpinRatio:  Int(1),
		TiltXRatio: Int(0),
		TiltYRatio: Int(0),
		Color:      RingGold,
	}}
	f := mustField(t, specs, 10, tempo.ModeBeatLock)
	// At 120 BPM one beat lasts 0.5s; ratio 1 means one full turn per beat.
	f.Advance(0.5, 120)
	if d := angleDist(f.Rings[0].Spin); d > 1e-9 {
		t.Errorf("beat-lock spin %v rad off after one beat", d)
	}
}

func TestAxisPosePreservesRealignment(t *testing.T) {
	specs := []Spec{{
		Radius:     1.0,
		PointCount: 32,
		SpinRatio:  Int(2),
		TiltXRatio: Int(1),
		TiltYRatio: Int(3),
		Color:      RingGold,
		Axis:       math3d.Vec3{X: 1, Y: 1, Z: 0},
		AxisAngle:  math.Pi / 6,
	}}
	const period = 10.0
	f := mustField(t, specs, period, tempo.ModeTempoLock)

	f.Advance(0, 96)
	ref := make([]math3d.Vec3, specs[0].PointCount)
	for i := range ref {
		ref[i] = f.Rings[0].point(i)
	}

	f.Advance(100*period, 96)
	for i := range ref {
		got := f.Rings[0].point(i)
		if math.Abs(got.X-ref[i].X) > 1e-6 || math.Abs(got.Y-ref[i].Y) > 1e-6 || math.Abs(got.Z-ref[i].Z) > 1e-6 {
			t.Fatalf("point %d moved across realignment: %v != %v", i, got, ref[i])
		}
	}
}

func TestFieldDeterminism(t *testing.T) {
	a := mustField(t, DefaultSpecs(), 10, tempo.ModeTempoLock)
	b := mustField(t, DefaultSpecs(), 10, tempo.ModeTempoLock)
	for i := range a.Rings {
		ra, rb := a.Rings[i], b.Rings[i]
		if ra.GlyphStride != rb.GlyphStride || ra.GlyphPhase != rb.GlyphPhase || ra.Offset != rb.Offset {
			t.Errorf("ring %d differs across identical seeds", i)
		}
	}
}
