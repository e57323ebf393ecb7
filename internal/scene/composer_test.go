package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/gyro-rings/internal/ringfield"
	"github.com/iburimskiy/gyro-rings/internal/tempo"
)

func newTestComposer(t *testing.T) *Composer {
	t.Helper()
	field, err := ringfield.New(ringfield.DefaultSpecs(), 10, tempo.ModeTempoLock, 1)
	require.NoError(t, err)
	clock := tempo.NewClock(10, 96)
	c := NewComposer(field, clock, DefaultParams())
	c.SetSize(900, 900)
	return c
}

func TestFrameDeterministic(t *testing.T) {
	a := newTestComposer(t)
	b := newTestComposer(t)
	a.Clock.Seek(3.7)
	b.Clock.Seek(3.7)
	assert.Equal(t, a.Frame(), b.Frame(), "identical state must yield identical frames")
}

func TestFrameStructure(t *testing.T) {
	c := newTestComposer(t)
	frame := c.Frame()
	require.NotEmpty(t, frame)

	// Background discs come first, the core sphere highlight last.
	assert.Equal(t, ringfield.PrimDisc, frame[0].Kind, "frame must open with the backdrop")
	assert.Equal(t, ringfield.PrimDisc, frame[len(frame)-1].Kind, "frame must close with the core highlight")

	// Every ring contributes at least PointCount glow + base segments.
	var lines int
	for _, p := range frame {
		if p.Kind == ringfield.PrimLine {
			lines++
		}
	}
	var wantMin int
	for _, r := range c.Field.Rings {
		wantMin += 2 * r.PointCount
	}
	assert.GreaterOrEqual(t, lines, wantMin)
}

func TestDualCoreAddsSecondCluster(t *testing.T) {
	c := newTestComposer(t)
	single := len(c.Frame())
	c.ToggleDualCore()
	dualFrame := c.Frame()
	assert.Greater(t, len(dualFrame), single, "dual core must add primitives")

	// The stream now closes with the second core: body disc, then its
	// highlight, both right of the primary center.
	highlight := dualFrame[len(dualFrame)-1]
	body := dualFrame[len(dualFrame)-2]
	require.Equal(t, ringfield.PrimDisc, highlight.Kind)
	require.Equal(t, ringfield.PrimDisc, body.Kind)
	assert.InDelta(t, 0.45, highlight.Color.A, 1e-9)
	assert.InDelta(t, 0.98, body.Color.A, 1e-9)
	assert.Greater(t, body.Points[0].X, c.width*0.5, "second core sits at the cluster shift")

	// Secondary pass must not perturb the primary angles.
	spin := c.Field.Rings[0].Spin
	c.Frame()
	assert.Equal(t, spin, c.Field.Rings[0].Spin)
}

func TestZoomClamps(t *testing.T) {
	c := newTestComposer(t)
	for i := 0; i < 50; i++ {
		c.ZoomIn()
	}
	assert.LessOrEqual(t, c.Zoom(), 3.0)
	for i := 0; i < 100; i++ {
		c.ZoomOut()
	}
	assert.GreaterOrEqual(t, c.Zoom(), 0.25)
}

func TestAdjustPeriodSyncsFieldAndClock(t *testing.T) {
	c := newTestComposer(t)
	c.AdjustPeriod(5)
	assert.Equal(t, 15.0, c.Clock.ResetPeriod())
	assert.Equal(t, 15.0, c.Field.ResetPeriod)

	for i := 0; i < 30; i++ {
		c.AdjustPeriod(-5)
	}
	assert.Equal(t, 2.0, c.Clock.ResetPeriod(), "period clamps at the control floor")
	assert.Equal(t, 2.0, c.Field.ResetPeriod)
}

func TestHUDContent(t *testing.T) {
	c := newTestComposer(t)
	hud := c.HUD()
	assert.Contains(t, hud, "Rings: 4")
	assert.Contains(t, hud, "10.0s")
	assert.NotContains(t, hud, "paused")

	c.Clock.Pause()
	assert.Contains(t, c.HUD(), "paused")
}

func TestLevelBoostsGlow(t *testing.T) {
	quiet := newTestComposer(t)
	loud := newTestComposer(t)
	loud.SetLevel(1.0)

	qf := quiet.Frame()
	lf := loud.Frame()
	require.Equal(t, len(qf), len(lf))

	// Find the first glow line and compare alphas.
	for i := range qf {
		if qf[i].Kind == ringfield.PrimLine {
			assert.Greater(t, lf[i].Color.A, qf[i].Color.A, "audio level must brighten the glow pass")
			break
		}
	}
}

func TestLevelRingSwells(t *testing.T) {
	quiet := newTestComposer(t)
	loud := newTestComposer(t)
	loud.SetLevel(1.0)

	findRing := func(frame []ringfield.Primitive) ringfield.Primitive {
		for _, p := range frame {
			if p.Kind == ringfield.PrimCircle {
				return p
			}
		}
		t.Fatal("no level ring in frame")
		return ringfield.Primitive{}
	}
	q := findRing(quiet.Frame())
	l := findRing(loud.Frame())
	assert.Greater(t, l.Radius, q.Radius, "level ring must swell with the input level")
	assert.Greater(t, l.Color.A, q.Color.A)
	assert.Greater(t, l.Width, q.Width)
}
