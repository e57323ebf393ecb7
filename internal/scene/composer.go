// Package scene composes full frames: background, glow and base ring
// passes, the orbiting aux node, and the layered core sphere, emitted
// as one ordered primitive stream any backend can rasterize.
package scene

import (
	"fmt"
	"math"

	"github.com/iburimskiy/gyro-rings/internal/math3d"
	"github.com/iburimskiy/gyro-rings/internal/ringfield"
	"github.com/iburimskiy/gyro-rings/internal/tempo"
)

// Params are the composition constants. Zero value is not useful; start
// from DefaultParams.
type Params struct {
	BeatsPerMeasure int
	Pulse           tempo.PulseParams
	Render          ringfield.RenderParams

	CamOrbitAmp   float64 // parallax drift amplitude, fraction of scale
	CamOrbitSpeed float64
	AuxOrbitSpeed float64

	// Dual-core: a secondary cluster with fixed phase offsets drawn at a
	// horizontal shift.
	DualCore     bool
	DualShift    float64 // fraction of frame width
	DualPhase    float64 // radians added to the secondary spin
	DualTiltXMul float64
	DualTiltYMul float64

	BGTop    ringfield.RGBA
	BGBottom ringfield.RGBA
}

// DefaultParams mirrors the desktop scene constants.
func DefaultParams() Params {
	return Params{
		BeatsPerMeasure: 8,
		Pulse:           tempo.DefaultPulseParams(),
		Render:          ringfield.DefaultRenderParams(),
		CamOrbitAmp:     0.06,
		CamOrbitSpeed:   0.14,
		AuxOrbitSpeed:   0.22,
		DualShift:       0.34,
		DualPhase:       math.Pi / 3,
		DualTiltXMul:    0.7,
		DualTiltYMul:    -0.45,
		BGTop:           ringfield.RGBA{R: 6.0 / 255, G: 8.0 / 255, B: 16.0 / 255, A: 1},
		BGBottom:        ringfield.RGBA{R: 10.0 / 255, G: 14.0 / 255, B: 26.0 / 255, A: 1},
	}
}

// Composer owns a ring field plus layout state and produces one ordered
// primitive stream per frame. Output is deterministic given the field,
// the clock's elapsed time, and the frame size.
type Composer struct {
	Field  *ringfield.Field
	Clock  *tempo.Clock
	Params Params

	width, height float64
	zoom          float64
	level         float64 // audio level in [0, 1], boosts glow/alpha
}

func NewComposer(field *ringfield.Field, clock *tempo.Clock, params Params) *Composer {
	return &Composer{
		Field:  field,
		Clock:  clock,
		Params: params,
		width:  900,
		height: 900,
		zoom:   1.0,
	}
}

// SetSize updates the frame dimensions. Minimums are the caller's
// business: the window frontend floors its layout, the terminal hands
// in whatever cell grid it has.
func (c *Composer) SetSize(w, h int) {
	c.width = math.Max(1, float64(w))
	c.height = math.Max(1, float64(h))
}

func (c *Composer) Zoom() float64 { return c.zoom }

// ZoomIn / ZoomOut step the zoom the way the , and . keys do.
func (c *Composer) ZoomIn()  { c.zoom = math.Min(3.0, c.zoom*1.1) }
func (c *Composer) ZoomOut() { c.zoom = math.Max(0.25, c.zoom*0.9) }

// SetLevel feeds the smoothed audio level that modulates glow and alpha
// in audio-reactive mode.
func (c *Composer) SetLevel(l float64) {
	if l < 0 {
		l = 0
	}
	if l > 1 {
		l = 1
	}
	c.level = l
}

// AdjustPeriod nudges the realignment period, keeping the clock and the
// field in agreement.
func (c *Composer) AdjustPeriod(delta float64) {
	c.Clock.SetResetPeriod(c.Clock.ResetPeriod() + delta)
	c.Field.SetResetPeriod(c.Clock.ResetPeriod())
}

// ToggleDualCore flips the secondary cluster on or off.
func (c *Composer) ToggleDualCore() {
	c.Params.DualCore = !c.Params.DualCore
}

func (c *Composer) scalePx() float64 {
	return math.Min(c.width, c.height) * 0.48
}

// viewport returns the frame's projection center with the parallax
// drift applied.
func (c *Composer) viewport() math3d.Viewport {
	orbitT := c.Clock.Elapsed() * c.Params.CamOrbitSpeed
	ampPx := c.Params.CamOrbitAmp * c.scalePx()
	return math3d.Viewport{
		Cx:      c.width*0.5 + math.Sin(orbitT)*ampPx,
		Cy:      c.height*0.5 + math.Cos(orbitT*0.8)*ampPx,
		ScalePx: c.scalePx(),
		Zoom:    c.zoom,
	}
}

// Frame advances the field to the clock's elapsed time and emits the
// complete ordered primitive stream: background, glow layer, base
// layer, aux node, core sphere.
func (c *Composer) Frame() []ringfield.Primitive {
	env := tempo.FrameEnvelope(c.Clock, c.Params.BeatsPerMeasure, c.Params.Pulse)
	// Audio-reactive emphasis rides on top of the tempo envelope.
	env.GlowScale += 1.5 * c.level
	env.AlphaBoost += 0.25 * c.level

	c.Field.Advance(c.Clock.Elapsed(), c.Clock.BPM())

	vp := c.viewport()
	rp := c.Params.Render
	rp.Viewport = vp
	rp.Env = env

	var out []ringfield.Primitive
	out = c.appendBackground(out)

	var layers ringfield.Layers
	for _, ring := range c.Field.Rings {
		ringfield.AppendRing(&layers, ring, rp)
	}
	if c.Params.DualCore {
		c.appendSecondaryCluster(&layers, rp)
	}

	c.appendCoreGlow(&layers, vp)
	c.appendAuxGlow(&layers, vp)
	c.appendLevelRing(&layers, vp)
	if c.Params.DualCore {
		c.appendSecondaryCoreGlow(&layers, vp, env.AlignPulse)
	}

	out = append(out, layers.Glow...)
	out = append(out, layers.Base...)
	out = c.appendAuxBody(out, vp)
	out = c.appendCoreBody(out, vp)
	if c.Params.DualCore {
		out = c.appendSecondaryCoreBody(out, vp)
	}
	return out
}

// appendSecondaryCluster renders the dual-core mirror: same rings with
// fixed phase offsets, shifted horizontally.
func (c *Composer) appendSecondaryCluster(dst *ringfield.Layers, rp ringfield.RenderParams) {
	rp.XShift = c.width * c.Params.DualShift
	for _, ring := range c.Field.Rings {
		spin, tx, ty := ring.Spin, ring.TiltX, ring.TiltY
		ring.Spin += c.Params.DualPhase
		ring.TiltX += c.Params.DualPhase * c.Params.DualTiltXMul
		ring.TiltY += c.Params.DualPhase * c.Params.DualTiltYMul
		ringfield.AppendRing(dst, ring, rp)
		ring.Spin, ring.TiltX, ring.TiltY = spin, tx, ty
	}
}

// secondaryCenter puts the second core under its ring cluster: the
// primary center plus the same horizontal shift the mirrored rings get.
func (c *Composer) secondaryCenter(vp math3d.Viewport) math3d.Vec2 {
	return math3d.Vec2{X: vp.Cx + c.width*c.Params.DualShift, Y: vp.Cy}
}

func (c *Composer) secondaryCoreRadiusPx() float64 {
	return math.Min(c.width, c.height) * 0.06 * c.zoom
}

// appendSecondaryCoreGlow breathes with the alignment flash, unlike the
// fixed primary halo.
func (c *Composer) appendSecondaryCoreGlow(dst *ringfield.Layers, vp math3d.Viewport, alignPulse float64) {
	rad := c.secondaryCoreRadiusPx()
	center := c.secondaryCenter(vp)
	for i := 0; i < 5; i++ {
		t := float64(i) / 4.0
		glowR := rad * (1.35 + t*2.0 + 0.25*alignPulse)
		alpha := 0.22 * math.Pow(1.0-t, 1.5)
		dst.Glow = append(dst.Glow, ringfield.Disc(center, glowR, ringfield.CoreGlow.WithAlpha(alpha)))
	}
}

func (c *Composer) appendSecondaryCoreBody(out []ringfield.Primitive, vp math3d.Viewport) []ringfield.Primitive {
	rad := c.secondaryCoreRadiusPx()
	center := c.secondaryCenter(vp)
	out = append(out, ringfield.Disc(center, rad, ringfield.CoreColor.WithAlpha(0.98)))
	highlight := math3d.Vec2{X: center.X - rad*0.35, Y: center.Y - rad*0.35}
	out = append(out, ringfield.Disc(highlight, rad*0.38, ringfield.RGBA{R: 1, G: 1, B: 1, A: 0.45}))
	return out
}

// appendLevelRing is the audio meter: a thin circle around the core
// that swells and brightens with the smoothed input level. At level
// zero it settles into the outer rim of the core glow.
func (c *Composer) appendLevelRing(dst *ringfield.Layers, vp math3d.Viewport) {
	r := c.coreRadiusPx(vp) * (1.5 + 1.3*c.level)
	center := math3d.Vec2{X: vp.Cx, Y: vp.Cy}
	col := ringfield.AccentTeal.WithAlpha(0.10 + 0.30*c.level)
	dst.Glow = append(dst.Glow, ringfield.Circle(center, r, col, math.Max(1.5, 1.5+2.5*c.level)))
}

// appendBackground emits the deep backdrop and a soft halo vignette.
func (c *Composer) appendBackground(out []ringfield.Primitive) []ringfield.Primitive {
	center := math3d.Vec2{X: c.width * 0.5, Y: c.height * 0.5}
	d := math.Min(c.width, c.height)
	out = append(out, ringfield.Disc(center, math.Hypot(c.width, c.height)*0.5, c.Params.BGTop))
	out = append(out, ringfield.Disc(center, d*0.51, c.Params.BGBottom.WithAlpha(0.22)))
	return out
}

// coreRadiusPx sizes the central sphere against the innermost ring so
// rings never vanish inside it.
func (c *Composer) coreRadiusPx(vp math3d.Viewport) float64 {
	minDim := math.Min(c.width, c.height)
	r := minDim * 0.07 * c.zoom
	if len(c.Field.Rings) > 0 {
		inner := c.Field.Rings[len(c.Field.Rings)-1]
		u, _, _ := c.Params.Render.Camera.Project(math3d.Vec3{X: inner.Radius})
		innerPx := math.Abs(vp.ToScreen(u, 0).X - vp.Cx)
		r = math.Min(r, math.Max(12, innerPx*0.55))
	}
	return math.Max(10, math.Min(r, minDim*0.18))
}

func (c *Composer) appendCoreGlow(dst *ringfield.Layers, vp math3d.Viewport) {
	r := c.coreRadiusPx(vp)
	center := math3d.Vec2{X: vp.Cx, Y: vp.Cy}
	for _, g := range []struct{ scale, alpha float64 }{
		{1.6, 160.0 / 255}, {2.2, 90.0 / 255}, {2.9, 50.0 / 255},
	} {
		dst.Glow = append(dst.Glow, ringfield.Disc(center, r*g.scale, ringfield.CoreGlow.WithAlpha(g.alpha)))
	}
}

func (c *Composer) appendCoreBody(out []ringfield.Primitive, vp math3d.Viewport) []ringfield.Primitive {
	r := c.coreRadiusPx(vp)
	center := math3d.Vec2{X: vp.Cx, Y: vp.Cy}

	// Layered body fading from the core tint to white-hot.
	palette := []ringfield.RGBA{ringfield.CoreColor, {R: 1, G: 1, B: 1, A: 1}}
	layers := len(palette) + 2
	for i := 0; i < layers; i++ {
		t := float64(i) / float64(layers-1)
		idx := int(t * float64(len(palette)))
		if idx >= len(palette) {
			idx = len(palette) - 1
		}
		alpha := (245.0 / 255) * math.Pow(1-t, 1.5)
		out = append(out, ringfield.Disc(center, r*(1-0.09*float64(i)), palette[idx].WithAlpha(alpha)))
	}

	// Specular highlight.
	highlight := math3d.Vec2{X: vp.Cx - r*0.58, Y: vp.Cy - r*0.58}
	out = append(out, ringfield.Disc(highlight, r*0.32, ringfield.RGBA{R: 1, G: 1, B: 1, A: 150.0 / 255}))
	return out
}

// auxPosition is the teal node's orbit around the outermost ring.
func (c *Composer) auxPosition() (math3d.Vec3, bool) {
	if len(c.Field.Rings) == 0 {
		return math3d.Vec3{}, false
	}
	t := c.Clock.Elapsed() * c.Params.AuxOrbitSpeed
	orbitR := c.Field.Rings[0].Radius * 0.9
	return math3d.Vec3{
		X: orbitR * math.Cos(t),
		Y: orbitR * 0.35 * math.Sin(t*0.7),
		Z: orbitR * 0.6 * math.Sin(t),
	}, true
}

func (c *Composer) auxScreen(vp math3d.Viewport) (math3d.Vec2, float64, bool) {
	pos, ok := c.auxPosition()
	if !ok {
		return math3d.Vec2{}, 0, false
	}
	u, v, _ := c.Params.Render.Camera.Project(pos)
	pt := vp.ToScreen(u, v)
	radius := math.Min(c.width, c.height) * 0.012 * c.zoom
	return pt, radius, true
}

func (c *Composer) appendAuxGlow(dst *ringfield.Layers, vp math3d.Viewport) {
	pt, r, ok := c.auxScreen(vp)
	if !ok {
		return
	}
	dst.Glow = append(dst.Glow,
		ringfield.Disc(pt, r*2.8, ringfield.AccentTeal.WithAlpha(50.0/255)),
		ringfield.Disc(pt, r*1.6, ringfield.AccentTeal.WithAlpha(90.0/255)),
	)
}

func (c *Composer) appendAuxBody(out []ringfield.Primitive, vp math3d.Viewport) []ringfield.Primitive {
	pt, r, ok := c.auxScreen(vp)
	if !ok {
		return out
	}
	out = append(out, ringfield.Disc(pt, math.Max(2, r), ringfield.AccentTeal.WithAlpha(200.0/255)))
	return out
}

// HUD formats the status line the interactive backends display.
func (c *Composer) HUD() string {
	status := ""
	if c.Clock.Paused() {
		status = " • paused"
	}
	dual := ""
	if c.Params.DualCore {
		dual = " • dual core"
	}
	return fmt.Sprintf(
		"Align every %.1fs ([ / ]) • Rings: %d (i inner / u outer / - remove) • Zoom: , / . • BPM %5.1f%s%s",
		c.Clock.ResetPeriod(), len(c.Field.Rings), c.Clock.BPM(), dual, status,
	)
}
