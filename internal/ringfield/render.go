package ringfield

import (
	"math"
	"sort"

	"github.com/iburimskiy/gyro-rings/internal/math3d"
	"github.com/iburimskiy/gyro-rings/internal/tempo"
)

// Glyph ticks on the far side of a ring read as noise, so they are only
// drawn once the segment is at least this far toward the viewer.
const glyphDepthThreshold = 0.35

// RenderParams carries everything segment emission needs beyond the
// ring itself.
type RenderParams struct {
	Camera   math3d.Camera
	Viewport math3d.Viewport
	LightDir math3d.Vec3 // unit vector

	BaseThickness float64
	BackAlpha     float64
	FrontAlpha    float64
	GlowAlpha     float64

	// TubeShading adds a dark edge and a lit highlight stroke alongside
	// each base segment so rings read as shaded tubes instead of flat
	// bands. Costs two extra strokes per segment.
	TubeShading bool

	Env tempo.Envelope

	// XShift displaces the projected cluster horizontally, in pixels.
	// Used by the dual-core secondary cluster.
	XShift float64
}

// DefaultRenderParams matches the desktop scene's visual constants.
func DefaultRenderParams() RenderParams {
	return RenderParams{
		Camera:        math3d.DefaultCamera(),
		LightDir:      math3d.Vec3{X: 0.2, Y: 0.35, Z: 1.0}.Normalize(),
		BaseThickness: 3.2,
		BackAlpha:     0.35,
		FrontAlpha:    0.98,
		GlowAlpha:     0.14,
		Env:           tempo.Envelope{ThicknessScale: 1, GlowScale: 1},
	}
}

// Layers collects the two paint passes: the wide translucent glow
// strokes drawn beneath the crisp base strokes and glyph ticks.
type Layers struct {
	Glow []Primitive
	Base []Primitive
}

type segment struct {
	zMid float64
	mid  math3d.Vec3
	idx  int
	a, b math3d.Vec2
}

// AppendRing projects one ring into depth-sorted segments and appends
// glow, base, and glyph primitives to the layers. For a ring of N
// points it emits exactly N base segments (closed loop), N glow
// segments, and one glyph tick per stride-th segment that clears the
// depth threshold. Tube shading adds an edge and a highlight stroke
// beside every base segment.
func AppendRing(dst *Layers, ring *Ring, p RenderParams) {
	n := ring.PointCount
	segs := make([]segment, 0, n)
	pts := make([]math3d.Vec3, n)
	for i := 0; i < n; i++ {
		pts[i] = ring.point(i)
	}
	for i := 0; i < n; i++ {
		p0 := pts[i]
		p1 := pts[(i+1)%n]
		zMid := 0.5 * (p0.Z + p1.Z)
		mid := math3d.Vec3{
			X: 0.5 * (p0.X + p1.X),
			Y: 0.5 * (p0.Y + p1.Y),
			Z: zMid,
		}
		segs = append(segs, segment{
			zMid: zMid,
			mid:  mid,
			idx:  i,
			a:    projectPoint(p0, p),
			b:    projectPoint(p1, p),
		})
	}
	// Painter's algorithm: back to front.
	sort.Slice(segs, func(i, j int) bool { return segs[i].zMid < segs[j].zMid })

	thickness := math.Max(1.0, p.BaseThickness*p.Env.ThicknessScale)
	glowThickness := thickness * 2.2

	tubeOffset := math.Max(0.6, thickness*0.45)
	for _, s := range segs {
		depthMix := 0.5 + 0.5*clampSym(s.zMid)
		light := math.Max(0, s.mid.Normalize().Dot(p.LightDir))
		shade := 0.7 + 0.2*depthMix + 0.25*light
		alpha := clamp01(p.BackAlpha + (p.FrontAlpha-p.BackAlpha)*depthMix + p.Env.AlphaBoost)
		segCol := ring.segmentColor(s.idx)
		col := segCol.Scale(shade).Clamp()

		glowA := math.Min(1, p.GlowAlpha*(0.8+0.6*depthMix)*p.Env.GlowScale)
		dst.Glow = append(dst.Glow, Line(s.a, s.b, col.WithAlpha(glowA), glowThickness))
		dst.Base = append(dst.Base, Line(s.a, s.b, col.WithAlpha(alpha), thickness))

		if !p.TubeShading {
			continue
		}
		if ea, eb, ok := offsetLine(s.a, s.b, -tubeOffset); ok {
			edge := segCol.Scale(shade * 0.65).Clamp()
			dst.Base = append(dst.Base, Line(ea, eb, edge.WithAlpha(alpha*0.7), math.Max(1, thickness*0.55)))
		}
		if ha, hb, ok := offsetLine(s.a, s.b, tubeOffset); ok {
			mix := 0.35 + 0.45*light
			hcol := segCol.Lerp(RGBA{R: 1, G: 1, B: 1, A: segCol.A}, mix).Scale(shade * 0.85).Clamp()
			hcol.A = math.Min(1, alpha*(0.6+0.4*light)+0.05)
			dst.Base = append(dst.Base, Line(ha, hb, hcol, math.Max(1, thickness*0.5)))
		}
	}

	// Glyph pass: etched ticks, brighter than the ring body.
	glyphThickness := math.Max(1.0, thickness*0.7)
	for _, s := range segs {
		if (s.idx+ring.GlyphPhase)%ring.GlyphStride != 0 {
			continue
		}
		depthMix := 0.5 + 0.5*clampSym(s.zMid)
		if depthMix < glyphDepthThreshold {
			continue
		}
		light := math.Max(0, s.mid.Normalize().Dot(p.LightDir))
		shade := 0.9 + 0.2*depthMix + 0.2*light
		alpha := math.Min(1, p.FrontAlpha+p.Env.AlphaBoost+0.2)
		base := ring.segmentColor(s.idx)
		col := RGBA{
			R: base.R*shade + 0.06,
			G: base.G*shade + 0.06,
			B: base.B*shade + 0.06,
			A: alpha,
		}.Clamp()
		dst.Base = append(dst.Base, Line(s.a, s.b, col, glyphThickness))
	}
}

// Render advances the field to elapsed seconds and returns the ring
// passes as one ordered stream, every glow stroke first, then the base
// and glyph strokes. The scene composer interleaves extra passes; this
// is the plain rings-only entry point.
func Render(f *Field, elapsed, bpm float64, p RenderParams) []Primitive {
	f.Advance(elapsed, bpm)
	var layers Layers
	for _, ring := range f.Rings {
		AppendRing(&layers, ring, p)
	}
	out := make([]Primitive, 0, len(layers.Glow)+len(layers.Base))
	out = append(out, layers.Glow...)
	return append(out, layers.Base...)
}

func projectPoint(v math3d.Vec3, p RenderParams) math3d.Vec2 {
	u, w, _ := p.Camera.Project(v)
	pt := p.Viewport.ToScreen(u, w)
	pt.X += p.XShift
	return pt
}

// offsetLine shifts a segment along its screen-space normal. Segments
// that project to a point report false.
func offsetLine(a, b math3d.Vec2, offset float64) (math3d.Vec2, math3d.Vec2, bool) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	length := math.Hypot(dx, dy)
	if length < 1e-6 {
		return a, b, false
	}
	nx := -dy / length * offset
	ny := dx / length * offset
	return math3d.Vec2{X: a.X + nx, Y: a.Y + ny},
		math3d.Vec2{X: b.X + nx, Y: b.Y + ny}, true
}

func clampSym(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
