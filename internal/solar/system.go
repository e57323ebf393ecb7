// Package solar is the softened-gravity n-body playground. It is a
// visual toy, not a physics engine: a plain Euler integrator with a
// softening term keeps close encounters stable enough to look right.
package solar

import (
	"math"

	"github.com/iburimskiy/gyro-rings/internal/math3d"
	"github.com/iburimskiy/gyro-rings/internal/ringfield"
)

// Gravitational constant in AU^3 / (solar mass · year^2).
const gravConst = 4.0 * math.Pi * math.Pi

// softening keeps the inverse-square law finite during close encounters.
const softening = 1e-4

// earthMass in solar masses.
const earthMass = 1.0 / 332946.0

// Body is one star or planet plus its recent trail.
type Body struct {
	Name     string
	Mass     float64 // solar masses
	RadiusPx float64
	Color    ringfield.RGBA

	Position math3d.Vec3 // AU
	Velocity math3d.Vec3 // AU / year
	acc      math3d.Vec3

	trail    []math3d.Vec3
	trailCap int
}

func (b *Body) pushTrail() {
	b.trail = append(b.trail, b.Position)
	if len(b.trail) > b.trailCap {
		b.trail = b.trail[len(b.trail)-b.trailCap:]
	}
}

// Trail returns the recorded positions, oldest first.
func (b *Body) Trail() []math3d.Vec3 { return b.trail }

// System owns the bodies and the view parameters.
type System struct {
	Bodies []*Body

	SecondsPerYear float64
	TimeScale      float64
	SimYears       float64

	Camera   math3d.Camera
	ViewTilt float64 // radians, camera pitch about X
}

const (
	minTimeScale = 0.1
	maxTimeScale = 48.0
)

type planetSpec struct {
	name        string
	mass        float64 // solar masses
	semiMajor   float64 // AU
	eccentric   float64
	inclination float64 // degrees
	radiusPx    float64
	color       ringfield.RGBA
}

var planets = []planetSpec{
	{"Mercury", 0.0553 * earthMass, 0.39, 0.205, 7.0, 5.0, ringfield.RGBA{R: 0.83, G: 0.82, B: 0.72, A: 1}},
	{"Venus", 0.815 * earthMass, 0.72, 0.007, 3.4, 7.0, ringfield.RGBA{R: 0.97, G: 0.86, B: 0.62, A: 1}},
	{"Earth", 1.0 * earthMass, 1.0, 0.017, 0.0, 8.5, ringfield.RGBA{R: 0.54, G: 0.78, B: 1.0, A: 1}},
	{"Mars", 0.107 * earthMass, 1.52, 0.093, 1.85, 7.5, ringfield.RGBA{R: 1.0, G: 0.62, B: 0.44, A: 1}},
	{"Jupiter", 317.8 * earthMass, 5.20, 0.049, 1.3, 12.0, ringfield.RGBA{R: 0.94, G: 0.79, B: 0.58, A: 1}},
	{"Saturn", 95.2 * earthMass, 9.58, 0.056, 2.5, 10.0, ringfield.RGBA{R: 0.94, G: 0.87, B: 0.73, A: 1}},
	{"Uranus", 14.5 * earthMass, 19.2, 0.047, 0.8, 8.0, ringfield.RGBA{R: 0.74, G: 0.87, B: 0.94, A: 1}},
	{"Neptune", 17.1 * earthMass, 30.1, 0.009, 1.8, 8.0, ringfield.RGBA{R: 0.54, G: 0.70, B: 0.94, A: 1}},
}

// NewSystem builds the sun plus the eight planets, each started at
// periapsis with the speed that approximates its elliptical orbit.
func NewSystem() *System {
	s := &System{
		SecondsPerYear: 8.0,
		TimeScale:      1.0,
		Camera:         math3d.Camera{Distance: 6.0, FocalLength: 1.2, MinDepth: 0.2},
		ViewTilt:       60.0 * math.Pi / 180.0,
	}

	sun := &Body{
		Name:     "Sun",
		Mass:     1.0,
		RadiusPx: 18.0,
		Color:    ringfield.RGBA{R: 1.0, G: 0.85, B: 0.55, A: 1},
		trailCap: 80,
	}
	s.Bodies = append(s.Bodies, sun)
	sun.pushTrail()

	for _, p := range planets {
		rPeri := p.semiMajor * (1.0 - p.eccentric)
		mu := gravConst * (sun.Mass + p.mass)
		speed := math.Sqrt(mu * (1.0 + p.eccentric) / rPeri)
		inc := p.inclination * math.Pi / 180.0

		body := &Body{
			Name:     p.name,
			Mass:     p.mass,
			RadiusPx: p.radiusPx,
			Color:    p.color,
			Position: math3d.Vec3{X: rPeri}.RotateX(inc),
			Velocity: math3d.Vec3{Y: speed}.RotateX(inc),
			trailCap: 400,
		}
		s.Bodies = append(s.Bodies, body)
		body.pushTrail()
	}
	return s
}

// AdjustTimeScale multiplies the time warp, clamped to the interactive
// range.
func (s *System) AdjustTimeScale(factor float64) {
	s.TimeScale = math.Max(minTimeScale, math.Min(maxTimeScale, s.TimeScale*factor))
}

func (s *System) computeAccelerations() {
	for _, body := range s.Bodies {
		var acc math3d.Vec3
		for _, other := range s.Bodies {
			if body == other {
				continue
			}
			delta := other.Position.Sub(body.Position)
			distSq := delta.LenSq() + softening
			invDist := 1.0 / math.Sqrt(distSq)
			invDist3 := invDist * invDist * invDist
			acc = acc.Add(delta.Scale(gravConst * other.Mass * invDist3))
		}
		body.acc = acc
	}
}

// Step advances the simulation by dt wall-clock seconds at the current
// time warp.
func (s *System) Step(dt float64) {
	dtYears := (dt * s.TimeScale) / s.SecondsPerYear
	s.computeAccelerations()
	for _, body := range s.Bodies {
		body.Velocity = body.Velocity.Add(body.acc.Scale(dtYears))
		body.Position = body.Position.Add(body.Velocity.Scale(dtYears))
		body.pushTrail()
	}
	s.SimYears += dtYears
}

// project maps an AU-space position through the tilted camera to
// normalized image coordinates.
func (s *System) project(p math3d.Vec3) (float64, float64) {
	tilted := p.RotateX(s.ViewTilt)
	u, v, _ := s.Camera.Project(tilted)
	return u, v
}

// Frame emits the trails and bodies as an ordered primitive stream.
func (s *System) Frame(width, height int) []ringfield.Primitive {
	w, h := float64(width), float64(height)
	vp := math3d.Viewport{
		Cx:      w * 0.5,
		Cy:      h * 0.5,
		ScalePx: math.Min(w, h) * 0.32,
		Zoom:    1,
	}

	var out []ringfield.Primitive
	out = append(out, ringfield.Disc(
		math3d.Vec2{X: vp.Cx, Y: vp.Cy},
		math.Hypot(w, h)*0.5,
		ringfield.RGBA{R: 0.02, G: 0.02, B: 0.05, A: 1},
	))

	// Trails first so bodies paint over them.
	for _, body := range s.Bodies {
		if len(body.trail) < 2 {
			continue
		}
		strokeW := 0.8
		if body.RadiusPx > 9 {
			strokeW = 1.1
		}
		pts := make([]math3d.Vec2, len(body.trail))
		for i, pos := range body.trail {
			u, v := s.project(pos)
			pts[i] = vp.ToScreen(u, v)
		}
		out = append(out, ringfield.Polyline(pts, body.Color, strokeW))
	}

	for _, body := range s.Bodies {
		u, v := s.project(body.Position)
		pt := vp.ToScreen(u, v)
		out = append(out, ringfield.Disc(pt, body.RadiusPx, body.Color))
	}
	return out
}
