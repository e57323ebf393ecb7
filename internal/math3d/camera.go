package math3d

// Camera holds the perspective projection parameters shared by every
// rendering backend. Distance is how far the eye sits in front of the
// z=0 plane, FocalLength scales the projected image, and MinDepth is the
// floor applied to the perspective denominator so points at or behind
// the camera plane squash instead of blowing up or flipping sign.
type Camera struct {
	Distance    float64
	FocalLength float64
	MinDepth    float64
}

// DefaultCamera matches the ring scenes: eye at 3.5 units, unit focal
// length, denominator floored at 0.1.
func DefaultCamera() Camera {
	return Camera{Distance: 3.5, FocalLength: 1.0, MinDepth: 0.1}
}

// Project maps a scene point to normalized image coordinates plus the
// clamped depth denominator. Output is finite for every finite input,
// including z = -Distance.
func (c Camera) Project(p Vec3) (u, v, depth float64) {
	depth = p.Z + c.Distance
	if depth < c.MinDepth {
		depth = c.MinDepth
	}
	scale := c.FocalLength / depth
	return p.X * scale, p.Y * scale, depth
}

// Viewport maps normalized image coordinates to pixels.
type Viewport struct {
	Cx, Cy  float64 // projection center in pixels
	ScalePx float64 // pixels per normalized unit
	Zoom    float64
}

// ToScreen converts a projected (u, v) pair to pixel coordinates.
func (vp Viewport) ToScreen(u, v float64) Vec2 {
	s := vp.ScalePx * vp.Zoom
	return Vec2{vp.Cx + u*s, vp.Cy + v*s}
}
