// Package math3d provides the small amount of 3D vector math the ring
// renderer needs: axis rotations, Rodrigues rotation about an arbitrary
// axis, and a clamped perspective projection.
package math3d

import "math"

// Vec3 is a point or direction in scene units.
type Vec3 struct {
	X, Y, Z float64
}

// Vec2 is a projected screen-space point.
type Vec2 struct {
	X, Y float64
}

func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{v.X + w.X, v.Y + w.Y, v.Z + w.Z}
}

func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{v.X - w.X, v.Y - w.Y, v.Z - w.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func (v Vec3) Dot(w Vec3) float64 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		v.Y*w.Z - v.Z*w.Y,
		v.Z*w.X - v.X*w.Z,
		v.X*w.Y - v.Y*w.X,
	}
}

func (v Vec3) LenSq() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func (v Vec3) Len() float64 {
	return math.Sqrt(v.LenSq())
}

// Normalize returns a unit vector. Near-zero input falls back to +Z so
// lighting math never divides by zero.
func (v Vec3) Normalize() Vec3 {
	mag := v.Len()
	if mag < 1e-6 {
		return Vec3{0, 0, 1}
	}
	return Vec3{v.X / mag, v.Y / mag, v.Z / mag}
}

// RotateX rotates about the X axis by angle radians.
func (v Vec3) RotateX(a float64) Vec3 {
	ca, sa := math.Cos(a), math.Sin(a)
	return Vec3{v.X, v.Y*ca - v.Z*sa, v.Y*sa + v.Z*ca}
}

// RotateY rotates about the Y axis by angle radians.
func (v Vec3) RotateY(a float64) Vec3 {
	ca, sa := math.Cos(a), math.Sin(a)
	return Vec3{v.X*ca + v.Z*sa, v.Y, -v.X*sa + v.Z*ca}
}

// RotateZ rotates about the Z axis by angle radians.
func (v Vec3) RotateZ(a float64) Vec3 {
	ca, sa := math.Cos(a), math.Sin(a)
	return Vec3{v.X*ca - v.Y*sa, v.X*sa + v.Y*ca, v.Z}
}

// RotateAxis rotates v about an arbitrary axis by angle radians using the
// Rodrigues formula. The axis is normalized internally.
func (v Vec3) RotateAxis(axis Vec3, a float64) Vec3 {
	k := axis.Normalize()
	ca, sa := math.Cos(a), math.Sin(a)
	// v*cos + (k x v)*sin + k*(k . v)*(1 - cos)
	term1 := v.Scale(ca)
	term2 := k.Cross(v).Scale(sa)
	term3 := k.Scale(k.Dot(v) * (1 - ca))
	return term1.Add(term2).Add(term3)
}
