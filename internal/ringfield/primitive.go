package ringfield

import "github.com/iburimskiy/gyro-rings/internal/math3d"

// PrimKind discriminates the draw primitives the renderer emits.
type PrimKind int

const (
	// PrimLine is a stroked segment between Points[0] and Points[1].
	PrimLine PrimKind = iota
	// PrimDisc is a filled circle centered at Points[0].
	PrimDisc
	// PrimCircle is a stroked circle outline centered at Points[0].
	PrimCircle
	// PrimPolyline strokes consecutive Points pairs (open path).
	PrimPolyline
)

// Primitive is one backend-agnostic draw command in pixel coordinates.
// Emission order is the paint order: earlier primitives sit behind
// later ones.
type Primitive struct {
	Kind   PrimKind
	Points []math3d.Vec2
	Radius float64 // disc and circle only
	Color  RGBA
	Width  float64 // stroke width; unused for discs
}

// Line builds a stroked segment primitive.
func Line(a, b math3d.Vec2, col RGBA, width float64) Primitive {
	return Primitive{Kind: PrimLine, Points: []math3d.Vec2{a, b}, Color: col, Width: width}
}

// Polyline builds an open stroked path through pts.
func Polyline(pts []math3d.Vec2, col RGBA, width float64) Primitive {
	return Primitive{Kind: PrimPolyline, Points: pts, Color: col, Width: width}
}

// Disc builds a filled circle primitive.
func Disc(center math3d.Vec2, radius float64, col RGBA) Primitive {
	return Primitive{Kind: PrimDisc, Points: []math3d.Vec2{center}, Radius: radius, Color: col}
}

// Circle builds a stroked circle outline primitive.
func Circle(center math3d.Vec2, radius float64, col RGBA, width float64) Primitive {
	return Primitive{Kind: PrimCircle, Points: []math3d.Vec2{center}, Radius: radius, Color: col, Width: width}
}
