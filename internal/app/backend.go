package app

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/gyro-rings/internal/ringfield"
)

// DrawPrimitives rasterizes an ordered primitive stream onto an ebiten
// image. Emission order is paint order.
func DrawPrimitives(screen *ebiten.Image, prims []ringfield.Primitive) {
	for _, p := range prims {
		col := p.Color.NRGBA()
		switch p.Kind {
		case ringfield.PrimLine:
			a, b := p.Points[0], p.Points[1]
			vector.StrokeLine(screen,
				float32(a.X), float32(a.Y),
				float32(b.X), float32(b.Y),
				float32(p.Width), col, true)
		case ringfield.PrimPolyline:
			for i := 1; i < len(p.Points); i++ {
				a, b := p.Points[i-1], p.Points[i]
				vector.StrokeLine(screen,
					float32(a.X), float32(a.Y),
					float32(b.X), float32(b.Y),
					float32(p.Width), col, true)
			}
		case ringfield.PrimDisc:
			c := p.Points[0]
			vector.DrawFilledCircle(screen,
				float32(c.X), float32(c.Y),
				float32(p.Radius), col, true)
		case ringfield.PrimCircle:
			c := p.Points[0]
			vector.StrokeCircle(screen,
				float32(c.X), float32(c.Y),
				float32(p.Radius), float32(p.Width), col, true)
		}
	}
}
