// Package term renders the primitive stream into a tcell screen using
// half-block cells, two scene rows per terminal cell, so the rings keep
// their aspect ratio in a character grid.
package term

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/gyro-rings/internal/ringfield"
)

// framebuffer accumulates linear RGB per subpixel row; each terminal
// cell covers two rows.
type framebuffer struct {
	w, h int // subpixel dimensions: w columns, h = 2 * terminal rows
	pix  []rgb
}

type rgb struct{ r, g, b float64 }

func newFramebuffer(cols, rows int) *framebuffer {
	return &framebuffer{w: cols, h: rows * 2, pix: make([]rgb, cols*rows*2)}
}

func (fb *framebuffer) clear() {
	for i := range fb.pix {
		fb.pix[i] = rgb{}
	}
}

// blend applies source-over compositing at (x, y).
func (fb *framebuffer) blend(x, y int, col ringfield.RGBA) {
	if x < 0 || x >= fb.w || y < 0 || y >= fb.h {
		return
	}
	i := y*fb.w + x
	a := col.A
	fb.pix[i] = rgb{
		r: fb.pix[i].r*(1-a) + col.R*a,
		g: fb.pix[i].g*(1-a) + col.G*a,
		b: fb.pix[i].b*(1-a) + col.B*a,
	}
}

// line walks a stroked segment, thickening vertically for wide strokes.
func (fb *framebuffer) line(x0, y0, x1, y1, width float64, col ringfield.RGBA) {
	dx, dy := x1-x0, y1-y0
	steps := int(math.Max(math.Abs(dx), math.Abs(dy))) + 1
	half := int(width / 4) // stroke widths are tuned for ~900px frames
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := int(x0 + dx*t)
		y := int(y0 + dy*t)
		fb.blend(x, y, col)
		for k := 1; k <= half; k++ {
			fb.blend(x, y-k, col)
			fb.blend(x, y+k, col)
		}
	}
}

func (fb *framebuffer) disc(cx, cy, r float64, col ringfield.RGBA) {
	x0, x1 := int(cx-r), int(cx+r)
	y0, y1 := int(cy-r), int(cy+r)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx, dy := float64(x)-cx, float64(y)-cy
			if dx*dx+dy*dy <= r*r {
				fb.blend(x, y, col)
			}
		}
	}
}

// Draw rasterizes a primitive stream into the framebuffer.
func (fb *framebuffer) Draw(prims []ringfield.Primitive) {
	for _, p := range prims {
		col := p.Color.Clamp()
		switch p.Kind {
		case ringfield.PrimLine:
			fb.line(p.Points[0].X, p.Points[0].Y, p.Points[1].X, p.Points[1].Y, p.Width, col)
		case ringfield.PrimPolyline:
			for i := 1; i < len(p.Points); i++ {
				fb.line(p.Points[i-1].X, p.Points[i-1].Y, p.Points[i].X, p.Points[i].Y, p.Width, col)
			}
		case ringfield.PrimDisc:
			fb.disc(p.Points[0].X, p.Points[0].Y, p.Radius, col)
		case ringfield.PrimCircle:
			// Outline only: walk the circumference.
			steps := int(2*math.Pi*p.Radius) + 8
			for i := 0; i < steps; i++ {
				t := 2 * math.Pi * float64(i) / float64(steps)
				fb.blend(int(p.Points[0].X+p.Radius*math.Cos(t)), int(p.Points[0].Y+p.Radius*math.Sin(t)), col)
			}
		}
	}
}

// Flush writes the framebuffer to the screen as half-block cells: the
// upper subpixel row becomes the foreground of '▀', the lower one the
// background.
func (fb *framebuffer) Flush(screen tcell.Screen) {
	rows := fb.h / 2
	for row := 0; row < rows; row++ {
		for x := 0; x < fb.w; x++ {
			top := fb.pix[(row*2)*fb.w+x]
			bottom := fb.pix[(row*2+1)*fb.w+x]
			style := tcell.StyleDefault.
				Foreground(toColor(top)).
				Background(toColor(bottom))
			screen.SetContent(x, row, '▀', nil, style)
		}
	}
}

func toColor(c rgb) tcell.Color {
	return tcell.NewRGBColor(
		int32(clamp01(c.r)*255),
		int32(clamp01(c.g)*255),
		int32(clamp01(c.b)*255),
	)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
