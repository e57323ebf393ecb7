package term

import (
	"testing"

	"github.com/iburimskiy/gyro-rings/internal/math3d"
	"github.com/iburimskiy/gyro-rings/internal/ringfield"
)

func TestFramebufferDimensions(t *testing.T) {
	fb := newFramebuffer(80, 24)
	if fb.w != 80 || fb.h != 48 {
		t.Errorf("framebuffer %dx%d, want 80x48 subpixels", fb.w, fb.h)
	}
}

func TestBlendBoundsSafe(t *testing.T) {
	fb := newFramebuffer(10, 5)
	white := ringfield.RGBA{R: 1, G: 1, B: 1, A: 1}
	// Out-of-range writes must be dropped, not panic.
	fb.blend(-1, 0, white)
	fb.blend(0, -1, white)
	fb.blend(10, 0, white)
	fb.blend(0, 10, white)
	for _, p := range fb.pix {
		if p != (rgb{}) {
			t.Fatal("out-of-bounds blend leaked into the buffer")
		}
	}
}

func TestBlendCompositesOver(t *testing.T) {
	fb := newFramebuffer(4, 2)
	fb.blend(1, 1, ringfield.RGBA{R: 1, G: 0, B: 0, A: 1})
	fb.blend(1, 1, ringfield.RGBA{R: 0, G: 0, B: 1, A: 0.5})
	got := fb.pix[1*fb.w+1]
	if got.r != 0.5 || got.b != 0.5 {
		t.Errorf("composite = %+v, want half red half blue", got)
	}
}

func TestDrawLineMarksCells(t *testing.T) {
	fb := newFramebuffer(20, 10)
	fb.Draw([]ringfield.Primitive{
		ringfield.Line(math3d.Vec2{X: 0, Y: 0}, math3d.Vec2{X: 19, Y: 19}, ringfield.RGBA{R: 1, G: 1, B: 1, A: 1}, 1),
	})
	var lit int
	for _, p := range fb.pix {
		if p.r > 0 {
			lit++
		}
	}
	if lit < 19 {
		t.Errorf("line lit %d subpixels, want >= 19", lit)
	}
}

func TestDrawDiscFills(t *testing.T) {
	fb := newFramebuffer(20, 10)
	fb.Draw([]ringfield.Primitive{
		ringfield.Disc(math3d.Vec2{X: 10, Y: 10}, 5, ringfield.RGBA{R: 0, G: 1, B: 0, A: 1}),
	})
	center := fb.pix[10*fb.w+10]
	if center.g != 1 {
		t.Errorf("disc center = %+v, want full green", center)
	}
	corner := fb.pix[0]
	if corner.g != 0 {
		t.Errorf("corner touched by disc: %+v", corner)
	}
}
