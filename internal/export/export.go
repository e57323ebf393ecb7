// Package export renders deterministic PNG frame sequences headlessly.
// Each frame is a pure function of (config, frame index, fps), so
// frames render concurrently.
package export

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"runtime"

	"github.com/fogleman/gg"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/iburimskiy/gyro-rings/internal/config"
	"github.com/iburimskiy/gyro-rings/internal/ringfield"
	"github.com/iburimskiy/gyro-rings/internal/scene"
	"github.com/iburimskiy/gyro-rings/internal/tempo"
)

// Options control the frame sequence.
type Options struct {
	Frames int
	FPS    float64
	OutDir string
	Width  int
	Height int
}

func (o Options) validate() error {
	if o.Frames <= 0 {
		return errors.New("export: frames must be positive")
	}
	if o.FPS <= 0 {
		return errors.New("export: fps must be positive")
	}
	if o.OutDir == "" {
		return errors.New("export: output directory required")
	}
	return nil
}

// FramePath names the PNG for frame i under dir.
func FramePath(dir string, i int) string {
	return filepath.Join(dir, fmt.Sprintf("frame_%04d.png", i))
}

// newComposer builds a fresh composer from the config; each worker gets
// its own so frames never share mutable ring state.
func newComposer(cfg config.Config, width, height int) (*scene.Composer, error) {
	field, err := ringfield.New(cfg.Specs(), cfg.Period, tempo.ParseMode(cfg.Mode), cfg.Seed)
	if err != nil {
		return nil, err
	}
	clock := tempo.NewClock(cfg.Period, cfg.BPM)

	composer := scene.NewComposer(field, clock, scene.ConfigParams(cfg))
	composer.SetSize(width, height)
	return composer, nil
}

// Run renders opt.Frames PNGs into opt.OutDir.
func Run(ctx context.Context, cfg config.Config, opt Options, logger *zap.Logger) error {
	if err := opt.validate(); err != nil {
		return err
	}
	width, height := opt.Width, opt.Height
	if width == 0 {
		width = cfg.Width
	}
	if height == 0 {
		height = cfg.Height
	}
	if err := os.MkdirAll(opt.OutDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	logger.Info("exporting frames",
		zap.Int("frames", opt.Frames),
		zap.Float64("fps", opt.FPS),
		zap.String("dir", opt.OutDir),
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i < opt.Frames; i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			composer, err := newComposer(cfg, width, height)
			if err != nil {
				return err
			}
			composer.Clock.Seek(float64(i) / opt.FPS)
			img := Rasterize(composer.Frame(), width, height)
			return gg.SavePNG(FramePath(opt.OutDir, i), img)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("export complete", zap.Int("frames", opt.Frames))
	return nil
}

// Rasterize draws a primitive stream into an image via the gg software
// canvas.
func Rasterize(prims []ringfield.Primitive, width, height int) image.Image {
	dc := gg.NewContext(width, height)
	dc.SetRGB(0, 0, 0)
	dc.Clear()

	for _, p := range prims {
		c := p.Color.Clamp()
		dc.SetRGBA(c.R, c.G, c.B, c.A)
		switch p.Kind {
		case ringfield.PrimLine:
			dc.SetLineWidth(p.Width)
			dc.DrawLine(p.Points[0].X, p.Points[0].Y, p.Points[1].X, p.Points[1].Y)
			dc.Stroke()
		case ringfield.PrimPolyline:
			dc.SetLineWidth(p.Width)
			for i := 1; i < len(p.Points); i++ {
				dc.DrawLine(p.Points[i-1].X, p.Points[i-1].Y, p.Points[i].X, p.Points[i].Y)
			}
			dc.Stroke()
		case ringfield.PrimDisc:
			dc.DrawCircle(p.Points[0].X, p.Points[0].Y, p.Radius)
			dc.Fill()
		case ringfield.PrimCircle:
			dc.SetLineWidth(p.Width)
			dc.DrawCircle(p.Points[0].X, p.Points[0].Y, p.Radius)
			dc.Stroke()
		}
	}
	return dc.Image()
}
