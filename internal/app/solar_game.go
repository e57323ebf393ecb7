package app

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/iburimskiy/gyro-rings/internal/solar"
)

// SolarGame is the ebiten host for the n-body playground.
type SolarGame struct {
	system *solar.System
	logger *zap.Logger

	width, height int
	paused        bool
}

func NewSolarGame(width, height int, logger *zap.Logger) *SolarGame {
	return &SolarGame{
		system: solar.NewSystem(),
		logger: logger,
		width:  width,
		height: height,
	}
}

func (g *SolarGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPeriod) {
		g.system.AdjustTimeScale(1.5)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyComma) {
		g.system.AdjustTimeScale(1.0 / 1.5)
	}
	if !g.paused {
		g.system.Step(1.0 / float64(ebiten.TPS()))
	}
	return nil
}

func (g *SolarGame) Draw(screen *ebiten.Image) {
	DrawPrimitives(screen, g.system.Frame(g.width, g.height))

	hud := fmt.Sprintf("Time warp: %.2fx (, / .) • Sim time: %.2f yr • Space: pause • Esc/Q: quit",
		g.system.TimeScale, g.system.SimYears)
	if g.paused {
		hud += " • paused"
	}
	ebitenutil.DebugPrintAt(screen, hud, 12, 12)
}

func (g *SolarGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// Run opens the window and drives the loop until quit.
func (g *SolarGame) Run() error {
	ebiten.SetWindowSize(g.width, g.height)
	ebiten.SetWindowTitle("gyro-rings solar")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
