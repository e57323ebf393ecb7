// Package app hosts the interactive ebiten frontends: the ring
// visualizer window with its audio chain, and the solar system
// playground.
package app

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/iburimskiy/gyro-rings/internal/config"
	"github.com/iburimskiy/gyro-rings/internal/ringfield"
	"github.com/iburimskiy/gyro-rings/internal/scene"
	"github.com/iburimskiy/gyro-rings/internal/tempo"
)

// Game is the ebiten host for the ring scene.
type Game struct {
	composer  *scene.Composer
	clock     *tempo.Clock
	player    *Player
	metronome *Metronome
	logger    *zap.Logger

	width, height int
	lastErr       error
}

// New builds the game from a validated config.
func New(cfg config.Config, logger *zap.Logger) (*Game, error) {
	field, err := ringfield.New(cfg.Specs(), cfg.Period, tempo.ParseMode(cfg.Mode), cfg.Seed)
	if err != nil {
		return nil, err
	}
	clock := tempo.NewClock(cfg.Period, cfg.BPM)

	composer := scene.NewComposer(field, clock, scene.ConfigParams(cfg))
	composer.SetSize(cfg.Width, cfg.Height)

	player := NewPlayer()
	g := &Game{
		composer:  composer,
		clock:     clock,
		player:    player,
		metronome: NewMetronome(player),
		logger:    logger,
		width:     cfg.Width,
		height:    cfg.Height,
	}
	if cfg.Metronome {
		if err := g.metronome.Toggle(); err != nil {
			logger.Warn("metronome unavailable", zap.Error(err))
		}
	}
	return g, nil
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.clock.Toggle()
		g.player.SetPaused(g.clock.Paused())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyLeftBracket) {
		g.composer.AdjustPeriod(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyRightBracket) {
		g.composer.AdjustPeriod(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		g.clock.NudgeBPM(5)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		g.clock.NudgeBPM(-5)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyI) || inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		g.composer.Field.AddInner()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyU) {
		g.composer.Field.AddOuter()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
		g.composer.Field.Remove()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyComma) {
		g.composer.ZoomOut()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPeriod) {
		g.composer.ZoomIn()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		g.composer.ToggleDualCore()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		if err := g.metronome.Toggle(); err != nil {
			g.lastErr = err
			g.logger.Warn("metronome toggle failed", zap.Error(err))
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		if err := g.player.OpenDialog(); err != nil {
			g.lastErr = err
			g.logger.Warn("open audio failed", zap.Error(err))
		} else {
			g.lastErr = nil
		}
	}

	g.clock.Advance(1.0 / float64(ebiten.TPS()))
	g.metronome.Tick(g.clock.Elapsed(), g.clock.BPM())
	g.composer.SetLevel(g.player.Level())
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	DrawPrimitives(screen, g.composer.Frame())

	hud := g.composer.HUD()
	if g.metronome.Enabled() {
		hud += " • metronome"
	}
	if g.player.Playing() {
		hud += " • audio"
	}
	if g.lastErr != nil {
		hud += " | error: " + g.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(screen, hud, 12, 12)
}

// Layout floors the logical scene at 400px per side so extreme window
// shrinks keep the rings legible.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := outsideWidth, outsideHeight
	if w < 400 {
		w = 400
	}
	if h < 400 {
		h = 400
	}
	g.width, g.height = w, h
	g.composer.SetSize(w, h)
	return w, h
}

// Run opens the window and drives the game loop until quit.
func (g *Game) Run() error {
	ebiten.SetWindowSize(g.width, g.height)
	ebiten.SetWindowTitle("gyro-rings")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	defer g.player.Close()

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
