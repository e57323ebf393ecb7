package term

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/iburimskiy/gyro-rings/internal/scene"
)

const frameInterval = time.Second / 30

// Run drives the ring scene in a tcell screen until q or Esc. Key
// bindings match the window backend, minus the audio controls.
func Run(composer *scene.Composer, logger *zap.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal screen: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	go screen.ChannelEvents(events, quit)

	cols, rows := screen.Size()
	fb := newFramebuffer(cols, rows)
	composer.SetSize(cols, rows*2)
	logger.Info("terminal renderer started", zap.Int("cols", cols), zap.Int("rows", rows))

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				cols, rows = ev.Size()
				fb = newFramebuffer(cols, rows)
				composer.SetSize(cols, rows*2)
				screen.Sync()
			case *tcell.EventKey:
				if done := handleKey(ev, composer); done {
					close(quit)
					return nil
				}
			}
		case now := <-ticker.C:
			composer.Clock.Advance(now.Sub(last).Seconds())
			last = now

			fb.clear()
			fb.Draw(composer.Frame())
			fb.Flush(screen)
			drawHUD(screen, composer.HUD(), cols)
			screen.Show()
		}
	}
}

// handleKey applies a key event and reports whether the loop should end.
func handleKey(ev *tcell.EventKey, composer *scene.Composer) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		composer.Clock.NudgeBPM(5)
	case tcell.KeyDown:
		composer.Clock.NudgeBPM(-5)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case ' ':
			composer.Clock.Toggle()
		case '[':
			composer.AdjustPeriod(-1)
		case ']':
			composer.AdjustPeriod(1)
		case 'i', '+', '=':
			composer.Field.AddInner()
		case 'u':
			composer.Field.AddOuter()
		case '-':
			composer.Field.Remove()
		case ',':
			composer.ZoomOut()
		case '.':
			composer.ZoomIn()
		case 'd':
			composer.ToggleDualCore()
		}
	}
	return false
}

func drawHUD(screen tcell.Screen, text string, cols int) {
	style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(210, 210, 220))
	x := 1
	for _, r := range text {
		if x >= cols-1 {
			break
		}
		screen.SetContent(x, 0, r, nil, style)
		x++
	}
}
