// Package termhost renders the ambient field into a truecolor terminal.
package termhost

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/aurora/config"
	"github.com/pthm-cable/aurora/loop"
	"github.com/pthm-cable/aurora/renderer"
)

// Host fires frames from a ticker and blits each one to a tcell screen.
// Terminal resize events become viewport resizes.
type Host struct {
	cfg    *config.Config
	screen tcell.Screen
	sched  *loop.ManualScheduler
	win    *loop.Window
	clock  loop.Clock
}

// New creates a host on screen. A nil screen opens the controlling terminal.
func New(cfg *config.Config, screen tcell.Screen) (*Host, error) {
	if screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("opening terminal: %w", err)
		}
		screen = s
	}
	return &Host{
		cfg:    cfg,
		screen: screen,
		sched:  loop.NewManualScheduler(),
		win:    loop.NewWindow(0, 0),
		clock:  loop.SystemClock{},
	}, nil
}

func (h *Host) Scheduler() loop.Scheduler { return h.sched }
func (h *Host) Viewport() loop.Viewport   { return h.win }

// Run takes over the terminal until ctx is done or Escape, q or Ctrl-C is pressed.
func (h *Host) Run(ctx context.Context, a *loop.Ambient) error {
	if err := h.screen.Init(); err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}
	defer h.screen.Fini()
	h.screen.HideCursor()

	scale := h.cfg.Terminal.PixelScale
	cols, rows := h.screen.Size()
	h.win.Resize(PixelSize(cols, rows, scale))

	w, ht := h.win.Size()
	canvas := renderer.NewCanvas(w, ht)
	a.Mount(canvas)
	defer a.Unmount()

	done := make(chan struct{})
	defer close(done)
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(h.cfg.Terminal.FPS))
	defer ticker.Stop()
	clock := loop.NewStopwatch(h.clock)

	slog.Debug("terminal host started", "width", w, "height", ht, "scale", scale)

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				cols, rows := ev.Size()
				h.win.Resize(PixelSize(cols, rows, scale))
				h.screen.Sync()
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
					(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
					return nil
				}
			}

		case <-ticker.C:
			h.sched.Fire(clock.Millis())
			Blit(h.screen, canvas.Image(), scale)
			h.screen.Show()
			a.Perf().RecordPresent()
		}
	}
}
