// Package ebitenhost runs the ambient field in an ebiten window.
package ebitenhost

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/pthm-cable/aurora/config"
	"github.com/pthm-cable/aurora/loop"
	"github.com/pthm-cable/aurora/renderer"
)

// Host fires one frame per ebiten Update and writes the canvas to the
// screen in Draw. Layout reports window size changes to the viewport.
type Host struct {
	cfg   *config.Config
	title string
	sched *loop.ManualScheduler
	win   *loop.Window
}

// New creates a host for a window of the configured screen size.
func New(cfg *config.Config, title string) *Host {
	return &Host{
		cfg:   cfg,
		title: title,
		sched: loop.NewManualScheduler(),
		win:   loop.NewWindow(cfg.Screen.Width, cfg.Screen.Height),
	}
}

func (h *Host) Scheduler() loop.Scheduler { return h.sched }
func (h *Host) Viewport() loop.Viewport   { return h.win }

// Run opens the window and blocks until it closes, Escape is pressed or ctx is done.
func (h *Host) Run(ctx context.Context, a *loop.Ambient) error {
	ebiten.SetWindowSize(h.cfg.Screen.Width, h.cfg.Screen.Height)
	ebiten.SetWindowTitle(h.title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(h.cfg.Screen.TargetFPS)

	w, ht := h.win.Size()
	g := &game{
		ctx:    ctx,
		host:   h,
		amb:    a,
		canvas: renderer.NewCanvas(w, ht),
		clock:  loop.NewStopwatch(nil),
	}
	a.Mount(g.canvas)
	defer a.Unmount()

	slog.Info("ebiten host started", "width", w, "height", ht)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("running ebiten game: %w", err)
	}
	return nil
}

type game struct {
	ctx    context.Context
	host   *Host
	amb    *loop.Ambient
	canvas *renderer.Canvas
	clock  *loop.Stopwatch
	paused bool
}

func (g *game) Update() error {
	if g.ctx.Err() != nil || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if !g.paused {
		g.host.sched.Fire(g.clock.Millis())
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	img := g.canvas.Image()
	// Skip the frame a resize lands on; the canvas catches up next Update.
	if img.Bounds().Size() != screen.Bounds().Size() {
		return
	}
	screen.WritePixels(img.Pix)
	g.amb.Perf().RecordPresent()
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.host.win.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
