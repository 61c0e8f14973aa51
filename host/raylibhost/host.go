// Package raylibhost runs the ambient field in a resizable raylib window.
package raylibhost

import (
	"context"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/aurora/config"
	"github.com/pthm-cable/aurora/loop"
	"github.com/pthm-cable/aurora/renderer"
	"github.com/pthm-cable/aurora/ui"
)

const controlsLegend = "Space: pause | F3: HUD | P: perf | F11: fullscreen"

// Host drives frames from the raylib draw loop: one scheduler Fire per
// window refresh, then the canvas is uploaded and drawn.
type Host struct {
	cfg   *config.Config
	title string
	sched *loop.ManualScheduler
	win   *loop.Window

	paused   bool
	showHUD  bool
	showPerf bool
	hud      *ui.HUD
	perf     *ui.PerfPanel
}

// New creates a host for a window of the configured screen size.
func New(cfg *config.Config, title string) *Host {
	return &Host{
		cfg:   cfg,
		title: title,
		sched: loop.NewManualScheduler(),
		win:   loop.NewWindow(cfg.Screen.Width, cfg.Screen.Height),
		hud:   ui.NewHUD(),
		perf:  ui.NewPerfPanel(10, 100, 300),
	}
}

func (h *Host) Scheduler() loop.Scheduler { return h.sched }
func (h *Host) Viewport() loop.Viewport   { return h.win }

// Run opens the window and renders until it is closed or ctx is done.
func (h *Host) Run(ctx context.Context, a *loop.Ambient) error {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(h.cfg.Screen.Width), int32(h.cfg.Screen.Height), h.title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(h.cfg.Screen.TargetFPS))

	w, ht := h.win.Size()
	canvas := renderer.NewCanvas(w, ht)
	a.Mount(canvas)
	defer a.Unmount()

	var tex Texture
	defer tex.Unload()

	clock := loop.NewStopwatch(nil)
	slog.Info("raylib host started", "width", w, "height", ht)

	for !rl.WindowShouldClose() {
		if ctx.Err() != nil {
			break
		}
		h.handleInput()
		if !h.paused {
			h.sched.Fire(clock.Millis())
		}

		tex.Upload(canvas.Image())
		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		tex.Draw(0, 0)
		h.drawOverlays(a)
		rl.EndDrawing()
		a.Perf().RecordPresent()
	}
	return nil
}

// handleInput processes keyboard input.
func (h *Host) handleInput() {
	h.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		h.paused = !h.paused
	}
	if rl.IsKeyPressed(rl.KeyF3) {
		h.showHUD = !h.showHUD
	}
	if rl.IsKeyPressed(rl.KeyP) {
		h.showPerf = !h.showPerf
	}
}

// drawOverlays draws the HUD and perf panel over the frame when enabled.
func (h *Host) drawOverlays(a *loop.Ambient) {
	if !h.showHUD {
		return
	}
	w, ht := h.win.Size()
	h.hud.Draw(ui.HUDData{
		Title:      h.title,
		Width:      w,
		Height:     ht,
		Particles:  a.Field().Count(),
		Links:      a.Links(),
		Generation: a.Field().Generation(),
		Frame:      a.Frames(),
		FPS:        rl.GetFPS(),
		Paused:     h.paused,
	})
	h.hud.DrawControls(int32(ht), controlsLegend)
	if h.showPerf && a.Perf() != nil {
		h.perf.Draw(a.Perf().Stats())
	}
}

// handleResize forwards window size changes to the viewport.
func (h *Host) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	h.win.Resize(int(rl.GetScreenWidth()), int(rl.GetScreenHeight()))
}
