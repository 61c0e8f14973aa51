// Package headless renders the ambient field off screen at a fixed time
// step, for benchmarking, telemetry runs and still captures.
package headless

import (
	"context"
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/pthm-cable/aurora/config"
	"github.com/pthm-cable/aurora/loop"
	"github.com/pthm-cable/aurora/renderer"
)

// Options controls a headless run.
type Options struct {
	Frames   int     // Stop after this many frames (0 = until ctx is done)
	StepMS   float64 // Simulated time per frame (0 = 1000/60)
	Snapshot string  // PNG path for the final frame (empty = none)
}

// Host fires frames back to back with simulated time.
type Host struct {
	cfg   *config.Config
	opts  Options
	sched *loop.ManualScheduler
	win   *loop.Window
}

// New creates a headless host sized to the configured screen.
func New(cfg *config.Config, opts Options) *Host {
	if opts.StepMS <= 0 {
		opts.StepMS = 1000.0 / 60
	}
	return &Host{
		cfg:   cfg,
		opts:  opts,
		sched: loop.NewManualScheduler(),
		win:   loop.NewWindow(cfg.Screen.Width, cfg.Screen.Height),
	}
}

func (h *Host) Scheduler() loop.Scheduler { return h.sched }
func (h *Host) Viewport() loop.Viewport   { return h.win }

// Window exposes the viewport so callers can script resizes.
func (h *Host) Window() *loop.Window { return h.win }

// Run renders frames until the frame budget is spent or ctx is done.
func (h *Host) Run(ctx context.Context, a *loop.Ambient) error {
	w, ht := h.win.Size()
	canvas := renderer.NewCanvas(w, ht)
	a.Mount(canvas)
	defer a.Unmount()

	start := time.Now()
	now := 0.0
	for frame := 0; h.opts.Frames == 0 || frame < h.opts.Frames; frame++ {
		if ctx.Err() != nil {
			break
		}
		if h.sched.Fire(now) == 0 {
			// Nothing scheduled: the renderer never mounted.
			break
		}
		now += h.opts.StepMS
	}

	elapsed := time.Since(start)
	slog.Info("headless run finished",
		"frames", a.Frames(),
		"sim_ms", now,
		"wall", elapsed.Round(time.Millisecond).String(),
	)

	if h.opts.Snapshot != "" {
		return WritePNG(h.opts.Snapshot, canvas)
	}
	return nil
}

// WritePNG encodes the canvas to path, creating parent directories.
func WritePNG(path string, c *renderer.Canvas) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating snapshot: %w", err)
	}
	if err := png.Encode(f, c.Image()); err != nil {
		f.Close()
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing snapshot: %w", err)
	}
	if info, err := os.Stat(path); err == nil {
		slog.Info("snapshot written", "path", path, "size", humanize.Bytes(uint64(info.Size())))
	}
	return nil
}
