//go:build js && wasm

// Package webhost runs the ambient field in a browser page: frames come
// from requestAnimationFrame and drawing goes to a canvas 2D context.
package webhost

import (
	"context"
	"log/slog"
	"syscall/js"

	"github.com/pthm-cable/aurora/loop"
)

// Host binds the renderer to the canvas element with id CanvasID.
type Host struct {
	CanvasID string

	sched *Scheduler
	view  *Viewport
}

// New creates a host for the canvas with the given element id.
func New(canvasID string) *Host {
	return &Host{
		CanvasID: canvasID,
		sched:    NewScheduler(),
		view:     NewViewport(),
	}
}

func (h *Host) Scheduler() loop.Scheduler { return h.sched }
func (h *Host) Viewport() loop.Viewport   { return h.view }

// Run mounts the renderer and blocks until ctx is done or the page is
// hidden for navigation. A missing canvas or 2D context leaves the page
// untouched.
func (h *Host) Run(ctx context.Context, a *loop.Ambient) error {
	a.Mount(Attach(h.CanvasID))
	defer a.Unmount()
	if a.State() != loop.StateRunning {
		slog.Debug("web host: canvas unavailable", "id", h.CanvasID)
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	window := js.Global()
	onHide := js.FuncOf(func(this js.Value, args []js.Value) any {
		a.Unmount()
		cancel()
		return nil
	})
	window.Call("addEventListener", "pagehide", onHide)
	defer func() {
		window.Call("removeEventListener", "pagehide", onHide)
		onHide.Release()
	}()

	<-ctx.Done()
	return nil
}
