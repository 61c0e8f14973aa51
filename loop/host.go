package loop

import "context"

// Host supplies the environment an Ambient runs in: a frame scheduler, a
// viewport, a drawing surface and a display to present it on.
//
// Run mounts a, drives frames until ctx is done or the display closes, and
// unmounts a on every return path.
type Host interface {
	Scheduler() Scheduler
	Viewport() Viewport
	Run(ctx context.Context, a *Ambient) error
}
