package loop

import (
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/aurora/config"
	"github.com/pthm-cable/aurora/renderer"
	"github.com/pthm-cable/aurora/systems"
	"github.com/pthm-cable/aurora/telemetry"
)

// State is the renderer lifecycle state.
type State int

const (
	// StateIdle: not mounted, or unmounted. No frame is pending and no
	// resize listener is registered.
	StateIdle State = iota
	// StateRunning: exactly one frame is pending and the resize listener is registered.
	StateRunning
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	}
	return "unknown"
}

// Option configures an Ambient.
type Option func(*Ambient)

// WithRand sets the random source for particle spawning and flicker.
func WithRand(rng *rand.Rand) Option {
	return func(a *Ambient) { a.rng = rng }
}

// WithTelemetry enables per-frame timing and periodic field stats.
// Either argument may be nil.
func WithTelemetry(perf *telemetry.PerfCollector, out *telemetry.OutputManager) Option {
	return func(a *Ambient) {
		a.perf = perf
		a.out = out
	}
}

// WithRestore makes the next Mount start from ps instead of a fresh
// spawn. Later resizes reinitialize as usual.
func WithRestore(ps []systems.Particle) Option {
	return func(a *Ambient) { a.restore = ps }
}

// Ambient is the ambient field renderer. It composes one frame per
// scheduler callback while Running and reinitializes the particle field
// whenever the viewport resizes.
//
// All methods must be called from the goroutine that fires the scheduler.
type Ambient struct {
	cfg   *config.Config
	sched Scheduler
	view  Viewport
	rng   *rand.Rand

	state        State
	surface      renderer.Surface
	handle       Handle
	removeResize func()

	field      *systems.ParticleField
	background *renderer.BackgroundRenderer
	aurora     *renderer.AuroraRenderer
	orbs       *renderer.OrbRenderer
	particles  *renderer.ParticleRenderer
	links      *renderer.LinkRenderer
	veil       *renderer.VeilRenderer

	restore []systems.Particle

	perf      *telemetry.PerfCollector
	out       *telemetry.OutputManager
	frames    uint64
	lastLinks int
}

// New creates an idle renderer bound to a scheduler and viewport.
func New(cfg *config.Config, sched Scheduler, view Viewport, opts ...Option) *Ambient {
	a := &Ambient{
		cfg:   cfg,
		sched: sched,
		view:  view,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.rng == nil {
		a.rng = rand.New(rand.NewSource(rand.Int63()))
	}
	a.field = systems.NewParticleField(cfg.Particles, a.rng)
	a.buildRenderers()
	return a
}

func (a *Ambient) buildRenderers() {
	a.background = renderer.NewBackgroundRenderer(a.cfg.Background)
	a.aurora = renderer.NewAuroraRenderer(systems.NewWaves(a.cfg.Waves))
	a.orbs = renderer.NewOrbRenderer(systems.NewOrbs(a.cfg.Orbs))
	a.particles = renderer.NewParticleRenderer(a.cfg.Particles)
	a.links = renderer.NewLinkRenderer(a.cfg.Links)
	a.veil = renderer.NewVeilRenderer(systems.NewVeil(a.cfg.Veil))
}

// Mount sizes s to the viewport, spawns the particle field, registers the
// resize listener and schedules the first frame. A nil surface leaves the
// renderer Idle. Mounting while Running is a no-op.
func (a *Ambient) Mount(s renderer.Surface) {
	if a.state == StateRunning {
		return
	}
	if s == nil {
		slog.Debug("ambient: no drawing surface, staying idle")
		return
	}

	w, h := a.view.Size()
	s.Resize(w, h)
	a.surface = s
	if a.restore != nil {
		a.field.Restore(float64(w), float64(h), a.restore)
		a.restore = nil
	} else {
		a.field.Init(float64(w), float64(h))
	}

	a.removeResize = a.view.AddResizeListener(a.onResize)
	a.state = StateRunning
	a.handle = a.sched.RequestFrame(a.frame)

	slog.Debug("ambient: mounted", "width", w, "height", h,
		"particles", a.field.Count(), "max_link_pairs", a.cfg.Derived.MaxLinkPairs)
}

// Unmount cancels the pending frame and removes the resize listener.
// Safe to call in any state, any number of times.
func (a *Ambient) Unmount() {
	if a.state != StateRunning {
		return
	}
	a.sched.CancelFrame(a.handle)
	a.handle = 0
	if a.removeResize != nil {
		a.removeResize()
		a.removeResize = nil
	}
	a.state = StateIdle
	slog.Debug("ambient: unmounted", "frames", a.frames)
}

// onResize resizes the surface and replaces the whole particle population.
func (a *Ambient) onResize(w, h int) {
	if a.state != StateRunning {
		return
	}
	a.surface.Resize(w, h)
	a.field.Init(float64(w), float64(h))
	slog.Debug("ambient: resized", "width", w, "height", h, "particles", a.field.Count())
}

// frame composes one frame and schedules the next.
func (a *Ambient) frame(now float64) {
	if a.state != StateRunning {
		return
	}
	a.Render(now)
	a.handle = a.sched.RequestFrame(a.frame)
}

// Render composes one frame onto the mounted surface at time now (ms):
// clear, background, waves, orbs, particles (update then draw each), links, veil.
func (a *Ambient) Render(now float64) {
	s := a.surface
	if s == nil {
		return
	}

	a.perf.StartFrame()

	a.perf.StartPhase(telemetry.PhaseBackground)
	s.Clear()
	a.background.Draw(s)

	a.perf.StartPhase(telemetry.PhaseWaves)
	a.aurora.Draw(s, now)

	a.perf.StartPhase(telemetry.PhaseOrbs)
	a.orbs.Draw(s, now)

	a.perf.StartPhase(telemetry.PhaseParticles)
	for i := range a.field.Particles {
		a.field.UpdateAt(i)
		a.particles.Draw(s, &a.field.Particles[i])
	}

	a.perf.StartPhase(telemetry.PhaseLinks)
	a.lastLinks = a.links.Draw(s, a.field.Particles)

	a.perf.StartPhase(telemetry.PhaseVeil)
	a.veil.Draw(s, now)

	a.perf.EndFrame()
	a.frames++
	a.report()
}

// report flushes telemetry at window boundaries.
func (a *Ambient) report() {
	if a.perf == nil && a.out == nil {
		return
	}
	tc := a.cfg.Telemetry
	if a.perf != nil && tc.PerfWindow > 0 && a.frames%uint64(tc.PerfWindow) == 0 {
		if err := a.out.WritePerf(a.perf.Stats(), a.frames); err != nil {
			slog.Warn("ambient: perf output failed", "error", err)
		}
	}
	if tc.LogEvery > 0 && a.frames%uint64(tc.LogEvery) == 0 {
		stats := telemetry.CollectFieldStats(a.frames, a.field, a.lastLinks)
		if a.perf != nil {
			slog.Info("field", "stats", stats, "perf", a.perf.Stats())
		} else {
			slog.Info("field", "stats", stats)
		}
		if err := a.out.WriteField(stats); err != nil {
			slog.Warn("ambient: field output failed", "error", err)
		}
	}
}

// Reconfigure swaps in new parameters and respawns the particle field if mounted.
func (a *Ambient) Reconfigure(cfg *config.Config) {
	a.cfg = cfg
	a.field.SetConfig(cfg.Particles)
	a.buildRenderers()
	if a.state == StateRunning {
		w, h := a.surface.Size()
		a.field.Init(float64(w), float64(h))
	}
}

// State returns the lifecycle state.
func (a *Ambient) State() State { return a.state }

// Field returns the particle field.
func (a *Ambient) Field() *systems.ParticleField { return a.field }

// Surface returns the mounted surface, or nil when never mounted.
func (a *Ambient) Surface() renderer.Surface { return a.surface }

// Frames returns the number of frames composed.
func (a *Ambient) Frames() uint64 { return a.frames }

// Links returns how many links the last frame drew.
func (a *Ambient) Links() int { return a.lastLinks }

// Config returns the active configuration.
func (a *Ambient) Config() *config.Config { return a.cfg }

// Perf returns the perf collector, or nil when telemetry is off.
func (a *Ambient) Perf() *telemetry.PerfCollector { return a.perf }
