package loop

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/aurora/config"
	"github.com/pthm-cable/aurora/renderer"
	"github.com/pthm-cable/aurora/systems"
	"github.com/pthm-cable/aurora/telemetry"
)

func init() {
	// Initialize config for tests
	config.MustInit("")
}

// countingScheduler records every call and every callback invocation.
type countingScheduler struct {
	*ManualScheduler
	requests int
	cancels  int
	calls    int
}

func newCountingScheduler() *countingScheduler {
	return &countingScheduler{ManualScheduler: NewManualScheduler()}
}

func (s *countingScheduler) RequestFrame(fn FrameFunc) Handle {
	s.requests++
	return s.ManualScheduler.RequestFrame(func(now float64) {
		s.calls++
		fn(now)
	})
}

func (s *countingScheduler) CancelFrame(h Handle) {
	s.cancels++
	s.ManualScheduler.CancelFrame(h)
}

func newTestAmbient(t *testing.T, w, h int) (*Ambient, *countingScheduler, *Window) {
	t.Helper()
	sched := newCountingScheduler()
	win := NewWindow(w, h)
	a := New(config.Cfg(), sched, win, WithRand(rand.New(rand.NewSource(1))))
	return a, sched, win
}

func TestMountStartsRunning(t *testing.T) {
	a, sched, win := newTestAmbient(t, 800, 600)
	rec := renderer.NewRecorder(0, 0)

	if a.State() != StateIdle {
		t.Fatalf("expected idle before mount, got %v", a.State())
	}
	a.Mount(rec)

	if a.State() != StateRunning {
		t.Errorf("expected running after mount, got %v", a.State())
	}
	if w, h := rec.Size(); w != 800 || h != 600 {
		t.Errorf("expected surface sized to 800x600, got %dx%d", w, h)
	}
	if a.Field().Count() != 60 {
		t.Errorf("expected 60 particles, got %d", a.Field().Count())
	}
	if sched.Pending() != 1 {
		t.Errorf("expected 1 pending frame, got %d", sched.Pending())
	}
	if win.Listeners() != 1 {
		t.Errorf("expected 1 resize listener, got %d", win.Listeners())
	}
	// The first frame is scheduled, not drawn during mount.
	if len(rec.Ops) != 0 {
		t.Errorf("expected no drawing during mount, got %d ops", len(rec.Ops))
	}

	a.Mount(rec)
	if sched.Pending() != 1 || win.Listeners() != 1 {
		t.Errorf("expected second mount to be a no-op, got %d pending %d listeners", sched.Pending(), win.Listeners())
	}
}

func TestFramesReschedule(t *testing.T) {
	a, sched, _ := newTestAmbient(t, 800, 600)
	a.Mount(renderer.NewRecorder(0, 0))

	for i := 1; i <= 10; i++ {
		if n := sched.Fire(float64(i) * 16); n != 1 {
			t.Fatalf("frame %d: expected 1 callback, got %d", i, n)
		}
		if sched.Pending() != 1 {
			t.Fatalf("frame %d: expected next frame pending, got %d", i, sched.Pending())
		}
	}
	if a.Frames() != 10 {
		t.Errorf("expected 10 frames, got %d", a.Frames())
	}
}

func TestUnmountStopsFramesAndListener(t *testing.T) {
	a, sched, win := newTestAmbient(t, 800, 600)
	a.Mount(renderer.NewRecorder(0, 0))
	sched.Fire(16)
	sched.Fire(32)

	a.Unmount()

	if a.State() != StateIdle {
		t.Errorf("expected idle after unmount, got %v", a.State())
	}
	if sched.cancels != 1 {
		t.Errorf("expected 1 cancel, got %d", sched.cancels)
	}
	if win.Listeners() != 0 {
		t.Errorf("expected resize listener removed, got %d", win.Listeners())
	}

	calls := sched.calls
	frames := a.Frames()
	for i := 0; i < 5; i++ {
		sched.Fire(float64(100 + i))
	}
	if sched.calls != calls {
		t.Errorf("expected zero callbacks after unmount, got %d", sched.calls-calls)
	}
	if a.Frames() != frames {
		t.Errorf("expected no frames after unmount, got %d more", a.Frames()-frames)
	}

	gen := a.Field().Generation()
	win.Resize(1024, 768)
	if a.Field().Generation() != gen {
		t.Error("expected resize after unmount to leave the field alone")
	}

	a.Unmount()
	if sched.cancels != 1 {
		t.Errorf("expected repeated unmount to be a no-op, got %d cancels", sched.cancels)
	}
}

func TestUnmountBeforeMount(t *testing.T) {
	a, sched, _ := newTestAmbient(t, 800, 600)
	a.Unmount()
	if sched.cancels != 0 || a.State() != StateIdle {
		t.Errorf("expected no-op, got %d cancels state %v", sched.cancels, a.State())
	}
}

func TestUnmountFromInsideFrame(t *testing.T) {
	sched := NewManualScheduler()
	win := NewWindow(800, 600)
	a := New(config.Cfg(), sched, win)
	a.Mount(renderer.NewRecorder(0, 0))

	// A peer scheduled after the renderer tears it down mid-batch.
	sched.RequestFrame(func(float64) { a.Unmount() })
	sched.Fire(16)

	if a.State() != StateIdle {
		t.Errorf("expected idle, got %v", a.State())
	}
	if sched.Pending() != 0 {
		t.Errorf("expected no pending frames, got %d", sched.Pending())
	}
}

func TestMountNilSurfaceStaysIdle(t *testing.T) {
	a, sched, win := newTestAmbient(t, 800, 600)
	a.Mount(nil)

	if a.State() != StateIdle {
		t.Errorf("expected idle, got %v", a.State())
	}
	if sched.requests != 0 || win.Listeners() != 0 {
		t.Errorf("expected nothing acquired, got %d requests %d listeners", sched.requests, win.Listeners())
	}
	a.Unmount()
}

func TestResizeReinitializesField(t *testing.T) {
	a, sched, win := newTestAmbient(t, 800, 600)
	rec := renderer.NewRecorder(0, 0)
	a.Mount(rec)
	sched.Fire(16)

	gen := a.Field().Generation()
	win.Resize(400, 400)

	if w, h := rec.Size(); w != 400 || h != 400 {
		t.Errorf("expected surface resized to 400x400, got %dx%d", w, h)
	}
	if a.Field().Generation() != gen+1 {
		t.Errorf("expected field generation %d, got %d", gen+1, a.Field().Generation())
	}
	if a.Field().Count() != 20 {
		t.Errorf("expected 20 particles, got %d", a.Field().Count())
	}
	for i, p := range a.Field().Particles {
		if p.X >= 400 || p.Y >= 400 {
			t.Errorf("particle %d at (%f, %f) outside resized viewport", i, p.X, p.Y)
		}
	}
	if sched.Pending() != 1 {
		t.Errorf("expected resize to leave exactly 1 pending frame, got %d", sched.Pending())
	}
}

func TestFrameCompositionOrder(t *testing.T) {
	a, sched, _ := newTestAmbient(t, 800, 600)
	rec := renderer.NewRecorder(0, 0)
	a.Mount(rec)
	sched.Fire(1000)

	n := a.Field().Count()
	ops := rec.Ops
	idx := 0
	expect := func(kind renderer.OpKind, count int, what string) {
		t.Helper()
		for i := 0; i < count; i++ {
			if idx >= len(ops) || ops[idx].Kind != kind {
				t.Fatalf("op %d: expected %s (%s)", idx, kind, what)
			}
			idx++
		}
	}
	expect(renderer.OpClear, 1, "clear")
	expect(renderer.OpFillRect, 1, "background")
	expect(renderer.OpFillPath, 3, "waves")
	expect(renderer.OpFillCircle, 3, "orbs")
	expect(renderer.OpFillCircle, n, "particles")
	expect(renderer.OpStrokeLine, a.Links(), "links")
	expect(renderer.OpFillRect, 3, "veil")
	if idx != len(ops) {
		t.Errorf("expected %d ops, got %d", idx, len(ops))
	}
}

func TestFrameUpdatesParticles(t *testing.T) {
	a, sched, _ := newTestAmbient(t, 800, 600)
	a.Mount(renderer.NewRecorder(0, 0))

	before := append(a.Field().Particles[:0:0], a.Field().Particles...)
	sched.Fire(16)
	after := a.Field().Particles
	for i := range before {
		if before[i].X == after[i].X && before[i].Y == after[i].Y && before[i].VX != 0 {
			t.Errorf("particle %d did not move", i)
		}
	}
}

func TestRemountAfterUnmount(t *testing.T) {
	a, sched, win := newTestAmbient(t, 800, 600)
	a.Mount(renderer.NewRecorder(0, 0))
	a.Unmount()
	a.Mount(renderer.NewRecorder(0, 0))

	if a.State() != StateRunning || sched.Pending() != 1 || win.Listeners() != 1 {
		t.Errorf("expected a clean remount, got state %v pending %d listeners %d",
			a.State(), sched.Pending(), win.Listeners())
	}
}

func TestReconfigureRespawns(t *testing.T) {
	a, _, _ := newTestAmbient(t, 800, 600)
	a.Mount(renderer.NewRecorder(0, 0))

	cfg := *config.Cfg()
	cfg.Particles.AreaPerParticle = 4000
	a.Reconfigure(&cfg)

	if a.Field().Count() != 120 {
		t.Errorf("expected 120 particles at half the area per particle, got %d", a.Field().Count())
	}
}

func TestTelemetryOutput(t *testing.T) {
	dir := t.TempDir()
	out, err := telemetry.NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer out.Close()

	cfg := *config.Cfg()
	cfg.Telemetry.PerfWindow = 5
	cfg.Telemetry.LogEvery = 5

	sched := NewManualScheduler()
	a := New(&cfg, sched, NewWindow(320, 240),
		WithRand(rand.New(rand.NewSource(2))),
		WithTelemetry(telemetry.NewPerfCollector(5), out))
	a.Mount(renderer.NewRecorder(0, 0))
	for i := 0; i < 10; i++ {
		sched.Fire(float64(i) * 16)
	}
	a.Unmount()

	for _, name := range []string{"perf.csv", "field.csv"} {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("expected %s: %v", name, err)
		}
		if info.Size() == 0 {
			t.Errorf("expected %s to have rows", name)
		}
	}
}

func TestMountRestoresSavedField(t *testing.T) {
	saved := []systems.Particle{
		{X: 10, Y: 10, Size: 1, Opacity: 0.5, Hue: 250},
		{X: 20, Y: 30, Size: 2, Opacity: 0.4, Hue: 270},
	}
	sched := newCountingScheduler()
	win := NewWindow(800, 600)
	a := New(config.Cfg(), sched, win, WithRestore(saved))
	rec := renderer.NewRecorder(0, 0)

	a.Mount(rec)
	if a.Field().Count() != 2 {
		t.Fatalf("expected restored 2 particles, got %d", a.Field().Count())
	}
	if a.Field().Particles[1] != saved[1] {
		t.Errorf("expected %+v, got %+v", saved[1], a.Field().Particles[1])
	}

	// A resize spawns a fresh population.
	win.Resize(800, 400)
	if a.Field().Count() != 40 {
		t.Errorf("expected 40 particles after resize, got %d", a.Field().Count())
	}

	// Remounting does not reuse the saved field.
	a.Unmount()
	a.Mount(rec)
	if a.Field().Count() != 40 {
		t.Errorf("expected fresh spawn on remount, got %d particles", a.Field().Count())
	}
}
