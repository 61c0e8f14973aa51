package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/aurora/config"
)

func TestWaveLayerAlpha(t *testing.T) {
	w := NewWaves(config.Cfg().Waves)
	layers := w.Layers(0, 800, 600)
	if len(layers) != 3 {
		t.Fatalf("expected 3 layers, got %d", len(layers))
	}
	want := []float64{0.15, 0.12, 0.09}
	for i, l := range layers {
		if math.Abs(l.Alpha-want[i]) > 1e-12 {
			t.Errorf("layer %d: expected alpha %v, got %v", i, want[i], l.Alpha)
		}
		if l.Index != i {
			t.Errorf("layer %d: expected index %d, got %d", i, i, l.Index)
		}
	}
}

func TestWaveLayerProfile(t *testing.T) {
	w := NewWaves(config.Cfg().Waves)
	l := w.Layer(1, 1234, 800, 600)

	// Start point plus samples at x = 0, 20, ..., 800.
	if len(l.Profile) != 42 {
		t.Fatalf("expected 42 profile points, got %d", len(l.Profile))
	}
	baseline := l.Profile[0].Y
	if l.Profile[0].X != 0 || math.Abs(baseline-180) > 1e-9 {
		t.Errorf("expected profile to start at baseline (0, 180), got %+v", l.Profile[0])
	}
	last := l.Profile[len(l.Profile)-1]
	if last.X != 800 {
		t.Errorf("expected last sample at x=800, got %f", last.X)
	}
	for _, p := range l.Profile[1:] {
		// Two sinusoids of amplitude 100 and 50 about the baseline.
		if p.Y < 180-150-1e-9 || p.Y > 180+150+1e-9 {
			t.Errorf("sample %+v outside baseline ± 150", p)
		}
		if want := WaveY(p.X, 1234, 1, baseline); p.Y != want {
			t.Errorf("sample at x=%f: expected %f, got %f", p.X, want, p.Y)
		}
	}

	poly := l.Polygon(800, 600)
	n := len(poly)
	if poly[n-2].X != 800 || poly[n-2].Y != 600 || poly[n-1].X != 0 || poly[n-1].Y != 600 {
		t.Errorf("expected polygon to close through the bottom corners, got %+v %+v", poly[n-2], poly[n-1])
	}
}

func TestWaveHues(t *testing.T) {
	w := NewWaves(config.Cfg().Waves)
	l := w.Layer(0, 0, 800, 600)
	if l.Hue1 != 240 {
		t.Errorf("expected hue1 240 at t=0, got %f", l.Hue1)
	}
	if l.Hue2 != 320 {
		t.Errorf("expected hue2 320 at t=0, got %f", l.Hue2)
	}
}

func TestWaveYDeterministic(t *testing.T) {
	a := WaveY(140, 5000, 2, 216)
	b := WaveY(140, 5000, 2, 216)
	if a != b {
		t.Errorf("expected identical samples, got %f and %f", a, b)
	}
}
