package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/aurora/config"
)

func TestVeilPhase(t *testing.T) {
	v := NewVeil(config.Cfg().Veil)
	tests := []struct {
		name        string
		t           float64
		wantOpacity float64
		wantScale   float64
		wantAngle   float64
	}{
		{"start", 0, 0.7, 1, 0},
		{"quarter", 5000, 0.8, 1.05, math.Pi / 2},
		{"peak", 10000, 0.9, 1.1, math.Pi},
		{"back to rest", 20000, 0.7, 1, 0},
		{"next cycle peak", 30000, 0.9, 1.1, math.Pi},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ph := v.Phase(tt.t)
			if math.Abs(ph.Opacity-tt.wantOpacity) > 1e-9 {
				t.Errorf("expected opacity %v, got %v", tt.wantOpacity, ph.Opacity)
			}
			if math.Abs(ph.Scale-tt.wantScale) > 1e-9 {
				t.Errorf("expected scale %v, got %v", tt.wantScale, ph.Scale)
			}
			if math.Abs(ph.Angle-tt.wantAngle) > 1e-9 {
				t.Errorf("expected angle %v, got %v", tt.wantAngle, ph.Angle)
			}
		})
	}
}

func TestVeilSpotsAtRest(t *testing.T) {
	v := NewVeil(config.Cfg().Veil)
	if !v.Enabled() {
		t.Fatal("expected default veil to be enabled")
	}
	spots := v.Spots(v.Phase(0), 1000, 500)
	if len(spots) != 3 {
		t.Fatalf("expected 3 spots, got %d", len(spots))
	}
	s := spots[0]
	if math.Abs(s.Center.X-200) > 1e-9 || math.Abs(s.Center.Y-400) > 1e-9 {
		t.Errorf("expected spot 0 at (200, 400), got (%f, %f)", s.Center.X, s.Center.Y)
	}
	// Farthest corner from (200, 400) is (1000, 0).
	want := math.Hypot(800, 400) * 0.5
	if math.Abs(s.Radius-want) > 1e-9 {
		t.Errorf("expected radius %f, got %f", want, s.Radius)
	}
}

func TestVeilSpotsAtPeakRotateAboutCentre(t *testing.T) {
	v := NewVeil(config.Cfg().Veil)
	spots := v.Spots(v.Phase(10000), 1000, 500)
	// Half a turn about (500, 250) then 1.1x scale.
	s := spots[0]
	wantX := 500 + (800-500)*1.1
	wantY := 250 + (100-250)*1.1
	if math.Abs(s.Center.X-wantX) > 1e-9 || math.Abs(s.Center.Y-wantY) > 1e-9 {
		t.Errorf("expected spot 0 at (%f, %f), got (%f, %f)", wantX, wantY, s.Center.X, s.Center.Y)
	}
}

func TestVeilDisabled(t *testing.T) {
	cfg := config.Cfg().Veil
	cfg.Enabled = false
	if NewVeil(cfg).Enabled() {
		t.Error("expected veil to report disabled")
	}
}
