package systems

import (
	"math"
	"testing"
)

func TestLinkAlpha(t *testing.T) {
	tests := []struct {
		name string
		d    float64
		want float64
	}{
		{"touching", 0, 0.2},
		{"halfway", 50, 0.1},
		{"near threshold", 99, 0.002},
		{"at threshold", 100, 0},
		{"beyond", 250, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LinkAlpha(tt.d, 100, 0.2); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("expected alpha %v at d=%v, got %v", tt.want, tt.d, got)
			}
		})
	}
}

func TestForEachLink(t *testing.T) {
	ps := []Particle{
		{X: 0, Y: 0},
		{X: 30, Y: 40},  // 50 from p0
		{X: 100, Y: 0},  // exactly 100 from p0, not linked
		{X: 500, Y: 500},
	}

	type pair struct{ a, b int }
	var got []pair
	var dists []float64
	n := ForEachLink(ps, 100, func(a, b *Particle, d float64) {
		got = append(got, pair{index(ps, a), index(ps, b)})
		dists = append(dists, d)
	})

	// p0-p1 (50) and p1-p2 (sqrt(70²+40²) ≈ 80.6) are linked.
	want := []pair{{0, 1}, {1, 2}}
	if n != len(want) {
		t.Fatalf("expected %d links, got %d", len(want), n)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("link %d: expected %v, got %v", i, want[i], got[i])
		}
	}
	if math.Abs(dists[0]-50) > 1e-9 {
		t.Errorf("expected first link distance 50, got %f", dists[0])
	}
}

func TestForEachLinkNilVisitCounts(t *testing.T) {
	ps := make([]Particle, 150)
	// All stacked on one point: every pair links.
	if n := ForEachLink(ps, 100, nil); n != 11175 {
		t.Errorf("expected 11175 links, got %d", n)
	}
}

func index(ps []Particle, p *Particle) int {
	for i := range ps {
		if &ps[i] == p {
			return i
		}
	}
	return -1
}
