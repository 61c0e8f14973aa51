package systems

import (
	"math"

	"github.com/pthm-cable/aurora/config"
	"github.com/pthm-cable/aurora/vmath"
)

// Veil pulse extremes. The layer swings from rest to peak and back once
// per period.
const (
	veilRestOpacity = 0.7
	veilPeakOpacity = 0.9
	veilPeakScale   = 1.1
	veilPeakAngle   = math.Pi
	// Glows fade out halfway to the farthest viewport corner.
	veilFadeFraction = 0.5
)

// VeilPhase is the veil transform at a point in time.
type VeilPhase struct {
	Opacity float64
	Angle   float64 // radians, about the viewport centre
	Scale   float64
}

// GlowSpot is one veil glow after the phase transform.
type GlowSpot struct {
	Center vmath.Point
	Radius float64
	Color  string
	Alpha  float64
}

// Veil models the slow pulsing tint laid over the whole scene.
type Veil struct {
	cfg config.VeilConfig
}

// NewVeil creates the veil model.
func NewVeil(cfg config.VeilConfig) *Veil {
	return &Veil{cfg: cfg}
}

// Enabled reports whether the veil should be drawn.
func (v *Veil) Enabled() bool {
	return v.cfg.Enabled && len(v.cfg.Glows) > 0
}

// easeInOut is a cosine ease over [0, 1].
func easeInOut(s float64) float64 {
	return (1 - math.Cos(math.Pi*s)) / 2
}

// Phase returns the veil transform at time t (ms).
func (v *Veil) Phase(t float64) VeilPhase {
	k := 0.0
	if v.cfg.PeriodMS > 0 {
		u := math.Mod(t, v.cfg.PeriodMS) / v.cfg.PeriodMS
		if u < 0 {
			u++
		}
		if u < 0.5 {
			k = easeInOut(u * 2)
		} else {
			k = 1 - easeInOut((u-0.5)*2)
		}
	}
	return VeilPhase{
		Opacity: lerp(veilRestOpacity, veilPeakOpacity, k),
		Angle:   lerp(0, veilPeakAngle, k),
		Scale:   lerp(1, veilPeakScale, k),
	}
}

// Spots returns every glow transformed by ph for a width x height viewport.
func (v *Veil) Spots(ph VeilPhase, width, height float64) []GlowSpot {
	centre := vmath.Pt(width/2, height/2)
	out := make([]GlowSpot, len(v.cfg.Glows))
	for i, g := range v.cfg.Glows {
		at := vmath.Pt(width*g.X, height*g.Y)
		out[i] = GlowSpot{
			Center: at.Rotate(centre, ph.Angle).Scale(centre, ph.Scale),
			Radius: farthestCorner(at, width, height) * veilFadeFraction * ph.Scale,
			Color:  g.Color,
			Alpha:  g.Alpha,
		}
	}
	return out
}

// farthestCorner returns the distance from p to the farthest viewport corner.
func farthestCorner(p vmath.Point, width, height float64) float64 {
	dx := math.Max(p.X, width-p.X)
	dy := math.Max(p.Y, height-p.Y)
	return math.Hypot(dx, dy)
}
