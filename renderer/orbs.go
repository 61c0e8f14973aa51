package renderer

import "github.com/pthm-cable/aurora/systems"

// OrbRenderer paints the drifting radial glows.
type OrbRenderer struct {
	orbs *systems.Orbs
}

// NewOrbRenderer creates a renderer for the given orb model.
func NewOrbRenderer(orbs *systems.Orbs) *OrbRenderer {
	return &OrbRenderer{orbs: orbs}
}

// Draw paints every orb at time t (ms).
func (r *OrbRenderer) Draw(s Surface, t float64) {
	w, h := s.Size()
	for _, o := range r.orbs.At(t, float64(w), float64(h)) {
		s.FillCircle(o.Center, o.Radius, OrbGradient(o), 1)
	}
}

// OrbGradient fades an orb from 15% alpha at the centre to nothing at its edge.
func OrbGradient(o systems.OrbState) RadialGradient {
	return RadialGradient{
		Center: o.Center,
		Radius: o.Radius,
		Stops: []ColorStop{
			{Offset: 0, Color: HSLA(o.Hue, 1, 0.7, 0.15)},
			{Offset: 0.5, Color: HSLA(o.Hue, 1, 0.6, 0.08)},
			{Offset: 1, Color: HSLA(o.Hue, 1, 0.5, 0)},
		},
	}
}
