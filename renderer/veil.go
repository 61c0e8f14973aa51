package renderer

import (
	"github.com/pthm-cable/aurora/systems"
)

// VeilRenderer lays the pulsing tint glows over the finished scene.
type VeilRenderer struct {
	veil *systems.Veil
}

// NewVeilRenderer creates a renderer for the given veil model.
func NewVeilRenderer(veil *systems.Veil) *VeilRenderer {
	return &VeilRenderer{veil: veil}
}

// Draw paints the veil at time t (ms). It is a no-op when the veil is disabled.
func (r *VeilRenderer) Draw(s Surface, t float64) {
	if !r.veil.Enabled() {
		return
	}
	w, h := s.Size()
	fw, fh := float64(w), float64(h)
	ph := r.veil.Phase(t)
	for _, g := range r.veil.Spots(ph, fw, fh) {
		c := hexOrBlack(g.Color, g.Alpha)
		grad := RadialGradient{
			Center: g.Center,
			Radius: g.Radius,
			Stops: []ColorStop{
				{Offset: 0, Color: c},
				{Offset: 1, Color: WithAlpha(c, 0)},
			},
		}
		s.FillRect(0, 0, fw, fh, grad, ph.Opacity)
	}
}
