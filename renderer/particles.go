package renderer

import (
	"github.com/pthm-cable/aurora/config"
	"github.com/pthm-cable/aurora/systems"
	"github.com/pthm-cable/aurora/vmath"
)

// ParticleRenderer draws particles as soft glowing discs.
type ParticleRenderer struct {
	cfg config.ParticlesConfig
}

// NewParticleRenderer creates a new particle renderer.
func NewParticleRenderer(cfg config.ParticlesConfig) *ParticleRenderer {
	return &ParticleRenderer{cfg: cfg}
}

// Draw renders one particle. The disc has radius Size; its gradient fades
// out at GlowScale * Size, so the visible glow is clipped by the disc edge.
func (r *ParticleRenderer) Draw(s Surface, p *systems.Particle) {
	center := vmath.Pt(p.X, p.Y)
	s.FillCircle(center, p.Size, r.Gradient(p), p.Opacity)
}

// DrawAll renders every particle in order.
func (r *ParticleRenderer) DrawAll(s Surface, ps []systems.Particle) {
	for i := range ps {
		r.Draw(s, &ps[i])
	}
}

// Gradient returns the radial fill for p.
func (r *ParticleRenderer) Gradient(p *systems.Particle) RadialGradient {
	c := &r.cfg
	return RadialGradient{
		Center: vmath.Pt(p.X, p.Y),
		Radius: p.Size * c.GlowScale,
		Stops: []ColorStop{
			{Offset: 0, Color: HSLA(p.Hue, c.Saturation, c.Lightness, c.CoreAlpha)},
			{Offset: 1, Color: HSLA(p.Hue, c.Saturation, c.Lightness, 0)},
		},
	}
}

// SetConfig replaces the particle styling.
func (r *ParticleRenderer) SetConfig(cfg config.ParticlesConfig) {
	r.cfg = cfg
}
