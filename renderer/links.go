package renderer

import (
	"image/color"

	"github.com/pthm-cable/aurora/config"
	"github.com/pthm-cable/aurora/systems"
	"github.com/pthm-cable/aurora/vmath"
)

// LinkRenderer strokes faint lines between nearby particles.
type LinkRenderer struct {
	cfg   config.LinksConfig
	color color.NRGBA
}

// NewLinkRenderer creates a link renderer.
func NewLinkRenderer(cfg config.LinksConfig) *LinkRenderer {
	r := &LinkRenderer{}
	r.SetConfig(cfg)
	return r
}

// SetConfig replaces the link parameters.
func (r *LinkRenderer) SetConfig(cfg config.LinksConfig) {
	r.cfg = cfg
	r.color = hexOrBlack(cfg.Color, cfg.ColorAlpha)
}

// Draw strokes every link and returns how many were drawn.
func (r *LinkRenderer) Draw(s Surface, ps []systems.Particle) int {
	return systems.ForEachLink(ps, r.cfg.Distance, func(a, b *systems.Particle, d float64) {
		alpha := systems.LinkAlpha(d, r.cfg.Distance, r.cfg.MaxAlpha)
		s.StrokeLine(vmath.Pt(a.X, a.Y), vmath.Pt(b.X, b.Y), r.cfg.Width, r.color, alpha)
	})
}
