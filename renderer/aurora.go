package renderer

import (
	"github.com/pthm-cable/aurora/systems"
)

// AuroraRenderer fills the translucent wave bands.
type AuroraRenderer struct {
	waves *systems.Waves
}

// NewAuroraRenderer creates a renderer for the given wave model.
func NewAuroraRenderer(waves *systems.Waves) *AuroraRenderer {
	return &AuroraRenderer{waves: waves}
}

// Draw paints every layer at time t (ms), back to front.
func (r *AuroraRenderer) Draw(s Surface, t float64) {
	w, h := s.Size()
	fw, fh := float64(w), float64(h)
	for _, l := range r.waves.Layers(t, fw, fh) {
		s.FillPath(l.Polygon(fw, fh), WaveGradient(l, fw, fh), l.Alpha)
	}
}

// WaveGradient returns the diagonal gradient a layer is filled with.
func WaveGradient(l systems.WaveLayer, width, height float64) LinearGradient {
	return LinearGradient{
		X0: 0, Y0: 0, X1: width, Y1: height,
		Stops: []ColorStop{
			{Offset: 0, Color: HSLA(l.Hue1, 1, 0.6, 0.3)},
			{Offset: 0.5, Color: HSLA(l.Hue2, 1, 0.7, 0.2)},
			{Offset: 1, Color: HSLA(l.Hue1+systems.WaveHueShift, 1, 0.8, 0.1)},
		},
	}
}
