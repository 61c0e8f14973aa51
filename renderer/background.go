package renderer

import "github.com/pthm-cable/aurora/config"

// BackgroundRenderer paints the vertical base gradient.
type BackgroundRenderer struct {
	stops []ColorStop
}

// NewBackgroundRenderer creates a background renderer from its colour stops.
func NewBackgroundRenderer(stops []config.StopConfig) *BackgroundRenderer {
	b := &BackgroundRenderer{stops: make([]ColorStop, len(stops))}
	for i, s := range stops {
		b.stops[i] = ColorStop{Offset: s.Offset, Color: hexOrBlack(s.Color, 1)}
	}
	return b
}

// Draw fills the whole surface top to bottom.
func (b *BackgroundRenderer) Draw(s Surface) {
	w, h := s.Size()
	fw, fh := float64(w), float64(h)
	s.FillRect(0, 0, fw, fh, LinearGradient{X0: 0, Y0: 0, X1: 0, Y1: fh, Stops: b.stops}, 1)
}
