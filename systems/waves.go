package systems

import (
	"math"

	"github.com/pthm-cable/aurora/config"
	"github.com/pthm-cable/aurora/vmath"
)

// Hue oscillation for the wave gradient. The third stop sits HueShift past
// the first.
const (
	waveHue1Base  = 240.0
	waveHue1Swing = 30.0
	waveHue1Rate  = 0.001
	waveHue2Base  = 280.0
	waveHue2Swing = 40.0
	waveHue2Rate  = 0.0015
	WaveHueShift  = 20.0
)

// Two summed sinusoids shape each band.
const (
	waveFastDrift = 0.5
	waveFastFreq  = 0.01
	waveFastAmp   = 100.0
	waveSlowDrift = 0.3
	waveSlowFreq  = 0.005
	waveSlowAmp   = 50.0
)

// WaveLayer is one aurora band evaluated at a point in time.
type WaveLayer struct {
	Index int
	Alpha float64
	Hue1  float64
	Hue2  float64
	// Profile is the upper edge of the band from x = 0 to the last sample
	// at or before the right edge. The band closes down to the bottom.
	Profile []vmath.Point
}

// Waves evaluates the aurora bands. It holds no per-frame state.
type Waves struct {
	cfg config.WavesConfig
}

// NewWaves creates a wave painter model.
func NewWaves(cfg config.WavesConfig) *Waves {
	return &Waves{cfg: cfg}
}

// WaveY returns the height of band layer at horizontal position x, time t (ms).
func WaveY(x, t float64, layer int, baseline float64) float64 {
	l := float64(layer)
	return baseline +
		math.Sin((x+t*waveFastDrift)*waveFastFreq+l)*waveFastAmp +
		math.Sin((x+t*waveSlowDrift)*waveSlowFreq+l*2)*waveSlowAmp
}

// Layers evaluates every band at time t for a width x height viewport.
func (w *Waves) Layers(t, width, height float64) []WaveLayer {
	layers := make([]WaveLayer, 0, w.cfg.Layers)
	for i := 0; i < w.cfg.Layers; i++ {
		layers = append(layers, w.Layer(i, t, width, height))
	}
	return layers
}

// Layer evaluates band i at time t.
func (w *Waves) Layer(i int, t, width, height float64) WaveLayer {
	l := float64(i)
	baseline := height * w.cfg.Baseline

	n := 2
	if w.cfg.Step > 0 && width >= 0 {
		n += int(math.Floor(width/w.cfg.Step)) + 1
	}
	profile := make([]vmath.Point, 0, n)
	profile = append(profile, vmath.Pt(0, baseline))
	if w.cfg.Step > 0 {
		for x := 0.0; x <= width; x += w.cfg.Step {
			profile = append(profile, vmath.Pt(x, WaveY(x, t, i, baseline)))
		}
	}

	return WaveLayer{
		Index:   i,
		Alpha:   math.Max(0, w.cfg.AlphaBase-l*w.cfg.AlphaDecay),
		Hue1:    waveHue1Base + math.Sin(t*waveHue1Rate+l)*waveHue1Swing,
		Hue2:    waveHue2Base + math.Cos(t*waveHue2Rate+l)*waveHue2Swing,
		Profile: profile,
	}
}

// Polygon returns the closed band outline: the profile, then the bottom
// right and bottom left corners.
func (l WaveLayer) Polygon(width, height float64) []vmath.Point {
	poly := make([]vmath.Point, 0, len(l.Profile)+2)
	poly = append(poly, l.Profile...)
	return append(poly, vmath.Pt(width, height), vmath.Pt(0, height))
}
