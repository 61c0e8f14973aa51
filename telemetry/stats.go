package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/aurora/systems"
)

// FieldStats is a snapshot of the particle field at the end of a window.
type FieldStats struct {
	Frame      uint64 `csv:"frame"`
	Generation uint64 `csv:"generation"`
	Width      int    `csv:"width"`
	Height     int    `csv:"height"`
	Particles  int    `csv:"particles"`
	Links      int    `csv:"links"`

	OpacityMean float64 `csv:"opacity_mean"`
	OpacityStd  float64 `csv:"opacity_std"`
	OpacityP10  float64 `csv:"opacity_p10"`
	OpacityP50  float64 `csv:"opacity_p50"`
	OpacityP90  float64 `csv:"opacity_p90"`

	SpeedMean float64 `csv:"speed_mean"`
	HueMean   float64 `csv:"hue_mean"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeDistribution calculates mean, population std, and percentiles.
func ComputeDistribution(values []float64) (mean, std, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0, 0
	}

	mean, std = stat.PopMeanStdDev(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return mean, std, Percentile(sorted, 0.10), Percentile(sorted, 0.50), Percentile(sorted, 0.90)
}

// CollectFieldStats summarizes the current population.
func CollectFieldStats(frame uint64, f *systems.ParticleField, links int) FieldStats {
	w, h := f.Size()
	s := FieldStats{
		Frame:      frame,
		Generation: f.Generation(),
		Width:      int(w),
		Height:     int(h),
		Particles:  f.Count(),
		Links:      links,
	}
	if s.Particles == 0 {
		return s
	}

	opacity := make([]float64, s.Particles)
	speed := make([]float64, s.Particles)
	hue := make([]float64, s.Particles)
	for i, p := range f.Particles {
		opacity[i] = p.Opacity
		speed[i] = math.Hypot(p.VX, p.VY)
		hue[i] = p.Hue
	}

	s.OpacityMean, s.OpacityStd, s.OpacityP10, s.OpacityP50, s.OpacityP90 = ComputeDistribution(opacity)
	s.SpeedMean = stat.Mean(speed, nil)
	s.HueMean = stat.Mean(hue, nil)
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s FieldStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("frame", s.Frame),
		slog.Uint64("generation", s.Generation),
		slog.Int("width", s.Width),
		slog.Int("height", s.Height),
		slog.Int("particles", s.Particles),
		slog.Int("links", s.Links),
		slog.Float64("opacity_mean", s.OpacityMean),
		slog.Float64("opacity_std", s.OpacityStd),
		slog.Float64("opacity_p10", s.OpacityP10),
		slog.Float64("opacity_p50", s.OpacityP50),
		slog.Float64("opacity_p90", s.OpacityP90),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("hue_mean", s.HueMean),
	)
}
