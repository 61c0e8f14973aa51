package systems

import "math"

// clamp clamps v between minVal and maxVal.
func clamp(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// wrap folds v into [0, size). A coordinate that leaves one edge reappears
// at the opposite edge offset by the overshoot.
func wrap(v, size float64) float64 {
	if size <= 0 {
		return 0
	}
	if v >= 0 && v < size {
		return v
	}
	v = math.Mod(v, size)
	if v < 0 {
		v += size
	}
	// Mod of a tiny negative can round up to size.
	if v >= size {
		v = 0
	}
	return v
}

// lerp linearly interpolates from a to b.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
