package systems

import (
	"math"

	"github.com/pthm-cable/aurora/vmath"
)

// LinkAlpha returns the stroke alpha for two particles d apart. It falls
// linearly from maxAlpha at d = 0 to zero at d = maxDist and stays zero beyond.
func LinkAlpha(d, maxDist, maxAlpha float64) float64 {
	if maxDist <= 0 || d >= maxDist {
		return 0
	}
	if d < 0 {
		d = 0
	}
	return (maxDist - d) / maxDist * maxAlpha
}

// ForEachLink calls visit for every unordered pair of particles closer than
// maxDist, in index order, and returns the number of pairs visited.
//
// The pass is O(N²); the population cap keeps it to N(N-1)/2 checks per frame.
func ForEachLink(ps []Particle, maxDist float64, visit func(a, b *Particle, d float64)) int {
	limitSq := maxDist * maxDist
	links := 0
	for i := range ps {
		a := &ps[i]
		for j := i + 1; j < len(ps); j++ {
			b := &ps[j]
			dsq := vmath.DistSq(a.X, a.Y, b.X, b.Y)
			if dsq >= limitSq {
				continue
			}
			links++
			if visit != nil {
				visit(a, b, math.Sqrt(dsq))
			}
		}
	}
	return links
}
