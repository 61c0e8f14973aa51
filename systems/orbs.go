package systems

import (
	"math"

	"github.com/pthm-cable/aurora/config"
	"github.com/pthm-cable/aurora/vmath"
)

// Orbit amplitudes (px) and angular rates (rad/ms).
const (
	orbSwayX = 50.0
	orbSwayY = 30.0
	orbRateX = 0.001
	orbRateY = 0.0008
)

// OrbState is one orb evaluated at a point in time.
type OrbState struct {
	Index  int
	Center vmath.Point
	Radius float64
	Hue    float64
}

// Orbs evaluates the drifting glows. Position is a function of time only.
type Orbs struct {
	defs []config.OrbConfig
}

// NewOrbs creates the orb model from its static layout.
func NewOrbs(defs []config.OrbConfig) *Orbs {
	return &Orbs{defs: append([]config.OrbConfig(nil), defs...)}
}

// Len returns the number of orbs.
func (o *Orbs) Len() int {
	return len(o.defs)
}

// OrbCenter returns where an orb anchored at (fx, fy) sits at time t.
func OrbCenter(fx, fy float64, index int, t, width, height float64) vmath.Point {
	i := float64(index)
	return vmath.Pt(
		width*fx+math.Sin(t*orbRateX+i)*orbSwayX,
		height*fy+math.Cos(t*orbRateY+i)*orbSwayY,
	)
}

// At evaluates every orb at time t.
func (o *Orbs) At(t, width, height float64) []OrbState {
	out := make([]OrbState, len(o.defs))
	for i, s := range o.defs {
		out[i] = OrbState{
			Index:  i,
			Center: OrbCenter(s.X, s.Y, i, t, width, height),
			Radius: s.Size,
			Hue:    s.Hue,
		}
	}
	return out
}
