// Package renderer paints the ambient field onto a 2D drawing surface.
package renderer

import (
	"image/color"

	"github.com/pthm-cable/aurora/vmath"
)

// Surface is the 2D drawing target the frame is composed onto. Every fill
// and stroke is drawn with the given global alpha multiplied into the paint.
type Surface interface {
	Size() (width, height int)
	Resize(width, height int)
	Clear()
	FillRect(x, y, w, h float64, p Paint, alpha float64)
	FillPath(path []vmath.Point, p Paint, alpha float64)
	FillCircle(center vmath.Point, radius float64, p Paint, alpha float64)
	StrokeLine(from, to vmath.Point, width float64, c color.NRGBA, alpha float64)
}

// Paint is a fill style: Solid, LinearGradient or RadialGradient.
type Paint interface {
	isPaint()
}

// ColorStop is one gradient stop. Offset is in [0, 1].
type ColorStop struct {
	Offset float64
	Color  color.NRGBA
}

// Solid fills with a single colour.
type Solid struct {
	Color color.NRGBA
}

// LinearGradient interpolates its stops along (X0, Y0) -> (X1, Y1).
type LinearGradient struct {
	X0, Y0, X1, Y1 float64
	Stops          []ColorStop
}

// RadialGradient interpolates its stops from Center out to Radius.
type RadialGradient struct {
	Center vmath.Point
	Radius float64
	Stops  []ColorStop
}

func (Solid) isPaint()          {}
func (LinearGradient) isPaint() {}
func (RadialGradient) isPaint() {}
