// Package vmath holds the small amount of planar geometry shared by the
// simulation and the renderers.
package vmath

import "math"

// Point is a position in viewport pixel space.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// DistSq returns the squared distance between two points.
func DistSq(x1, y1, x2, y2 float64) float64 {
	dx := x1 - x2
	dy := y1 - y2
	return dx*dx + dy*dy
}

// Dist returns the Euclidean distance between two points.
func Dist(x1, y1, x2, y2 float64) float64 {
	return math.Sqrt(DistSq(x1, y1, x2, y2))
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Len returns the distance of p from the origin.
func (p Point) Len() float64 {
	return math.Hypot(p.X, p.Y)
}

// Rotate rotates p about c by angle radians.
func (p Point) Rotate(c Point, angle float64) Point {
	s, co := math.Sincos(angle)
	d := p.Sub(c)
	return Point{
		X: c.X + d.X*co - d.Y*s,
		Y: c.Y + d.X*s + d.Y*co,
	}
}

// Scale scales p about c by k.
func (p Point) Scale(c Point, k float64) Point {
	return Point{X: c.X + (p.X-c.X)*k, Y: c.Y + (p.Y-c.Y)*k}
}
