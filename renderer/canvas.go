package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/tfriedel6/canvas"
	"github.com/tfriedel6/canvas/backend/softwarebackend"

	"github.com/pthm-cable/aurora/vmath"
)

// Canvas is an in-memory Surface backed by the tfriedel6/canvas software
// rasterizer. Hosts blit Image() to their own display after each frame.
type Canvas struct {
	backend *softwarebackend.SoftwareBackend
	cv      *canvas.Canvas
	width   int
	height  int
}

// NewCanvas creates a width x height canvas. Sizes below 1 are raised to 1.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{}
	c.Resize(width, height)
	return c
}

// Size returns the buffer size in pixels.
func (c *Canvas) Size() (int, int) {
	return c.width, c.height
}

// Resize reallocates the pixel buffer. Contents are discarded.
func (c *Canvas) Resize(width, height int) {
	width, height = max(width, 1), max(height, 1)
	if c.cv != nil && width == c.width && height == c.height {
		return
	}
	c.backend = softwarebackend.New(width, height)
	c.cv = canvas.New(c.backend)
	c.width, c.height = width, height
}

// Image returns the current frame. The image is reallocated on Resize.
func (c *Canvas) Image() *image.RGBA {
	return c.backend.Image
}

// Clear resets every pixel to transparent black.
func (c *Canvas) Clear() {
	c.cv.ClearRect(0, 0, float64(c.width), float64(c.height))
}

// FillRect fills an axis-aligned rectangle.
func (c *Canvas) FillRect(x, y, w, h float64, p Paint, alpha float64) {
	c.cv.Save()
	defer c.cv.Restore()
	c.cv.SetGlobalAlpha(alpha)
	c.cv.SetFillStyle(c.style(p))
	c.cv.FillRect(x, y, w, h)
}

// FillPath fills the closed polygon through path.
func (c *Canvas) FillPath(path []vmath.Point, p Paint, alpha float64) {
	if len(path) < 3 {
		return
	}
	c.cv.Save()
	defer c.cv.Restore()
	c.cv.SetGlobalAlpha(alpha)
	c.cv.SetFillStyle(c.style(p))
	c.cv.BeginPath()
	c.cv.MoveTo(path[0].X, path[0].Y)
	for _, pt := range path[1:] {
		c.cv.LineTo(pt.X, pt.Y)
	}
	c.cv.ClosePath()
	c.cv.Fill()
}

// FillCircle fills a disc.
func (c *Canvas) FillCircle(center vmath.Point, radius float64, p Paint, alpha float64) {
	if radius <= 0 {
		return
	}
	c.cv.Save()
	defer c.cv.Restore()
	c.cv.SetGlobalAlpha(alpha)
	c.cv.SetFillStyle(c.style(p))
	c.cv.BeginPath()
	c.cv.Arc(center.X, center.Y, radius, 0, 2*math.Pi, false)
	c.cv.Fill()
}

// StrokeLine strokes a single segment.
func (c *Canvas) StrokeLine(from, to vmath.Point, width float64, col color.NRGBA, alpha float64) {
	c.cv.Save()
	defer c.cv.Restore()
	c.cv.SetGlobalAlpha(alpha)
	c.cv.SetStrokeStyle(col)
	c.cv.SetLineWidth(width)
	c.cv.BeginPath()
	c.cv.MoveTo(from.X, from.Y)
	c.cv.LineTo(to.X, to.Y)
	c.cv.Stroke()
}

// style converts a Paint into a canvas fill style.
func (c *Canvas) style(p Paint) interface{} {
	switch p := p.(type) {
	case Solid:
		return p.Color
	case LinearGradient:
		g := c.cv.CreateLinearGradient(p.X0, p.Y0, p.X1, p.Y1)
		for _, s := range p.Stops {
			g.AddColorStop(s.Offset, s.Color)
		}
		return g
	case RadialGradient:
		g := c.cv.CreateRadialGradient(p.Center.X, p.Center.Y, 0, p.Center.X, p.Center.Y, p.Radius)
		for _, s := range p.Stops {
			g.AddColorStop(s.Offset, s.Color)
		}
		return g
	}
	return color.NRGBA{}
}
