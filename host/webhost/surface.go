//go:build js && wasm

package webhost

import (
	"image/color"
	"math"
	"syscall/js"

	"github.com/pthm-cable/aurora/renderer"
	"github.com/pthm-cable/aurora/vmath"
)

// Surface draws through a canvas element's 2D context.
type Surface struct {
	canvas js.Value
	ctx    js.Value
}

// Attach finds the canvas element with the given id and returns a Surface
// over its 2D context. It returns nil when the element is missing or the
// context cannot be created.
func Attach(id string) renderer.Surface {
	doc := js.Global().Get("document")
	if !doc.Truthy() {
		return nil
	}
	el := doc.Call("getElementById", id)
	if !el.Truthy() {
		return nil
	}
	ctx := el.Call("getContext", "2d")
	if !ctx.Truthy() {
		return nil
	}
	return &Surface{canvas: el, ctx: ctx}
}

func (s *Surface) Size() (int, int) {
	return s.canvas.Get("width").Int(), s.canvas.Get("height").Int()
}

func (s *Surface) Resize(w, h int) {
	s.canvas.Set("width", w)
	s.canvas.Set("height", h)
}

func (s *Surface) Clear() {
	w, h := s.Size()
	s.ctx.Call("clearRect", 0, 0, w, h)
}

func (s *Surface) FillRect(x, y, w, h float64, p renderer.Paint, alpha float64) {
	s.begin(p, alpha)
	s.ctx.Call("fillRect", x, y, w, h)
	s.ctx.Call("restore")
}

func (s *Surface) FillPath(path []vmath.Point, p renderer.Paint, alpha float64) {
	if len(path) < 3 {
		return
	}
	s.begin(p, alpha)
	s.ctx.Call("beginPath")
	s.ctx.Call("moveTo", path[0].X, path[0].Y)
	for _, pt := range path[1:] {
		s.ctx.Call("lineTo", pt.X, pt.Y)
	}
	s.ctx.Call("closePath")
	s.ctx.Call("fill")
	s.ctx.Call("restore")
}

func (s *Surface) FillCircle(center vmath.Point, radius float64, p renderer.Paint, alpha float64) {
	if radius <= 0 {
		return
	}
	s.begin(p, alpha)
	s.ctx.Call("beginPath")
	s.ctx.Call("arc", center.X, center.Y, radius, 0, 2*math.Pi)
	s.ctx.Call("fill")
	s.ctx.Call("restore")
}

func (s *Surface) StrokeLine(from, to vmath.Point, width float64, c color.NRGBA, alpha float64) {
	s.ctx.Call("save")
	s.ctx.Set("globalAlpha", alpha)
	s.ctx.Set("strokeStyle", renderer.CSS(c))
	s.ctx.Set("lineWidth", width)
	s.ctx.Call("beginPath")
	s.ctx.Call("moveTo", from.X, from.Y)
	s.ctx.Call("lineTo", to.X, to.Y)
	s.ctx.Call("stroke")
	s.ctx.Call("restore")
}

// begin saves the context and applies alpha and fill style.
func (s *Surface) begin(p renderer.Paint, alpha float64) {
	s.ctx.Call("save")
	s.ctx.Set("globalAlpha", alpha)
	s.ctx.Set("fillStyle", s.style(p))
}

func (s *Surface) style(p renderer.Paint) any {
	switch p := p.(type) {
	case renderer.Solid:
		return renderer.CSS(p.Color)
	case renderer.LinearGradient:
		g := s.ctx.Call("createLinearGradient", p.X0, p.Y0, p.X1, p.Y1)
		addStops(g, p.Stops)
		return g
	case renderer.RadialGradient:
		g := s.ctx.Call("createRadialGradient", p.Center.X, p.Center.Y, 0, p.Center.X, p.Center.Y, p.Radius)
		addStops(g, p.Stops)
		return g
	}
	return "transparent"
}

func addStops(g js.Value, stops []renderer.ColorStop) {
	for _, st := range stops {
		g.Call("addColorStop", st.Offset, renderer.CSS(st.Color))
	}
}
