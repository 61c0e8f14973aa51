package renderer

import (
	"image/color"

	"github.com/pthm-cable/aurora/vmath"
)

// OpKind names a recorded drawing call.
type OpKind string

const (
	OpClear      OpKind = "clear"
	OpFillRect   OpKind = "fill_rect"
	OpFillPath   OpKind = "fill_path"
	OpFillCircle OpKind = "fill_circle"
	OpStrokeLine OpKind = "stroke_line"
)

// Op is one recorded drawing call.
type Op struct {
	Kind   OpKind
	Paint  Paint
	Alpha  float64
	Points []vmath.Point // path, circle centre, line endpoints or rect corners
	Radius float64
	Width  float64
	Color  color.NRGBA
}

// Recorder is a Surface that records calls instead of rasterizing them.
// It backs composition tests and frame-cost profiling without pixels.
type Recorder struct {
	Ops     []Op
	Resizes int

	width, height int
}

// NewRecorder creates a recorder reporting the given size.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{width: width, height: height}
}

func (r *Recorder) Size() (int, int) { return r.width, r.height }

func (r *Recorder) Resize(width, height int) {
	r.width, r.height = width, height
	r.Resizes++
}

func (r *Recorder) Clear() {
	r.Ops = append(r.Ops, Op{Kind: OpClear})
}

func (r *Recorder) FillRect(x, y, w, h float64, p Paint, alpha float64) {
	r.Ops = append(r.Ops, Op{
		Kind:   OpFillRect,
		Paint:  p,
		Alpha:  alpha,
		Points: []vmath.Point{{X: x, Y: y}, {X: x + w, Y: y + h}},
	})
}

func (r *Recorder) FillPath(path []vmath.Point, p Paint, alpha float64) {
	r.Ops = append(r.Ops, Op{
		Kind:   OpFillPath,
		Paint:  p,
		Alpha:  alpha,
		Points: append([]vmath.Point(nil), path...),
	})
}

func (r *Recorder) FillCircle(center vmath.Point, radius float64, p Paint, alpha float64) {
	r.Ops = append(r.Ops, Op{
		Kind:   OpFillCircle,
		Paint:  p,
		Alpha:  alpha,
		Points: []vmath.Point{center},
		Radius: radius,
	})
}

func (r *Recorder) StrokeLine(from, to vmath.Point, width float64, c color.NRGBA, alpha float64) {
	r.Ops = append(r.Ops, Op{
		Kind:   OpStrokeLine,
		Alpha:  alpha,
		Points: []vmath.Point{from, to},
		Width:  width,
		Color:  c,
	})
}

// Reset drops recorded ops.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
}

// Count returns how many ops of kind were recorded.
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}
