package termhost

import (
	"image"

	"github.com/gdamore/tcell/v2"
)

// upperHalf draws the top pixel block in the foreground and the bottom
// block in the background, giving two vertical samples per cell.
const upperHalf = '▀'

// PixelSize returns the canvas size that maps onto cols x rows cells at
// scale pixels per cell column and 2*scale pixels per cell row.
func PixelSize(cols, rows, scale int) (int, int) {
	return cols * scale, rows * 2 * scale
}

// Blit downsamples img onto screen, one half-block glyph per cell.
// Cells outside the image are left untouched.
func Blit(screen tcell.Screen, img *image.RGBA, scale int) {
	if scale < 1 {
		scale = 1
	}
	cols, rows := screen.Size()
	b := img.Bounds()
	for cy := 0; cy < rows; cy++ {
		top := b.Min.Y + cy*2*scale
		if top >= b.Max.Y {
			break
		}
		for cx := 0; cx < cols; cx++ {
			left := b.Min.X + cx*scale
			if left >= b.Max.X {
				break
			}
			fg := average(img, left, top, scale)
			bg := average(img, left, top+scale, scale)
			screen.SetContent(cx, cy, upperHalf, nil, tcell.StyleDefault.Foreground(fg).Background(bg))
		}
	}
}

// average returns the mean colour of the size x size block at (x0, y0),
// clipped to the image.
func average(img *image.RGBA, x0, y0, size int) tcell.Color {
	b := img.Bounds()
	var r, g, bl, n int
	for y := y0; y < y0+size && y < b.Max.Y; y++ {
		for x := x0; x < x0+size && x < b.Max.X; x++ {
			o := img.PixOffset(x, y)
			r += int(img.Pix[o])
			g += int(img.Pix[o+1])
			bl += int(img.Pix[o+2])
			n++
		}
	}
	if n == 0 {
		return tcell.NewRGBColor(0, 0, 0)
	}
	return tcell.NewRGBColor(int32(r/n), int32(g/n), int32(bl/n))
}
