package renderer

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// HSLA converts hue (degrees), saturation, lightness and alpha (all [0, 1])
// to a non-premultiplied colour.
func HSLA(hue, sat, light, alpha float64) color.NRGBA {
	hue = math.Mod(hue, 360)
	if hue < 0 {
		hue += 360
	}
	r, g, b := colorful.Hsl(hue, sat, light).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alphaByte(alpha)}
}

// Hex parses #rrggbb (or #rgb) and applies alpha.
func Hex(s string, alpha float64) (color.NRGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("parsing colour %q: %w", s, err)
	}
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alphaByte(alpha)}, nil
}

// hexOrBlack is like Hex but falls back to black on a bad string.
// Config validation rejects bad colours before they reach a renderer.
func hexOrBlack(s string, alpha float64) color.NRGBA {
	c, err := Hex(s, alpha)
	if err != nil {
		return color.NRGBA{A: alphaByte(alpha)}
	}
	return c
}

// WithAlpha returns c with its alpha replaced.
func WithAlpha(c color.NRGBA, alpha float64) color.NRGBA {
	c.A = alphaByte(alpha)
	return c
}

// CSS formats c as a CSS rgba() string.
func CSS(c color.NRGBA) string {
	return fmt.Sprintf("rgba(%d,%d,%d,%.4f)", c.R, c.G, c.B, float64(c.A)/255)
}

func alphaByte(a float64) uint8 {
	switch {
	case a <= 0:
		return 0
	case a >= 1:
		return 255
	}
	return uint8(math.Round(a * 255))
}
