package raylibhost

import (
	"image"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Texture mirrors a CPU frame into a GPU texture, reallocating when the
// frame size changes. Must be used on the raylib thread.
type Texture struct {
	tex    rl.Texture2D
	width  int
	height int
	pixels []color.RGBA
	loaded bool
}

// Upload copies img into the texture.
func (t *Texture) Upload(img *image.RGBA) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if !t.loaded || w != t.width || h != t.height {
		t.Unload()
		blank := rl.GenImageColor(w, h, rl.Black)
		t.tex = rl.LoadTextureFromImage(blank)
		rl.UnloadImage(blank)
		t.width, t.height = w, h
		t.pixels = make([]color.RGBA, w*h)
		t.loaded = true
	}

	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		out := t.pixels[y*w : (y+1)*w]
		for x := range out {
			o := x * 4
			out[x] = color.RGBA{R: row[o], G: row[o+1], B: row[o+2], A: row[o+3]}
		}
	}
	rl.UpdateTexture(t.tex, t.pixels)
}

// Draw blits the texture with its top left corner at (x, y).
func (t *Texture) Draw(x, y int32) {
	if !t.loaded {
		return
	}
	rl.DrawTexture(t.tex, x, y, rl.White)
}

// Unload frees the GPU texture.
func (t *Texture) Unload() {
	if t.loaded {
		rl.UnloadTexture(t.tex)
		t.loaded = false
	}
}
