package termhost

import (
	"context"
	"image"
	"image/color"
	"math/rand"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/aurora/config"
	"github.com/pthm-cable/aurora/loop"
)

func init() {
	// Initialize config for tests
	config.MustInit("")
}

func TestPixelSize(t *testing.T) {
	w, h := PixelSize(80, 25, 4)
	if w != 320 || h != 200 {
		t.Errorf("expected 320x200, got %dx%d", w, h)
	}
}

func TestBlitHalfBlocks(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	defer screen.Fini()
	screen.SetSize(2, 1)

	// 4x4 image: top half red, bottom half blue.
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			c := color.RGBA{R: 255, A: 255}
			if y >= 2 {
				c = color.RGBA{B: 255, A: 255}
			}
			img.SetRGBA(x, y, c)
		}
	}

	Blit(screen, img, 2)

	for cx := 0; cx < 2; cx++ {
		mainc, _, style, _ := screen.GetContent(cx, 0)
		if mainc != upperHalf {
			t.Errorf("cell %d: expected %q, got %q", cx, upperHalf, mainc)
		}
		fg, bg, _ := style.Decompose()
		if fg != tcell.NewRGBColor(255, 0, 0) {
			t.Errorf("cell %d: expected red foreground, got %v", cx, fg)
		}
		if bg != tcell.NewRGBColor(0, 0, 255) {
			t.Errorf("cell %d: expected blue background, got %v", cx, bg)
		}
	}
}

func TestBlitAveragesBlock(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	defer screen.Fini()
	screen.SetSize(1, 1)

	img := image.NewRGBA(image.Rect(0, 0, 2, 4))
	img.SetRGBA(0, 0, color.RGBA{R: 200, A: 255})
	img.SetRGBA(1, 0, color.RGBA{R: 100, A: 255})
	img.SetRGBA(0, 1, color.RGBA{R: 0, A: 255})
	img.SetRGBA(1, 1, color.RGBA{R: 100, A: 255})

	Blit(screen, img, 2)

	_, _, style, _ := screen.GetContent(0, 0)
	fg, _, _ := style.Decompose()
	if fg != tcell.NewRGBColor(100, 0, 0) {
		t.Errorf("expected averaged foreground (100,0,0), got %v", fg)
	}
}

func TestRunUnmountsOnCancel(t *testing.T) {
	cfg := *config.Cfg()
	cfg.Terminal.FPS = 100

	screen := tcell.NewSimulationScreen("UTF-8")
	h, err := New(&cfg, screen)
	if err != nil {
		t.Fatal(err)
	}
	a := loop.New(&cfg, h.Scheduler(), h.Viewport(), loop.WithRand(rand.New(rand.NewSource(1))))

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	if err := h.Run(ctx, a); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if a.State() != loop.StateIdle {
		t.Errorf("expected idle after Run, got %v", a.State())
	}
	if a.Frames() == 0 {
		t.Error("expected at least one frame")
	}
	if h.sched.Pending() != 0 {
		t.Errorf("expected no pending frames, got %d", h.sched.Pending())
	}
	if w, ht := h.win.Size(); w != 320 || ht != 200 {
		t.Errorf("expected viewport 320x200 for an 80x25 screen, got %dx%d", w, ht)
	}
}
