// Ambient field tuning tool - live preview with sliders for the field parameters.
//
// Usage: go run ./cmd/auroratune [-config path] [-out aurora.yaml]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/aurora/config"
	"github.com/pthm-cable/aurora/host/raylibhost"
	"github.com/pthm-cable/aurora/loop"
	"github.com/pthm-cable/aurora/renderer"
	"github.com/pthm-cable/aurora/telemetry"
)

const (
	windowWidth   = 1000
	windowHeight  = 720
	previewWidth  = 640
	previewHeight = 360
	panelWidth    = windowWidth - previewWidth - 30
)

// panel lays out labelled sliders top to bottom.
type panel struct {
	x, y    float32
	changed bool
}

func (p *panel) slider(label string, value *float64, min, max float64, format string) {
	rl.DrawText(label, int32(p.x), int32(p.y), 14, rl.Gray)
	p.y += 18
	v := gui.SliderBar(
		rl.Rectangle{X: p.x, Y: p.y, Width: float32(panelWidth - 80), Height: 20},
		fmt.Sprintf(format, min), fmt.Sprintf(format, max),
		float32(*value), float32(min), float32(max),
	)
	rl.DrawText(fmt.Sprintf(format, *value), int32(p.x+float32(panelWidth-70)), int32(p.y+2), 16, rl.DarkGray)
	if float64(v) != float64(float32(*value)) {
		*value = float64(v)
		p.changed = true
	}
	p.y += 35
}

func (p *panel) intSlider(label string, value *int, min, max int) {
	was, f := p.changed, float64(*value)
	p.slider(label, &f, float64(min), float64(max), "%.0f")
	if n := int(f + 0.5); n != *value {
		*value = n
	} else {
		p.changed = was
	}
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outPath := flag.String("out", "aurora.yaml", "Where Dump YAML writes the tuned config")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	params := *config.Cfg()

	rl.InitWindow(windowWidth, windowHeight, "Aurora Tuning")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	sched := loop.NewManualScheduler()
	win := loop.NewWindow(previewWidth, previewHeight)
	perf := telemetry.NewPerfCollector(params.Telemetry.PerfWindow)
	a := loop.New(&params, sched, win,
		loop.WithRand(rand.New(rand.NewSource(1))),
		loop.WithTelemetry(perf, nil),
	)
	canvas := renderer.NewCanvas(previewWidth, previewHeight)
	a.Mount(canvas)
	defer a.Unmount()

	var tex raylibhost.Texture
	defer tex.Unload()

	clock := loop.NewStopwatch(nil)
	paused := false
	status := ""

	for !rl.WindowShouldClose() {
		if !paused {
			sched.Fire(clock.Millis())
			tex.Upload(canvas.Image())
			perf.RecordPresent()
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		tex.Draw(10, 10)
		rl.DrawRectangleLines(10, 10, previewWidth, previewHeight, rl.DarkGray)

		stats := perf.Stats()
		statsY := int32(previewHeight + 25)
		rl.DrawText(fmt.Sprintf("Particles: %d  Links: %d  Pair bound: %d",
			a.Field().Count(), a.Links(), params.Derived.MaxLinkPairs), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Compose: %v  Headroom: %.0f fps",
			stats.AvgFrameDuration, stats.Headroom), 15, statsY+20, 16, rl.DarkGray)
		for i, phase := range telemetry.Phases {
			rl.DrawText(fmt.Sprintf("%-10s %5.1f%%", phase, stats.PhasePct[phase]),
				15, statsY+50+int32(i)*18, 14, rl.Gray)
		}
		if status != "" {
			rl.DrawText(status, 15, windowHeight-30, 16, rl.DarkGray)
		}

		p := panel{x: float32(previewWidth + 20), y: 10}
		rl.DrawText("Field Parameters", int32(p.x), int32(p.y), 20, rl.DarkGray)
		p.y += 35

		p.slider("Area per particle (px²)", &params.Particles.AreaPerParticle, 2000, 20000, "%.0f")
		p.intSlider("Population cap", &params.Particles.MaxCount, 10, 300)
		p.slider("Speed scale", &params.Particles.SpeedScale, 0, 2, "%.2f")
		p.slider("Opacity flicker", &params.Particles.Flicker, 0, 0.1, "%.3f")
		p.slider("Link distance (px)", &params.Links.Distance, 20, 200, "%.0f")
		p.slider("Link max alpha", &params.Links.MaxAlpha, 0, 0.5, "%.2f")
		p.slider("Wave alpha (layer 0)", &params.Waves.AlphaBase, 0.03, 0.4, "%.2f")

		if p.changed {
			if err := params.Apply(); err != nil {
				status = err.Error()
			} else {
				a.Reconfigure(&params)
				status = ""
			}
		}

		p.y += 10
		if gui.Button(rl.Rectangle{X: p.x, Y: p.y, Width: 120, Height: 30}, toggleText(paused, "Resume", "Pause")) {
			paused = !paused
		}
		if gui.Button(rl.Rectangle{X: p.x + 130, Y: p.y, Width: 120, Height: 30}, "Respawn") {
			a.Reconfigure(&params)
		}
		p.y += 40
		if gui.Button(rl.Rectangle{X: p.x, Y: p.y, Width: 120, Height: 30}, "Reset All") {
			params = *config.Cfg()
			a.Reconfigure(&params)
			status = "reset to loaded config"
		}
		if gui.Button(rl.Rectangle{X: p.x + 130, Y: p.y, Width: 120, Height: 30}, "Dump YAML") {
			if err := params.WriteYAML(*outPath); err != nil {
				status = err.Error()
				slog.Error("dump failed", "error", err)
			} else {
				status = "wrote " + *outPath
				slog.Info("config written", "path", *outPath)
			}
		}

		rl.EndDrawing()
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
