package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/aurora/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title      string
	Width      int
	Height     int
	Particles  int
	Links      int
	Generation uint64
	Frame      uint64
	FPS        int32
	Paused     bool
}

// Lines returns the HUD text, one entry per row.
func (d HUDData) Lines() []string {
	status := "Running"
	if d.Paused {
		status = "PAUSED"
	}
	return []string{
		d.Title,
		fmt.Sprintf("Viewport: %dx%d | Particles: %d | Links: %d", d.Width, d.Height, d.Particles, d.Links),
		fmt.Sprintf("Frame: %d | Generation: %d | FPS: %d", d.Frame, d.Generation, d.FPS),
		status,
	}
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	lines := data.Lines()
	rl.DrawText(lines[0], 10, 10, 20, rl.White)
	rl.DrawText(lines[1], 10, 35, 16, rl.LightGray)
	rl.DrawText(lines[2], 10, 55, 16, rl.LightGray)
	rl.DrawText(lines[3], 10, 75, 16, rl.Yellow)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders the per-phase frame cost breakdown.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y, width int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Height returns the panel height for the current phase list.
func (p *PerfPanel) Height() int32 {
	t := p.renderer.Theme
	return 2*t.Padding + t.LineHeight*int32(3+len(telemetry.Phases)) + 2
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	r := p.renderer
	pad := r.Theme.Padding
	r.DrawPanel(p.x, p.y, p.width, p.Height())

	x, y := p.x+pad, p.y+pad
	y = r.DrawSectionHeader(x, y, "Frame Performance")
	y = r.DrawLabelValue(x, y, "Compose", stats.AvgFrameDuration.Round(time.Microsecond).String())
	y = r.DrawLabelValue(x, y, "Headroom", fmt.Sprintf("%.0f fps", stats.Headroom))
	for _, phase := range telemetry.Phases {
		y = r.DrawBar(x, y, phase, stats.PhasePct[phase], p.width-2*pad)
	}
}
