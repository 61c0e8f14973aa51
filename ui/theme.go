// Package ui draws the raylib overlays: the status HUD and the frame
// performance panel.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	PanelBg       rl.Color
	PanelBorder   rl.Color
	SectionHeader rl.Color
	LabelColor    rl.Color
	ValueColor    rl.Color
	WarnColor     rl.Color
	HotColor      rl.Color
	BarBg         rl.Color
	BarFill       rl.Color
	Padding       int32
	LineHeight    int32
	LabelWidth    int32
	BarHeight     int32
	FontSize      int32
	HeaderSize    int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:       rl.Color{R: 10, G: 10, B: 20, A: 200},
		PanelBorder:   rl.Color{R: 60, G: 60, B: 110, A: 255},
		SectionHeader: rl.Color{R: 180, G: 170, B: 255, A: 255},
		LabelColor:    rl.LightGray,
		ValueColor:    rl.RayWhite,
		WarnColor:     rl.Orange,
		HotColor:      rl.Red,
		BarBg:         rl.Color{R: 40, G: 40, B: 50, A: 255},
		BarFill:       rl.Color{R: 100, G: 150, B: 255, A: 255},
		Padding:       10,
		LineHeight:    16,
		LabelWidth:    80,
		BarHeight:     10,
		FontSize:      12,
		HeaderSize:    14,
	}
}
