// Package config provides configuration loading and access for the ambient renderer.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all renderer configuration parameters.
type Config struct {
	Screen     ScreenConfig    `yaml:"screen"`
	Particles  ParticlesConfig `yaml:"particles"`
	Links      LinksConfig     `yaml:"links"`
	Waves      WavesConfig     `yaml:"waves"`
	Orbs       []OrbConfig     `yaml:"orbs"`
	Background []StopConfig    `yaml:"background"`
	Veil       VeilConfig      `yaml:"veil"`
	Telemetry  TelemetryConfig `yaml:"telemetry"`
	Stream     StreamConfig    `yaml:"stream"`
	Terminal   TerminalConfig  `yaml:"terminal"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds the initial viewport size for windowed and headless hosts.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// ParticlesConfig holds particle field parameters.
type ParticlesConfig struct {
	AreaPerParticle float64 `yaml:"area_per_particle"` // Viewport px² per particle
	MaxCount        int     `yaml:"max_count"`         // Population cap (bounds the O(N²) link pass)
	SpeedScale      float64 `yaml:"speed_scale"`       // Velocity = (U - 0.5) * speed_scale
	SizeMin         float64 `yaml:"size_min"`
	SizeMax         float64 `yaml:"size_max"`
	OpacityInitMin  float64 `yaml:"opacity_init_min"`
	OpacityInitMax  float64 `yaml:"opacity_init_max"`
	OpacityMin      float64 `yaml:"opacity_min"` // Lower clamp applied on every update
	OpacityMax      float64 `yaml:"opacity_max"` // Upper clamp applied on every update
	Flicker         float64 `yaml:"flicker"`     // Opacity delta = (U - 0.5) * flicker
	HueMin          float64 `yaml:"hue_min"`
	HueSpan         float64 `yaml:"hue_span"`
	Saturation      float64 `yaml:"saturation"`
	Lightness       float64 `yaml:"lightness"`
	CoreAlpha       float64 `yaml:"core_alpha"` // Gradient alpha at the particle centre
	GlowScale       float64 `yaml:"glow_scale"` // Gradient radius as a multiple of size
}

// LinksConfig holds proximity link parameters.
type LinksConfig struct {
	Distance   float64 `yaml:"distance"`    // Pairs closer than this are linked
	MaxAlpha   float64 `yaml:"max_alpha"`   // Alpha as distance approaches zero
	Color      string  `yaml:"color"`       // Stroke colour (#rrggbb)
	ColorAlpha float64 `yaml:"color_alpha"` // Alpha baked into the stroke colour
	Width      float64 `yaml:"width"`
}

// WavesConfig holds aurora wave layer parameters.
type WavesConfig struct {
	Layers     int     `yaml:"layers"`
	Step       float64 `yaml:"step"`        // Horizontal sample spacing in px
	Baseline   float64 `yaml:"baseline"`    // Fraction of height
	AlphaBase  float64 `yaml:"alpha_base"`  // Alpha of layer 0
	AlphaDecay float64 `yaml:"alpha_decay"` // Alpha lost per layer
}

// OrbConfig defines one drifting glow.
type OrbConfig struct {
	X    float64 `yaml:"x"` // Fraction of width
	Y    float64 `yaml:"y"` // Fraction of height
	Size float64 `yaml:"size"`
	Hue  float64 `yaml:"hue"`
}

// StopConfig is a gradient colour stop.
type StopConfig struct {
	Offset float64 `yaml:"offset"`
	Color  string  `yaml:"color"`
}

// VeilConfig holds the overlay glow layer parameters.
type VeilConfig struct {
	Enabled  bool         `yaml:"enabled"`
	PeriodMS float64      `yaml:"period_ms"` // Full pulse cycle
	Glows    []GlowConfig `yaml:"glows"`
}

// GlowConfig defines one static veil glow.
type GlowConfig struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Color string  `yaml:"color"`
	Alpha float64 `yaml:"alpha"`
}

// TelemetryConfig holds frame telemetry parameters.
type TelemetryConfig struct {
	PerfWindow int `yaml:"perf_window"` // Frames averaged per perf window
	LogEvery   int `yaml:"log_every"`   // Frames between stats log lines (0 = never)
}

// StreamConfig holds frame stream server parameters.
type StreamConfig struct {
	Address    string `yaml:"address"`
	FPS        int    `yaml:"fps"`
	MaxClients int    `yaml:"max_clients"`
}

// TerminalConfig holds terminal host parameters.
type TerminalConfig struct {
	PixelScale int `yaml:"pixel_scale"` // Canvas px per terminal column (rows get twice this)
	FPS        int `yaml:"fps"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	LinkDistanceSq float64 // Links.Distance squared
	MaxLinkPairs   int     // Pair checks per frame at the population cap
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Apply(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Apply validates c and refreshes its derived values. Call it after
// editing a loaded config in place.
func (c *Config) Apply() error {
	if err := c.Validate(); err != nil {
		return err
	}
	c.computeDerived()
	return nil
}

// Validate reports the first parameter that cannot drive the renderer.
func (c *Config) Validate() error {
	switch {
	case c.Screen.Width <= 0 || c.Screen.Height <= 0:
		return fmt.Errorf("config: screen size must be positive, got %dx%d", c.Screen.Width, c.Screen.Height)
	case c.Particles.AreaPerParticle <= 0:
		return fmt.Errorf("config: particles.area_per_particle must be positive, got %v", c.Particles.AreaPerParticle)
	case c.Particles.MaxCount < 0:
		return fmt.Errorf("config: particles.max_count must not be negative, got %d", c.Particles.MaxCount)
	case c.Particles.SizeMax < c.Particles.SizeMin:
		return fmt.Errorf("config: particles.size_max (%v) below size_min (%v)", c.Particles.SizeMax, c.Particles.SizeMin)
	case c.Particles.OpacityMax < c.Particles.OpacityMin:
		return fmt.Errorf("config: particles.opacity_max (%v) below opacity_min (%v)", c.Particles.OpacityMax, c.Particles.OpacityMin)
	case c.Links.Distance <= 0:
		return fmt.Errorf("config: links.distance must be positive, got %v", c.Links.Distance)
	case c.Waves.Step <= 0:
		return fmt.Errorf("config: waves.step must be positive, got %v", c.Waves.Step)
	case c.Waves.Layers < 0:
		return fmt.Errorf("config: waves.layers must not be negative, got %d", c.Waves.Layers)
	case c.Veil.Enabled && c.Veil.PeriodMS <= 0:
		return fmt.Errorf("config: veil.period_ms must be positive, got %v", c.Veil.PeriodMS)
	case c.Stream.FPS <= 0:
		return fmt.Errorf("config: stream.fps must be positive, got %d", c.Stream.FPS)
	case c.Terminal.PixelScale < 1:
		return fmt.Errorf("config: terminal.pixel_scale must be at least 1, got %d", c.Terminal.PixelScale)
	case c.Terminal.FPS <= 0:
		return fmt.Errorf("config: terminal.fps must be positive, got %d", c.Terminal.FPS)
	}

	if _, err := colorful.Hex(c.Links.Color); err != nil {
		return fmt.Errorf("config: links.color: %w", err)
	}
	for i, s := range c.Background {
		if _, err := colorful.Hex(s.Color); err != nil {
			return fmt.Errorf("config: background[%d].color: %w", i, err)
		}
	}
	for i, g := range c.Veil.Glows {
		if _, err := colorful.Hex(g.Color); err != nil {
			return fmt.Errorf("config: veil.glows[%d].color: %w", i, err)
		}
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.LinkDistanceSq = c.Links.Distance * c.Links.Distance
	n := c.Particles.MaxCount
	c.Derived.MaxLinkPairs = n * (n - 1) / 2
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
