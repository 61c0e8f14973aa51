package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/aurora/config"
)

// Particle is one glowing point of the ambient field.
type Particle struct {
	X, Y    float64
	VX, VY  float64
	Size    float64
	Opacity float64
	Hue     float64
}

// ParticleField owns the particle population for the current viewport.
// The population is replaced wholesale by Init; nothing survives a resize.
type ParticleField struct {
	Particles []Particle

	width, height float64
	cfg           config.ParticlesConfig
	rng           *rand.Rand
	generation    uint64
}

// NewParticleField creates an empty field. Call Init before Update.
// A nil rng falls back to a time-seeded source.
func NewParticleField(cfg config.ParticlesConfig, rng *rand.Rand) *ParticleField {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &ParticleField{
		Particles: make([]Particle, 0, cfg.MaxCount),
		cfg:       cfg,
		rng:       rng,
	}
}

// ParticleCount returns the population for a width x height viewport:
// one particle per AreaPerParticle px², capped at MaxCount.
func ParticleCount(width, height float64, cfg config.ParticlesConfig) int {
	if width <= 0 || height <= 0 || cfg.AreaPerParticle <= 0 {
		return 0
	}
	n := int(math.Floor(width * height / cfg.AreaPerParticle))
	if n > cfg.MaxCount {
		n = cfg.MaxCount
	}
	return n
}

// Init discards every particle and spawns a fresh population sized for
// the given viewport.
func (f *ParticleField) Init(width, height float64) {
	f.width, f.height = width, height
	f.generation++

	n := ParticleCount(width, height, f.cfg)
	// Fresh backing array so no caller-held slice aliases the new population.
	f.Particles = make([]Particle, n, max(n, f.cfg.MaxCount))
	for i := range f.Particles {
		f.Particles[i] = f.spawn()
	}
}

// Restore replaces the population with a copy of ps, for replaying a saved
// field. Positions are wrapped into the viewport and opacities clamped, so
// a snapshot taken at another size still satisfies the field bounds.
func (f *ParticleField) Restore(width, height float64, ps []Particle) {
	f.width, f.height = width, height
	f.generation++

	f.Particles = make([]Particle, len(ps), max(len(ps), f.cfg.MaxCount))
	for i, p := range ps {
		p.X = wrap(p.X, width)
		p.Y = wrap(p.Y, height)
		p.Opacity = clamp(p.Opacity, f.cfg.OpacityMin, f.cfg.OpacityMax)
		f.Particles[i] = p
	}
}

func (f *ParticleField) spawn() Particle {
	c := &f.cfg
	r := f.rng
	p := Particle{
		X:       r.Float64() * f.width,
		Y:       r.Float64() * f.height,
		VX:      (r.Float64() - 0.5) * c.SpeedScale,
		VY:      (r.Float64() - 0.5) * c.SpeedScale,
		Size:    c.SizeMin + r.Float64()*(c.SizeMax-c.SizeMin),
		Opacity: c.OpacityInitMin + r.Float64()*(c.OpacityInitMax-c.OpacityInitMin),
		Hue:     c.HueMin + r.Float64()*c.HueSpan,
	}
	// The spawn range is wider than the steady-state band; pull it in so
	// the bound holds from the first frame.
	p.Opacity = clamp(p.Opacity, c.OpacityMin, c.OpacityMax)
	return p
}

// Update advances every particle by one frame.
func (f *ParticleField) Update() {
	for i := range f.Particles {
		f.UpdateAt(i)
	}
}

// UpdateAt advances particle i by one frame.
func (f *ParticleField) UpdateAt(i int) {
	delta := (f.rng.Float64() - 0.5) * f.cfg.Flicker
	StepParticle(&f.Particles[i], f.width, f.height, delta, f.cfg.OpacityMin, f.cfg.OpacityMax)
}

// StepParticle moves p by its velocity, wrapping at the viewport edges, and
// nudges its opacity by delta within [opMin, opMax].
func StepParticle(p *Particle, width, height, delta, opMin, opMax float64) {
	p.X = wrap(p.X+p.VX, width)
	p.Y = wrap(p.Y+p.VY, height)
	p.Opacity = clamp(p.Opacity+delta, opMin, opMax)
}

// Count returns the current population.
func (f *ParticleField) Count() int {
	return len(f.Particles)
}

// Size returns the viewport the population was spawned for.
func (f *ParticleField) Size() (width, height float64) {
	return f.width, f.height
}

// Generation increments on every Init.
func (f *ParticleField) Generation() uint64 {
	return f.generation
}

// Config returns the parameters the field spawns with.
func (f *ParticleField) Config() config.ParticlesConfig {
	return f.cfg
}

// SetConfig replaces the field parameters. Spawn ranges apply from the next
// Init; flicker and opacity bounds apply on the next Update.
func (f *ParticleField) SetConfig(cfg config.ParticlesConfig) {
	f.cfg = cfg
}
