package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pthm-cable/aurora/systems"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds the particle field state for replay. Waves, orbs and the
// veil are pure functions of time and need no state.
type Snapshot struct {
	Version int   `json:"version"`
	RNGSeed int64 `json:"rng_seed"`

	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	Frame      uint64 `json:"frame"`
	Generation uint64 `json:"generation"`

	Particles []ParticleState `json:"particles"`
}

// ParticleState holds one particle's complete state.
type ParticleState struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	VX      float64 `json:"vx"`
	VY      float64 `json:"vy"`
	Size    float64 `json:"size"`
	Opacity float64 `json:"opacity"`
	Hue     float64 `json:"hue"`
}

// NewSnapshot captures the field after frame.
func NewSnapshot(seed int64, frame uint64, f *systems.ParticleField) *Snapshot {
	w, h := f.Size()
	s := &Snapshot{
		Version:    SnapshotVersion,
		RNGSeed:    seed,
		Width:      w,
		Height:     h,
		Frame:      frame,
		Generation: f.Generation(),
		Particles:  make([]ParticleState, len(f.Particles)),
	}
	for i, p := range f.Particles {
		s.Particles[i] = ParticleState(p)
	}
	return s
}

// ToParticles converts the saved states back to field records.
func (s *Snapshot) ToParticles() []systems.Particle {
	ps := make([]systems.Particle, len(s.Particles))
	for i, p := range s.Particles {
		ps[i] = systems.Particle(p)
	}
	return ps
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("field_%d.json", snapshot.Frame))

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d, want %d", snapshot.Version, SnapshotVersion)
	}

	return &snapshot, nil
}
