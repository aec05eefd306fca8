package backdrop

import "math/rand/v2"

// Scene holds the camera and the two nodes of the hero background. It is
// plain data; the Engine mutates it once per tick.
type Scene struct {
	Camera    *Camera
	Particles *Node
	Wave      *Node
}

// NewScene builds the particle field and wave surface for cfg, colored with
// palette. rng seeds the particle positions; nil uses the global source.
func NewScene(cfg Config, palette ThemePalette, rng *rand.Rand) (*Scene, *WaveSurface) {
	cfg = cfg.withDefaults()

	particles := NewParticleField("particles", cfg.ParticleCount, cfg.ParticleExtent, rng,
		newParticleMaterial(cfg, palette.Particles))

	wave := NewWaveSurface("wave", cfg.WaveSize, cfg.WaveSegments, newWaveMaterial(cfg, palette.Wave))
	wn := wave.Node()
	wn.Rotation.X = cfg.WaveTilt
	wn.Position.Y = cfg.WaveOffsetY

	s := &Scene{
		Camera:    newCamera(cfg),
		Particles: particles,
		Wave:      wn,
	}
	return s, wave
}

// Nodes returns the scene's nodes in draw order.
func (s *Scene) Nodes() []*Node {
	return []*Node{s.Wave, s.Particles}
}

// Dispose releases every node's geometry and material. Safe to call twice.
func (s *Scene) Dispose() {
	for _, n := range s.Nodes() {
		if n != nil {
			n.Dispose()
		}
	}
}
