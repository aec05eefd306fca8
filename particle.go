package backdrop

import (
	"math/rand/v2"
)

// GenerateParticles returns count points sampled uniformly in a cube of side
// extent centered on the origin, flattened to 3*count floats. Each coordinate
// is drawn independently. A nil rng uses the global source.
func GenerateParticles(count int, extent float32, rng *rand.Rand) []float32 {
	if count <= 0 {
		return nil
	}
	next := rand.Float32
	if rng != nil {
		next = rng.Float32
	}
	pos := make([]float32, count*3)
	for i := range pos {
		pos[i] = (next() - 0.5) * extent
	}
	return pos
}

// NewParticleField creates the point-cloud node. Positions are never
// re-randomized; the loop only moves the node transform.
func NewParticleField(name string, count int, extent float32, rng *rand.Rand, mat *Material) *Node {
	return NewPoints(name, NewGeometry(GenerateParticles(count, extent, rng), nil), mat)
}

// newParticleMaterial returns the additive point material for cfg.
func newParticleMaterial(cfg Config, c Color) *Material {
	return &Material{
		Color:     c,
		Opacity:   cfg.ParticleOpacity,
		Size:      cfg.ParticleSize,
		BlendMode: BlendAdd,
	}
}
