package backdrop

import "math"

// Wave deformation constants. They are visual tuning values.
const (
	WaveAmplitude    = 0.3
	WaveSpatialScale = 0.5
	WaveTimeScaleY   = 0.5
	WaveSpin         = 0.02 // radians per second about the surface normal
)

// WaveHeight returns the displacement of the surface at (x, y) after t seconds.
func WaveHeight(x, y, t float64) float64 {
	return WaveAmplitude*math.Sin(WaveSpatialScale*x+t) +
		WaveAmplitude*math.Sin(WaveSpatialScale*y+WaveTimeScaleY*t)
}

// WaveSurface is a tessellated square grid whose vertices are displaced along
// Z every tick. The X and Y of every vertex are fixed at creation.
type WaveSurface struct {
	node *Node
	cols int
	rows int
}

// NewWaveSurface creates a size×size grid of segments×segments cells centered
// on the origin in the XY plane, with a wireframe line list covering every
// triangle edge. Vertices run row by row from +Y to -Y, left to right.
func NewWaveSurface(name string, size float64, segments int, mat *Material) *WaveSurface {
	if segments < 1 {
		segments = 1
	}
	vcols := segments + 1
	vrows := segments + 1
	half := size / 2
	step := size / float64(segments)

	pos := make([]float32, vcols*vrows*3)
	for r := 0; r < vrows; r++ {
		y := half - float64(r)*step
		for c := 0; c < vcols; c++ {
			i := (r*vcols + c) * 3
			pos[i] = float32(float64(c)*step - half)
			pos[i+1] = float32(y)
		}
	}

	// Edges: top and left of every cell plus its diagonal, then the closing
	// bottom row and right column.
	lines := make([]uint32, 0, (segments*segments*3+segments*2)*2)
	for r := 0; r < segments; r++ {
		for c := 0; c < segments; c++ {
			tl := uint32(r*vcols + c)
			tr := tl + 1
			bl := uint32((r+1)*vcols + c)
			lines = append(lines, tl, tr, tl, bl, bl, tr)
		}
	}
	for c := 0; c < segments; c++ {
		bl := uint32(segments*vcols + c)
		lines = append(lines, bl, bl+1)
	}
	for r := 0; r < segments; r++ {
		tr := uint32(r*vcols + segments)
		lines = append(lines, tr, tr+uint32(vcols))
	}

	n := NewWireframe(name, NewGeometry(pos, lines), mat)
	return &WaveSurface{node: n, cols: segments, rows: segments}
}

// Node returns the underlying wireframe node.
func (w *WaveSurface) Node() *Node {
	return w.node
}

// Cols returns the number of grid columns.
func (w *WaveSurface) Cols() int { return w.cols }

// Rows returns the number of grid rows.
func (w *WaveSurface) Rows() int { return w.rows }

// Deform recomputes every vertex height for elapsed time t, marks the buffer
// dirty once, and spins the surface about its normal.
func (w *WaveSurface) Deform(t float64) {
	g := w.node.Geometry
	if g == nil || g.IsDisposed() {
		return
	}
	pos := g.Positions
	for i := 0; i+2 < len(pos); i += 3 {
		pos[i+2] = float32(WaveHeight(float64(pos[i]), float64(pos[i+1]), t))
	}
	g.MarkDirty()
	w.node.Rotation.Z = WaveSpin * t
}

// newWaveMaterial returns the translucent wireframe material for cfg.
func newWaveMaterial(cfg Config, c Color) *Material {
	return &Material{
		Color:     c,
		Opacity:   cfg.WaveOpacity,
		BlendMode: BlendNormal,
		Wireframe: true,
	}
}
