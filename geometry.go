package backdrop

// Geometry is a vertex buffer of xyz float32 triples and an optional line
// index list. Mutating Positions in place requires a MarkDirty call so
// render targets pick up the new data.
type Geometry struct {
	// Positions holds x, y, z for each vertex.
	Positions []float32
	// Lines holds index pairs into Positions (by vertex) for wireframes.
	Lines []uint32

	version  uint64
	disposed bool
}

// NewGeometry wraps a position buffer. len(positions) must be a multiple of 3.
func NewGeometry(positions []float32, lines []uint32) *Geometry {
	return &Geometry{Positions: positions, Lines: lines}
}

// VertexCount returns the number of vertices in the buffer.
func (g *Geometry) VertexCount() int {
	return len(g.Positions) / 3
}

// Vertex returns the position of vertex i.
func (g *Geometry) Vertex(i int) Vec3 {
	p := g.Positions[i*3 : i*3+3 : i*3+3]
	return Vec3{float64(p[0]), float64(p[1]), float64(p[2])}
}

// MarkDirty records that Positions changed. Call once per batch of edits.
func (g *Geometry) MarkDirty() {
	g.version++
}

// Version returns a counter that increases on every MarkDirty.
func (g *Geometry) Version() uint64 {
	return g.version
}

// Dispose drops the buffers. Safe to call twice.
func (g *Geometry) Dispose() {
	if g.disposed {
		return
	}
	g.disposed = true
	g.Positions = nil
	g.Lines = nil
}

// IsDisposed reports whether Dispose has been called.
func (g *Geometry) IsDisposed() bool {
	return g.disposed
}
