package backdrop

// Material describes how a node is shaded. Colors are written in place by the
// theme observer; the scene is never rebuilt for a palette change.
type Material struct {
	Color   Color
	Opacity float64
	// Size is the point size in world units (points only).
	Size      float64
	BlendMode BlendMode
	Wireframe bool

	disposed bool
}

// SetColor replaces the material color in place.
func (m *Material) SetColor(c Color) {
	if m.disposed {
		return
	}
	m.Color = c
}

// Dispose marks the material released. Safe to call twice.
func (m *Material) Dispose() {
	m.disposed = true
}

// IsDisposed reports whether Dispose has been called.
func (m *Material) IsDisposed() bool {
	return m.disposed
}
