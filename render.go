package backdrop

// Primitive selects how a Batch's coordinates are interpreted.
type Primitive uint8

const (
	// PrimitivePoints: Coords holds x, y, size triples (pixels).
	PrimitivePoints Primitive = iota
	// PrimitiveLines: Coords holds x0, y0, x1, y1 quads (pixels).
	PrimitiveLines
)

// Batch is one material's worth of projected primitives.
type Batch struct {
	Name      string
	Primitive Primitive
	Color     Color
	// Alpha is the material opacity with the intro fade applied.
	Alpha     float64
	BlendMode BlendMode
	Coords    []float32
}

// Count returns the number of primitives in the batch.
func (b *Batch) Count() int {
	if b.Primitive == PrimitivePoints {
		return len(b.Coords) / 3
	}
	return len(b.Coords) / 4
}

// Frame is a projected, screen-space draw list for one tick. Batches are in
// draw order (back to front).
type Frame struct {
	Width, Height int
	Batches       []Batch
	// Tick is the loop tick that produced the frame.
	Tick uint64
}

// minPointSize keeps sub-pixel sprites visible, like GL point rasterization.
const minPointSize = 1

// buildFrame projects the scene into f for a w×h target, reusing f's buffers.
// The wave is drawn before the particles: it sits further from the camera.
func (s *Scene) buildFrame(f *Frame, w, h int, fade float64) {
	f.Width, f.Height = w, h
	if cap(f.Batches) < 2 {
		f.Batches = make([]Batch, 0, 2)
	}
	f.Batches = f.Batches[:0]

	for _, n := range [...]*Node{s.Wave, s.Particles} {
		if n == nil || !n.Visible || n.Geometry == nil || n.Material == nil {
			continue
		}
		if n.Geometry.IsDisposed() || n.Material.IsDisposed() {
			continue
		}
		i := len(f.Batches)
		f.Batches = f.Batches[:i+1]
		b := &f.Batches[i]
		b.Name = n.Name
		b.Color = n.Material.Color
		b.Alpha = n.Material.Opacity * fade
		b.BlendMode = n.Material.BlendMode
		b.Coords = b.Coords[:0]
		switch n.Type {
		case NodeTypePoints:
			b.Primitive = PrimitivePoints
			b.Coords = s.projectPoints(b.Coords, n, w, h)
		case NodeTypeWireframe:
			b.Primitive = PrimitiveLines
			b.Coords = s.projectLines(b.Coords, n, w, h)
		}
	}
}

// modelView returns camera view × node model.
func (s *Scene) modelView(n *Node) Mat4 {
	return Mat4Mul(s.Camera.ViewMatrix(), n.ModelMatrix())
}

func (s *Scene) projectPoints(dst []float32, n *Node, w, h int) []float32 {
	mv := s.modelView(n)
	g := n.Geometry
	scale := n.Material.Size * float64(h) * 0.5
	for i, count := 0, g.VertexCount(); i < count; i++ {
		v := mv.MulPoint(g.Vertex(i))
		sx, sy, depth, ok := s.Camera.Project(v, w, h)
		if !ok {
			continue
		}
		size := scale / depth
		if size < minPointSize {
			size = minPointSize
		}
		if sx+size < 0 || sy+size < 0 || sx-size > float64(w) || sy-size > float64(h) {
			continue
		}
		dst = append(dst, float32(sx), float32(sy), float32(size))
	}
	return dst
}

func (s *Scene) projectLines(dst []float32, n *Node, w, h int) []float32 {
	mv := s.modelView(n)
	g := n.Geometry
	cam := s.Camera
	lines := g.Lines
	for i := 0; i+1 < len(lines); i += 2 {
		a := mv.MulPoint(g.Vertex(int(lines[i])))
		b := mv.MulPoint(g.Vertex(int(lines[i+1])))
		a, b, ok := cam.clipNear(a, b)
		if !ok {
			continue
		}
		ax, ay, _, oka := cam.Project(a, w, h)
		bx, by, _, okb := cam.Project(b, w, h)
		if !oka || !okb {
			continue
		}
		dst = append(dst, float32(ax), float32(ay), float32(bx), float32(by))
	}
	return dst
}
