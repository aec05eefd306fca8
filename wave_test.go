package backdrop

import (
	"math"
	"testing"
)

func newTestWave() *WaveSurface {
	return NewWaveSurface("wave", 20, 50, newWaveMaterial(DefaultConfig(), LightPalette.Wave))
}

func TestWaveSurfaceVertexCount(t *testing.T) {
	w := newTestWave()
	g := w.Node().Geometry
	if g.VertexCount() != 51*51 {
		t.Errorf("VertexCount = %d, want %d", g.VertexCount(), 51*51)
	}
	if w.Cols() != 50 || w.Rows() != 50 {
		t.Errorf("grid = %dx%d, want 50x50", w.Cols(), w.Rows())
	}
}

func TestWaveSurfaceLineCount(t *testing.T) {
	g := newTestWave().Node().Geometry
	want := 50*50*3 + 2*50
	if got := len(g.Lines) / 2; got != want {
		t.Errorf("edges = %d, want %d", got, want)
	}
	n := uint32(g.VertexCount())
	for i, idx := range g.Lines {
		if idx >= n {
			t.Fatalf("line index %d = %d out of range", i, idx)
		}
	}
}

func TestWaveSurfaceLayout(t *testing.T) {
	g := newTestWave().Node().Geometry
	first := g.Vertex(0)
	if first.X != -10 || first.Y != 10 {
		t.Errorf("first vertex = %v, want (-10,10)", first)
	}
	last := g.Vertex(g.VertexCount() - 1)
	if last.X != 10 || last.Y != -10 {
		t.Errorf("last vertex = %v, want (10,-10)", last)
	}
	if g.Vertex(1).X <= first.X {
		t.Error("vertices should run left to right")
	}
}

func TestWaveDeformKeepsXY(t *testing.T) {
	w := newTestWave()
	g := w.Node().Geometry
	before := append([]float32(nil), g.Positions...)
	for _, tt := range []float64{0, 0.016, 1.5, 42} {
		w.Deform(tt)
		for i := 0; i < len(before); i += 3 {
			if g.Positions[i] != before[i] || g.Positions[i+1] != before[i+1] {
				t.Fatalf("t=%f: vertex %d moved in XY", tt, i/3)
			}
		}
	}
}

func TestWaveDeformHeights(t *testing.T) {
	w := newTestWave()
	g := w.Node().Geometry
	w.Deform(0)
	for i := 0; i < g.VertexCount(); i++ {
		v := g.Vertex(i)
		want := 0.3*math.Sin(0.5*v.X) + 0.3*math.Sin(0.5*v.Y)
		if !approxEqual(v.Z, want, 1e-6) {
			t.Fatalf("vertex %d z = %f, want %f", i, v.Z, want)
		}
	}

	w.Deform(2)
	v := g.Vertex(17)
	want := 0.3*math.Sin(0.5*v.X+2) + 0.3*math.Sin(0.5*v.Y+1)
	if !approxEqual(v.Z, want, 1e-6) {
		t.Errorf("z at t=2 = %f, want %f", v.Z, want)
	}
}

func TestWaveDeformBounded(t *testing.T) {
	w := newTestWave()
	w.Deform(3.7)
	g := w.Node().Geometry
	for i := 0; i < g.VertexCount(); i++ {
		if z := g.Vertex(i).Z; math.Abs(z) > 0.6+1e-6 {
			t.Fatalf("vertex %d z = %f exceeds amplitude bound", i, z)
		}
	}
}

func TestWaveDeformMarksDirtyOnce(t *testing.T) {
	w := newTestWave()
	g := w.Node().Geometry
	v := g.Version()
	w.Deform(1)
	if g.Version() != v+1 {
		t.Errorf("Version = %d, want %d", g.Version(), v+1)
	}
}

func TestWaveDeformSpin(t *testing.T) {
	w := newTestWave()
	w.Deform(10)
	if !approxEqual(w.Node().Rotation.Z, 0.2, epsilon) {
		t.Errorf("Rotation.Z = %f, want 0.2", w.Node().Rotation.Z)
	}
}

func TestWaveDeformDisposedNoop(t *testing.T) {
	w := newTestWave()
	w.Node().Dispose()
	w.Deform(1)
	if w.Node().Rotation.Z != 0 {
		t.Error("disposed wave should not be deformed")
	}
}

func TestSceneWaveTransform(t *testing.T) {
	s, w := NewScene(DefaultConfig(), LightPalette, nil)
	if s.Wave != w.Node() {
		t.Fatal("scene wave node mismatch")
	}
	if !approxEqual(s.Wave.Rotation.X, -math.Pi*0.35, epsilon) {
		t.Errorf("tilt = %f, want -0.35π", s.Wave.Rotation.X)
	}
	if s.Wave.Position.Y != -2 {
		t.Errorf("offset = %f, want -2", s.Wave.Position.Y)
	}
	if s.Wave.Material.Opacity != 0.15 || !s.Wave.Material.Wireframe {
		t.Errorf("wave material = %+v", s.Wave.Material)
	}
}
