package backdrop

import (
	"math/rand/v2"
	"testing"
)

func newTestScene() (*Scene, *WaveSurface) {
	cfg := DefaultConfig()
	return NewScene(cfg, LightPalette, rand.New(rand.NewPCG(1, 1)))
}

func TestBuildFrameOrderAndStyle(t *testing.T) {
	s, w := newTestScene()
	w.Deform(0)
	s.Camera.SetAspect(2)
	var f Frame
	s.buildFrame(&f, 800, 400, 1)

	if f.Width != 800 || f.Height != 400 {
		t.Errorf("frame size = %dx%d", f.Width, f.Height)
	}
	if len(f.Batches) != 2 {
		t.Fatalf("batches = %d, want 2", len(f.Batches))
	}
	wave, parts := f.Batches[0], f.Batches[1]
	if wave.Primitive != PrimitiveLines || wave.Name != "wave" {
		t.Errorf("first batch = %q/%d, want wave lines", wave.Name, wave.Primitive)
	}
	if parts.Primitive != PrimitivePoints || parts.BlendMode != BlendAdd {
		t.Errorf("second batch = %q/%d, want additive points", parts.Name, parts.Primitive)
	}
	if !approxEqual(wave.Alpha, 0.15, epsilon) || !approxEqual(parts.Alpha, 0.6, epsilon) {
		t.Errorf("alpha = %f/%f, want 0.15/0.6", wave.Alpha, parts.Alpha)
	}
	if wave.Count() == 0 || parts.Count() == 0 {
		t.Errorf("counts = %d/%d, want nonzero", wave.Count(), parts.Count())
	}
	if parts.Count() > 2000 || wave.Count() > 7600 {
		t.Errorf("counts = %d/%d exceed geometry", parts.Count(), wave.Count())
	}
}

func TestBuildFrameFade(t *testing.T) {
	s, _ := newTestScene()
	var f Frame
	s.buildFrame(&f, 100, 100, 0.5)
	if !approxEqual(f.Batches[1].Alpha, 0.3, epsilon) {
		t.Errorf("particle alpha = %f, want 0.3", f.Batches[1].Alpha)
	}
	if s.Particles.Material.Opacity != 0.6 {
		t.Error("fade wrote the material opacity")
	}
}

func TestBuildFrameUsesLiveColor(t *testing.T) {
	s, _ := newTestScene()
	s.Particles.Material.SetColor(DarkPalette.Particles)
	var f Frame
	s.buildFrame(&f, 100, 100, 1)
	if f.Batches[1].Color != DarkPalette.Particles {
		t.Error("frame did not pick up the recolored material")
	}
}

func TestBuildFrameReusesBuffers(t *testing.T) {
	s, _ := newTestScene()
	var f Frame
	s.buildFrame(&f, 200, 200, 1)
	p0 := &f.Batches[1].Coords[0]
	n := f.Batches[1].Count()
	s.buildFrame(&f, 200, 200, 1)
	if &f.Batches[1].Coords[0] != p0 {
		t.Error("coords buffer reallocated for identical frame")
	}
	if f.Batches[1].Count() != n {
		t.Errorf("count changed: %d -> %d", n, f.Batches[1].Count())
	}
}

func TestBuildFrameSkipsDisposed(t *testing.T) {
	s, _ := newTestScene()
	s.Dispose()
	s.Dispose()
	var f Frame
	s.buildFrame(&f, 100, 100, 1)
	if len(f.Batches) != 0 {
		t.Errorf("batches = %d after dispose, want 0", len(f.Batches))
	}
}

func TestProjectPointsSizeAttenuation(t *testing.T) {
	s, _ := newTestScene()
	s.Particles.Geometry = NewGeometry([]float32{0, 0, 0, 0, 0, 4.5}, nil)
	s.Particles.Material.Size = 1
	var f Frame
	s.buildFrame(&f, 100, 100, 1)
	c := f.Batches[1].Coords
	if len(c) != 6 {
		t.Fatalf("coords = %d, want 6", len(c))
	}
	// depth 5: 1 * 100 * 0.5 / 5 = 10px
	if !approxEqual(float64(c[2]), 10, 1e-4) {
		t.Errorf("size at depth 5 = %f, want 10", c[2])
	}
	if !approxEqual(float64(c[5]), 100, 1e-3) {
		t.Errorf("size at depth 0.5 = %f, want 100", c[5])
	}
	if !approxEqual(float64(c[0]), 50, 1e-4) || !approxEqual(float64(c[1]), 50, 1e-4) {
		t.Errorf("center = (%f,%f), want (50,50)", c[0], c[1])
	}
}

func TestProjectPointsMinimumSize(t *testing.T) {
	s, _ := newTestScene()
	s.Particles.Geometry = NewGeometry([]float32{0, 0, -100}, nil)
	var f Frame
	s.buildFrame(&f, 100, 100, 1)
	if c := f.Batches[1].Coords; len(c) != 3 || c[2] != minPointSize {
		t.Errorf("coords = %v, want one point of size %d", c, minPointSize)
	}
}

func TestProjectPointsCullsBehindCamera(t *testing.T) {
	s, _ := newTestScene()
	s.Particles.Geometry = NewGeometry([]float32{0, 0, 6, 0, 0, 5}, nil)
	var f Frame
	s.buildFrame(&f, 100, 100, 1)
	if n := f.Batches[1].Count(); n != 0 {
		t.Errorf("count = %d, want 0", n)
	}
}

func TestProjectLinesNearClip(t *testing.T) {
	s, _ := newTestScene()
	wave := s.Wave
	wave.Rotation = Vec3{}
	wave.Position = Vec3{}
	// One segment from in front of the camera to behind it.
	wave.Geometry = NewGeometry([]float32{0, 0, 0, 0, 0, 10}, []uint32{0, 1})
	var f Frame
	s.buildFrame(&f, 100, 100, 1)
	if n := f.Batches[0].Count(); n != 1 {
		t.Fatalf("count = %d, want 1 clipped segment", n)
	}

	wave.Geometry = NewGeometry([]float32{0, 0, 6, 1, 0, 7}, []uint32{0, 1})
	s.buildFrame(&f, 100, 100, 1)
	if n := f.Batches[0].Count(); n != 0 {
		t.Errorf("count = %d, want 0 for segment behind camera", n)
	}
}

func TestBatchCount(t *testing.T) {
	p := Batch{Primitive: PrimitivePoints, Coords: make([]float32, 9)}
	l := Batch{Primitive: PrimitiveLines, Coords: make([]float32, 8)}
	if p.Count() != 3 || l.Count() != 2 {
		t.Errorf("counts = %d/%d, want 3/2", p.Count(), l.Count())
	}
}
