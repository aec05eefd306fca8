package backdrop

import (
	"errors"
	"testing"
)

// fakeTarget records what the binding and engine do to it.
type fakeTarget struct {
	w, h     int
	resizes  int
	draws    int
	released int
	last     Frame
	onDraw   func()
}

func (t *fakeTarget) Size() (int, int) { return t.w, t.h }

func (t *fakeTarget) Resize(w, h int) {
	t.w, t.h = w, h
	t.resizes++
}

func (t *fakeTarget) Draw(f *Frame) {
	t.draws++
	t.last.Width, t.last.Height, t.last.Tick = f.Width, f.Height, f.Tick
	t.last.Batches = append(t.last.Batches[:0], f.Batches...)
	if t.onDraw != nil {
		t.onDraw()
	}
}

func (t *fakeTarget) Release() { t.released++ }

type fakeSurface struct {
	fail    bool
	created int
	target  *fakeTarget
}

func (s *fakeSurface) NewTarget(w, h int) (RenderTarget, error) {
	if s.fail {
		return nil, ErrNoContext
	}
	s.created++
	s.target = &fakeTarget{w: w, h: h}
	return s.target, nil
}

func TestPixelSizeCapsRatio(t *testing.T) {
	tests := []struct {
		css, ratio float64
		want       int
	}{
		{100, 1, 100},
		{100, 1.5, 150},
		{100, 2, 200},
		{100, 3, 200},
		{100, 0, 100},
		{100.7, 1, 100},
	}
	for _, tt := range tests {
		if got := PixelSize(tt.css, tt.ratio, 2); got != tt.want {
			t.Errorf("PixelSize(%v, %v) = %d, want %d", tt.css, tt.ratio, got, tt.want)
		}
	}
}

func TestBindingBindSizesTarget(t *testing.T) {
	s := &fakeSurface{}
	cam := newCamera(DefaultConfig())
	b := NewBinding(s, cam, 2)
	if err := b.Bind(Viewport{Width: 800, Height: 400, PixelRatio: 3}); err != nil {
		t.Fatal(err)
	}
	w, h := b.PixelSize()
	if w != 1600 || h != 800 {
		t.Errorf("PixelSize = %dx%d, want 1600x800", w, h)
	}
	if cam.Aspect != 2 {
		t.Errorf("Aspect = %f, want 2", cam.Aspect)
	}
	if !b.Ready() {
		t.Error("binding not ready")
	}
}

func TestBindingZeroResizeNoop(t *testing.T) {
	s := &fakeSurface{}
	cam := newCamera(DefaultConfig())
	b := NewBinding(s, cam, 2)
	_ = b.Bind(Viewport{Width: 800, Height: 400, PixelRatio: 1})

	for _, vp := range []Viewport{{Width: 0, Height: 400}, {Width: 800, Height: 0}, {}} {
		changed, err := b.Resize(vp)
		if changed || err != nil {
			t.Errorf("Resize(%+v) = %t, %v; want no-op", vp, changed, err)
		}
	}
	if cam.Aspect != 2 {
		t.Errorf("Aspect = %f after zero resize, want 2", cam.Aspect)
	}
	if s.target.resizes != 0 {
		t.Errorf("target resized %d times", s.target.resizes)
	}
}

func TestBindingUnchangedResizeNoRealloc(t *testing.T) {
	s := &fakeSurface{}
	b := NewBinding(s, newCamera(DefaultConfig()), 2)
	vp := Viewport{Width: 800, Height: 400, PixelRatio: 1}
	_ = b.Bind(vp)
	allocs := b.Allocations()

	changed, err := b.Resize(vp)
	if changed || err != nil {
		t.Errorf("Resize(same) = %t, %v", changed, err)
	}
	// Different ratio, same capped pixel size.
	_ = b.Bind(Viewport{Width: 400, Height: 200, PixelRatio: 2})
	_, _ = b.Resize(Viewport{Width: 400, Height: 200, PixelRatio: 4})
	if s.target.resizes != 0 || b.Allocations() != allocs {
		t.Errorf("resizes=%d allocs=%d, want 0/%d", s.target.resizes, b.Allocations(), allocs)
	}

	changed, _ = b.Resize(Viewport{Width: 1000, Height: 500, PixelRatio: 1})
	if !changed || s.target.resizes != 1 {
		t.Errorf("real resize: changed=%t resizes=%d", changed, s.target.resizes)
	}
	if s.created != 1 {
		t.Errorf("created %d targets, want 1", s.created)
	}
}

func TestBindingDefersZeroBind(t *testing.T) {
	s := &fakeSurface{}
	b := NewBinding(s, newCamera(DefaultConfig()), 2)
	if err := b.Bind(Viewport{}); err != nil {
		t.Fatal(err)
	}
	if b.Ready() || s.created != 0 {
		t.Fatal("target created for zero viewport")
	}
	changed, err := b.Resize(Viewport{Width: 10, Height: 10, PixelRatio: 1})
	if !changed || err != nil || !b.Ready() {
		t.Errorf("first nonzero resize: changed=%t err=%v ready=%t", changed, err, b.Ready())
	}
}

func TestBindingNoContext(t *testing.T) {
	s := &fakeSurface{fail: true}
	b := NewBinding(s, newCamera(DefaultConfig()), 2)
	err := b.Bind(Viewport{Width: 10, Height: 10, PixelRatio: 1})
	if !errors.Is(err, ErrNoContext) {
		t.Fatalf("err = %v, want ErrNoContext", err)
	}
	if !b.Unavailable() || b.Ready() {
		t.Error("binding should be unavailable")
	}
	b.Render(&Frame{})
	b.Release()
	b.Release()
}

func TestBindingReleaseOnce(t *testing.T) {
	s := &fakeSurface{}
	b := NewBinding(s, newCamera(DefaultConfig()), 2)
	_ = b.Bind(Viewport{Width: 10, Height: 10, PixelRatio: 1})
	b.Release()
	b.Release()
	if s.target.released != 1 {
		t.Errorf("released %d times, want 1", s.target.released)
	}
	if changed, _ := b.Resize(Viewport{Width: 20, Height: 20}); changed {
		t.Error("resize after release reported a change")
	}
	b.Render(&Frame{})
	if s.target.draws != 0 {
		t.Error("draw after release")
	}
}
