package backdrop

import (
	"fmt"
	"math"
)

// RenderTarget is a GPU- or CPU-side pixel buffer that frames are rasterized
// into before being presented on the drawable surface.
type RenderTarget interface {
	// Size returns the current size in pixels.
	Size() (w, h int)
	// Resize reallocates the buffer. Only called with changed, nonzero sizes.
	Resize(w, h int)
	// Draw rasterizes one frame. The frame's buffers are reused after Draw returns.
	Draw(f *Frame)
	// Release frees the buffer. Called exactly once.
	Release()
}

// Surface is the drawable surface handle supplied by the host. NewTarget
// returns an error wrapping ErrNoContext when no rendering context can be
// created.
type Surface interface {
	NewTarget(w, h int) (RenderTarget, error)
}

// PixelSize converts a CSS length to render-target pixels using the device
// pixel ratio capped at maxRatio. A non-positive ratio counts as 1.
func PixelSize(css, ratio, maxRatio float64) int {
	return int(math.Floor(css * EffectiveRatio(ratio, maxRatio)))
}

// EffectiveRatio returns min(ratio, maxRatio), treating non-positive ratios as 1.
func EffectiveRatio(ratio, maxRatio float64) float64 {
	if ratio <= 0 {
		ratio = 1
	}
	if maxRatio > 0 && ratio > maxRatio {
		return maxRatio
	}
	return ratio
}

// Binding ties a Surface to a render target sized to the hosting element and
// keeps the camera aspect in sync with it.
type Binding struct {
	surface  Surface
	camera   *Camera
	maxRatio float64

	target   RenderTarget
	viewport Viewport
	pxW, pxH int

	unavailable bool
	released    bool
	allocs      int
}

// NewBinding creates an unbound binding.
func NewBinding(surface Surface, camera *Camera, maxRatio float64) *Binding {
	return &Binding{surface: surface, camera: camera, maxRatio: maxRatio}
}

// Bind performs the initial sizing. A zero-extent viewport defers target
// creation to the first nonzero Resize. The returned error wraps
// ErrNoContext when the surface cannot create a target; the binding then
// stays unavailable and renders nothing.
func (b *Binding) Bind(vp Viewport) error {
	return b.resize(vp)
}

// Resize recomputes the camera aspect and resizes the target. A zero width or
// height is skipped without touching the camera; unchanged dimensions do not
// reallocate. It reports whether anything changed.
func (b *Binding) Resize(vp Viewport) (bool, error) {
	if b.released || vp.Width <= 0 || vp.Height <= 0 {
		return false, nil
	}
	if vp == b.viewport && (b.target != nil || b.unavailable) {
		return false, nil
	}
	return true, b.resize(vp)
}

func (b *Binding) resize(vp Viewport) error {
	if b.released || vp.Width <= 0 || vp.Height <= 0 {
		return nil
	}
	b.viewport = vp
	b.camera.SetAspect(vp.Width / vp.Height)

	w := PixelSize(vp.Width, vp.PixelRatio, b.maxRatio)
	h := PixelSize(vp.Height, vp.PixelRatio, b.maxRatio)
	if w <= 0 || h <= 0 || b.unavailable {
		return nil
	}

	if b.target == nil {
		t, err := b.surface.NewTarget(w, h)
		if err != nil {
			b.unavailable = true
			return fmt.Errorf("create render target %dx%d: %w", w, h, err)
		}
		b.target = t
		b.allocs++
		b.pxW, b.pxH = w, h
		return nil
	}
	if w == b.pxW && h == b.pxH {
		return nil
	}
	b.target.Resize(w, h)
	b.allocs++
	b.pxW, b.pxH = w, h
	return nil
}

// PixelSize returns the render target size in pixels, or zero when no
// target is bound.
func (b *Binding) PixelSize() (w, h int) {
	if b.target == nil {
		return 0, 0
	}
	return b.pxW, b.pxH
}

// Viewport returns the last applied viewport.
func (b *Binding) Viewport() Viewport {
	return b.viewport
}

// Target returns the bound render target, or nil.
func (b *Binding) Target() RenderTarget {
	return b.target
}

// Ready reports whether frames can be drawn.
func (b *Binding) Ready() bool {
	return b.target != nil && !b.released
}

// Unavailable reports whether the surface failed to create a target.
func (b *Binding) Unavailable() bool {
	return b.unavailable
}

// Allocations returns how many times a target buffer was created or resized.
func (b *Binding) Allocations() int {
	return b.allocs
}

// Render submits f to the target. No-op until a target is bound.
func (b *Binding) Render(f *Frame) {
	if !b.Ready() {
		return
	}
	b.target.Draw(f)
}

// Release frees the render target. Safe to call twice.
func (b *Binding) Release() {
	if b.released {
		return
	}
	b.released = true
	if b.target != nil {
		b.target.Release()
		b.target = nil
	}
}
