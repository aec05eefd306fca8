package backdrop

import (
	"errors"
	"image/color"
	"math"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default material color.
var ColorWhite = Color{1, 1, 1, 1}

// ColorFromHex builds an opaque Color from a 0xRRGGBB value.
func ColorFromHex(hex uint32) Color {
	return Color{
		R: float64((hex>>16)&0xff) / 255,
		G: float64((hex>>8)&0xff) / 255,
		B: float64(hex&0xff) / 255,
		A: 1,
	}
}

// Hex returns the color as a 0xRRGGBB value. Alpha is dropped.
func (c Color) Hex() uint32 {
	r, g, b := c.RGB8()
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// RGB8 returns the color channels scaled to 0-255 and clamped.
func (c Color) RGB8() (r, g, b uint8) {
	return channel8(c.R), channel8(c.G), channel8(c.B)
}

// RGBA converts to a straight-alpha color.RGBA with the given alpha multiplier.
func (c Color) RGBA(alpha float64) color.RGBA {
	r, g, b := c.RGB8()
	return color.RGBA{R: r, G: g, B: b, A: channel8(c.A * alpha)}
}

func channel8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(v * 255))
}

// Vec3 is a 3D vector used for positions and Euler rotations.
type Vec3 struct {
	X, Y, Z float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// BlendMode selects a compositing operation for a material.
type BlendMode uint8

const (
	BlendNormal BlendMode = iota // source-over (standard alpha blending)
	BlendAdd                     // additive / lighter
)

// Viewport describes the CSS pixel size of the hosting element and the
// device pixel density of the display it is shown on.
type Viewport struct {
	Width, Height float64
	PixelRatio    float64
}

var (
	// ErrNoContext is returned by a Surface that cannot create a render
	// target (no graphics support). The engine degrades to a static
	// background when it sees this error.
	ErrNoContext = errors.New("backdrop: rendering context unavailable")

	// ErrStopped is returned by Engine.Start once the engine has been torn down.
	ErrStopped = errors.New("backdrop: engine stopped")

	// ErrIncompleteHost is returned by NewEngine when a required Host field is nil.
	ErrIncompleteHost = errors.New("backdrop: incomplete host")
)
