// Package raster is a software render target for the hero background. Frames
// are rasterized into a floating point RGB buffer, optionally supersampled,
// and exported as images for snapshots or terminal output.
package raster

import (
	"image"
	"math"

	"golang.org/x/image/draw"

	"github.com/phanxgames/backdrop"
)

// Surface creates Canvas render targets.
type Surface struct {
	// Supersample renders at this multiple of the target size and
	// downsamples on export. Values below 1 count as 1.
	Supersample int
	// Background returns the color each frame is cleared to. Nil clears to
	// black.
	Background func() backdrop.Color
}

// NewTarget allocates a w×h canvas.
func (s Surface) NewTarget(w, h int) (backdrop.RenderTarget, error) {
	return NewCanvas(w, h, s.Supersample, s.Background), nil
}

// Canvas is a CPU-side RGB buffer. It implements backdrop.RenderTarget.
type Canvas struct {
	w, h       int
	ss         int
	pix        []float32 // RGB interleaved at supersampled size
	background func() backdrop.Color
	frames     int
}

// NewCanvas allocates a canvas of w×h output pixels.
func NewCanvas(w, h, supersample int, background func() backdrop.Color) *Canvas {
	if supersample < 1 {
		supersample = 1
	}
	c := &Canvas{ss: supersample, background: background}
	c.Resize(w, h)
	return c
}

// Size returns the output size in pixels.
func (c *Canvas) Size() (int, int) { return c.w, c.h }

// Supersample returns the supersampling factor.
func (c *Canvas) Supersample() int { return c.ss }

// Frames returns the number of frames drawn.
func (c *Canvas) Frames() int { return c.frames }

// Resize reallocates the buffer for w×h output pixels.
func (c *Canvas) Resize(w, h int) {
	c.w, c.h = max(w, 0), max(h, 0)
	n := c.w * c.ss * c.h * c.ss * 3
	if cap(c.pix) >= n {
		c.pix = c.pix[:n]
	} else {
		c.pix = make([]float32, n)
	}
}

// Release drops the buffer.
func (c *Canvas) Release() {
	c.pix = nil
	c.w, c.h = 0, 0
}

// Draw clears the canvas to the background and rasterizes every batch of f
// in order. Frame coordinates are scaled from f's size to the canvas.
func (c *Canvas) Draw(f *backdrop.Frame) {
	if c.pix == nil {
		return
	}
	c.frames++
	bg := backdrop.Color{}
	if c.background != nil {
		bg = c.background()
	}
	c.clear(bg)

	sx, sy := float32(c.ss), float32(c.ss)
	if f.Width > 0 && f.Height > 0 {
		sx = float32(c.w*c.ss) / float32(f.Width)
		sy = float32(c.h*c.ss) / float32(f.Height)
	}
	for i := range f.Batches {
		b := &f.Batches[i]
		col := [3]float32{float32(b.Color.R), float32(b.Color.G), float32(b.Color.B)}
		a := float32(b.Color.A * b.Alpha)
		if a <= 0 {
			continue
		}
		switch b.Primitive {
		case backdrop.PrimitivePoints:
			for j := 0; j+2 < len(b.Coords); j += 3 {
				c.fillSquare(b.Coords[j]*sx, b.Coords[j+1]*sy, b.Coords[j+2]*sx, col, a, b.BlendMode)
			}
		case backdrop.PrimitiveLines:
			for j := 0; j+3 < len(b.Coords); j += 4 {
				c.line(b.Coords[j]*sx, b.Coords[j+1]*sy, b.Coords[j+2]*sx, b.Coords[j+3]*sy, col, a, b.BlendMode)
			}
		}
	}
}

func (c *Canvas) clear(bg backdrop.Color) {
	r, g, b := float32(bg.R), float32(bg.G), float32(bg.B)
	for i := 0; i+2 < len(c.pix); i += 3 {
		c.pix[i], c.pix[i+1], c.pix[i+2] = r, g, b
	}
}

// blend composites one pixel at supersampled coordinates (x, y).
func (c *Canvas) blend(x, y int, col [3]float32, a float32, mode backdrop.BlendMode) {
	bw, bh := c.w*c.ss, c.h*c.ss
	if x < 0 || y < 0 || x >= bw || y >= bh {
		return
	}
	i := (y*bw + x) * 3
	p := c.pix[i : i+3 : i+3]
	switch mode {
	case backdrop.BlendAdd:
		p[0] += col[0] * a
		p[1] += col[1] * a
		p[2] += col[2] * a
	default:
		p[0] += (col[0] - p[0]) * a
		p[1] += (col[1] - p[1]) * a
		p[2] += (col[2] - p[2]) * a
	}
}

// fillSquare draws a size×size square centered on (cx, cy).
func (c *Canvas) fillSquare(cx, cy, size float32, col [3]float32, a float32, mode backdrop.BlendMode) {
	half := size / 2
	x0 := int(math.Floor(float64(cx - half)))
	y0 := int(math.Floor(float64(cy - half)))
	n := max(int(math.Round(float64(size))), 1)
	for y := y0; y < y0+n; y++ {
		for x := x0; x < x0+n; x++ {
			c.blend(x, y, col, a, mode)
		}
	}
}

// line draws a segment one supersampled-pixel wide per output pixel with a
// DDA walk. Each covered pixel is blended once.
func (c *Canvas) line(x0, y0, x1, y1 float32, col [3]float32, a float32, mode backdrop.BlendMode) {
	dx, dy := float64(x1-x0), float64(y1-y0)
	steps := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy))))
	if steps == 0 {
		c.blend(int(x0), int(y0), col, a, mode)
		return
	}
	// Skip segments entirely off-canvas.
	bw, bh := float32(c.w*c.ss), float32(c.h*c.ss)
	if (x0 < 0 && x1 < 0) || (y0 < 0 && y1 < 0) || (x0 >= bw && x1 >= bw) || (y0 >= bh && y1 >= bh) {
		return
	}
	ix, iy := dx/float64(steps), dy/float64(steps)
	x, y := float64(x0), float64(y0)
	px, py := math.MinInt, math.MinInt
	for s := 0; s <= steps; s++ {
		cx, cy := int(math.Floor(x)), int(math.Floor(y))
		if cx != px || cy != py {
			for t := 0; t < c.ss; t++ {
				if math.Abs(dx) >= math.Abs(dy) {
					c.blend(cx, cy+t, col, a, mode)
				} else {
					c.blend(cx+t, cy, col, a, mode)
				}
			}
			px, py = cx, cy
		}
		x += ix
		y += iy
	}
}

// RGB8 returns the color of output pixel (x, y), averaging supersamples.
func (c *Canvas) RGB8(x, y int) (r, g, b uint8) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h || c.pix == nil {
		return 0, 0, 0
	}
	bw := c.w * c.ss
	var sum [3]float32
	for j := 0; j < c.ss; j++ {
		for i := 0; i < c.ss; i++ {
			o := ((y*c.ss+j)*bw + x*c.ss + i) * 3
			sum[0] += c.pix[o]
			sum[1] += c.pix[o+1]
			sum[2] += c.pix[o+2]
		}
	}
	n := float32(c.ss * c.ss)
	return to8(sum[0] / n), to8(sum[1] / n), to8(sum[2] / n)
}

// Image exports the canvas as an opaque image at output size. A supersampled
// canvas is downsampled with a Catmull-Rom filter.
func (c *Canvas) Image() *image.RGBA {
	bw, bh := c.w*c.ss, c.h*c.ss
	full := image.NewRGBA(image.Rect(0, 0, bw, bh))
	for i, j := 0, 0; i+2 < len(c.pix) && j+3 < len(full.Pix); i, j = i+3, j+4 {
		full.Pix[j] = to8(c.pix[i])
		full.Pix[j+1] = to8(c.pix[i+1])
		full.Pix[j+2] = to8(c.pix[i+2])
		full.Pix[j+3] = 255
	}
	if c.ss == 1 {
		return full
	}
	dst := image.NewRGBA(image.Rect(0, 0, c.w, c.h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), full, full.Bounds(), draw.Src, nil)
	return dst
}

func to8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
