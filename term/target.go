// Package term hosts the hero background in a terminal using tcell. Each
// character cell shows two vertically stacked pixels with the upper half
// block glyph: the foreground colors the top pixel, the background the bottom.
package term

import (
	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/backdrop"
	"github.com/phanxgames/backdrop/raster"
)

// halfBlock is drawn in every cell.
const halfBlock = '▀'

// Viewport returns the viewport for a terminal of cols×rows cells: one CSS
// pixel per column and two per row.
func Viewport(cols, rows int) backdrop.Viewport {
	return backdrop.Viewport{Width: float64(cols), Height: float64(rows * 2), PixelRatio: 1}
}

// CellToClient maps a cell to the client coordinates of its center.
func CellToClient(x, y int) (float64, float64) {
	return float64(x) + 0.5, float64(y*2) + 1
}

// Surface creates terminal render targets on a tcell screen.
type Surface struct {
	Screen tcell.Screen
	// Supersample renders each pixel at this multiple before averaging.
	Supersample int
	// Background returns the color frames are cleared to.
	Background func() backdrop.Color
}

// NewTarget creates a target of w×h pixels, i.e. w columns and h/2 rows.
func (s Surface) NewTarget(w, h int) (backdrop.RenderTarget, error) {
	return &Target{
		screen: s.Screen,
		canvas: raster.NewCanvas(w, h, s.Supersample, s.Background),
	}, nil
}

// Target rasterizes frames with a raster.Canvas and writes them into the
// screen's cell buffer. The caller decides when to Show the screen.
type Target struct {
	screen tcell.Screen
	canvas *raster.Canvas
}

// Size returns the pixel size.
func (t *Target) Size() (int, int) { return t.canvas.Size() }

// Resize reallocates the pixel buffer.
func (t *Target) Resize(w, h int) { t.canvas.Resize(w, h) }

// Canvas returns the underlying pixel buffer.
func (t *Target) Canvas() *raster.Canvas { return t.canvas }

// Draw rasterizes f and copies it into the cell buffer.
func (t *Target) Draw(f *backdrop.Frame) {
	t.canvas.Draw(f)
	w, h := t.canvas.Size()
	for y := 0; y < h; y += 2 {
		for x := 0; x < w; x++ {
			tr, tg, tb := t.canvas.RGB8(x, y)
			br, bg, bb := tr, tg, tb
			if y+1 < h {
				br, bg, bb = t.canvas.RGB8(x, y+1)
			}
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(tr), int32(tg), int32(tb))).
				Background(tcell.NewRGBColor(int32(br), int32(bg), int32(bb)))
			t.screen.SetContent(x, y/2, halfBlock, nil, style)
		}
	}
}

// Release drops the pixel buffer and clears the screen.
func (t *Target) Release() {
	t.canvas.Release()
	t.screen.Clear()
}
