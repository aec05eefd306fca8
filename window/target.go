package window

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/backdrop"
)

// lineWidth is the on-screen thickness of wireframe edges in pixels.
const lineWidth = 1

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image used as
// the source for every untextured quad.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}

// ebitenBlend maps a material blend mode to the ebiten blend.
func ebitenBlend(b backdrop.BlendMode) ebiten.Blend {
	switch b {
	case backdrop.BlendAdd:
		return ebiten.BlendLighter
	default:
		return ebiten.BlendSourceOver
	}
}

// Surface creates ebiten offscreen images as render targets.
type Surface struct{}

// NewTarget allocates a w×h offscreen image.
func (Surface) NewTarget(w, h int) (backdrop.RenderTarget, error) {
	return &Target{img: ebiten.NewImage(w, h)}, nil
}

// Target is an offscreen ebiten image that frames are drawn into. Draw only
// records the frame; the image is redrawn during Present so every GPU call
// happens inside ebiten's Draw.
type Target struct {
	img   *ebiten.Image
	verts []ebiten.Vertex
	inds  []uint32
	frame *backdrop.Frame
}

// Size returns the image size in pixels.
func (t *Target) Size() (int, int) {
	if t.img == nil {
		return 0, 0
	}
	b := t.img.Bounds()
	return b.Dx(), b.Dy()
}

// Resize replaces the image with a w×h one.
func (t *Target) Resize(w, h int) {
	if t.img != nil {
		t.img.Deallocate()
	}
	t.img = ebiten.NewImage(w, h)
}

// Draw records f for the next Present.
func (t *Target) Draw(f *backdrop.Frame) {
	t.frame = f
}

// Release deallocates the image.
func (t *Target) Release() {
	if t.img != nil {
		t.img.Deallocate()
		t.img = nil
	}
	t.frame = nil
}

// Image returns the backing image, or nil once released.
func (t *Target) Image() *ebiten.Image {
	return t.img
}

// Present rasterizes the last recorded frame and draws it onto screen,
// scaled to fill it.
func (t *Target) Present(screen *ebiten.Image) {
	if t.img == nil {
		return
	}
	t.img.Clear()
	if t.frame != nil {
		for i := range t.frame.Batches {
			t.submitBatch(&t.frame.Batches[i])
		}
	}
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	tw, th := t.Size()
	var op ebiten.DrawImageOptions
	if tw > 0 && th > 0 && (tw != sw || th != sh) {
		op.GeoM.Scale(float64(sw)/float64(tw), float64(sh)/float64(th))
		op.Filter = ebiten.FilterLinear
	}
	screen.DrawImage(t.img, &op)
}

// submitBatch draws all primitives of b using a single DrawTriangles32 call.
func (t *Target) submitBatch(b *backdrop.Batch) {
	t.verts = t.verts[:0]
	t.inds = t.inds[:0]
	r, g, bl, a := premultiplied(b.Color, b.Alpha)
	switch b.Primitive {
	case backdrop.PrimitivePoints:
		t.verts, t.inds = appendPointQuads(t.verts, t.inds, b.Coords, r, g, bl, a)
	case backdrop.PrimitiveLines:
		t.verts, t.inds = appendLineQuads(t.verts, t.inds, b.Coords, lineWidth, r, g, bl, a)
	}
	if len(t.verts) == 0 {
		return
	}

	var triOp ebiten.DrawTrianglesOptions
	triOp.Blend = ebitenBlend(b.BlendMode)
	triOp.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha

	t.img.DrawTriangles32(t.verts, t.inds, ensureWhitePixel(), &triOp)
}

// premultiplied returns the vertex color for c at the given alpha.
func premultiplied(c backdrop.Color, alpha float64) (r, g, b, a float32) {
	a = float32(c.A * alpha)
	return float32(c.R) * a, float32(c.G) * a, float32(c.B) * a, a
}

// appendQuad appends four corners (TL, TR, BL, BR) and two triangles.
func appendQuad(verts []ebiten.Vertex, inds []uint32, xs, ys [4]float32, r, g, b, a float32) ([]ebiten.Vertex, []uint32) {
	base := uint32(len(verts))
	for j := 0; j < 4; j++ {
		verts = append(verts, ebiten.Vertex{
			DstX:   xs[j],
			DstY:   ys[j],
			SrcX:   0.5,
			SrcY:   0.5,
			ColorR: r,
			ColorG: g,
			ColorB: b,
			ColorA: a,
		})
	}
	// Two triangles: TL-TR-BL, TR-BR-BL
	inds = append(inds,
		base+0, base+1, base+2,
		base+1, base+3, base+2,
	)
	return verts, inds
}

// appendPointQuads turns x, y, size triples into centered square sprites.
func appendPointQuads(verts []ebiten.Vertex, inds []uint32, coords []float32, r, g, b, a float32) ([]ebiten.Vertex, []uint32) {
	for i := 0; i+2 < len(coords); i += 3 {
		x, y, half := coords[i], coords[i+1], coords[i+2]/2
		verts, inds = appendQuad(verts, inds,
			[4]float32{x - half, x + half, x - half, x + half},
			[4]float32{y - half, y - half, y + half, y + half},
			r, g, b, a)
	}
	return verts, inds
}

// appendLineQuads turns x0, y0, x1, y1 segments into thin quads of the given
// width. Zero-length segments are skipped.
func appendLineQuads(verts []ebiten.Vertex, inds []uint32, coords []float32, width float32, r, g, b, a float32) ([]ebiten.Vertex, []uint32) {
	for i := 0; i+3 < len(coords); i += 4 {
		x0, y0, x1, y1 := coords[i], coords[i+1], coords[i+2], coords[i+3]
		nx, ny, ok := lineNormal(x0, y0, x1, y1, width/2)
		if !ok {
			continue
		}
		verts, inds = appendQuad(verts, inds,
			[4]float32{x0 + nx, x1 + nx, x0 - nx, x1 - nx},
			[4]float32{y0 + ny, y1 + ny, y0 - ny, y1 - ny},
			r, g, b, a)
	}
	return verts, inds
}

// lineNormal returns the perpendicular of the segment scaled to half, or
// false for a degenerate segment.
func lineNormal(x0, y0, x1, y1, half float32) (nx, ny float32, ok bool) {
	dx, dy := float64(x1-x0), float64(y1-y0)
	l := math.Hypot(dx, dy)
	if l < 1e-6 {
		return 0, 0, false
	}
	return float32(-dy / l * float64(half)), float32(dx / l * float64(half)), true
}
