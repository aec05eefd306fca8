package window

import (
	"fmt"
	"image"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/backdrop"
	"github.com/phanxgames/backdrop/raster"
)

// screenshots queues labels and writes the presented screen as image files
// at the end of Draw.
type screenshots struct {
	dir    string
	format raster.Format
	queue  []string
}

// request queues a labeled capture of the next presented frame.
func (s *screenshots) request(label string) {
	s.queue = append(s.queue, label)
}

// flush captures screen for every queued label. Called at the end of Draw.
func (s *screenshots) flush(screen *ebiten.Image) {
	if len(s.queue) == 0 {
		return
	}
	defer func() { s.queue = s.queue[:0] }()

	bounds := screen.Bounds()
	pixels := make([]byte, 4*bounds.Dx()*bounds.Dy())
	screen.ReadPixels(pixels)
	img := unpremultiply(pixels, bounds.Dx(), bounds.Dy())

	stamp := time.Now().Format("20060102_150405")
	for _, label := range s.queue {
		path := filepath.Join(s.dir, fmt.Sprintf("%s_%s.%s", stamp, backdrop.SanitizeLabel(label), s.format))
		if err := raster.WriteFile(path, img, s.format); err != nil {
			logf("screenshot: %v", err)
			continue
		}
		logf("screenshot: wrote %s", path)
	}
}

// unpremultiply converts premultiplied RGBA pixels to a straight-alpha image.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i+3 < len(pixels) && i+3 < len(img.Pix); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = a
	}
	return img
}
