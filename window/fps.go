package window

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsOverlay displays the current FPS and TPS in the top-left corner. The
// text is refreshed every ~0.5 seconds and rendered with ebitenutil.DebugPrint
// into its own image.
type fpsOverlay struct {
	img        *ebiten.Image
	lastUpdate float64
	ticks      uint64
}

func newFPSOverlay() *fpsOverlay {
	// 140x48 is enough for "FPS: 60.0\nTPS: 60.0\nTick: 123456"
	return &fpsOverlay{img: ebiten.NewImage(140, 48), lastUpdate: 0.5}
}

// update refreshes the text when due. dt is in seconds.
func (o *fpsOverlay) update(dt float64, ticks uint64) {
	o.lastUpdate += dt
	if o.lastUpdate < 0.5 {
		return
	}
	o.lastUpdate = 0
	o.ticks = ticks

	o.img.Clear()
	// Semi-transparent background for readability
	o.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(o.img, fpsText(ebiten.ActualFPS(), ebiten.ActualTPS(), ticks))
}

func (o *fpsOverlay) draw(screen *ebiten.Image) {
	screen.DrawImage(o.img, nil)
}

func fpsText(fps, tps float64, ticks uint64) string {
	return fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nTick: %d", fps, tps, ticks)
}
