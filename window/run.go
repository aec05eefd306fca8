// Package window hosts the hero background in a native window using ebiten.
//
// The engine is driven from ebiten's Update: the polled cursor is turned into
// pointer events, the optional script is stepped, and the frame queue is run
// once. Draw clears to the theme background and presents the render target.
//
//	cfg := backdrop.DefaultConfig()
//	if err := window.Run(cfg, window.RunConfig{Title: "hero", Width: 1280, Height: 720}); err != nil {
//		log.Fatal(err)
//	}
//
// Press T to toggle the theme and Esc to quit.
package window

import (
	"errors"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/backdrop"
	"github.com/phanxgames/backdrop/raster"
)

// RunConfig holds window and host options for Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// Dark starts the page in dark mode.
	Dark bool
	// ShowFPS draws an FPS/TPS overlay.
	ShowFPS bool
	// Script, if set, is stepped once per frame.
	Script *backdrop.Script
	// ExitWhenDone closes the window once Script has finished and every
	// requested screenshot is written.
	ExitWhenDone bool
	// ScreenshotDir receives snapshot steps. Defaults to "screenshots".
	ScreenshotDir string
	// ScreenshotFormat is the snapshot file format. Defaults to PNG.
	ScreenshotFormat raster.Format
}

func logf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "[backdrop] "+format+"\n", args...)
}

// game implements ebiten.Game.
type game struct {
	cfg     backdrop.Config
	rc      RunConfig
	engine  *backdrop.Engine
	queue   backdrop.FrameQueue
	hero    *backdrop.Dispatcher
	window  *backdrop.Dispatcher
	theme   *backdrop.AttributeSignal
	hover   backdrop.PointerHover
	fps     *fpsOverlay
	shots   screenshots
	started bool
	exiting bool

	viewport backdrop.Viewport
	// scale converts screen pixels back to window (CSS) units.
	scale float64
}

// Run opens a window and animates the background until it is closed. It
// blocks and tears the engine down before returning.
func Run(cfg backdrop.Config, rc RunConfig) error {
	if rc.Width <= 0 {
		rc.Width = 1280
	}
	if rc.Height <= 0 {
		rc.Height = 720
	}
	if rc.Title == "" {
		rc.Title = "backdrop"
	}
	if rc.ScreenshotDir == "" {
		rc.ScreenshotDir = "screenshots"
	}
	if rc.ScreenshotFormat == "" {
		rc.ScreenshotFormat = raster.FormatPNG
	}

	g, err := newGame(cfg, rc)
	if err != nil {
		return err
	}
	defer g.engine.Stop()

	ebiten.SetWindowTitle(rc.Title)
	ebiten.SetWindowSize(rc.Width, rc.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}

func newGame(cfg backdrop.Config, rc RunConfig) (*game, error) {
	class := ""
	if rc.Dark {
		class = backdrop.DefaultDarkToken
	}
	vp := backdrop.Viewport{Width: float64(rc.Width), Height: float64(rc.Height), PixelRatio: 1}
	g := &game{
		cfg:      cfg,
		rc:       rc,
		hero:     backdrop.NewDispatcher(backdrop.Rect{Width: vp.Width, Height: vp.Height}),
		window:   backdrop.NewDispatcher(backdrop.Rect{}),
		theme:    backdrop.NewAttributeSignal(class),
		shots:    screenshots{dir: rc.ScreenshotDir, format: rc.ScreenshotFormat},
		viewport: vp,
		scale:    1,
	}
	e, err := backdrop.NewEngine(cfg, backdrop.Host{
		Surface:  Surface{},
		Hero:     g.hero,
		Window:   g.window,
		Viewport: vp,
		Theme:    g.theme,
		Frames:   &g.queue,
	})
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}
	g.engine = e
	return g, nil
}

func (g *game) Update() error {
	if !g.started {
		g.started = true
		if g.rc.ShowFPS {
			g.fps = newFPSOverlay()
		}
		if err := g.engine.Start(); err != nil {
			return err
		}
		// Layout may already have seen the real window size and density.
		g.window.Resize(g.viewport)
	}
	if g.exiting && len(g.shots.queue) == 0 {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		g.theme.Toggle()
	}

	cx, cy := ebiten.CursorPosition()
	g.hover.Update(g.hero, float64(cx)/g.scale, float64(cy)/g.scale, ebiten.IsFocused())

	if s := g.rc.Script; s != nil && !s.Done() {
		s.Step(backdrop.ScriptTargets{
			Hero:     g.hero,
			Window:   g.window,
			Theme:    g.theme,
			Snapshot: g.shots.request,
		})
		if s.Done() && g.rc.ExitWhenDone {
			g.exiting = true
		}
	}

	g.queue.RunFrame()

	if g.fps != nil {
		g.fps.update(1/float64(ebiten.TPS()), g.engine.Ticks())
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(g.engine.Theme().Current().Background.RGBA(1))
	if t, ok := g.engine.Binding().Target().(*Target); ok {
		t.Present(screen)
	}
	if g.fps != nil {
		g.fps.draw(screen)
	}
	g.shots.flush(screen)
}

// Layout forwards window size and density changes to the engine as resize
// events and sizes the screen to the render target.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	vp := backdrop.Viewport{
		Width:      float64(outsideWidth),
		Height:     float64(outsideHeight),
		PixelRatio: ebiten.Monitor().DeviceScaleFactor(),
	}
	if vp != g.viewport {
		g.viewport = vp
		g.hero.SetBounds(backdrop.Rect{Width: vp.Width, Height: vp.Height})
		g.window.Resize(vp)
	}
	return screenSize(g.engine.Binding(), outsideWidth, outsideHeight, &g.scale)
}

// screenSize returns the bound target size, or the window size before a
// target exists, and stores the screen-to-window scale in scale.
func screenSize(b *backdrop.Binding, outsideWidth, outsideHeight int, scale *float64) (int, int) {
	w, h := b.PixelSize()
	if w <= 0 || h <= 0 || outsideWidth <= 0 {
		*scale = 1
		return max(outsideWidth, 1), max(outsideHeight, 1)
	}
	*scale = float64(w) / float64(outsideWidth)
	return w, h
}
