package raster

import (
	"errors"
	"fmt"

	"github.com/phanxgames/backdrop"
)

// ErrNoTarget is returned when a capture is requested before the engine has
// bound a canvas, e.g. for a zero-sized viewport.
var ErrNoTarget = errors.New("no render target bound")

// Headless runs an engine against a Canvas on a manual clock, one frame per
// Step. It backs offline snapshots and tests.
type Headless struct {
	Engine *backdrop.Engine
	Clock  *backdrop.ManualClock
	Queue  backdrop.FrameQueue
	Hero   *backdrop.Dispatcher
	Window *backdrop.Dispatcher
	Theme  *backdrop.AttributeSignal
}

// NewHeadless creates and starts an engine sized to vp.
func NewHeadless(cfg backdrop.Config, vp backdrop.Viewport, dark bool, supersample int) (*Headless, error) {
	class := ""
	if dark {
		class = backdrop.DefaultDarkToken
	}
	h := &Headless{
		Clock:  &backdrop.ManualClock{},
		Hero:   backdrop.NewDispatcher(backdrop.Rect{Width: vp.Width, Height: vp.Height}),
		Window: backdrop.NewDispatcher(backdrop.Rect{}),
		Theme:  backdrop.NewAttributeSignal(class),
	}
	e, err := backdrop.NewEngine(cfg, backdrop.Host{
		Surface: Surface{
			Supersample: supersample,
			Background:  func() backdrop.Color { return h.Engine.Theme().Current().Background },
		},
		Hero:     h.Hero,
		Window:   h.Window,
		Viewport: vp,
		Theme:    h.Theme,
		Frames:   &h.Queue,
		Clock:    h.Clock,
	})
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}
	h.Engine = e
	if err := e.Start(); err != nil {
		return nil, fmt.Errorf("start engine: %w", err)
	}
	return h, nil
}

// Step advances the clock by dt seconds and runs one frame.
func (h *Headless) Step(dt float64) {
	h.Clock.Advance(dt)
	h.Queue.RunFrame()
}

// Canvas returns the bound canvas, or nil.
func (h *Headless) Canvas() *Canvas {
	c, _ := h.Engine.Binding().Target().(*Canvas)
	return c
}

// Capture writes the last drawn frame to path.
func (h *Headless) Capture(path string, f Format) error {
	c := h.Canvas()
	if c == nil {
		return ErrNoTarget
	}
	return WriteFile(path, c.Image(), f)
}

// Targets returns the script targets for this host.
func (h *Headless) Targets(snapshot func(label string)) backdrop.ScriptTargets {
	return backdrop.ScriptTargets{
		Hero:     h.Hero,
		Window:   h.Window,
		Theme:    h.Theme,
		Snapshot: snapshot,
	}
}

// Close stops the engine.
func (h *Headless) Close() {
	h.Engine.Stop()
}
