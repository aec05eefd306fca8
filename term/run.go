package term

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/backdrop"
)

// DefaultFrameInterval is the display frame period of the terminal host.
const DefaultFrameInterval = 16 * time.Millisecond

// RunConfig holds host options for Run.
type RunConfig struct {
	// Dark starts the page in dark mode.
	Dark bool
	// Supersample is passed to the render target. Defaults to 2.
	Supersample int
	// FrameInterval is the tick period. Defaults to DefaultFrameInterval.
	FrameInterval time.Duration
	// Script, if set, is stepped once per frame.
	Script *backdrop.Script
	// ExitWhenDone returns once Script has finished.
	ExitWhenDone bool
	// Snapshot receives script snapshot steps together with the target.
	Snapshot func(label string, t *Target)
}

// host owns the engine and its simulated page for one terminal session.
type host struct {
	screen tcell.Screen
	rc     RunConfig
	engine *backdrop.Engine
	queue  backdrop.FrameQueue
	hero   *backdrop.Dispatcher
	window *backdrop.Dispatcher
	theme  *backdrop.AttributeSignal
	hover  backdrop.PointerHover
	shots  []string
	cols   int
	rows   int
}

// Run takes over the terminal and animates the background until ctx is
// cancelled or the user presses q, Esc or Ctrl-C. T toggles the theme.
func Run(ctx context.Context, cfg backdrop.Config, rc RunConfig) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("new screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.EnableFocus()
	screen.HideCursor()
	return RunScreen(ctx, screen, cfg, rc)
}

// RunScreen runs on an initialized screen. The caller keeps ownership of the
// screen and must Fini it.
func RunScreen(ctx context.Context, screen tcell.Screen, cfg backdrop.Config, rc RunConfig) error {
	h, err := newHost(screen, cfg, rc)
	if err != nil {
		return err
	}
	if err := h.engine.Start(); err != nil {
		return err
	}
	defer h.engine.Stop()

	done := make(chan struct{})
	defer close(done)
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(h.rc.FrameInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !h.handle(ev) {
				return nil
			}
		case <-ticker.C:
			if !h.frame() {
				return nil
			}
		}
	}
}

func newHost(screen tcell.Screen, cfg backdrop.Config, rc RunConfig) (*host, error) {
	if rc.Supersample <= 0 {
		rc.Supersample = 2
	}
	if rc.FrameInterval <= 0 {
		rc.FrameInterval = DefaultFrameInterval
	}
	class := ""
	if rc.Dark {
		class = backdrop.DefaultDarkToken
	}
	cols, rows := screen.Size()
	vp := Viewport(cols, rows)
	h := &host{
		screen: screen,
		rc:     rc,
		hero:   backdrop.NewDispatcher(backdrop.Rect{Width: vp.Width, Height: vp.Height}),
		window: backdrop.NewDispatcher(backdrop.Rect{}),
		theme:  backdrop.NewAttributeSignal(class),
		cols:   cols,
		rows:   rows,
	}
	e, err := backdrop.NewEngine(cfg, backdrop.Host{
		Surface: Surface{
			Screen:      screen,
			Supersample: rc.Supersample,
			Background:  func() backdrop.Color { return h.engine.Theme().Current().Background },
		},
		Hero:     h.hero,
		Window:   h.window,
		Viewport: vp,
		Theme:    h.theme,
		Frames:   &h.queue,
	})
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}
	h.engine = e
	return h, nil
}

// handle applies one terminal event. It returns false to quit.
func (h *host) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return h.key(ev.Key(), ev.Rune())
	case *tcell.EventMouse:
		x, y := CellToClient(ev.Position())
		h.hover.Update(h.hero, x, y, true)
	case *tcell.EventFocus:
		if !ev.Focused {
			h.hover.Update(h.hero, 0, 0, false)
		}
	case *tcell.EventResize:
		cols, rows := ev.Size()
		if cols == h.cols && rows == h.rows {
			return true
		}
		h.cols, h.rows = cols, rows
		vp := Viewport(cols, rows)
		h.hero.SetBounds(backdrop.Rect{Width: vp.Width, Height: vp.Height})
		h.window.Resize(vp)
		h.screen.Sync()
	}
	return true
}

// key handles a key press. It returns false to quit.
func (h *host) key(k tcell.Key, r rune) bool {
	switch {
	case k == tcell.KeyEscape, k == tcell.KeyCtrlC:
		return false
	case k == tcell.KeyRune && (r == 'q' || r == 'Q'):
		return false
	case k == tcell.KeyRune && (r == 't' || r == 'T'):
		h.theme.Toggle()
	}
	return true
}

// frame steps the script, runs one display frame and shows the screen. It
// returns false once a finished script should end the session.
func (h *host) frame() bool {
	if s := h.rc.Script; s != nil && !s.Done() {
		s.Step(backdrop.ScriptTargets{
			Hero:     h.hero,
			Window:   h.window,
			Theme:    h.theme,
			Snapshot: h.snapshot,
		})
	}
	h.queue.RunFrame()
	h.flushSnapshots()
	h.screen.Show()
	if s := h.rc.Script; s != nil && s.Done() && h.rc.ExitWhenDone {
		return false
	}
	return true
}

// snapshot defers a capture until the current frame has been drawn.
func (h *host) snapshot(label string) {
	h.shots = append(h.shots, label)
}

func (h *host) flushSnapshots() {
	t, ok := h.engine.Binding().Target().(*Target)
	if ok && h.rc.Snapshot != nil {
		for _, label := range h.shots {
			h.rc.Snapshot(label, t)
		}
	}
	h.shots = h.shots[:0]
}
