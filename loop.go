package backdrop

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/tanema/gween/ease"
)

// Per-tick particle motion.
const (
	ParticleSpin = 0.05 // radians per second about Y
	PointerShift = 0.5  // particle X offset per unit of eased pointer X
	PointerTilt  = 0.3  // particle X rotation per unit of eased pointer Y
)

// Host bundles everything the engine consumes from the embedding UI layer.
type Host struct {
	// Surface creates the render target.
	Surface Surface
	// Hero receives pointer listeners and supplies the bounding box used to
	// normalize pointer coordinates.
	Hero Element
	// Window receives the resize listener.
	Window EventTarget
	// Viewport is the initial CSS size and pixel ratio of the container.
	Viewport Viewport
	// Theme is the observable dark-mode flag.
	Theme ThemeSignal
	// Frames schedules per-frame callbacks.
	Frames FrameScheduler
	// Clock measures elapsed time. Nil uses a SystemClock.
	Clock Clock
}

// State is the engine lifecycle state.
type State uint8

const (
	StateIdle    State = iota // created, nothing bound
	StateRunning              // listeners bound, frames scheduled
	StateStopped              // torn down; terminal
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// LoopHandle is the ownership record of a running loop: the liveness flag,
// the pending frame, and the release funcs to run on teardown, in order.
type LoopHandle struct {
	alive   bool
	frame   FrameID
	pending bool
	release []func()
}

// Alive reports whether scheduled work and handlers may still run. Once false
// it never becomes true again.
func (h *LoopHandle) Alive() bool {
	return h.alive
}

// PendingFrame returns the ID of the scheduled frame callback, if any.
func (h *LoopHandle) PendingFrame() (FrameID, bool) {
	return h.frame, h.pending
}

// LoopEventType identifies an engine notification sent to an EventSink.
type LoopEventType uint8

const (
	LoopStarted LoopEventType = iota
	LoopStopped
	LoopThemeChanged
	LoopPointerEntered
	LoopPointerLeft
)

// LoopEvent is a notification about the engine, for optional observers such
// as an ECS bridge.
type LoopEvent struct {
	Type    LoopEventType
	Tick    uint64
	Elapsed float64
	Dark    bool
	Pointer PointerState
}

// EventSink receives LoopEvents. When set on an Engine, lifecycle, theme and
// pointer enter/leave notifications are forwarded to it.
type EventSink interface {
	EmitEvent(event LoopEvent)
}

// Engine is the render loop scheduler. It owns the scene, the surface binding
// and every listener it registers, and releases them all on Stop.
type Engine struct {
	cfg   Config
	host  Host
	clock Clock

	scene   *Scene
	wave    *WaveSurface
	pointer *PointerTracker
	theme   *ThemeObserver
	binding *Binding
	fade    *Fade

	state  State
	handle *LoopHandle
	tickFn func()
	frame  Frame
	ticks  uint64
	last   float64

	sink  EventSink
	stats debugStats
}

// NewEngine builds the scene for cfg and prepares it for mounting on host.
// Nothing is bound until Start.
func NewEngine(cfg Config, host Host) (*Engine, error) {
	if err := host.validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	var rng *rand.Rand
	if cfg.Seed != 0 {
		rng = rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	}

	e := &Engine{
		cfg:    cfg,
		host:   host,
		clock:  host.Clock,
		handle: &LoopHandle{},
		fade:   NewFade(float32(cfg.FadeIn), ease.OutQuad),
	}
	if e.clock == nil {
		e.clock = &SystemClock{}
	}
	e.tickFn = e.tick

	e.scene, e.wave = NewScene(cfg, cfg.Light, rng)
	e.theme = NewThemeObserver(host.Theme, cfg.Light, cfg.Dark, e.scene.Particles.Material, e.scene.Wave.Material)
	e.pointer = NewPointerTracker(host.Hero.Bounds, e.handle.Alive)
	e.binding = NewBinding(host.Surface, e.scene.Camera, cfg.MaxPixelRatio)
	return e, nil
}

func (h Host) validate() error {
	switch {
	case h.Surface == nil:
		return fmt.Errorf("%w: no surface", ErrIncompleteHost)
	case h.Hero == nil:
		return fmt.Errorf("%w: no hero element", ErrIncompleteHost)
	case h.Window == nil:
		return fmt.Errorf("%w: no window", ErrIncompleteHost)
	case h.Theme == nil:
		return fmt.Errorf("%w: no theme signal", ErrIncompleteHost)
	case h.Frames == nil:
		return fmt.Errorf("%w: no frame scheduler", ErrIncompleteHost)
	}
	return nil
}

// Start binds the surface and every listener, starts the clock and schedules
// the first frame. Starting a running engine is a no-op; starting a stopped
// one returns ErrStopped. An unavailable rendering context is logged and
// leaves the engine running with a static background.
func (e *Engine) Start() error {
	switch e.state {
	case StateRunning:
		return nil
	case StateStopped:
		return ErrStopped
	}
	h := e.handle
	h.alive = true
	e.state = StateRunning

	if err := e.binding.Bind(e.host.Viewport); err != nil {
		logf("%v; background will not animate", err)
	}

	hero := e.host.Hero
	move := hero.AddListener(EventPointerMove, e.onPointerMove)
	enter := hero.AddListener(EventPointerEnter, e.onPointerEnter)
	leave := hero.AddListener(EventPointerLeave, e.onPointerLeave)
	resize := e.host.Window.AddListener(EventResize, e.onResize)
	e.theme.Observe(h.Alive, e.onThemeChange)
	h.release = append(h.release, move.Remove, enter.Remove, leave.Remove, resize.Remove, e.theme.Disconnect)

	e.clock.Start()
	e.last = 0
	if e.cfg.Debug {
		logf("engine running (%d particles, %d wave vertices)",
			e.scene.Particles.Geometry.VertexCount(), e.scene.Wave.Geometry.VertexCount())
	}
	e.emit(LoopStarted)

	if e.binding.Unavailable() {
		return nil
	}
	e.schedule()
	return nil
}

func (e *Engine) schedule() {
	h := e.handle
	if !h.alive {
		return
	}
	h.frame = e.host.Frames.RequestFrame(e.tickFn)
	h.pending = true
}

// tick runs one frame: pointer easing, particle transform, wave deformation,
// rasterization, then scheduling of the next frame.
func (e *Engine) tick() {
	h := e.handle
	h.pending = false
	if !h.alive {
		return
	}

	var t0 time.Time
	if e.cfg.Debug {
		t0 = time.Now()
	}

	elapsed := e.clock.Elapsed()
	dt := elapsed - e.last
	if dt < 0 {
		dt = 0
	}
	e.last = elapsed
	e.ticks++

	e.pointer.Advance()
	ps := e.pointer.State()
	p := e.scene.Particles
	p.Rotation.Y = elapsed * ParticleSpin
	p.Rotation.X = ps.EasedY * PointerTilt
	p.Position.X = ps.EasedX * PointerShift

	e.wave.Deform(elapsed)
	level := e.fade.Update(float32(dt))

	var t1, t2 time.Time
	if e.cfg.Debug {
		t1 = time.Now()
	}
	if e.binding.Ready() {
		w, hh := e.binding.PixelSize()
		e.scene.buildFrame(&e.frame, w, hh, level)
		e.frame.Tick = e.ticks
		if e.cfg.Debug {
			t2 = time.Now()
		}
		e.binding.Render(&e.frame)
	} else if e.cfg.Debug {
		t2 = t1
	}
	if e.cfg.Debug {
		e.stats.record(t1.Sub(t0), t2.Sub(t1), time.Since(t2), &e.frame)
	}

	// The target or a listener may have stopped the engine mid-frame.
	if !h.alive {
		return
	}
	if e.binding.Unavailable() {
		logf("render target lost; animation halted")
		return
	}
	e.schedule()
}

func (e *Engine) onPointerMove(ev Event) {
	if !e.handle.alive {
		return
	}
	e.pointer.OnMove(ev.ClientX, ev.ClientY)
}

func (e *Engine) onPointerEnter(Event) {
	if !e.handle.alive {
		return
	}
	e.pointer.OnEnter()
	e.emit(LoopPointerEntered)
}

func (e *Engine) onPointerLeave(Event) {
	if !e.handle.alive {
		return
	}
	e.pointer.OnLeave()
	e.emit(LoopPointerLeft)
}

func (e *Engine) onResize(ev Event) {
	if !e.handle.alive {
		return
	}
	changed, err := e.binding.Resize(ev.Viewport)
	if err != nil {
		logf("%v; background will not animate", err)
		return
	}
	if changed && e.cfg.Debug {
		w, h := e.binding.PixelSize()
		logf("resize %.0fx%.0f @%.2g -> %dx%d px", ev.Viewport.Width, ev.Viewport.Height, ev.Viewport.PixelRatio, w, h)
	}
}

func (e *Engine) onThemeChange(dark bool) {
	if e.cfg.Debug {
		logf("theme changed (dark=%t)", dark)
	}
	e.emit(LoopThemeChanged)
}

// Stop tears the engine down: it flips the liveness flag, cancels the pending
// frame, removes every listener, disconnects the theme observer, disposes
// geometry and materials and releases the render target, in that order.
// Calling Stop again is a no-op.
func (e *Engine) Stop() {
	if e.state == StateStopped {
		return
	}
	h := e.handle
	h.alive = false
	e.state = StateStopped

	if h.pending {
		e.host.Frames.CancelFrame(h.frame)
		h.pending = false
	}
	for _, release := range h.release {
		release()
	}
	h.release = nil

	e.scene.Dispose()
	e.binding.Release()

	if e.cfg.Debug {
		logf("engine stopped after %d ticks", e.ticks)
	}
	e.emit(LoopStopped)
}

// SetEventSink sets the optional notification sink.
func (e *Engine) SetEventSink(sink EventSink) {
	e.sink = sink
}

func (e *Engine) emit(t LoopEventType) {
	if e.sink == nil {
		return
	}
	e.sink.EmitEvent(LoopEvent{
		Type:    t,
		Tick:    e.ticks,
		Elapsed: e.last,
		Dark:    e.theme.IsDark(),
		Pointer: e.pointer.State(),
	})
}

// State returns the lifecycle state.
func (e *Engine) State() State { return e.state }

// Handle returns the loop's ownership record.
func (e *Engine) Handle() *LoopHandle { return e.handle }

// Scene returns the scene graph.
func (e *Engine) Scene() *Scene { return e.scene }

// Wave returns the wave deformer.
func (e *Engine) Wave() *WaveSurface { return e.wave }

// Pointer returns the pointer tracker.
func (e *Engine) Pointer() *PointerTracker { return e.pointer }

// Theme returns the theme observer.
func (e *Engine) Theme() *ThemeObserver { return e.theme }

// Binding returns the surface binding.
func (e *Engine) Binding() *Binding { return e.binding }

// Fade returns the intro fade.
func (e *Engine) Fade() *Fade { return e.fade }

// Frame returns the most recently built frame. Its buffers are reused.
func (e *Engine) Frame() *Frame { return &e.frame }

// Ticks returns the number of frames run.
func (e *Engine) Ticks() uint64 { return e.ticks }

// Elapsed returns the clock time of the last tick in seconds.
func (e *Engine) Elapsed() float64 { return e.last }
