package backdrop

// EventType identifies a kind of host event.
type EventType uint8

const (
	EventPointerMove  EventType = iota // pointer moved over the element
	EventPointerEnter                  // pointer entered the element
	EventPointerLeave                  // pointer left the element
	EventResize                        // viewport changed size or density
	eventTypeCount
)

// Event carries host event data. Pointer events use ClientX/ClientY; resize
// events use Viewport.
type Event struct {
	Type     EventType
	ClientX  float64
	ClientY  float64
	Viewport Viewport
}

// EventTarget is something listeners can be attached to (the hero element,
// the window).
type EventTarget interface {
	AddListener(t EventType, fn func(Event)) CallbackHandle
}

// Element is an EventTarget with a bounding box in client coordinates.
type Element interface {
	EventTarget
	Bounds() Rect
}

// --- Handler registry ---

type eventHandler struct {
	id uint32
	fn func(Event)
}

type handlerRegistry struct {
	handlers [eventTypeCount][]eventHandler
	nextID   uint32
}

// CallbackHandle allows removing a registered listener.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this listener so it no longer fires. Removing twice is a no-op.
func (h CallbackHandle) Remove() {
	if h.reg == nil || h.event >= eventTypeCount {
		return
	}
	h.reg.handlers[h.event] = removeEventHandler(h.reg.handlers[h.event], h.id)
}

func (r *handlerRegistry) has(t EventType, id uint32) bool {
	for _, h := range r.handlers[t] {
		if h.id == id {
			return true
		}
	}
	return false
}

func removeEventHandler(s []eventHandler, id uint32) []eventHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = eventHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

// Dispatcher is an in-process EventTarget. Hosts feed it raw events with
// Dispatch; listeners run synchronously in registration order.
type Dispatcher struct {
	reg    handlerRegistry
	bounds Rect
}

// NewDispatcher creates a dispatcher whose element occupies bounds.
func NewDispatcher(bounds Rect) *Dispatcher {
	return &Dispatcher{bounds: bounds}
}

// AddListener registers fn for events of type t.
func (d *Dispatcher) AddListener(t EventType, fn func(Event)) CallbackHandle {
	if t >= eventTypeCount {
		return CallbackHandle{}
	}
	d.reg.nextID++
	id := d.reg.nextID
	d.reg.handlers[t] = append(d.reg.handlers[t], eventHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &d.reg, event: t}
}

// Listeners returns the number of listeners registered for t.
func (d *Dispatcher) Listeners(t EventType) int {
	if t >= eventTypeCount {
		return 0
	}
	return len(d.reg.handlers[t])
}

// Dispatch delivers e to every listener of its type. Listeners may add or
// remove listeners; one removed during dispatch is not called afterwards.
func (d *Dispatcher) Dispatch(e Event) {
	if e.Type >= eventTypeCount {
		return
	}
	// Snapshot so callbacks may remove themselves or others.
	hs := append([]eventHandler(nil), d.reg.handlers[e.Type]...)
	for _, h := range hs {
		if !d.reg.has(e.Type, h.id) {
			continue
		}
		h.fn(e)
	}
}

// Bounds returns the element's bounding box.
func (d *Dispatcher) Bounds() Rect {
	return d.bounds
}

// SetBounds updates the element's bounding box.
func (d *Dispatcher) SetBounds(r Rect) {
	d.bounds = r
}

// Move dispatches a pointer move at client coordinates.
func (d *Dispatcher) Move(x, y float64) {
	d.Dispatch(Event{Type: EventPointerMove, ClientX: x, ClientY: y})
}

// Enter dispatches a pointer enter.
func (d *Dispatcher) Enter() {
	d.Dispatch(Event{Type: EventPointerEnter})
}

// Leave dispatches a pointer leave.
func (d *Dispatcher) Leave() {
	d.Dispatch(Event{Type: EventPointerLeave})
}

// Resize dispatches a resize with the new viewport.
func (d *Dispatcher) Resize(vp Viewport) {
	d.Dispatch(Event{Type: EventResize, Viewport: vp})
}

// PointerHover tracks whether a polled cursor is inside a rectangle and turns
// polled positions into move/enter/leave events, for hosts that only expose
// the cursor position.
type PointerHover struct {
	inside  bool
	hasPrev bool
	prevX   float64
	prevY   float64
}

// Update feeds one polled cursor sample. ok is false when the cursor is not
// over the window at all. Moves are only dispatched for samples inside the
// bounds, as an element only sees pointer moves over itself.
func (h *PointerHover) Update(d *Dispatcher, x, y float64, ok bool) {
	in := ok && d.Bounds().Contains(x, y)
	if in && !h.inside {
		h.inside = true
		d.Enter()
	}
	if in && (!h.hasPrev || x != h.prevX || y != h.prevY) {
		h.prevX, h.prevY, h.hasPrev = x, y, true
		d.Move(x, y)
	}
	if !in && h.inside {
		h.inside = false
		d.Leave()
	}
}

// Inside reports whether the last sample was inside.
func (h *PointerHover) Inside() bool {
	return h.inside
}
