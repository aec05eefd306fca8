package backdrop

// PointerEasing is the fraction of the remaining distance the eased pointer
// covers each tick. It is not corrected for variable frame intervals.
const PointerEasing = 0.05

// PointerState is the tracked pointer direction. Eased and target values are
// in [-1, 1] with +Y up.
type PointerState struct {
	EasedX, EasedY   float64
	TargetX, TargetY float64
	Inside           bool
}

// PointerTracker turns raw client coordinates into an eased direction. Eased
// values only move while the pointer is inside the hosting element and keep
// their last value when it leaves.
type PointerTracker struct {
	// Bounds returns the hosting element's bounding box in client coordinates.
	Bounds func() Rect

	state PointerState
	live  func() bool
}

// NewPointerTracker creates a tracker for an element with the given bounds
// callback. live gates every mutation; a nil live always allows.
func NewPointerTracker(bounds func() Rect, live func() bool) *PointerTracker {
	return &PointerTracker{Bounds: bounds, live: live}
}

func (p *PointerTracker) allowed() bool {
	return p.live == nil || p.live()
}

// State returns a copy of the current pointer state.
func (p *PointerTracker) State() PointerState {
	return p.state
}

// OnMove updates the target direction from client coordinates. The target is
// updated whether or not the pointer is inside. A zero-extent element is
// ignored.
func (p *PointerTracker) OnMove(clientX, clientY float64) {
	if !p.allowed() || p.Bounds == nil {
		return
	}
	r := p.Bounds()
	if r.Empty() {
		return
	}
	p.state.TargetX = ((clientX-r.X)/r.Width)*2 - 1
	p.state.TargetY = -(((clientY-r.Y)/r.Height)*2 - 1)
}

// OnEnter marks the pointer inside the element.
func (p *PointerTracker) OnEnter() {
	if !p.allowed() {
		return
	}
	p.state.Inside = true
}

// OnLeave marks the pointer outside the element. Target and eased values are kept.
func (p *PointerTracker) OnLeave() {
	if !p.allowed() {
		return
	}
	p.state.Inside = false
}

// Advance moves the eased values PointerEasing of the way toward the target.
// No-op while the pointer is outside.
func (p *PointerTracker) Advance() {
	if !p.allowed() || !p.state.Inside {
		return
	}
	p.state.EasedX += (p.state.TargetX - p.state.EasedX) * PointerEasing
	p.state.EasedY += (p.state.TargetY - p.state.EasedY) * PointerEasing
}
