package backdrop

import "time"

// FrameID identifies a scheduled frame callback. Zero is never a valid ID.
type FrameID uint64

// FrameScheduler is the host's per-frame callback mechanism, invoked at the
// display refresh cadence.
type FrameScheduler interface {
	// RequestFrame schedules fn to run once on the next frame.
	RequestFrame(fn func()) FrameID
	// CancelFrame drops a pending callback. Unknown or already-run IDs are ignored.
	CancelFrame(id FrameID)
}

// Clock measures seconds elapsed since Start.
type Clock interface {
	Start()
	Elapsed() float64
}

type pendingFrame struct {
	id FrameID
	fn func()
}

// FrameQueue is a FrameScheduler driven by the host calling RunFrame once per
// display frame (from an ebiten Update, a terminal ticker, or a test).
type FrameQueue struct {
	pending []pendingFrame
	running []pendingFrame
	nextID  FrameID
}

// RequestFrame queues fn for the next RunFrame.
func (q *FrameQueue) RequestFrame(fn func()) FrameID {
	q.nextID++
	q.pending = append(q.pending, pendingFrame{id: q.nextID, fn: fn})
	return q.nextID
}

// CancelFrame removes a queued callback.
func (q *FrameQueue) CancelFrame(id FrameID) {
	for i := range q.pending {
		if q.pending[i].id == id {
			copy(q.pending[i:], q.pending[i+1:])
			q.pending[len(q.pending)-1] = pendingFrame{}
			q.pending = q.pending[:len(q.pending)-1]
			return
		}
	}
}

// Pending returns the number of queued callbacks.
func (q *FrameQueue) Pending() int {
	return len(q.pending)
}

// RunFrame runs every callback queued before the call. Callbacks requested
// while running wait for the next RunFrame. Returns the number run.
func (q *FrameQueue) RunFrame() int {
	if len(q.pending) == 0 {
		return 0
	}
	q.running, q.pending = q.pending, q.running[:0]
	n := len(q.running)
	for i := range q.running {
		q.running[i].fn()
		q.running[i] = pendingFrame{}
	}
	q.running = q.running[:0]
	return n
}

// SystemClock is a wall-clock Clock.
type SystemClock struct {
	start time.Time
	now   func() time.Time
}

// Start resets the origin to now.
func (c *SystemClock) Start() {
	if c.now == nil {
		c.now = time.Now
	}
	c.start = c.now()
}

// Elapsed returns seconds since Start, or zero if never started.
func (c *SystemClock) Elapsed() float64 {
	if c.start.IsZero() {
		return 0
	}
	return c.now().Sub(c.start).Seconds()
}

// ManualClock is a Clock advanced explicitly, for fixed-step hosts, snapshots
// and tests.
type ManualClock struct {
	t float64
}

// Start resets elapsed time to zero.
func (c *ManualClock) Start() { c.t = 0 }

// Elapsed returns the current time.
func (c *ManualClock) Elapsed() float64 { return c.t }

// Advance moves the clock forward by dt seconds.
func (c *ManualClock) Advance(dt float64) { c.t += dt }

// Set jumps the clock to t seconds.
func (c *ManualClock) Set(t float64) { c.t = t }
