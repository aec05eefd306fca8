package backdrop

import (
	"testing"
	"time"
)

func TestFrameQueueRunsOncePerFrame(t *testing.T) {
	var q FrameQueue
	runs := 0
	var fn func()
	fn = func() {
		runs++
		q.RequestFrame(fn)
	}
	q.RequestFrame(fn)

	if n := q.RunFrame(); n != 1 {
		t.Fatalf("RunFrame = %d, want 1", n)
	}
	if runs != 1 {
		t.Fatalf("runs = %d, want 1 (rescheduled callback must wait)", runs)
	}
	if q.Pending() != 1 {
		t.Fatalf("Pending = %d, want 1", q.Pending())
	}
	q.RunFrame()
	q.RunFrame()
	if runs != 3 {
		t.Errorf("runs = %d, want 3", runs)
	}
}

func TestFrameQueueCancel(t *testing.T) {
	var q FrameQueue
	ran := false
	id := q.RequestFrame(func() { ran = true })
	if id == 0 {
		t.Fatal("FrameID 0 returned")
	}
	q.CancelFrame(id)
	q.CancelFrame(id)
	q.CancelFrame(999)
	if n := q.RunFrame(); n != 0 || ran {
		t.Errorf("cancelled callback ran (n=%d)", n)
	}
}

func TestFrameQueueCancelFromCallback(t *testing.T) {
	var q FrameQueue
	var next FrameID
	ran := false
	q.RequestFrame(func() {
		next = q.RequestFrame(func() { ran = true })
		q.CancelFrame(next)
	})
	q.RunFrame()
	q.RunFrame()
	if ran {
		t.Error("callback cancelled during RunFrame still ran")
	}
}

func TestManualClock(t *testing.T) {
	var c ManualClock
	c.Set(3)
	c.Start()
	if c.Elapsed() != 0 {
		t.Errorf("Elapsed after Start = %f, want 0", c.Elapsed())
	}
	c.Advance(0.5)
	c.Advance(0.25)
	if c.Elapsed() != 0.75 {
		t.Errorf("Elapsed = %f, want 0.75", c.Elapsed())
	}
}

func TestSystemClock(t *testing.T) {
	base := time.Unix(1000, 0)
	now := base
	c := &SystemClock{now: func() time.Time { return now }}
	if c.Elapsed() != 0 {
		t.Error("unstarted clock should report zero")
	}
	c.Start()
	now = base.Add(1500 * time.Millisecond)
	if !approxEqual(c.Elapsed(), 1.5, epsilon) {
		t.Errorf("Elapsed = %f, want 1.5", c.Elapsed())
	}
}
