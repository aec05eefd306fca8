package backdrop

import "testing"

func fixedBounds(r Rect) func() Rect {
	return func() Rect { return r }
}

func TestPointerFirstAdvance(t *testing.T) {
	p := NewPointerTracker(fixedBounds(Rect{Width: 1000, Height: 500}), nil)
	p.OnEnter()
	// Right edge, vertical center.
	p.OnMove(1000, 250)
	p.Advance()
	s := p.State()
	if !approxEqual(s.TargetX, 1, epsilon) || !approxEqual(s.TargetY, 0, epsilon) {
		t.Errorf("target = (%f,%f), want (1,0)", s.TargetX, s.TargetY)
	}
	if !approxEqual(s.EasedX, 0.05, epsilon) || s.EasedY != 0 {
		t.Errorf("eased = (%f,%f), want (0.05,0)", s.EasedX, s.EasedY)
	}
}

func TestPointerYInverted(t *testing.T) {
	p := NewPointerTracker(fixedBounds(Rect{X: 100, Y: 50, Width: 200, Height: 100}), nil)
	p.OnMove(100, 50)
	s := p.State()
	if s.TargetX != -1 || s.TargetY != 1 {
		t.Errorf("top-left target = (%f,%f), want (-1,1)", s.TargetX, s.TargetY)
	}
	p.OnMove(300, 150)
	s = p.State()
	if s.TargetX != 1 || s.TargetY != -1 {
		t.Errorf("bottom-right target = (%f,%f), want (1,-1)", s.TargetX, s.TargetY)
	}
}

func TestPointerConverges(t *testing.T) {
	p := NewPointerTracker(fixedBounds(Rect{Width: 100, Height: 100}), nil)
	p.OnEnter()
	p.OnMove(0, 0)
	for i := 0; i < 300; i++ {
		p.Advance()
	}
	s := p.State()
	if !approxEqual(s.EasedX, -1, 1e-3) || !approxEqual(s.EasedY, 1, 1e-3) {
		t.Errorf("eased = (%f,%f), want ~(-1,1)", s.EasedX, s.EasedY)
	}
}

func TestPointerLeaveFreezes(t *testing.T) {
	p := NewPointerTracker(fixedBounds(Rect{Width: 100, Height: 100}), nil)
	p.OnEnter()
	p.OnMove(100, 0)
	for i := 0; i < 10; i++ {
		p.Advance()
	}
	p.OnLeave()
	frozen := p.State()
	p.OnMove(0, 100)
	for i := 0; i < 10; i++ {
		p.Advance()
	}
	s := p.State()
	if s.EasedX != frozen.EasedX || s.EasedY != frozen.EasedY {
		t.Errorf("eased moved after leave: %v -> %v", frozen, s)
	}
	if s.TargetX != -1 || s.TargetY != -1 {
		t.Errorf("target should still track moves outside: (%f,%f)", s.TargetX, s.TargetY)
	}
	if s.Inside {
		t.Error("Inside = true after leave")
	}
}

func TestPointerNoAdvanceBeforeEnter(t *testing.T) {
	p := NewPointerTracker(fixedBounds(Rect{Width: 100, Height: 100}), nil)
	p.OnMove(100, 100)
	p.Advance()
	if s := p.State(); s.EasedX != 0 || s.EasedY != 0 {
		t.Errorf("eased = (%f,%f), want unchanged", s.EasedX, s.EasedY)
	}
}

func TestPointerEmptyBoundsIgnored(t *testing.T) {
	p := NewPointerTracker(fixedBounds(Rect{Width: 0, Height: 100}), nil)
	p.OnMove(50, 50)
	if s := p.State(); s.TargetX != 0 || s.TargetY != 0 {
		t.Errorf("target = (%f,%f), want unchanged", s.TargetX, s.TargetY)
	}
}

func TestPointerGate(t *testing.T) {
	live := true
	p := NewPointerTracker(fixedBounds(Rect{Width: 100, Height: 100}), func() bool { return live })
	p.OnEnter()
	live = false
	p.OnMove(0, 0)
	p.OnLeave()
	p.Advance()
	s := p.State()
	if s.TargetX != 0 || s.TargetY != 0 || s.EasedX != 0 {
		t.Errorf("state mutated while gated: %+v", s)
	}
	if !s.Inside {
		t.Error("leave applied while gated")
	}
}
