package backdrop

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Fade animates a level from 0 to 1 over a duration. The engine multiplies
// every material opacity by the level at frame build time, so theme changes
// and the fade never write the same field.
//
// Call Update(dt) each tick.
type Fade struct {
	tween *gween.Tween
	level float64
	Done  bool
}

// NewFade creates a fade lasting duration seconds with the given easing. A
// non-positive duration yields a finished fade at level 1.
func NewFade(duration float32, fn ease.TweenFunc) *Fade {
	if duration <= 0 {
		return &Fade{level: 1, Done: true}
	}
	if fn == nil {
		fn = ease.Linear
	}
	return &Fade{tween: gween.New(0, 1, duration, fn)}
}

// Update advances the fade by dt seconds and returns the new level.
func (f *Fade) Update(dt float32) float64 {
	if f.Done {
		return f.level
	}
	val, finished := f.tween.Update(dt)
	f.level = float64(val)
	if finished {
		f.level = 1
		f.Done = true
	}
	return f.level
}

// Level returns the current level in [0, 1].
func (f *Fade) Level() float64 {
	return f.level
}
