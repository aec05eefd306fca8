package backdrop

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// scriptStep is a single action in a script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Ratio  float64 `json:"ratio,omitempty"`
	Dark   *bool   `json:"dark,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// scriptFile is the top-level JSON structure of a script.
type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

// ErrEmptyScript is returned by LoadScript for a script with no steps.
var ErrEmptyScript = errors.New("no steps")

// ScriptTargets are the host-side handles a Script drives.
type ScriptTargets struct {
	Hero     *Dispatcher
	Window   *Dispatcher
	Theme    *AttributeSignal
	Snapshot func(label string)
}

// Script replays pointer, resize and theme events across frames, for demos,
// snapshots and automated visual checks.
//
// Supported actions: "move" (x, y), "enter", "leave", "resize" (width,
// height, ratio), "theme" (dark; omitted toggles), "wait" (frames) and
// "snapshot" (label).
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON script.
func LoadScript(data []byte) (*Script, error) {
	var f scriptFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("parse script: %w", ErrEmptyScript)
	}
	for i, st := range f.Steps {
		switch st.Action {
		case "move", "enter", "leave", "resize", "theme", "wait", "snapshot":
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: f.Steps}, nil
}

// Done reports whether every step has run.
func (s *Script) Done() bool {
	return s.done
}

// Len returns the number of steps.
func (s *Script) Len() int {
	return len(s.steps)
}

// Step runs at most one action. Call it once per frame before running the
// frame queue.
func (s *Script) Step(t ScriptTargets) {
	if s.done {
		return
	}
	if s.waitCount > 0 {
		s.waitCount--
		return
	}
	if s.cursor >= len(s.steps) {
		s.done = true
		return
	}

	st := s.steps[s.cursor]
	s.cursor++

	switch st.Action {
	case "move":
		if t.Hero != nil {
			t.Hero.Move(st.X, st.Y)
		}
	case "enter":
		if t.Hero != nil {
			t.Hero.Enter()
		}
	case "leave":
		if t.Hero != nil {
			t.Hero.Leave()
		}
	case "resize":
		if t.Window != nil {
			if t.Hero != nil {
				t.Hero.SetBounds(Rect{Width: st.Width, Height: st.Height})
			}
			t.Window.Resize(Viewport{Width: st.Width, Height: st.Height, PixelRatio: st.Ratio})
		}
	case "theme":
		if t.Theme != nil {
			if st.Dark == nil {
				t.Theme.Toggle()
			} else {
				t.Theme.SetDark(*st.Dark)
			}
		}
	case "wait":
		if st.Frames > 0 {
			s.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "snapshot":
		if t.Snapshot != nil {
			t.Snapshot(st.Label)
		}
	}

	if s.cursor >= len(s.steps) && s.waitCount == 0 {
		s.done = true
	}
}

// SanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func SanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
