package viewer

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// scriptStep is a single action in an interaction script.
type scriptStep struct {
	Action   string  `json:"action"`
	X        float64 `json:"x,omitempty"`
	Y        float64 `json:"y,omitempty"`
	ToX      float64 `json:"toX,omitempty"`
	ToY      float64 `json:"toY,omitempty"`
	Factor   float64 `json:"factor,omitempty"`
	Degrees  float64 `json:"degrees,omitempty"`
	Padding  float64 `json:"padding,omitempty"`
	Span     float64 `json:"span,omitempty"`
	ToSpan   float64 `json:"toSpan,omitempty"`
	Frames   int     `json:"frames,omitempty"`
	Duration int     `json:"durationMs,omitempty"`
}

type script struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner replays a JSON interaction script against a controller one
// frame at a time, for automated and reproducible interaction tests.
//
// Actions: pan (x, y), zoom (factor, optional focal x/y), rotate (degrees),
// fit (padding), center, reset, fling (x, y velocity), drag (x, y to
// toX, toY over frames), pinch (x, y center, span to toSpan over frames),
// tap (x, y), wait (frames). durationMs on pan, zoom, rotate, fit, center,
// and reset animates the step.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
	err       error
}

// LoadScript parses a JSON interaction script.
func LoadScript(data []byte) (*ScriptRunner, error) {
	var s script
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse interaction script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("parse interaction script: no steps")
	}
	for i, st := range s.Steps {
		if !knownAction(st.Action) {
			return nil, fmt.Errorf("parse interaction script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: s.Steps}, nil
}

func knownAction(a string) bool {
	switch a {
	case "pan", "zoom", "rotate", "fit", "center", "reset", "fling", "drag", "pinch", "tap", "wait":
		return true
	}
	return false
}

// Done reports whether every step has run and all injected input has drained.
func (r *ScriptRunner) Done() bool { return r.done }

// Err returns the first error raised by a step.
func (r *ScriptRunner) Err() error { return r.err }

// Step advances the script by one frame. The host should call it once per
// frame, before GestureTracker.Update and the tick source.
func (r *ScriptRunner) Step(c *Controller, g *GestureTracker) {
	if r.done {
		return
	}
	if g != nil && g.Pending() {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		if r.waitCount == 0 && r.cursor >= len(r.steps) {
			r.done = true
		}
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++
	if err := r.run(st, c, g); err != nil && r.err == nil {
		r.err = fmt.Errorf("step %d (%s): %w", r.cursor-1, st.Action, err)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && (g == nil || !g.Pending()) {
		r.done = true
	}
}

func (r *ScriptRunner) run(st scriptStep, c *Controller, g *GestureTracker) error {
	var anim *Animation
	if st.Duration > 0 {
		anim = &Animation{Duration: time.Duration(st.Duration) * time.Millisecond}
	}
	var focal *Vec2
	if st.X != 0 || st.Y != 0 {
		focal = &Vec2{st.X, st.Y}
	}

	switch st.Action {
	case "pan":
		return c.Pan(Vec2{st.X, st.Y}, anim)
	case "zoom":
		return c.Zoom(st.Factor, focal, anim)
	case "rotate":
		return c.Rotate(st.Degrees*math.Pi/180, focal, anim)
	case "fit":
		return c.FitToScreen(st.Padding, anim)
	case "center":
		return c.Center(anim)
	case "reset":
		return c.Reset(anim)
	case "fling":
		c.Fling(Vec2{st.X, st.Y})
	case "drag":
		if g == nil {
			return fmt.Errorf("drag needs a gesture tracker")
		}
		g.InjectDrag(Vec2{st.X, st.Y}, Vec2{st.ToX, st.ToY}, st.Frames)
	case "pinch":
		if g == nil {
			return fmt.Errorf("pinch needs a gesture tracker")
		}
		g.InjectPinch(Vec2{st.X, st.Y}, st.Span, st.ToSpan, st.Frames)
	case "tap":
		if g == nil {
			return fmt.Errorf("tap needs a gesture tracker")
		}
		g.InjectTap(Vec2{st.X, st.Y})
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}
	return nil
}
