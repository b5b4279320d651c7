package viewer

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Animation describes an animated transition. A nil *Animation, or one with
// a non-positive Duration, means "apply immediately".
type Animation struct {
	Duration time.Duration
	// Curve eases progress; nil means ease.Linear.
	Curve ease.TweenFunc
}

// DefaultAnimation is used by gesture-driven transitions such as double-tap
// zoom when no other animation is configured.
var DefaultAnimation = Animation{Duration: 300 * time.Millisecond, Curve: ease.OutCubic}

// Animate returns a pointer to an Animation with the given duration and
// curve, for passing to controller operations.
func Animate(d time.Duration, curve ease.TweenFunc) *Animation {
	return &Animation{Duration: d, Curve: curve}
}

func (a *Animation) animated() bool {
	return a != nil && a.Duration > 0
}

// transition interpolates from one state to another. Progress runs from 0
// to 1 on a gween tween; the state itself is interpolated in float64.
type transition struct {
	from, to State
	progress *gween.Tween
	ticker   Ticker
}

// AnimateTo moves to target, animated when anim asks for it. Without a tick
// source an animated request fails with ErrNoTickSource. Starting a new
// transition stops the previous one. Every EventAnimationStart is matched by
// one EventAnimationEnd, also when an observer panics mid-run.
func (c *Controller) AnimateTo(target State, anim *Animation) error {
	if c.disposed {
		return ErrDisposed
	}
	if !anim.animated() {
		c.StopAnimation()
		c.UpdateState(target)
		return nil
	}
	if c.ticks == nil {
		return ErrNoTickSource
	}
	c.StopAnimation()

	curve := anim.Curve
	if curve == nil {
		curve = ease.Linear
	}
	tr := &transition{
		from:     c.state,
		to:       target,
		progress: gween.New(0, 1, float32(anim.Duration.Seconds()), curve),
	}
	c.anim = tr
	c.emit(EventAnimationStart)
	if c.anim != tr {
		// A start handler replaced or stopped this transition.
		return nil
	}
	tr.ticker = c.ticks.Start(func(dt time.Duration) bool {
		return c.stepTransition(tr, dt)
	})
	return nil
}

// IsAnimating reports whether an animated transition is running.
func (c *Controller) IsAnimating() bool { return c.anim != nil }

// StopAnimation cancels the running transition, leaving the last published
// state in place.
func (c *Controller) StopAnimation() {
	if c.anim != nil {
		c.finishTransition(c.anim)
	}
}

// stepTransition advances tr by dt and publishes the interpolated state.
// The transition is ended on every exit path, including a panic raised by
// an observer, and EventAnimationEnd fires unless tr was already stopped.
func (c *Controller) stepTransition(tr *transition, dt time.Duration) (keep bool) {
	if c.anim != tr {
		return false
	}
	completed := false
	defer func() {
		if completed && keep {
			return
		}
		c.finishTransition(tr)
		c.releaseTransition(tr)
	}()

	p, done := tr.progress.Update(float32(dt.Seconds()))
	next := tr.to
	if !done {
		next = lerpState(tr.from, tr.to, float64(p))
	}
	c.UpdateState(next)

	completed = true
	return !done && c.anim == tr
}

// finishTransition releases tr and fires EventAnimationEnd.
func (c *Controller) finishTransition(tr *transition) {
	if c.anim != tr {
		return
	}
	c.releaseTransition(tr)
	c.emit(EventAnimationEnd)
}

func (c *Controller) releaseTransition(tr *transition) {
	if c.anim == tr {
		c.anim = nil
	}
	if tr.ticker != nil {
		tr.ticker.Stop()
	}
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

// lerpState interpolates scale, offset, and rotation independently.
func lerpState(from, to State, t float64) State {
	return State{
		Scale:    lerp(from.Scale, to.Scale, t),
		Offset:   Vec2{lerp(from.Offset.X, to.Offset.X, t), lerp(from.Offset.Y, to.Offset.Y, t)},
		Rotation: lerp(from.Rotation, to.Rotation, t),
	}
}
