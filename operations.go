package viewer

import (
	"log/slog"
	"math"
)

// viewportCenter returns the viewport center when the viewport size is known.
func (ctx Context) viewportCenter() *Vec2 {
	if ctx.ViewportSize == nil {
		return nil
	}
	return &Vec2{ctx.ViewportSize.Width / 2, ctx.ViewportSize.Height / 2}
}

// Zoom scales by factor around focal. A non-negative factor multiplies the
// scale by 1+factor; a negative one divides it by 1+|factor|. A nil focal
// uses the viewport center when it is known.
func (c *Controller) Zoom(factor float64, focal *Vec2, anim *Animation) error {
	if c.disposed {
		return ErrDisposed
	}
	step := 1 + math.Abs(factor)
	target := c.state.Scale * step
	if factor < 0 {
		target = c.state.Scale / step
	}
	if focal == nil {
		focal = c.Context().viewportCenter()
	}
	next := c.ResolveInteraction(ScaleRequest(target, focal), nil)
	return c.AnimateTo(next, anim)
}

// ZoomTo scales to an absolute value around focal.
func (c *Controller) ZoomTo(scale float64, focal *Vec2, anim *Animation) error {
	if c.disposed {
		return ErrDisposed
	}
	if focal == nil {
		focal = c.Context().viewportCenter()
	}
	next := c.ResolveInteraction(ScaleRequest(scale, focal), nil)
	return c.AnimateTo(next, anim)
}

// Pan moves the content by delta in screen space.
func (c *Controller) Pan(delta Vec2, anim *Animation) error {
	if c.disposed {
		return ErrDisposed
	}
	return c.AnimateTo(c.ResolveInteraction(PanRequest(delta), nil), anim)
}

// Rotate rotates by delta radians around focal (viewport center when nil).
// Rotation accumulates without wrapping.
func (c *Controller) Rotate(delta float64, focal *Vec2, anim *Animation) error {
	if c.disposed {
		return ErrDisposed
	}
	if focal == nil {
		focal = c.Context().viewportCenter()
	}
	next := c.ResolveInteraction(RotationRequest(c.state.Rotation+delta, focal), nil)
	return c.AnimateTo(next, anim)
}

// RotateTo rotates to an absolute angle in radians around focal.
func (c *Controller) RotateTo(rad float64, focal *Vec2, anim *Animation) error {
	return c.Rotate(rad-c.state.Rotation, focal, anim)
}

// FitToScreen scales the content to fit the viewport less padding on every
// side and centers it. It does nothing while sizes are unknown.
func (c *Controller) FitToScreen(padding float64, anim *Animation) error {
	ctx, ok := c.sizedContext("fit to screen")
	if !ok {
		return c.disposedErr()
	}
	content, viewport := *ctx.ContentSize, *ctx.ViewportSize
	fit := FitContent(content, viewport, padding)
	return c.applyTarget(ctx, fit.Scale, func(scale float64) State {
		return CenterContent(content, viewport, scale)
	}, anim)
}

// Center centers the content at the current scale with no rotation. It does
// nothing while sizes are unknown.
func (c *Controller) Center(anim *Animation) error {
	ctx, ok := c.sizedContext("center")
	if !ok {
		return c.disposedErr()
	}
	content, viewport := *ctx.ContentSize, *ctx.ViewportSize
	return c.applyTarget(ctx, c.state.Scale, func(scale float64) State {
		return CenterContent(content, viewport, scale)
	}, anim)
}

// CenterOnRect puts the center of rect (content coordinates) at the viewport
// center at the current scale.
func (c *Controller) CenterOnRect(rect Rect, anim *Animation) error {
	ctx, ok := c.sizedContext("center on rect")
	if !ok {
		return c.disposedErr()
	}
	viewport := *ctx.ViewportSize
	return c.applyTarget(ctx, c.state.Scale, func(scale float64) State {
		return CenterOnPoint(rect.Center(), viewport, scale)
	}, anim)
}

// ZoomToRegion fits rect (content coordinates) into the viewport less
// padding and centers on it.
func (c *Controller) ZoomToRegion(rect Rect, padding float64, anim *Animation) error {
	ctx, ok := c.sizedContext("zoom to region")
	if !ok {
		return c.disposedErr()
	}
	viewport := *ctx.ViewportSize
	fit := ZoomToRegion(rect, viewport, padding)
	return c.applyTarget(ctx, fit.Scale, func(scale float64) State {
		return CenterOnPoint(rect.Center(), viewport, scale)
	}, anim)
}

// Reset returns to the state the controller was created with.
func (c *Controller) Reset(anim *Animation) error {
	return c.AnimateTo(c.initial, anim)
}

// ConstrainToBounds immediately keeps the content inside the viewport using
// the given sizes. It reports whether a new state was published.
func (c *Controller) ConstrainToBounds(content, viewport Size) bool {
	origin, offset := AlignmentMetrics(&content, &viewport, c.alignment)
	next := c.state.ConstrainToViewport(content, viewport, origin, offset)
	if next == c.state {
		return false
	}
	return c.UpdateState(next)
}

// VisibleRect returns the part of the content currently visible, in content
// coordinates. ok is false while the viewport size is unknown.
func (c *Controller) VisibleRect() (r Rect, ok bool) {
	ctx := c.Context()
	if ctx.ViewportSize == nil {
		return Rect{}, false
	}
	return c.state.VisibleBounds(*ctx.ViewportSize, ctx.AlignmentOrigin, ctx.AlignmentOffset), true
}

// sizedContext returns the current context when both sizes are known.
func (c *Controller) sizedContext(op string) (Context, bool) {
	if c.disposed {
		return Context{}, false
	}
	ctx := c.Context()
	if !ctx.HasSizes() {
		Logger().Debug("operation skipped: sizes unknown", slog.String("op", op))
		return ctx, false
	}
	return ctx, true
}

func (c *Controller) disposedErr() error {
	if c.disposed {
		return ErrDisposed
	}
	return nil
}

// applyTarget clamps scale, builds the unaligned target at the clamped
// scale, corrects it for alignment, runs it through OnResult only, and
// moves there.
func (c *Controller) applyTarget(ctx Context, scale float64, build func(scale float64) State, anim *Animation) error {
	scale = clampScale(scale, c.minScale, c.maxScale)
	target := alignPlain(build(scale), ctx.AlignmentOrigin, ctx.AlignmentOffset)
	target = c.behavior.OnResult(target, ctx.WithState(target))
	return c.AnimateTo(target, anim)
}
