package viewer

import (
	"log/slog"
	"math"

	"golang.org/x/image/math/f64"
)

// constrainEpsilon is the offset correction below which ConstrainToViewport
// treats the state as already constrained.
const constrainEpsilon = 1e-9

// State is an immutable 2D transform of the content inside the viewport:
// uniform scale, translation, and rotation. Two states are equal iff all
// three fields are equal, so State can be compared with ==.
//
// Composition order is Translate(Offset) * Scale(Scale) * Rotate(Rotation):
// rotation is applied to content first, then scale, then the translation.
// Rotation is in radians and is never normalized.
type State struct {
	Scale    float64
	Offset   Vec2
	Rotation float64
}

// IdentityState is the untransformed state.
var IdentityState = State{Scale: 1}

// WithScale returns a copy of s with the given scale.
func (s State) WithScale(scale float64) State {
	s.Scale = scale
	return s
}

// WithOffset returns a copy of s with the given offset.
func (s State) WithOffset(offset Vec2) State {
	s.Offset = offset
	return s
}

// WithRotation returns a copy of s with the given rotation.
func (s State) WithRotation(rad float64) State {
	s.Rotation = rad
	return s
}

// Equal reports whether s and o describe the same transform.
func (s State) Equal(o State) bool {
	return s == o
}

// ApproxEqual reports whether every component of s and o differs by less
// than eps.
func (s State) ApproxEqual(o State, eps float64) bool {
	return math.Abs(s.Scale-o.Scale) < eps &&
		math.Abs(s.Offset.X-o.Offset.X) < eps &&
		math.Abs(s.Offset.Y-o.Offset.Y) < eps &&
		math.Abs(s.Rotation-o.Rotation) < eps
}

// LogValue implements slog.LogValuer.
func (s State) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("scale", s.Scale),
		slog.Float64("x", s.Offset.X),
		slog.Float64("y", s.Offset.Y),
		slog.Float64("rotation", s.Rotation),
	)
}

// ToMatrix returns Translate(Offset) * Scale(Scale) * Rotate(Rotation).
func (s State) ToMatrix() f64.Aff3 {
	m := multiplyAff(translateAff(s.Offset.X, s.Offset.Y), scaleAff(s.Scale))
	return multiplyAff(m, rotateAff(s.Rotation))
}

// ScreenMatrix returns the full content-to-screen mapping including the
// alignment metrics. Renderers that do not apply alignment themselves should
// draw content with this matrix. It agrees with ContentToScreen.
func (s State) ScreenMatrix(alignOrigin, alignOffset Vec2) f64.Aff3 {
	pivot := alignOrigin.Add(alignOffset).Add(s.Offset)
	m := multiplyAff(translateAff(pivot.X, pivot.Y), scaleAff(s.Scale))
	m = multiplyAff(m, rotateAff(s.Rotation))
	return multiplyAff(m, translateAff(-alignOrigin.X, -alignOrigin.Y))
}

// ContentToScreen maps a content-space point to screen space.
func (s State) ContentToScreen(p, alignOrigin, alignOffset Vec2) Vec2 {
	q := p.Sub(alignOrigin).Rotate(s.Rotation).Mul(s.Scale)
	return q.Add(alignOffset).Add(s.Offset).Add(alignOrigin)
}

// ScreenToContent maps a screen-space point to content space. It is the
// exact inverse of ContentToScreen.
func (s State) ScreenToContent(p, alignOrigin, alignOffset Vec2) Vec2 {
	q := p.Sub(alignOffset).Sub(s.Offset).Sub(alignOrigin)
	return q.Div(s.Scale).Rotate(-s.Rotation).Add(alignOrigin)
}

// ContentBounds returns the screen-space axis-aligned bounding box of the
// content's four corners under the full transform.
func (s State) ContentBounds(content Size, alignOrigin, alignOffset Vec2) Rect {
	return boundsOf(
		s.ContentToScreen(Vec2{0, 0}, alignOrigin, alignOffset),
		s.ContentToScreen(Vec2{content.Width, 0}, alignOrigin, alignOffset),
		s.ContentToScreen(Vec2{content.Width, content.Height}, alignOrigin, alignOffset),
		s.ContentToScreen(Vec2{0, content.Height}, alignOrigin, alignOffset),
	)
}

// VisibleBounds returns the content-space axis-aligned bounding box of the
// viewport's four corners.
func (s State) VisibleBounds(viewport Size, alignOrigin, alignOffset Vec2) Rect {
	inv := invertAff(s.ScreenMatrix(alignOrigin, alignOffset))
	return boundsOf(
		transformAff(inv, Vec2{0, 0}),
		transformAff(inv, Vec2{viewport.Width, 0}),
		transformAff(inv, Vec2{viewport.Width, viewport.Height}),
		transformAff(inv, Vec2{0, viewport.Height}),
	)
}

// ConstrainToViewport keeps the transformed content inside the viewport.
// On each axis, content whose transformed extent fits the viewport is
// centered; larger content is shifted so it keeps covering the viewport.
// Returns s itself when no correction is needed.
func (s State) ConstrainToViewport(content, viewport Size, alignOrigin, alignOffset Vec2) State {
	bb := s.ContentBounds(content, alignOrigin, alignOffset)
	dx := constrainAxis(bb.X, bb.Width, viewport.Width)
	dy := constrainAxis(bb.Y, bb.Height, viewport.Height)
	if math.Abs(dx) < constrainEpsilon && math.Abs(dy) < constrainEpsilon {
		return s
	}
	return s.WithOffset(s.Offset.Add(Vec2{dx, dy}))
}

// constrainAxis returns the shift needed on one axis for a box starting at
// start with the given extent inside a viewport of length view.
func constrainAxis(start, extent, view float64) float64 {
	if extent <= view {
		return view/2 - (start + extent/2)
	}
	if start > 0 {
		return -start
	}
	if end := start + extent; end < view {
		return view - end
	}
	return 0
}

// FitContent returns the largest unrotated state at which content fits the
// viewport shrunk by padding on every side, centered in the viewport.
//
// Like CenterContent and ZoomToRegion, the result is expressed without
// alignment metrics (screen = content*scale + offset).
func FitContent(content, viewport Size, padding float64) State {
	availW := viewport.Width - 2*padding
	availH := viewport.Height - 2*padding
	scale := math.Min(availW/content.Width, availH/content.Height)
	return CenterContent(content, viewport, scale)
}

// CenterContent returns an unrotated state that centers content in the
// viewport at the given scale.
func CenterContent(content, viewport Size, scale float64) State {
	return State{
		Scale:  scale,
		Offset: viewport.Vec().Sub(content.Vec().Mul(scale)).Div(2),
	}
}

// ZoomToRegion returns the unrotated state that fits region (in content
// coordinates) inside the padded viewport and centers the view on the
// region's center.
func ZoomToRegion(region Rect, viewport Size, padding float64) State {
	scale := FitContent(region.Size(), viewport, padding).Scale
	return CenterOnPoint(region.Center(), viewport, scale)
}

// CenterOnPoint returns the unrotated state at the given scale that puts the
// content point p at the viewport center.
func CenterOnPoint(p Vec2, viewport Size, scale float64) State {
	return State{
		Scale:  scale,
		Offset: viewport.Vec().Div(2).Sub(p.Mul(scale)),
	}
}

// alignPlain converts an unrotated state expressed without alignment metrics
// into the equivalent state under the given metrics.
func alignPlain(s State, alignOrigin, alignOffset Vec2) State {
	corr := alignOrigin.Mul(s.Scale).Sub(alignOrigin).Sub(alignOffset)
	return s.WithOffset(s.Offset.Add(corr))
}
