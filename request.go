package viewer

// Request describes a requested change to the transform. A nil field means
// "no change requested" for that component, not zero. Scale and Rotation
// are absolute targets; PanDelta is relative to the resolved offset.
type Request struct {
	PanDelta   *Vec2
	Scale      *float64
	Rotation   *float64
	FocalPoint *Vec2

	// IncludePanDeltaWhenScaling adds PanDelta on top of the focal-anchored
	// offset when the request also changes scale or rotation (pinch + drag).
	IncludePanDeltaWhenScaling bool
}

// PanRequest returns a request that only pans by delta.
func PanRequest(delta Vec2) Request {
	return Request{PanDelta: &delta}
}

// ScaleRequest returns a request for an absolute scale, anchored at focal
// when focal is non-nil.
func ScaleRequest(scale float64, focal *Vec2) Request {
	return Request{Scale: &scale, FocalPoint: focal}
}

// RotationRequest returns a request for an absolute rotation, anchored at
// focal when focal is non-nil.
func RotationRequest(rad float64, focal *Vec2) Request {
	return Request{Rotation: &rad, FocalPoint: focal}
}

// WithPanDelta returns a copy of r with the pan delta replaced.
func (r Request) WithPanDelta(delta Vec2) Request {
	r.PanDelta = &delta
	return r
}

// WithoutPanDelta returns a copy of r with no pan delta.
func (r Request) WithoutPanDelta() Request {
	r.PanDelta = nil
	return r
}

// WithScale returns a copy of r with the target scale replaced.
func (r Request) WithScale(scale float64) Request {
	r.Scale = &scale
	return r
}

// WithRotation returns a copy of r with the target rotation replaced.
func (r Request) WithRotation(rad float64) Request {
	r.Rotation = &rad
	return r
}

// WithFocalPoint returns a copy of r with the focal point replaced.
func (r Request) WithFocalPoint(p Vec2) Request {
	r.FocalPoint = &p
	return r
}

// changesScaleOrRotation reports whether r targets a scale or rotation
// different from the given state.
func (r Request) changesScaleOrRotation(s State) bool {
	return (r.Scale != nil && *r.Scale != s.Scale) ||
		(r.Rotation != nil && *r.Rotation != s.Rotation)
}

// Context is the ambient state a behavior or transformer needs to resolve a
// request. AlignmentOrigin and AlignmentOffset are recomputed on every
// resolution pass from the sizes and the alignment.
type Context struct {
	State        State
	ContentSize  *Size
	ViewportSize *Size
	MinScale     *float64
	MaxScale     *float64
	Alignment    Alignment

	AlignmentOrigin Vec2
	AlignmentOffset Vec2
}

// WithState returns a copy of c with State replaced.
func (c Context) WithState(s State) Context {
	c.State = s
	return c
}

// HasSizes reports whether both content and viewport sizes are known.
func (c Context) HasSizes() bool {
	return c.ContentSize != nil && c.ViewportSize != nil
}

// AlignmentMetrics computes the alignment origin (the content point the
// anchor selects) and the alignment offset (the translation that lines that
// point up with the matching viewport point). Both are zero if either size
// is unknown.
func AlignmentMetrics(content, viewport *Size, a Alignment) (origin, offset Vec2) {
	if content == nil || viewport == nil {
		return Vec2{}, Vec2{}
	}
	f := a.factor()
	origin = Vec2{content.Width * f.X, content.Height * f.Y}
	offset = Vec2{(viewport.Width - content.Width) * f.X, (viewport.Height - content.Height) * f.Y}
	return origin, offset
}

// clampScale clamps v to [min, max]; a nil bound leaves that side open.
func clampScale(v float64, min, max *float64) float64 {
	if min != nil && v < *min {
		v = *min
	}
	if max != nil && v > *max {
		v = *max
	}
	return v
}
