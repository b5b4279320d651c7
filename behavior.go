package viewer

import "math"

// Behavior is a policy layered onto the resolution pipeline. OnRequest
// adjusts a request before it is resolved; OnResult adjusts the resolved
// state. Implementations must not keep references to the context.
type Behavior interface {
	OnRequest(req Request, ctx Context) Request
	OnResult(s State, ctx Context) State
}

// NoopBehavior passes requests and states through unchanged. Embed it to
// implement only one half of Behavior.
type NoopBehavior struct{}

func (NoopBehavior) OnRequest(req Request, _ Context) Request { return req }
func (NoopBehavior) OnResult(s State, _ Context) State        { return s }

// CompositeBehavior runs behaviors in order. Each OnResult sees the state
// produced by the previous behavior, both as its argument and as ctx.State.
type CompositeBehavior struct {
	Behaviors []Behavior
}

// NewCompositeBehavior returns a CompositeBehavior over bs, skipping nils.
func NewCompositeBehavior(bs ...Behavior) *CompositeBehavior {
	c := &CompositeBehavior{Behaviors: make([]Behavior, 0, len(bs))}
	for _, b := range bs {
		if b != nil {
			c.Behaviors = append(c.Behaviors, b)
		}
	}
	return c
}

// OnRequest threads req through every behavior in order.
func (c *CompositeBehavior) OnRequest(req Request, ctx Context) Request {
	for _, b := range c.Behaviors {
		req = b.OnRequest(req, ctx)
	}
	return req
}

// OnResult threads s through every behavior in order.
func (c *CompositeBehavior) OnResult(s State, ctx Context) State {
	for _, b := range c.Behaviors {
		s = b.OnResult(s, ctx)
		ctx = ctx.WithState(s)
	}
	return s
}

// ScrollModeBehavior drops pan components the mode does not allow.
type ScrollModeBehavior struct {
	NoopBehavior
	Mode ScrollMode
}

func (b ScrollModeBehavior) OnRequest(req Request, _ Context) Request {
	if req.PanDelta == nil {
		return req
	}
	d := *req.PanDelta
	switch b.Mode {
	case ScrollHorizontal:
		d.Y = 0
	case ScrollVertical:
		d.X = 0
	case ScrollNone:
		d = Vec2{}
	}
	return req.WithPanDelta(d)
}

// AxisLockBehavior forces pans onto a single axis.
type AxisLockBehavior struct {
	NoopBehavior
	Axis PanAxis
}

func (b AxisLockBehavior) OnRequest(req Request, _ Context) Request {
	if req.PanDelta == nil {
		return req
	}
	d := *req.PanDelta
	axis := b.Axis
	if axis == AxisDominant {
		if math.Abs(d.X) >= math.Abs(d.Y) {
			axis = AxisX
		} else {
			axis = AxisY
		}
	}
	switch axis {
	case AxisX:
		d.Y = 0
	case AxisY:
		d.X = 0
	}
	return req.WithPanDelta(d)
}

// GridSnapBehavior rounds the resolved offset to a grid and, when ScaleStep
// is positive, the scale to a multiple of ScaleStep. A zero grid component
// disables snapping on that axis.
type GridSnapBehavior struct {
	NoopBehavior
	Grid      Vec2
	ScaleStep float64
}

func (b GridSnapBehavior) OnResult(s State, _ Context) State {
	out := s
	if b.Grid.X > 0 {
		out.Offset.X = math.Round(s.Offset.X/b.Grid.X) * b.Grid.X
	}
	if b.Grid.Y > 0 {
		out.Offset.Y = math.Round(s.Offset.Y/b.Grid.Y) * b.Grid.Y
	}
	if b.ScaleStep > 0 {
		if snapped := math.Round(s.Scale/b.ScaleStep) * b.ScaleStep; snapped > 0 {
			out.Scale = snapped
		}
	}
	return out
}

// BoundsBehavior keeps resolved states inside viewport bounds.
type BoundsBehavior interface {
	Behavior
	Constrain(s State, ctx Context) State
}

// DefaultBoundsBehavior centers content on axes where its transformed
// bounding box fits the viewport and clamps it to keep covering the
// viewport otherwise. States pass through unchanged while sizes are unknown.
type DefaultBoundsBehavior struct {
	NoopBehavior
}

func (b DefaultBoundsBehavior) OnResult(s State, ctx Context) State {
	return b.Constrain(s, ctx)
}

func (DefaultBoundsBehavior) Constrain(s State, ctx Context) State {
	if !ctx.HasSizes() {
		return s
	}
	return s.ConstrainToViewport(*ctx.ContentSize, *ctx.ViewportSize, ctx.AlignmentOrigin, ctx.AlignmentOffset)
}

var (
	_ Behavior       = NoopBehavior{}
	_ Behavior       = (*CompositeBehavior)(nil)
	_ Behavior       = ScrollModeBehavior{}
	_ Behavior       = AxisLockBehavior{}
	_ Behavior       = GridSnapBehavior{}
	_ BoundsBehavior = DefaultBoundsBehavior{}
)
