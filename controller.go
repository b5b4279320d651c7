package viewer

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// SizeProvider reports a size that may not be known yet. Providers are
// queried fresh on every resolution pass.
type SizeProvider func() (Size, bool)

// FixedSize returns a SizeProvider that always reports s.
func FixedSize(s Size) SizeProvider {
	return func() (Size, bool) { return s, true }
}

// Options configures a new Controller.
type Options struct {
	// InitialScale defaults to 1 when zero.
	InitialScale    float64
	InitialOffset   Vec2
	InitialRotation float64

	// MinScale and MaxScale bound resolved scales. A nil bound leaves that
	// side open.
	MinScale *float64
	MaxScale *float64

	Alignment Alignment

	// Behavior defaults to NoopBehavior.
	Behavior Behavior

	ContentSize  SizeProvider
	ViewportSize SizeProvider

	// TickSource is required for animated operations and flings.
	TickSource TickSource

	// Debug enables extra checks on published states.
	Debug bool
}

// Controller owns the current transform and is the only way to change it.
// All work happens on the caller's goroutine; a Controller is not safe for
// concurrent use.
type Controller struct {
	state   State
	initial State

	behavior  Behavior
	alignment Alignment
	minScale  *float64
	maxScale  *float64

	contentSize  SizeProvider
	viewportSize SizeProvider
	ticks        TickSource

	handlers handlerRegistry
	sink     EventSink

	owner    uuid.UUID
	attached bool
	disposed bool
	debug    bool

	panning bool
	scaling bool

	anim  *transition
	fling *flingRun
}

// NewController creates a Controller from opts. It panics if the scale
// limits are inverted or the initial scale is not positive.
func NewController(opts Options) *Controller {
	scale := opts.InitialScale
	if scale == 0 {
		scale = 1
	}
	if scale < 0 {
		panic(fmt.Sprintf("viewer: initial scale must be positive, got %v", scale))
	}
	mustValidLimits(opts.MinScale, opts.MaxScale)

	behavior := opts.Behavior
	if behavior == nil {
		behavior = NoopBehavior{}
	}
	initial := State{Scale: scale, Offset: opts.InitialOffset, Rotation: opts.InitialRotation}
	return &Controller{
		state:        initial,
		initial:      initial,
		behavior:     behavior,
		alignment:    opts.Alignment,
		minScale:     copyFloat(opts.MinScale),
		maxScale:     copyFloat(opts.MaxScale),
		contentSize:  opts.ContentSize,
		viewportSize: opts.ViewportSize,
		ticks:        opts.TickSource,
		debug:        opts.Debug,
	}
}

func mustValidLimits(min, max *float64) {
	if min != nil && *min <= 0 {
		panic(fmt.Sprintf("viewer: min scale must be positive, got %v", *min))
	}
	if min != nil && max != nil && *min > *max {
		panic(fmt.Sprintf("viewer: min scale %v exceeds max scale %v", *min, *max))
	}
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return ptr(*v)
}

// --- Ownership and lifecycle ---

// Attach binds the controller to owner. Attaching again with the same owner
// is a no-op; a different owner gets ErrAlreadyAttached.
func (c *Controller) Attach(owner uuid.UUID) error {
	if c.disposed {
		return ErrDisposed
	}
	if c.attached {
		if c.owner == owner {
			return nil
		}
		return fmt.Errorf("attach %s: %w", owner, ErrAlreadyAttached)
	}
	c.owner = owner
	c.attached = true
	Logger().Info("controller attached", slog.String("owner", owner.String()))
	return nil
}

// Detach releases the controller from owner.
func (c *Controller) Detach(owner uuid.UUID) error {
	if !c.attached || c.owner != owner {
		return fmt.Errorf("detach %s: %w", owner, ErrNotAttached)
	}
	c.StopAnimation()
	c.StopFling()
	c.attached = false
	c.owner = uuid.Nil
	Logger().Info("controller detached", slog.String("owner", owner.String()))
	return nil
}

// Attached reports whether an owner currently holds the controller.
func (c *Controller) Attached() bool { return c.attached }

// Dispose cancels any running animation or fling and makes the controller
// inert. Further mutations are ignored or return ErrDisposed.
func (c *Controller) Dispose() {
	if c.disposed {
		return
	}
	c.StopAnimation()
	c.StopFling()
	c.disposed = true
	c.attached = false
	c.sink = nil
	c.handlers = handlerRegistry{}
	Logger().Info("controller disposed")
}

// IsDisposed reports whether Dispose has been called.
func (c *Controller) IsDisposed() bool { return c.disposed }

// --- Configuration ---

// State returns the current published state.
func (c *Controller) State() State { return c.state }

// InitialState returns the state the controller was created with.
func (c *Controller) InitialState() State { return c.initial }

// Behavior returns the active behavior.
func (c *Controller) Behavior() Behavior { return c.behavior }

// SetBehavior replaces the active behavior. nil installs NoopBehavior.
func (c *Controller) SetBehavior(b Behavior) {
	if b == nil {
		b = NoopBehavior{}
	}
	c.behavior = b
}

// Alignment returns the content alignment anchor.
func (c *Controller) Alignment() Alignment { return c.alignment }

// SetAlignment sets the content alignment anchor used by later passes.
func (c *Controller) SetAlignment(a Alignment) { c.alignment = a }

// ScaleLimits returns copies of the configured scale bounds.
func (c *Controller) ScaleLimits() (min, max *float64) {
	return copyFloat(c.minScale), copyFloat(c.maxScale)
}

// SetScaleLimits replaces the scale bounds. It panics if min > max.
// The current state is not re-clamped until the next resolution pass.
func (c *Controller) SetScaleLimits(min, max *float64) {
	mustValidLimits(min, max)
	c.minScale = copyFloat(min)
	c.maxScale = copyFloat(max)
}

// SetContentSizeProvider sets the content size source.
func (c *Controller) SetContentSizeProvider(p SizeProvider) { c.contentSize = p }

// SetViewportSizeProvider sets the viewport size source.
func (c *Controller) SetViewportSizeProvider(p SizeProvider) { c.viewportSize = p }

// SetTickSource sets the tick source used for animations and flings.
func (c *Controller) SetTickSource(t TickSource) { c.ticks = t }

// SetDebug toggles extra checks on published states.
func (c *Controller) SetDebug(enabled bool) { c.debug = enabled }

// --- Resolution ---

func querySize(p SizeProvider) *Size {
	if p == nil {
		return nil
	}
	if s, ok := p(); ok {
		return &s
	}
	return nil
}

// buildContext assembles a resolution context around starting.
func (c *Controller) buildContext(starting State) Context {
	content := querySize(c.contentSize)
	viewport := querySize(c.viewportSize)
	origin, offset := AlignmentMetrics(content, viewport, c.alignment)
	return Context{
		State:           starting,
		ContentSize:     content,
		ViewportSize:    viewport,
		MinScale:        c.minScale,
		MaxScale:        c.maxScale,
		Alignment:       c.alignment,
		AlignmentOrigin: origin,
		AlignmentOffset: offset,
	}
}

// Context returns a resolution context around the current state.
func (c *Controller) Context() Context {
	return c.buildContext(c.state)
}

// ResolveInteraction runs req through the behavior pipeline, scale limits,
// and the transformer, starting from base or the current state when base
// is nil. It does not publish the result.
func (c *Controller) ResolveInteraction(req Request, base *State) State {
	starting := c.state
	if base != nil {
		starting = *base
	}
	ctx := c.buildContext(starting)

	req = c.behavior.OnRequest(req, ctx)
	if req.Scale != nil {
		if clamped := clampScale(*req.Scale, c.minScale, c.maxScale); clamped != *req.Scale {
			req = req.WithScale(clamped)
		}
	}

	next := ApplyInteraction(starting, req, ctx.AlignmentOrigin, ctx.AlignmentOffset)
	next = c.behavior.OnResult(next, ctx.WithState(next))

	Logger().Debug("resolved interaction", slog.Any("from", starting), slog.Any("to", next))
	return next
}

// ApplyInteraction resolves req against the current state and publishes
// the result.
func (c *Controller) ApplyInteraction(req Request) State {
	c.UpdateState(c.ResolveInteraction(req, nil))
	return c.state
}

// UpdateState publishes s and notifies observers synchronously. It returns
// false without notifying when s equals the current state or the controller
// is disposed.
func (c *Controller) UpdateState(s State) bool {
	if c.disposed || s == c.state {
		return false
	}
	if c.debug {
		debugCheckState(s)
	}
	c.state = s
	c.emit(EventStateChange)
	if c.IsTransforming() {
		c.emit(EventTransformUpdate)
	}
	return true
}

// --- Transient gesture flags ---

// IsPanning reports whether a pan gesture is in progress.
func (c *Controller) IsPanning() bool { return c.panning }

// IsScaling reports whether a scale gesture is in progress.
func (c *Controller) IsScaling() bool { return c.scaling }

// IsTransforming reports whether panning or scaling is in progress.
func (c *Controller) IsTransforming() bool { return c.panning || c.scaling }

// SetPanning updates the panning flag.
func (c *Controller) SetPanning(v bool) { c.setFlags(v, c.scaling) }

// SetScaling updates the scaling flag.
func (c *Controller) SetScaling(v bool) { c.setFlags(c.panning, v) }

// setFlags fires EventTransformStart and EventTransformEnd only on edges of
// IsTransforming.
func (c *Controller) setFlags(panning, scaling bool) {
	was := c.IsTransforming()
	c.panning, c.scaling = panning, scaling
	now := c.IsTransforming()
	switch {
	case !was && now:
		c.emit(EventTransformStart)
	case was && !now:
		c.emit(EventTransformEnd)
	}
}
