package viewer

import (
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"
)

func sizedController(opts Options, content, viewport Size) *Controller {
	opts.ContentSize = FixedSize(content)
	opts.ViewportSize = FixedSize(viewport)
	return NewController(opts)
}

func TestNewControllerDefaults(t *testing.T) {
	c := NewController(Options{})
	if c.State() != IdentityState {
		t.Errorf("state = %+v, want identity", c.State())
	}
	if c.InitialState() != IdentityState {
		t.Errorf("initial = %+v, want identity", c.InitialState())
	}
	if _, ok := c.Behavior().(NoopBehavior); !ok {
		t.Errorf("behavior = %T, want NoopBehavior", c.Behavior())
	}
	if c.IsTransforming() || c.IsAnimating() || c.IsFlinging() {
		t.Error("new controller should be idle")
	}
}

func TestNewControllerPanicsOnInvertedLimits(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for min > max")
		}
	}()
	NewController(Options{MinScale: Float(3), MaxScale: Float(1)})
}

func TestNewControllerPanicsOnNegativeScale(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for negative initial scale")
		}
	}()
	NewController(Options{InitialScale: -1})
}

func TestSetScaleLimitsPanics(t *testing.T) {
	c := NewController(Options{})
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for min > max")
		}
	}()
	c.SetScaleLimits(Float(2), Float(1))
}

func TestScaleLimitsAreCopied(t *testing.T) {
	min := 0.5
	c := NewController(Options{MinScale: &min})
	min = 3
	got, max := c.ScaleLimits()
	if *got != 0.5 || max != nil {
		t.Errorf("limits = %v, %v", *got, max)
	}
}

func TestZoomRespectsScaleLimits(t *testing.T) {
	c := NewController(Options{MinScale: Float(0.5), MaxScale: Float(2)})

	if err := c.Zoom(10, nil, nil); err != nil {
		t.Fatal(err)
	}
	assertNear(t, "zoomed in", c.State().Scale, 2)

	if err := c.Zoom(-10, nil, nil); err != nil {
		t.Fatal(err)
	}
	assertNear(t, "zoomed out", c.State().Scale, 0.5)
}

func TestZoomAnchorsViewportCenter(t *testing.T) {
	content := Size{400, 400}
	viewport := Size{200, 200}
	c := sizedController(Options{}, content, viewport)
	ctx := c.Context()
	center := Vec2{100, 100}
	under := c.State().ScreenToContent(center, ctx.AlignmentOrigin, ctx.AlignmentOffset)

	if err := c.Zoom(1, nil, nil); err != nil {
		t.Fatal(err)
	}
	assertNear(t, "scale", c.State().Scale, 2)
	assertVec(t, "anchor", c.State().ContentToScreen(under, ctx.AlignmentOrigin, ctx.AlignmentOffset), center)
}

func TestUpdateStateIdenticalIsNoop(t *testing.T) {
	c := NewController(Options{})
	calls := 0
	c.OnStateChange(func(State) { calls++ })

	if c.UpdateState(c.State()) {
		t.Error("UpdateState with the current state reported a change")
	}
	if calls != 0 {
		t.Errorf("observer called %d times, want 0", calls)
	}

	if !c.UpdateState(State{Scale: 2}) {
		t.Error("UpdateState with a new state reported no change")
	}
	if calls != 1 {
		t.Errorf("observer called %d times, want 1", calls)
	}
}

func TestObserverSeesPublishedState(t *testing.T) {
	c := NewController(Options{})
	var got State
	c.OnStateChange(func(s State) {
		got = s
		if c.State() != s {
			t.Error("observer ran before the state was published")
		}
	})
	c.ApplyInteraction(PanRequest(Vec2{3, 4}))
	assertVec(t, "observed offset", got.Offset, Vec2{3, 4})
}

func TestCallbackHandleRemove(t *testing.T) {
	c := NewController(Options{})
	calls := 0
	h := c.OnStateChange(func(State) { calls++ })
	c.ApplyInteraction(PanRequest(Vec2{1, 0}))
	h.Remove()
	c.ApplyInteraction(PanRequest(Vec2{1, 0}))
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	// Removing twice is harmless.
	h.Remove()
	CallbackHandle{}.Remove()
}

func TestTransformFlagsAreEdgeTriggered(t *testing.T) {
	c := NewController(Options{})
	var events []EventType
	for _, et := range []EventType{EventTransformStart, EventTransformEnd} {
		c.On(et, func(e Event) { events = append(events, e.Type) })
	}

	c.SetPanning(true)
	c.SetScaling(true)
	c.SetPanning(false)
	c.SetScaling(false)
	c.SetScaling(false)

	if len(events) != 2 || events[0] != EventTransformStart || events[1] != EventTransformEnd {
		t.Errorf("events = %v, want [transform_start transform_end]", events)
	}
}

func TestTransformUpdateOnlyWhileTransforming(t *testing.T) {
	c := NewController(Options{})
	updates := 0
	c.On(EventTransformUpdate, func(Event) { updates++ })

	c.ApplyInteraction(PanRequest(Vec2{1, 0}))
	if updates != 0 {
		t.Errorf("update fired while idle")
	}
	c.SetPanning(true)
	c.ApplyInteraction(PanRequest(Vec2{1, 0}))
	c.SetPanning(false)
	if updates != 1 {
		t.Errorf("updates = %d, want 1", updates)
	}
}

func TestAttachDetach(t *testing.T) {
	c := NewController(Options{})
	a, b := uuid.New(), uuid.New()

	if err := c.Attach(a); err != nil {
		t.Fatal(err)
	}
	if err := c.Attach(a); err != nil {
		t.Errorf("re-attach by same owner: %v", err)
	}
	if err := c.Attach(b); !errors.Is(err, ErrAlreadyAttached) {
		t.Errorf("attach by other owner: err = %v, want ErrAlreadyAttached", err)
	}
	if err := c.Detach(b); !errors.Is(err, ErrNotAttached) {
		t.Errorf("detach by other owner: err = %v, want ErrNotAttached", err)
	}
	if err := c.Detach(a); err != nil {
		t.Fatal(err)
	}
	if c.Attached() {
		t.Error("still attached after detach")
	}
	if err := c.Attach(b); err != nil {
		t.Errorf("attach after detach: %v", err)
	}
}

func TestDispose(t *testing.T) {
	c := NewController(Options{})
	calls := 0
	c.OnStateChange(func(State) { calls++ })
	c.Dispose()
	c.Dispose()

	if !c.IsDisposed() {
		t.Fatal("IsDisposed = false")
	}
	if c.UpdateState(State{Scale: 3}) {
		t.Error("UpdateState succeeded after dispose")
	}
	if err := c.Pan(Vec2{1, 1}, nil); !errors.Is(err, ErrDisposed) {
		t.Errorf("Pan err = %v, want ErrDisposed", err)
	}
	if err := c.FitToScreen(0, nil); !errors.Is(err, ErrDisposed) {
		t.Errorf("FitToScreen err = %v, want ErrDisposed", err)
	}
	if err := c.Attach(uuid.New()); !errors.Is(err, ErrDisposed) {
		t.Errorf("Attach err = %v, want ErrDisposed", err)
	}
	if calls != 0 {
		t.Errorf("observer called %d times after dispose", calls)
	}
}

func TestSizeDependentOperationsNoopWithoutSizes(t *testing.T) {
	c := NewController(Options{ContentSize: FixedSize(Size{100, 100})})
	calls := 0
	c.OnStateChange(func(State) { calls++ })

	for name, op := range map[string]func() error{
		"fit":            func() error { return c.FitToScreen(10, nil) },
		"center":         func() error { return c.Center(nil) },
		"center on rect": func() error { return c.CenterOnRect(Rect{Width: 10, Height: 10}, nil) },
		"zoom to region": func() error { return c.ZoomToRegion(Rect{Width: 10, Height: 10}, 0, nil) },
	} {
		if err := op(); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
	if calls != 0 || c.State() != IdentityState {
		t.Errorf("state changed without sizes: %+v", c.State())
	}
	if _, ok := c.VisibleRect(); ok {
		t.Error("VisibleRect ok without viewport size")
	}
}

func TestSizeProviderQueriedFresh(t *testing.T) {
	viewport := Size{}
	known := false
	c := NewController(Options{
		ContentSize:  FixedSize(Size{200, 100}),
		ViewportSize: func() (Size, bool) { return viewport, known },
	})
	if err := c.FitToScreen(0, nil); err != nil {
		t.Fatal(err)
	}
	if c.State() != IdentityState {
		t.Fatal("fit applied before the viewport was known")
	}
	viewport, known = Size{400, 400}, true
	if err := c.FitToScreen(0, nil); err != nil {
		t.Fatal(err)
	}
	assertNear(t, "scale", c.State().Scale, 2)
}

func TestFitToScreenMapsCorners(t *testing.T) {
	content := Size{200, 100}
	viewport := Size{400, 400}
	for _, a := range []Alignment{AlignCenter, AlignTopLeft, AlignBottomRight} {
		c := sizedController(Options{Alignment: a}, content, viewport)
		if err := c.FitToScreen(0, nil); err != nil {
			t.Fatal(err)
		}
		ctx := c.Context()
		s := c.State()
		assertVec(t, "top-left", s.ContentToScreen(Vec2{0, 0}, ctx.AlignmentOrigin, ctx.AlignmentOffset), Vec2{0, 100})
		assertVec(t, "bottom-right", s.ContentToScreen(Vec2{200, 100}, ctx.AlignmentOrigin, ctx.AlignmentOffset), Vec2{400, 300})
	}
}

func TestFitToScreenClampsScale(t *testing.T) {
	c := sizedController(Options{MaxScale: Float(1.5)}, Size{200, 100}, Size{400, 400})
	if err := c.FitToScreen(0, nil); err != nil {
		t.Fatal(err)
	}
	ctx := c.Context()
	assertNear(t, "scale", c.State().Scale, 1.5)
	// Still centered at the clamped scale.
	mid := c.State().ContentToScreen(Vec2{100, 50}, ctx.AlignmentOrigin, ctx.AlignmentOffset)
	assertVec(t, "center", mid, Vec2{200, 200})
}

func TestCenterResetsRotation(t *testing.T) {
	c := sizedController(Options{InitialScale: 0.5, InitialRotation: 1}, Size{200, 100}, Size{400, 400})
	if err := c.Center(nil); err != nil {
		t.Fatal(err)
	}
	ctx := c.Context()
	s := c.State()
	assertNear(t, "rotation", s.Rotation, 0)
	assertNear(t, "scale", s.Scale, 0.5)
	assertVec(t, "center", s.ContentToScreen(Vec2{100, 50}, ctx.AlignmentOrigin, ctx.AlignmentOffset), Vec2{200, 200})
}

func TestZoomToRegionAndCenterOnRect(t *testing.T) {
	c := sizedController(Options{Alignment: AlignTopLeft}, Size{400, 400}, Size{200, 200})
	region := Rect{X: 50, Y: 50, Width: 100, Height: 50}

	if err := c.ZoomToRegion(region, 0, nil); err != nil {
		t.Fatal(err)
	}
	assertState(t, "zoom to region", c.State(), State{Scale: 2, Offset: Vec2{-100, -50}})

	if err := c.CenterOnRect(Rect{X: 300, Y: 300, Width: 20, Height: 20}, nil); err != nil {
		t.Fatal(err)
	}
	ctx := c.Context()
	assertVec(t, "rect center", c.State().ContentToScreen(Vec2{310, 310}, ctx.AlignmentOrigin, ctx.AlignmentOffset), Vec2{100, 100})
}

func TestRotateAndRotateTo(t *testing.T) {
	c := sizedController(Options{}, Size{100, 100}, Size{100, 100})
	if err := c.Rotate(math.Pi/2, nil, nil); err != nil {
		t.Fatal(err)
	}
	if err := c.Rotate(2*math.Pi, nil, nil); err != nil {
		t.Fatal(err)
	}
	// Rotation accumulates without wrapping.
	assertNear(t, "rotation", c.State().Rotation, 2.5*math.Pi)

	if err := c.RotateTo(0, nil, nil); err != nil {
		t.Fatal(err)
	}
	assertNear(t, "rotation", c.State().Rotation, 0)
	assertVec(t, "offset", c.State().Offset, Vec2{})
}

func TestReset(t *testing.T) {
	c := NewController(Options{InitialScale: 1.5, InitialOffset: Vec2{3, 4}})
	c.ApplyInteraction(PanRequest(Vec2{50, 50}))
	if err := c.Reset(nil); err != nil {
		t.Fatal(err)
	}
	if c.State() != c.InitialState() {
		t.Errorf("state = %+v, want %+v", c.State(), c.InitialState())
	}
}

func TestConstrainToBounds(t *testing.T) {
	c := NewController(Options{Alignment: AlignTopLeft, InitialOffset: Vec2{50, -20}})
	if !c.ConstrainToBounds(Size{200, 100}, Size{100, 100}) {
		t.Fatal("expected a correction")
	}
	assertVec(t, "offset", c.State().Offset, Vec2{0, 0})
	if c.ConstrainToBounds(Size{200, 100}, Size{100, 100}) {
		t.Error("second constrain should be a no-op")
	}
}

func TestResolveInteractionFromBase(t *testing.T) {
	c := NewController(Options{})
	base := State{Scale: 2, Offset: Vec2{10, 10}}
	got := c.ResolveInteraction(PanRequest(Vec2{1, 1}), &base)
	assertState(t, "resolved", got, State{Scale: 2, Offset: Vec2{11, 11}})
	if c.State() != IdentityState {
		t.Error("ResolveInteraction published a state")
	}
}

func TestBoundsBehaviorThroughController(t *testing.T) {
	c := sizedController(Options{Alignment: AlignTopLeft, Behavior: DefaultBoundsBehavior{}}, Size{200, 100}, Size{100, 100})
	c.ApplyInteraction(PanRequest(Vec2{50, -20}))
	assertVec(t, "offset", c.State().Offset, Vec2{0, 0})
}

func TestVisibleRect(t *testing.T) {
	c := sizedController(Options{Alignment: AlignTopLeft, InitialScale: 2}, Size{400, 400}, Size{200, 100})
	r, ok := c.VisibleRect()
	if !ok {
		t.Fatal("VisibleRect not ok")
	}
	assertNear(t, "width", r.Width, 100)
	assertNear(t, "height", r.Height, 50)
	assertNear(t, "size width", r.Size().Width, 100)

	// Zoomed in at the top-left corner: points near it are visible, the
	// middle of the content is not.
	if !r.Contains(50, 25) {
		t.Errorf("visible rect %+v does not contain (50, 25)", r)
	}
	if r.Contains(150, 75) {
		t.Errorf("visible rect %+v contains (150, 75)", r)
	}
}
