package viewer

import (
	"errors"
	"log/slog"
	"math"
	"time"
)

const (
	defaultDragDeadZone      = 4.0 // pixels
	defaultDoubleTapInterval = 300 * time.Millisecond
	defaultDoubleTapSlop     = 20.0 // pixels
	velocityWindow           = 100 * time.Millisecond
	maxVelocitySamples       = 16
)

// GestureConfig tunes how a GestureTracker turns raw input into requests.
// Zero fields take the defaults from DefaultGestureConfig.
type GestureConfig struct {
	DragDeadZone      float64
	DoubleTapInterval time.Duration
	DoubleTapSlop     float64
	// DoubleTapZoom is the zoom factor applied by a double tap.
	DoubleTapZoom float64
	// ScrollZoomFactor is the zoom factor per wheel unit with Ctrl held.
	ScrollZoomFactor float64
	// ScrollPanStep is the pan distance in pixels per wheel unit.
	ScrollPanStep float64
	KeyPanStep    float64
	KeyZoomFactor float64
	KeyRotateStep float64

	DisableRotation  bool
	DisableFling     bool
	DisableDoubleTap bool

	// Animation is used for double-tap and keyboard transitions when the
	// controller has a tick source.
	Animation Animation
}

// DefaultGestureConfig returns the default gesture tuning.
func DefaultGestureConfig() GestureConfig {
	return GestureConfig{
		DragDeadZone:      defaultDragDeadZone,
		DoubleTapInterval: defaultDoubleTapInterval,
		DoubleTapSlop:     defaultDoubleTapSlop,
		DoubleTapZoom:     1.0,
		ScrollZoomFactor:  0.1,
		ScrollPanStep:     40,
		KeyPanStep:        50,
		KeyZoomFactor:     0.2,
		KeyRotateStep:     math.Pi / 12,
		Animation:         DefaultAnimation,
	}
}

func (g GestureConfig) withDefaults() GestureConfig {
	d := DefaultGestureConfig()
	if g.DragDeadZone == 0 {
		g.DragDeadZone = d.DragDeadZone
	}
	if g.DoubleTapInterval == 0 {
		g.DoubleTapInterval = d.DoubleTapInterval
	}
	if g.DoubleTapSlop == 0 {
		g.DoubleTapSlop = d.DoubleTapSlop
	}
	if g.DoubleTapZoom == 0 {
		g.DoubleTapZoom = d.DoubleTapZoom
	}
	if g.ScrollZoomFactor == 0 {
		g.ScrollZoomFactor = d.ScrollZoomFactor
	}
	if g.ScrollPanStep == 0 {
		g.ScrollPanStep = d.ScrollPanStep
	}
	if g.KeyPanStep == 0 {
		g.KeyPanStep = d.KeyPanStep
	}
	if g.KeyZoomFactor == 0 {
		g.KeyZoomFactor = d.KeyZoomFactor
	}
	if g.KeyRotateStep == 0 {
		g.KeyRotateStep = d.KeyRotateStep
	}
	if g.Animation.Duration == 0 {
		g.Animation = d.Animation
	}
	return g
}

// --- Per-gesture session state ---

type pointerState struct {
	id    int
	start Vec2
	pos   Vec2
}

type velocitySample struct {
	pos Vec2
	at  time.Duration
}

// gestureSession tracks one gesture from first pointer down to last
// pointer up. It is reset when the gesture ends.
type gestureSession struct {
	panning  bool
	pinching bool
	pinched  bool

	lastFocal Vec2

	initialSpan   float64
	initialAngle  float64
	startScale    float64
	startRotation float64

	samples []velocitySample
}

func (s *gestureSession) addSample(p Vec2, at time.Duration) {
	if len(s.samples) == maxVelocitySamples {
		copy(s.samples, s.samples[1:])
		s.samples = s.samples[:maxVelocitySamples-1]
	}
	s.samples = append(s.samples, velocitySample{pos: p, at: at})
}

// velocity estimates px/s from samples inside the window ending at now.
// A pointer held still for longer than the window has no velocity.
func (s *gestureSession) velocity(now time.Duration) Vec2 {
	n := len(s.samples)
	if n < 2 {
		return Vec2{}
	}
	last := s.samples[n-1]
	if now-last.at > velocityWindow {
		return Vec2{}
	}
	first := last
	for i := n - 2; i >= 0; i-- {
		if last.at-s.samples[i].at > velocityWindow {
			break
		}
		first = s.samples[i]
	}
	dt := (last.at - first.at).Seconds()
	if dt <= 0 {
		return Vec2{}
	}
	return last.pos.Sub(first.pos).Div(dt)
}

type lastTap struct {
	pos   Vec2
	at    time.Duration
	valid bool
}

// --- Synthetic input ---

type syntheticKind uint8

const (
	synthDown syntheticKind = iota
	synthMove
	synthUp
)

type syntheticEvent struct {
	kind syntheticKind
	id   int
	pos  Vec2
}

// synthetic pointer IDs stay clear of host touch IDs.
const (
	injectPointerA = 1 << 20
	injectPointerB = injectPointerA + 1
)

// GestureTracker turns classified pointer, wheel, and key input into
// controller requests: one pointer pans, two pointers pinch-zoom and rotate
// around their midpoint, a fast release flings, and a double tap zooms.
//
// Call Update once per frame before feeding that frame's input.
type GestureTracker struct {
	c   *Controller
	cfg GestureConfig

	now      time.Duration
	pointers []pointerState // in press order
	session  gestureSession
	tap      lastTap

	injectQueue [][]syntheticEvent
}

// NewGestureTracker returns a tracker driving c.
func NewGestureTracker(c *Controller, cfg GestureConfig) *GestureTracker {
	return &GestureTracker{c: c, cfg: cfg.withDefaults()}
}

// Config returns the tracker's effective configuration.
func (g *GestureTracker) Config() GestureConfig { return g.cfg }

// Update advances the tracker clock by dt and replays one frame of injected
// input, if any is queued.
func (g *GestureTracker) Update(dt time.Duration) {
	g.now += dt
	if len(g.injectQueue) == 0 {
		return
	}
	batch := g.injectQueue[0]
	copy(g.injectQueue, g.injectQueue[1:])
	g.injectQueue[len(g.injectQueue)-1] = nil
	g.injectQueue = g.injectQueue[:len(g.injectQueue)-1]
	for _, ev := range batch {
		switch ev.kind {
		case synthDown:
			g.PointerDown(ev.id, ev.pos)
		case synthMove:
			g.PointerMove(ev.id, ev.pos)
		case synthUp:
			g.PointerUp(ev.id, ev.pos)
		}
	}
}

// Pending reports whether injected input is still queued.
func (g *GestureTracker) Pending() bool { return len(g.injectQueue) > 0 }

// Active reports whether a gesture is in progress.
func (g *GestureTracker) Active() bool { return len(g.pointers) > 0 }

func (g *GestureTracker) pointer(id int) *pointerState {
	for i := range g.pointers {
		if g.pointers[i].id == id {
			return &g.pointers[i]
		}
	}
	return nil
}

func (g *GestureTracker) animation() *Animation {
	if g.c.ticks == nil {
		return nil
	}
	a := g.cfg.Animation
	return &a
}

// PointerDown records a new pointer at screen position pos.
func (g *GestureTracker) PointerDown(id int, pos Vec2) {
	if g.pointer(id) != nil {
		return
	}
	if len(g.pointers) == 0 {
		// New gesture: interrupt inertia and programmatic motion.
		g.c.StopFling()
		g.c.StopAnimation()
		g.session = gestureSession{lastFocal: pos}
		g.session.addSample(pos, g.now)
	}
	g.pointers = append(g.pointers, pointerState{id: id, start: pos, pos: pos})
	if len(g.pointers) == 2 {
		g.beginPinch()
	}
}

// PointerMove updates a pressed pointer's position.
func (g *GestureTracker) PointerMove(id int, pos Vec2) {
	p := g.pointer(id)
	if p == nil || p.pos == pos {
		return
	}
	p.pos = pos

	if g.session.pinching {
		g.updatePinch()
		return
	}
	if !g.session.panning {
		if pos.Sub(p.start).Length() <= g.cfg.DragDeadZone {
			return
		}
		g.session.panning = true
		g.c.SetPanning(true)
	}
	delta := pos.Sub(g.session.lastFocal)
	g.session.lastFocal = pos
	g.session.addSample(pos, g.now)
	g.c.ApplyInteraction(PanRequest(delta))
}

// PointerUp releases a pointer. Releasing the last pointer ends the gesture
// and may start a fling or register a tap.
func (g *GestureTracker) PointerUp(id int, pos Vec2) {
	idx := -1
	for i := range g.pointers {
		if g.pointers[i].id == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	g.pointers = append(g.pointers[:idx], g.pointers[idx+1:]...)

	switch {
	case len(g.pointers) == 1 && g.session.pinching:
		// Pinch ended; the remaining pointer keeps panning.
		g.session.pinching = false
		g.session.panning = true
		g.c.SetPanning(true)
		g.c.SetScaling(false)
		rest := g.pointers[0].pos
		g.session.lastFocal = rest
		g.session.samples = g.session.samples[:0]
		g.session.addSample(rest, g.now)
	case len(g.pointers) >= 2 && idx < 2:
		// One of the pinch pointers left; pinch the next pair.
		g.beginPinch()
	case len(g.pointers) == 0:
		g.endGesture(pos)
	}
}

func (g *GestureTracker) beginPinch() {
	a, b := g.pointers[0].pos, g.pointers[1].pos
	d := b.Sub(a)
	s := g.c.State()
	g.session.pinching = true
	g.session.pinched = true
	g.session.lastFocal = a.Add(b).Div(2)
	g.session.initialSpan = d.Length()
	g.session.initialAngle = math.Atan2(d.Y, d.X)
	g.session.startScale = s.Scale
	g.session.startRotation = s.Rotation
	g.c.SetScaling(true)
}

func (g *GestureTracker) updatePinch() {
	a, b := g.pointers[0].pos, g.pointers[1].pos
	d := b.Sub(a)
	focal := a.Add(b).Div(2)

	scale := g.session.startScale
	if g.session.initialSpan > 0 {
		scale *= d.Length() / g.session.initialSpan
	}
	req := Request{
		Scale:                      &scale,
		FocalPoint:                 ptr(g.session.lastFocal),
		PanDelta:                   ptr(focal.Sub(g.session.lastFocal)),
		IncludePanDeltaWhenScaling: true,
	}
	if !g.cfg.DisableRotation {
		req = req.WithRotation(g.session.startRotation + math.Atan2(d.Y, d.X) - g.session.initialAngle)
	}
	g.session.lastFocal = focal
	g.session.addSample(focal, g.now)
	g.c.ApplyInteraction(req)
}

func (g *GestureTracker) endGesture(pos Vec2) {
	sess := g.session
	g.session = gestureSession{}
	g.c.SetPanning(false)
	g.c.SetScaling(false)

	if sess.panning {
		g.tap = lastTap{}
		if !g.cfg.DisableFling {
			g.c.Fling(sess.velocity(g.now))
		}
		return
	}
	if sess.pinched || g.cfg.DisableDoubleTap {
		g.tap = lastTap{}
		return
	}

	if g.tap.valid && g.now-g.tap.at <= g.cfg.DoubleTapInterval && pos.Sub(g.tap.pos).Length() <= g.cfg.DoubleTapSlop {
		g.tap = lastTap{}
		g.doubleTap(pos)
		return
	}
	g.tap = lastTap{pos: pos, at: g.now, valid: true}
}

// doubleTap zooms in at pos, or resets when already zoomed past the
// initial scale.
func (g *GestureTracker) doubleTap(pos Vec2) {
	var err error
	if g.c.State().Scale > g.c.InitialState().Scale*1.01 {
		err = g.c.Reset(g.animation())
	} else {
		err = g.c.Zoom(g.cfg.DoubleTapZoom, &pos, g.animation())
	}
	g.logErr("double tap", err)
}

// Scroll handles a wheel event at pos. With Ctrl held the wheel zooms around
// pos; otherwise it pans. Positive delta.Y scrolls up.
func (g *GestureTracker) Scroll(pos, delta Vec2, mods KeyModifiers) {
	if delta == (Vec2{}) {
		return
	}
	g.c.StopFling()
	g.c.StopAnimation()
	if mods&ModCtrl != 0 {
		g.logErr("scroll zoom", g.c.Zoom(delta.Y*g.cfg.ScrollZoomFactor, &pos, nil))
		return
	}
	if mods&ModShift != 0 {
		delta = Vec2{delta.Y, delta.X}
	}
	g.c.ApplyInteraction(PanRequest(delta.Mul(g.cfg.ScrollPanStep)))
}

// Key handles a keyboard command.
func (g *GestureTracker) Key(k Key, mods KeyModifiers) {
	step := g.cfg.KeyPanStep
	if mods&ModShift != 0 {
		step *= 4
	}
	anim := g.animation()
	var err error
	switch k {
	case KeyLeft:
		err = g.c.Pan(Vec2{step, 0}, anim)
	case KeyRight:
		err = g.c.Pan(Vec2{-step, 0}, anim)
	case KeyUp:
		err = g.c.Pan(Vec2{0, step}, anim)
	case KeyDown:
		err = g.c.Pan(Vec2{0, -step}, anim)
	case KeyZoomIn:
		err = g.c.Zoom(g.cfg.KeyZoomFactor, nil, anim)
	case KeyZoomOut:
		err = g.c.Zoom(-g.cfg.KeyZoomFactor, nil, anim)
	case KeyRotateLeft:
		if !g.cfg.DisableRotation {
			err = g.c.Rotate(-g.cfg.KeyRotateStep, nil, anim)
		}
	case KeyRotateRight:
		if !g.cfg.DisableRotation {
			err = g.c.Rotate(g.cfg.KeyRotateStep, nil, anim)
		}
	case KeyReset:
		err = g.c.Reset(anim)
	}
	g.logErr("key", err)
}

func (g *GestureTracker) logErr(op string, err error) {
	if err == nil || errors.Is(err, ErrDisposed) {
		return
	}
	Logger().Warn("gesture operation failed", slog.String("op", op), slog.Any("err", err))
}

// --- Injection ---

// InjectDrag queues a one-pointer drag from `from` to `to`: a press, frames-2
// interpolated moves, and a release, one batch per Update call. Minimum
// frames is 2.
func (g *GestureTracker) InjectDrag(from, to Vec2, frames int) {
	if frames < 2 {
		frames = 2
	}
	g.injectQueue = append(g.injectQueue, []syntheticEvent{{kind: synthDown, id: injectPointerA, pos: from}})
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		p := from.Add(to.Sub(from).Mul(t))
		g.injectQueue = append(g.injectQueue, []syntheticEvent{{kind: synthMove, id: injectPointerA, pos: p}})
	}
	g.injectQueue = append(g.injectQueue, []syntheticEvent{
		{kind: synthMove, id: injectPointerA, pos: to},
		{kind: synthUp, id: injectPointerA, pos: to},
	})
}

// InjectTap queues a press and release at pos over two frames.
func (g *GestureTracker) InjectTap(pos Vec2) {
	g.injectQueue = append(g.injectQueue,
		[]syntheticEvent{{kind: synthDown, id: injectPointerA, pos: pos}},
		[]syntheticEvent{{kind: synthUp, id: injectPointerA, pos: pos}},
	)
}

// InjectPinch queues a two-pointer pinch centered on center, with the
// pointers on a horizontal line whose span goes from startSpan to endSpan
// over frames frames.
func (g *GestureTracker) InjectPinch(center Vec2, startSpan, endSpan float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	at := func(span float64) (Vec2, Vec2) {
		h := Vec2{span / 2, 0}
		return center.Sub(h), center.Add(h)
	}
	a, b := at(startSpan)
	g.injectQueue = append(g.injectQueue, []syntheticEvent{
		{kind: synthDown, id: injectPointerA, pos: a},
		{kind: synthDown, id: injectPointerB, pos: b},
	})
	steps := frames - 1
	for i := 1; i <= steps; i++ {
		span := startSpan + (endSpan-startSpan)*float64(i)/float64(steps)
		a, b = at(span)
		g.injectQueue = append(g.injectQueue, []syntheticEvent{
			{kind: synthMove, id: injectPointerA, pos: a},
			{kind: synthMove, id: injectPointerB, pos: b},
		})
	}
	g.injectQueue = append(g.injectQueue, []syntheticEvent{
		{kind: synthUp, id: injectPointerA, pos: a},
		{kind: synthUp, id: injectPointerB, pos: b},
	})
}
