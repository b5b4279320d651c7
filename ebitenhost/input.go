package ebitenhost

import (
	viewer "github.com/ahnaineh/custom-interactive-viewer"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// mousePointer is the gesture pointer ID used for the mouse. Touches use
// their ebiten.TouchID offset by one.
const mousePointer = 0

type inputState struct {
	mouseDown bool
	touches   map[ebiten.TouchID]viewer.Vec2
}

// keyBindings maps keys to viewer commands.
var keyBindings = []struct {
	key ebiten.Key
	cmd viewer.Key
}{
	{ebiten.KeyArrowLeft, viewer.KeyLeft},
	{ebiten.KeyArrowRight, viewer.KeyRight},
	{ebiten.KeyArrowUp, viewer.KeyUp},
	{ebiten.KeyArrowDown, viewer.KeyDown},
	{ebiten.KeyEqual, viewer.KeyZoomIn},
	{ebiten.KeyNumpadAdd, viewer.KeyZoomIn},
	{ebiten.KeyMinus, viewer.KeyZoomOut},
	{ebiten.KeyNumpadSubtract, viewer.KeyZoomOut},
	{ebiten.KeyQ, viewer.KeyRotateLeft},
	{ebiten.KeyE, viewer.KeyRotateRight},
	{ebiten.Key0, viewer.KeyReset},
	{ebiten.KeyHome, viewer.KeyReset},
	{ebiten.KeyR, viewer.KeyReset},
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() viewer.KeyModifiers {
	var mods viewer.KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= viewer.ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= viewer.ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= viewer.ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= viewer.ModMeta
	}
	return mods
}

// pollInput feeds this tick's mouse, wheel, touch, and key input to the
// gesture tracker.
func (v *Viewer) pollInput() {
	mods := readModifiers()
	v.pollMouse(mods)
	v.pollTouches()
	for _, b := range keyBindings {
		// Held keys repeat every few ticks after a short delay.
		if d := inpututil.KeyPressDuration(b.key); d == 1 || (d > 30 && d%4 == 0) {
			v.Gestures.Key(b.cmd, mods)
		}
	}
}

func (v *Viewer) pollMouse(mods viewer.KeyModifiers) {
	mx, my := ebiten.CursorPosition()
	pos := viewer.Vec2{X: float64(mx), Y: float64(my)}

	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	switch {
	case pressed && !v.input.mouseDown:
		v.Gestures.PointerDown(mousePointer, pos)
	case pressed:
		v.Gestures.PointerMove(mousePointer, pos)
	case v.input.mouseDown:
		v.Gestures.PointerUp(mousePointer, pos)
	}
	v.input.mouseDown = pressed

	if wx, wy := ebiten.Wheel(); wx != 0 || wy != 0 {
		v.Gestures.Scroll(pos, viewer.Vec2{X: wx, Y: wy}, mods)
	}
}

func (v *Viewer) pollTouches() {
	if v.input.touches == nil {
		v.input.touches = make(map[ebiten.TouchID]viewer.Vec2)
	}
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		pos := viewer.Vec2{X: float64(x), Y: float64(y)}
		v.input.touches[id] = pos
		v.Gestures.PointerDown(touchPointer(id), pos)
	}
	for id, last := range v.input.touches {
		if inpututil.IsTouchJustReleased(id) {
			v.Gestures.PointerUp(touchPointer(id), last)
			delete(v.input.touches, id)
			continue
		}
		x, y := ebiten.TouchPosition(id)
		pos := viewer.Vec2{X: float64(x), Y: float64(y)}
		if pos != last {
			v.input.touches[id] = pos
			v.Gestures.PointerMove(touchPointer(id), pos)
		}
	}
}

func touchPointer(id ebiten.TouchID) int { return int(id) + 1 }
