package viewer

import "math"

// Vec2 is a 2D vector used for positions, offsets, deltas, and velocities
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Mul returns v scaled by s.
func (v Vec2) Mul(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Div returns v divided by s.
func (v Vec2) Div(s float64) Vec2 { return Vec2{v.X / s, v.Y / s} }

// Length returns the Euclidean length of v.
func (v Vec2) Length() float64 { return math.Hypot(v.X, v.Y) }

// Normalize returns the unit vector in the direction of v, or the zero
// vector if v has zero length.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Rotate returns v rotated by rad radians (clockwise in a Y-down system).
func (v Vec2) Rotate(rad float64) Vec2 {
	sin, cos := math.Sincos(rad)
	return Vec2{cos*v.X - sin*v.Y, sin*v.X + cos*v.Y}
}

// Size is a width/height pair for content and viewport boxes.
type Size struct {
	Width, Height float64
}

// Vec returns the size as a vector.
func (s Size) Vec() Vec2 { return Vec2{s.Width, s.Height} }

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.Width/2, r.Y + r.Height/2}
}

// Size returns the rectangle's dimensions.
func (r Rect) Size() Size { return Size{r.Width, r.Height} }

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Alignment is a normalized anchor in [-1,1]x[-1,1]. It selects which point
// of the content coincides with the same relative point of the viewport when
// their sizes differ. (-1,-1) is the top-left corner, (0,0) the center.
type Alignment struct {
	X, Y float64
}

var (
	AlignTopLeft      = Alignment{-1, -1}
	AlignTopCenter    = Alignment{0, -1}
	AlignTopRight     = Alignment{1, -1}
	AlignCenterLeft   = Alignment{-1, 0}
	AlignCenter       = Alignment{0, 0}
	AlignCenterRight  = Alignment{1, 0}
	AlignBottomLeft   = Alignment{-1, 1}
	AlignBottomCenter = Alignment{0, 1}
	AlignBottomRight  = Alignment{1, 1}
)

// factor maps the alignment from [-1,1] to a [0,1] fraction per axis.
func (a Alignment) factor() Vec2 {
	return Vec2{(a.X + 1) / 2, (a.Y + 1) / 2}
}

// ScrollMode restricts which pan axes are allowed.
type ScrollMode uint8

const (
	ScrollBoth       ScrollMode = iota // pan freely on both axes
	ScrollHorizontal                   // pan on X only
	ScrollVertical                     // pan on Y only
	ScrollNone                         // no panning
)

// PanAxis selects the axis an AxisLockBehavior forces pans onto.
type PanAxis uint8

const (
	AxisFree     PanAxis = iota // no locking
	AxisX                       // horizontal only
	AxisY                       // vertical only
	AxisDominant                // whichever axis has the larger absolute delta
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// Key identifies a keyboard command understood by the GestureTracker.
type Key uint8

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyZoomIn
	KeyZoomOut
	KeyRotateLeft
	KeyRotateRight
	KeyReset
)

// ptr returns a pointer to a copy of v.
func ptr[T any](v T) *T { return &v }

// Float returns a pointer to v, for optional fields such as Options.MinScale.
func Float(v float64) *float64 { return &v }
