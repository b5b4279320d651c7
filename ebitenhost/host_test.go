package ebitenhost

import (
	"math"
	"testing"

	viewer "github.com/ahnaineh/custom-interactive-viewer"
	"github.com/hajimehoshi/ebiten/v2"
)

const epsilon = 1e-9

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestGeoMMatchesContentToScreen(t *testing.T) {
	content := viewer.Size{Width: 100, Height: 50}
	view := viewer.Size{Width: 300, Height: 200}
	origin, offset := viewer.AlignmentMetrics(&content, &view, viewer.AlignCenter)
	s := viewer.State{Scale: 1.5, Offset: viewer.Vec2{X: 12, Y: -7}, Rotation: 0.6}

	g := GeoM(s.ScreenMatrix(origin, offset))
	for _, p := range []viewer.Vec2{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 37, Y: 44}} {
		want := s.ContentToScreen(p, origin, offset)
		x, y := g.Apply(p.X, p.Y)
		if !approxEqual(x, want.X) || !approxEqual(y, want.Y) {
			t.Errorf("GeoM(%v) = (%v, %v), want %v", p, x, y, want)
		}
	}
}

func TestGeoMIdentity(t *testing.T) {
	g := GeoM(viewer.IdentityState.ToMatrix())
	var id ebiten.GeoM
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			if g.Element(i, j) != id.Element(i, j) {
				t.Errorf("element (%d,%d) = %v, want %v", i, j, g.Element(i, j), id.Element(i, j))
			}
		}
	}
}

func TestTouchPointerAvoidsMouse(t *testing.T) {
	if touchPointer(0) == mousePointer {
		t.Fatal("touch 0 collides with the mouse pointer")
	}
}
