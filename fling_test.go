package viewer

import (
	"math"
	"testing"
)

func TestFrictionSimulation(t *testing.T) {
	sim := NewFrictionSimulation(0.25, 10, 500)
	assertNear(t, "x(0)", sim.X(0), 10)
	assertNear(t, "dx(0)", sim.DX(0), 500)
	assertNear(t, "dx(1)", sim.DX(1), 125)

	// The position approaches FinalX monotonically.
	final := sim.FinalX()
	prev := sim.X(0)
	for _, tt := range []float64{0.1, 0.5, 1, 2, 5} {
		x := sim.X(tt)
		if x <= prev || x > final {
			t.Errorf("x(%v) = %v, want in (%v, %v]", tt, x, prev, final)
		}
		prev = x
	}
	assertNear(t, "final", final, 10+500/math.Log(4))

	if sim.IsDone(0) {
		t.Error("done at t=0")
	}
	if !sim.IsDone(10) {
		t.Errorf("not done at t=10 (dx=%v)", sim.DX(10))
	}
}

func TestFlingDragTiers(t *testing.T) {
	tests := []struct{ speed, want float64 }{
		{500, 0.25},
		{999, 0.25},
		{1000, 0.1},
		{2999, 0.1},
		{3000, 0.05},
		{9000, 0.05},
	}
	for _, tt := range tests {
		if got := flingDrag(tt.speed); got != tt.want {
			t.Errorf("flingDrag(%v) = %v, want %v", tt.speed, got, tt.want)
		}
	}
}

func TestFlingBelowThreshold(t *testing.T) {
	c, ticker := animatedController(Options{})
	if c.Fling(Vec2{100, 100}) {
		t.Error("fling started below the minimum velocity")
	}
	if ticker.Active() != 0 || c.IsFlinging() {
		t.Error("fling registered a ticker")
	}
}

func TestFlingWithoutTickSource(t *testing.T) {
	c := NewController(Options{})
	if c.Fling(Vec2{1000, 0}) {
		t.Error("fling started without a tick source")
	}
}

func TestFlingTravelsTowardFinalDistance(t *testing.T) {
	c, ticker := animatedController(Options{})
	v := Vec2{800, 0}
	if !c.Fling(v) {
		t.Fatal("fling did not start")
	}
	for i := 0; i < 2000 && c.IsFlinging(); i++ {
		ticker.Advance(frame)
	}
	if c.IsFlinging() {
		t.Fatal("fling never settled")
	}
	want := NewFrictionSimulation(flingDrag(800), 0, 800).FinalX()
	got := c.State().Offset.X
	if math.Abs(got-want) > 2 {
		t.Errorf("travelled %v, want about %v", got, want)
	}
	assertNear(t, "y", c.State().Offset.Y, 0)
	if ticker.Active() != 0 {
		t.Error("ticker subscription leaked")
	}
}

func TestFlingDirection(t *testing.T) {
	c, ticker := animatedController(Options{})
	if !c.Fling(Vec2{-600, 800}) {
		t.Fatal("fling did not start")
	}
	runFrames(ticker, 10)
	o := c.State().Offset
	if o.X >= 0 || o.Y <= 0 {
		t.Fatalf("offset %v not in the fling direction", o)
	}
	assertNear(t, "direction ratio", o.X/o.Y, -0.75)
}

func TestStopFling(t *testing.T) {
	c, ticker := animatedController(Options{})
	c.Fling(Vec2{2000, 0})
	runFrames(ticker, 3)
	c.StopFling()
	stopped := c.State()
	runFrames(ticker, 10)
	if c.State() != stopped {
		t.Error("state moved after StopFling")
	}
	if c.IsFlinging() || ticker.Active() != 0 {
		t.Error("fling still registered")
	}
}

func TestFlingRespectsBehavior(t *testing.T) {
	c, ticker := animatedController(Options{Behavior: AxisLockBehavior{Axis: AxisX}})
	c.Fling(Vec2{500, 500})
	runFrames(ticker, 10)
	if c.State().Offset.Y != 0 {
		t.Errorf("fling moved along a locked axis: %v", c.State().Offset)
	}
	if c.State().Offset.X <= 0 {
		t.Errorf("fling did not move along X: %v", c.State().Offset)
	}
}
