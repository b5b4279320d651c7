package viewer

import (
	"log/slog"
	"math"
	"time"
)

const (
	// MinFlingVelocity is the release speed in px/s below which no fling starts.
	MinFlingVelocity = 200.0

	// flingStopDistance is the per-tick movement below which a finished
	// simulation stops.
	flingStopDistance = 0.1

	// flingVelocityTolerance is the speed in px/s at which the simulation
	// reports completion.
	flingVelocityTolerance = 1.0
)

// flingDrag picks the drag coefficient for a release speed. Drag is the
// fraction of velocity kept after one second, so faster flings get a
// smaller value and decay harder.
func flingDrag(speed float64) float64 {
	switch {
	case speed < 1000:
		return 0.25
	case speed < 3000:
		return 0.1
	default:
		return 0.05
	}
}

// FrictionSimulation models one-dimensional motion under exponential drag:
// velocity at time t is v0 * drag^t.
type FrictionSimulation struct {
	drag     float64
	logDrag  float64
	position float64
	velocity float64
}

// NewFrictionSimulation returns a simulation starting at position with the
// given velocity. drag must be in (0, 1).
func NewFrictionSimulation(drag, position, velocity float64) *FrictionSimulation {
	return &FrictionSimulation{
		drag:     drag,
		logDrag:  math.Log(drag),
		position: position,
		velocity: velocity,
	}
}

// X returns the position at t seconds.
func (f *FrictionSimulation) X(t float64) float64 {
	return f.position + f.velocity*(math.Pow(f.drag, t)-1)/f.logDrag
}

// DX returns the velocity at t seconds.
func (f *FrictionSimulation) DX(t float64) float64 {
	return f.velocity * math.Pow(f.drag, t)
}

// FinalX returns the position the motion converges to.
func (f *FrictionSimulation) FinalX() float64 {
	return f.position - f.velocity/f.logDrag
}

// IsDone reports whether the motion has effectively stopped at t seconds.
func (f *FrictionSimulation) IsDone(t float64) bool {
	return math.Abs(f.DX(t)) < flingVelocityTolerance
}

// flingRun is one active fling.
type flingRun struct {
	sim       *FrictionSimulation
	direction Vec2
	elapsed   float64
	ticker    Ticker
}

// Fling starts inertial panning from a release velocity in px/s. It returns
// false, and does nothing, when the speed is below MinFlingVelocity, no tick
// source is registered, or the controller is disposed. A running fling is
// replaced.
func (c *Controller) Fling(velocity Vec2) bool {
	if c.disposed {
		return false
	}
	speed := velocity.Length()
	if speed < MinFlingVelocity {
		return false
	}
	if c.ticks == nil {
		Logger().Debug("fling skipped: no tick source")
		return false
	}
	c.StopFling()

	f := &flingRun{
		sim:       NewFrictionSimulation(flingDrag(speed), 0, speed),
		direction: velocity.Normalize(),
	}
	c.fling = f
	Logger().Debug("fling started", slog.Float64("speed", speed), slog.Float64("distance", f.sim.FinalX()))
	f.ticker = c.ticks.Start(func(dt time.Duration) bool {
		return c.stepFling(f, dt)
	})
	return true
}

// IsFlinging reports whether a fling is running.
func (c *Controller) IsFlinging() bool { return c.fling != nil }

// StopFling cancels the running fling, leaving the last published state.
func (c *Controller) StopFling() {
	if c.fling != nil {
		c.releaseFling(c.fling)
	}
}

// stepFling advances f by dt and feeds the travelled distance through the
// pan pipeline.
func (c *Controller) stepFling(f *flingRun, dt time.Duration) (keep bool) {
	if c.fling != f {
		return false
	}
	defer func() {
		if !keep {
			c.releaseFling(f)
		}
	}()

	prev := f.elapsed
	f.elapsed += dt.Seconds()
	dist := f.sim.X(f.elapsed) - f.sim.X(prev)
	delta := f.direction.Mul(dist)
	c.UpdateState(c.ResolveInteraction(PanRequest(delta), nil))

	if delta.Length() < flingStopDistance && f.sim.IsDone(f.elapsed) {
		return false
	}
	return c.fling == f
}

func (c *Controller) releaseFling(f *flingRun) {
	if c.fling == f {
		c.fling = nil
	}
	if f.ticker != nil {
		f.ticker.Stop()
	}
}
