package viewer

import (
	"log/slog"
	"math"
)

// debugCheckState warns when a state about to be published has a
// non-finite component. Degenerate sizes from callers produce these; they
// are propagated, not corrected.
func debugCheckState(s State) {
	if finite(s.Scale) && finite(s.Offset.X) && finite(s.Offset.Y) && finite(s.Rotation) {
		if s.Scale <= 0 {
			Logger().Warn("publishing non-positive scale", slog.Any("state", s))
		}
		return
	}
	Logger().Warn("publishing non-finite state", slog.Any("state", s))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
