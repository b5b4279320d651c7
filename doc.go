// Package viewer is the interaction engine behind a pan, zoom, and rotate
// content viewer for [Ebitengine] hosts.
//
// It owns no pixels. A [Controller] holds the current transform as an
// immutable [State] (scale, offset, rotation) and is the only way to change
// it. Every interaction is expressed as a [Request], run through a
// pluggable [Behavior] pipeline and the scale limits, resolved against a
// focal point so the content under that point stays put, and published to
// observers synchronously.
//
// # Quick start
//
//	ticker := viewer.NewFrameTicker()
//	c := viewer.NewController(viewer.Options{
//		MinScale:     viewer.Float(0.5),
//		MaxScale:     viewer.Float(4),
//		ContentSize:  viewer.FixedSize(viewer.Size{Width: 1600, Height: 1000}),
//		ViewportSize: viewer.FixedSize(viewer.Size{Width: 800, Height: 600}),
//		TickSource:   ticker,
//	})
//	c.OnStateChange(func(s viewer.State) { ... })
//
//	c.Zoom(0.5, nil, viewer.Animate(250*time.Millisecond, ease.OutCubic))
//	// once per frame:
//	ticker.Advance(dt)
//
// The ebitenhost package wires a Controller into an [ebiten.Game] with
// mouse, wheel, touch, and keyboard input; the ecs package forwards
// controller events into a [Donburi] world.
//
// # Coordinates
//
// Content space is the untransformed content, origin at its top-left.
// Screen space is the viewport. With alignment origin O (the content's
// anchor point) and alignment offset A (where that anchor sits before
// any transform), a content point p maps to
//
//	screen = R(rotation)·(p - O)·scale + A + offset + O
//
// and [State.ScreenToContent] is its exact inverse.
//
// # Behaviors
//
// Behaviors see every request before it is applied ([Behavior.OnRequest])
// and every resolved state before it is published ([Behavior.OnResult]).
// Built-ins cover scroll-mode restriction, axis locking, bounds
// constraint, and grid snapping; [NewCompositeBehavior] chains them.
//
// # Animation and fling
//
// Animated operations and flings are driven by a [TickSource]. A
// [FrameTicker] advanced from the host's update loop is sufficient.
// Animation progress uses [gween] easing curves.
//
// # Gestures and scripts
//
// [GestureTracker] turns pointer, wheel, and key input into requests:
// drag pans, two pointers pinch-zoom and rotate, a fast release flings,
// and a double tap zooms. [ScriptRunner] replays JSON interaction scripts
// against a controller for automated tests.
//
// # Configuration and logging
//
// [LoadConfig] reads a schema-validated YAML file with VIEWER_* environment
// overrides. The package logs through [log/slog]; it is silent until
// [SetLogger] installs a logger, for example one built by [NewLogger].
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package viewer
