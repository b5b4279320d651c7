package ecs

import (
	viewer "github.com/ahnaineh/custom-interactive-viewer"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// ViewerEventType is the Donburi event type for controller events.
// Subscribe to this in your ECS systems to follow the viewer's transform.
var ViewerEventType = events.NewEventType[viewer.Event]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Controller events are published to ViewerEventType and can be
// consumed with events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) viewer.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event viewer.Event) {
	ViewerEventType.Publish(s.world, event)
}
