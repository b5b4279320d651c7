// Package ecs provides ECS adapters for the viewer controller's event system.
//
// The primary adapter is [NewDonburiSink], which bridges controller events
// (state changes, transform start/update/end, animation start/end) into a
// [Donburi] world as typed events. Subscribe to [ViewerEventType] in your ECS
// systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	controller.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
