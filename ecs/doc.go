// Package ecs provides ECS adapters for thumbstick's gesture events.
//
// The primary adapter is [NewDonburiSink], which bridges controller gesture
// events (down, drag start, drag, up) into a [Donburi] world as typed events.
// Subscribe to [GestureEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	ctrl.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
