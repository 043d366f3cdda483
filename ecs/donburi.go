package ecs

import (
	"github.com/phanxgames/thumbstick"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// GestureEventType is the Donburi event type for thumbstick gesture events.
// Subscribe to this in your ECS systems to receive presses, drags and releases.
var GestureEventType = events.NewEventType[thumbstick.GestureEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Gesture events are published to GestureEventType and can be
// consumed with events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) thumbstick.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event thumbstick.GestureEvent) {
	GestureEventType.Publish(s.world, event)
}
