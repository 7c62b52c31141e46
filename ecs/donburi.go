package ecs

import (
	"github.com/phanxgames/morphic"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// HandEventType is the Donburi event type for morphic hand events.
// Subscribe to this in your ECS systems to receive grab, drop and click
// events.
var HandEventType = events.NewEventType[morphic.HandEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Hand events are published to HandEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) morphic.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event morphic.HandEvent) {
	HandEventType.Publish(s.world, event)
}
