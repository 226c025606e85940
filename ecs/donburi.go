// Package ecs provides ECS adapters for nodeflow.
package ecs

import (
	"github.com/phanxgames/nodeflow"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// GraphEventType is the Donburi event type for nodeflow graph events.
// Subscribe to this in your ECS systems to receive drag, pan, zoom and
// connection events.
var GraphEventType = events.NewEventType[nodeflow.GraphEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Graph events are published to GraphEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) nodeflow.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event nodeflow.GraphEvent) {
	GraphEventType.Publish(s.world, event)
}
