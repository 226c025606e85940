// Package ecs provides ECS adapters for nodeflow's graph event system.
//
// The primary adapter is [NewDonburiSink], which bridges nodeflow graph
// events (node drag, pan, zoom, handle click, connect) into a [Donburi]
// world as typed events. Subscribe to [GraphEventType] in your ECS systems
// to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	view.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
