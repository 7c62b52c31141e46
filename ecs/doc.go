// Package ecs provides ECS adapters for morphic's hand event stream.
//
// The primary adapter is [NewDonburiSink], which bridges hand events (grab,
// drop, click, double click, slide back, file drop) into a [Donburi] world
// as typed events. Subscribe to [HandEventType] in your ECS systems to
// receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	morphWorld.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
