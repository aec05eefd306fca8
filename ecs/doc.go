// Package ecs bridges backdrop engine notifications into a [Donburi] world.
//
// [NewDonburiSink] publishes every engine LoopEvent as a typed Donburi event
// and mirrors the latest one onto a singleton entity, so ECS systems can either
// react to lifecycle, theme and pointer changes or poll the current state.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	engine.SetEventSink(sink)
//	ecs.LoopEventType.Subscribe(world, onLoopEvent)
//	// each update:
//	ecs.LoopEventType.ProcessEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
