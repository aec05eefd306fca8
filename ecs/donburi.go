package ecs

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/phanxgames/backdrop"
)

// LoopEventType is the Donburi event type for engine notifications.
var LoopEventType = events.NewEventType[backdrop.LoopEvent]()

// EngineState is the component holding the latest engine notification.
var EngineState = donburi.NewComponentType[backdrop.LoopEvent]()

// DonburiSink is a backdrop.EventSink backed by a Donburi world.
type DonburiSink struct {
	world  donburi.World
	entity donburi.Entity
}

// NewDonburiSink creates a sink and its state entity in world.
func NewDonburiSink(world donburi.World) *DonburiSink {
	return &DonburiSink{world: world, entity: world.Create(EngineState)}
}

// Entity returns the entity carrying EngineState.
func (s *DonburiSink) Entity() donburi.Entity {
	return s.entity
}

// EmitEvent queues event on LoopEventType and records it on the state entity.
func (s *DonburiSink) EmitEvent(event backdrop.LoopEvent) {
	if s.world.Valid(s.entity) {
		EngineState.SetValue(s.world.Entry(s.entity), event)
	}
	LoopEventType.Publish(s.world, event)
}

// Latest returns the last recorded notification.
func (s *DonburiSink) Latest() (backdrop.LoopEvent, bool) {
	if !s.world.Valid(s.entity) {
		return backdrop.LoopEvent{}, false
	}
	return *EngineState.Get(s.world.Entry(s.entity)), true
}
