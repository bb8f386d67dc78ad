package ecs

import (
	"github.com/phanxgames/scatter"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType is the Donburi event type for scatter interaction
// events. Subscribe to this in your ECS systems to receive transform, tap
// and throw events.
var InteractionEventType = events.NewEventType[scatter.InteractionEvent]()

// Placement mirrors the transform of a bound scatter object.
var Placement = donburi.NewComponentType[scatter.State]()

// DonburiStore is an EntityStore backed by a Donburi world.
type DonburiStore struct {
	world    donburi.World
	entities map[uint32]donburi.Entity
	nextID   uint32
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Interaction events are published to InteractionEventType and can be
// consumed with events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) *DonburiStore {
	return &DonburiStore{world: world, entities: map[uint32]donburi.Entity{}}
}

// Bind creates an entity with a Placement component for o and stores its
// handle in o.EntityID.
func (s *DonburiStore) Bind(o *scatter.Scatter) donburi.Entity {
	e := s.world.Create(Placement)
	st := o.State()
	Placement.Set(s.world.Entry(e), &st)
	s.nextID++
	o.EntityID = s.nextID
	s.entities[s.nextID] = e
	return e
}

// Entity returns the entity bound to the scatter handle id.
func (s *DonburiStore) Entity(id uint32) (donburi.Entity, bool) {
	e, ok := s.entities[id]
	if !ok || !s.world.Valid(e) {
		return 0, false
	}
	return e, true
}

// EmitEvent publishes event and updates the Placement of its entity.
func (s *DonburiStore) EmitEvent(event scatter.InteractionEvent) {
	if event.Type == scatter.EventTransform {
		if e, ok := s.Entity(event.EntityID); ok {
			st := event.State
			Placement.Set(s.world.Entry(e), &st)
		}
	}
	InteractionEventType.Publish(s.world, event)
}
