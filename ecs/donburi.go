package ecs

import (
	"github.com/phanxgames/grove"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType is the Donburi event type for grove interaction events.
// Subscribe to this in your ECS systems to receive focus, select, grab and
// gesture events.
var InteractionEventType = events.NewEventType[grove.InteractionEvent]()

// InteractionData mirrors an interactable's relation state on an entity.
type InteractionData struct {
	Focused  int
	Selected int
	Grabbed  int
	Active   bool
}

// Interaction is the component updated for bound entities.
var Interaction = donburi.NewComponentType[InteractionData]()

// DonburiStore is a grove.EntityStore backed by a Donburi world.
type DonburiStore struct {
	world    donburi.World
	entities map[uint32]donburi.Entity
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Interaction events are published to InteractionEventType and can be
// consumed with events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) *DonburiStore {
	return &DonburiStore{world: world, entities: make(map[uint32]donburi.Entity)}
}

// Bind associates an interactable EntityID with a Donburi entity.
func (s *DonburiStore) Bind(entityID uint32, e donburi.Entity) {
	s.entities[entityID] = e
}

// Unbind drops the association for entityID.
func (s *DonburiStore) Unbind(entityID uint32) {
	delete(s.entities, entityID)
}

// EmitEvent publishes the event and refreshes the Interaction component of
// the bound entity, if any.
func (s *DonburiStore) EmitEvent(event grove.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)

	ia := event.Target
	if ia == nil {
		return
	}
	e, ok := s.entities[ia.EntityID]
	if !ok {
		return
	}
	if !s.world.Valid(e) {
		delete(s.entities, ia.EntityID)
		return
	}
	entry := s.world.Entry(e)
	if !entry.HasComponent(Interaction) {
		return
	}
	data := Interaction.Get(entry)
	data.Focused = ia.Count(grove.RelationFocus)
	data.Selected = ia.Count(grove.RelationSelect)
	data.Grabbed = ia.Count(grove.RelationGrab)
	data.Active = ia.IsActive()
}
