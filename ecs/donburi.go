// Package ecs provides ECS adapters for mrkit.
package ecs

import (
	"github.com/phanxgames/mrkit"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType is the Donburi event type for mrkit interaction events.
// Subscribe to this in your ECS systems to receive touch, pinch, hover and
// button events, or use the typed helpers below.
var InteractionEventType = events.NewEventType[mrkit.InteractionEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Interaction events are queued on InteractionEventType and delivered when
// the world's systems call ProcessEvents (or events.ProcessAllEvents).
func NewDonburiStore(world donburi.World) mrkit.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event mrkit.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}

// HoverEvent is a hover change on an interactable entity.
type HoverEvent struct {
	EntityID  uint32
	PointerID uint32
	// Started is true for a hover start, false for a hover end.
	Started bool
	// Hovered reports whether any pointer still hovers the entity after the
	// change.
	Hovered bool
}

// ButtonEvent is a press or release of a pressable button entity.
type ButtonEvent struct {
	EntityID uint32
	Pressed  bool
	Depth    float64
}

// SubscribeTypes subscribes fn to interaction events whose type is one of
// types. With no types every event is delivered.
func SubscribeTypes(world donburi.World, fn func(donburi.World, mrkit.InteractionEvent), types ...mrkit.EventType) {
	var mask uint32
	for _, t := range types {
		mask |= 1 << t
	}
	InteractionEventType.Subscribe(world, func(w donburi.World, e mrkit.InteractionEvent) {
		if mask == 0 || mask&(1<<e.Type) != 0 {
			fn(w, e)
		}
	})
}

// SubscribeHover subscribes fn to hover start and end events.
func SubscribeHover(world donburi.World, fn func(donburi.World, HoverEvent)) {
	SubscribeTypes(world, func(w donburi.World, e mrkit.InteractionEvent) {
		ev := HoverEvent{EntityID: e.EntityID, PointerID: e.PointerID}
		if e.Type == mrkit.EventHoverStarted {
			// Others carries WasHovered on a start; the entity is hovered now.
			ev.Started = true
			ev.Hovered = true
		} else {
			ev.Hovered = e.Others
		}
		fn(w, ev)
	}, mrkit.EventHoverStarted, mrkit.EventHoverEnded)
}

// SubscribeButton subscribes fn to pressable button events.
func SubscribeButton(world donburi.World, fn func(donburi.World, ButtonEvent)) {
	SubscribeTypes(world, func(w donburi.World, e mrkit.InteractionEvent) {
		fn(w, ButtonEvent{
			EntityID: e.EntityID,
			Pressed:  e.Type == mrkit.EventButtonPressed,
			Depth:    e.Depth,
		})
	}, mrkit.EventButtonPressed, mrkit.EventButtonReleased)
}
