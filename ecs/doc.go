// Package ecs provides ECS adapters for mrkit's interaction event system.
//
// The primary adapter is [NewDonburiStore], which bridges mrkit interaction
// events (touch, pinch, hover, button) into a [Donburi] world as typed events.
// Subscribe to [InteractionEventType] in your ECS systems to receive them.
// Only nodes with a non-zero EntityID produce events.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	mrWorld.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
