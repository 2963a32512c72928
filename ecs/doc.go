// Package ecs provides ECS adapters for grove's interaction events.
//
// The primary adapter is [NewDonburiStore], which bridges grove interaction
// events (focus, select, grab, click, drag, gesture) into a [Donburi] world
// as typed events. Subscribe to [InteractionEventType] in your ECS systems
// to receive them.
//
// Entities bound with [DonburiStore.Bind] that carry the [Interaction]
// component also get their relation counts mirrored on every event.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	sys.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
