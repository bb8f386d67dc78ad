// Package ecs provides ECS adapters for scatter's interaction events.
//
// The primary adapter is [NewDonburiStore], which bridges scatter
// interaction events (transforms, taps, long-presses, throws) into a
// [Donburi] world as typed events. Subscribe to [InteractionEventType] in
// your ECS systems to receive them. Objects bound with [DonburiStore.Bind]
// also get a [Placement] component that mirrors their transform.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	stage.SetEntityStore(store)
//	store.Bind(card)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
