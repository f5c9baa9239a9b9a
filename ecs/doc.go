// Package ecs provides a Donburi adapter for arcade worlds.
//
// [Bridge] attaches arcade bodies to Donburi entities through the [Body] component and
// republishes every resolved collision as a [CollisionEventType] event. Subscribe to it in
// your ECS systems to react to hits.
//
// Usage:
//
//	bridge := ecs.NewBridge(ecsWorld, physics)
//	bridge.Attach(entity, arcade.NewBody(0, 0, 16, 16, 1))
//	// each frame
//	bridge.Update(1.0 / 60.0)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
