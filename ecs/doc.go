// Package ecs mirrors scrollstage frames into a [Donburi] world.
//
// A [Mirror] keeps one entity per tracked render target. Every applied frame
// writes the target's style, text and parent into the [Style] component, and
// effect crossings are published to [EffectEventType] as typed events.
// Subscribe to it in your ECS systems to react to text swaps and re-parenting.
//
// Usage:
//
//	m := ecs.NewMirror(world)
//	m.Track(scrollstage.AllTargets(cfg)...)
//	coordinator := scrollstage.NewCoordinator(scrollstage.CoordinatorOptions{Targets: m})
//
//	// each frame
//	if f, ok := coordinator.Frame(dt); ok {
//		m.Apply(f)
//	}
//	ecs.EffectEventType.ProcessEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
