// Package scrollstage is a scroll-driven phase timeline engine.
//
// A pinned viewport region turns scroll into one progress value in [0, 1].
// That value drives a fixed, ordered sequence of phases across many render
// targets. The package never draws: every frame it returns a [Frame] of
// target-id to style patches for a rendering layer to apply.
//
// # Pipeline
//
// Viewport geometry resolves to a [ResponsiveConfig] ([Resolve],
// [Resolver.ResolveViewport]). [Builder.Build] turns a config into a
// [Timeline] of [Phase] and [Step] values. [Bind] ties the timeline to a
// [ScrollSource], producing smoothed progress. An [Executor] maps progress to
// patches. A [Coordinator] supervises the whole pipeline:
//
//	src := scrollstage.NewManualSource()
//	c := scrollstage.NewCoordinator(scrollstage.CoordinatorOptions{Source: src})
//	c.Resize(scrollstage.Viewport{Width: 1440, Height: 900})
//
//	// each animation frame
//	frame, ok := c.Frame(1.0 / 60)
//	if ok {
//		for _, p := range frame.Patches {
//			// apply p.Style, p.Text and p.Parent to the target p.Target
//		}
//	}
//
//	// on teardown
//	c.Unmount()
//
// # Determinism
//
// Patches are a pure function of progress: scrubbing backward through any
// point reproduces the forward state exactly, including discrete effects
// such as text swaps and re-parenting. Entry jitter is seeded per build, see
// [Builder.Seed].
//
// # Adapters
//
// The stage sub-package draws frames with [Ebitengine], termview renders a
// preview into a [tcell] screen, and ecs mirrors frames into a [Donburi]
// world.
//
// [Ebitengine]: https://ebitengine.org
// [tcell]: https://github.com/gdamore/tcell
// [Donburi]: https://github.com/yohamta/donburi
package scrollstage
