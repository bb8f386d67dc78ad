// Package scatter is a direct-manipulation gesture engine for 2D objects
// on a bounded stage, with an [Ebitengine] host.
//
// Objects ([Scatter]) are dragged, pinch-zoomed and rotated by any number of
// concurrent contacts, thrown with inertia when released, and kept on the
// stage by bouncing them back from its convex outline. Gestures are routed
// per object, so several objects can be manipulated at the same time from
// one input surface.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	stage := scatter.NewStage(scatter.StageConfig{
//		Bounds: scatter.Rect{Width: 800, Height: 600},
//	})
//	cfg := scatter.DefaultConfig()
//	cfg.Width, cfg.Height = 160, 120
//	cfg.Position = scatter.Vec2{X: 400, Y: 300}
//	card := scatter.MustNewScatter(stage, cfg)
//	card.OnTap = func(ctx scatter.TapContext) { ... }
//	scatter.Run(stage, scatter.RunConfig{
//		Title: "Scatter", Width: 800, Height: 600,
//	})
//
// For full control, attach your own [Source] with [Stage.SetSource] and call
// [Stage.Update] once per frame. Presentation is up to the caller: every
// change is reported as a [TransformEvent], and [View] turns those into a
// tweened, drawable transform.
//
// # Input model
//
// Host events are [PointerEvent], [TouchEvent], [MouseEvent] and
// [WheelEvent]. A [Mapper] picks one event model from the host
// [Capabilities] (pointer, then touch, then mouse) and feeds contacts into an
// [Interaction]. The stage's [Router] binds each new contact to the topmost
// object under it and keeps a separate Interaction per object, so every
// object computes its own [Delta].
//
// # Determinism
//
// All timing goes through a [Clock]. Tests use [FrameClock] together with
// the Inject helpers ([Stage.InjectTap], [Stage.InjectDrag],
// [Stage.InjectPinch], ...) or a JSON gesture script loaded with
// [LoadGestureScript], which makes gestures and throws fully reproducible.
//
// # ECS integration
//
// Set an [EntityStore] with [Stage.SetEntityStore] to forward
// [InteractionEvent]s into an ECS. The ecs sub-module provides a donburi
// bridge.
//
// [Ebitengine]: https://ebitengine.org
package scatter
