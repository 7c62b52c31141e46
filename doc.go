// Package morphic is a retained-mode GUI engine: a tree of drawable,
// interactive morphs that is redrawn incrementally, stepped cooperatively on
// one goroutine and driven by a single pointer plus a keyboard focus.
//
// # Quick start
//
// The simplest way to get started is [Run], which opens an [Ebitengine]
// window and drives the world for you:
//
//	world := morphic.NewWorld(morphic.NewEbitenSurface(640, 480), morphic.DefaultConfig())
//	box := morphic.NewMorph("box")
//	box.Draggable = true
//	world.Add(box)
//	morphic.Run(world, morphic.RunConfig{Title: "My World"})
//
// Headless hosts (tests, scripts, servers rendering screenshots) use a
// software [Canvas] and call [World.DoOneCycle] themselves, feeding pointer
// input to [World.Hand] between cycles.
//
// # Morphs
//
// Every element is a [Morph]. Bounds are absolute world coordinates, so
// moving a morph moves its whole subtree. Children paint in order; the last
// child is topmost. Behavior is attached through optional handler fields
// that are nil by default; pointer events escalate up the parent chain until
// a morph with a matching handler is found.
//
// # The cycle
//
// [World.DoOneCycle] runs three phases in order: every morph with an OnStep
// handler or queued [Morph.AddNextStep] actions is stepped (each at its own
// FPS), every registered [Animation] advances, and finally the condensed
// damage rectangles are repainted by walking the tree with clipping.
//
// # Drag and drop
//
// The [Hand] arms a draggable morph on button down and picks it up once the
// pointer moved beyond [Config.GrabThreshold]. On release the morph is
// added to the first morph under the pointer, or ancestor, that accepts it;
// the world root accepts everything. Template morphs are copied instead of
// moved, and [Hand.SlideBack] returns a dropped morph to its origin.
//
// # Integration
//
// Hand events can be forwarded to an [EventSink]; the morphic/ecs module
// publishes them into a [Donburi] world. [NewMetrics] exposes Prometheus
// collectors and [LoadConfig] reads YAML configuration.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package morphic
