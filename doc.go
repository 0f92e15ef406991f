// Package mrkit is a small mixed-reality interaction toolkit: pointers that
// touch and pinch targets, hover tracking for interactables, pressable
// buttons, and a camera-follow solver that keeps panels in view.
//
// Everything runs on a single goroutine. Call [World.Update] (or
// [World.UpdateDelta] with an explicit step) once per frame.
//
// # Quick start
//
//	world := mrkit.NewWorld()
//
//	panel := mrkit.NewShapeNode("panel", mrkit.ShapeSphere{Radius: 5})
//	world.Root().AddChild(panel)
//	it := mrkit.NewInteractable(panel)
//	it.OnHoverStarted(func(ctx mrkit.HoverContext) {
//		if !ctx.WasHovered {
//			log.Println("hovered")
//		}
//	})
//
//	hand := mrkit.NewPointer("index")
//	world.AddPointer(hand)
//
// For a window, [Run] opens a top-down ebiten viewer that drives a pointer
// with the mouse:
//
//	mrkit.Run(world, mrkit.RunConfig{Title: "Demo", Mouse: hand})
//
// # Axes
//
// [Forward] is +X, [Side] is +Y and [Up] is +Z. Positive yaw turns Forward
// toward +Y.
//
// # Pointers and targets
//
// A [Pointer] is a detection sphere centered on its node. Each update the
// [World] finds the collidable shape nodes within the pointer's radius and
// walks up from each to the first node carrying a [Target]. That node
// receives TouchStarted, and PinchStarted while the pointer is pinched.
// When the overlap ends, or the pointer is removed with
// [World.RemovePointer], the target receives PinchEnded (if pinched) and
// then TouchEnded.
//
// Disposed nodes are treated as expired: they are dropped from touched sets
// without receiving events.
//
// # Interactables and buttons
//
// [Interactable] turns touches into hover transitions. The first pointer to
// arrive fires with [HoverContext].WasHovered false; the last pointer to
// leave fires with IsHovered false.
//
// [PressableButton] is an Interactable whose face is pushed along local +X
// by touching pointers.
//
// # Follow
//
// [Follow] keeps an owner node within an angular cone and a distance band
// in front of a [CameraSource], and orients it toward the camera.
// Parameters live in [FollowConfig] and can be loaded from JSON with
// [LoadFollowConfig].
//
// # Events
//
// Scene-level callbacks are registered on the World ([World.OnTouchStarted],
// [World.OnHoverStarted], ...). Each returns a [CallbackHandle] for removal.
// Set an [EntityStore] (see the ecs subpackage) to forward events to an ECS.
package mrkit
