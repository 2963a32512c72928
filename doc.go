// Package grove is a host-independent interaction dispatch core for XR and
// pointer input.
//
// grove turns per-frame controller, hand, touch and mouse samples into an
// ordered stream of interaction events, resolves which single target each
// interactor is focused on, and fans the events out to behaviors and
// listeners. It does not render, simulate physics or talk to devices; hosts
// feed it samples and read back focus, selection and grab state.
//
// # Quick start
//
//	sys, err := grove.NewSystem(grove.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	button := grove.NewInteractable("button")
//	button.Collider = grove.HitSphere{Center: mgl64.Vec3{0, 0, 2}, Radius: 0.1}
//	sys.AddInteractable(button)
//
//	hand := grove.NewInteractor("right", grove.KindHandRay, grove.HandRight)
//	sys.AddInteractor(hand)
//
//	// once per frame
//	sample := sys.SampleRay(hand, ray, selectHeld, gripHeld)
//	sys.Tick(dt, []grove.FrameSample{sample})
//
// Hosts with their own collision system fill [FrameSample.Hit] themselves
// and call [System.Tick] directly. [System.Update] instead polls an attached
// [Sampler] plus the synthetic input queue.
//
// # Relations
//
// Every interactable tracks three relations: Focus, Select and Grab. Each is
// a set of interactors. The first entry fires FirstXEntered before
// XEntered; the last exit fires XExited before LastXExited. Entering twice or
// exiting a relation never entered is a no-op.
//
// Focus changes are observed by listeners as BeforeFocusChange, the exit
// pair on the old target, the enter pair on the new one, then FocusChanged.
//
// # Behaviors and listeners
//
// [Behavior] values attach to an interactable with a sort key and react to
// its state transitions in ascending key order. Listeners registered with
// [System.On] or [Interactable.On] then see the event: system listeners
// first, then the target, then its ancestors. [InteractionEvent.Use] stops
// the traversal. Listeners may filter by [Handedness].
//
// # Threading
//
// A System is single-threaded. All dispatch is synchronous inside Tick and
// a handler that panics aborts the tick.
//
// Subpackages provide an Ebitengine mouse/touch sampler (grove/ebitensrc),
// tween-driven highlight feedback (grove/feedback), a Donburi ECS bridge
// (grove/ecs) and file/env profile loading with hot reload (grove/profile).
package grove
