// Package control turns pointer input into direct manipulation of bodies.
//
// An [Interaction] owns the [Pointer] and two single-body slots:
//
//   - drag: the body follows the pointer at a fixed offset, velocity zeroed
//   - pull: a slingshot; releasing imparts an impulse away from the pointer
//
// Each slot holds at most one body, so at most one body is dragged and at
// most one is pulled at any time. A manipulated body is exempt from gravity
// and collision response; callers ask [Interaction.Manipulated].
//
// # Usage
//
//	in := control.NewInteraction(tuning.PullStrength)
//	in.MoveTo(dynamo.V(400, 300))
//	in.PressPrimary(bodies)      // grab the body under the pointer
//	in.Follow(body, bounds)      // once per frame
//	in.ReleasePrimary()
package control
