// Package physics holds the per-body motion and the pairwise collision
// response.
//
// A [Body] is a circle integrated once per frame with the elapsed time in
// milliseconds: damping, gravity that grows with mass, a per-axis speed
// limit, then wall containment. [Detect] and [Resolve] handle one pair.
// All constants live in [Tuning] and can be changed while running:
//
//	t := physics.DefaultTuning()
//	t.SetParam("restitution", 1.0)
//	b.Update(dt, bounds, false, &t)
package physics
