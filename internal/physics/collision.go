package physics

import "github.com/san-kum/bounce/internal/dynamo"

// coincident is the center distance below which the collision axis is
// undefined and the fallback axis is used.
const coincident = 1e-9

var fallbackAxis = dynamo.V(1, 0)

// Detect reports whether two circles touch or overlap.
func Detect(a, b *Body) bool {
	return a.Pos.Dist(b.Pos) <= a.Radius+b.Radius
}

// Resolve separates two overlapping bodies by half the overlap each and
// exchanges their normal velocity components with the given coefficient of
// restitution. Tangential components are kept. The result does not depend
// on argument order. It reports whether the centers coincided, in which
// case the bodies were separated along +x/-x.
func Resolve(a, b *Body, restitution float64) bool {
	d := a.Pos.Sub(b.Pos)
	dist := d.Len()

	degenerate := dist < coincident
	axis := fallbackAxis
	if !degenerate {
		axis = d.Scale(1 / dist)
	}

	displace := (dist - (a.Radius + b.Radius)) / 2
	a.Pos = a.Pos.Sub(axis.Scale(displace))
	b.Pos = b.Pos.Add(axis.Scale(displace))

	// n points from a to b, t is n rotated by +90°.
	n := axis.Scale(-1)
	t := n.Perp()

	tanA, tanB := a.Vel.Dot(t), b.Vel.Dot(t)
	normA, normB := a.Vel.Dot(n), b.Vel.Dot(n)

	total := a.Mass + b.Mass
	va := (normA*(a.Mass-b.Mass) + restitution*b.Mass*normB) / total
	vb := (normB*(b.Mass-a.Mass) + restitution*a.Mass*normA) / total

	a.Vel = t.Scale(tanA).Add(n.Scale(va))
	b.Vel = t.Scale(tanB).Add(n.Scale(vb))

	return degenerate
}
