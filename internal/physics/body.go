package physics

import (
	"image/color"
	"math"

	"github.com/san-kum/bounce/internal/dynamo"
)

// Body is a single circle in the world. Radius and Mass never change after
// creation; position and velocity are advanced by Update and rewritten by
// collisions and pointer interaction.
type Body struct {
	ID     dynamo.BodyID
	Pos    dynamo.Vec2
	Vel    dynamo.Vec2
	Radius float64
	Mass   float64
	Color  color.RGBA
}

func NewBody(id dynamo.BodyID, pos dynamo.Vec2, radius, mass float64, c color.RGBA) *Body {
	return &Body{
		ID:     id,
		Pos:    pos,
		Radius: radius,
		Mass:   mass,
		Color:  c,
	}
}

// MaxVel is the per-axis speed limit; heavier bodies are slower.
func (b *Body) MaxVel(t *Tuning) float64 {
	return t.MaxVelBase - b.Mass/t.MaxVelPerMass
}

// Update advances the body by dt milliseconds. A manipulated body (dragged
// or pulled) does not accumulate gravity.
func (b *Body) Update(dt float64, bounds dynamo.Bounds, manipulated bool, t *Tuning) {
	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt < 0 {
		dt = 0
	}

	dx, dy := t.DampingX, t.DampingY
	if t.Damping == DampingTimeScaled && t.ReferenceFrameMs > 0 {
		k := dt / t.ReferenceFrameMs
		dx, dy = math.Pow(dx, k), math.Pow(dy, k)
	}
	b.Vel.X *= dx
	b.Vel.Y *= dy

	if !manipulated {
		b.Vel.Y += dt*t.GravityBase + dt*b.Mass*t.GravityMass
	}

	limit := b.MaxVel(t)
	b.Vel.X = clampVel(b.Vel.X, limit, t.Clamp)
	b.Vel.Y = clampVel(b.Vel.Y, limit, t.Clamp)

	b.Pos = b.Pos.Add(b.Vel.Scale(dt))

	b.ContainWalls(bounds, t.WallRestitution)
}

func clampVel(v, limit float64, mode ClampMode) float64 {
	if v > limit {
		return limit
	}
	if mode == ClampSymmetric && v < -limit {
		return -limit
	}
	return v
}

// ContainWalls pushes a penetrating body back inside and reflects the
// perpendicular velocity away from the wall, scaled by restitution.
func (b *Body) ContainWalls(bounds dynamo.Bounds, restitution float64) {
	r := b.Radius
	if b.Pos.Y < r {
		b.Pos.Y = r
		b.Vel.Y = math.Abs(b.Vel.Y) * restitution
	}
	if b.Pos.Y+r > bounds.H {
		b.Pos.Y = bounds.H - r
		b.Vel.Y = math.Abs(b.Vel.Y) * -restitution
	}
	if b.Pos.X < r {
		b.Pos.X = r
		b.Vel.X = math.Abs(b.Vel.X) * restitution
	}
	if b.Pos.X+r > bounds.W {
		b.Pos.X = bounds.W - r
		b.Vel.X = math.Abs(b.Vel.X) * -restitution
	}
}

// KineticEnergy is ½·m·|v|².
func (b *Body) KineticEnergy() float64 {
	return 0.5 * b.Mass * b.Vel.Dot(b.Vel)
}

func (b *Body) Momentum() dynamo.Vec2 {
	return b.Vel.Scale(b.Mass)
}

// Contains reports whether p lies strictly inside the circle.
func (b *Body) Contains(p dynamo.Vec2) bool {
	return b.Pos.Dist(p) < b.Radius
}

func (b *Body) IsFinite() bool {
	return b.Pos.IsFinite() && b.Vel.IsFinite()
}
