package metrics

import "github.com/san-kum/bounce/internal/sim"

// Collisions counts pair resolutions across all observed frames.
type Collisions struct {
	name  string
	total int
}

func NewCollisions() *Collisions {
	return &Collisions{name: "collisions"}
}

func (c *Collisions) Name() string { return c.name }

func (c *Collisions) Observe(w *sim.World, dt float64) {
	c.total += w.Collisions()
}

func (c *Collisions) Value() float64 { return float64(c.total) }

func (c *Collisions) Reset() { c.total = 0 }

// Containment is the fraction of observed frames in which every body lay
// inside the world bounds, within tolerance. Collision displacement can
// push a body past a wall until its next update.
type Containment struct {
	name       string
	tolerance  float64
	violations int
	samples    int
}

func NewContainment(tolerance float64) *Containment {
	return &Containment{
		name:      "containment",
		tolerance: tolerance,
	}
}

func (c *Containment) Name() string { return c.name }

func (c *Containment) Observe(w *sim.World, dt float64) {
	c.samples++
	b := w.Bounds()
	tol := c.tolerance
	for _, body := range w.Bodies() {
		r := body.Radius - tol
		if body.Pos.X < r || body.Pos.X > b.W-r || body.Pos.Y < r || body.Pos.Y > b.H-r {
			c.violations++
			break
		}
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Containment) Reset() {
	c.violations = 0
	c.samples = 0
}
