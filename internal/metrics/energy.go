package metrics

import (
	"github.com/san-kum/bounce/internal/dynamo"
	"github.com/san-kum/bounce/internal/physics"
	"github.com/san-kum/bounce/internal/sim"
)

// KineticEnergy sums ½·m·|v|² over bodies.
func KineticEnergy(bodies []*physics.Body) float64 {
	total := 0.0
	for _, b := range bodies {
		total += b.KineticEnergy()
	}
	return total
}

// Momentum sums m·v over bodies.
func Momentum(bodies []*physics.Body) dynamo.Vec2 {
	var p dynamo.Vec2
	for _, b := range bodies {
		p = p.Add(b.Momentum())
	}
	return p
}

// Energy reports the total kinetic energy of the last observed frame.
type Energy struct {
	name    string
	current float64
	peak    float64
	samples int
}

func NewEnergy() *Energy {
	return &Energy{name: "energy"}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(w *sim.World, dt float64) {
	e.current = KineticEnergy(w.Bodies())
	if e.current > e.peak {
		e.peak = e.current
	}
	e.samples++
}

func (e *Energy) Value() float64 { return e.current }

// Peak is the highest total observed since the last reset.
func (e *Energy) Peak() float64 { return e.peak }

func (e *Energy) Reset() {
	e.current = 0
	e.peak = 0
	e.samples = 0
}

// MomentumMagnitude reports |Σ m·v| of the last observed frame.
type MomentumMagnitude struct {
	name    string
	current float64
}

func NewMomentum() *MomentumMagnitude {
	return &MomentumMagnitude{name: "momentum"}
}

func (m *MomentumMagnitude) Name() string { return m.name }

func (m *MomentumMagnitude) Observe(w *sim.World, dt float64) {
	m.current = Momentum(w.Bodies()).Len()
}

func (m *MomentumMagnitude) Value() float64 { return m.current }

func (m *MomentumMagnitude) Reset() { m.current = 0 }
