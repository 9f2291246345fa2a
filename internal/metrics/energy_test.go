package metrics

import (
	"image/color"
	"math"
	"testing"

	"github.com/san-kum/bounce/internal/dynamo"
	"github.com/san-kum/bounce/internal/physics"
	"github.com/san-kum/bounce/internal/sim"
)

type zeroRand struct{}

func (zeroRand) Float64() float64 { return 0 }
func (zeroRand) Intn(n int) int   { return 0 }

func TestKineticEnergy(t *testing.T) {
	a := physics.NewBody(1, dynamo.V(0, 0), 10, 2, color.RGBA{})
	b := physics.NewBody(2, dynamo.V(0, 0), 10, 4, color.RGBA{})
	a.Vel = dynamo.V(3, 4)
	b.Vel = dynamo.V(-1, 0)

	ke := KineticEnergy([]*physics.Body{a, b})
	expected := 0.5*2*25 + 0.5*4*1
	if math.Abs(ke-expected) > 1e-12 {
		t.Errorf("expected energy %f, got %f", expected, ke)
	}

	p := Momentum([]*physics.Body{a, b})
	if p != dynamo.V(2, 8) {
		t.Errorf("expected momentum (2, 8), got %v", p)
	}
}

func TestEnergyObserve(t *testing.T) {
	w := sim.New(sim.DefaultConfig(), zeroRand{})
	b, _ := w.SpawnAt(dynamo.V(600, 300), 50, color.RGBA{})
	b.Vel = dynamo.V(-2, 0)

	m := NewEnergy()
	m.Observe(w, 16)
	first := m.Value()
	if math.Abs(first-0.5*b.Mass*4) > 1e-9 {
		t.Errorf("expected energy %f, got %f", 0.5*b.Mass*4, first)
	}

	b.Vel = dynamo.Vec2{}
	m.Observe(w, 16)
	if m.Value() != 0 {
		t.Errorf("expected zero energy, got %f", m.Value())
	}
	if m.Peak() != first {
		t.Errorf("expected peak %f, got %f", first, m.Peak())
	}

	m.Reset()
	if m.Value() != 0 || m.Peak() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestCollisionsAndContainment(t *testing.T) {
	w := sim.New(sim.DefaultConfig(), zeroRand{})
	w.SpawnAt(dynamo.V(100, 100), 20, color.RGBA{})
	w.SpawnAt(dynamo.V(130, 100), 20, color.RGBA{})

	col := NewCollisions()
	cont := NewContainment(1e-6)

	w.Step(0)
	col.Observe(w, 0)
	cont.Observe(w, 0)

	if col.Value() != 2 {
		t.Errorf("expected 2 collisions, got %f", col.Value())
	}
	if cont.Value() != 1 {
		t.Errorf("expected full containment, got %f", cont.Value())
	}

	w.Bodies()[0].Pos.X = 5
	cont.Observe(w, 0)
	if cont.Value() != 0.5 {
		t.Errorf("expected containment 0.5, got %f", cont.Value())
	}

	col.Reset()
	cont.Reset()
	if col.Value() != 0 || cont.Value() != 1 {
		t.Error("expected metrics cleared after reset")
	}
}
