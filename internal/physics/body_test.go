package physics

import (
	"image/color"
	"math"
	"testing"

	"github.com/san-kum/bounce/internal/dynamo"
)

var testBounds = dynamo.Bounds{W: 1200, H: 750}

func newTestBody(x, y, r float64) *Body {
	return NewBody(1, dynamo.V(x, y), r, r*0.6, color.RGBA{255, 0, 0, 255})
}

func TestMaxVel(t *testing.T) {
	tun := DefaultTuning()
	b := newTestBody(100, 100, 50)

	expected := 3.25 - 30.0/100
	if math.Abs(b.MaxVel(&tun)-expected) > 1e-12 {
		t.Errorf("expected max vel %f, got %f", expected, b.MaxVel(&tun))
	}
}

func TestUpdateGravity(t *testing.T) {
	tun := DefaultTuning()
	b := newTestBody(600, 300, 50)

	b.Update(16, testBounds, false, &tun)

	expectedVy := 16*0.000635 + 16*b.Mass*0.0000275
	if math.Abs(b.Vel.Y-expectedVy) > 1e-12 {
		t.Errorf("expected vy %f, got %f", expectedVy, b.Vel.Y)
	}
	if math.Abs(b.Pos.Y-(300+expectedVy*16)) > 1e-9 {
		t.Errorf("expected y %f, got %f", 300+expectedVy*16, b.Pos.Y)
	}
	if b.Vel.X != 0 {
		t.Errorf("expected vx 0, got %f", b.Vel.X)
	}
}

func TestUpdateManipulatedSkipsGravity(t *testing.T) {
	tun := DefaultTuning()
	b := newTestBody(600, 300, 50)

	b.Update(16, testBounds, true, &tun)

	if b.Vel.Y != 0 {
		t.Errorf("expected no gravity while manipulated, got vy %f", b.Vel.Y)
	}
}

func TestUpdateDamping(t *testing.T) {
	tun := DefaultTuning()
	tun.GravityBase, tun.GravityMass = 0, 0
	b := newTestBody(600, 300, 25)
	b.Vel = dynamo.V(1, -1)

	b.Update(0, testBounds, false, &tun)

	if math.Abs(b.Vel.X-0.993) > 1e-12 {
		t.Errorf("expected vx 0.993, got %f", b.Vel.X)
	}
	if math.Abs(b.Vel.Y+0.997) > 1e-12 {
		t.Errorf("expected vy -0.997, got %f", b.Vel.Y)
	}
}

func TestUpdateTimeScaledDamping(t *testing.T) {
	tun := DefaultTuning()
	tun.Damping = DampingTimeScaled
	tun.GravityBase, tun.GravityMass = 0, 0

	b := newTestBody(600, 300, 25)
	b.Vel = dynamo.V(1, 0)
	b.Update(2*tun.ReferenceFrameMs, testBounds, false, &tun)

	expected := 0.993 * 0.993
	if math.Abs(b.Vel.X-expected) > 1e-9 {
		t.Errorf("expected vx %f after two reference frames, got %f", expected, b.Vel.X)
	}
}

func TestUpdateClamp(t *testing.T) {
	tests := []struct {
		name   string
		mode   ClampMode
		vel    dynamo.Vec2
		wantVx float64
	}{
		{"upper clamps positive", ClampUpper, dynamo.V(10, 0), 0},
		{"upper keeps negative", ClampUpper, dynamo.V(-10, 0), -10 * 0.993},
		{"symmetric clamps negative", ClampSymmetric, dynamo.V(-10, 0), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tun := DefaultTuning()
			tun.Clamp = tt.mode
			b := newTestBody(600, 300, 50)
			b.Vel = tt.vel
			limit := b.MaxVel(&tun)

			b.Update(0, testBounds, true, &tun)

			want := tt.wantVx
			if want == 0 {
				want = math.Copysign(limit, tt.vel.X)
			}
			if math.Abs(b.Vel.X-want) > 1e-9 {
				t.Errorf("expected vx %f, got %f", want, b.Vel.X)
			}
		})
	}
}

func TestUpdateNonFiniteDt(t *testing.T) {
	tun := DefaultTuning()
	b := newTestBody(600, 300, 50)

	b.Update(math.NaN(), testBounds, false, &tun)
	b.Update(math.Inf(1), testBounds, false, &tun)

	if !b.IsFinite() {
		t.Errorf("expected finite body, got pos %v vel %v", b.Pos, b.Vel)
	}
}

func TestWallContainment(t *testing.T) {
	tun := DefaultTuning()

	starts := []struct {
		pos, vel dynamo.Vec2
	}{
		{dynamo.V(10, 10), dynamo.V(-3, -3)},
		{dynamo.V(1190, 740), dynamo.V(3, 3)},
		{dynamo.V(-100, 900), dynamo.V(-1, 2)},
		{dynamo.V(600, 375), dynamo.V(3, 3)},
	}

	for _, s := range starts {
		b := newTestBody(s.pos.X, s.pos.Y, 40)
		b.Vel = s.vel
		for i := 0; i < 500; i++ {
			b.Update(16, testBounds, false, &tun)
			if !testBounds.Contains(b.Pos, b.Radius) {
				t.Fatalf("frame %d: body escaped bounds at %v", i, b.Pos)
			}
		}
	}
}

func TestWallBounceDirections(t *testing.T) {
	tests := []struct {
		name     string
		pos, vel dynamo.Vec2
		want     dynamo.Vec2
	}{
		{"top", dynamo.V(600, 5), dynamo.V(0, -2), dynamo.V(0, 1.4)},
		{"floor", dynamo.V(600, 745), dynamo.V(0, 2), dynamo.V(0, -1.4)},
		{"left", dynamo.V(5, 300), dynamo.V(-2, 0), dynamo.V(1.4, 0)},
		{"right", dynamo.V(1195, 300), dynamo.V(2, 0), dynamo.V(-1.4, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBody(tt.pos.X, tt.pos.Y, 20)
			b.Vel = tt.vel
			b.ContainWalls(testBounds, 0.7)

			if math.Abs(b.Vel.X-tt.want.X) > 1e-12 || math.Abs(b.Vel.Y-tt.want.Y) > 1e-12 {
				t.Errorf("expected velocity %v, got %v", tt.want, b.Vel)
			}
			if !testBounds.Contains(b.Pos, b.Radius) {
				t.Errorf("expected body inside bounds, got %v", b.Pos)
			}
		})
	}
}

func TestTuningParams(t *testing.T) {
	tun := DefaultTuning()

	if err := tun.SetParam("restitution", 1.0); err != nil {
		t.Fatalf("set param failed: %v", err)
	}
	if tun.GetParams()["restitution"] != 1.0 {
		t.Errorf("expected restitution 1.0, got %f", tun.GetParams()["restitution"])
	}
	if err := tun.SetParam("nonexistent", 1.0); err == nil {
		t.Error("expected error for unknown param")
	}
}
