package physics

import "fmt"

// DampingMode selects how velocity damping relates to elapsed time.
type DampingMode string

const (
	// DampingPerFrame multiplies velocity once per frame regardless of dt.
	DampingPerFrame DampingMode = "per-frame"
	// DampingTimeScaled raises the factors to dt/ReferenceFrameMs.
	DampingTimeScaled DampingMode = "time-scaled"
)

// ClampMode selects which side of the velocity range is limited.
type ClampMode string

const (
	ClampUpper     ClampMode = "upper"
	ClampSymmetric ClampMode = "symmetric"
)

// Tuning holds every constant of the motion and collision model.
// Times are in milliseconds, lengths in pixels.
type Tuning struct {
	DampingX         float64
	DampingY         float64
	Damping          DampingMode
	ReferenceFrameMs float64

	GravityBase float64
	GravityMass float64

	MaxVelBase    float64
	MaxVelPerMass float64
	Clamp         ClampMode

	WallRestitution      float64
	CollisionRestitution float64
	PullStrength         float64

	SpawnRadiusMin  float64
	SpawnRadiusSpan float64
	MassFactor      float64
}

func DefaultTuning() Tuning {
	return Tuning{
		DampingX:             0.993,
		DampingY:             0.997,
		Damping:              DampingPerFrame,
		ReferenceFrameMs:     1000.0 / 60.0,
		GravityBase:          0.000635,
		GravityMass:          0.0000275,
		MaxVelBase:           3.25,
		MaxVelPerMass:        100,
		Clamp:                ClampUpper,
		WallRestitution:      0.7,
		CollisionRestitution: 1.25,
		PullStrength:         0.035,
		SpawnRadiusMin:       25,
		SpawnRadiusSpan:      50,
		MassFactor:           0.6,
	}
}

// GetParams exposes the constants worth adjusting while running.
func (t *Tuning) GetParams() map[string]float64 {
	return map[string]float64{
		"damping_x":   t.DampingX,
		"damping_y":   t.DampingY,
		"gravity":     t.GravityBase,
		"gravity_m":   t.GravityMass,
		"restitution": t.CollisionRestitution,
		"wall":        t.WallRestitution,
		"pull":        t.PullStrength,
	}
}

func (t *Tuning) SetParam(name string, value float64) error {
	switch name {
	case "damping_x":
		t.DampingX = value
	case "damping_y":
		t.DampingY = value
	case "gravity":
		t.GravityBase = value
	case "gravity_m":
		t.GravityMass = value
	case "restitution":
		t.CollisionRestitution = value
	case "wall":
		t.WallRestitution = value
	case "pull":
		t.PullStrength = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
