package sim

import (
	"image/color"
	"log"
	"math"
	"time"

	"github.com/san-kum/bounce/internal/control"
	"github.com/san-kum/bounce/internal/dynamo"
	"github.com/san-kum/bounce/internal/physics"
)

// World owns every body plus the pointer interaction and advances them one
// frame at a time. It is not safe for concurrent use; front-ends call it
// from a single goroutine and interleave input between frames.
type World struct {
	cfg    Config
	bodies []*physics.Body
	input  *control.Interaction
	rng    Rand
	nextID dynamo.BodyID

	lastFrame  time.Time
	lastDt     float64
	elapsed    float64
	frame      int
	collisions int
	paused     bool

	observers []Observer
}

func New(cfg Config, rng Rand) *World {
	return &World{
		cfg:    cfg,
		bodies: make([]*physics.Body, 0),
		input:  control.NewInteraction(cfg.Tuning.PullStrength),
		rng:    rng,
	}
}

func (w *World) AddObserver(o Observer) { w.observers = append(w.observers, o) }

func (w *World) Bounds() dynamo.Bounds { return w.cfg.Bounds }

// Tuning is live: changes apply from the next frame.
func (w *World) Tuning() *physics.Tuning { return &w.cfg.Tuning }

func (w *World) Pairs() PairMode { return w.cfg.Pairs }

func (w *World) SetPairs(m PairMode) { w.cfg.Pairs = m }

// Bodies returns the bodies in creation order. The slice must not be
// modified.
func (w *World) Bodies() []*physics.Body { return w.bodies }

func (w *World) Body(id dynamo.BodyID) *physics.Body {
	for _, b := range w.bodies {
		if b.ID == id {
			return b
		}
	}
	return nil
}

func (w *World) Input() *control.Interaction { return w.input }

// LastDt is the elapsed time of the most recent frame in milliseconds.
func (w *World) LastDt() float64 { return w.lastDt }

// Elapsed is the simulated time in milliseconds.
func (w *World) Elapsed() float64 { return w.elapsed }

func (w *World) FrameCount() int { return w.frame }

// Collisions is the number of pair resolutions in the most recent frame.
func (w *World) Collisions() int { return w.collisions }

func (w *World) Paused() bool { return w.paused }

// Pause stops time; frames are ignored until Resume.
func (w *World) Pause() { w.paused = true }

// Resume restarts time at now so the paused interval is not integrated.
func (w *World) Resume(now time.Time) {
	w.paused = false
	w.lastFrame = now
}

// Frame measures the time since the previous frame and steps the world by
// it. The first frame after construction has zero elapsed time.
func (w *World) Frame(now time.Time) {
	if w.paused {
		return
	}
	dt := 0.0
	if !w.lastFrame.IsZero() {
		dt = float64(now.Sub(w.lastFrame)) / float64(time.Millisecond)
	}
	w.lastFrame = now
	w.Step(dt)
}

// Step advances every body by dt milliseconds: integration, pointer
// override, then collision detection and response.
func (w *World) Step(dt float64) {
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		dt = 0
	}
	if w.cfg.MaxDt > 0 && dt > w.cfg.MaxDt {
		dt = w.cfg.MaxDt
	}
	w.lastDt = dt
	w.collisions = 0
	w.input.PullStrength = w.cfg.Tuning.PullStrength

	switch w.cfg.Pairs {
	case PairsUnique:
		w.stepUnique(dt)
	default:
		w.stepOrdered(dt)
	}

	w.elapsed += dt
	w.frame++
	for _, o := range w.observers {
		o.OnFrame(w, dt)
	}
}

func (w *World) stepOrdered(dt float64) {
	bodies := w.bodies
	for i, a := range bodies {
		w.advance(a, dt)
		for j, b := range bodies {
			if i == j {
				continue
			}
			w.collide(a, b)
		}
	}
}

func (w *World) stepUnique(dt float64) {
	bodies := w.bodies
	for _, a := range bodies {
		w.advance(a, dt)
	}
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			w.collide(bodies[i], bodies[j])
		}
	}
}

func (w *World) advance(b *physics.Body, dt float64) {
	b.Update(dt, w.cfg.Bounds, w.input.Manipulated(b.ID), &w.cfg.Tuning)
	w.input.Follow(b, w.cfg.Bounds)
}

func (w *World) collide(a, b *physics.Body) {
	if w.input.Manipulated(a.ID) || w.input.Manipulated(b.ID) {
		return
	}
	if !physics.Detect(a, b) {
		return
	}
	if physics.Resolve(a, b, w.cfg.Tuning.CollisionRestitution) {
		log.Printf("bodies %d and %d share a center, separating along x", a.ID, b.ID)
	}
	w.collisions++
}

// Spawn creates a body at the pointer with a random radius, the mass that
// follows from it and a random color.
func (w *World) Spawn() (*physics.Body, error) {
	t := &w.cfg.Tuning
	radius := math.Floor(w.rng.Float64()*t.SpawnRadiusSpan + t.SpawnRadiusMin)
	c := color.RGBA{
		R: uint8(w.rng.Intn(256)),
		G: uint8(w.rng.Intn(256)),
		B: uint8(w.rng.Intn(256)),
		A: 255,
	}
	return w.SpawnAt(w.input.Pointer.Pos, radius, c)
}

// SpawnAt adds a body with the given radius and color at pos.
func (w *World) SpawnAt(pos dynamo.Vec2, radius float64, c color.RGBA) (*physics.Body, error) {
	if w.cfg.MaxBodies > 0 && len(w.bodies) >= w.cfg.MaxBodies {
		if err := w.evict(); err != nil {
			return nil, err
		}
	}
	w.nextID++
	b := physics.NewBody(w.nextID, pos, radius, radius*w.cfg.Tuning.MassFactor, c)
	w.bodies = append(w.bodies, b)
	log.Printf("spawned body %d r=%.0f m=%.1f at %v", b.ID, b.Radius, b.Mass, b.Pos)
	return b, nil
}

func (w *World) evict() error {
	for i, b := range w.bodies {
		if w.input.Manipulated(b.ID) {
			continue
		}
		w.removeAt(i)
		log.Printf("evicted body %d (capacity %d)", b.ID, w.cfg.MaxBodies)
		return nil
	}
	return dynamo.ErrCapacity
}

// Remove deletes a body and releases any gesture holding it. It reports
// whether the body existed.
func (w *World) Remove(id dynamo.BodyID) bool {
	for i, b := range w.bodies {
		if b.ID == id {
			w.removeAt(i)
			log.Printf("removed body %d", id)
			return true
		}
	}
	return false
}

// RemoveAtPointer deletes the first body under the pointer, if any.
func (w *World) RemoveAtPointer() (dynamo.BodyID, bool) {
	p := w.input.Pointer.Pos
	for _, b := range w.bodies {
		if b.Contains(p) {
			return b.ID, w.Remove(b.ID)
		}
	}
	return dynamo.NoBody, false
}

func (w *World) removeAt(i int) {
	id := w.bodies[i].ID
	w.bodies = append(w.bodies[:i:i], w.bodies[i+1:]...)
	w.input.Forget(id)
}

// Reset removes every body and clears the pointer slots. Time keeps going.
func (w *World) Reset() {
	w.bodies = w.bodies[:0]
	w.input.Reset()
	w.collisions = 0
}

// Pointer event handlers. Each one runs between frames.

func (w *World) PointerMove(p dynamo.Vec2) { w.input.MoveTo(p) }

func (w *World) PrimaryDown() { w.input.PressPrimary(w.bodies) }

func (w *World) PrimaryUp() { w.input.ReleasePrimary() }

func (w *World) SecondaryDown() { w.input.PressSecondary(w.bodies) }

// SecondaryUp launches the pulled body using the last frame's elapsed time.
func (w *World) SecondaryUp() { w.input.ReleaseSecondary(w.bodies, w.lastDt) }

// Guide returns the slingshot line to draw, if a pull is active.
func (w *World) Guide() (control.Segment, bool) { return w.input.Guide(w.bodies) }

// Validate reports the first body with a non-finite position or velocity.
func (w *World) Validate() error {
	for _, b := range w.bodies {
		if !b.IsFinite() {
			return &dynamo.SimulationError{
				Frame:   w.frame,
				Time:    w.elapsed,
				Body:    b.ID,
				Wrapped: dynamo.ErrInvalidState,
			}
		}
	}
	return nil
}
