package control

import (
	"github.com/san-kum/bounce/internal/dynamo"
	"github.com/san-kum/bounce/internal/physics"
)

// Pointer is the last known state of the pointing device.
type Pointer struct {
	Pos           dynamo.Vec2
	PrimaryDown   bool
	SecondaryDown bool
	DragOrigin    dynamo.Vec2 // pointer position at the last primary press
	PullOrigin    dynamo.Vec2 // pointer position at the last secondary press
}

// Segment is a line from the pulled body to the pointer.
type Segment struct {
	From, To dynamo.Vec2
}

type dragSlot struct {
	id     dynamo.BodyID
	offset dynamo.Vec2
}

// Interaction tracks which body, if any, is dragged and which is pulled.
type Interaction struct {
	Pointer Pointer

	// PullStrength scales the release impulse: Δv = PullStrength/m · (body − pointer) · dt.
	PullStrength float64

	drag dragSlot
	pull dynamo.BodyID
}

func NewInteraction(pullStrength float64) *Interaction {
	return &Interaction{PullStrength: pullStrength}
}

func (in *Interaction) MoveTo(p dynamo.Vec2) {
	in.Pointer.Pos = p
}

// Dragging returns the dragged body's ID.
func (in *Interaction) Dragging() (dynamo.BodyID, bool) {
	return in.drag.id, in.drag.id != dynamo.NoBody
}

// Pulling returns the pulled body's ID.
func (in *Interaction) Pulling() (dynamo.BodyID, bool) {
	return in.pull, in.pull != dynamo.NoBody
}

func (in *Interaction) IsDragged(id dynamo.BodyID) bool {
	return id != dynamo.NoBody && in.drag.id == id
}

func (in *Interaction) IsPulled(id dynamo.BodyID) bool {
	return id != dynamo.NoBody && in.pull == id
}

// Manipulated reports whether the body is dragged or pulled.
func (in *Interaction) Manipulated(id dynamo.BodyID) bool {
	return in.IsDragged(id) || in.IsPulled(id)
}

// PressPrimary starts a drag on the first body under the pointer, in slice
// order, unless a drag is already active. A pulled body cannot be grabbed. The grabbed body snaps to its
// captured offset immediately.
func (in *Interaction) PressPrimary(bodies []*physics.Body) (dynamo.BodyID, bool) {
	in.Pointer.PrimaryDown = true
	in.Pointer.DragOrigin = in.Pointer.Pos

	if in.drag.id != dynamo.NoBody {
		return dynamo.NoBody, false
	}
	b := hit(bodies, in.Pointer.Pos, in.IsPulled)
	if b == nil {
		return dynamo.NoBody, false
	}
	in.drag = dragSlot{id: b.ID, offset: b.Pos.Sub(in.Pointer.Pos)}
	in.snap(b)
	return b.ID, true
}

func (in *Interaction) ReleasePrimary() {
	in.Pointer.PrimaryDown = false
	in.drag = dragSlot{}
}

// PressSecondary starts a pull on the first body under the pointer unless a
// pull is already active. A dragged body cannot be pulled.
func (in *Interaction) PressSecondary(bodies []*physics.Body) (dynamo.BodyID, bool) {
	in.Pointer.SecondaryDown = true
	in.Pointer.PullOrigin = in.Pointer.Pos

	if in.pull != dynamo.NoBody {
		return dynamo.NoBody, false
	}
	b := hit(bodies, in.Pointer.Pos, in.IsDragged)
	if b == nil {
		return dynamo.NoBody, false
	}
	in.pull = b.ID
	return b.ID, true
}

// ReleaseSecondary launches the pulled body, if any, and clears the pull.
// dt is the elapsed time of the last frame in milliseconds.
func (in *Interaction) ReleaseSecondary(bodies []*physics.Body, dt float64) (dynamo.BodyID, bool) {
	in.Pointer.SecondaryDown = false

	id := in.pull
	in.pull = dynamo.NoBody
	b := find(bodies, id)
	if b == nil || b.Mass <= 0 {
		return dynamo.NoBody, false
	}

	k := in.PullStrength / b.Mass * dt
	b.Vel = b.Vel.Add(b.Pos.Sub(in.Pointer.Pos).Scale(k))
	return b.ID, true
}

// Follow pins a dragged body to the pointer plus its captured offset and
// zeroes its velocity. Other bodies are left alone.
func (in *Interaction) Follow(b *physics.Body, bounds dynamo.Bounds) {
	if !in.IsDragged(b.ID) {
		return
	}
	in.snap(b)
	b.Pos = bounds.Clamp(b.Pos, b.Radius)
}

func (in *Interaction) snap(b *physics.Body) {
	b.Pos = in.Pointer.Pos.Add(in.drag.offset)
	b.Vel = dynamo.Vec2{}
}

// Guide returns the slingshot line for the pulled body.
func (in *Interaction) Guide(bodies []*physics.Body) (Segment, bool) {
	b := find(bodies, in.pull)
	if b == nil {
		return Segment{}, false
	}
	return Segment{From: b.Pos, To: in.Pointer.Pos}, true
}

// Forget drops a body from both slots, e.g. when it is removed.
func (in *Interaction) Forget(id dynamo.BodyID) {
	if in.drag.id == id {
		in.drag = dragSlot{}
	}
	if in.pull == id {
		in.pull = dynamo.NoBody
	}
}

// Reset clears both slots and the button state.
func (in *Interaction) Reset() {
	in.drag = dragSlot{}
	in.pull = dynamo.NoBody
	in.Pointer.PrimaryDown = false
	in.Pointer.SecondaryDown = false
}

// hit returns the first body containing p that skip does not exclude.
func hit(bodies []*physics.Body, p dynamo.Vec2, skip func(dynamo.BodyID) bool) *physics.Body {
	for _, b := range bodies {
		if b.Contains(p) && !skip(b.ID) {
			return b
		}
	}
	return nil
}

func find(bodies []*physics.Body, id dynamo.BodyID) *physics.Body {
	if id == dynamo.NoBody {
		return nil
	}
	for _, b := range bodies {
		if b.ID == id {
			return b
		}
	}
	return nil
}
