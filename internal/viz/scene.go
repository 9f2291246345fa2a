package viz

import (
	"image/color"

	"github.com/san-kum/bounce/internal/control"
	"github.com/san-kum/bounce/internal/dynamo"
	"github.com/san-kum/bounce/internal/physics"
	"github.com/san-kum/bounce/internal/sim"
)

// Slingshot guide geometry, in world units.
const (
	GuideWidth = 3.0
	GuideDash  = 7.0
)

// Surface is anything a scene can be drawn on. Coordinates are world units.
type Surface interface {
	Clear(bg color.RGBA)
	FillCircle(center dynamo.Vec2, r float64, c color.RGBA)
	DashedLine(from, to dynamo.Vec2, width, dash float64, c color.RGBA)
}

// DrawScene clears s and draws every body in creation order, then the
// slingshot guide if a pull is active.
func DrawScene(s Surface, w *sim.World, th Theme) {
	s.Clear(th.Background)
	in := w.Input()
	for _, b := range w.Bodies() {
		DrawBody(s, b, in.IsDragged(b.ID), th)
	}
	if seg, ok := w.Guide(); ok {
		DrawGuide(s, seg, th)
	}
}

// DrawBody fills the body's circle; a dragged body uses the highlight color.
func DrawBody(s Surface, b *physics.Body, dragged bool, th Theme) {
	fill := b.Color
	if dragged {
		fill = th.Highlight
	}
	s.FillCircle(b.Pos, b.Radius, fill)
}

func DrawGuide(s Surface, seg control.Segment, th Theme) {
	s.DashedLine(seg.From, seg.To, GuideWidth, GuideDash, th.Guide)
}

// Preview draws w on a colorless braille canvas cols cells wide, with as
// many rows as the world's aspect ratio needs.
func Preview(w *sim.World, cols int) string {
	b := w.Bounds()
	cols = max(cols, minCols)
	rows := minRows
	if b.W > 0 && b.H > 0 {
		rows = max(int(float64(cols)*b.H/b.W/2), 1)
	}
	c := NewCanvas(cols, rows)
	c.Fit(b)
	DrawScene(c, w, ThemeClassic)
	return c.Plain()
}
