package export

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/san-kum/bounce/internal/dynamo"
	"github.com/san-kum/bounce/internal/sim"
	"github.com/san-kum/bounce/internal/viz"
)

// SVG collects drawing calls as SVG elements. It implements viz.Surface
// with one world unit per SVG unit.
type SVG struct {
	Bounds dynamo.Bounds
	sb     strings.Builder
}

func NewSVG(b dynamo.Bounds) *SVG { return &SVG{Bounds: b} }

// Clear discards everything drawn so far and paints the background.
func (s *SVG) Clear(bg color.RGBA) {
	s.sb.Reset()
	fmt.Fprintf(&s.sb, "<rect width=\"100%%\" height=\"100%%\" fill=\"%s\"/>\n", viz.Hex(bg))
}

func (s *SVG) FillCircle(center dynamo.Vec2, r float64, c color.RGBA) {
	fmt.Fprintf(&s.sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\" fill=\"%s\"/>\n", center.X, center.Y, r, viz.Hex(c))
}

func (s *SVG) DashedLine(from, to dynamo.Vec2, width, dash float64, c color.RGBA) {
	fmt.Fprintf(&s.sb, "<line x1=\"%.1f\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%.1f\" stroke=\"%s\" stroke-width=\"%.1f\" stroke-dasharray=\"%.1f\"/>\n",
		from.X, from.Y, to.X, to.Y, viz.Hex(c), width, dash)
}

// String returns the complete document.
func (s *SVG) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
`, s.Bounds.W, s.Bounds.H, s.Bounds.W, s.Bounds.H))
	sb.WriteString(s.sb.String())
	sb.WriteString("</svg>")
	return sb.String()
}

// WorldToSVG draws the current scene of w.
func WorldToSVG(w *sim.World, th viz.Theme) string {
	s := NewSVG(w.Bounds())
	viz.DrawScene(s, w, th)
	return s.String()
}

// TrajectoryToSVG draws a polyline through points in world coordinates,
// e.g. the path of one body over a run.
func TrajectoryToSVG(points []dynamo.Vec2, b dynamo.Bounds, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		b.W, b.H, b.W, b.H, strokeColor))

	for i, p := range points {
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", p.X, p.Y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", p.X, p.Y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

// Tracker is a sim.Observer that records the path of one body.
type Tracker struct {
	Body   dynamo.BodyID
	Points []dynamo.Vec2
}

func (t *Tracker) OnFrame(w *sim.World, dt float64) {
	if b := w.Body(t.Body); b != nil {
		t.Points = append(t.Points, b.Pos)
	}
}
