package gui

import (
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/bounce/internal/dynamo"
)

// surface draws scenes with raylib. The window is sized to the world, so
// world units are pixels.
type surface struct{}

func (surface) Clear(bg color.RGBA) { rl.ClearBackground(rlColor(bg)) }

func (surface) FillCircle(center dynamo.Vec2, r float64, c color.RGBA) {
	rl.DrawCircleV(vec(center), float32(r), rlColor(c))
}

func (surface) DashedLine(from, to dynamo.Vec2, width, dash float64, c color.RGBA) {
	col := rlColor(c)
	for _, seg := range dashes(from, to, dash) {
		rl.DrawLineEx(vec(seg[0]), vec(seg[1]), float32(width), col)
	}
}

// dashes splits from-to into the "on" pieces of a dash pattern with equal
// on and off lengths, starting with an on piece.
func dashes(from, to dynamo.Vec2, dash float64) [][2]dynamo.Vec2 {
	length := from.Dist(to)
	if length == 0 {
		return nil
	}
	if dash <= 0 || dash >= length {
		return [][2]dynamo.Vec2{{from, to}}
	}
	dir := to.Sub(from).Scale(1 / length)
	out := make([][2]dynamo.Vec2, 0, int(math.Ceil(length/(2*dash))))
	for s := 0.0; s < length; s += 2 * dash {
		e := math.Min(s+dash, length)
		out = append(out, [2]dynamo.Vec2{from.Add(dir.Scale(s)), from.Add(dir.Scale(e))})
	}
	return out
}

func vec(v dynamo.Vec2) rl.Vector2 { return rl.NewVector2(float32(v.X), float32(v.Y)) }

func rlColor(c color.RGBA) rl.Color { return rl.NewColor(c.R, c.G, c.B, c.A) }
