package dynamo

import (
	"fmt"
	"math"
)

// BodyID identifies a body for the lifetime of a world. IDs are never reused.
type BodyID uint64

// NoBody is the zero ID; no spawned body carries it.
const NoBody BodyID = 0

type Vec2 struct {
	X, Y float64
}

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }

func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Dist is the Euclidean distance between two points.
func (v Vec2) Dist(o Vec2) float64 { return math.Hypot(v.X-o.X, v.Y-o.Y) }

// Perp returns v rotated by +90°.
func (v Vec2) Perp() Vec2 { return Vec2{-v.Y, v.X} }

func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

func (v Vec2) String() string { return fmt.Sprintf("(%.2f, %.2f)", v.X, v.Y) }

// Bounds is the axis-aligned containment rectangle [0,W]×[0,H].
type Bounds struct {
	W, H float64
}

// Contains reports whether a circle of radius r at p lies fully inside.
func (b Bounds) Contains(p Vec2, r float64) bool {
	return p.X >= r && p.X <= b.W-r && p.Y >= r && p.Y <= b.H-r
}

// Clamp moves p so a circle of radius r at p lies inside. A circle wider
// than the bounds is centered on that axis.
func (b Bounds) Clamp(p Vec2, r float64) Vec2 {
	return Vec2{clampAxis(p.X, r, b.W), clampAxis(p.Y, r, b.H)}
}

func clampAxis(v, r, dim float64) float64 {
	if 2*r > dim {
		return dim / 2
	}
	return math.Max(r, math.Min(dim-r, v))
}
