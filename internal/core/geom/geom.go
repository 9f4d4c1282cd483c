// Package geom provides the small amount of 2D math the simulation needs:
// world-space points, axis-aligned boxes, straight-line stepping and the
// accumulated-time comparison every countdown uses.
package geom

import "math"

// Point represents a 2D point in world space (pixels)
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Scale multiplies both components by s.
func (p Point) Scale(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Len returns the vector length.
func (p Point) Len() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

// Distance calculates the Euclidean distance between two points
func Distance(a, b Point) float64 {
	return b.Sub(a).Len()
}

// Rect is an axis-aligned box anchored at its top-left corner.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// RectAt builds a rect from a position and size.
func RectAt(p Point, w, h float64) Rect {
	return Rect{X: p.X, Y: p.Y, Width: w, Height: h}
}

// Min returns the top-left corner.
func (r Rect) Min() Point {
	return Point{X: r.X, Y: r.Y}
}

// Max returns the bottom-right corner.
func (r Rect) Max() Point {
	return Point{X: r.X + r.Width, Y: r.Y + r.Height}
}

// Center returns the middle of the box.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Corners returns the four corners in the order top-left, top-right,
// bottom-left, bottom-right.
func (r Rect) Corners() [4]Point {
	return [4]Point{
		{X: r.X, Y: r.Y},
		{X: r.X + r.Width, Y: r.Y},
		{X: r.X, Y: r.Y + r.Height},
		{X: r.X + r.Width, Y: r.Y + r.Height},
	}
}

// Intersects reports whether two boxes overlap. Touching edges do not count.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.Width && r.X+r.Width > o.X &&
		r.Y < o.Y+o.Height && r.Y+r.Height > o.Y
}

// Contains reports whether p lies inside r (min inclusive, max exclusive).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Inset shrinks the box by m on every side.
func (r Rect) Inset(m float64) Rect {
	return Rect{X: r.X + m, Y: r.Y + m, Width: r.Width - 2*m, Height: r.Height - 2*m}
}

// Clamp returns p moved to the nearest point inside r (max inclusive).
func (r Rect) Clamp(p Point) Point {
	return Point{
		X: math.Max(r.X, math.Min(r.X+r.Width, p.X)),
		Y: math.Max(r.Y, math.Min(r.Y+r.Height, p.Y)),
	}
}

// Step moves from toward to by at most maxDist along the straight line
// between them and never past the target. It also returns the distance to
// the target measured before the move. Coincident points return the
// position unchanged.
func Step(from, to Point, maxDist float64) (Point, float64) {
	delta := to.Sub(from)
	dist := delta.Len()
	if dist == 0 || maxDist <= 0 {
		return from, dist
	}
	if maxDist >= dist {
		return to, dist
	}
	return from.Add(delta.Scale(maxDist / dist)), dist
}

// timeSlack absorbs the drift of summing many frame steps, so 1800 steps
// of 1/60 s count as 30 s.
const timeSlack = 1e-9

// Reached reports whether an accumulated time has reached limit.
func Reached(acc, limit float64) bool {
	return acc+timeSlack >= limit
}

// Heading returns the unit vector for an angle in radians.
func Heading(angle float64) Point {
	return Point{X: math.Cos(angle), Y: math.Sin(angle)}
}
