package game

import "math"

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Intersects reports whether a and b overlap. Touching edges do not count.
func Intersects(a, b Rect) bool {
	return a.X < b.X+b.W &&
		a.X+a.W > b.X &&
		a.Y < b.Y+b.H &&
		a.Y+a.H > b.Y
}

// Body is the shape shared by every movable entity: top-left position,
// extents and facing angle in radians.
type Body struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Angle  float64 `json:"angle"`
}

// Rect returns the AABB of the body.
func (b Body) Rect() Rect {
	return Rect{X: b.X, Y: b.Y, W: b.Width, H: b.Height}
}

// Center returns the midpoint of the body.
func (b Body) Center() (float64, float64) {
	return b.X + b.Width/2, b.Y + b.Height/2
}

// Wall is a static impassable rectangle. Walls never change after level generation.
type Wall struct {
	Rect
}

// moveBody translates b by (dx, dy). The X step is attempted first and the
// Y step second, each rejected independently when the moved box would overlap
// a wall. Accepted steps are clamped to the world.
func moveBody(b *Body, dx, dy float64, walls []Wall, worldW, worldH float64) {
	nx := b.X + dx
	if !CollidesWithWalls(Rect{X: nx, Y: b.Y, W: b.Width, H: b.Height}, walls) {
		b.X = clamp(nx, 0, worldW-b.Width)
	}
	ny := b.Y + dy
	if !CollidesWithWalls(Rect{X: b.X, Y: ny, W: b.Width, H: b.Height}, walls) {
		b.Y = clamp(ny, 0, worldH-b.Height)
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func distance(ax, ay, bx, by float64) float64 {
	return math.Hypot(bx-ax, by-ay)
}

// angleDiff returns the signed smallest rotation from a to b, in [-π, π].
func angleDiff(a, b float64) float64 {
	return math.Remainder(b-a, 2*math.Pi)
}
