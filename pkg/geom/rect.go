package geom

import "math"

// Rect is an axis-aligned rectangle in screen space (points/pixels,
// origin top-left, +Y down). Derived per frame, never persisted.
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// RectFromCenter builds a rectangle of the given size around (cx, cy).
func RectFromCenter(cx, cy, w, h float64) Rect {
	return Rect{
		MinX: cx - w/2, MinY: cy - h/2,
		MaxX: cx + w/2, MaxY: cy + h/2,
	}
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the vertical extent.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Area returns width x height, or 0 for inverted rectangles.
func (r Rect) Area() float64 {
	if r.MaxX <= r.MinX || r.MaxY <= r.MinY {
		return 0
	}
	return r.Width() * r.Height()
}

// Center returns the midpoint.
func (r Rect) Center() (x, y float64) {
	return (r.MinX + r.MaxX) / 2, (r.MinY + r.MaxY) / 2
}

// HalfDiagonal returns half the diagonal length.
func (r Rect) HalfDiagonal() float64 {
	return math.Hypot(r.Width(), r.Height()) / 2
}

// Intersect returns the overlap of two rectangles. ok is false when they
// are disjoint.
func (r Rect) Intersect(o Rect) (Rect, bool) {
	out := Rect{
		MinX: math.Max(r.MinX, o.MinX),
		MinY: math.Max(r.MinY, o.MinY),
		MaxX: math.Min(r.MaxX, o.MaxX),
		MaxY: math.Min(r.MaxY, o.MaxY),
	}
	if out.MaxX <= out.MinX || out.MaxY <= out.MinY {
		return Rect{}, false
	}
	return out, true
}
