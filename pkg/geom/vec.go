// Package geom provides the 3D/2D geometry used by the guidance engine:
// vector helpers, camera poses, screen projection and rectangle math.
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Dist returns the Euclidean distance between two points.
func Dist(a, b r3.Vec) float64 {
	return r3.Norm(r3.Sub(a, b))
}

// GroundDist returns the distance between two points projected onto the
// XZ plane. This is the "how far do I walk" distance, ignoring height.
func GroundDist(a, b r3.Vec) float64 {
	dx := a.X - b.X
	dz := a.Z - b.Z
	return math.Hypot(dx, dz)
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b r3.Vec) r3.Vec {
	return r3.Scale(0.5, r3.Add(a, b))
}

// Clamp limits v to the range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
