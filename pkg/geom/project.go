package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Viewport is the render target size in points.
type Viewport struct {
	Width  float64
	Height float64
}

// Camera combines a camera-to-world pose with the intrinsics needed for
// projection. VerticalFOV is in radians.
type Camera struct {
	Pose        Pose
	VerticalFOV float64
	Viewport    Viewport
}

// nearPlane is the minimum forward distance (meters) for a point to be
// projectable. Points closer than this, or behind the camera, have no
// defined screen position.
const nearPlane = 0.01

// WorldToScreen projects a world point onto the viewport. ok is false when
// the point is behind the camera or the camera is degenerate.
func (c Camera) WorldToScreen(p r3.Vec) (x, y float64, ok bool) {
	if c.Pose.IsZero() || c.VerticalFOV <= 0 || c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return 0, 0, false
	}
	inv, err := c.Pose.Inverse()
	if err != nil {
		return 0, 0, false
	}
	local := inv.Apply(p)

	// Camera looks down -Z; forward distance is -local.Z.
	depth := -local.Z
	if depth < nearPlane {
		return 0, 0, false
	}

	focal := (c.Viewport.Height / 2) / math.Tan(c.VerticalFOV/2)
	x = c.Viewport.Width/2 + focal*(local.X/depth)
	y = c.Viewport.Height/2 - focal*(local.Y/depth)
	return x, y, true
}

// ProjectBox projects the 8 corners of an axis-aligned world box and
// returns their enclosing screen rectangle. ok is false if any corner is
// unprojectable; callers must skip guidance for that frame rather than
// draw a nonsensical box.
func (c Camera) ProjectBox(center, size r3.Vec) (Rect, bool) {
	hx, hy, hz := size.X/2, size.Y/2, size.Z/2
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)

	for _, sx := range []float64{-hx, hx} {
		for _, sy := range []float64{-hy, hy} {
			for _, sz := range []float64{-hz, hz} {
				corner := r3.Vec{X: center.X + sx, Y: center.Y + sy, Z: center.Z + sz}
				x, y, ok := c.WorldToScreen(corner)
				if !ok {
					return Rect{}, false
				}
				minX = math.Min(minX, x)
				minY = math.Min(minY, y)
				maxX = math.Max(maxX, x)
				maxY = math.Max(maxY, y)
			}
		}
	}
	return Rect{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}, true
}

// UnprojectAtDepth converts a screen point at a known forward distance
// back into a world point. Used to place a 2D detection in 3D.
func (c Camera) UnprojectAtDepth(x, y, depth float64) (r3.Vec, bool) {
	if c.Pose.IsZero() || c.VerticalFOV <= 0 || c.Viewport.Width <= 0 || c.Viewport.Height <= 0 || depth <= 0 {
		return r3.Vec{}, false
	}
	focal := (c.Viewport.Height / 2) / math.Tan(c.VerticalFOV/2)
	local := r3.Vec{
		X: (x - c.Viewport.Width/2) / focal * depth,
		Y: -(y - c.Viewport.Height/2) / focal * depth,
		Z: -depth,
	}
	return c.Pose.Apply(local), true
}
