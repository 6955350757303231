package geom

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Pose is a rigid transform from local to world coordinates, stored as a
// 4x4 row-major homogeneous matrix. For a camera pose, local space follows
// the AR convention: +X right, +Y up, the camera looking down -Z.
type Pose struct {
	m *mat.Dense
}

// IdentityPose returns the identity transform.
func IdentityPose() Pose {
	m := mat.NewDense(4, 4, nil)
	for i := 0; i < 4; i++ {
		m.Set(i, i, 1)
	}
	return Pose{m: m}
}

// PoseFromElements builds a pose from 16 row-major matrix elements.
func PoseFromElements(elems []float64) (Pose, error) {
	if len(elems) != 16 {
		return Pose{}, fmt.Errorf("geom: pose needs 16 elements, got %d", len(elems))
	}
	data := make([]float64, 16)
	copy(data, elems)
	return Pose{m: mat.NewDense(4, 4, data)}, nil
}

// PoseAt returns an unrotated pose translated to position p.
func PoseAt(p r3.Vec) Pose {
	pose := IdentityPose()
	pose.m.Set(0, 3, p.X)
	pose.m.Set(1, 3, p.Y)
	pose.m.Set(2, 3, p.Z)
	return pose
}

// IsZero reports whether the pose is uninitialized.
func (p Pose) IsZero() bool {
	return p.m == nil
}

// Translation extracts the position column of the transform.
func (p Pose) Translation() r3.Vec {
	if p.m == nil {
		return r3.Vec{}
	}
	return r3.Vec{X: p.m.At(0, 3), Y: p.m.At(1, 3), Z: p.m.At(2, 3)}
}

// Apply transforms a local-space point into world space.
func (p Pose) Apply(v r3.Vec) r3.Vec {
	if p.m == nil {
		return v
	}
	in := mat.NewVecDense(4, []float64{v.X, v.Y, v.Z, 1})
	var out mat.VecDense
	out.MulVec(p.m, in)
	return r3.Vec{X: out.AtVec(0), Y: out.AtVec(1), Z: out.AtVec(2)}
}

// Inverse returns the world-to-local transform.
func (p Pose) Inverse() (Pose, error) {
	if p.m == nil {
		return Pose{}, fmt.Errorf("geom: cannot invert zero pose")
	}
	var inv mat.Dense
	if err := inv.Inverse(p.m); err != nil {
		return Pose{}, fmt.Errorf("geom: singular pose: %w", err)
	}
	return Pose{m: &inv}, nil
}
