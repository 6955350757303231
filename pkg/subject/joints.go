// Package subject builds 3D subject bounds from skeletal joints and 2D
// detections, and fuses the two estimates into one.
package subject

import (
	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/shotmatch/go-shotmatch/pkg/geom"
)

// JointName identifies a skeletal joint supplied by the pose collaborator.
type JointName string

// Joints of interest. Fusion confidence is the fraction of these observed.
const (
	JointHead          JointName = "head"
	JointNeck          JointName = "neck"
	JointSpine         JointName = "spine"
	JointRoot          JointName = "root"
	JointLeftShoulder  JointName = "left_shoulder"
	JointRightShoulder JointName = "right_shoulder"
	JointLeftFoot      JointName = "left_foot"
	JointRightFoot     JointName = "right_foot"
)

// JointsOfInterest is the fixed joint set used for confidence scoring.
var JointsOfInterest = []JointName{
	JointHead, JointNeck, JointSpine, JointRoot,
	JointLeftShoulder, JointRightShoulder, JointLeftFoot, JointRightFoot,
}

// Skeleton is one tracked body anchor for a single frame. Joints may be
// partial: a tracker that only sees head and shoulders this frame reports
// just those.
type Skeleton struct {
	AnchorID  uuid.UUID
	Joints    map[JointName]r3.Vec
	Transform geom.Pose // whole-body anchor transform, last-resort position
}

// Joint returns the world position of a named joint if observed this frame.
func (s Skeleton) Joint(name JointName) (r3.Vec, bool) {
	p, ok := s.Joints[name]
	return p, ok
}

// PlaneClass is the classification of a detected horizontal plane.
type PlaneClass int

const (
	PlaneUnclassified PlaneClass = iota
	PlaneFloor
	PlaneTable
)

// String returns the classification label.
func (c PlaneClass) String() string {
	switch c {
	case PlaneFloor:
		return "floor"
	case PlaneTable:
		return "table"
	default:
		return "unclassified"
	}
}

// Plane is a classified horizontal plane anchor from the pose collaborator.
type Plane struct {
	AnchorID  uuid.UUID
	Class     PlaneClass
	Transform geom.Pose
}

// Elevation returns the world Y of the plane.
func (p Plane) Elevation() float64 {
	return p.Transform.Translation().Y
}
