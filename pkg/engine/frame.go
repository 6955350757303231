package engine

import (
	"github.com/shotmatch/go-shotmatch/pkg/geom"
	"github.com/shotmatch/go-shotmatch/pkg/subject"
)

// LightEstimate is the ambient light reading from the pose collaborator.
type LightEstimate struct {
	Lux    float64 `json:"lux"`
	Kelvin float64 `json:"kelvin"`
}

// FrameInput is everything the pose/AR collaborator delivers for one
// frame of the high-frequency stream. The 2D detection source is not part
// of it; detections arrive asynchronously and the engine uses the latest
// available set.
type FrameInput struct {
	Camera    geom.Camera
	Light     LightEstimate
	Skeletons []subject.Skeleton
	Planes    []subject.Plane
}
