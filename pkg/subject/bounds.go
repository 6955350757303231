package subject

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/shotmatch/go-shotmatch/pkg/detect"
	"github.com/shotmatch/go-shotmatch/pkg/geom"
)

// Source tags which estimator produced a Bounds.
type Source int

const (
	SourceSkeletal Source = iota
	SourceVisual
	SourceFused
)

// String returns the source label.
func (s Source) String() string {
	switch s {
	case SourceSkeletal:
		return "skeletal"
	case SourceVisual:
		return "visual"
	case SourceFused:
		return "fused"
	default:
		return "unknown"
	}
}

// Bounds is a 3D bounding volume for a human subject in world units.
// Size components are always at least the configured minimum human
// dimensions. Immutable value; absence is signalled by the ok flag on the
// functions that produce it, never by an error.
type Bounds struct {
	Center     r3.Vec
	Size       r3.Vec
	Confidence float64 // 0-1
	Source     Source
}

// DepthEstimator converts a normalized 2D box height into an estimated
// forward distance in meters. The default inverse-height heuristic has an
// unvalidated constant; swap it out via Config when better calibration
// exists.
type DepthEstimator func(normHeight float64) float64

// Config holds the fusion tunables. Every constant lives here so tests
// can override thresholds deterministically.
type Config struct {
	// Minimum plausible human dimensions (meters).
	MinWidth  float64
	MinHeight float64
	MinDepth  float64

	// PaddingFactor expands raw joint extents to approximate body volume
	// beyond the skeleton (0.4 means final = raw * 1.4).
	PaddingFactor float64

	// Visual estimate calibration.
	DepthConstant   float64 // k in depth = k / boxHeight
	WidthRatio      float64 // world width per (normWidth * depth)
	HeightRatio     float64 // world height per (normHeight * depth)
	VisualDepthSize float64 // fixed body depth for 2D-only estimates

	// Depth estimates come from this; defaults to DepthConstant / height.
	Depth DepthEstimator
}

// DefaultConfig returns the calibration used in production.
func DefaultConfig() Config {
	cfg := Config{
		MinWidth:        0.5,
		MinHeight:       1.4,
		MinDepth:        0.4,
		PaddingFactor:   0.4,
		DepthConstant:   2.0,
		WidthRatio:      0.8,
		HeightRatio:     0.9,
		VisualDepthSize: 0.4,
	}
	cfg.Depth = func(normHeight float64) float64 {
		if normHeight <= 0 {
			return 0
		}
		return cfg.DepthConstant / normHeight
	}
	return cfg
}

// Fuser builds and merges subject bounds. All methods are pure functions
// of their inputs and safe to call on the frame-delivery goroutine.
type Fuser struct {
	cfg Config
}

// NewFuser creates a Fuser with the given calibration.
func NewFuser(cfg Config) *Fuser {
	if cfg.Depth == nil {
		cfg.Depth = func(normHeight float64) float64 {
			if normHeight <= 0 {
				return 0
			}
			return cfg.DepthConstant / normHeight
		}
	}
	return &Fuser{cfg: cfg}
}

// FromJoints estimates bounds from the joints observed this frame.
// ok is false when no joints are available.
//
// The vertical extent hangs from the highest joint downward: the body
// always continues below the tracked skeleton toward the floor, never
// above the head.
func (f *Fuser) FromJoints(sk Skeleton) (Bounds, bool) {
	if len(sk.Joints) == 0 {
		return Bounds{}, false
	}

	min := r3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	max := r3.Vec{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for _, p := range sk.Joints {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		min.Z = math.Min(min.Z, p.Z)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
		max.Z = math.Max(max.Z, p.Z)
	}

	pad := 1 + f.cfg.PaddingFactor
	size := r3.Vec{
		X: math.Max((max.X-min.X)*pad, f.cfg.MinWidth),
		Y: math.Max((max.Y-min.Y)*pad, f.cfg.MinHeight),
		Z: math.Max((max.Z-min.Z)*pad, f.cfg.MinDepth),
	}
	center := r3.Vec{
		X: (min.X + max.X) / 2,
		Y: max.Y - size.Y/2,
		Z: (min.Z + max.Z) / 2,
	}

	seen := 0
	for _, name := range JointsOfInterest {
		if _, ok := sk.Joints[name]; ok {
			seen++
		}
	}

	return Bounds{
		Center:     center,
		Size:       size,
		Confidence: float64(seen) / float64(len(JointsOfInterest)),
		Source:     SourceSkeletal,
	}, true
}

// FromDetection estimates bounds from a 2D detection by unprojecting its
// center at a heuristic depth. ok is false when the detection or camera is
// degenerate.
func (f *Fuser) FromDetection(det detect.Detection, cam geom.Camera) (Bounds, bool) {
	if det.W <= 0 || det.H <= 0 {
		return Bounds{}, false
	}
	depth := f.cfg.Depth(det.H)
	if depth <= 0 {
		return Bounds{}, false
	}

	cx := (det.X + det.W/2) * cam.Viewport.Width
	cy := (det.Y + det.H/2) * cam.Viewport.Height
	center, ok := cam.UnprojectAtDepth(cx, cy, depth)
	if !ok {
		return Bounds{}, false
	}

	size := r3.Vec{
		X: math.Max(det.W*depth*f.cfg.WidthRatio, f.cfg.MinWidth),
		Y: math.Max(det.H*depth*f.cfg.HeightRatio, f.cfg.MinHeight),
		Z: math.Max(f.cfg.VisualDepthSize, f.cfg.MinDepth),
	}

	return Bounds{
		Center:     center,
		Size:       size,
		Confidence: det.Confidence,
		Source:     SourceVisual,
	}, true
}

// Fuse merges the skeletal estimate with the closest visual candidate.
// The skeletal center is trusted for position; sizes are averaged weighted
// by confidence. With only one source available it passes through
// unchanged; with neither, ok is false and the caller must treat the
// subject as not visible.
func (f *Fuser) Fuse(skeletal Bounds, haveSkeletal bool, visuals []Bounds) (Bounds, bool) {
	if !haveSkeletal && len(visuals) == 0 {
		return Bounds{}, false
	}
	if !haveSkeletal {
		return visuals[0], true
	}
	if len(visuals) == 0 {
		return skeletal, true
	}

	visual := visuals[0]
	best := geom.Dist(skeletal.Center, visual.Center)
	for _, v := range visuals[1:] {
		if d := geom.Dist(skeletal.Center, v.Center); d < best {
			best = d
			visual = v
		}
	}

	totalConf := skeletal.Confidence + visual.Confidence
	size := geom.Midpoint(skeletal.Size, visual.Size)
	if totalConf > 0 {
		size = r3.Scale(1/totalConf, r3.Add(
			r3.Scale(skeletal.Confidence, skeletal.Size),
			r3.Scale(visual.Confidence, visual.Size),
		))
	}

	return Bounds{
		Center:     skeletal.Center,
		Size:       size,
		Confidence: (skeletal.Confidence + visual.Confidence) / 2,
		Source:     SourceFused,
	}, true
}
