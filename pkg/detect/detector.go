// Package detect supplies 2D person detections to the fusion step. The
// detector runs on a background worker throttled well below the frame
// rate; consumers read the latest result whenever convenient.
package detect

import "time"

// Detection is one observed person as a normalized bounding box.
// Coordinates are fractions of the frame (top-left origin).
type Detection struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	W          float64 `json:"w"`
	H          float64 `json:"h"`
	Confidence float64 `json:"confidence"`
}

// Result is one completed detection pass.
type Result struct {
	Detections []Detection
	Took       time.Duration
	At         time.Time
}

// Detector finds people in a JPEG frame. Implementations are expected to
// be expensive; the worker throttles calls.
type Detector interface {
	Detect(jpeg []byte) ([]Detection, error)
	Close() error
}

// FrameSource captures the current camera frame as JPEG.
type FrameSource interface {
	CaptureJPEG() ([]byte, error)
}

// Config holds detection worker tunables.
type Config struct {
	// Interval between detection passes. Detection is computationally
	// expensive, so this sits far below the pose stream rate.
	Interval time.Duration

	// MinConfidence filters weak detections before publishing.
	MinConfidence float64
}

// DefaultConfig returns the production detection settings (~2 passes/sec).
func DefaultConfig() Config {
	return Config{
		Interval:      500 * time.Millisecond,
		MinConfidence: 0.4,
	}
}
