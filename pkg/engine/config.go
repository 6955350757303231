// Package engine orchestrates the per-frame pipeline: fuse subject
// bounds, maintain tracking continuity, bound external guidance and keep
// the read-only state snapshot collaborators consume.
package engine

import (
	"github.com/shotmatch/go-shotmatch/pkg/detect"
	"github.com/shotmatch/go-shotmatch/pkg/framing"
	"github.com/shotmatch/go-shotmatch/pkg/guidance"
	"github.com/shotmatch/go-shotmatch/pkg/subject"
	"github.com/shotmatch/go-shotmatch/pkg/track"
)

// Config aggregates the tunables of every component so a test can
// override any threshold from one place.
type Config struct {
	Subject subject.Config
	Track   track.Config
	Detect  detect.Config
	Framing framing.Config
	Limits  guidance.SafetyLimits

	// RecomputeThreshold is how far (meters) the fused subject center
	// must move before guidance geometry is recomputed. Bounds the cost
	// of recomputation and keeps the overlay from jittering.
	RecomputeThreshold float64
}

// DefaultConfig returns the production engine settings.
func DefaultConfig() Config {
	return Config{
		Subject:            subject.DefaultConfig(),
		Track:              track.DefaultConfig(),
		Detect:             detect.DefaultConfig(),
		Framing:            framing.DefaultConfig(),
		Limits:             guidance.DefaultSafetyLimits(),
		RecomputeThreshold: 0.1,
	}
}
