package engine

import (
	"github.com/shotmatch/go-shotmatch/pkg/geom"
	"github.com/shotmatch/go-shotmatch/pkg/guidance"
	"github.com/shotmatch/go-shotmatch/pkg/subject"
	"github.com/shotmatch/go-shotmatch/pkg/track"
)

// GuidanceState is the read-only snapshot handed to the rendering and UI
// collaborators. Refreshed per recomputation; nil rectangles mean "hide
// the guidance overlay this frame".
type GuidanceState struct {
	Active        bool   `json:"active"`
	TrackingState string `json:"tracking_state"`

	Subject     *subject.Bounds `json:"subject,omitempty"`
	SubjectRect *geom.Rect      `json:"subject_rect,omitempty"`
	TargetRect  *geom.Rect      `json:"target_rect,omitempty"`

	Adjustment     *guidance.DOFAdjustment  `json:"adjustment,omitempty"`
	Summary        string                   `json:"summary,omitempty"`
	AlignmentScore float64                  `json:"alignment_score"`
	Warnings       []guidance.SafetyWarning `json:"warnings,omitempty"`

	Distance     track.Metric  `json:"distance"`
	CameraHeight track.Metric  `json:"camera_height"`
	EyeLevel     track.Metric  `json:"eye_level"`
	Light        LightEstimate `json:"light"`
}
