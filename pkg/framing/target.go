// Package framing converts composition intent into a concrete target
// rectangle on screen and scores how well the live framing matches it.
package framing

import (
	"math"

	"github.com/shotmatch/go-shotmatch/pkg/geom"
	"github.com/shotmatch/go-shotmatch/pkg/guidance"
)

// Config holds the framing tunables.
type Config struct {
	// Margin multipliers applied to the subject's projected size per
	// framing type.
	CloseUpMargin       float64
	MediumShotMargin    float64
	FullBodyMargin      float64
	EnvironmentalMargin float64
	DefaultMargin       float64

	// MaxViewportFraction bounds either target dimension relative to the
	// viewport; oversize targets are scaled down preserving aspect.
	MaxViewportFraction float64

	// Alignment score weights. Must sum to 1.
	CoverageWeight  float64
	CenteringWeight float64
	SizeWeight      float64

	// IdealFill is the subject-to-target area ratio that scores a
	// perfect size match.
	IdealFill float64
}

// DefaultConfig returns the production framing settings.
func DefaultConfig() Config {
	return Config{
		CloseUpMargin:       1.2,
		MediumShotMargin:    1.5,
		FullBodyMargin:      1.8,
		EnvironmentalMargin: 2.5,
		DefaultMargin:       1.5,
		MaxViewportFraction: 0.9,
		CoverageWeight:      0.5,
		CenteringWeight:     0.3,
		SizeWeight:          0.2,
		IdealFill:           0.6,
	}
}

// margin selects the multiplier for a framing type token.
func (c Config) margin(framingType string) float64 {
	switch framingType {
	case guidance.FramingCloseUp:
		return c.CloseUpMargin
	case guidance.FramingMediumShot:
		return c.MediumShotMargin
	case guidance.FramingFullBody:
		return c.FullBodyMargin
	case guidance.FramingEnvironmental:
		return c.EnvironmentalMargin
	default:
		return c.DefaultMargin
	}
}

// TargetRect derives the target framing rectangle from the subject's
// current projected rectangle and the optional framing guidance. ok is
// false for degenerate inputs; callers hide the guidance overlay that
// frame rather than draw a nonsensical box.
func TargetRect(cfg Config, subjectRect geom.Rect, vp geom.Viewport, fg *guidance.FramingGuidance) (geom.Rect, bool) {
	if subjectRect.Area() <= 0 || vp.Width <= 0 || vp.Height <= 0 {
		return geom.Rect{}, false
	}

	// Default to screen center; a rule-of-thirds position moves the
	// target along the relevant axis only.
	cx, cy := vp.Width/2, vp.Height/2
	if fg != nil {
		switch fg.SubjectPosition {
		case guidance.PositionLeftThird:
			cx = vp.Width / 3
		case guidance.PositionRightThird:
			cx = vp.Width * 2 / 3
		case guidance.PositionTopThird:
			cy = vp.Height / 3
		case guidance.PositionBottomThird:
			cy = vp.Height * 2 / 3
		}
	}

	multiplier := cfg.DefaultMargin
	if fg != nil {
		multiplier = cfg.margin(fg.FramingType)
		if fg.IdealSubjectPercentage != nil {
			if p := *fg.IdealSubjectPercentage; p > 0 && p <= 1 {
				multiplier = 1 / p
			}
		}
	}

	w := subjectRect.Width() * multiplier
	h := subjectRect.Height() * multiplier

	// Never exceed the viewport bound; scale both dimensions by the same
	// factor so the aspect ratio survives.
	maxW := vp.Width * cfg.MaxViewportFraction
	maxH := vp.Height * cfg.MaxViewportFraction
	if w > maxW || h > maxH {
		scale := math.Min(maxW/w, maxH/h)
		w *= scale
		h *= scale
	}

	return geom.RectFromCenter(cx, cy, w, h), true
}
