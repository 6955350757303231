package framing

import (
	"math"

	"github.com/shotmatch/go-shotmatch/pkg/geom"
)

// AlignmentScore rates how closely the subject's projected rectangle
// matches the target rectangle, in [0,1]. Zero when the rectangles do not
// intersect or either is degenerate.
//
// score = coverageWeight*coverage + centeringWeight*centering + sizeWeight*sizeMatch
//
// Coverage is a step function of subject containment: partial containment
// is penalized hard so a half-framed subject never reads as "good".
func AlignmentScore(cfg Config, subjectRect, targetRect geom.Rect) float64 {
	subjectArea := subjectRect.Area()
	targetArea := targetRect.Area()
	if subjectArea <= 0 || targetArea <= 0 {
		return 0
	}

	inter, ok := subjectRect.Intersect(targetRect)
	if !ok {
		return 0
	}

	// Coverage caps at 0.6 below full containment so that even perfect
	// centering and size cannot push a partially framed subject past 0.8.
	containment := inter.Area() / subjectArea
	var coverage float64
	switch {
	case containment >= 0.99:
		coverage = 1.0
	case containment >= 0.95:
		coverage = 0.6
	case containment >= 0.90:
		coverage = 0.5
	default:
		coverage = containment * 0.5
	}

	sx, sy := subjectRect.Center()
	tx, ty := targetRect.Center()
	centerDist := math.Hypot(sx-tx, sy-ty)
	maxHalfDiagonal := math.Max(subjectRect.HalfDiagonal(), targetRect.HalfDiagonal())
	centering := 1 - math.Min(centerDist/maxHalfDiagonal, 1)

	sizeRatio := subjectArea / targetArea
	sizeMatch := 1 - math.Min(math.Abs(sizeRatio-cfg.IdealFill)/cfg.IdealFill, 1)

	score := cfg.CoverageWeight*coverage + cfg.CenteringWeight*centering + cfg.SizeWeight*sizeMatch
	return geom.Clamp(score, 0, 1)
}
