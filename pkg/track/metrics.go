package track

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/shotmatch/go-shotmatch/pkg/geom"
	"github.com/shotmatch/go-shotmatch/pkg/subject"
)

// Metric is one displayed scalar with the strategy that produced it.
// Every metric has a defined terminal case; none of them can fail.
type Metric struct {
	Value float64 `json:"value"`
	Basis string  `json:"basis"` // which fallback tier produced the value
	Text  string  `json:"text"`  // display string
	OK    bool    `json:"ok"`
}

// Sentinel display strings for absence states.
const (
	TextSearching   = "searching"
	TextUnavailable = "n/a"
)

// Searching returns the sentinel metric shown while no subject is tracked.
func Searching() Metric {
	return Metric{Basis: "none", Text: TextSearching}
}

// unavailable returns the terminal metric for a ladder with no usable tier.
func unavailable() Metric {
	return Metric{Basis: "none", Text: TextUnavailable}
}

// distanceStrategy yields a reference point on the subject for distance
// measurement. First success wins.
type distanceStrategy struct {
	name string
	fn   func(sk subject.Skeleton) (r3.Vec, bool)
}

var distanceStrategies = []distanceStrategy{
	{"root", func(sk subject.Skeleton) (r3.Vec, bool) {
		return sk.Joint(subject.JointRoot)
	}},
	{"shoulders", func(sk subject.Skeleton) (r3.Vec, bool) {
		l, lok := sk.Joint(subject.JointLeftShoulder)
		r, rok := sk.Joint(subject.JointRightShoulder)
		if !lok || !rok {
			return r3.Vec{}, false
		}
		return geom.Midpoint(l, r), true
	}},
	{"anchor", func(sk subject.Skeleton) (r3.Vec, bool) {
		if sk.Transform.IsZero() {
			return r3.Vec{}, false
		}
		return sk.Transform.Translation(), true
	}},
}

// ObserveDistance samples the camera-to-subject distance, pushes it into
// the smoothing window and returns the stable mean. Distance is measured
// in the ground plane, the distance an operator would actually walk.
func (t *Tracker) ObserveDistance(cameraPos r3.Vec, sk subject.Skeleton) Metric {
	for _, s := range distanceStrategies {
		point, ok := s.fn(sk)
		if !ok {
			continue
		}
		t.distance.Push(geom.GroundDist(cameraPos, point))
		mean, _ := t.distance.Mean()
		return Metric{
			Value: mean,
			Basis: s.name,
			Text:  formatDistance(mean),
			OK:    true,
		}
	}
	return unavailable()
}

// formatDistance renders a distance with more resolution under a meter,
// where centimeters are perceptible to the operator.
func formatDistance(d float64) string {
	if d < 1.0 {
		return fmt.Sprintf("%.2f m", d)
	}
	return fmt.Sprintf("%.1f m", d)
}

// CameraHeight reports the camera height above the best available
// horizontal reference. Tiers: a classified floor/table plane, then any
// horizontal plane, then the raw world Y as a last resort.
func CameraHeight(cameraY float64, planes []subject.Plane) Metric {
	if p, ok := nearestPlane(cameraY, planes, true); ok {
		h := cameraY - p.Elevation()
		return Metric{Value: h, Basis: "above_" + p.Class.String(), Text: formatDistance(math.Abs(h)), OK: true}
	}
	if p, ok := nearestPlane(cameraY, planes, false); ok {
		h := cameraY - p.Elevation()
		return Metric{Value: h, Basis: "above_plane", Text: formatDistance(math.Abs(h)), OK: true}
	}
	return Metric{Value: cameraY, Basis: "world_y", Text: formatDistance(math.Abs(cameraY)), OK: true}
}

// nearestPlane finds the plane closest below-or-level with the camera.
// classified selects only floor/table planes, or only unclassified ones.
func nearestPlane(cameraY float64, planes []subject.Plane, classified bool) (subject.Plane, bool) {
	var best subject.Plane
	bestGap := math.Inf(1)
	found := false
	for _, p := range planes {
		isClassified := p.Class == subject.PlaneFloor || p.Class == subject.PlaneTable
		if isClassified != classified {
			continue
		}
		gap := cameraY - p.Elevation()
		if gap < 0 {
			continue // plane above the camera
		}
		if gap < bestGap {
			best = p
			bestGap = gap
			found = true
		}
	}
	return best, found
}

// EyeLevel reports how far the camera sits above (+) or below (-) the
// subject's estimated eye line. Prefers the head joint minus a fixed eye
// offset, then the shoulder midpoint plus a fixed offset.
func (t *Tracker) EyeLevel(cameraY float64, sk subject.Skeleton) Metric {
	if head, ok := sk.Joint(subject.JointHead); ok {
		d := cameraY - (head.Y - t.cfg.EyeOffsetBelowHead)
		return Metric{Value: d, Basis: "head", Text: formatSigned(d), OK: true}
	}
	l, lok := sk.Joint(subject.JointLeftShoulder)
	r, rok := sk.Joint(subject.JointRightShoulder)
	if lok && rok {
		mid := geom.Midpoint(l, r)
		d := cameraY - (mid.Y + t.cfg.EyeOffsetAboveShoulders)
		return Metric{Value: d, Basis: "shoulders", Text: formatSigned(d), OK: true}
	}
	return unavailable()
}

func formatSigned(d float64) string {
	return fmt.Sprintf("%+.2f m", d)
}
