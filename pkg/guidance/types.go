// Package guidance defines the 6-DOF camera-adjustment contract produced
// by the recommendation service and the safety validation that bounds it
// before it reaches the operator.
package guidance

// Unit is the measurement unit of an adjustment magnitude.
type Unit string

const (
	UnitMeters  Unit = "m"
	UnitDegrees Unit = "deg"
)

// DirectionAdjustment is one axis of recommended movement. A nil or zero
// magnitude means "no change" regardless of the direction token.
type DirectionAdjustment struct {
	Direction string   `json:"direction"`
	Magnitude *float64 `json:"magnitude"`
	Unit      Unit     `json:"unit"`
}

// Value returns the magnitude, or 0 when absent.
func (d DirectionAdjustment) Value() float64 {
	if d.Magnitude == nil {
		return 0
	}
	return *d.Magnitude
}

// IsNoChange reports whether this axis recommends no movement.
func (d DirectionAdjustment) IsNoChange() bool {
	return d.Value() == 0
}

// withMagnitude returns a copy with the magnitude replaced.
func (d DirectionAdjustment) withMagnitude(m float64) DirectionAdjustment {
	out := d
	out.Magnitude = &m
	return out
}

// Translation holds the three translation axes (meters).
type Translation struct {
	X DirectionAdjustment `json:"x"`
	Y DirectionAdjustment `json:"y"`
	Z DirectionAdjustment `json:"z"`
}

// Rotation holds the three rotation axes (degrees).
type Rotation struct {
	Yaw   DirectionAdjustment `json:"yaw"`
	Pitch DirectionAdjustment `json:"pitch"`
	Roll  DirectionAdjustment `json:"roll"`
}

// Framing subject positions (rule-of-thirds tokens).
const (
	PositionCenter      = "center"
	PositionLeftThird   = "left_third"
	PositionRightThird  = "right_third"
	PositionTopThird    = "top_third"
	PositionBottomThird = "bottom_third"
)

// Framing shot types.
const (
	FramingCloseUp       = "close_up"
	FramingMediumShot    = "medium_shot"
	FramingFullBody      = "full_body"
	FramingEnvironmental = "environmental"
)

// FramingGuidance is the optional composition intent attached to an
// adjustment. It carries no raw movement magnitude, so validation passes
// it through unclamped.
type FramingGuidance struct {
	SubjectPosition        string   `json:"subject_position,omitempty"`
	CompositionRule        string   `json:"composition_rule,omitempty"`
	FramingType            string   `json:"framing_type,omitempty"`
	IdealSubjectPercentage *float64 `json:"ideal_subject_percentage,omitempty"`
}

// DOFAdjustment is one full 6-DOF recommendation. Produced by the
// external service (untrusted), consumed once per guidance activation.
// Never mutated in place; validation yields a new, safe copy.
type DOFAdjustment struct {
	Translation Translation      `json:"translation"`
	Rotation    Rotation         `json:"rotation"`
	Framing     *FramingGuidance `json:"framing,omitempty"`
}

// StructuredResponse is the full JSON document from the recommendation
// service.
type StructuredResponse struct {
	Adjustments DOFAdjustment `json:"adjustments"`
	Summary     string        `json:"summary,omitempty"`
	Confidence  *float64      `json:"confidence,omitempty"`
}
