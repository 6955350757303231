package guidance

import "fmt"

// Axis names an adjustment axis in warnings.
type Axis string

const (
	AxisX     Axis = "x"
	AxisY     Axis = "y"
	AxisZ     Axis = "z"
	AxisYaw   Axis = "yaw"
	AxisPitch Axis = "pitch"
	AxisRoll  Axis = "roll"
)

// Safety warning variants.
const (
	// WarnExcessiveRotation: a rotation magnitude was clamped to its ceiling.
	WarnExcessiveRotation = "excessive_rotation"

	// WarnExcessiveTranslation: a translation magnitude was clamped.
	WarnExcessiveTranslation = "excessive_translation"

	// WarnLargeMovement: magnitude within bounds but above the advisory
	// fraction of the ceiling; the value passes through unmodified.
	WarnLargeMovement = "large_movement"
)

// SafetyWarning is one structured warning produced by validation.
// Ephemeral: generated per validation call and surfaced to the UI
// collaborator for transient display.
type SafetyWarning struct {
	Type string `json:"type"`
	Axis Axis   `json:"axis"`

	// Requested and Clamped are set for Excessive* warnings.
	Requested float64 `json:"requested,omitempty"`
	Clamped   float64 `json:"clamped,omitempty"`

	// Magnitude is set for LargeMovement warnings.
	Magnitude float64 `json:"magnitude,omitempty"`
}

// Severity returns the display severity: clamped values are warnings,
// large-but-legal movements are notices.
func (w SafetyWarning) Severity() string {
	if w.Type == WarnLargeMovement {
		return "notice"
	}
	return "warning"
}

// String renders the warning for logs and toasts.
func (w SafetyWarning) String() string {
	switch w.Type {
	case WarnExcessiveRotation:
		return fmt.Sprintf("%s rotation of %.1f° exceeds the safe limit; clamped to %.1f°", w.Axis, w.Requested, w.Clamped)
	case WarnExcessiveTranslation:
		return fmt.Sprintf("%s movement of %.1f m exceeds the safe limit; clamped to %.1f m", w.Axis, w.Requested, w.Clamped)
	case WarnLargeMovement:
		return fmt.Sprintf("large %s movement requested (%.1f)", w.Axis, w.Magnitude)
	default:
		return fmt.Sprintf("safety warning on %s axis", w.Axis)
	}
}

func excessiveRotation(axis Axis, requested, clamped float64) SafetyWarning {
	return SafetyWarning{Type: WarnExcessiveRotation, Axis: axis, Requested: requested, Clamped: clamped}
}

func excessiveTranslation(axis Axis, requested, clamped float64) SafetyWarning {
	return SafetyWarning{Type: WarnExcessiveTranslation, Axis: axis, Requested: requested, Clamped: clamped}
}

func largeMovement(axis Axis, magnitude float64) SafetyWarning {
	return SafetyWarning{Type: WarnLargeMovement, Axis: axis, Magnitude: magnitude}
}
