package guidance

// SafetyLimits are the fixed magnitude ceilings for externally supplied
// adjustments. The recommendation service can hallucinate implausible
// numbers; nothing above these ever reaches the operator.
type SafetyLimits struct {
	MaxRollDeg     float64
	MaxPitchDeg    float64
	MaxYawDeg      float64
	MaxTranslation float64 // meters, per axis

	// AdvisoryFraction of a ceiling at which a LargeMovement notice is
	// emitted for values that are still within bounds.
	AdvisoryFraction float64
}

// DefaultSafetyLimits returns the production ceilings.
func DefaultSafetyLimits() SafetyLimits {
	return SafetyLimits{
		MaxRollDeg:       40,
		MaxPitchDeg:      30,
		MaxYawDeg:        45,
		MaxTranslation:   3.0,
		AdvisoryFraction: 0.7,
	}
}

// Validator clamps untrusted adjustments to the safety limits.
type Validator struct {
	limits SafetyLimits
}

// NewValidator creates a validator with the given limits.
func NewValidator(limits SafetyLimits) *Validator {
	return &Validator{limits: limits}
}

// Validate returns a safe copy of the adjustment plus the ordered warning
// list. Each of the six axes is handled independently: magnitudes above
// the axis ceiling are pinned to it with an Excessive* warning; magnitudes
// above the advisory fraction (but within bounds) pass through with a
// LargeMovement notice. FramingGuidance carries no movement magnitude and
// passes through unclamped.
//
// Pure and total: no input fails, and revalidating an already-safe
// adjustment leaves its values unchanged.
func (v *Validator) Validate(adj DOFAdjustment) (DOFAdjustment, []SafetyWarning) {
	out := adj
	var warnings []SafetyWarning

	clampAxis := func(a DirectionAdjustment, axis Axis, ceiling float64, rotation bool) DirectionAdjustment {
		m := a.Value()
		if m > ceiling {
			if rotation {
				warnings = append(warnings, excessiveRotation(axis, m, ceiling))
			} else {
				warnings = append(warnings, excessiveTranslation(axis, m, ceiling))
			}
			return a.withMagnitude(ceiling)
		}
		if m > ceiling*v.limits.AdvisoryFraction {
			warnings = append(warnings, largeMovement(axis, m))
		}
		return a
	}

	out.Translation.X = clampAxis(adj.Translation.X, AxisX, v.limits.MaxTranslation, false)
	out.Translation.Y = clampAxis(adj.Translation.Y, AxisY, v.limits.MaxTranslation, false)
	out.Translation.Z = clampAxis(adj.Translation.Z, AxisZ, v.limits.MaxTranslation, false)
	out.Rotation.Yaw = clampAxis(adj.Rotation.Yaw, AxisYaw, v.limits.MaxYawDeg, true)
	out.Rotation.Pitch = clampAxis(adj.Rotation.Pitch, AxisPitch, v.limits.MaxPitchDeg, true)
	out.Rotation.Roll = clampAxis(adj.Rotation.Roll, AxisRoll, v.limits.MaxRollDeg, true)

	if adj.Framing != nil {
		framing := *adj.Framing
		out.Framing = &framing
	}

	return out, warnings
}
