package guidance

import (
	"encoding/json"
	"fmt"
)

// DecodeError is the typed failure for a malformed recommendation
// document. No partial guidance is ever produced from a document that
// fails to decode; the caller aborts that single guidance activation.
type DecodeError struct {
	Field  string // JSON path of the offending field
	Reason string
	Cause  error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("guidance: malformed recommendation at %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("guidance: malformed recommendation: %s", e.Reason)
}

// Unwrap returns the underlying cause, if any.
func (e *DecodeError) Unwrap() error { return e.Cause }

// Wire shadow types: pointers distinguish "absent" from "zero" so missing
// required fields are rejected rather than silently defaulted.
type wireAxis struct {
	Direction *string  `json:"direction"`
	Magnitude *float64 `json:"magnitude"`
	Unit      *string  `json:"unit"`
}

type wireAdjustments struct {
	Translation *struct {
		X *wireAxis `json:"x"`
		Y *wireAxis `json:"y"`
		Z *wireAxis `json:"z"`
	} `json:"translation"`
	Rotation *struct {
		Yaw   *wireAxis `json:"yaw"`
		Pitch *wireAxis `json:"pitch"`
		Roll  *wireAxis `json:"roll"`
	} `json:"rotation"`
	Framing *FramingGuidance `json:"framing"`
}

type wireResponse struct {
	Adjustments *wireAdjustments `json:"adjustments"`
	Summary     string           `json:"summary"`
	Confidence  *float64         `json:"confidence"`
}

// Decode parses and validates a recommendation document. Malformed or
// schema-violating input returns a *DecodeError; out-of-range magnitudes
// are not an error here, that is the validator's job.
func Decode(data []byte) (*StructuredResponse, error) {
	var wire wireResponse
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, &DecodeError{Reason: "invalid JSON", Cause: err}
	}
	if wire.Adjustments == nil {
		return nil, &DecodeError{Field: "adjustments", Reason: "missing"}
	}
	if wire.Adjustments.Translation == nil {
		return nil, &DecodeError{Field: "adjustments.translation", Reason: "missing"}
	}
	if wire.Adjustments.Rotation == nil {
		return nil, &DecodeError{Field: "adjustments.rotation", Reason: "missing"}
	}

	out := &StructuredResponse{
		Summary:    wire.Summary,
		Confidence: wire.Confidence,
	}

	var err error
	t := wire.Adjustments.Translation
	if out.Adjustments.Translation.X, err = decodeAxis("adjustments.translation.x", t.X); err != nil {
		return nil, err
	}
	if out.Adjustments.Translation.Y, err = decodeAxis("adjustments.translation.y", t.Y); err != nil {
		return nil, err
	}
	if out.Adjustments.Translation.Z, err = decodeAxis("adjustments.translation.z", t.Z); err != nil {
		return nil, err
	}
	r := wire.Adjustments.Rotation
	if out.Adjustments.Rotation.Yaw, err = decodeAxis("adjustments.rotation.yaw", r.Yaw); err != nil {
		return nil, err
	}
	if out.Adjustments.Rotation.Pitch, err = decodeAxis("adjustments.rotation.pitch", r.Pitch); err != nil {
		return nil, err
	}
	if out.Adjustments.Rotation.Roll, err = decodeAxis("adjustments.rotation.roll", r.Roll); err != nil {
		return nil, err
	}

	if f := wire.Adjustments.Framing; f != nil {
		if f.IdealSubjectPercentage != nil {
			p := *f.IdealSubjectPercentage
			if p <= 0 || p > 1 {
				return nil, &DecodeError{
					Field:  "adjustments.framing.ideal_subject_percentage",
					Reason: fmt.Sprintf("must be in (0,1], got %v", p),
				}
			}
		}
		framing := *f
		out.Adjustments.Framing = &framing
	}

	return out, nil
}

func decodeAxis(path string, w *wireAxis) (DirectionAdjustment, error) {
	if w == nil {
		return DirectionAdjustment{}, &DecodeError{Field: path, Reason: "missing"}
	}
	if w.Direction == nil || *w.Direction == "" {
		return DirectionAdjustment{}, &DecodeError{Field: path + ".direction", Reason: "missing"}
	}
	if w.Unit == nil {
		return DirectionAdjustment{}, &DecodeError{Field: path + ".unit", Reason: "missing"}
	}
	unit, ok := normalizeUnit(*w.Unit)
	if !ok {
		return DirectionAdjustment{}, &DecodeError{
			Field:  path + ".unit",
			Reason: fmt.Sprintf("unknown unit %q", *w.Unit),
		}
	}
	if w.Magnitude != nil && *w.Magnitude < 0 {
		return DirectionAdjustment{}, &DecodeError{
			Field:  path + ".magnitude",
			Reason: fmt.Sprintf("must be >= 0, got %v", *w.Magnitude),
		}
	}
	return DirectionAdjustment{
		Direction: *w.Direction,
		Magnitude: w.Magnitude,
		Unit:      unit,
	}, nil
}

func normalizeUnit(s string) (Unit, bool) {
	switch s {
	case "m", "meters":
		return UnitMeters, true
	case "deg", "degrees":
		return UnitDegrees, true
	default:
		return "", false
	}
}
