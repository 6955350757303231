package guidance

import (
	"reflect"
	"testing"
)

func axis(direction string, magnitude float64, unit Unit) DirectionAdjustment {
	return DirectionAdjustment{Direction: direction, Magnitude: &magnitude, Unit: unit}
}

func TestValidate_ClampsExcessiveRotation(t *testing.T) {
	v := NewValidator(DefaultSafetyLimits())

	adj := DOFAdjustment{}
	adj.Rotation.Roll = axis("clockwise", 60, UnitDegrees)

	safe, warnings := v.Validate(adj)

	if got := safe.Rotation.Roll.Value(); got != 40 {
		t.Errorf("roll: want clamp to 40, got %.1f", got)
	}
	// Direction and unit survive the clamp.
	if safe.Rotation.Roll.Direction != "clockwise" || safe.Rotation.Roll.Unit != UnitDegrees {
		t.Errorf("clamp must preserve direction and unit: %+v", safe.Rotation.Roll)
	}

	if len(warnings) != 1 {
		t.Fatalf("want 1 warning, got %d: %v", len(warnings), warnings)
	}
	w := warnings[0]
	if w.Type != WarnExcessiveRotation || w.Axis != AxisRoll || w.Requested != 60 || w.Clamped != 40 {
		t.Errorf("unexpected warning: %+v", w)
	}
	if w.Severity() != "warning" {
		t.Errorf("severity: want warning, got %s", w.Severity())
	}
}

func TestValidate_ClampsExcessiveTranslation(t *testing.T) {
	v := NewValidator(DefaultSafetyLimits())

	adj := DOFAdjustment{}
	adj.Translation.Z = axis("backward", 10, UnitMeters)

	safe, warnings := v.Validate(adj)
	if got := safe.Translation.Z.Value(); got != 3 {
		t.Errorf("z: want clamp to 3, got %.1f", got)
	}
	if len(warnings) != 1 || warnings[0].Type != WarnExcessiveTranslation || warnings[0].Axis != AxisZ {
		t.Errorf("unexpected warnings: %v", warnings)
	}
}

func TestValidate_LargeMovementNotice(t *testing.T) {
	v := NewValidator(DefaultSafetyLimits())

	// 35 of 45 yaw degrees: above the 0.7 advisory fraction, within bounds.
	adj := DOFAdjustment{}
	adj.Rotation.Yaw = axis("left", 35, UnitDegrees)

	safe, warnings := v.Validate(adj)
	if got := safe.Rotation.Yaw.Value(); got != 35 {
		t.Errorf("advisory band must not modify the value, got %.1f", got)
	}
	if len(warnings) != 1 {
		t.Fatalf("want 1 notice, got %d", len(warnings))
	}
	if warnings[0].Type != WarnLargeMovement || warnings[0].Magnitude != 35 {
		t.Errorf("unexpected notice: %+v", warnings[0])
	}
	if warnings[0].Severity() != "notice" {
		t.Errorf("severity: want notice, got %s", warnings[0].Severity())
	}
}

func TestValidate_AxesIndependent(t *testing.T) {
	v := NewValidator(DefaultSafetyLimits())

	adj := DOFAdjustment{}
	adj.Translation.X = axis("right", 5, UnitMeters)   // clamped
	adj.Translation.Y = axis("up", 0.5, UnitMeters)    // fine
	adj.Rotation.Pitch = axis("up", 25, UnitDegrees)   // notice band (>21)
	adj.Rotation.Roll = axis("cw", 100, UnitDegrees)   // clamped

	safe, warnings := v.Validate(adj)

	if safe.Translation.X.Value() != 3 || safe.Translation.Y.Value() != 0.5 ||
		safe.Rotation.Pitch.Value() != 25 || safe.Rotation.Roll.Value() != 40 {
		t.Errorf("per-axis handling wrong: %+v", safe)
	}
	if len(warnings) != 3 {
		t.Errorf("want 3 warnings, got %d: %v", len(warnings), warnings)
	}
}

func TestValidate_NoChangePassesSilently(t *testing.T) {
	v := NewValidator(DefaultSafetyLimits())

	safe, warnings := v.Validate(DOFAdjustment{})
	if len(warnings) != 0 {
		t.Errorf("empty adjustment should produce no warnings: %v", warnings)
	}
	if !safe.Translation.X.IsNoChange() {
		t.Error("empty axes stay no-change")
	}
}

func TestValidate_FramingPassesThrough(t *testing.T) {
	v := NewValidator(DefaultSafetyLimits())

	p := 0.8
	adj := DOFAdjustment{Framing: &FramingGuidance{
		FramingType:            FramingCloseUp,
		IdealSubjectPercentage: &p,
	}}

	safe, _ := v.Validate(adj)
	if safe.Framing == nil || safe.Framing.FramingType != FramingCloseUp {
		t.Fatal("framing must pass through validation")
	}
	// The copy is independent of the input.
	safe.Framing.FramingType = FramingFullBody
	if adj.Framing.FramingType != FramingCloseUp {
		t.Error("validation must not alias the input framing")
	}
}

func TestValidate_Idempotent(t *testing.T) {
	v := NewValidator(DefaultSafetyLimits())

	adj := DOFAdjustment{}
	adj.Translation.X = axis("right", 7, UnitMeters)
	adj.Rotation.Yaw = axis("left", 90, UnitDegrees)
	adj.Rotation.Pitch = axis("down", 12, UnitDegrees)

	once, _ := v.Validate(adj)
	twice, _ := v.Validate(once)

	if !reflect.DeepEqual(valuesOf(once), valuesOf(twice)) {
		t.Errorf("revalidation changed values: %v vs %v", valuesOf(once), valuesOf(twice))
	}
}

func valuesOf(adj DOFAdjustment) [6]float64 {
	return [6]float64{
		adj.Translation.X.Value(),
		adj.Translation.Y.Value(),
		adj.Translation.Z.Value(),
		adj.Rotation.Yaw.Value(),
		adj.Rotation.Pitch.Value(),
		adj.Rotation.Roll.Value(),
	}
}
