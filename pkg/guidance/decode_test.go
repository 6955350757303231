package guidance

import (
	"errors"
	"strings"
	"testing"
)

const validDoc = `{
  "adjustments": {
    "translation": {
      "x": {"direction": "right", "magnitude": 0.5, "unit": "m"},
      "y": {"direction": "none", "unit": "m"},
      "z": {"direction": "backward", "magnitude": 1.2, "unit": "meters"}
    },
    "rotation": {
      "yaw": {"direction": "left", "magnitude": 10, "unit": "deg"},
      "pitch": {"direction": "none", "magnitude": 0, "unit": "degrees"},
      "roll": {"direction": "none", "unit": "deg"}
    },
    "framing": {
      "subject_position": "left_third",
      "framing_type": "medium_shot",
      "ideal_subject_percentage": 0.5
    }
  },
  "summary": "step right and back",
  "confidence": 0.8
}`

func TestDecode_Valid(t *testing.T) {
	resp, err := Decode([]byte(validDoc))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	x := resp.Adjustments.Translation.X
	if x.Direction != "right" || x.Value() != 0.5 || x.Unit != UnitMeters {
		t.Errorf("unexpected x axis: %+v", x)
	}
	// "meters" and "degrees" normalize to the canonical forms.
	if resp.Adjustments.Translation.Z.Unit != UnitMeters {
		t.Errorf("unit alias not normalized: %v", resp.Adjustments.Translation.Z.Unit)
	}
	if resp.Adjustments.Rotation.Pitch.Unit != UnitDegrees {
		t.Errorf("unit alias not normalized: %v", resp.Adjustments.Rotation.Pitch.Unit)
	}

	// Absent and zero magnitudes both read as no-change.
	if !resp.Adjustments.Translation.Y.IsNoChange() {
		t.Error("missing magnitude should be no-change")
	}
	if !resp.Adjustments.Rotation.Pitch.IsNoChange() {
		t.Error("zero magnitude should be no-change")
	}

	if resp.Adjustments.Framing == nil || resp.Adjustments.Framing.SubjectPosition != PositionLeftThird {
		t.Errorf("framing not carried through: %+v", resp.Adjustments.Framing)
	}
	if resp.Summary != "step right and back" {
		t.Errorf("summary: got %q", resp.Summary)
	}
	if resp.Confidence == nil || *resp.Confidence != 0.8 {
		t.Errorf("confidence: got %v", resp.Confidence)
	}
}

func TestDecode_Malformed(t *testing.T) {
	cases := []struct {
		name  string
		doc   string
		field string
	}{
		{"invalid json", `{not json`, ""},
		{"missing adjustments", `{}`, "adjustments"},
		{"missing translation", `{"adjustments": {"rotation": {}}}`, "adjustments.translation"},
		{"missing rotation", `{"adjustments": {"translation": {}}}`, "adjustments.rotation"},
		{
			"missing axis",
			`{"adjustments": {"translation": {"x": {"direction": "right", "unit": "m"}}, "rotation": {}}}`,
			"adjustments.translation.y",
		},
		{
			"missing direction",
			`{"adjustments": {"translation": {
				"x": {"unit": "m"},
				"y": {"direction": "none", "unit": "m"},
				"z": {"direction": "none", "unit": "m"}
			}, "rotation": {}}}`,
			"adjustments.translation.x.direction",
		},
		{
			"unknown unit",
			`{"adjustments": {"translation": {
				"x": {"direction": "right", "magnitude": 1, "unit": "furlongs"},
				"y": {"direction": "none", "unit": "m"},
				"z": {"direction": "none", "unit": "m"}
			}, "rotation": {}}}`,
			"adjustments.translation.x.unit",
		},
		{
			"negative magnitude",
			`{"adjustments": {"translation": {
				"x": {"direction": "right", "magnitude": -1, "unit": "m"},
				"y": {"direction": "none", "unit": "m"},
				"z": {"direction": "none", "unit": "m"}
			}, "rotation": {}}}`,
			"adjustments.translation.x.magnitude",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode([]byte(tc.doc))
			if err == nil {
				t.Fatal("expected decode error")
			}
			var de *DecodeError
			if !errors.As(err, &de) {
				t.Fatalf("expected *DecodeError, got %T", err)
			}
			if tc.field != "" && !strings.HasPrefix(de.Field, tc.field) {
				t.Errorf("field: want prefix %q, got %q", tc.field, de.Field)
			}
		})
	}
}

func TestDecode_FramingPercentage(t *testing.T) {
	doc := func(p string) string {
		return `{"adjustments": {
			"translation": {
				"x": {"direction": "none", "unit": "m"},
				"y": {"direction": "none", "unit": "m"},
				"z": {"direction": "none", "unit": "m"}
			},
			"rotation": {
				"yaw": {"direction": "none", "unit": "deg"},
				"pitch": {"direction": "none", "unit": "deg"},
				"roll": {"direction": "none", "unit": "deg"}
			},
			"framing": {"ideal_subject_percentage": ` + p + `}
		}}`
	}

	for _, bad := range []string{"0", "-0.2", "1.5"} {
		if _, err := Decode([]byte(doc(bad))); err == nil {
			t.Errorf("percentage %s should be rejected", bad)
		}
	}
	if _, err := Decode([]byte(doc("1"))); err != nil {
		t.Errorf("percentage 1 is the inclusive upper bound: %v", err)
	}
}
