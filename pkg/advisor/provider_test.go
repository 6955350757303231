package advisor

import (
	"context"
	"errors"
	"testing"

	"github.com/shotmatch/go-shotmatch/pkg/guidance"
)

const minimalDoc = `{
  "adjustments": {
    "translation": {
      "x": {"direction": "right", "magnitude": 0.5, "unit": "m"},
      "y": {"direction": "none", "unit": "m"},
      "z": {"direction": "none", "unit": "m"}
    },
    "rotation": {
      "yaw": {"direction": "none", "unit": "deg"},
      "pitch": {"direction": "none", "unit": "deg"},
      "roll": {"direction": "none", "unit": "deg"}
    }
  },
  "summary": "step right"
}`

func TestParseResponse_PlainJSON(t *testing.T) {
	resp, err := parseResponse(minimalDoc)
	if err != nil {
		t.Fatalf("parseResponse failed: %v", err)
	}
	if resp.Adjustments.Translation.X.Value() != 0.5 {
		t.Errorf("unexpected adjustment: %+v", resp.Adjustments.Translation.X)
	}
}

func TestParseResponse_StripsCodeFence(t *testing.T) {
	for _, wrapped := range []string{
		"```json\n" + minimalDoc + "\n```",
		"```\n" + minimalDoc + "\n```",
		"Here's my recommendation:\n\n```json\n" + minimalDoc + "\n```",
	} {
		resp, err := parseResponse(wrapped)
		if err != nil {
			t.Fatalf("fenced document failed: %v", err)
		}
		if resp.Summary != "step right" {
			t.Errorf("summary lost through fence stripping: %q", resp.Summary)
		}
	}
}

func TestParseResponse_StripsLeadingProse(t *testing.T) {
	resp, err := parseResponse("Sure! " + minimalDoc)
	if err != nil {
		t.Fatalf("prose-prefixed document failed: %v", err)
	}
	if resp.Summary != "step right" {
		t.Errorf("unexpected summary: %q", resp.Summary)
	}
}

func TestParseResponse_Errors(t *testing.T) {
	if _, err := parseResponse(""); !errors.Is(err, ErrNoResponse) {
		t.Errorf("empty text: want ErrNoResponse, got %v", err)
	}
	if _, err := parseResponse("   \n  "); !errors.Is(err, ErrNoResponse) {
		t.Errorf("blank text: want ErrNoResponse, got %v", err)
	}

	_, err := parseResponse(`{"adjustments": null}`)
	var de *guidance.DecodeError
	if !errors.As(err, &de) {
		t.Errorf("schema violation: want *DecodeError, got %v", err)
	}
}

func TestMockProvider(t *testing.T) {
	m := NewMock()

	resp, err := m.Recommend(context.Background(), Request{Distance: "2.0 m"})
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	// Default script is a hold-position recommendation.
	if !resp.Adjustments.Translation.X.IsNoChange() {
		t.Errorf("neutral response should not move, got %+v", resp.Adjustments.Translation.X)
	}
	if m.LastRequest.Distance != "2.0 m" {
		t.Errorf("request not recorded: %+v", m.LastRequest)
	}

	m.Err = errors.New("service down")
	if _, err := m.Recommend(context.Background(), Request{}); err == nil {
		t.Error("expected scripted error")
	}
}

func TestNewGemini_RequiresKey(t *testing.T) {
	if _, err := NewGemini("", "gemini-2.0-flash"); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("want ErrMissingAPIKey, got %v", err)
	}
}
