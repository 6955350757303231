package framing

import (
	"math"
	"testing"

	"github.com/shotmatch/go-shotmatch/pkg/geom"
	"github.com/shotmatch/go-shotmatch/pkg/guidance"
)

var vp = geom.Viewport{Width: 1920, Height: 1080}

func TestTargetRect_FramingMargins(t *testing.T) {
	subject := geom.RectFromCenter(960, 540, 100, 300)

	cases := []struct {
		framingType string
		wantW       float64
		wantH       float64
	}{
		{guidance.FramingCloseUp, 120, 360},
		{guidance.FramingMediumShot, 150, 450},
		{guidance.FramingFullBody, 180, 540},
		{"", 150, 450}, // unknown token falls back to the default margin
	}

	for _, tc := range cases {
		fg := &guidance.FramingGuidance{FramingType: tc.framingType}
		rect, ok := TargetRect(DefaultConfig(), subject, vp, fg)
		if !ok {
			t.Fatalf("%s: expected a target rect", tc.framingType)
		}
		if math.Abs(rect.Width()-tc.wantW) > 1e-9 || math.Abs(rect.Height()-tc.wantH) > 1e-9 {
			t.Errorf("%s: want %.0fx%.0f, got %.1fx%.1f",
				tc.framingType, tc.wantW, tc.wantH, rect.Width(), rect.Height())
		}
	}
}

func TestTargetRect_NilGuidanceCentersDefault(t *testing.T) {
	subject := geom.RectFromCenter(400, 300, 100, 300)

	rect, ok := TargetRect(DefaultConfig(), subject, vp, nil)
	if !ok {
		t.Fatal("expected a target rect")
	}
	cx, cy := rect.Center()
	if cx != 960 || cy != 540 {
		t.Errorf("default target should center on screen, got (%.0f, %.0f)", cx, cy)
	}
	if math.Abs(rect.Width()-150) > 1e-9 {
		t.Errorf("default margin: want width 150, got %.1f", rect.Width())
	}
}

func TestTargetRect_ThirdsPositions(t *testing.T) {
	subject := geom.RectFromCenter(960, 540, 100, 300)

	cases := []struct {
		position string
		wantCX   float64
		wantCY   float64
	}{
		{guidance.PositionCenter, 960, 540},
		{guidance.PositionLeftThird, 640, 540},
		{guidance.PositionRightThird, 1280, 540},
		{guidance.PositionTopThird, 960, 360},
		{guidance.PositionBottomThird, 960, 720},
	}

	for _, tc := range cases {
		fg := &guidance.FramingGuidance{SubjectPosition: tc.position}
		rect, ok := TargetRect(DefaultConfig(), subject, vp, fg)
		if !ok {
			t.Fatalf("%s: expected a target rect", tc.position)
		}
		cx, cy := rect.Center()
		if math.Abs(cx-tc.wantCX) > 1e-9 || math.Abs(cy-tc.wantCY) > 1e-9 {
			t.Errorf("%s: want center (%.0f, %.0f), got (%.1f, %.1f)",
				tc.position, tc.wantCX, tc.wantCY, cx, cy)
		}
	}
}

func TestTargetRect_IdealPercentageOverridesMargin(t *testing.T) {
	subject := geom.RectFromCenter(960, 540, 100, 200)

	p := 0.5
	fg := &guidance.FramingGuidance{
		FramingType:            guidance.FramingCloseUp,
		IdealSubjectPercentage: &p,
	}
	rect, _ := TargetRect(DefaultConfig(), subject, vp, fg)
	// 1/0.5 = 2x beats the close-up 1.2x margin.
	if math.Abs(rect.Width()-200) > 1e-9 || math.Abs(rect.Height()-400) > 1e-9 {
		t.Errorf("want 200x400, got %.1fx%.1f", rect.Width(), rect.Height())
	}
}

func TestTargetRect_ViewportClampKeepsAspect(t *testing.T) {
	// A tall subject whose environmental target would overflow vertically.
	subject := geom.RectFromCenter(960, 540, 400, 800)

	fg := &guidance.FramingGuidance{FramingType: guidance.FramingEnvironmental}
	rect, ok := TargetRect(DefaultConfig(), subject, vp, fg)
	if !ok {
		t.Fatal("expected a target rect")
	}

	if rect.Width() > vp.Width*0.9+1e-9 || rect.Height() > vp.Height*0.9+1e-9 {
		t.Errorf("target exceeds viewport bound: %.1fx%.1f", rect.Width(), rect.Height())
	}
	// Aspect ratio preserved through the clamp.
	if math.Abs(rect.Width()/rect.Height()-0.5) > 1e-9 {
		t.Errorf("aspect ratio not preserved: %.1fx%.1f", rect.Width(), rect.Height())
	}
	if math.Abs(rect.Height()-vp.Height*0.9) > 1e-9 {
		t.Errorf("height should be pinned to the bound, got %.1f", rect.Height())
	}
}

func TestTargetRect_Degenerate(t *testing.T) {
	if _, ok := TargetRect(DefaultConfig(), geom.Rect{}, vp, nil); ok {
		t.Error("zero subject rect must not produce a target")
	}
	subject := geom.RectFromCenter(960, 540, 100, 300)
	if _, ok := TargetRect(DefaultConfig(), subject, geom.Viewport{}, nil); ok {
		t.Error("zero viewport must not produce a target")
	}
}
