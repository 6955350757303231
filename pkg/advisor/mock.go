package advisor

import (
	"context"
	"sync"

	"github.com/shotmatch/go-shotmatch/pkg/guidance"
)

// MockProvider returns scripted recommendations for tests and for running
// the daemon without any external service.
type MockProvider struct {
	mu        sync.Mutex
	responses []*guidance.StructuredResponse
	next      int

	// Err, when set, is returned by every Recommend call.
	Err error

	// LastRequest records the most recent request for assertions.
	LastRequest Request
}

// NewMock creates a mock advisor cycling through the given responses.
// With no responses it returns a neutral "hold position" recommendation.
func NewMock(responses ...*guidance.StructuredResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// Name implements Provider.
func (m *MockProvider) Name() string { return "mock" }

// Recommend implements Provider.
func (m *MockProvider) Recommend(ctx context.Context, req Request) (*guidance.StructuredResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastRequest = req
	if m.Err != nil {
		return nil, m.Err
	}
	if len(m.responses) == 0 {
		return neutralResponse(), nil
	}
	out := m.responses[m.next%len(m.responses)]
	m.next++
	return out, nil
}

func neutralResponse() *guidance.StructuredResponse {
	axis := func(unit guidance.Unit) guidance.DirectionAdjustment {
		return guidance.DirectionAdjustment{Direction: "none", Unit: unit}
	}
	return &guidance.StructuredResponse{
		Adjustments: guidance.DOFAdjustment{
			Translation: guidance.Translation{
				X: axis(guidance.UnitMeters),
				Y: axis(guidance.UnitMeters),
				Z: axis(guidance.UnitMeters),
			},
			Rotation: guidance.Rotation{
				Yaw:   axis(guidance.UnitDegrees),
				Pitch: axis(guidance.UnitDegrees),
				Roll:  axis(guidance.UnitDegrees),
			},
			Framing: &guidance.FramingGuidance{
				SubjectPosition: guidance.PositionCenter,
				FramingType:     guidance.FramingMediumShot,
			},
		},
		Summary: "composition looks good, hold position",
	}
}
