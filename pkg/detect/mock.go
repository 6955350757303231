package detect

import "sync"

// MockDetector returns scripted detections for tests and for running the
// daemon without OpenCV-visible hardware.
type MockDetector struct {
	mu      sync.Mutex
	results [][]Detection
	next    int

	// Err, when set, is returned by every Detect call.
	Err error
}

// NewMock creates a mock detector that cycles through the given result
// sets, one per Detect call.
func NewMock(results ...[]Detection) *MockDetector {
	return &MockDetector{results: results}
}

// Detect returns the next scripted result set.
func (m *MockDetector) Detect(jpeg []byte) ([]Detection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	if len(m.results) == 0 {
		return nil, nil
	}
	// Copy so callers that filter in place cannot corrupt the script.
	out := make([]Detection, len(m.results[m.next%len(m.results)]))
	copy(out, m.results[m.next%len(m.results)])
	m.next++
	return out, nil
}

// Close implements Detector.
func (m *MockDetector) Close() error { return nil }

// Calls returns how many Detect calls have been made.
func (m *MockDetector) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.next
}
