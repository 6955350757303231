package detect

import (
	"context"
	"errors"
	"testing"
	"time"
)

type stubFrames struct {
	err error
}

func (s stubFrames) CaptureJPEG() ([]byte, error) {
	return []byte{0xff, 0xd8}, s.err
}

func TestWorker_PublishesLatest(t *testing.T) {
	detector := NewMock([]Detection{
		{X: 0.4, Y: 0.2, W: 0.2, H: 0.6, Confidence: 0.9},
	})
	w := NewWorker(DefaultConfig(), detector, stubFrames{})

	if _, ok := w.Latest(); ok {
		t.Fatal("no result before the first pass")
	}

	w.runPass()

	res, ok := w.Latest()
	if !ok {
		t.Fatal("expected a result after a pass")
	}
	if len(res.Detections) != 1 || res.Detections[0].Confidence != 0.9 {
		t.Errorf("unexpected detections: %v", res.Detections)
	}
	if res.At.IsZero() {
		t.Error("result timestamp missing")
	}
}

func TestWorker_FiltersWeakDetections(t *testing.T) {
	detector := NewMock([]Detection{
		{X: 0.1, Y: 0.1, W: 0.2, H: 0.5, Confidence: 0.8},
		{X: 0.7, Y: 0.1, W: 0.2, H: 0.5, Confidence: 0.2},
	})
	cfg := DefaultConfig()
	cfg.MinConfidence = 0.4
	w := NewWorker(cfg, detector, stubFrames{})

	w.runPass()

	res, _ := w.Latest()
	if len(res.Detections) != 1 {
		t.Fatalf("want 1 detection after filtering, got %d", len(res.Detections))
	}
	if res.Detections[0].Confidence != 0.8 {
		t.Errorf("wrong detection survived: %+v", res.Detections[0])
	}
}

func TestWorker_KeepsLastResultOnFailure(t *testing.T) {
	detector := NewMock([]Detection{{W: 0.2, H: 0.5, Confidence: 0.9}})
	w := NewWorker(DefaultConfig(), detector, stubFrames{})

	w.runPass()
	if _, ok := w.Latest(); !ok {
		t.Fatal("first pass should publish")
	}

	// Failed passes leave the previous result in place rather than
	// clearing it.
	detector.Err = errors.New("camera unplugged")
	w.runPass()
	res, ok := w.Latest()
	if !ok || len(res.Detections) != 1 {
		t.Error("failed pass must not clear the last good result")
	}
}

func TestWorker_CaptureFailureSkipsDetector(t *testing.T) {
	detector := NewMock([]Detection{{W: 0.2, H: 0.5, Confidence: 0.9}})
	w := NewWorker(DefaultConfig(), detector, stubFrames{err: errors.New("no frame")})

	w.runPass()
	if detector.Calls() != 0 {
		t.Error("detector must not run when capture fails")
	}
	if _, ok := w.Latest(); ok {
		t.Error("no result should be published")
	}
}

func TestWorker_RunStopsOnCancel(t *testing.T) {
	detector := NewMock([]Detection{{W: 0.2, H: 0.5, Confidence: 0.9}})
	cfg := DefaultConfig()
	cfg.Interval = time.Millisecond
	w := NewWorker(cfg, detector, stubFrames{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	// Let at least one tick land, then stop.
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop on context cancel")
	}
	if detector.Calls() == 0 {
		t.Error("expected at least one pass before cancellation")
	}
}
