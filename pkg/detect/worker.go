package detect

import (
	"context"
	"sync"
	"time"

	"github.com/shotmatch/go-shotmatch/internal/log"
)

// Worker runs the detector on its own goroutine at the configured
// interval and keeps the latest result available for polling. This is the
// only part of the engine allowed off the frame-delivery goroutine.
type Worker struct {
	cfg      Config
	detector Detector
	source   FrameSource

	mu     sync.RWMutex
	latest *Result

	inFlight bool // single-flight: skip a tick if a pass is still running
	flightMu sync.Mutex
}

// NewWorker creates a detection worker. It does not start until Run.
func NewWorker(cfg Config, detector Detector, source FrameSource) *Worker {
	return &Worker{cfg: cfg, detector: detector, source: source}
}

// Run executes detection passes until the context is cancelled.
// Call in a goroutine.
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.runPass()
		}
	}
}

func (w *Worker) runPass() {
	w.flightMu.Lock()
	if w.inFlight {
		w.flightMu.Unlock()
		return
	}
	w.inFlight = true
	w.flightMu.Unlock()

	defer func() {
		w.flightMu.Lock()
		w.inFlight = false
		w.flightMu.Unlock()
	}()

	frame, err := w.source.CaptureJPEG()
	if err != nil {
		log.Debug("detect: capture failed", "error", err)
		return
	}

	start := time.Now()
	detections, err := w.detector.Detect(frame)
	if err != nil {
		log.Warn("detect: pass failed", "error", err)
		return
	}

	kept := detections[:0]
	for _, d := range detections {
		if d.Confidence >= w.cfg.MinConfidence {
			kept = append(kept, d)
		}
	}

	w.mu.Lock()
	w.latest = &Result{
		Detections: kept,
		Took:       time.Since(start),
		At:         start,
	}
	w.mu.Unlock()
}

// Latest returns the most recent detection result and true, or false when
// no pass has completed yet. Results go stale rather than blocking: the
// fusion step is called with whatever is available.
func (w *Worker) Latest() (Result, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.latest == nil {
		return Result{}, false
	}
	return *w.latest, true
}
