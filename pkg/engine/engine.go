package engine

import (
	"context"
	"sync"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/shotmatch/go-shotmatch/internal/log"
	"github.com/shotmatch/go-shotmatch/pkg/advisor"
	"github.com/shotmatch/go-shotmatch/pkg/detect"
	"github.com/shotmatch/go-shotmatch/pkg/framing"
	"github.com/shotmatch/go-shotmatch/pkg/geom"
	"github.com/shotmatch/go-shotmatch/pkg/guidance"
	"github.com/shotmatch/go-shotmatch/pkg/subject"
	"github.com/shotmatch/go-shotmatch/pkg/track"
)

// DetectionSource yields the latest available 2D detection result.
// detect.Worker.Latest satisfies it.
type DetectionSource func() (detect.Result, bool)

// Engine runs the per-frame pipeline. ProcessFrame is single-flight: a
// frame arriving while the previous one is still processing is dropped,
// never queued, so the pose stream can never back up behind the engine.
type Engine struct {
	cfg       Config
	fuser     *subject.Fuser
	tracker   *track.Tracker
	validator *guidance.Validator
	latest    DetectionSource

	frameMu sync.Mutex // single-flight guard for ProcessFrame

	mu    sync.RWMutex // guards everything below
	state GuidanceState

	active     bool
	adjustment *guidance.DOFAdjustment
	summary    string
	warnings   []guidance.SafetyWarning

	computedAt    r3.Vec // fused center used for the last geometry pass
	hasComputedAt bool
}

// New creates an engine. latest may be nil when no 2D detector runs.
func New(cfg Config, latest DetectionSource) *Engine {
	if cfg.RecomputeThreshold <= 0 {
		cfg.RecomputeThreshold = DefaultConfig().RecomputeThreshold
	}
	if latest == nil {
		latest = func() (detect.Result, bool) { return detect.Result{}, false }
	}
	return &Engine{
		cfg:       cfg,
		fuser:     subject.NewFuser(cfg.Subject),
		tracker:   track.New(cfg.Track),
		validator: guidance.NewValidator(cfg.Limits),
		latest:    latest,
	}
}

// ProcessFrame runs one frame of the pipeline. Safe to call directly on
// the frame-delivery goroutine; returns immediately if the previous frame
// is still in flight.
func (e *Engine) ProcessFrame(in FrameInput) {
	if !e.frameMu.TryLock() {
		return
	}
	defer e.frameMu.Unlock()

	camPos := in.Camera.Pose.Translation()

	sk, tracked := e.tracker.Update(in.Skeletons)

	next := GuidanceState{
		TrackingState: e.tracker.State().String(),
		CameraHeight:  track.CameraHeight(camPos.Y, in.Planes),
		Light:         in.Light,
	}

	if tracked {
		next.Distance = e.tracker.ObserveDistance(camPos, sk)
		next.EyeLevel = e.tracker.EyeLevel(camPos.Y, sk)
	} else {
		next.Distance = track.Searching()
		next.EyeLevel = track.Searching()
	}

	fused, haveSubject := e.fuse(sk, tracked, in.Camera)
	if haveSubject {
		e.tracker.ObserveBounds(fused)
		b := fused
		next.Subject = &b
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active {
		switch {
		case !tracked && !haveSubject:
			// Sustained loss: all derived guidance state goes away with
			// the transition, nothing stale survives.
			log.Info("engine: subject lost, clearing guidance")
			e.clearGuidanceLocked()

		case haveSubject:
			e.refreshGuidanceLocked(&next, fused, in.Camera)
		}
	}

	next.Active = e.active
	if e.active {
		next.Adjustment = e.adjustment
		next.Summary = e.summary
		next.Warnings = e.warnings
		// Geometry survives between recompute points.
		if next.SubjectRect == nil {
			next.SubjectRect = e.state.SubjectRect
			next.TargetRect = e.state.TargetRect
			next.AlignmentScore = e.state.AlignmentScore
		}
	}

	e.state = next
}

// fuse builds the fused subject bounds from the tracked skeleton and the
// latest available 2D detections. Stale or absent detections are fine;
// fusion runs with whatever is on hand.
func (e *Engine) fuse(sk subject.Skeleton, tracked bool, cam geom.Camera) (subject.Bounds, bool) {
	var skeletal subject.Bounds
	haveSkeletal := false
	if tracked {
		skeletal, haveSkeletal = e.fuser.FromJoints(sk)
	}

	var visuals []subject.Bounds
	if result, ok := e.latest(); ok {
		for _, d := range result.Detections {
			if b, ok := e.fuser.FromDetection(d, cam); ok {
				visuals = append(visuals, b)
			}
		}
	}

	return e.fuser.Fuse(skeletal, haveSkeletal, visuals)
}

// refreshGuidanceLocked recomputes the target geometry when the subject
// has moved beyond the recompute threshold. A degenerate projection
// clears the rectangles for the frame without deactivating guidance.
func (e *Engine) refreshGuidanceLocked(next *GuidanceState, fused subject.Bounds, cam geom.Camera) {
	if e.hasComputedAt && geom.Dist(fused.Center, e.computedAt) <= e.cfg.RecomputeThreshold {
		return
	}

	subjectRect, ok := cam.ProjectBox(fused.Center, fused.Size)
	if !ok {
		// Behind-camera or degenerate projection: hide guidance this
		// frame, try again on the next one.
		e.state.SubjectRect = nil
		e.state.TargetRect = nil
		e.state.AlignmentScore = 0
		return
	}

	var fg *guidance.FramingGuidance
	if e.adjustment != nil {
		fg = e.adjustment.Framing
	}
	targetRect, ok := framing.TargetRect(e.cfg.Framing, subjectRect, cam.Viewport, fg)
	if !ok {
		e.state.SubjectRect = nil
		e.state.TargetRect = nil
		e.state.AlignmentScore = 0
		return
	}

	next.SubjectRect = &subjectRect
	next.TargetRect = &targetRect
	next.AlignmentScore = framing.AlignmentScore(e.cfg.Framing, subjectRect, targetRect)

	e.computedAt = fused.Center
	e.hasComputedAt = true
	e.state.SubjectRect = &subjectRect
	e.state.TargetRect = &targetRect
	e.state.AlignmentScore = next.AlignmentScore
}

// RequestGuidance asks the advisor for a recommendation, validates it and
// activates the result. Decode failures from the advisor propagate to the
// caller (retryable); nothing is activated from a malformed document.
func (e *Engine) RequestGuidance(ctx context.Context, provider advisor.Provider, req advisor.Request) ([]guidance.SafetyWarning, error) {
	resp, err := provider.Recommend(ctx, req)
	if err != nil {
		return nil, err
	}

	safe, warnings := e.validator.Validate(resp.Adjustments)
	for _, w := range warnings {
		log.Warn("engine: guidance "+w.Severity(), "detail", w.String())
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.active = true
	e.adjustment = &safe
	e.summary = resp.Summary
	e.warnings = warnings
	e.hasComputedAt = false // force geometry on the next frame
	e.state.Active = true
	e.state.Adjustment = e.adjustment
	e.state.Summary = e.summary
	e.state.Warnings = e.warnings
	log.Info("engine: guidance activated", "provider", provider.Name(), "warnings", len(warnings))
	return warnings, nil
}

// ToggleOff deactivates guidance and clears all derived state.
func (e *Engine) ToggleOff() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.clearGuidanceLocked()
}

func (e *Engine) clearGuidanceLocked() {
	e.active = false
	e.adjustment = nil
	e.summary = ""
	e.warnings = nil
	e.hasComputedAt = false
	e.state.SubjectRect = nil
	e.state.TargetRect = nil
	e.state.AlignmentScore = 0
	e.state.Active = false
	e.state.Adjustment = nil
	e.state.Summary = ""
	e.state.Warnings = nil
}

// Active reports whether guidance is currently active.
func (e *Engine) Active() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.active
}

// Snapshot returns a copy of the current guidance state.
func (e *Engine) Snapshot() GuidanceState {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state
}
