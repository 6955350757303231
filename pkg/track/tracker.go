package track

import (
	"github.com/google/uuid"

	"github.com/shotmatch/go-shotmatch/internal/log"
	"github.com/shotmatch/go-shotmatch/pkg/subject"
)

// State is the continuity state machine.
type State int

const (
	// StateNoSubject means nothing is being tracked; metrics report
	// searching sentinels.
	StateNoSubject State = iota

	// StateTracking means one anchor is locked as the subject.
	StateTracking
)

// String returns the state label.
func (s State) String() string {
	if s == StateTracking {
		return "tracking"
	}
	return "no_subject"
}

// Config holds the continuity tunables.
type Config struct {
	// BufferSize is the smoothing window capacity.
	BufferSize int

	// Policy classifies skeletal anchors as human. Nil means trust-all.
	Policy Policy

	// EyeOffsetBelowHead is how far the eye line sits below the head
	// joint (meters).
	EyeOffsetBelowHead float64

	// EyeOffsetAboveShoulders is how far the eye line sits above the
	// shoulder midpoint (meters).
	EyeOffsetAboveShoulders float64
}

// DefaultConfig returns the production continuity settings.
func DefaultConfig() Config {
	return Config{
		BufferSize:              3,
		Policy:                  TrustAllPolicy{},
		EyeOffsetBelowHead:      0.07,
		EyeOffsetAboveShoulders: 0.28,
	}
}

// Tracker keeps one subject identity stable across frames so guidance
// does not jitter between targets. It owns the smoothing buffer and the
// last-known bounds; callers invoke it sequentially per frame.
type Tracker struct {
	cfg    Config
	policy Policy

	state    State
	anchorID uuid.UUID
	known    map[uuid.UUID]bool // anchors seen in the previous update

	distance *SmoothingBuffer

	lastBounds    subject.Bounds
	hasLastBounds bool
}

// New creates a tracker in the NoSubject state.
func New(cfg Config) *Tracker {
	policy := cfg.Policy
	if policy == nil {
		policy = TrustAllPolicy{}
	}
	size := cfg.BufferSize
	if size <= 0 {
		size = DefaultConfig().BufferSize
	}
	if cfg.EyeOffsetBelowHead == 0 {
		cfg.EyeOffsetBelowHead = DefaultConfig().EyeOffsetBelowHead
	}
	if cfg.EyeOffsetAboveShoulders == 0 {
		cfg.EyeOffsetAboveShoulders = DefaultConfig().EyeOffsetAboveShoulders
	}
	return &Tracker{
		cfg:      cfg,
		policy:   policy,
		distance: NewSmoothingBuffer(size),
		known:    make(map[uuid.UUID]bool),
	}
}

// Update processes one frame of raw skeletal detections and returns the
// skeleton of the tracked subject, if any. Transitions:
//
//	NoSubject -> Tracking   first valid anchor appears
//	Tracking  -> Tracking'  tracked anchor gone, another valid one present
//	Tracking  -> NoSubject  no valid anchors remain
//
// Entering NoSubject clears the smoothing buffer and the last-known
// bounds so no stale guidance survives the loss.
func (t *Tracker) Update(skeletons []subject.Skeleton) (subject.Skeleton, bool) {
	present := make(map[uuid.UUID]bool, len(skeletons))
	var current *subject.Skeleton
	var firstValid *subject.Skeleton

	for i := range skeletons {
		sk := &skeletons[i]
		present[sk.AnchorID] = true
		if !t.policy.IsHuman(*sk) {
			continue
		}
		if firstValid == nil {
			firstValid = sk
		}
		if t.state == StateTracking && sk.AnchorID == t.anchorID {
			current = sk
		}
	}

	// Evict policy cache entries for anchors that disappeared.
	for id := range t.known {
		if !present[id] {
			t.policy.Evict(id)
		}
	}
	t.known = present

	switch {
	case current != nil:
		return *current, true

	case firstValid != nil:
		if t.state == StateTracking {
			log.Debug("track: switching anchor",
				"from", t.anchorID, "to", firstValid.AnchorID)
		} else {
			log.Info("track: subject acquired", "anchor", firstValid.AnchorID)
		}
		t.state = StateTracking
		t.anchorID = firstValid.AnchorID
		return *firstValid, true

	default:
		if t.state == StateTracking {
			log.Info("track: subject lost", "anchor", t.anchorID)
		}
		t.reset()
		return subject.Skeleton{}, false
	}
}

func (t *Tracker) reset() {
	t.state = StateNoSubject
	t.anchorID = uuid.Nil
	t.distance.Reset()
	t.hasLastBounds = false
}

// State returns the current continuity state.
func (t *Tracker) State() State { return t.state }

// AnchorID returns the tracked anchor, or uuid.Nil when none.
func (t *Tracker) AnchorID() uuid.UUID { return t.anchorID }

// ObserveBounds records the latest fused bounds for the tracked subject.
func (t *Tracker) ObserveBounds(b subject.Bounds) {
	t.lastBounds = b
	t.hasLastBounds = true
}

// LastBounds returns the last fused bounds seen while tracking.
func (t *Tracker) LastBounds() (subject.Bounds, bool) {
	return t.lastBounds, t.hasLastBounds
}
