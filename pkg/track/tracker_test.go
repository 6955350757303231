package track

import (
	"testing"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/shotmatch/go-shotmatch/pkg/subject"
)

func skeletonWithJoints(id uuid.UUID, names ...subject.JointName) subject.Skeleton {
	joints := make(map[subject.JointName]r3.Vec, len(names))
	for _, n := range names {
		joints[n] = r3.Vec{Y: 1, Z: -2}
	}
	return subject.Skeleton{AnchorID: id, Joints: joints}
}

func TestTracker_AcquireAndHold(t *testing.T) {
	tr := New(DefaultConfig())
	a := uuid.New()
	b := uuid.New()

	if tr.State() != StateNoSubject {
		t.Fatal("fresh tracker should start in no_subject")
	}

	// First anchor wins.
	sk, ok := tr.Update([]subject.Skeleton{skeletonWithJoints(a, subject.JointHead)})
	if !ok || sk.AnchorID != a {
		t.Fatalf("expected to acquire anchor a, got %v (ok=%v)", sk.AnchorID, ok)
	}
	if tr.State() != StateTracking {
		t.Fatal("tracker should be tracking after acquisition")
	}

	// The tracked anchor is preferred even when listed second.
	sk, ok = tr.Update([]subject.Skeleton{
		skeletonWithJoints(b, subject.JointHead),
		skeletonWithJoints(a, subject.JointHead),
	})
	if !ok || sk.AnchorID != a {
		t.Errorf("tracker should stay locked to a, got %v", sk.AnchorID)
	}
}

func TestTracker_SwitchOnLoss(t *testing.T) {
	tr := New(DefaultConfig())
	a := uuid.New()
	b := uuid.New()

	tr.Update([]subject.Skeleton{skeletonWithJoints(a, subject.JointHead)})

	// Anchor a vanished but b is present in the same update: switch
	// without passing through no_subject.
	sk, ok := tr.Update([]subject.Skeleton{skeletonWithJoints(b, subject.JointHead)})
	if !ok || sk.AnchorID != b {
		t.Fatalf("expected switch to anchor b, got %v (ok=%v)", sk.AnchorID, ok)
	}
	if tr.State() != StateTracking {
		t.Error("switch must not drop to no_subject")
	}
}

func TestTracker_LossClearsState(t *testing.T) {
	tr := New(DefaultConfig())
	a := uuid.New()

	sk := skeletonWithJoints(a, subject.JointRoot)
	tr.Update([]subject.Skeleton{sk})
	tr.ObserveDistance(r3.Vec{}, sk)
	tr.ObserveBounds(subject.Bounds{Center: r3.Vec{Z: -2}})

	if _, ok := tr.Update(nil); ok {
		t.Fatal("empty update should report no subject")
	}
	if tr.State() != StateNoSubject {
		t.Error("tracker should return to no_subject")
	}
	if tr.AnchorID() != uuid.Nil {
		t.Error("anchor should be cleared on loss")
	}
	if _, ok := tr.LastBounds(); ok {
		t.Error("last bounds must not survive loss")
	}
	if tr.distance.Len() != 0 {
		t.Error("smoothing buffer must be cleared on loss")
	}
}

func TestTracker_PolicyFiltersAnchors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Policy = &JointCountPolicy{Required: 2}
	tr := New(cfg)

	sparse := skeletonWithJoints(uuid.New(), subject.JointHead) // 1 priority joint
	full := skeletonWithJoints(uuid.New(), subject.JointHead, subject.JointRoot)

	if _, ok := tr.Update([]subject.Skeleton{sparse}); ok {
		t.Error("anchor below the joint threshold must be rejected")
	}
	sk, ok := tr.Update([]subject.Skeleton{sparse, full})
	if !ok || sk.AnchorID != full.AnchorID {
		t.Errorf("expected the qualifying anchor, got %v (ok=%v)", sk.AnchorID, ok)
	}
}

func TestJointCountPolicy_CachesAndEvicts(t *testing.T) {
	p := &JointCountPolicy{Required: 2}
	id := uuid.New()

	sparse := skeletonWithJoints(id, subject.JointHead)
	if p.IsHuman(sparse) {
		t.Fatal("one joint should not qualify")
	}

	// Same anchor now reports more joints, but the cached verdict holds
	// until the anchor is evicted.
	richer := skeletonWithJoints(id, subject.JointHead, subject.JointRoot)
	if p.IsHuman(richer) {
		t.Error("cached classification should win for a live anchor")
	}

	p.Evict(id)
	if !p.IsHuman(richer) {
		t.Error("after eviction the anchor should be re-classified")
	}
}

func TestTracker_EvictsVanishedAnchors(t *testing.T) {
	policy := &JointCountPolicy{Required: 2}
	cfg := DefaultConfig()
	cfg.Policy = policy
	tr := New(cfg)

	id := uuid.New()
	tr.Update([]subject.Skeleton{skeletonWithJoints(id, subject.JointHead)})

	// Anchor disappears for a frame; its cache entry must go with it.
	tr.Update(nil)

	sk, ok := tr.Update([]subject.Skeleton{skeletonWithJoints(id, subject.JointHead, subject.JointRoot)})
	if !ok || sk.AnchorID != id {
		t.Error("re-appearing anchor should be classified fresh and accepted")
	}
}
