package track

import (
	"sync"

	"github.com/google/uuid"

	"github.com/shotmatch/go-shotmatch/pkg/subject"
)

// Policy decides whether a detected skeletal anchor is a trackable human.
type Policy interface {
	// IsHuman classifies one skeleton.
	IsHuman(sk subject.Skeleton) bool

	// Evict drops any cached result for a removed anchor.
	Evict(id uuid.UUID)
}

// TrustAllPolicy accepts every skeletal anchor the upstream tracker
// reports. This is the production default: the platform body tracker only
// emits anchors it already classified as human, so re-validating is
// redundant. The stricter JointCountPolicy stays available behind
// Config.Policy for trackers that emit false positives.
type TrustAllPolicy struct{}

// IsHuman always returns true.
func (TrustAllPolicy) IsHuman(subject.Skeleton) bool { return true }

// Evict is a no-op; nothing is cached.
func (TrustAllPolicy) Evict(uuid.UUID) {}

// jointPriority is the ordered joint set used by JointCountPolicy.
var jointPriority = []subject.JointName{
	subject.JointHead,
	subject.JointRoot,
	subject.JointLeftShoulder,
	subject.JointRightShoulder,
}

// JointCountPolicy requires a minimum number of priority joints before an
// anchor counts as human. Results are cached per anchor so each skeleton
// is classified once, not every frame; the cache is evicted when the
// anchor is removed.
type JointCountPolicy struct {
	// Required is the minimum number of priority joints. Zero means 2.
	Required int

	mu    sync.Mutex
	cache map[uuid.UUID]bool
}

// IsHuman classifies the skeleton, consulting the per-anchor cache first.
func (p *JointCountPolicy) IsHuman(sk subject.Skeleton) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cache == nil {
		p.cache = make(map[uuid.UUID]bool)
	}
	if cached, ok := p.cache[sk.AnchorID]; ok {
		return cached
	}

	required := p.Required
	if required <= 0 {
		required = 2
	}
	seen := 0
	for _, name := range jointPriority {
		if _, ok := sk.Joints[name]; ok {
			seen++
		}
	}
	result := seen >= required
	p.cache[sk.AnchorID] = result
	return result
}

// Evict removes the cached classification for an anchor.
func (p *JointCountPolicy) Evict(id uuid.UUID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.cache, id)
}
