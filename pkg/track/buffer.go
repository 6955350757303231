// Package track maintains the identity of one tracked subject across
// frames and derives smoothed scalar metrics from it. It owns all of its
// state; nothing here is shared across goroutines.
package track

// SmoothingBuffer is a fixed-capacity rolling window of float samples
// used to dampen frame-to-frame measurement noise. Pushing beyond
// capacity drops the oldest sample.
type SmoothingBuffer struct {
	samples  []float64
	capacity int
}

// NewSmoothingBuffer creates a buffer with the given capacity.
func NewSmoothingBuffer(capacity int) *SmoothingBuffer {
	if capacity < 1 {
		capacity = 1
	}
	return &SmoothingBuffer{capacity: capacity}
}

// Push appends a sample, evicting the oldest when full.
func (b *SmoothingBuffer) Push(v float64) {
	if len(b.samples) == b.capacity {
		copy(b.samples, b.samples[1:])
		b.samples[len(b.samples)-1] = v
		return
	}
	b.samples = append(b.samples, v)
}

// Mean returns the arithmetic mean of the held samples. ok is false when
// the buffer is empty.
func (b *SmoothingBuffer) Mean() (float64, bool) {
	if len(b.samples) == 0 {
		return 0, false
	}
	sum := 0.0
	for _, v := range b.samples {
		sum += v
	}
	return sum / float64(len(b.samples)), true
}

// Len returns the number of held samples.
func (b *SmoothingBuffer) Len() int { return len(b.samples) }

// Reset empties the buffer. Called whenever tracking is lost.
func (b *SmoothingBuffer) Reset() { b.samples = b.samples[:0] }
