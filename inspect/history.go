package inspect

import "time"

// History is a fixed-size ring of frame samples.
type History struct {
	samples []float32
	next    int
	filled  int
}

// NewHistory keeps the last size samples. A non-positive size keeps one.
func NewHistory(size int) *History {
	return &History{samples: make([]float32, max(size, 1))}
}

// Add records a sample, overwriting the oldest once full.
func (h *History) Add(v float32) {
	h.samples[h.next] = v
	h.next = (h.next + 1) % len(h.samples)
	h.filled = min(h.filled+1, len(h.samples))
}

// Len is the number of recorded samples.
func (h *History) Len() int { return h.filled }

// Ordered returns the recorded samples oldest first.
func (h *History) Ordered() []float32 {
	out := make([]float32, 0, h.filled)
	start := (h.next - h.filled + len(h.samples)) % len(h.samples)
	for i := range h.filled {
		out = append(out, h.samples[(start+i)%len(h.samples)])
	}
	return out
}

// Average is the mean of the recorded samples, zero when there are none.
func (h *History) Average() float32 {
	if h.filled == 0 {
		return 0
	}
	var sum float32
	for _, v := range h.Ordered() {
		sum += v
	}
	return sum / float32(h.filled)
}

// FrameTimer measures the wall time between frames.
type FrameTimer struct {
	last time.Time
	now  func() time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{last: time.Now(), now: time.Now}
}

// Delta returns the time since the previous call, or since the timer was created.
func (t *FrameTimer) Delta() time.Duration {
	now := t.now()
	d := now.Sub(t.last)
	t.last = now
	return d
}
