package timing

import "time"

const frameLogSize = 200

// FrameTimer keeps a rolling window of frame durations for the debug HUD.
type FrameTimer struct {
	last   time.Time
	log    []time.Duration
	next   int
	filled bool
	frames int
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{log: make([]time.Duration, frameLogSize)}
}

// Mark records a frame ending at now.
func (t *FrameTimer) Mark(now time.Time) {
	t.frames++
	if t.last.IsZero() {
		t.last = now
		return
	}
	t.log[t.next] = now.Sub(t.last)
	t.last = now
	t.next = (t.next + 1) % len(t.log)
	if t.next == 0 {
		t.filled = true
	}
}

// Frames returns how many frames were marked.
func (t *FrameTimer) Frames() int {
	return t.frames
}

// AverageDt returns the mean frame duration over the window.
func (t *FrameTimer) AverageDt() time.Duration {
	n := t.next
	if t.filled {
		n = len(t.log)
	}
	if n == 0 {
		return 0
	}
	var sum time.Duration
	for _, d := range t.log[:n] {
		sum += d
	}
	return sum / time.Duration(n)
}

// Rate returns frames per second over the window, or 0 before two marks.
func (t *FrameTimer) Rate() float64 {
	avg := t.AverageDt()
	if avg <= 0 {
		return 0
	}
	return float64(time.Second) / float64(avg)
}
