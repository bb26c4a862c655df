package hal

import "time"

// maxFrame caps a single frame so a stalled window does not fast-forward
// every animation at once.
const maxFrame = 100 * time.Millisecond

// frameClock measures wall time between frames.
type frameClock struct {
	now  func() time.Time
	last time.Time
}

func newFrameClock(now func() time.Time) *frameClock {
	if now == nil {
		now = time.Now
	}
	return &frameClock{now: now}
}

// step returns the time since the previous step; zero on the first call.
func (c *frameClock) step() time.Duration {
	now := c.now()
	if c.last.IsZero() {
		c.last = now
		return 0
	}
	dt := now.Sub(c.last)
	c.last = now
	if dt < 0 {
		return 0
	}
	if dt > maxFrame {
		return maxFrame
	}
	return dt
}
