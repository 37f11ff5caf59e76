package sandbox

import "time"

// maxTicksPerFrame bounds the catch-up after a stall so a slow frame cannot
// snowball into ever longer frames.
const maxTicksPerFrame = 8

// Clock converts variable frame times into fixed simulation ticks.
type Clock struct {
	step        time.Duration
	accumulator time.Duration
	dropped     int
}

// NewClock returns a clock ticking rate times per second.
func NewClock(rate int) *Clock {
	if rate <= 0 {
		rate = 60
	}
	return &Clock{step: time.Second / time.Duration(rate)}
}

// DT is the fixed tick length in seconds.
func (c *Clock) DT() float32 {
	return float32(c.step.Seconds())
}

// Advance adds a frame's elapsed time and returns how many ticks to run.
// Time beyond maxTicksPerFrame ticks is discarded.
func (c *Clock) Advance(elapsed time.Duration) int {
	c.accumulator += elapsed
	n := int(c.accumulator / c.step)
	if n > maxTicksPerFrame {
		c.dropped += n - maxTicksPerFrame
		n = maxTicksPerFrame
		c.accumulator = 0
		return n
	}
	c.accumulator -= time.Duration(n) * c.step
	return n
}

// Dropped returns how many ticks were discarded after stalls.
func (c *Clock) Dropped() int {
	return c.dropped
}
