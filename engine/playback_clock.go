package engine

import (
	"math"
	"time"
)

// PlaybackClock maps logical song offsets to wall-clock deadlines
// Start, speed and shift are fixed at construction
type PlaybackClock struct {
	tp    TimeProvider
	start time.Time
	speed float64
	shift time.Duration
}

// NewPlaybackClock anchors a clock at tp.Now()
// Non-positive or non-finite speed falls back to 1.0
func NewPlaybackClock(tp TimeProvider, speed float64, shift time.Duration) *PlaybackClock {
	return &PlaybackClock{
		tp:    tp,
		start: tp.Now(),
		speed: NormalizeSpeed(speed),
		shift: shift,
	}
}

// NormalizeSpeed returns speed if usable, otherwise 1.0
func NormalizeSpeed(speed float64) float64 {
	if speed > 0 && !math.IsInf(speed, 0) && !math.IsNaN(speed) {
		return speed
	}
	return 1.0
}

// Start returns the anchor instant
func (c *PlaybackClock) Start() time.Time {
	return c.start
}

// Speed returns the effective playback speed
func (c *PlaybackClock) Speed() float64 {
	return c.speed
}

// Scale converts a logical duration to wall-clock duration at the clock speed
func (c *PlaybackClock) Scale(d time.Duration) time.Duration {
	return time.Duration(float64(d) / c.speed)
}

// Deadline returns start + offset/speed + shift
func (c *PlaybackClock) Deadline(offset time.Duration) time.Time {
	return c.start.Add(c.Scale(offset) + c.shift)
}

// Delay returns the wait from now until the deadline of offset, clamped to zero
func (c *PlaybackClock) Delay(offset time.Duration) time.Duration {
	d := c.Deadline(offset).Sub(c.tp.Now())
	if d < 0 {
		return 0
	}
	return d
}
