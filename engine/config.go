package engine

import (
	"strings"
	"time"
)

// Defaults for the command-line surface
const (
	DefaultSpeed       = 1.0
	DefaultTypingDelay = 18 * time.Millisecond
	DefaultFinale      = "rain"
	DefaultColor       = "auto"
)

// Fixed trigger offsets relative to the last lyric
const (
	FinaleDelay    = 1200 * time.Millisecond
	PulseStopDelay = 1500 * time.Millisecond
)

// Config holds all user-facing settings, fixed for the process lifetime
type Config struct {
	Path        string
	Speed       float64
	TypingDelay time.Duration
	Offset      time.Duration
	Finale      string
	BPM         float64
	Pulse       bool
	Click       bool
	AudioPath   string
	Color       string
	Debug       bool
}

// DefaultConfig returns a config with command-line defaults
func DefaultConfig() Config {
	return Config{
		Speed:       DefaultSpeed,
		TypingDelay: DefaultTypingDelay,
		Finale:      DefaultFinale,
		Color:       DefaultColor,
	}
}

// Normalize applies fallbacks: speed to 1.0 when invalid, typing clamped >= 0,
// finale lowercased, negative tempo disabled
func (c *Config) Normalize() {
	c.Speed = NormalizeSpeed(c.Speed)
	if c.TypingDelay < 0 {
		c.TypingDelay = 0
	}
	c.Finale = strings.ToLower(strings.TrimSpace(c.Finale))
	if c.BPM < 0 {
		c.BPM = 0
	}
}

// PulseRequested reports whether the pulse indicator was asked for
// A request with zero tempo schedules nothing
func (c *Config) PulseRequested() bool {
	return c.Pulse || c.BPM > 0
}

// BeatInterval returns the wall-clock pulse interval, zero when tempo is unset
func (c *Config) BeatInterval() time.Duration {
	if c.BPM <= 0 {
		return 0
	}
	ms := 60000 / c.BPM / NormalizeSpeed(c.Speed)
	return time.Duration(ms * float64(time.Millisecond))
}
