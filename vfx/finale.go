// Package vfx draws decorative in-place terminal effects: the beat pulse and
// the finale animations played after the last lyric.
package vfx

import (
	"context"
	"math/rand"
	"strings"

	"github.com/lixenwraith/lrcterm/engine"
	"github.com/lixenwraith/lrcterm/terminal"
)

// FinaleKind selects the animation played after the last lyric
type FinaleKind int

const (
	FinaleNone FinaleKind = iota
	FinaleRain
	FinaleFireworks
)

func (k FinaleKind) String() string {
	switch k {
	case FinaleRain:
		return "rain"
	case FinaleFireworks:
		return "fireworks"
	default:
		return "none"
	}
}

// ParseFinale maps a flag value case-insensitively; unknown values mean none
func ParseFinale(s string) FinaleKind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rain":
		return FinaleRain
	case "fireworks":
		return FinaleFireworks
	default:
		return FinaleNone
	}
}

// Effect is a self-terminating animation
// Run returns when its fixed duration elapses or ctx ends
type Effect interface {
	Run(ctx context.Context) error
}

// NewFinale builds the effect for kind, nil for FinaleNone
func NewFinale(kind FinaleKind, c *terminal.Console, tp engine.TimeProvider, rng *rand.Rand) Effect {
	switch kind {
	case FinaleRain:
		return NewRain(c, tp, rng)
	case FinaleFireworks:
		return NewFireworks(c, tp, rng)
	default:
		return nil
	}
}
