package vfx

import (
	"context"
	"math/rand"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/lrcterm/engine"
	"github.com/lixenwraith/lrcterm/terminal"
)

const (
	rainDuration = 2000 * time.Millisecond
	rainTick     = 50 * time.Millisecond
	rainMaxDrops = 30
	rainTopRow   = 3
	// Chance a drop falls two rows in one tick
	rainDoubleStep = 0.2
)

var rainGlyphs = []string{"✨", "💫", "🎉", "🎊", "⭐", "🌟", "💥", "🪄", "🔥", "🎶", "💖"}

type drop struct {
	row, col int
	glyph    string
}

// Rain drops emoji from near the top of the screen until its duration elapses
type Rain struct {
	console *terminal.Console
	tp      engine.TimeProvider
	rng     *rand.Rand

	Duration time.Duration
	Tick     time.Duration

	drops  []drop
	target int
}

// NewRain creates a rain effect with the standard 2s duration and 50ms tick
func NewRain(c *terminal.Console, tp engine.TimeProvider, rng *rand.Rand) *Rain {
	return &Rain{
		console:  c,
		tp:       tp,
		rng:      rng,
		Duration: rainDuration,
		Tick:     rainTick,
	}
}

// Run implements Effect
func (r *Rain) Run(ctx context.Context) error {
	start := r.tp.Now()
	cols, rows := r.console.Size()
	r.target = min(rainMaxDrops, cols/2)

	for {
		r.console.Draw(func(cv *terminal.Canvas) {
			r.step(cv, cols, rows)
		})

		if r.tp.Now().Sub(start) >= r.Duration {
			return nil
		}
		if err := engine.Sleep(ctx, r.tp, r.Tick); err != nil {
			return err
		}
	}
}

// step refills, draws, advances and culls drops within one scoped draw
func (r *Rain) step(cv *terminal.Canvas, cols, rows int) {
	for len(r.drops) < r.target {
		glyph := rainGlyphs[r.rng.Intn(len(rainGlyphs))]
		span := max(1, cols-1-runewidth.StringWidth(glyph))
		r.drops = append(r.drops, drop{
			row:   rainTopRow,
			col:   2 + r.rng.Intn(span),
			glyph: glyph,
		})
	}

	for i := range r.drops {
		d := &r.drops[i]
		cv.Put(d.row, d.col, terminal.StyleRainDrop, d.glyph)
		d.row++
		if r.rng.Float64() < rainDoubleStep {
			d.row++
		}
	}

	live := r.drops[:0]
	for _, d := range r.drops {
		if d.row <= rows {
			live = append(live, d)
		}
	}
	r.drops = live
}
