package vfx

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/lrcterm/core"
	"github.com/lixenwraith/lrcterm/engine"
	"github.com/lixenwraith/lrcterm/terminal"
)

const (
	fireworksDuration  = 2200 * time.Millisecond
	fireworksInterval  = 130 * time.Millisecond
	fireworksFrameHold = 90 * time.Millisecond
)

// spark is one glyph of a burst frame, relative to the burst center
type spark struct {
	dr, dc int
	glyph  string
}

// burstFrames expand outward; earlier frames are not erased
var burstFrames = [][]spark{
	{{0, 0, "."}},
	{{-1, 0, "o"}, {1, 0, "o"}, {0, -2, "o"}, {0, 2, "o"}},
	{
		{-2, 0, "O"}, {2, 0, "O"}, {0, -4, "O"}, {0, 4, "O"},
		{-1, -2, "O"}, {-1, 2, "O"}, {1, -2, "O"}, {1, 2, "O"},
	},
	{
		{-3, 0, "✦"}, {3, 0, "✦"}, {0, -6, "✦"}, {0, 6, "✦"},
		{-2, -3, "✦"}, {-2, 3, "✦"}, {2, -3, "✦"}, {2, 3, "✦"},
	},
}

// burst is a single expanding ring at a fixed center
type burst struct {
	row, col int
	style    terminal.Style
}

// Fireworks spawns bursts at random positions on a fixed interval
type Fireworks struct {
	console *terminal.Console
	tp      engine.TimeProvider
	rng     *rand.Rand

	Duration  time.Duration
	Interval  time.Duration
	FrameHold time.Duration
}

// NewFireworks creates a fireworks effect: 2.2s of bursts every 130ms, frames held 90ms
func NewFireworks(c *terminal.Console, tp engine.TimeProvider, rng *rand.Rand) *Fireworks {
	return &Fireworks{
		console:   c,
		tp:        tp,
		rng:       rng,
		Duration:  fireworksDuration,
		Interval:  fireworksInterval,
		FrameHold: fireworksFrameHold,
	}
}

// Run implements Effect; returns after the last spawned burst finishes
func (f *Fireworks) Run(ctx context.Context) error {
	start := f.tp.Now()
	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		if err := engine.Sleep(ctx, f.tp, f.Interval); err != nil {
			return err
		}
		if f.tp.Now().Sub(start) >= f.Duration {
			return nil
		}

		b := f.spawn()
		wg.Add(1)
		core.Go(func() {
			defer wg.Done()
			f.play(ctx, b)
		})
	}
}

// spawn picks a burst center and color; rng is only touched from Run
func (f *Fireworks) spawn() burst {
	cols, rows := f.console.Size()
	return burst{
		row:   3 + f.rng.Intn(max(1, rows-6)),
		col:   5 + f.rng.Intn(max(1, cols-10)),
		style: terminal.Burst[f.rng.Intn(len(terminal.Burst))],
	}
}

// play draws each frame in its own scoped draw, holding between frames
func (f *Fireworks) play(ctx context.Context, b burst) {
	for i, frame := range burstFrames {
		if i > 0 {
			if err := engine.Sleep(ctx, f.tp, f.FrameHold); err != nil {
				return
			}
		}
		f.console.Draw(func(cv *terminal.Canvas) {
			cols, rows := cv.Size()
			for _, s := range frame {
				r, c := b.row+s.dr, b.col+s.dc
				if inBounds(r, c, runewidth.StringWidth(s.glyph), cols, rows) {
					cv.Put(r, c, b.style, s.glyph)
				}
			}
		})
	}
}

// inBounds keeps glyphs below the banner rows and inside the right edge
func inBounds(row, col, width, cols, rows int) bool {
	return row > 2 && row < rows && col > 1 && col+max(1, width)-1 < cols
}
