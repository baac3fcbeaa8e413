package vfx

import (
	"context"
	"time"

	"github.com/lixenwraith/lrcterm/engine"
	"github.com/lixenwraith/lrcterm/terminal"
)

const (
	pulseGlyph = "●"
	pulseHold  = 80 * time.Millisecond
)

// Pulse blinks a glyph near the top-right corner once per beat
type Pulse struct {
	console  *terminal.Console
	tp       engine.TimeProvider
	interval time.Duration
	onBeat   func()
}

// NewPulse creates a pulse ticking every interval; zero interval never ticks
// onBeat, if set, runs on every beat after the glyph is drawn
func NewPulse(c *terminal.Console, tp engine.TimeProvider, interval time.Duration, onBeat func()) *Pulse {
	return &Pulse{console: c, tp: tp, interval: interval, onBeat: onBeat}
}

// Run ticks until ctx ends
// The erase of the final beat may land after Run returns
func (p *Pulse) Run(ctx context.Context) error {
	if p.interval <= 0 {
		return nil
	}

	for {
		if err := engine.Sleep(ctx, p.tp, p.interval); err != nil {
			return nil
		}
		p.Beat()
	}
}

// Beat draws the glyph and schedules its erase
func (p *Pulse) Beat() {
	var col int
	p.console.Draw(func(cv *terminal.Canvas) {
		cols, _ := cv.Size()
		col = max(1, cols-2)
		cv.Put(1, col, terminal.StylePulse, pulseGlyph)
	})

	if p.onBeat != nil {
		p.onBeat()
	}

	p.tp.AfterFunc(pulseHold, func() {
		p.console.Draw(func(cv *terminal.Canvas) {
			cv.Put(1, col, terminal.StylePlain, " ")
		})
	})
}
