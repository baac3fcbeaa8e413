// @lixen: #focus{render[typewriter]}
package render

import (
	"context"
	"time"

	"github.com/rivo/uniseg"

	"github.com/lixenwraith/lrcterm/engine"
	"github.com/lixenwraith/lrcterm/terminal"
)

// Typewriter emits text one character per tick
// A character is a grapheme cluster, so combined emoji and accents stay whole
type Typewriter struct {
	console *terminal.Console
	tp      engine.TimeProvider
	delay   time.Duration
}

// NewTypewriter creates a typewriter; delay 0 writes each line atomically
func NewTypewriter(console *terminal.Console, tp engine.TimeProvider, delay time.Duration) *Typewriter {
	if delay < 0 {
		delay = 0
	}
	return &Typewriter{console: console, tp: tp, delay: delay}
}

// Delay returns the per-character delay
func (tw *Typewriter) Delay() time.Duration {
	return tw.delay
}

// TypeLine writes text in a single style followed by a line break
// Returns once every character is written, or early with ctx error
func (tw *Typewriter) TypeLine(ctx context.Context, text string, style terminal.Style) error {
	graphemes := Graphemes(text)
	segs := make([]terminal.Segment, len(graphemes))
	for i, g := range graphemes {
		segs[i] = terminal.Segment{Style: style, Text: g}
	}
	return tw.typeSegments(ctx, segs)
}

// TypeRainbow writes text cycling the rainbow palette per character position
func (tw *Typewriter) TypeRainbow(ctx context.Context, text string) error {
	return tw.typeSegments(ctx, RainbowSegments(text))
}

func (tw *Typewriter) typeSegments(ctx context.Context, segs []terminal.Segment) error {
	newline := terminal.Segment{Style: terminal.StylePlain, Text: "\n"}

	if tw.delay == 0 || len(segs) == 0 {
		tw.console.Write(append(coalesce(segs), newline)...)
		return nil
	}

	for i, seg := range segs {
		if err := engine.Sleep(ctx, tw.tp, tw.delay); err != nil {
			return err
		}
		if i == len(segs)-1 {
			tw.console.Write(seg, newline)
		} else {
			tw.console.Write(seg)
		}
	}
	return nil
}

// coalesce joins neighbouring segments that share a style
func coalesce(segs []terminal.Segment) []terminal.Segment {
	out := make([]terminal.Segment, 0, len(segs))
	for _, seg := range segs {
		if n := len(out); n > 0 && out[n-1].Style == seg.Style {
			out[n-1].Text += seg.Text
			continue
		}
		out = append(out, seg)
	}
	return out
}

// Graphemes splits text into user-perceived characters
func Graphemes(text string) []string {
	var out []string
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		out = append(out, gr.Str())
	}
	return out
}

// RainbowSegments colors each character by position modulo the palette size
func RainbowSegments(text string) []terminal.Segment {
	graphemes := Graphemes(text)
	segs := make([]terminal.Segment, len(graphemes))
	for i, g := range graphemes {
		segs[i] = terminal.Segment{Style: terminal.Rainbow[i%len(terminal.Rainbow)], Text: g}
	}
	return segs
}
