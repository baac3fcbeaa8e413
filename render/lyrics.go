package render

import (
	"context"

	"github.com/lixenwraith/lrcterm/lyric"
	"github.com/lixenwraith/lrcterm/terminal"
)

// Prefix is written dimmed before every lyric line
const Prefix = "\n♪ "

// Intro hides the cursor, clears the screen and prints the banner
func Intro(c *terminal.Console) {
	c.HideCursor()
	c.Clear()
	c.Println(terminal.StyleGray, "Terminal Karaoke — words only")
	c.Println(terminal.StyleGray, "Ctrl+C to exit\n")
}

// LyricRenderer writes scheduled lyric events
type LyricRenderer struct {
	console *terminal.Console
	tw      *Typewriter
}

// NewLyricRenderer creates a renderer writing through tw
func NewLyricRenderer(c *terminal.Console, tw *Typewriter) *LyricRenderer {
	return &LyricRenderer{console: c, tw: tw}
}

// Render writes one event; the last event of the song gets the rainbow palette
func (r *LyricRenderer) Render(ctx context.Context, ev lyric.Event, last bool) error {
	r.WritePrefix()
	return r.Type(ctx, ev, last)
}

// WritePrefix writes the dim line marker
func (r *LyricRenderer) WritePrefix() {
	r.console.Print(terminal.StyleDim, Prefix)
}

// Type writes the event text through the typewriter
func (r *LyricRenderer) Type(ctx context.Context, ev lyric.Event, last bool) error {
	if last {
		return r.tw.TypeRainbow(ctx, ev.PlainText())
	}
	return r.tw.TypeLine(ctx, ev.PlainText(), terminal.StyleLyric)
}
