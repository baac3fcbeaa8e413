package render

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/lixenwraith/lrcterm/engine"
	"github.com/lixenwraith/lrcterm/lyric"
	"github.com/lixenwraith/lrcterm/terminal"
)

func newTestConsole() (*terminal.Console, *bytes.Buffer) {
	var buf bytes.Buffer
	c := terminal.NewConsole(&buf, terminal.ColorMode256)
	return c, &buf
}

// plain renders the same segments without timing, used as expected output
func plain(segs ...terminal.Segment) string {
	c, buf := newTestConsole()
	c.Write(segs...)
	return buf.String()
}

func TestGraphemes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"ASCII", "hello", 5},
		{"Empty", "", 0},
		{"Accent", "éa", 2},
		{"ZWJEmoji", "👩‍💻!", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(Graphemes(tt.in)); got != tt.want {
				t.Errorf("Expected %d graphemes, got %d", tt.want, got)
			}
		})
	}
}

func TestRainbowSegmentsCycleModuloPalette(t *testing.T) {
	segs := RainbowSegments("abcdefgh")
	if len(segs) != 8 {
		t.Fatalf("Expected 8 segments, got %d", len(segs))
	}
	for i, seg := range segs {
		if seg.Style != terminal.Rainbow[i%6] {
			t.Errorf("Segment %d: expected palette entry %d", i, i%6)
		}
	}
	if segs[6].Style != segs[0].Style {
		t.Error("Expected palette to wrap after 6 characters")
	}
}

func TestTypeLineAtomicWhenDelayZero(t *testing.T) {
	c, buf := newTestConsole()
	tw := NewTypewriter(c, engine.NewMockTimeProvider(time.Now()), 0)

	if err := tw.TypeLine(context.Background(), "hi", terminal.StylePlain); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got := buf.String(); got != "hi\n" {
		t.Errorf("Expected %q, got %q", "hi\n", got)
	}
}

func TestTypeLinePerCharacter(t *testing.T) {
	c, buf := newTestConsole()
	tw := NewTypewriter(c, engine.NewMonotonicTimeProvider(), time.Millisecond)

	start := time.Now()
	if err := tw.TypeLine(context.Background(), "abc", terminal.StyleLyric); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 3*time.Millisecond {
		t.Errorf("Expected at least 3 ticks, finished in %v", elapsed)
	}

	want := plain(
		terminal.Segment{Style: terminal.StyleLyric, Text: "a"},
		terminal.Segment{Style: terminal.StyleLyric, Text: "b"},
		terminal.Segment{Style: terminal.StyleLyric, Text: "c"},
		terminal.Segment{Style: terminal.StylePlain, Text: "\n"},
	)
	if got := buf.String(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestTypeLineCancelled(t *testing.T) {
	c, buf := newTestConsole()
	tw := NewTypewriter(c, engine.NewMonotonicTimeProvider(), time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := tw.TypeLine(ctx, "abc", terminal.StylePlain); err != context.Canceled {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("Expected no output after cancel, got %q", buf.String())
	}
}

func TestNegativeDelayClamped(t *testing.T) {
	c, _ := newTestConsole()
	if NewTypewriter(c, engine.NewMonotonicTimeProvider(), -time.Second).Delay() != 0 {
		t.Error("Expected negative delay clamped to zero")
	}
}

func TestLyricRendererPrefixAndStyles(t *testing.T) {
	c, buf := newTestConsole()
	r := NewLyricRenderer(c, NewTypewriter(c, engine.NewMonotonicTimeProvider(), 0))
	ctx := context.Background()

	if err := r.Render(ctx, lyric.Event{Text: "\x1b[31mline\x1b[0m"}, false); err != nil {
		t.Fatal(err)
	}
	if err := r.Render(ctx, lyric.Event{Text: "end"}, true); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	dimPrefix := plain(terminal.Segment{Style: terminal.StyleDim, Text: Prefix})
	if strings.Count(out, dimPrefix) != 2 {
		t.Errorf("Expected two dim prefixes in %q", out)
	}
	if !strings.Contains(out, plain(terminal.Segment{Style: terminal.StyleLyric, Text: "line"})) {
		t.Errorf("Expected whole line in one styled run, got %q", out)
	}
	if strings.Contains(out, "\x1b[31m") {
		t.Error("Expected embedded ANSI to be stripped")
	}
	if !strings.Contains(out, plain(RainbowSegments("end")...)) {
		t.Errorf("Expected rainbow final line in %q", out)
	}
}

func TestIntroHidesCursorAndClears(t *testing.T) {
	c, buf := newTestConsole()
	Intro(c)

	out := buf.String()
	if !strings.HasPrefix(out, "\x1b[?25l\x1bc") {
		t.Errorf("Expected hide+clear prefix, got %q", out)
	}
	if !strings.Contains(out, "Ctrl+C to exit") {
		t.Error("Expected exit hint in banner")
	}
	if !c.CursorHidden() {
		t.Error("Expected cursor marked hidden")
	}
}
