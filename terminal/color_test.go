package terminal

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestStyleColorResolution(t *testing.T) {
	tests := []struct {
		name    string
		style   Style
		index   uint8
		rgb     RGB
		sgr256  string
		sgrTrue string
	}{
		{"Red", NewStyle(tcell.ColorRed), 9, RGB{255, 0, 0}, "\x1b[38;5;9m", "\x1b[38;2;255;0;0m"},
		{"Fuchsia", StylePulse, 13, RGB{255, 0, 255}, "\x1b[38;5;13m", "\x1b[38;2;255;0;255m"},
		{"White", StyleLyric, 15, RGB{255, 255, 255}, "\x1b[38;5;15m", "\x1b[38;2;255;255;255m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.style.Index256(); got != tt.index {
				t.Errorf("Index256() = %d, want %d", got, tt.index)
			}
			if got := tt.style.RGB(); got != tt.rgb {
				t.Errorf("RGB() = %v, want %v", got, tt.rgb)
			}
			for mode, want := range map[ColorMode]string{ColorMode256: tt.sgr256, ColorModeTrueColor: tt.sgrTrue} {
				var buf bytes.Buffer
				w := bufio.NewWriter(&buf)
				writeStyle(w, tt.style, mode)
				w.Flush()
				if buf.String() != want {
					t.Errorf("mode %d: got %q, want %q", mode, buf.String(), want)
				}
			}
		})
	}
}

func TestDimStyleHasNoColor(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	writeStyle(w, StyleDim, ColorModeTrueColor)
	w.Flush()
	if buf.String() != "\x1b[2m" {
		t.Errorf("Expected dim attribute only, got %q", buf.String())
	}
}

func TestParseColorMode(t *testing.T) {
	if ParseColorMode("256") != ColorMode256 {
		t.Error("Expected 256 mode")
	}
	for _, s := range []string{"truecolor", "TRUE", "24bit"} {
		if ParseColorMode(s) != ColorModeTrueColor {
			t.Errorf("Expected truecolor for %q", s)
		}
	}
}

func TestDetectColorModeFromEnv(t *testing.T) {
	t.Setenv("COLORTERM", "truecolor")
	if DetectColorMode() != ColorModeTrueColor {
		t.Error("Expected truecolor when COLORTERM=truecolor")
	}

	t.Setenv("COLORTERM", "")
	t.Setenv("TERM", "xterm-256color")
	for _, k := range []string{"KITTY_WINDOW_ID", "KONSOLE_VERSION", "ITERM_SESSION_ID", "ALACRITTY_WINDOW_ID", "ALACRITTY_LOG", "WEZTERM_PANE"} {
		t.Setenv(k, "")
	}
	if DetectColorMode() != ColorMode256 {
		t.Error("Expected 256 fallback")
	}
}
