package main

import (
	"bytes"
	"context"
	"math"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
)

func withFs(t *testing.T, files map[string]string) {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, body := range files {
		if err := afero.WriteFile(fs, name, []byte(body), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	prev := appFs
	appFs = fs
	t.Cleanup(func() { appFs = prev })
}

func TestRun_MissingFile(t *testing.T) {
	withFs(t, nil)
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{"lrcterm", "nope.lrc"}, &stdout, &stderr)
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "File not found: nope.lrc") {
		t.Errorf("stderr = %q", stderr.String())
	}
	if stdout.Len() != 0 {
		t.Errorf("nothing should reach stdout, got %q", stdout.String())
	}
}

func TestRun_NoTimedLyrics(t *testing.T) {
	withFs(t, map[string]string{"plain.lrc": "[ar:Nobody]\njust words\n"})
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{"lrcterm", "plain.lrc"}, &stdout, &stderr)
	if code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}
	if !strings.Contains(stderr.String(), "No timed lyrics found.") {
		t.Errorf("stderr = %q", stderr.String())
	}
	if stdout.Len() != 0 {
		t.Errorf("intro must not print without events, got %q", stdout.String())
	}
}

func TestRun_MissingArgument(t *testing.T) {
	withFs(t, nil)
	var stdout, stderr bytes.Buffer

	if code := run(context.Background(), []string{"lrcterm"}, &stdout, &stderr); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
}

func TestRun_UnknownFlag(t *testing.T) {
	withFs(t, nil)
	var stdout, stderr bytes.Buffer

	if code := run(context.Background(), []string{"lrcterm", "--loud", "x.lrc"}, &stdout, &stderr); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
}

func TestRun_PlaysToCompletion(t *testing.T) {
	withFs(t, map[string]string{"song.lrc": "[00:00.01]hello\n[00:00.02]world\n"})
	var stdout, stderr bytes.Buffer

	args := []string{"lrcterm", "song.lrc", "--speed", "10", "--typing", "0", "--finale=none", "--color", "256"}
	code := run(context.Background(), args, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr %q", code, stderr.String())
	}

	out := stdout.String()
	if !strings.Contains(out, "hello") {
		t.Errorf("first lyric missing from %q", out)
	}
	// Last line is typed one colored grapheme at a time
	for _, r := range "world" {
		if !strings.ContainsRune(out, r) {
			t.Errorf("last lyric rune %q missing", r)
		}
	}
	if !strings.HasSuffix(out, "\x1b[?25h") {
		t.Errorf("cursor must be restored at exit, output tail %q", out[max(0, len(out)-20):])
	}
}

func TestRun_InterruptRestoresCursor(t *testing.T) {
	withFs(t, map[string]string{"long.lrc": "[01:00.00]far away\n"})
	var stdout, stderr bytes.Buffer

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	code := run(ctx, []string{"lrcterm", "--finale", "none", "long.lrc"}, &stdout, &stderr)
	if code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}
	out := stdout.String()
	if strings.Contains(out, "far away") {
		t.Error("lyric should not print before its time")
	}
	if !strings.HasSuffix(out, "\x1b[?25h") {
		t.Errorf("cursor must be restored on interrupt, got %q", out)
	}
}

func TestHoistFlags(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "file first",
			in:   []string{"lrcterm", "song.lrc", "--speed", "2", "--pulse"},
			want: []string{"lrcterm", "--speed", "2", "--pulse", "--", "song.lrc"},
		},
		{
			name: "negative offset value",
			in:   []string{"lrcterm", "song.lrc", "--offsetMs", "-250"},
			want: []string{"lrcterm", "--offsetMs", "-250", "--", "song.lrc"},
		},
		{
			name: "inline value",
			in:   []string{"lrcterm", "--finale=fireworks", "song.lrc"},
			want: []string{"lrcterm", "--finale=fireworks", "--", "song.lrc"},
		},
		{
			name: "double dash",
			in:   []string{"lrcterm", "--", "-odd.lrc"},
			want: []string{"lrcterm", "--", "-odd.lrc"},
		},
		{
			name: "flags only",
			in:   []string{"lrcterm", "--help"},
			want: []string{"lrcterm", "--help"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hoistFlags(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("hoistFlags(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestLenientNumericOptions(t *testing.T) {
	if v := lenientFloat(" 1.5 "); v != 1.5 {
		t.Errorf("lenientFloat = %v, want 1.5", v)
	}
	if v := lenientFloat("fast"); !math.IsNaN(v) {
		t.Errorf("Expected NaN for non-numeric input, got %v", v)
	}

	durations := []struct {
		in   string
		want time.Duration
	}{
		{"250", 250 * time.Millisecond},
		{"-120", -120 * time.Millisecond},
		{"12.5", 12500 * time.Microsecond},
		{"abc", 0},
		{"Inf", 0},
	}
	for _, tt := range durations {
		if got := millis(tt.in); got != tt.want {
			t.Errorf("millis(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	tempos := []struct {
		in   string
		want float64
	}{
		{"120", 120},
		{"-5", 0},
		{"NaN", 0},
		{"slow", 0},
	}
	for _, tt := range tempos {
		if got := tempo(tt.in); got != tt.want {
			t.Errorf("tempo(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRun_NonNumericOptionsFallBack(t *testing.T) {
	withFs(t, map[string]string{"song.lrc": "[00:00.01]ok\n"})
	var stdout, stderr bytes.Buffer

	// speed falls back to 1.0, typing to 0, bpm disables the pulse
	args := []string{"lrcterm", "song.lrc", "--speed", "fast", "--typing", "quick", "--bpm", "x", "--finale", "none"}
	code := run(context.Background(), args, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr %q", code, stderr.String())
	}
	for _, r := range "ok" {
		if !strings.ContainsRune(stdout.String(), r) {
			t.Errorf("lyric rune %q missing from %q", r, stdout.String())
		}
	}
	if strings.Contains(stdout.String(), "●") {
		t.Error("Expected no pulse for non-numeric bpm")
	}
}
