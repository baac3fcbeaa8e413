package main

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli"

	"github.com/lixenwraith/lrcterm/engine"
)

// Numeric options are read as strings and parsed leniently: unparsable input
// falls back the same way an out-of-range value does instead of failing the run
var appFlags = []cli.Flag{
	cli.StringFlag{
		Name:   "speed",
		Usage:  "playback speed multiplier, values <= 0 or non-numeric fall back to 1.0",
		EnvVar: "LRCTERM_SPEED",
		Value:  strconv.FormatFloat(engine.DefaultSpeed, 'f', 1, 64),
	},
	cli.StringFlag{
		Name:   "typing",
		Usage:  "milliseconds per typed character, 0 prints whole lines",
		EnvVar: "LRCTERM_TYPING",
		Value:  strconv.Itoa(int(engine.DefaultTypingDelay / time.Millisecond)),
	},
	cli.StringFlag{
		Name:   "offsetMs",
		Usage:  "shift every lyric by this many milliseconds (may be negative)",
		EnvVar: "LRCTERM_OFFSET_MS",
		Value:  "0",
	},
	cli.StringFlag{
		Name:   "finale",
		Usage:  "animation after the last line: rain, fireworks or none",
		EnvVar: "LRCTERM_FINALE",
		Value:  engine.DefaultFinale,
	},
	cli.StringFlag{
		Name:   "bpm",
		Usage:  "tempo for the beat pulse, 0 disables it",
		EnvVar: "LRCTERM_BPM",
		Value:  "0",
	},
	cli.BoolFlag{
		Name:  "pulse",
		Usage: "request the beat pulse (needs --bpm to tick)",
	},
	cli.BoolFlag{
		Name:   "click",
		Usage:  "play an audible metronome click on every pulse beat",
		EnvVar: "LRCTERM_CLICK",
	},
	cli.StringFlag{
		Name:   "audio",
		Usage:  "WAV backing track started at lyric time zero",
		EnvVar: "LRCTERM_AUDIO",
	},
	cli.StringFlag{
		Name:   "color",
		Usage:  "color mode: auto, truecolor, 256",
		EnvVar: "LRCTERM_COLOR",
		Value:  engine.DefaultColor,
	},
	cli.BoolFlag{
		Name:   "debug",
		Usage:  "write a debug log to " + logDir + "/" + logFileName,
		EnvVar: "LRCTERM_DEBUG",
	},
}

// configFromContext builds the session config from parsed flags
func configFromContext(c *cli.Context) engine.Config {
	cfg := engine.Config{
		Path:        c.Args().First(),
		Speed:       lenientFloat(c.String("speed")),
		TypingDelay: millis(c.String("typing")).Truncate(time.Millisecond),
		Offset:      millis(c.String("offsetMs")),
		Finale:      c.String("finale"),
		BPM:         tempo(c.String("bpm")),
		Pulse:       c.Bool("pulse"),
		Click:       c.Bool("click"),
		AudioPath:   c.String("audio"),
		Color:       c.String("color"),
		Debug:       c.Bool("debug"),
	}
	cfg.Normalize()
	return cfg
}

// lenientFloat parses a numeric option, unparsable input reads as NaN
func lenientFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// millis converts a millisecond option to a duration, non-finite input reads as zero
func millis(s string) time.Duration {
	v := lenientFloat(s)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return time.Duration(v * float64(time.Millisecond))
}

// tempo returns a usable beats-per-minute value or 0 to disable the pulse
func tempo(s string) float64 {
	v := lenientFloat(s)
	if !(v > 0) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// hoistFlags moves flags ahead of positional arguments so "lrcterm song.lrc --speed 2"
// parses the same as "lrcterm --speed 2 song.lrc"
// Value flags given as "--name value" keep their value attached; "--" ends flag handling
func hoistFlags(args []string) []string {
	if len(args) == 0 {
		return args
	}

	takesValue := make(map[string]bool, len(appFlags))
	for _, f := range appFlags {
		_, isBool := f.(cli.BoolFlag)
		takesValue[f.GetName()] = !isBool
	}

	out := []string{args[0]}
	var positional []string
	rest := args[1:]
	for i := 0; i < len(rest); i++ {
		arg := rest[i]
		if arg == "--" {
			positional = append(positional, rest[i+1:]...)
			break
		}
		if len(arg) < 2 || arg[0] != '-' {
			positional = append(positional, arg)
			continue
		}

		out = append(out, arg)
		name := strings.TrimLeft(arg, "-")
		if strings.Contains(name, "=") {
			continue
		}
		if takesValue[name] && i+1 < len(rest) {
			i++
			out = append(out, rest[i])
		}
	}

	if len(positional) > 0 {
		out = append(out, "--")
		out = append(out, positional...)
	}
	return out
}
