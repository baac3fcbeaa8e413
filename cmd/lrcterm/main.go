package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"github.com/urfave/cli"

	"github.com/lixenwraith/lrcterm/audio"
	"github.com/lixenwraith/lrcterm/core"
	"github.com/lixenwraith/lrcterm/engine"
	"github.com/lixenwraith/lrcterm/lyric"
	"github.com/lixenwraith/lrcterm/player"
	"github.com/lixenwraith/lrcterm/terminal"
)

var version = "dev"

// appFs is the filesystem lyric and audio files are read from
var appFs afero.Fs = afero.NewOsFs()

func main() {
	// Panic Recovery: Ensure terminal is reset even if playback crashes
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	os.Exit(run(context.Background(), os.Args, os.Stdout, os.Stderr))
}

// run parses args and plays the song, returning the process exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	code := 0

	app := cli.NewApp()
	app.Name = "lrcterm"
	app.HelpName = "lrcterm"
	app.Usage = "type out timed lyrics in the terminal"
	app.UsageText = "lrcterm <lrcFile> [--speed=1.0] [--typing=18] [--offsetMs=0] [--finale=rain|fireworks|none] [--bpm=0] [--pulse]"
	app.Version = version
	app.Writer = stdout
	app.ErrWriter = stderr
	app.Flags = appFlags
	app.OnUsageError = func(c *cli.Context, err error, isSubcommand bool) error {
		code = 1
		return err
	}
	app.Action = func(c *cli.Context) error {
		if c.NArg() < 1 {
			code = 1
			cli.ShowAppHelp(c)
			return errors.New("missing lyric file argument")
		}

		cfg := configFromContext(c)
		if logFile := setupLogging(cfg.Debug); logFile != nil {
			defer logFile.Close()
		}

		code = play(ctx, cfg, stdout, stderr)
		return nil
	}

	if err := app.Run(hoistFlags(args)); err != nil {
		fmt.Fprintf(stderr, "lrcterm: %s\n", err.Error())
		if code == 0 {
			code = 1
		}
	}
	return code
}

// play loads the lyric file and runs the player until completion or interrupt
func play(ctx context.Context, cfg engine.Config, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	colorMode := terminal.ParseColorMode(cfg.Color)
	console := terminal.NewConsole(stdout, colorMode)
	errConsole := terminal.NewConsole(stderr, colorMode)

	sess := engine.NewSession(cfg, engine.NewMonotonicTimeProvider(), console, core.Run, core.Go)
	sess.SetPhase(engine.PhaseParsing)

	events, err := lyric.Load(appFs, cfg.Path)
	switch {
	case errors.Is(err, lyric.ErrFileNotFound):
		errConsole.Println(terminal.StyleError, "File not found: "+cfg.Path)
		return 1
	case errors.Is(err, lyric.ErrNoTimedLyrics):
		errConsole.Println(terminal.StyleWarning, "No timed lyrics found.")
		return 0
	case err != nil:
		errConsole.Println(terminal.StyleError, err.Error())
		return 1
	}
	log.Printf("[MAIN] Loaded %d events from %s, last at %v", len(events), cfg.Path, lyric.Span(events))

	opts := player.Options{}
	if sound, track := setupAudio(cfg); sound != nil {
		defer sound.Cleanup()
		opts.Sound = sound
		opts.Track = track
	}

	if err := player.New(sess, events, opts).Run(ctx); err != nil {
		errConsole.Println(terminal.StyleError, err.Error())
		return 1
	}
	return 0
}

// setupAudio starts the speaker when clicks or a backing track are requested
// Failures are logged and playback continues silently
func setupAudio(cfg engine.Config) (*audio.SoundManager, *audio.Track) {
	wantClick := cfg.Click && cfg.BeatInterval() > 0
	if !wantClick && cfg.AudioPath == "" {
		return nil, nil
	}

	var track *audio.Track
	if cfg.AudioPath != "" {
		t, err := audio.OpenTrack(appFs, cfg.AudioPath)
		if err != nil {
			log.Printf("[AUDIO] %v (continuing without backing track)", err)
		} else {
			track = t
			log.Printf("[AUDIO] Backing track %s: %v at %d Hz", cfg.AudioPath, t.Length(), t.Format().SampleRate)
		}
	}
	if !wantClick && track == nil {
		return nil, nil
	}

	sound := audio.NewSoundManager(audio.LoadAudioConfig())
	if err := sound.Initialize(); err != nil {
		log.Printf("[AUDIO] Initialization failed: %v (continuing without audio)", err)
		if track != nil {
			track.Close()
		}
		return nil, nil
	}
	return sound, track
}
