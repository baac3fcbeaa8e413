// Package player wires parsed lyrics, the scheduler and the visual effects into one playback run.
package player

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/lixenwraith/lrcterm/audio"
	"github.com/lixenwraith/lrcterm/engine"
	"github.com/lixenwraith/lrcterm/lyric"
	"github.com/lixenwraith/lrcterm/render"
	"github.com/lixenwraith/lrcterm/vfx"
)

// Options carries optional collaborators
type Options struct {
	// Rand seeds effect randomness, a time-seeded source is used when nil
	Rand *rand.Rand
	// Sound plays clicks and the backing track, nil for silent playback
	Sound *audio.SoundManager
	// Track is started at logical offset zero when Sound is set
	Track *audio.Track
}

// Player runs one song from intro to finale
type Player struct {
	sess   *engine.Session
	events []lyric.Event
	opts   Options
}

// New creates a player for events, which must be non-empty and sorted
func New(sess *engine.Session, events []lyric.Event, opts Options) *Player {
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(sess.Time.Now().UnixNano()))
	}
	return &Player{sess: sess, events: events, opts: opts}
}

// Run schedules every lyric, the pulse and the finale, then waits for them
// An interrupt through ctx abandons outstanding timers; the cursor is shown before returning either way
func (p *Player) Run(ctx context.Context) error {
	if len(p.events) == 0 {
		return lyric.ErrNoTimedLyrics
	}

	sess := p.sess
	console := sess.Console
	cfg := sess.Config
	defer func() {
		console.ShowCursor()
		sess.SetPhase(engine.PhaseExit)
	}()

	sess.SetPhase(engine.PhaseScheduling)
	render.Intro(console)
	sess.Anchor()

	sched := sess.Scheduler
	last := lyric.Span(p.events)

	// Pulse
	pulseCtx, stopPulse := context.WithCancel(ctx)
	defer stopPulse()
	if interval := cfg.BeatInterval(); interval > 0 {
		var onBeat func()
		if cfg.Click && p.opts.Sound != nil {
			onBeat = p.opts.Sound.PlayClick
		}
		pulse := vfx.NewPulse(console, sess.Time, interval, onBeat)
		sched.Go(func() { pulse.Run(pulseCtx) })
	} else if cfg.PulseRequested() {
		log.Printf("[PLAYER] Pulse requested without tempo, not scheduled")
	}
	sched.At("pulse-stop", last+engine.PulseStopDelay, stopPulse)

	// Backing track
	if p.opts.Sound != nil && p.opts.Track != nil {
		sched.At("track", 0, func() {
			// Deadlines already past, e.g. a negative offset, start the track mid-song
			late := max(0, sess.Time.Now().Sub(sess.Clock.Deadline(0)))
			skip := time.Duration(float64(late) * sess.Clock.Speed())
			p.opts.Sound.PlayTrack(p.opts.Track, sess.Clock.Speed(), skip)
		})
	}

	// Lyrics
	typewriter := render.NewTypewriter(console, sess.Time, cfg.TypingDelay)
	renderer := render.NewLyricRenderer(console, typewriter)
	for i, ev := range p.events {
		isLast := i == len(p.events)-1
		sched.At(fmt.Sprintf("lyric %d", i), ev.Offset, func() {
			renderer.WritePrefix()
			typeLine := func() {
				if err := renderer.Type(ctx, ev, isLast); err != nil {
					log.Printf("[PLAYER] Render of lyric %d cut short: %v", i, err)
				}
			}
			// Atomic lines keep dispatch order; ticking lines run beside later callbacks
			if typewriter.Delay() == 0 {
				typeLine()
				return
			}
			sched.Go(typeLine)
		})
	}

	// Finale
	kind := vfx.ParseFinale(cfg.Finale)
	finale := vfx.NewFinale(kind, console, sess.Time, p.opts.Rand)
	sched.At("finale", last+engine.FinaleDelay, func() {
		sess.SetPhase(engine.PhaseFinale)
		if finale == nil {
			return
		}
		sched.Go(func() {
			if err := finale.Run(ctx); err != nil {
				log.Printf("[PLAYER] Finale %s cut short: %v", kind, err)
			}
		})
	})
	sess.SetPhase(engine.PhaseRunning)

	defer sched.Stop()
	if err := sched.Wait(ctx); err != nil {
		log.Printf("[PLAYER] Interrupted in phase %s", sess.Phase())
	}
	return nil
}
