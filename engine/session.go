package engine

import (
	"log"
	"sync/atomic"

	"github.com/lixenwraith/lrcterm/terminal"
)

// Phase is the whole-program lifecycle state
type Phase int32

const (
	PhaseIdle Phase = iota
	PhaseParsing
	PhaseScheduling
	PhaseRunning
	PhaseFinale
	PhaseExit
)

var phaseNames = [...]string{"Idle", "Parsing", "Scheduling", "Running", "Finale", "Exit"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "Unknown"
	}
	return phaseNames[p]
}

// Session holds all process state, built once at startup and passed to each component
type Session struct {
	// ===== Immutable After Init =====
	Config  Config
	Time    TimeProvider
	Console *terminal.Console
	guard   func(func())
	spawn   func(func())

	// ===== Set Once By Anchor =====
	Clock     *PlaybackClock
	Scheduler *Scheduler

	// ===== Atomic =====
	phase atomic.Int32
}

// NewSession normalizes cfg and binds the shared time source and console
// guard wraps scheduled callbacks in place, spawn starts goroutines; nil for either means plain calls
func NewSession(cfg Config, tp TimeProvider, console *terminal.Console, guard, spawn func(func())) *Session {
	cfg.Normalize()
	return &Session{
		Config:  cfg,
		Time:    tp,
		Console: console,
		guard:   guard,
		spawn:   spawn,
	}
}

// Anchor captures the playback reference instant and creates the scheduler
// Must be called once, before any scheduling
func (s *Session) Anchor() {
	s.Clock = NewPlaybackClock(s.Time, s.Config.Speed, s.Config.Offset)
	s.Scheduler = NewScheduler(s.Clock, s.Time, s.guard, s.spawn)
}

// Phase returns the current lifecycle phase
func (s *Session) Phase() Phase {
	return Phase(s.phase.Load())
}

// SetPhase moves forward to p; earlier phases are never re-entered and Exit is terminal
func (s *Session) SetPhase(p Phase) {
	for {
		old := Phase(s.phase.Load())
		if p <= old {
			return
		}
		if s.phase.CompareAndSwap(int32(old), int32(p)) {
			log.Printf("[PHASE] %s -> %s", old, p)
			return
		}
	}
}
