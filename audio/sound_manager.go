package audio

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// beatsPerBar sets how often the metronome accents
const beatsPerBar = 4

// SoundManager owns the speaker and mixes clicks with the backing track
// Every method is a no-op until Initialize succeeds
type SoundManager struct {
	mu          sync.Mutex
	cfg         *AudioConfig
	rate        beep.SampleRate
	mixer       *beep.Mixer
	track       *Track
	beat        int
	initialized bool
}

// NewSoundManager creates a new sound manager
func NewSoundManager(cfg *AudioConfig) *SoundManager {
	if cfg == nil {
		cfg = DefaultAudioConfig()
	}
	return &SoundManager{
		cfg:   cfg,
		rate:  beep.SampleRate(cfg.SampleRate),
		mixer: &beep.Mixer{},
	}
}

// Initialize sets up the audio system
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if !sm.cfg.Enabled {
		return fmt.Errorf("audio disabled")
	}

	// Initialize speaker with sample rate and buffer size
	if err := speaker.Init(sm.rate, sm.rate.N(time.Millisecond*100)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// PlayClick adds one metronome tick, accenting the first beat of each bar
func (sm *SoundManager) PlayClick() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	accent := sm.beat%beatsPerBar == 0
	sm.beat++

	click := CreateClickSound(sm.cfg, accent)
	speaker.Lock()
	sm.mixer.Add(click)
	speaker.Unlock()
}

// PlayTrack starts t at logical position skip, resampled for speed
func (sm *SoundManager) PlayTrack(t *Track, speed float64, skip time.Duration) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || t == nil {
		return
	}

	if err := t.SeekTo(skip); err != nil {
		log.Printf("[AUDIO] Seek failed: %v", err)
	}

	s := t.Streamer(sm.rate, speed)
	sm.track = t
	speaker.Lock()
	sm.mixer.Add(newVolume(s, sm.cfg.TrackVolume*sm.cfg.MasterVolume))
	speaker.Unlock()
}

// Cleanup stops all sounds and closes the audio system
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Clear()
	if sm.track != nil {
		sm.track.Close()
		sm.track = nil
	}
	speaker.Close()
	sm.initialized = false
}
