package audio

import (
	"os"
	"strconv"
)

// AudioConfig holds volume and device settings
type AudioConfig struct {
	Enabled      bool
	MasterVolume float64 // 0.0-1.0
	ClickVolume  float64 // 0.0-1.0, metronome clicks
	TrackVolume  float64 // 0.0-1.0, backing track
	SampleRate   int
}

// DefaultAudioConfig returns the built-in settings
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:      true,
		MasterVolume: 0.5,
		ClickVolume:  0.8,
		TrackVolume:  1.0,
		SampleRate:   44100,
	}
}

// LoadAudioConfig loads audio configuration from environment variables
func LoadAudioConfig() *AudioConfig {
	cfg := DefaultAudioConfig()

	if enabled := os.Getenv("LRCTERM_AUDIO_ENABLED"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	// Volumes are 0-100 converted to 0.0-1.0
	loadPercent("LRCTERM_MASTER_VOLUME", &cfg.MasterVolume)
	loadPercent("LRCTERM_CLICK_VOLUME", &cfg.ClickVolume)
	loadPercent("LRCTERM_TRACK_VOLUME", &cfg.TrackVolume)

	if sampleRate := os.Getenv("LRCTERM_SAMPLE_RATE"); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}

	return cfg
}

func loadPercent(key string, dst *float64) {
	s := os.Getenv(key)
	if s == "" {
		return
	}
	val, err := strconv.Atoi(s)
	if err != nil {
		return
	}
	*dst = min(1, max(0, float64(val)/100.0))
}
