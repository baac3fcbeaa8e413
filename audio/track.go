package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
	"github.com/spf13/afero"
)

// resampleQuality trades CPU for fidelity, 4 is beep's recommended default
const resampleQuality = 4

// Track is a decoded WAV backing track
type Track struct {
	streamer beep.StreamSeekCloser
	format   beep.Format
}

// OpenTrack decodes the WAV file at path from fsys
func OpenTrack(fsys afero.Fs, path string) (*Track, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open track: %w", err)
	}

	streamer, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	return &Track{streamer: streamer, format: format}, nil
}

// Format returns the decoded stream format
func (t *Track) Format() beep.Format {
	return t.format
}

// Length returns the track duration at normal speed
func (t *Track) Length() time.Duration {
	return t.format.SampleRate.D(t.streamer.Len())
}

// SeekTo moves playback to logical position d, clamped to the track bounds
func (t *Track) SeekTo(d time.Duration) error {
	if d <= 0 {
		return nil
	}
	pos := min(t.format.SampleRate.N(d), t.streamer.Len())
	return t.streamer.Seek(pos)
}

// Streamer resamples the track to the output rate and playback speed
// Speed changes pitch along with tempo
func (t *Track) Streamer(rate beep.SampleRate, speed float64) beep.Streamer {
	var s beep.Streamer = t.streamer
	if t.format.SampleRate != rate {
		s = beep.Resample(resampleQuality, t.format.SampleRate, rate, s)
	}
	if speed != 1.0 {
		s = beep.ResampleRatio(resampleQuality, speed, s)
	}
	return s
}

// Close releases the underlying file
func (t *Track) Close() error {
	return t.streamer.Close()
}
