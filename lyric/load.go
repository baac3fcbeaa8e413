package lyric

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/afero"
)

var (
	// ErrFileNotFound is returned when the lyric file does not exist
	ErrFileNotFound = errors.New("file not found")
	// ErrNoTimedLyrics is returned when a file parses to zero events
	ErrNoTimedLyrics = errors.New("no timed lyrics found")
)

// Load reads and parses the lyric file at path from fsys
func Load(fsys afero.Fs, path string) ([]Event, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	events := Parse(string(data))
	if len(events) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoTimedLyrics)
	}
	return events, nil
}
