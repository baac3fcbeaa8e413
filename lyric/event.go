// Package lyric parses LRC-style timestamped lyric text into playback events.
package lyric

import (
	"time"

	"github.com/acarl005/stripansi"
)

// Event is a single lyric line due at Offset of logical song time
type Event struct {
	Offset time.Duration
	Text   string
}

// PlainText returns the lyric with embedded ANSI escape sequences removed
func (e Event) PlainText() string {
	return stripansi.Strip(e.Text)
}

// Last returns the final event, zero Event if events is empty
func Last(events []Event) Event {
	if len(events) == 0 {
		return Event{}
	}
	return events[len(events)-1]
}

// Span returns the offset of the last event
func Span(events []Event) time.Duration {
	return Last(events).Offset
}
