package lyric

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// tagPattern matches [mm:ss], [mm:ss.f], [mm:ss.ff], [mm:ss.fff]; comma separator accepted
var tagPattern = regexp.MustCompile(`\[(\d{2}):(\d{2})(?:[.,](\d{1,3}))?\]`)

var lineSplit = regexp.MustCompile(`\r?\n`)

// Parse converts LRC text into events sorted by offset
// Untagged lines, lines with empty text and malformed tags are skipped silently
func Parse(text string) []Event {
	var events []Event

	for _, raw := range lineSplit.Split(text, -1) {
		line := trim(raw)
		if line == "" {
			continue
		}

		tags := tagPattern.FindAllStringSubmatch(line, -1)
		if len(tags) == 0 {
			continue
		}

		lyric := trim(tagPattern.ReplaceAllString(line, ""))
		if lyric == "" {
			continue
		}

		for _, m := range tags {
			events = append(events, Event{Offset: tagOffset(m[1], m[2], m[3]), Text: lyric})
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Offset < events[j].Offset
	})
	return events
}

// trim strips surrounding whitespace, counting the byte order mark as whitespace
func trim(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\ufeff'
	})
}

// tagOffset converts matched tag groups to a duration
// Fraction digits scale to milliseconds: 1 digit x100, 2 digits x10, 3 digits as-is
func tagOffset(mm, ss, frac string) time.Duration {
	minutes, _ := strconv.Atoi(mm)
	seconds, _ := strconv.Atoi(ss)

	var fracMs int
	switch {
	case len(frac) == 1:
		fracMs, _ = strconv.Atoi(frac)
		fracMs *= 100
	case len(frac) == 2:
		fracMs, _ = strconv.Atoi(frac)
		fracMs *= 10
	case len(frac) >= 3:
		fracMs, _ = strconv.Atoi(frac[:3])
	}

	ms := minutes*60000 + seconds*1000 + fracMs
	return time.Duration(ms) * time.Millisecond
}
