package timesheet

import (
	"fmt"
	"strings"
	"time"
)

// Two time-string encodings coexist in the punch store: the compact
// 24-hour form written today, and the verbose date-time strings an
// earlier client produced. Parsing is modelled as a small tagged union
// so the fallback chain stays testable in isolation.

type Encoding int

const (
	EncodingInvalid Encoding = iota
	EncodingCompact
	EncodingLegacy
)

// Clock is a wall-clock time reduced to minutes since midnight.
// Invalid input degrades to zero minutes; reporting must always render
// something for every event it is given.
type Clock struct {
	Encoding Encoding
	Minutes  int
}

func (c Clock) Valid() bool {
	return c.Encoding != EncodingInvalid
}

var compactLayouts = []string{
	"15:04:05",
	"15:04",
}

var legacyLayouts = []string{
	"Monday, January 2, 2006 3:04 PM",
	"Monday, January 2, 2006 3:04:05 PM",
	"January 2, 2006 3:04 PM",
	time.RFC1123,
	time.RFC3339,
}

// ParseClock tries the compact pattern first and falls back to the
// legacy date-time forms. It never fails; unparseable input comes back
// as an invalid zero-minute Clock.
func ParseClock(s string) Clock {
	s = strings.TrimSpace(s)
	if s == "" {
		return Clock{}
	}

	for _, layout := range compactLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Clock{Encoding: EncodingCompact, Minutes: t.Hour()*60 + t.Minute()}
		}
	}

	for _, layout := range legacyLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Clock{Encoding: EncodingLegacy, Minutes: t.Hour()*60 + t.Minute()}
		}
	}

	return Clock{}
}

// Normalize reduces any encoding of a clock time to canonical "HH:mm",
// or "" when the input is unparseable. "6:00", "06:00:00" and a legacy
// date string denoting six o'clock all normalize equal.
func Normalize(s string) string {
	c := ParseClock(s)
	if !c.Valid() {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", c.Minutes/60, c.Minutes%60)
}

// RenderDuration formats minutes as "Xh" on exact hours and "Xh Ym"
// otherwise. Zero renders "0h".
func RenderDuration(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	if minutes%60 == 0 {
		return fmt.Sprintf("%dh", minutes/60)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// RenderTotal renders a day's total, where nil means "no clock-out
// yet" and must read as an em dash, not a zero.
func RenderTotal(minutes *int) string {
	if minutes == nil {
		return "—"
	}
	return RenderDuration(*minutes)
}
