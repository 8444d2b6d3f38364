package timesheet_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"timeclock/internal/timesheet"
)

func TestParseClock_CompactEncoding(t *testing.T) {
	tests := []struct {
		input   string
		minutes int
	}{
		{"06:00:00", 360},
		{"06:00", 360},
		{"6:00", 360},
		{"14:23:05", 863},
		{"00:00", 0},
		{"23:59", 1439},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c := timesheet.ParseClock(tt.input)
			assert.Equal(t, timesheet.EncodingCompact, c.Encoding)
			assert.Equal(t, tt.minutes, c.Minutes)
		})
	}
}

func TestParseClock_LegacyEncoding(t *testing.T) {
	tests := []struct {
		input   string
		minutes int
	}{
		{"Monday, January 5, 2026 6:00 AM", 360},
		{"Monday, January 5, 2026 2:30 PM", 870},
		{"January 5, 2026 12:00 PM", 720},
		{"Monday, January 5, 2026 12:15 AM", 15},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c := timesheet.ParseClock(tt.input)
			assert.Equal(t, timesheet.EncodingLegacy, c.Encoding)
			assert.Equal(t, tt.minutes, c.Minutes)
		})
	}
}

func TestParseClock_Invalid(t *testing.T) {
	for _, input := range []string{"", "   ", "not a time", "25:99", "soon"} {
		c := timesheet.ParseClock(input)
		assert.False(t, c.Valid(), "input %q", input)
		assert.Zero(t, c.Minutes)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"06:00:00", "06:00"},
		{"6:00", "06:00"},
		{"Monday, January 5, 2026 6:00 AM", "06:00"},
		{"14:23:05", "14:23"},
		{"garbage", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, timesheet.Normalize(tt.input), "input %q", tt.input)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"06:00:00", "6:15", "Monday, January 5, 2026 9:45 PM", "23:59"}
	for _, input := range inputs {
		once := timesheet.Normalize(input)
		assert.Equal(t, once, timesheet.Normalize(once), "input %q", input)
	}
}

func TestRenderDuration(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0h"},
		{60, "1h"},
		{450, "7h 30m"},
		{45, "0h 45m"},
		{480, "8h"},
		{-10, "0h"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, timesheet.RenderDuration(tt.minutes))
	}
}

func TestRenderTotal(t *testing.T) {
	assert.Equal(t, "—", timesheet.RenderTotal(nil))

	total := 450
	assert.Equal(t, "7h 30m", timesheet.RenderTotal(&total))

	zero := 0
	assert.Equal(t, "0h", timesheet.RenderTotal(&zero))
}
