package timesheet_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"timeclock/internal/punch"
	"timeclock/internal/timesheet"
)

func event(date, kind, clock string, createdAt time.Time) punch.PunchEvent {
	return punch.PunchEvent{
		ID:         uuid.New(),
		EmployeeID: uuid.New(),
		Kind:       kind,
		Date:       date,
		Time:       clock,
		CreatedAt:  createdAt,
	}
}

func TestBuildRows_FullDay(t *testing.T) {
	base := time.Date(2026, 1, 5, 6, 0, 0, 0, time.UTC)
	events := []punch.PunchEvent{
		event("2026-01-05", punch.KindIn, "06:00:00", base),
		event("2026-01-05", punch.KindBreak, "12:00:00", base.Add(6*time.Hour)),
		event("2026-01-05", punch.KindEndBreak, "12:30:00", base.Add(6*time.Hour+30*time.Minute)),
		event("2026-01-05", punch.KindOut, "14:00:00", base.Add(8*time.Hour)),
	}

	rows := timesheet.BuildRows(events)

	assert.Len(t, rows, 1)
	row := rows[0]
	assert.Equal(t, "2026-01-05", row.Date)
	assert.Equal(t, 30, row.BreakMinutes)
	if assert.NotNil(t, row.TotalMinutes) {
		assert.Equal(t, 450, *row.TotalMinutes) // 7h 30m
	}
}

func TestBuildRows_NoClockOut_TotalUndefined(t *testing.T) {
	base := time.Now()
	events := []punch.PunchEvent{
		event("2026-01-05", punch.KindIn, "06:00:00", base),
	}

	rows := timesheet.BuildRows(events)

	assert.Len(t, rows, 1)
	assert.Nil(t, rows[0].TotalMinutes)
	assert.Equal(t, "—", timesheet.RenderTotal(rows[0].TotalMinutes))
}

func TestBuildRows_BreakWithoutReturn(t *testing.T) {
	base := time.Now()
	events := []punch.PunchEvent{
		event("2026-01-05", punch.KindIn, "06:00:00", base),
		event("2026-01-05", punch.KindBreak, "12:00:00", base.Add(time.Hour)),
		event("2026-01-05", punch.KindOut, "14:00:00", base.Add(2*time.Hour)),
	}

	rows := timesheet.BuildRows(events)

	// endBreak missing: 0 - 720 clamps to zero break, total uses full span.
	assert.Equal(t, 0, rows[0].BreakMinutes)
	if assert.NotNil(t, rows[0].TotalMinutes) {
		assert.Equal(t, 480, *rows[0].TotalMinutes)
	}
}

func TestBuildRows_MixedEncodings(t *testing.T) {
	base := time.Now()
	events := []punch.PunchEvent{
		event("2026-01-05", punch.KindIn, "Monday, January 5, 2026 6:00 AM", base),
		event("2026-01-05", punch.KindOut, "14:00:00", base.Add(time.Hour)),
	}

	rows := timesheet.BuildRows(events)

	if assert.NotNil(t, rows[0].TotalMinutes) {
		assert.Equal(t, 480, *rows[0].TotalMinutes)
	}
}

func TestBuildRows_DuplicateKind_LatestWins(t *testing.T) {
	base := time.Date(2026, 1, 5, 6, 0, 0, 0, time.UTC)
	older := event("2026-01-05", punch.KindIn, "06:00:00", base)
	newer := event("2026-01-05", punch.KindIn, "07:00:00", base.Add(time.Minute))

	// Outcome must not depend on slice order.
	forward := timesheet.BuildRows([]punch.PunchEvent{older, newer})
	backward := timesheet.BuildRows([]punch.PunchEvent{newer, older})

	assert.Equal(t, "07:00:00", forward[0].ClockIn.Time)
	assert.Equal(t, "07:00:00", backward[0].ClockIn.Time)
}

func TestBuildRows_GroupsByDate(t *testing.T) {
	base := time.Now()
	events := []punch.PunchEvent{
		event("2026-01-05", punch.KindIn, "06:00:00", base),
		event("2026-01-06", punch.KindIn, "06:30:00", base.Add(24*time.Hour)),
		event("2026-01-05", punch.KindOut, "14:00:00", base.Add(8*time.Hour)),
	}

	rows := timesheet.BuildRows(events)

	assert.Len(t, rows, 2)
}

func TestBuildRows_ClampsNegativeTotal(t *testing.T) {
	base := time.Now()
	events := []punch.PunchEvent{
		event("2026-01-05", punch.KindIn, "14:00:00", base),
		event("2026-01-05", punch.KindOut, "06:00:00", base.Add(time.Hour)),
	}

	rows := timesheet.BuildRows(events)

	if assert.NotNil(t, rows[0].TotalMinutes) {
		assert.Equal(t, 0, *rows[0].TotalMinutes)
	}
}

func TestSortRows(t *testing.T) {
	mk := func(date string, total int) timesheet.Row {
		return timesheet.Row{Date: date, TotalMinutes: &total}
	}
	noTotal := timesheet.Row{Date: "2026-01-07"}

	t.Run("date desc", func(t *testing.T) {
		rows := []timesheet.Row{mk("2026-01-05", 480), mk("2026-01-07", 300), mk("2026-01-06", 400)}
		timesheet.SortRows(rows, timesheet.SortByDate, timesheet.OrderDesc)
		assert.Equal(t, "2026-01-07", rows[0].Date)
		assert.Equal(t, "2026-01-05", rows[2].Date)
	})

	t.Run("total asc puts nil first", func(t *testing.T) {
		rows := []timesheet.Row{mk("2026-01-05", 480), noTotal, mk("2026-01-06", 300)}
		timesheet.SortRows(rows, timesheet.SortByTotal, timesheet.OrderAsc)
		assert.Nil(t, rows[0].TotalMinutes)
		assert.Equal(t, "2026-01-05", rows[2].Date)
	})

	t.Run("break desc with date tie-break", func(t *testing.T) {
		a := timesheet.Row{Date: "2026-01-05", BreakMinutes: 30}
		b := timesheet.Row{Date: "2026-01-06", BreakMinutes: 30}
		c := timesheet.Row{Date: "2026-01-04", BreakMinutes: 60}
		rows := []timesheet.Row{a, b, c}
		timesheet.SortRows(rows, timesheet.SortByBreak, timesheet.OrderDesc)
		assert.Equal(t, "2026-01-04", rows[0].Date)
		assert.Equal(t, "2026-01-06", rows[1].Date)
		assert.Equal(t, "2026-01-05", rows[2].Date)
	})
}
