package timesheet

import (
	"sort"

	"timeclock/internal/punch"
)

// Cell is one of the four slots of a daily row, carrying the punch's
// display attributes and provenance.
type Cell struct {
	Event    *punch.PunchEvent
	Time     string
	Image    string
	Where    string
	Detected string
	Source   string
}

// Row is the derived daily attendance view. It is never persisted and
// must be fully reproducible from the day's punch events alone.
type Row struct {
	Date         string
	ClockIn      Cell
	BreakIn      Cell
	BreakOut     Cell
	ClockOut     Cell
	BreakMinutes int
	TotalMinutes *int
}

func (r *Row) cellFor(kind string) *Cell {
	switch kind {
	case punch.KindIn:
		return &r.ClockIn
	case punch.KindBreak:
		return &r.BreakIn
	case punch.KindEndBreak:
		return &r.BreakOut
	case punch.KindOut:
		return &r.ClockOut
	default:
		return nil
	}
}

// BuildRows groups events by date and reconciles each group into one
// row. The canonical path writes one event per kind per day, but the
// store may hold duplicates; the latest-created event of a kind wins,
// deterministically, regardless of input order.
func BuildRows(events []punch.PunchEvent) []Row {
	byDate := make(map[string]*Row)
	order := make([]string, 0)

	for i := range events {
		e := &events[i]
		row, ok := byDate[e.Date]
		if !ok {
			row = &Row{Date: e.Date}
			byDate[e.Date] = row
			order = append(order, e.Date)
		}

		cell := row.cellFor(e.Kind)
		if cell == nil {
			continue
		}
		if cell.Event != nil && !e.CreatedAt.After(cell.Event.CreatedAt) {
			continue
		}
		*cell = Cell{
			Event:    e,
			Time:     e.Time,
			Image:    e.ImageURL,
			Where:    e.Where,
			Detected: e.DetectedLocation,
			Source:   e.Source,
		}
	}

	rows := make([]Row, 0, len(order))
	for _, date := range order {
		row := byDate[date]
		row.derive()
		rows = append(rows, *row)
	}
	return rows
}

// derive computes the two arithmetic columns in minutes-since-midnight
// space. A day without both a clock-in and a clock-out has an
// undefined total, which is distinct from a genuine zero.
func (r *Row) derive() {
	clockIn := ParseClock(r.ClockIn.Time)
	clockOut := ParseClock(r.ClockOut.Time)
	breakIn := ParseClock(r.BreakIn.Time)
	breakOut := ParseClock(r.BreakOut.Time)

	r.BreakMinutes = breakOut.Minutes - breakIn.Minutes
	if r.BreakMinutes < 0 {
		r.BreakMinutes = 0
	}

	if clockIn.Minutes > 0 && clockOut.Minutes > 0 {
		total := clockOut.Minutes - clockIn.Minutes - r.BreakMinutes
		if total < 0 {
			total = 0
		}
		r.TotalMinutes = &total
	}
}

// Sort keys supported by the dashboard table.
const (
	SortByDate  = "date"
	SortByTotal = "total"
	SortByBreak = "break"

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// SortRows orders rows by the requested column with date as the
// universal tie-break. A nil total sorts below every defined value.
func SortRows(rows []Row, sortBy, order string) {
	desc := order == OrderDesc

	less := func(a, b Row) bool {
		switch sortBy {
		case SortByTotal:
			av, bv := totalOrNeg(a), totalOrNeg(b)
			if av != bv {
				return av < bv
			}
		case SortByBreak:
			if a.BreakMinutes != b.BreakMinutes {
				return a.BreakMinutes < b.BreakMinutes
			}
		}
		return a.Date < b.Date
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if desc {
			return less(rows[j], rows[i])
		}
		return less(rows[i], rows[j])
	})
}

func totalOrNeg(r Row) int {
	if r.TotalMinutes == nil {
		return -1
	}
	return *r.TotalMinutes
}
