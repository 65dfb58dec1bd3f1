package widget

import (
	"fmt"
	"strings"
	"time"
)

// Day is one slot of a month grid. A zero Number marks a padding slot.
type Day struct {
	Number int `json:"day,omitempty"`
}

// Empty reports whether the slot is leading padding.
func (d Day) Empty() bool { return d.Number == 0 }

// Grid is the padded day sequence of one month.
type Grid struct {
	Year        int          `json:"year"`
	Month       time.Month   `json:"month"`
	WeekStart   time.Weekday `json:"week_start"`
	Leading     int          `json:"leading"`
	DaysInMonth int          `json:"days_in_month"`
	Days        []Day        `json:"days"`
}

// BuildMonthGrid builds the grid for the month containing ref with
// weeks starting on Sunday.
func BuildMonthGrid(ref time.Time) Grid {
	return BuildMonthGridFrom(ref, time.Sunday)
}

// BuildMonthGridFrom builds the grid for the month containing ref, laid
// out for weeks that begin on weekStart. Only ref's year and month are
// read, in ref's own location.
func BuildMonthGridFrom(ref time.Time, weekStart time.Weekday) Grid {
	weekStart = time.Weekday((int(weekStart)%7 + 7) % 7)
	year, month, _ := ref.Date()
	first := time.Date(year, month, 1, 12, 0, 0, 0, time.UTC)
	leading := (int(first.Weekday()) - int(weekStart) + 7) % 7
	days := DaysIn(year, month)

	slots := make([]Day, 0, leading+days)
	for i := 0; i < leading; i++ {
		slots = append(slots, Day{})
	}
	for d := 1; d <= days; d++ {
		slots = append(slots, Day{Number: d})
	}

	return Grid{
		Year:        year,
		Month:       month,
		WeekStart:   weekStart,
		Leading:     leading,
		DaysInMonth: days,
		Days:        slots,
	}
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	// Day 0 of the next month normalises to the last day of this one.
	return time.Date(year, month+1, 0, 12, 0, 0, 0, time.UTC).Day()
}

// Weeks splits the grid into rows of seven. The last row may be short.
func (g Grid) Weeks() [][]Day {
	var rows [][]Day
	for i := 0; i < len(g.Days); i += 7 {
		end := i + 7
		if end > len(g.Days) {
			end = len(g.Days)
		}
		rows = append(rows, g.Days[i:end])
	}
	return rows
}

// Numbers returns the numbered slots in order.
func (g Grid) Numbers() []int {
	out := make([]int, 0, g.DaysInMonth)
	for _, d := range g.Days {
		if !d.Empty() {
			out = append(out, d.Number)
		}
	}
	return out
}

// WeekdayLabels returns the single-letter column headers for the grid.
func (g Grid) WeekdayLabels() []string {
	labels := make([]string, 7)
	for i := range labels {
		wd := time.Weekday((int(g.WeekStart) + i) % 7)
		labels[i] = wd.String()[:1]
	}
	return labels
}

// HighlightDay returns the slot number to mark as today, or 0.
// Only the day of month is compared, so the same number is marked in
// any month the grid shows.
func HighlightDay(g Grid, today time.Time) int {
	d := today.Day()
	if d > g.DaysInMonth {
		return 0
	}
	return d
}

// ParseWeekStart accepts "sunday" or "monday" (any case). Empty means Sunday.
func ParseWeekStart(s string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sunday", "sun":
		return time.Sunday, nil
	case "monday", "mon":
		return time.Monday, nil
	default:
		return time.Sunday, fmt.Errorf("widget: unsupported week start %q", s)
	}
}
