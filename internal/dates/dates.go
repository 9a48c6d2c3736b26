package dates

import (
	"fmt"
	"time"
)

// ISOLayout is the calendar-date layout used throughout the snapshot.
const ISOLayout = "2006-01-02"

// Cell is one day in a month grid.
type Cell struct {
	Date    time.Time
	InMonth bool
}

// MonthGrid returns exactly 42 cells (6 weeks) covering the anchor's month,
// starting from the Sunday on or before the 1st. The fixed height keeps the
// calendar stable regardless of how many weeks the month spans. Each cell
// flags whether it belongs to the anchor month so outside days can be dimmed.
func MonthGrid(anchor time.Time) []Cell {
	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
	start := first.AddDate(0, 0, -int(first.Weekday()))

	cells := make([]Cell, 42)
	for i := range cells {
		d := start.AddDate(0, 0, i)
		cells[i] = Cell{Date: d, InMonth: d.Month() == anchor.Month()}
	}
	return cells
}

// SameCalendarDay reports whether two ISO date strings fall on the same
// year/month/day. Time-of-day in either value is ignored. Unparseable
// values never match.
func SameCalendarDay(isoA, isoB string) bool {
	a, errA := ParseDay(isoA)
	b, errB := ParseDay(isoB)
	if errA != nil || errB != nil {
		return false
	}
	return a.Equal(b)
}

// ParseDay parses an ISO date string, tolerating a trailing time component,
// and returns midnight UTC of that calendar day.
func ParseDay(iso string) (time.Time, error) {
	if len(iso) > len(ISOLayout) {
		iso = iso[:len(ISOLayout)]
	}
	t, err := time.Parse(ISOLayout, iso)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", iso, err)
	}
	return t, nil
}

// ISO formats a time as a calendar date string.
func ISO(t time.Time) string {
	return t.Format(ISOLayout)
}

// MonthKey returns the "YYYY-MM" prefix used for monthly aggregation.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// StartOfDay truncates a time to midnight in its location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// FormatMonth renders a month header, e.g. "June 2024".
func FormatMonth(t time.Time) string {
	return t.Format("January 2006")
}

// FormatShort renders a compact date, e.g. "Jun 16".
func FormatShort(iso string) string {
	t, err := ParseDay(iso)
	if err != nil {
		return iso
	}
	return t.Format("Jan 2")
}

// FormatNumeric renders a US-style numeric date, e.g. "6/16/2024".
func FormatNumeric(iso string) string {
	t, err := ParseDay(iso)
	if err != nil {
		return iso
	}
	return t.Format("1/2/2006")
}
