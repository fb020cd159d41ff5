// Package dates holds the calendar-day arithmetic shared by availability,
// search and deadline logic. Every day-granular comparison in the codebase
// goes through Day exactly once, so wall-clock times and timezone offsets on
// incoming values can never influence a result.
package dates

import "time"

// Layout is the wire format for calendar dates.
const Layout = "2006-01-02"

// Day truncates t to UTC midnight of its calendar day. Values arrive from
// wire parsing (UTC) and from time.Now() (server-local); rebuilding both in
// one fixed zone keeps a day compared against itself regardless of source.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return Day(a).Equal(Day(b))
}

// Overlaps reports whether the closed day intervals [aStart, aEnd] and
// [bStart, bEnd] share at least one calendar day. Both bounds are inclusive:
// a booking ending on day X still occupies day X, so an interval touching
// another on a single day counts as an overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	aS, aE := Day(aStart), Day(aEnd)
	bS, bE := Day(bStart), Day(bEnd)
	return !aS.After(bE) && !bS.After(aE)
}

// Contains reports whether day t falls within the closed interval [start, end].
func Contains(t, start, end time.Time) bool {
	d := Day(t)
	return !d.Before(Day(start)) && !d.After(Day(end))
}

// DaysUntil returns the number of whole days from today until end, rounded
// up. Zero or negative values mean end has already been reached.
func DaysUntil(end, today time.Time) int {
	diff := Day(end).Sub(Day(today))
	days := diff / (24 * time.Hour)
	if diff%(24*time.Hour) > 0 {
		days++
	}
	return int(days)
}

// Parse parses a YYYY-MM-DD calendar date.
func Parse(s string) (time.Time, error) {
	return time.Parse(Layout, s)
}
