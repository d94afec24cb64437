// utils/dates.go
package utils

import "time"

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// DaysBetween counts whole calendar days from start to end. Each value is
// read as a date in its own location, so differing zones or DST shifts do
// not skew the count.
func DaysBetween(start, end time.Time) int {
	sy, sm, sd := start.Date()
	ey, em, ed := end.Date()
	s := time.Date(sy, sm, sd, 0, 0, 0, 0, time.UTC)
	e := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s).Hours() / 24)
}

// SameDay reports whether a and b fall on the same calendar day, each read
// in its own location. Instants are never compared; a date stored in UTC
// matches the same date on a server in any zone.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// FormatDate renders a date as YYYY-MM-DD, the format used in audit entries.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
