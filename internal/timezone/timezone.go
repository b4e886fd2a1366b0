package timezone

import "time"

// All calendar math in the platform is pinned to UTC: appointment dates are
// plain "YYYY-MM-DD" strings and deriving their weekday in a host-local
// location can shift the result by a day near UTC offset boundaries.

func Location() *time.Location {
	return time.UTC
}

func Now() time.Time {
	return time.Now().UTC()
}

// DayString formats t as the "YYYY-MM-DD" bucket key used by reports.
func DayString(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
