package booking

import (
	"time"

	"github.com/healio-platform/healio-api/internal/models"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

const (
	SessionVideoCall = "video-call"
	SessionInPerson  = "in-person"
)

// ParseDate parses a "YYYY-MM-DD" calendar date at UTC midnight. Pinning
// the location keeps the derived weekday stable regardless of the host
// timezone.
func ParseDate(date string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, date, time.UTC)
}

// WeekdayName resolves the weekday name ("Monday", ...) used as the
// availability window key.
func WeekdayName(date string) (string, error) {
	d, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return d.Weekday().String(), nil
}

// ValidTime reports whether s is a well-formed zero-padded "HH:MM" string.
func ValidTime(s string) bool {
	if len(s) != len(TimeLayout) {
		return false
	}
	_, err := time.Parse(TimeLayout, s)
	return err == nil
}

// WithinAny reports whether t falls inside any of the given windows.
// Windows are half-open [from, to): the end boundary is not bookable.
// Lexicographic comparison is valid because both sides are fixed-width
// zero-padded 24h strings.
func WithinAny(windows []models.AvailabilityWindow, t string) bool {
	for _, w := range windows {
		if t >= w.From && t < w.To {
			return true
		}
	}
	return false
}

// NormalizeSessionType defaults everything except the literal "in-person"
// to a video call.
func NormalizeSessionType(s string) string {
	if s == SessionInPerson {
		return SessionInPerson
	}
	return SessionVideoCall
}
