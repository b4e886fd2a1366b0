package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/healio-platform/healio-api/internal/models"
)

func TestWeekdayName(t *testing.T) {
	t.Run("Known Dates", func(t *testing.T) {
		cases := map[string]string{
			"2026-01-05": "Monday",
			"2026-01-06": "Tuesday",
			"2026-01-10": "Saturday",
			"2026-01-11": "Sunday",
			"2024-02-29": "Thursday", // leap day
		}
		for date, want := range cases {
			day, err := WeekdayName(date)
			assert.NoError(t, err)
			assert.Equal(t, want, day, date)
		}
	})

	t.Run("Malformed Dates", func(t *testing.T) {
		for _, date := range []string{"", "05-01-2026", "2026/01/05", "2026-13-01", "2026-01-32", "not-a-date"} {
			_, err := WeekdayName(date)
			assert.Error(t, err, date)
		}
	})
}

func TestValidTime(t *testing.T) {
	t.Run("Accepts Zero Padded HH:MM", func(t *testing.T) {
		for _, s := range []string{"00:00", "09:00", "12:30", "23:59"} {
			assert.True(t, ValidTime(s), s)
		}
	})

	t.Run("Rejects Everything Else", func(t *testing.T) {
		for _, s := range []string{"", "9:00", "09:0", "24:00", "12:60", "09:00:00", "0900", "ab:cd"} {
			assert.False(t, ValidTime(s), s)
		}
	})
}

func TestWithinAny(t *testing.T) {
	morning := models.AvailabilityWindow{Day: "Monday", From: "09:00", To: "12:00"}
	afternoon := models.AvailabilityWindow{Day: "Monday", From: "14:00", To: "17:00"}
	windows := []models.AvailabilityWindow{morning, afternoon}

	t.Run("Half Open Boundaries", func(t *testing.T) {
		assert.True(t, WithinAny(windows, "09:00"), "start boundary is bookable")
		assert.True(t, WithinAny(windows, "11:59"), "last minute inside the window")
		assert.False(t, WithinAny(windows, "12:00"), "end boundary is not bookable")
		assert.False(t, WithinAny(windows, "08:59"))
	})

	t.Run("Any Window Matches", func(t *testing.T) {
		assert.True(t, WithinAny(windows, "14:30"))
		assert.False(t, WithinAny(windows, "13:00"), "gap between windows")
	})

	t.Run("No Windows", func(t *testing.T) {
		assert.False(t, WithinAny(nil, "09:00"))
	})
}

func TestNormalizeSessionType(t *testing.T) {
	assert.Equal(t, SessionInPerson, NormalizeSessionType("in-person"))
	assert.Equal(t, SessionVideoCall, NormalizeSessionType("video-call"))
	assert.Equal(t, SessionVideoCall, NormalizeSessionType(""))
	assert.Equal(t, SessionVideoCall, NormalizeSessionType("IN-PERSON"), "session type is case sensitive")
}
