package mailer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTherapistApproval(t *testing.T) {
	subject, body := TherapistApproval("Dana", "https://healio.example")

	assert.Equal(t, "Your therapist account has been approved", subject)
	assert.Contains(t, body, "Hi Dana,")
	assert.Contains(t, body, "https://healio.example/login")

	t.Run("Falls Back Without Name", func(t *testing.T) {
		_, body := TherapistApproval("", "https://healio.example")
		assert.True(t, strings.HasPrefix(body, "Hello,"))
	})
}

func TestAppointmentBooked(t *testing.T) {
	subject, body := AppointmentBooked(
		"Dana", "Sam", "2026-01-05", "09:00", "in-person", "https://healio.example",
	)

	assert.Equal(t, "New appointment booked by Sam", subject)
	assert.Contains(t, body, "Date: 2026-01-05")
	assert.Contains(t, body, "Time: 09:00")
	assert.Contains(t, body, "Type: In-Person")
}

func TestAppointmentUpdate(t *testing.T) {
	t.Run("Confirmed", func(t *testing.T) {
		subject, body := AppointmentUpdate(
			"Sam", "Dana", "confirmed",
			"2026-01-05", "09:00", "video-call", "", "",
			"https://healio.example",
		)

		assert.Equal(t, "Your appointment has been confirmed", subject)
		assert.Contains(t, body, "Date: 2026-01-05")
		assert.Contains(t, body, "Type: Video Call")
	})

	t.Run("Rescheduled Shows Both Slots", func(t *testing.T) {
		_, body := AppointmentUpdate(
			"Sam", "Dana", "rescheduled",
			"2026-01-05", "09:00", "video-call", "2026-01-12", "10:00",
			"https://healio.example",
		)

		assert.Contains(t, body, "Previous: 2026-01-05 at 09:00")
		assert.Contains(t, body, "New: 2026-01-12 at 10:00")
	})
}
