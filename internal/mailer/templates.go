package mailer

import "fmt"

// Plain-text bodies for the platform's transactional mail.

func TherapistApproval(name, baseURL string) (subject, body string) {
	greeting := "Hello,"
	if name != "" {
		greeting = fmt.Sprintf("Hi %s,", name)
	}

	subject = "Your therapist account has been approved"
	body = fmt.Sprintf(`%s

Your therapist account has been approved by the administrator. You can now log in and start using Healio.

Login: %s/login

If you did not request this, please contact support.

- Healio Team`, greeting, baseURL)
	return subject, body
}

func AppointmentBooked(therapistName, patientName, date, tm, sessionType, baseURL string) (subject, body string) {
	if therapistName == "" {
		therapistName = "Therapist"
	}
	if patientName == "" {
		patientName = "a patient"
	}

	subject = fmt.Sprintf("New appointment booked by %s", patientName)
	body = fmt.Sprintf(`Hello %s,

A patient (%s) booked an appointment.

Date: %s
Time: %s
Type: %s

Manage your sessions: %s/dashboard/sessions

- Healio Team`, therapistName, patientName, date, tm, prettySessionType(sessionType), baseURL)
	return subject, body
}

// AppointmentUpdate covers the therapist-side actions: action is
// "confirmed", "rescheduled" or "cancelled". For reschedules newDate and
// newTime carry the slot the appointment moved to.
func AppointmentUpdate(patientName, therapistName, action, date, tm, sessionType, newDate, newTime, baseURL string) (subject, body string) {
	if patientName == "" {
		patientName = "there"
	}
	if therapistName == "" {
		therapistName = "Your therapist"
	}

	lines := fmt.Sprintf("Therapist: %s\nType: %s\n", therapistName, prettySessionType(sessionType))
	if action == "rescheduled" {
		lines += fmt.Sprintf("Previous: %s at %s\nNew: %s at %s\n", date, tm, newDate, newTime)
	} else {
		lines += fmt.Sprintf("Date: %s\nTime: %s\n", date, tm)
	}

	subject = fmt.Sprintf("Your appointment has been %s", action)
	body = fmt.Sprintf(`Hello %s,

Your appointment has been %s.

%s
Manage your appointments: %s/dashboard/appointments

- Healio Team`, patientName, action, lines, baseURL)
	return subject, body
}

func prettySessionType(sessionType string) string {
	if sessionType == "in-person" {
		return "In-Person"
	}
	return "Video Call"
}
