package booking

import "github.com/healio-platform/healio-api/internal/models"

// Notifier fans booking events out to the counterpart party (in-app record
// plus email). Implementations are fire-and-forget: they never block the
// booking and never report failure back.
type Notifier interface {
	BookingCreated(ap *models.Appointment, patient, therapist *models.User)
	AppointmentConfirmed(ap *models.Appointment, patient, therapist *models.User)
	AppointmentRescheduled(ap *models.Appointment, patient, therapist *models.User, oldDate, oldTime string)
	AppointmentCancelled(ap *models.Appointment, patient, therapist *models.User)
}
