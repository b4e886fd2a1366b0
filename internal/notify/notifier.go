package notify

import (
	"encoding/json"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/healio-platform/healio-api/internal/mailer"
	"github.com/healio-platform/healio-api/internal/models"
)

// Service delivers in-app notifications and counterpart emails for booking
// events. Everything runs off the request path and every failure is logged
// and swallowed: a booking that committed stays committed.
type Service struct {
	db      *gorm.DB
	mail    mailer.Mailer
	baseURL string
	log     *zap.Logger
	queue   chan func()
}

func NewService(db *gorm.DB, mail mailer.Mailer, baseURL string, log *zap.Logger) *Service {
	s := &Service{
		db:      db,
		mail:    mail,
		baseURL: baseURL,
		log:     log,
		queue:   make(chan func(), 100),
	}

	go s.worker()
	return s
}

func (s *Service) worker() {
	for job := range s.queue {
		job()
	}
}

func (s *Service) enqueue(job func()) {
	select {
	case s.queue <- job:
	default:
		s.log.Warn("notification queue full, dropping event")
	}
}

// BookingCreated informs the therapist that a patient booked a slot.
func (s *Service) BookingCreated(ap *models.Appointment, patient, therapist *models.User) {
	date, tm, sessionType := ap.Date, ap.Time, ap.SessionType
	apID, patientID := ap.ID, patient.ID

	s.enqueue(func() {
		s.createNotification(
			therapist.ID,
			"New appointment booked",
			displayName(patient)+" booked "+date+" at "+tm,
			map[string]any{"appointment_id": apID, "patient_id": patientID},
		)

		subject, body := mailer.AppointmentBooked(
			displayName(therapist), displayName(patient),
			date, tm, sessionType, s.baseURL,
		)
		s.send(therapist.Email, subject, body)
	})
}

// AppointmentConfirmed informs the patient of a therapist confirmation.
func (s *Service) AppointmentConfirmed(ap *models.Appointment, patient, therapist *models.User) {
	s.updateEvent(ap, patient, therapist, "confirmed", ap.Date, ap.Time)
}

// AppointmentRescheduled informs the patient of the new slot. oldDate and
// oldTime are the slot the appointment moved away from.
func (s *Service) AppointmentRescheduled(ap *models.Appointment, patient, therapist *models.User, oldDate, oldTime string) {
	date, tm, sessionType := ap.Date, ap.Time, ap.SessionType
	apID := ap.ID

	s.enqueue(func() {
		s.createNotification(
			patient.ID,
			"Appointment rescheduled",
			"Your appointment moved to "+date+" at "+tm,
			map[string]any{"appointment_id": apID},
		)

		subject, body := mailer.AppointmentUpdate(
			displayName(patient), displayName(therapist),
			"rescheduled", oldDate, oldTime, sessionType, date, tm, s.baseURL,
		)
		s.send(patient.Email, subject, body)
	})
}

// AppointmentCancelled informs the patient of a therapist-side
// cancellation. Patient-side cancellations are silent.
func (s *Service) AppointmentCancelled(ap *models.Appointment, patient, therapist *models.User) {
	s.updateEvent(ap, patient, therapist, "cancelled", ap.Date, ap.Time)
}

func (s *Service) updateEvent(ap *models.Appointment, patient, therapist *models.User, action, date, tm string) {
	sessionType := ap.SessionType
	apID := ap.ID

	s.enqueue(func() {
		s.createNotification(
			patient.ID,
			"Appointment "+action,
			"Your appointment on "+date+" at "+tm+" has been "+action,
			map[string]any{"appointment_id": apID},
		)

		subject, body := mailer.AppointmentUpdate(
			displayName(patient), displayName(therapist),
			action, date, tm, sessionType, "", "", s.baseURL,
		)
		s.send(patient.Email, subject, body)
	})
}

func (s *Service) createNotification(userID uint, title, body string, data map[string]any) {
	payload, _ := json.Marshal(data)

	n := models.Notification{
		UserID: userID,
		Type:   "appointment",
		Title:  title,
		Body:   body,
		Data:   string(payload),
	}
	if err := s.db.Create(&n).Error; err != nil {
		s.log.Warn("failed to create notification",
			zap.Uint("user_id", userID),
			zap.Error(err),
		)
	}
}

func (s *Service) send(to, subject, body string) {
	if err := s.mail.Send(to, subject, body); err != nil {
		s.log.Warn("failed to send email",
			zap.String("subject", subject),
			zap.Error(err),
		)
	}
}

func displayName(u *models.User) string {
	if u == nil {
		return ""
	}
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}
