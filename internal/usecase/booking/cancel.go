package booking

import (
	"context"
	"errors"
	"time"

	"github.com/healio-platform/healio-api/internal/audit"
	domain "github.com/healio-platform/healio-api/internal/domain/booking"
	"github.com/healio-platform/healio-api/internal/httperr"
	"github.com/healio-platform/healio-api/internal/models"
)

type CancelAppointment struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	notifier Notifier
	now      func() time.Time
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	notifier Notifier,
	now func() time.Time,
) *CancelAppointment {
	return &CancelAppointment{
		repo:     repo,
		audit:    audit,
		notifier: notifier,
		now:      now,
	}
}

// Execute cancels the caller's own appointment. Cancellation is a terminal
// status, not a row deletion, so history survives. Therapist-side
// cancellations notify the patient; patient-side ones are silent.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	userID uint,
	role string,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentForParty(ctx, appointmentID, userID, role)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
	}
	if err != nil {
		return nil, err
	}

	if err := domain.CanCancel(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	now := uc.now()
	ap.Status = string(domain.StatusCancelled)
	ap.CancelledAt = &now

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	if role == models.RoleTherapist {
		patient, perr := uc.repo.GetUserByID(ctx, ap.PatientID)
		therapist, terr := uc.repo.GetUserByID(ctx, ap.TherapistID)
		if perr == nil && terr == nil {
			uc.notifier.AppointmentCancelled(ap, patient, therapist)
		}
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
