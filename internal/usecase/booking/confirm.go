package booking

import (
	"context"
	"errors"

	"github.com/healio-platform/healio-api/internal/audit"
	domain "github.com/healio-platform/healio-api/internal/domain/booking"
	"github.com/healio-platform/healio-api/internal/httperr"
	"github.com/healio-platform/healio-api/internal/models"
)

type ConfirmAppointment struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	notifier Notifier
}

func NewConfirmAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	notifier Notifier,
) *ConfirmAppointment {
	return &ConfirmAppointment{
		repo:     repo,
		audit:    audit,
		notifier: notifier,
	}
}

func (uc *ConfirmAppointment) Execute(
	ctx context.Context,
	therapistID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentForTherapist(ctx, appointmentID, therapistID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
	}
	if err != nil {
		return nil, err
	}

	if err := domain.CanConfirm(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	ap.Status = string(domain.StatusConfirmed)
	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	patient, perr := uc.repo.GetUserByID(ctx, ap.PatientID)
	therapist, terr := uc.repo.GetUserByID(ctx, ap.TherapistID)
	if perr == nil && terr == nil {
		uc.notifier.AppointmentConfirmed(ap, patient, therapist)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &therapistID,
		Action:   "appointment_confirmed",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
