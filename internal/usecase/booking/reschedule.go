package booking

import (
	"context"
	"errors"

	"github.com/healio-platform/healio-api/internal/audit"
	domain "github.com/healio-platform/healio-api/internal/domain/booking"
	"github.com/healio-platform/healio-api/internal/httperr"
	"github.com/healio-platform/healio-api/internal/models"
)

type RescheduleAppointment struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	notifier Notifier
}

func NewRescheduleAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	notifier Notifier,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		repo:     repo,
		audit:    audit,
		notifier: notifier,
	}
}

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	in domain.RescheduleInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentForTherapist(ctx, in.AppointmentID, in.TherapistID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
	}
	if err != nil {
		return nil, err
	}

	if err := domain.CanReschedule(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	// Full re-validation of the target slot, with this appointment
	// excluded so moving within its own slot never self-conflicts.
	if err := validateSlot(ctx, uc.repo, in.TherapistID, in.Date, in.Time, ap.ID); err != nil {
		return nil, err
	}

	oldDate, oldTime := ap.Date, ap.Time

	ap.Date = in.Date
	ap.Time = in.Time
	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	patient, perr := uc.repo.GetUserByID(ctx, ap.PatientID)
	therapist, terr := uc.repo.GetUserByID(ctx, ap.TherapistID)
	if perr == nil && terr == nil {
		uc.notifier.AppointmentRescheduled(ap, patient, therapist, oldDate, oldTime)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.TherapistID,
		Action:   "appointment_rescheduled",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]string{
			"from": oldDate + " " + oldTime,
			"to":   in.Date + " " + in.Time,
		},
	})

	return ap, nil
}
