package booking

import (
	"context"
	"errors"

	"github.com/healio-platform/healio-api/internal/audit"
	domain "github.com/healio-platform/healio-api/internal/domain/booking"
	"github.com/healio-platform/healio-api/internal/httperr"
	"github.com/healio-platform/healio-api/internal/models"
)

// ======================================================
// USE CASE
// ======================================================

type BookAppointment struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	notifier Notifier
}

func NewBookAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	notifier Notifier,
) *BookAppointment {
	return &BookAppointment{
		repo:     repo,
		audit:    audit,
		notifier: notifier,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *BookAppointment) Execute(
	ctx context.Context,
	in domain.BookInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// Therapist must exist, hold the role and be approved
	// --------------------------------------------------
	therapist, err := uc.repo.GetUserByID(ctx, in.TherapistID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidTherapist)
	}
	if err != nil {
		return nil, err
	}
	if therapist.Role != models.RoleTherapist ||
		therapist.TherapistStatus != models.TherapistApproved {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidTherapist)
	}

	patient, err := uc.repo.GetUserByID(ctx, in.PatientID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Window membership + conflict pre-check
	// --------------------------------------------------
	if err := validateSlot(ctx, uc.repo, in.TherapistID, in.Date, in.Time, 0); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Commit. The partial unique index on
	// (therapist_id, date, time) closes the race the
	// pre-check leaves open; the repository maps the
	// violation back to slot_conflict.
	// --------------------------------------------------
	ap := &models.Appointment{
		TherapistID: in.TherapistID,
		PatientID:   in.PatientID,
		Date:        in.Date,
		Time:        in.Time,
		SessionType: domain.NormalizeSessionType(in.SessionType),
		Status:      string(domain.InitialStatus()),
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Side effects, best-effort only
	// --------------------------------------------------
	uc.notifier.BookingCreated(ap, patient, therapist)

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.PatientID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
