package booking

import (
	"context"

	domain "github.com/healio-platform/healio-api/internal/domain/booking"
	"github.com/healio-platform/healio-api/internal/models"
)

type AppointmentView struct {
	ID          uint   `json:"id"`
	TherapistID uint   `json:"therapist_id"`
	PatientID   uint   `json:"patient_id"`
	PatientName string `json:"patient_name,omitempty"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	SessionType string `json:"session_type"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

// Execute lists the caller's appointments: patients see what they booked,
// therapists see their schedule with patient names resolved.
func (uc *ListAppointments) Execute(
	ctx context.Context,
	userID uint,
	role string,
) ([]AppointmentView, error) {

	var (
		aps []models.Appointment
		err error
	)
	if role == models.RolePatient {
		aps, err = uc.repo.ListAppointmentsForPatient(ctx, userID)
	} else {
		aps, err = uc.repo.ListAppointmentsForTherapist(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	names := map[uint]models.User{}
	if role == models.RoleTherapist && len(aps) > 0 {
		ids := make([]uint, 0, len(aps))
		seen := map[uint]bool{}
		for _, ap := range aps {
			if !seen[ap.PatientID] {
				seen[ap.PatientID] = true
				ids = append(ids, ap.PatientID)
			}
		}
		if names, err = uc.repo.GetUsersByIDs(ctx, ids); err != nil {
			return nil, err
		}
	}

	out := make([]AppointmentView, 0, len(aps))
	for _, ap := range aps {
		view := AppointmentView{
			ID:          ap.ID,
			TherapistID: ap.TherapistID,
			PatientID:   ap.PatientID,
			Date:        ap.Date,
			Time:        ap.Time,
			SessionType: ap.SessionType,
			Status:      ap.Status,
			CreatedAt:   ap.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
		if p, ok := names[ap.PatientID]; ok {
			if p.Name != "" {
				view.PatientName = p.Name
			} else {
				view.PatientName = p.Email
			}
		}
		out = append(out, view)
	}

	return out, nil
}
