package booking

import (
	"context"
	"errors"

	"github.com/healio-platform/healio-api/internal/models"
)

// ErrNotFound is returned by lookups when no row matches. Callers use it
// to tell a missing record apart from an infrastructure failure.
var ErrNotFound = errors.New("record not found")

type Repository interface {
	// -------- Users --------
	GetUserByID(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	GetUsersByIDs(
		ctx context.Context,
		ids []uint,
	) (map[uint]models.User, error)

	// -------- Availability --------
	ListWindows(
		ctx context.Context,
		therapistID uint,
		day string,
	) ([]models.AvailabilityWindow, error)

	// -------- Appointment (create / conflict) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// HasSlotConflict reports whether a non-cancelled appointment already
	// occupies (therapistID, date, time). excludeID skips the appointment
	// being rescheduled; zero excludes nothing.
	HasSlotConflict(
		ctx context.Context,
		therapistID uint,
		date string,
		time string,
		excludeID uint,
	) (bool, error)

	// -------- Appointment (state change) --------
	GetAppointmentForTherapist(
		ctx context.Context,
		appointmentID uint,
		therapistID uint,
	) (*models.Appointment, error)

	GetAppointmentForParty(
		ctx context.Context,
		appointmentID uint,
		userID uint,
		role string,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Listing --------
	ListAppointmentsForPatient(
		ctx context.Context,
		patientID uint,
	) ([]models.Appointment, error)

	ListAppointmentsForTherapist(
		ctx context.Context,
		therapistID uint,
	) ([]models.Appointment, error)
}
