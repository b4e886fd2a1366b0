package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domain "github.com/healio-platform/healio-api/internal/domain/booking"
	"github.com/healio-platform/healio-api/internal/httperr"
	"github.com/healio-platform/healio-api/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Users
// --------------------------------------------------

func (r *BookingGormRepository) GetUserByID(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &user, nil
}

func (r *BookingGormRepository) GetUsersByIDs(
	ctx context.Context,
	ids []uint,
) (map[uint]models.User, error) {

	var users []models.User
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&users).Error; err != nil {
		return nil, err
	}

	out := make(map[uint]models.User, len(users))
	for _, u := range users {
		out[u.ID] = u
	}
	return out, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *BookingGormRepository) ListWindows(
	ctx context.Context,
	therapistID uint,
	day string,
) ([]models.AvailabilityWindow, error) {

	var windows []models.AvailabilityWindow
	if err := r.db.WithContext(ctx).
		Where("therapist_id = ? AND day = ?", therapistID, day).
		Order(`"from" ASC`).
		Find(&windows).Error; err != nil {
		return nil, err
	}
	return windows, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

func (r *BookingGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	err := r.db.WithContext(ctx).Create(ap).Error
	return mapSlotViolation(err)
}

func (r *BookingGormRepository) HasSlotConflict(
	ctx context.Context,
	therapistID uint,
	date string,
	timeOfDay string,
	excludeID uint,
) (bool, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"therapist_id = ? AND date = ? AND time = ? AND status <> ?",
			therapistID, date, timeOfDay, string(domain.StatusCancelled),
		)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *BookingGormRepository) GetAppointmentForTherapist(
	ctx context.Context,
	appointmentID uint,
	therapistID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND therapist_id = ?", appointmentID, therapistID).
		First(&ap).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &ap, nil
}

func (r *BookingGormRepository) GetAppointmentForParty(
	ctx context.Context,
	appointmentID uint,
	userID uint,
	role string,
) (*models.Appointment, error) {

	column := "therapist_id"
	if role == models.RolePatient {
		column = "patient_id"
	}

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND "+column+" = ?", appointmentID, userID).
		First(&ap).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &ap, nil
}

func (r *BookingGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	err := r.db.WithContext(ctx).Save(ap).Error
	return mapSlotViolation(err)
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *BookingGormRepository) ListAppointmentsForPatient(
	ctx context.Context,
	patientID uint,
) ([]models.Appointment, error) {
	return r.listAppointments(ctx, "patient_id", patientID)
}

func (r *BookingGormRepository) ListAppointmentsForTherapist(
	ctx context.Context,
	therapistID uint,
) ([]models.Appointment, error) {
	return r.listAppointments(ctx, "therapist_id", therapistID)
}

func (r *BookingGormRepository) listAppointments(
	ctx context.Context,
	column string,
	id uint,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(column+" = ?", id).
		Order("created_at DESC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

// mapNotFound translates gorm's sentinel so use cases can distinguish a
// missing row from an infrastructure failure without depending on gorm.
func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

// mapSlotViolation turns a hit on the uniq_booked_slot partial index
// (SQLSTATE 23505) into the slot_conflict business error. This is the
// atomic backstop behind the read-then-write pre-check.
func mapSlotViolation(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "uniq_booked_slot" {
		return httperr.ErrBusiness(httperr.CodeSlotConflict)
	}
	return err
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
