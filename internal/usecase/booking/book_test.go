package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/healio-platform/healio-api/internal/domain/booking"
	"github.com/healio-platform/healio-api/internal/httperr"
	"github.com/healio-platform/healio-api/internal/models"
)

// ======================================================
// Fakes
// ======================================================

// fakeRepo is an in-memory Repository. CreateAppointment rejects a
// duplicate non-cancelled (therapist, date, time) the same way the
// database's partial unique index does.
type fakeRepo struct {
	users        map[uint]models.User
	windows      []models.AvailabilityWindow
	appointments map[uint]*models.Appointment
	nextID       uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:        map[uint]models.User{},
		appointments: map[uint]*models.Appointment{},
		nextID:       1,
	}
}

func (f *fakeRepo) GetUserByID(_ context.Context, id uint) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (f *fakeRepo) GetUsersByIDs(_ context.Context, ids []uint) (map[uint]models.User, error) {
	out := map[uint]models.User{}
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

func (f *fakeRepo) ListWindows(_ context.Context, therapistID uint, day string) ([]models.AvailabilityWindow, error) {
	var out []models.AvailabilityWindow
	for _, w := range f.windows {
		if w.TherapistID == therapistID && w.Day == day {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeRepo) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	conflict, _ := f.HasSlotConflict(ctx, ap.TherapistID, ap.Date, ap.Time, 0)
	if conflict {
		return httperr.ErrBusiness(httperr.CodeSlotConflict)
	}
	ap.ID = f.nextID
	f.nextID++
	ap.CreatedAt = time.Now()
	f.appointments[ap.ID] = ap
	return nil
}

func (f *fakeRepo) HasSlotConflict(_ context.Context, therapistID uint, date, tm string, excludeID uint) (bool, error) {
	for _, ap := range f.appointments {
		if ap.ID == excludeID || ap.Status == string(domain.StatusCancelled) {
			continue
		}
		if ap.TherapistID == therapistID && ap.Date == date && ap.Time == tm {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) GetAppointmentForTherapist(_ context.Context, appointmentID, therapistID uint) (*models.Appointment, error) {
	ap, ok := f.appointments[appointmentID]
	if !ok || ap.TherapistID != therapistID {
		return nil, domain.ErrNotFound
	}
	return ap, nil
}

func (f *fakeRepo) GetAppointmentForParty(_ context.Context, appointmentID, userID uint, role string) (*models.Appointment, error) {
	ap, ok := f.appointments[appointmentID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if role == models.RoleTherapist && ap.TherapistID != userID {
		return nil, domain.ErrNotFound
	}
	if role == models.RolePatient && ap.PatientID != userID {
		return nil, domain.ErrNotFound
	}
	return ap, nil
}

func (f *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	f.appointments[ap.ID] = ap
	return nil
}

func (f *fakeRepo) ListAppointmentsForPatient(_ context.Context, patientID uint) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.PatientID == patientID {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListAppointmentsForTherapist(_ context.Context, therapistID uint) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.TherapistID == therapistID {
			out = append(out, *ap)
		}
	}
	return out, nil
}

var _ domain.Repository = (*fakeRepo)(nil)

// recordingNotifier remembers which events fired.
type recordingNotifier struct {
	events []string
}

func (n *recordingNotifier) BookingCreated(*models.Appointment, *models.User, *models.User) {
	n.events = append(n.events, "created")
}

func (n *recordingNotifier) AppointmentConfirmed(*models.Appointment, *models.User, *models.User) {
	n.events = append(n.events, "confirmed")
}

func (n *recordingNotifier) AppointmentRescheduled(_ *models.Appointment, _, _ *models.User, oldDate, oldTime string) {
	n.events = append(n.events, "rescheduled "+oldDate+" "+oldTime)
}

func (n *recordingNotifier) AppointmentCancelled(*models.Appointment, *models.User, *models.User) {
	n.events = append(n.events, "cancelled")
}

// ======================================================
// Fixtures
// ======================================================

const (
	therapistID = uint(1)
	patientID   = uint(2)
	patient2ID  = uint(3)

	// 2026-01-05 is a Monday
	monday = "2026-01-05"
)

func seededRepo() *fakeRepo {
	repo := newFakeRepo()
	repo.users[therapistID] = models.User{
		ID:              therapistID,
		Name:            "Dana Reyes",
		Email:           "dana@example.com",
		Role:            models.RoleTherapist,
		TherapistStatus: models.TherapistApproved,
	}
	repo.users[patientID] = models.User{
		ID:    patientID,
		Name:  "Sam Okafor",
		Email: "sam@example.com",
		Role:  models.RolePatient,
	}
	repo.users[patient2ID] = models.User{
		ID:    patient2ID,
		Name:  "Lee Tanaka",
		Email: "lee@example.com",
		Role:  models.RolePatient,
	}
	repo.windows = []models.AvailabilityWindow{
		{TherapistID: therapistID, Day: "Monday", From: "09:00", To: "12:00"},
		{TherapistID: therapistID, Day: "Monday", From: "14:00", To: "17:00"},
	}
	return repo
}

func bookInput(date, tm string) domain.BookInput {
	return domain.BookInput{
		TherapistID: therapistID,
		PatientID:   patientID,
		Date:        date,
		Time:        tm,
	}
}

// ======================================================
// Book
// ======================================================

func TestBookAppointment(t *testing.T) {
	ctx := context.Background()

	t.Run("Books Inside Window", func(t *testing.T) {
		repo := seededRepo()
		notifier := &recordingNotifier{}
		uc := NewBookAppointment(repo, nil, notifier)

		ap, err := uc.Execute(ctx, bookInput(monday, "09:00"))
		require.NoError(t, err)

		assert.Equal(t, string(domain.StatusPending), ap.Status)
		assert.Equal(t, domain.SessionVideoCall, ap.SessionType, "session type defaults to video-call")
		assert.Equal(t, []string{"created"}, notifier.events)
	})

	t.Run("Rejects End Boundary", func(t *testing.T) {
		repo := seededRepo()
		uc := NewBookAppointment(repo, nil, &recordingNotifier{})

		_, err := uc.Execute(ctx, bookInput(monday, "12:00"))
		assert.True(t, httperr.IsBusiness(err, httperr.CodeAvailabilityViolation))
	})

	t.Run("Rejects Day Without Windows", func(t *testing.T) {
		repo := seededRepo()
		uc := NewBookAppointment(repo, nil, &recordingNotifier{})

		// 2026-01-06 is a Tuesday; the therapist only works Mondays.
		_, err := uc.Execute(ctx, bookInput("2026-01-06", "09:00"))
		assert.True(t, httperr.IsBusiness(err, httperr.CodeAvailabilityViolation))
	})

	t.Run("Rejects Malformed Date And Time", func(t *testing.T) {
		repo := seededRepo()
		uc := NewBookAppointment(repo, nil, &recordingNotifier{})

		_, err := uc.Execute(ctx, bookInput("05-01-2026", "09:00"))
		assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidDate))

		_, err = uc.Execute(ctx, bookInput(monday, "9:00"))
		assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidTime))
	})

	t.Run("Rejects Unknown Therapist", func(t *testing.T) {
		repo := seededRepo()
		uc := NewBookAppointment(repo, nil, &recordingNotifier{})

		in := bookInput(monday, "09:00")
		in.TherapistID = 999

		_, err := uc.Execute(ctx, in)
		assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidTherapist))
	})

	t.Run("Repository Failure Is Not Blamed On The Caller", func(t *testing.T) {
		repo := &erroringUserRepo{fakeRepo: seededRepo()}
		uc := NewBookAppointment(repo, nil, &recordingNotifier{})

		_, err := uc.Execute(ctx, bookInput(monday, "09:00"))
		require.Error(t, err)
		assert.False(t, httperr.IsBusiness(err, httperr.CodeInvalidTherapist))
		assert.ErrorIs(t, err, errDBDown)
	})

	t.Run("Rejects Unapproved Therapist", func(t *testing.T) {
		repo := seededRepo()
		pending := repo.users[therapistID]
		pending.TherapistStatus = models.TherapistPending
		repo.users[therapistID] = pending

		uc := NewBookAppointment(repo, nil, &recordingNotifier{})
		_, err := uc.Execute(ctx, bookInput(monday, "09:00"))
		assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidTherapist))
	})

	t.Run("Second Booking Of Same Slot Conflicts", func(t *testing.T) {
		repo := seededRepo()
		uc := NewBookAppointment(repo, nil, &recordingNotifier{})

		_, err := uc.Execute(ctx, bookInput(monday, "10:00"))
		require.NoError(t, err)

		_, err = uc.Execute(ctx, bookInput(monday, "10:00"))
		assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotConflict))
	})

	t.Run("Keeps In Person Session Type", func(t *testing.T) {
		repo := seededRepo()
		uc := NewBookAppointment(repo, nil, &recordingNotifier{})

		in := bookInput(monday, "14:00")
		in.SessionType = domain.SessionInPerson

		ap, err := uc.Execute(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, domain.SessionInPerson, ap.SessionType)
	})
}

// erroringUserRepo simulates an infrastructure failure on user lookups.
type erroringUserRepo struct {
	*fakeRepo
}

var errDBDown = errors.New("connection refused")

func (r *erroringUserRepo) GetUserByID(context.Context, uint) (*models.User, error) {
	return nil, errDBDown
}

// ======================================================
// Confirm / Reschedule / Cancel
// ======================================================

func TestConfirmAppointment(t *testing.T) {
	ctx := context.Background()

	repo := seededRepo()
	notifier := &recordingNotifier{}
	book := NewBookAppointment(repo, nil, notifier)
	confirm := NewConfirmAppointment(repo, nil, notifier)

	ap, err := book.Execute(ctx, bookInput(monday, "09:00"))
	require.NoError(t, err)

	t.Run("Confirms Pending", func(t *testing.T) {
		confirmed, err := confirm.Execute(ctx, therapistID, ap.ID)
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusConfirmed), confirmed.Status)
		assert.Contains(t, notifier.events, "confirmed")
	})

	t.Run("Rejects Double Confirm", func(t *testing.T) {
		_, err := confirm.Execute(ctx, therapistID, ap.ID)
		assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidState))
	})

	t.Run("Rejects Other Therapist", func(t *testing.T) {
		_, err := confirm.Execute(ctx, uint(99), ap.ID)
		assert.True(t, httperr.IsBusiness(err, httperr.CodeAppointmentNotFound))
	})
}

func TestRescheduleAppointment(t *testing.T) {
	ctx := context.Background()

	repo := seededRepo()
	notifier := &recordingNotifier{}
	book := NewBookAppointment(repo, nil, notifier)
	reschedule := NewRescheduleAppointment(repo, nil, notifier)

	ap, err := book.Execute(ctx, bookInput(monday, "09:00"))
	require.NoError(t, err)

	t.Run("Moving Within Own Slot Never Self Conflicts", func(t *testing.T) {
		moved, err := reschedule.Execute(ctx, domain.RescheduleInput{
			AppointmentID: ap.ID,
			TherapistID:   therapistID,
			Date:          monday,
			Time:          "09:00",
		})
		require.NoError(t, err)
		assert.Equal(t, "09:00", moved.Time)
	})

	t.Run("Moves To Free Slot And Reports Old One", func(t *testing.T) {
		moved, err := reschedule.Execute(ctx, domain.RescheduleInput{
			AppointmentID: ap.ID,
			TherapistID:   therapistID,
			Date:          monday,
			Time:          "10:00",
		})
		require.NoError(t, err)
		assert.Equal(t, "10:00", moved.Time)
		assert.Contains(t, notifier.events, "rescheduled "+monday+" 09:00")
	})

	t.Run("Rejects Occupied Slot", func(t *testing.T) {
		_, err := book.Execute(ctx, bookInput(monday, "11:00"))
		require.NoError(t, err)

		_, err = reschedule.Execute(ctx, domain.RescheduleInput{
			AppointmentID: ap.ID,
			TherapistID:   therapistID,
			Date:          monday,
			Time:          "11:00",
		})
		assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotConflict))
	})

	t.Run("Rejects Slot Outside Windows", func(t *testing.T) {
		_, err := reschedule.Execute(ctx, domain.RescheduleInput{
			AppointmentID: ap.ID,
			TherapistID:   therapistID,
			Date:          monday,
			Time:          "13:00",
		})
		assert.True(t, httperr.IsBusiness(err, httperr.CodeAvailabilityViolation))
	})
}

func TestCancelAppointment(t *testing.T) {
	ctx := context.Background()
	fixedNow := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)

	repo := seededRepo()
	notifier := &recordingNotifier{}
	book := NewBookAppointment(repo, nil, notifier)
	cancel := NewCancelAppointment(repo, nil, notifier, func() time.Time { return fixedNow })

	ap, err := book.Execute(ctx, bookInput(monday, "09:00"))
	require.NoError(t, err)

	t.Run("Patient Cancel Is Silent", func(t *testing.T) {
		cancelled, err := cancel.Execute(ctx, patientID, models.RolePatient, ap.ID)
		require.NoError(t, err)

		assert.Equal(t, string(domain.StatusCancelled), cancelled.Status)
		require.NotNil(t, cancelled.CancelledAt)
		assert.Equal(t, fixedNow, *cancelled.CancelledAt)
		assert.NotContains(t, notifier.events, "cancelled")
	})

	t.Run("Cancelled Is Terminal", func(t *testing.T) {
		_, err := cancel.Execute(ctx, patientID, models.RolePatient, ap.ID)
		assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidState))
	})

	t.Run("Cancellation Frees The Slot", func(t *testing.T) {
		rebooked, err := book.Execute(ctx, bookInput(monday, "09:00"))
		require.NoError(t, err)
		assert.NotEqual(t, ap.ID, rebooked.ID)
	})

	t.Run("Therapist Cancel Notifies Patient", func(t *testing.T) {
		ap2, err := book.Execute(ctx, bookInput(monday, "10:00"))
		require.NoError(t, err)

		_, err = cancel.Execute(ctx, therapistID, models.RoleTherapist, ap2.ID)
		require.NoError(t, err)
		assert.Contains(t, notifier.events, "cancelled")
	})

	t.Run("Stranger Cannot Cancel", func(t *testing.T) {
		ap3, err := book.Execute(ctx, bookInput(monday, "14:00"))
		require.NoError(t, err)

		_, err = cancel.Execute(ctx, uint(42), models.RolePatient, ap3.ID)
		assert.True(t, httperr.IsBusiness(err, httperr.CodeAppointmentNotFound))
	})
}

// ======================================================
// Full lifecycle
// ======================================================

// One slot travelling through the whole flow: booked, contested by a
// second patient, confirmed, moved, and the vacated slot re-booked.
func TestBookingLifecycle(t *testing.T) {
	ctx := context.Background()

	repo := seededRepo()
	notifier := &recordingNotifier{}
	book := NewBookAppointment(repo, nil, notifier)
	confirm := NewConfirmAppointment(repo, nil, notifier)
	reschedule := NewRescheduleAppointment(repo, nil, notifier)

	// Patient one takes Monday 10:30.
	in := bookInput(monday, "10:30")
	ap, err := book.Execute(ctx, in)
	require.NoError(t, err)
	require.Equal(t, string(domain.StatusPending), ap.Status)

	// Patient two wants the same slot and loses.
	in2 := bookInput(monday, "10:30")
	in2.PatientID = patient2ID
	_, err = book.Execute(ctx, in2)
	require.True(t, httperr.IsBusiness(err, httperr.CodeSlotConflict))

	// The therapist confirms patient one.
	ap, err = confirm.Execute(ctx, therapistID, ap.ID)
	require.NoError(t, err)
	require.Equal(t, string(domain.StatusConfirmed), ap.Status)

	// ...then moves the session half an hour earlier. Confirmation
	// survives the move.
	ap, err = reschedule.Execute(ctx, domain.RescheduleInput{
		AppointmentID: ap.ID,
		TherapistID:   therapistID,
		Date:          monday,
		Time:          "10:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "10:00", ap.Time)
	assert.Equal(t, string(domain.StatusConfirmed), ap.Status)

	// The vacated 10:30 slot is free again for patient two.
	ap2, err := book.Execute(ctx, in2)
	require.NoError(t, err)
	assert.Equal(t, "10:30", ap2.Time)
	assert.Equal(t, patient2ID, ap2.PatientID)
	assert.Equal(t, string(domain.StatusPending), ap2.Status)
}

// ======================================================
// List
// ======================================================

func TestListAppointments(t *testing.T) {
	ctx := context.Background()

	repo := seededRepo()
	book := NewBookAppointment(repo, nil, &recordingNotifier{})
	list := NewListAppointments(repo)

	_, err := book.Execute(ctx, bookInput(monday, "09:00"))
	require.NoError(t, err)

	t.Run("Therapist Sees Patient Names", func(t *testing.T) {
		views, err := list.Execute(ctx, therapistID, models.RoleTherapist)
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, "Sam Okafor", views[0].PatientName)
	})

	t.Run("Patient View Has No Names", func(t *testing.T) {
		views, err := list.Execute(ctx, patientID, models.RolePatient)
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Empty(t, views[0].PatientName)
	})
}
