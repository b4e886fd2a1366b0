package booking

import (
	"context"

	domain "github.com/healio-platform/healio-api/internal/domain/booking"
	"github.com/healio-platform/healio-api/internal/httperr"
)

// validateSlot runs the shared half of the booking validator: date/time
// shape, availability window membership and the slot conflict pre-check.
// excludeID skips the appointment being rescheduled so it never conflicts
// with itself.
func validateSlot(
	ctx context.Context,
	repo domain.Repository,
	therapistID uint,
	date string,
	timeOfDay string,
	excludeID uint,
) error {

	if !domain.ValidTime(timeOfDay) {
		return httperr.ErrBusiness(httperr.CodeInvalidTime)
	}

	day, err := domain.WeekdayName(date)
	if err != nil {
		return httperr.ErrBusiness(httperr.CodeInvalidDate)
	}

	windows, err := repo.ListWindows(ctx, therapistID, day)
	if err != nil {
		return err
	}
	if !domain.WithinAny(windows, timeOfDay) {
		return httperr.ErrBusiness(httperr.CodeAvailabilityViolation)
	}

	conflict, err := repo.HasSlotConflict(ctx, therapistID, date, timeOfDay, excludeID)
	if err != nil {
		return err
	}
	if conflict {
		return httperr.ErrBusiness(httperr.CodeSlotConflict)
	}

	return nil
}
