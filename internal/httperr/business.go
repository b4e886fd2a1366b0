package httperr

import "errors"

// Business codes shared between the booking validator and its handlers.
const (
	CodeInvalidDate           = "invalid_date"
	CodeInvalidTime           = "invalid_time"
	CodeInvalidTherapist      = "invalid_therapist"
	CodeAvailabilityViolation = "availability_violation"
	CodeSlotConflict          = "slot_conflict"
	CodeInvalidState          = "invalid_state"
	CodeAppointmentNotFound   = "appointment_not_found"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// AsBusiness extracts the business code from err, if any.
func AsBusiness(err error) (string, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code, true
	}
	return "", false
}
