package booking

import (
	"errors"
	"strings"

	"mentorship/models"
)

// ErrForbidden is returned when the caller does not own the resource.
var ErrForbidden = errors.New("not allowed to act on this resource")

// InvalidBookingError carries the failed validation of a booking attempt.
type InvalidBookingError struct {
	Validation *models.BookingValidation
}

func (e *InvalidBookingError) Error() string {
	if e.Validation == nil || len(e.Validation.Errors) == 0 {
		return "booking request is invalid"
	}
	return "booking request is invalid: " + strings.Join(e.Validation.Errors, "; ")
}
