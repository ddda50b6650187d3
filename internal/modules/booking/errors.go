package booking

import "errors"

var (
	ErrValidation              = errors.New("invalid booking request")
	ErrApartmentNotFound       = errors.New("apartment not found")
	ErrBookingNotFound         = errors.New("booking not found")
	ErrDatesUnavailable        = errors.New("dates are not available")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)
