package availability

import "errors"

var (
	ErrValidation        = errors.New("invalid date range")
	ErrApartmentNotFound = errors.New("apartment not found")
)
