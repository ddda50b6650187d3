package catalog

import "errors"

var (
	ErrValidation        = errors.New("invalid apartment payload")
	ErrApartmentNotFound = errors.New("apartment not found")
)
