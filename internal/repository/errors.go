package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrDatesUnavailable is returned by the atomic check-and-insert when
	// the requested range conflicts with a local or external booking.
	ErrDatesUnavailable = errors.New("dates are not available")
	// ErrDuplicateSource is returned when a second ICS source is created
	// for the same (apartment, source name) pair.
	ErrDuplicateSource = errors.New("source already exists for this apartment")
)

func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// isUniqueViolation recognises unique-constraint failures on both engines:
// pgconn errors on PostgreSQL, the driver message on SQLite.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
