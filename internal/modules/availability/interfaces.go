package availability

import (
	"context"

	"github.com/OlegRadinuk/lifestyle-crimea/internal/domain"
)

// LocalBookingStore is the read slice of the booking repository the engine
// needs: overlap counts cover both tables at the SQL level, blocked lists
// feed the calendar view.
type LocalBookingStore interface {
	CountConflicts(ctx context.Context, apartmentID string, rng domain.DateRange) (int64, error)
	ListBlocked(ctx context.Context, apartmentID, from string) ([]domain.BlockedRange, error)
}

type ExternalBookingStore interface {
	GetBlocked(ctx context.Context, apartmentID, from string) ([]domain.BlockedRange, error)
}

type ApartmentStore interface {
	GetByID(ctx context.Context, id string) (*domain.Apartment, error)
}
