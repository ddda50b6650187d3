package availability

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/OlegRadinuk/lifestyle-crimea/internal/domain"
	"github.com/OlegRadinuk/lifestyle-crimea/internal/repository"
)

// Service answers "is this apartment free for these dates" and builds the
// merged blocked-ranges view the booking calendar renders. Both reads treat
// local bookings and externally synced stays the same way.
type Service struct {
	apartments ApartmentStore
	bookings   LocalBookingStore
	external   ExternalBookingStore

	now func() time.Time
}

func NewService(apartments ApartmentStore, bookings LocalBookingStore, external ExternalBookingStore) *Service {
	return &Service{
		apartments: apartments,
		bookings:   bookings,
		external:   external,
		now:        time.Now,
	}
}

// IsAvailable reports whether the half-open range is free of conflicts with
// every blocking stay, local or external. A cancelled booking never blocks.
func (s *Service) IsAvailable(ctx context.Context, apartmentID string, rng domain.DateRange) (bool, error) {
	if err := rng.Validate(); err != nil {
		return false, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if _, err := s.apartments.GetByID(ctx, apartmentID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, ErrApartmentNotFound
		}
		return false, err
	}

	cnt, err := s.bookings.CountConflicts(ctx, apartmentID, rng)
	if err != nil {
		return false, err
	}
	return cnt == 0, nil
}

// BlockedRanges merges occupied intervals from local bookings and every
// external source, tagged by origin and sorted by check-in. from defaults to
// today so past stays stay out of the calendar payload.
func (s *Service) BlockedRanges(ctx context.Context, apartmentID, from string) ([]domain.BlockedRange, error) {
	if from == "" {
		from = s.now().Format(domain.DateLayout)
	} else if _, err := time.Parse(domain.DateLayout, from); err != nil {
		return nil, fmt.Errorf("%w: bad from %q", ErrValidation, from)
	}
	if _, err := s.apartments.GetByID(ctx, apartmentID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrApartmentNotFound
		}
		return nil, err
	}

	local, err := s.bookings.ListBlocked(ctx, apartmentID, from)
	if err != nil {
		return nil, err
	}
	external, err := s.external.GetBlocked(ctx, apartmentID, from)
	if err != nil {
		return nil, err
	}

	merged := make([]domain.BlockedRange, 0, len(local)+len(external))
	merged = append(merged, local...)
	merged = append(merged, external...)
	sort.Slice(merged, func(i, j int) bool {
		if merged[i].CheckIn != merged[j].CheckIn {
			return merged[i].CheckIn < merged[j].CheckIn
		}
		return merged[i].CheckOut < merged[j].CheckOut
	})
	return merged, nil
}
