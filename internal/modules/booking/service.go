package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/OlegRadinuk/lifestyle-crimea/internal/domain"
	"github.com/OlegRadinuk/lifestyle-crimea/internal/repository"
)

// Service owns the write side of reservations. All availability enforcement
// happens inside the repository transaction; the service validates inputs,
// prices the stay and maps storage errors to API errors.
type Service struct {
	bookings   BookingRepository
	apartments ApartmentRepository
	notifier   Notifier

	now func() time.Time
}

func NewService(bookings BookingRepository, apartments ApartmentRepository, notifier Notifier) *Service {
	return &Service{
		bookings:   bookings,
		apartments: apartments,
		notifier:   notifier,
		now:        time.Now,
	}
}

func (s *Service) loadApartment(ctx context.Context, id string) (*domain.Apartment, error) {
	apt, err := s.apartments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrApartmentNotFound
		}
		return nil, err
	}
	return apt, nil
}

// CreateBooking handles the public website flow: a new pending reservation,
// priced at base rate times nights, inserted only if the range is free.
func (s *Service) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	rng := domain.DateRange{CheckIn: req.CheckIn, CheckOut: req.CheckOut}
	if err := rng.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	apt, err := s.loadApartment(ctx, req.ApartmentID)
	if err != nil {
		return nil, err
	}
	if !apt.IsActive {
		return nil, ErrApartmentNotFound
	}
	if req.GuestsCount < 1 || req.GuestsCount > apt.MaxGuests {
		return nil, fmt.Errorf("%w: guests_count must be between 1 and %d", ErrValidation, apt.MaxGuests)
	}

	b := &domain.Booking{
		ApartmentID: apt.ID,
		GuestName:   req.GuestName,
		GuestPhone:  req.GuestPhone,
		GuestEmail:  req.GuestEmail,
		Dates:       rng,
		GuestsCount: req.GuestsCount,
		TotalPrice:  apt.PriceBase * int64(rng.Nights()),
		Status:      domain.BookingPending,
		Source:      domain.SourceWebsite,
		Notes:       req.Notes,
	}

	if err := s.bookings.CreateWithAvailabilityCheck(ctx, b); err != nil {
		if errors.Is(err, repository.ErrDatesUnavailable) {
			return nil, ErrDatesUnavailable
		}
		return nil, err
	}

	if s.notifier != nil {
		// Fire and forget; a failed message must not fail the booking.
		go func(b domain.Booking, title string) {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			_ = s.notifier.NotifyBookingCreated(ctx, &b, title)
		}(*b, apt.Title)
	}

	return b, nil
}

// CreateManualBooking records an offline reservation entered by a manager.
// Status defaults to confirmed; a cancelled manual entry skips the
// availability check because it never blocks dates.
func (s *Service) CreateManualBooking(ctx context.Context, req CreateManualRequest, actor string) (*domain.Booking, error) {
	rng := domain.DateRange{CheckIn: req.CheckIn, CheckOut: req.CheckOut}
	if err := rng.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	status := domain.BookingConfirmed
	if req.Status != "" {
		status = domain.BookingStatus(req.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, req.Status)
		}
	}

	apt, err := s.loadApartment(ctx, req.ApartmentID)
	if err != nil {
		return nil, err
	}
	if req.GuestsCount < 1 || req.GuestsCount > apt.MaxGuests {
		return nil, fmt.Errorf("%w: guests_count must be between 1 and %d", ErrValidation, apt.MaxGuests)
	}

	total := apt.PriceBase * int64(rng.Nights())
	if req.TotalPrice != nil {
		total = *req.TotalPrice
	}

	b := &domain.Booking{
		ApartmentID: apt.ID,
		GuestName:   req.GuestName,
		GuestPhone:  req.GuestPhone,
		GuestEmail:  req.GuestEmail,
		Dates:       rng,
		GuestsCount: req.GuestsCount,
		TotalPrice:  total,
		Status:      status,
		Source:      domain.SourceManual,
		Notes:       req.Notes,
	}

	if err := s.bookings.CreateWithAvailabilityCheck(ctx, b); err != nil {
		if errors.Is(err, repository.ErrDatesUnavailable) {
			return nil, ErrDatesUnavailable
		}
		return nil, err
	}
	return b, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *Service) List(ctx context.Context, f repository.BookingFilter) ([]domain.Booking, error) {
	return s.bookings.List(ctx, f)
}

// UpdateStatus applies the admin status machine. Cancelling frees the dates
// immediately: cancelled rows are excluded from every conflict query.
func (s *Service) UpdateStatus(ctx context.Context, id string, next domain.BookingStatus, actor string) (*domain.Booking, error) {
	if !next.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, next)
	}

	current, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, current.Status, next)
	}

	if err := s.bookings.UpdateStatus(ctx, id, next, actor); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	current.Status = next
	return current, nil
}

// UpdatePrepayment records a received prepayment. The amount may not exceed
// the total price.
func (s *Service) UpdatePrepayment(ctx context.Context, id string, amount int64, actor string) (*domain.Booking, error) {
	if amount < 0 {
		return nil, fmt.Errorf("%w: prepaid_amount must not be negative", ErrValidation)
	}

	current, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if amount > current.TotalPrice {
		return nil, fmt.Errorf("%w: prepaid_amount exceeds total price", ErrValidation)
	}

	if err := s.bookings.UpdatePrepaidAmount(ctx, id, amount, actor); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	current.PrepaidAmount = amount
	return current, nil
}

func (s *Service) UpdateNotes(ctx context.Context, id, notes string) error {
	if err := s.bookings.UpdateNotes(ctx, id, notes); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrBookingNotFound
		}
		return err
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.bookings.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrBookingNotFound
		}
		return err
	}
	return nil
}

func (s *Service) Stats(ctx context.Context, apartmentID string) (*repository.BookingStats, error) {
	today := s.now().Format(domain.DateLayout)
	return s.bookings.Stats(ctx, apartmentID, today)
}
