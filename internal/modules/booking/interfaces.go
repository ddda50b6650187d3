package booking

import (
	"context"

	"github.com/OlegRadinuk/lifestyle-crimea/internal/domain"
	"github.com/OlegRadinuk/lifestyle-crimea/internal/repository"
)

type BookingRepository interface {
	CreateWithAvailabilityCheck(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	List(ctx context.Context, f repository.BookingFilter) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus, actor string) error
	UpdatePrepaidAmount(ctx context.Context, id string, amount int64, actor string) error
	UpdateNotes(ctx context.Context, id string, notes string) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context, apartmentID, today string) (*repository.BookingStats, error)
}

type ApartmentRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Apartment, error)
}

// Notifier is best-effort; the service never propagates its errors.
type Notifier interface {
	NotifyBookingCreated(ctx context.Context, b *domain.Booking, apartmentTitle string) error
}
