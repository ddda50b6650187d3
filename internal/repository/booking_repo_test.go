package repository

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/OlegRadinuk/lifestyle-crimea/internal/database"
	"github.com/OlegRadinuk/lifestyle-crimea/internal/domain"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(filepath.Join(t.TempDir(), "repo_test.sqlite"))
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	return db
}

func newBooking(apartmentID, checkIn, checkOut string, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ApartmentID: apartmentID,
		GuestName:   "Тест Гость",
		GuestPhone:  "+7 978 000-00-00",
		Dates:       domain.DateRange{CheckIn: checkIn, CheckOut: checkOut},
		GuestsCount: 2,
		TotalPrice:  100000,
		Status:      status,
		Source:      domain.SourceWebsite,
	}
}

func TestCreateWithAvailabilityCheck_RejectsOverlap(t *testing.T) {
	db := setupDB(t)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.CreateWithAvailabilityCheck(ctx,
		newBooking("apt-1", "2026-07-10", "2026-07-15", domain.BookingConfirmed)))

	err := repo.CreateWithAvailabilityCheck(ctx,
		newBooking("apt-1", "2026-07-12", "2026-07-18", domain.BookingPending))
	assert.ErrorIs(t, err, ErrDatesUnavailable)

	// Another apartment is unaffected.
	assert.NoError(t, repo.CreateWithAvailabilityCheck(ctx,
		newBooking("apt-2", "2026-07-12", "2026-07-18", domain.BookingPending)))
}

func TestCreateWithAvailabilityCheck_HalfOpenBoundary(t *testing.T) {
	db := setupDB(t)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.CreateWithAvailabilityCheck(ctx,
		newBooking("apt-1", "2026-07-10", "2026-07-15", domain.BookingConfirmed)))

	// Back-to-back on both sides: checkout day is free for the next guest.
	assert.NoError(t, repo.CreateWithAvailabilityCheck(ctx,
		newBooking("apt-1", "2026-07-15", "2026-07-20", domain.BookingConfirmed)))
	assert.NoError(t, repo.CreateWithAvailabilityCheck(ctx,
		newBooking("apt-1", "2026-07-05", "2026-07-10", domain.BookingConfirmed)))
}

func TestCreateWithAvailabilityCheck_CancelledDoesNotBlock(t *testing.T) {
	db := setupDB(t)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	first := newBooking("apt-1", "2026-07-10", "2026-07-15", domain.BookingConfirmed)
	require.NoError(t, repo.CreateWithAvailabilityCheck(ctx, first))
	require.NoError(t, repo.UpdateStatus(ctx, first.ID, domain.BookingCancelled, "admin"))

	// The freed range is bookable again.
	assert.NoError(t, repo.CreateWithAvailabilityCheck(ctx,
		newBooking("apt-1", "2026-07-10", "2026-07-15", domain.BookingPending)))
}

func TestCreateWithAvailabilityCheck_ExternalBookingBlocks(t *testing.T) {
	db := setupDB(t)
	repo := NewBookingRepository(db)
	external := NewExternalBookingRepository(db)
	ctx := context.Background()

	require.NoError(t, external.ReplaceFuture(ctx, "apt-1", "airbnb", []domain.ExternalBooking{
		{Dates: domain.DateRange{CheckIn: "2026-07-10", CheckOut: "2026-07-15"}},
	}, "2026-07-01"))

	err := repo.CreateWithAvailabilityCheck(ctx,
		newBooking("apt-1", "2026-07-12", "2026-07-18", domain.BookingPending))
	assert.ErrorIs(t, err, ErrDatesUnavailable)

	assert.NoError(t, repo.CreateWithAvailabilityCheck(ctx,
		newBooking("apt-1", "2026-07-15", "2026-07-20", domain.BookingPending)))
}

func TestCreateWithAvailabilityCheck_ConcurrentExactlyOneWins(t *testing.T) {
	db := setupDB(t)
	repo := NewBookingRepository(db)

	const attempts = 8
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.CreateWithAvailabilityCheck(context.Background(),
				newBooking("apt-1", "2026-07-10", "2026-07-15", domain.BookingConfirmed))
		}(i)
	}
	wg.Wait()

	var won, lost int
	for _, err := range errs {
		switch {
		case err == nil:
			won++
		case assert.ErrorIs(t, err, ErrDatesUnavailable):
			lost++
		}
	}
	assert.Equal(t, 1, won)
	assert.Equal(t, attempts-1, lost)

	bookings, err := repo.List(context.Background(), BookingFilter{ApartmentID: "apt-1"})
	require.NoError(t, err)
	assert.Len(t, bookings, 1)
}

func TestListBlocked_ExcludesCancelledAndPast(t *testing.T) {
	db := setupDB(t)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.CreateWithAvailabilityCheck(ctx,
		newBooking("apt-1", "2026-05-01", "2026-05-05", domain.BookingConfirmed)))
	require.NoError(t, repo.CreateWithAvailabilityCheck(ctx,
		newBooking("apt-1", "2026-07-10", "2026-07-15", domain.BookingConfirmed)))
	cancelled := newBooking("apt-1", "2026-08-01", "2026-08-05", domain.BookingConfirmed)
	require.NoError(t, repo.CreateWithAvailabilityCheck(ctx, cancelled))
	require.NoError(t, repo.UpdateStatus(ctx, cancelled.ID, domain.BookingCancelled, "admin"))

	blocked, err := repo.ListBlocked(ctx, "apt-1", "2026-06-01")
	require.NoError(t, err)
	require.Len(t, blocked, 1)
	assert.Equal(t, "2026-07-10", blocked[0].CheckIn)
	assert.Equal(t, "booking", blocked[0].Source)
}

func TestStats(t *testing.T) {
	db := setupDB(t)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.CreateWithAvailabilityCheck(ctx,
		newBooking("apt-1", "2026-07-10", "2026-07-15", domain.BookingConfirmed)))
	require.NoError(t, repo.CreateWithAvailabilityCheck(ctx,
		newBooking("apt-1", "2026-08-01", "2026-08-05", domain.BookingPending)))
	cancelled := newBooking("apt-1", "2026-09-01", "2026-09-05", domain.BookingConfirmed)
	require.NoError(t, repo.CreateWithAvailabilityCheck(ctx, cancelled))
	require.NoError(t, repo.UpdateStatus(ctx, cancelled.ID, domain.BookingCancelled, "admin"))

	stats, err := repo.Stats(ctx, "apt-1", "2026-07-20")
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(1), stats.Confirmed)
	assert.Equal(t, int64(1), stats.Cancelled)
	assert.Equal(t, int64(1), stats.Upcoming)
	assert.Equal(t, int64(200000), stats.Revenue)
}
