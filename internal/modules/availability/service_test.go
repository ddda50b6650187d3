package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/OlegRadinuk/lifestyle-crimea/internal/domain"
	"github.com/OlegRadinuk/lifestyle-crimea/internal/repository"
)

type mockApartments struct{ mock.Mock }

func (m *mockApartments) GetByID(ctx context.Context, id string) (*domain.Apartment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Apartment), args.Error(1)
}

type mockBookings struct{ mock.Mock }

func (m *mockBookings) CountConflicts(ctx context.Context, apartmentID string, rng domain.DateRange) (int64, error) {
	args := m.Called(ctx, apartmentID, rng)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockBookings) ListBlocked(ctx context.Context, apartmentID, from string) ([]domain.BlockedRange, error) {
	args := m.Called(ctx, apartmentID, from)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BlockedRange), args.Error(1)
}

type mockExternal struct{ mock.Mock }

func (m *mockExternal) GetBlocked(ctx context.Context, apartmentID, from string) ([]domain.BlockedRange, error) {
	args := m.Called(ctx, apartmentID, from)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BlockedRange), args.Error(1)
}

func newTestService() (*Service, *mockApartments, *mockBookings, *mockExternal) {
	apts := new(mockApartments)
	bookings := new(mockBookings)
	external := new(mockExternal)
	svc := NewService(apts, bookings, external)
	svc.now = func() time.Time {
		return time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	}
	return svc, apts, bookings, external
}

func TestIsAvailable_NoConflicts(t *testing.T) {
	svc, apts, bookings, _ := newTestService()

	rng := domain.DateRange{CheckIn: "2026-07-01", CheckOut: "2026-07-05"}
	apts.On("GetByID", mock.Anything, "apt-1").Return(&domain.Apartment{ID: "apt-1"}, nil)
	bookings.On("CountConflicts", mock.Anything, "apt-1", rng).Return(int64(0), nil)

	ok, err := svc.IsAvailable(context.Background(), "apt-1", rng)

	require.NoError(t, err)
	assert.True(t, ok)
	bookings.AssertExpectations(t)
}

func TestIsAvailable_Conflict(t *testing.T) {
	svc, apts, bookings, _ := newTestService()

	rng := domain.DateRange{CheckIn: "2026-07-01", CheckOut: "2026-07-05"}
	apts.On("GetByID", mock.Anything, "apt-1").Return(&domain.Apartment{ID: "apt-1"}, nil)
	bookings.On("CountConflicts", mock.Anything, "apt-1", rng).Return(int64(2), nil)

	ok, err := svc.IsAvailable(context.Background(), "apt-1", rng)

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIsAvailable_InvalidRange(t *testing.T) {
	svc, _, bookings, _ := newTestService()

	cases := []domain.DateRange{
		{CheckIn: "2026-07-05", CheckOut: "2026-07-01"},
		{CheckIn: "2026-07-01", CheckOut: "2026-07-01"},
		{CheckIn: "not-a-date", CheckOut: "2026-07-01"},
		{CheckIn: "", CheckOut: ""},
	}
	for _, rng := range cases {
		_, err := svc.IsAvailable(context.Background(), "apt-1", rng)
		assert.ErrorIs(t, err, ErrValidation, "range %+v", rng)
	}
	bookings.AssertNotCalled(t, "CountConflicts", mock.Anything, mock.Anything, mock.Anything)
}

func TestIsAvailable_ApartmentMissing(t *testing.T) {
	svc, apts, _, _ := newTestService()

	apts.On("GetByID", mock.Anything, "ghost").Return(nil, repository.ErrNotFound)

	_, err := svc.IsAvailable(context.Background(), "ghost", domain.DateRange{CheckIn: "2026-07-01", CheckOut: "2026-07-05"})

	assert.ErrorIs(t, err, ErrApartmentNotFound)
}

func TestBlockedRanges_MergesAndSorts(t *testing.T) {
	svc, apts, bookings, external := newTestService()

	apts.On("GetByID", mock.Anything, "apt-1").Return(&domain.Apartment{ID: "apt-1"}, nil)
	bookings.On("ListBlocked", mock.Anything, "apt-1", "2026-06-01").Return([]domain.BlockedRange{
		{DateRange: domain.DateRange{CheckIn: "2026-07-10", CheckOut: "2026-07-12"}, Source: "booking"},
	}, nil)
	external.On("GetBlocked", mock.Anything, "apt-1", "2026-06-01").Return([]domain.BlockedRange{
		{DateRange: domain.DateRange{CheckIn: "2026-06-20", CheckOut: "2026-06-25"}, Source: "airbnb"},
		{DateRange: domain.DateRange{CheckIn: "2026-08-01", CheckOut: "2026-08-03"}, Source: "avito"},
	}, nil)

	blocked, err := svc.BlockedRanges(context.Background(), "apt-1", "")

	require.NoError(t, err)
	require.Len(t, blocked, 3)
	assert.Equal(t, "airbnb", blocked[0].Source)
	assert.Equal(t, "booking", blocked[1].Source)
	assert.Equal(t, "avito", blocked[2].Source)
}

func TestBlockedRanges_BadFrom(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.BlockedRanges(context.Background(), "apt-1", "July 1")

	assert.ErrorIs(t, err, ErrValidation)
}
