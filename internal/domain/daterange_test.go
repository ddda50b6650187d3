package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverlaps(t *testing.T) {
	base := DateRange{CheckIn: "2026-07-10", CheckOut: "2026-07-15"}

	cases := []struct {
		name    string
		other   DateRange
		overlap bool
	}{
		{"identical", DateRange{"2026-07-10", "2026-07-15"}, true},
		{"contained", DateRange{"2026-07-11", "2026-07-13"}, true},
		{"containing", DateRange{"2026-07-01", "2026-07-31"}, true},
		{"left edge overlap", DateRange{"2026-07-08", "2026-07-11"}, true},
		{"right edge overlap", DateRange{"2026-07-14", "2026-07-20"}, true},
		{"checkout meets checkin", DateRange{"2026-07-05", "2026-07-10"}, false},
		{"checkin meets checkout", DateRange{"2026-07-15", "2026-07-20"}, false},
		{"fully before", DateRange{"2026-07-01", "2026-07-05"}, false},
		{"fully after", DateRange{"2026-07-20", "2026-07-25"}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.overlap, base.Overlaps(tc.other))
			// Overlap is symmetric.
			assert.Equal(t, tc.overlap, tc.other.Overlaps(base))
		})
	}
}

func TestNights(t *testing.T) {
	assert.Equal(t, 4, DateRange{"2026-07-01", "2026-07-05"}.Nights())
	assert.Equal(t, 1, DateRange{"2026-07-01", "2026-07-02"}.Nights())
	// Month and year boundaries.
	assert.Equal(t, 2, DateRange{"2026-07-31", "2026-08-02"}.Nights())
	assert.Equal(t, 2, DateRange{"2026-12-31", "2027-01-02"}.Nights())
	// Degenerate input clamps instead of going negative.
	assert.Equal(t, 1, DateRange{"2026-07-05", "2026-07-01"}.Nights())
	assert.Equal(t, 1, DateRange{"garbage", "2026-07-01"}.Nights())
}

func TestValidate(t *testing.T) {
	assert.NoError(t, DateRange{"2026-07-01", "2026-07-05"}.Validate())

	bad := []DateRange{
		{"2026-07-05", "2026-07-01"},
		{"2026-07-01", "2026-07-01"},
		{"2026-7-1", "2026-07-05"},
		{"tomorrow", "2026-07-05"},
		{"", ""},
	}
	for _, rng := range bad {
		assert.ErrorIs(t, rng.Validate(), ErrInvalidRange, "range %+v", rng)
	}
}

func TestBookingStatusMachine(t *testing.T) {
	assert.True(t, BookingPending.BlocksAvailability())
	assert.True(t, BookingConfirmed.BlocksAvailability())
	assert.False(t, BookingCancelled.BlocksAvailability())

	assert.True(t, BookingPending.CanTransitionTo(BookingConfirmed))
	assert.True(t, BookingPending.CanTransitionTo(BookingCancelled))
	assert.True(t, BookingConfirmed.CanTransitionTo(BookingCancelled))
	assert.False(t, BookingConfirmed.CanTransitionTo(BookingPending))
	assert.False(t, BookingCancelled.CanTransitionTo(BookingPending))
	assert.False(t, BookingCancelled.CanTransitionTo(BookingConfirmed))
}

func TestPrepaidStatus(t *testing.T) {
	b := &Booking{TotalPrice: 100000}

	b.PrepaidAmount = 0
	assert.Equal(t, PrepaidNone, b.PrepaidStatus())

	b.PrepaidAmount = 50000
	assert.Equal(t, PrepaidPartial, b.PrepaidStatus())

	b.PrepaidAmount = 100000
	assert.Equal(t, PrepaidFull, b.PrepaidStatus())
}
