package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

type BookingSource string

const (
	SourceWebsite BookingSource = "website"
	SourceManual  BookingSource = "manual"
)

type PrepaidStatus string

const (
	PrepaidNone    PrepaidStatus = "none"
	PrepaidPartial PrepaidStatus = "partial"
	PrepaidFull    PrepaidStatus = "full"
)

// Booking is a local reservation created through the public site or by a
// manager. Only pending and confirmed bookings occupy availability.
type Booking struct {
	ID            string        `json:"id"`
	ApartmentID   string        `json:"apartment_id"`
	GuestName     string        `json:"guest_name,omitempty"`
	GuestPhone    string        `json:"guest_phone,omitempty"`
	GuestEmail    string        `json:"guest_email,omitempty"`
	Dates         DateRange     `json:"dates"`
	GuestsCount   int           `json:"guests_count"`
	TotalPrice    int64         `json:"total_price"`
	PrepaidAmount int64         `json:"prepaid_amount"`
	Status        BookingStatus `json:"status"`
	Source        BookingSource `json:"source"`
	Notes         string        `json:"notes,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// BlocksAvailability reports whether a booking in this status occupies its
// date range. Cancelled bookings never block.
func (s BookingStatus) BlocksAvailability() bool {
	return s == BookingPending || s == BookingConfirmed
}

// CanTransitionTo encodes the admin-initiated status machine:
// pending→confirmed, pending→cancelled, confirmed→cancelled. Cancelled is
// terminal.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case BookingPending:
		return next == BookingConfirmed || next == BookingCancelled
	case BookingConfirmed:
		return next == BookingCancelled
	default:
		return false
	}
}

func (s BookingStatus) Valid() bool {
	return s == BookingPending || s == BookingConfirmed || s == BookingCancelled
}

// PrepaidStatus derives the prepayment state from integer amounts. Full is
// reached at prepaid_amount >= total_price; no float comparison is involved.
func (b *Booking) PrepaidStatus() PrepaidStatus {
	switch {
	case b.PrepaidAmount <= 0:
		return PrepaidNone
	case b.PrepaidAmount >= b.TotalPrice:
		return PrepaidFull
	default:
		return PrepaidPartial
	}
}
