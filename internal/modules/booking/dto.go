package booking

// CreateBookingRequest is the public website form. Dates are calendar days,
// half-open: check_out is the departure day and stays free for the next guest.
type CreateBookingRequest struct {
	ApartmentID string `json:"apartment_id" binding:"required"`
	CheckIn     string `json:"check_in" binding:"required,isodate"`
	CheckOut    string `json:"check_out" binding:"required,isodate"`
	GuestsCount int    `json:"guests_count" binding:"required,min=1"`
	GuestName   string `json:"guest_name" binding:"required"`
	GuestPhone  string `json:"guest_phone" binding:"required"`
	GuestEmail  string `json:"guest_email" binding:"omitempty,email"`
	Notes       string `json:"notes"`
}

// CreateManualRequest lets a manager record an offline reservation, with an
// explicit status and price override.
type CreateManualRequest struct {
	ApartmentID string `json:"apartment_id" binding:"required"`
	CheckIn     string `json:"check_in" binding:"required,isodate"`
	CheckOut    string `json:"check_out" binding:"required,isodate"`
	GuestsCount int    `json:"guests_count" binding:"required,min=1"`
	GuestName   string `json:"guest_name"`
	GuestPhone  string `json:"guest_phone"`
	GuestEmail  string `json:"guest_email" binding:"omitempty,email"`
	TotalPrice  *int64 `json:"total_price" binding:"omitempty,min=0"`
	Status      string `json:"status"`
	Notes       string `json:"notes"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed cancelled"`
}

type UpdatePrepaymentRequest struct {
	PrepaidAmount int64 `json:"prepaid_amount" binding:"min=0"`
}

type UpdateNotesRequest struct {
	Notes string `json:"notes"`
}
