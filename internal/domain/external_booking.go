package domain

import "time"

// ExternalBooking is one occupied interval imported from an external feed.
// The whole set for a (apartment, source) pair is replaced on every sync;
// rows carry no identity beyond the (often unreliable) external UID.
type ExternalBooking struct {
	ID          string    `json:"id"`
	ApartmentID string    `json:"apartment_id"`
	SourceName  string    `json:"source_name"`
	ExternalID  string    `json:"external_id,omitempty"`
	Dates       DateRange `json:"dates"`
	RawData     string    `json:"raw_data,omitempty"`
	ImportedAt  time.Time `json:"imported_at"`
}
