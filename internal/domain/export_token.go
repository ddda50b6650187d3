package domain

import "time"

// ExportToken grants an OTA read access to one apartment's outbound ICS
// calendar. Tokens are long-lived; minting a new one does not revoke older
// tokens.
type ExportToken struct {
	ID           string     `json:"id"`
	ApartmentID  string     `json:"apartment_id"`
	Token        string     `json:"token"`
	CreatedAt    time.Time  `json:"created_at"`
	LastAccessed *time.Time `json:"last_accessed,omitempty"`
}
