package domain

import "time"

type SyncStatus string

const (
	SyncPending SyncStatus = "pending"
	SyncSuccess SyncStatus = "success"
	SyncError   SyncStatus = "error"
)

// IcsSource is one configured external calendar feed. At most one source may
// exist per (apartment, source name) pair; the store enforces this.
// Status fields are mutated only by the sync orchestrator.
type IcsSource struct {
	ID           string     `json:"id"`
	ApartmentID  string     `json:"apartment_id"`
	SourceName   string     `json:"source_name"`
	IcsURL       string     `json:"ics_url"`
	IsActive     bool       `json:"is_active"`
	LastSync     *time.Time `json:"last_sync,omitempty"`
	SyncStatus   SyncStatus `json:"sync_status"`
	ErrorMessage string     `json:"error_message,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
