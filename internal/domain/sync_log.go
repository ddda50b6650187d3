package domain

import "time"

type SyncAction string

const (
	SyncActionImport SyncAction = "import"
	SyncActionExport SyncAction = "export"
)

// SyncLog is an append-only audit record of one sync attempt. Written once,
// never updated.
type SyncLog struct {
	ID           string     `json:"id"`
	SourceName   string     `json:"source_name"`
	ApartmentID  string     `json:"apartment_id,omitempty"`
	Action       SyncAction `json:"action"`
	Status       SyncStatus `json:"status"`
	EventsCount  int        `json:"events_count"`
	ErrorMessage string     `json:"error_message,omitempty"`
	DurationMs   int64      `json:"duration_ms"`
	CreatedAt    time.Time  `json:"created_at"`
}
