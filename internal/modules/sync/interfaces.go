package sync

import (
	"context"

	"github.com/OlegRadinuk/lifestyle-crimea/internal/domain"
	"github.com/OlegRadinuk/lifestyle-crimea/internal/repository"
)

// SourceRepository is the slice of the ICS source store the orchestrator
// needs.
type SourceRepository interface {
	ListActive(ctx context.Context, f repository.SourceFilter) ([]domain.IcsSource, error)
	ListAll(ctx context.Context) ([]repository.SourceWithApartment, error)
	GetByID(ctx context.Context, id string) (*domain.IcsSource, error)
	Create(ctx context.Context, s *domain.IcsSource) error
	Update(ctx context.Context, id string, upd repository.SourceUpdate) error
	Delete(ctx context.Context, id string) error
	UpdateSyncStatus(ctx context.Context, id string, status domain.SyncStatus, errorMessage string) error
}

// ExternalBookingStore replaces and reads imported intervals.
type ExternalBookingStore interface {
	ReplaceFuture(ctx context.Context, apartmentID, sourceName string, records []domain.ExternalBooking, today string) error
}

type SyncLogRepository interface {
	Append(ctx context.Context, l *domain.SyncLog) error
	Latest(ctx context.Context, limit int) ([]domain.SyncLog, error)
}

// FeedFetcher downloads one ICS document. Implemented by Fetcher; tests
// substitute fakes.
type FeedFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}
