package sync

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/OlegRadinuk/lifestyle-crimea/internal/domain"
	"github.com/OlegRadinuk/lifestyle-crimea/internal/repository"
)

var ErrExportTokenNotFound = errors.New("export token not found")

type ExportTokenRepository interface {
	Mint(ctx context.Context, apartmentID string) (*domain.ExportToken, error)
	Resolve(ctx context.Context, token string) (string, error)
}

type BookingExportStore interface {
	ListForExport(ctx context.Context, apartmentID, from string) ([]domain.DateRange, error)
}

// ExportService serves the outbound ICS feed. OTAs poll an opaque
// token-scoped URL; the token maps to one apartment and never expires.
type ExportService struct {
	tokens   ExportTokenRepository
	bookings BookingExportStore
	logs     SyncLogRepository

	now func() time.Time
}

func NewExportService(tokens ExportTokenRepository, bookings BookingExportStore, logs SyncLogRepository) *ExportService {
	return &ExportService{
		tokens:   tokens,
		bookings: bookings,
		logs:     logs,
		now:      time.Now,
	}
}

func (s *ExportService) MintToken(ctx context.Context, apartmentID string) (*domain.ExportToken, error) {
	return s.tokens.Mint(ctx, apartmentID)
}

// Calendar resolves a token and renders the apartment's confirmed stays as
// ICS. Every poll leaves an audit row so operators can see which OTAs are
// actually pulling the feed.
func (s *ExportService) Calendar(ctx context.Context, token string) (string, error) {
	apartmentID, err := s.tokens.Resolve(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrExportTokenNotFound
		}
		return "", err
	}

	started := s.now()
	today := started.Format(domain.DateLayout)

	stays, err := s.bookings.ListForExport(ctx, apartmentID, today)
	if err != nil {
		return "", err
	}

	body, err := RenderCalendar(apartmentID, stays)
	if err != nil {
		return "", err
	}

	entry := &domain.SyncLog{
		SourceName:  "export",
		ApartmentID: apartmentID,
		Action:      domain.SyncActionExport,
		Status:      domain.SyncSuccess,
		EventsCount: len(stays),
		DurationMs:  s.now().Sub(started).Milliseconds(),
	}
	if err := s.logs.Append(ctx, entry); err != nil {
		log.Printf("export: failed to append sync log for %s: %v", apartmentID, err)
	}

	return body, nil
}
