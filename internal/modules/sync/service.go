package sync

import (
	"context"
	"log"
	"time"

	"github.com/OlegRadinuk/lifestyle-crimea/internal/domain"
	"github.com/OlegRadinuk/lifestyle-crimea/internal/pkg/lock"
	"github.com/OlegRadinuk/lifestyle-crimea/internal/repository"
)

// SourceResult is the per-source outcome of a sync pass, returned to the
// admin caller and broadcast on the event hub.
type SourceResult struct {
	SourceID    string `json:"source_id"`
	SourceName  string `json:"source"`
	ApartmentID string `json:"apartment_id"`
	Status      string `json:"status"`
	Count       int    `json:"count,omitempty"`
	Error       string `json:"error,omitempty"`
	DurationMs  int64  `json:"duration_ms"`
}

type Service struct {
	sources SourceRepository
	store   ExternalBookingStore
	logs    SyncLogRepository
	fetcher FeedFetcher
	hub     *Hub

	locks       *lock.Keyed
	syncTimeout time.Duration
	now         func() time.Time
}

func NewService(
	sources SourceRepository,
	store ExternalBookingStore,
	logs SyncLogRepository,
	fetcher FeedFetcher,
	hub *Hub,
	syncTimeout time.Duration,
) *Service {
	if syncTimeout <= 0 {
		syncTimeout = 30 * time.Second
	}
	return &Service{
		sources:     sources,
		store:       store,
		logs:        logs,
		fetcher:     fetcher,
		hub:         hub,
		locks:       lock.NewKeyed(),
		syncTimeout: syncTimeout,
		now:         time.Now,
	}
}

// SyncOne runs one fetch→parse→replace cycle for a single source. It never
// returns an error to the caller: any failure is captured in the result,
// recorded in the source row and the sync log, and the store keeps its last
// good snapshot. A run for a pair that is already mid-sync is skipped.
func (s *Service) SyncOne(ctx context.Context, src domain.IcsSource) SourceResult {
	res := SourceResult{
		SourceID:    src.ID,
		SourceName:  src.SourceName,
		ApartmentID: src.ApartmentID,
	}

	unlock, ok := s.locks.TryLock(src.ApartmentID + "/" + src.SourceName)
	if !ok {
		res.Status = string(domain.SyncError)
		res.Error = ErrSyncInFlight.Error()
		return res
	}
	defer unlock()

	ctx, cancel := context.WithTimeout(ctx, s.syncTimeout)
	defer cancel()

	started := s.now()

	body, err := s.fetcher.Fetch(ctx, src.IcsURL)
	if err != nil {
		return s.fail(ctx, src, res, started, err)
	}

	events, err := ParseCalendar(body)
	if err != nil {
		return s.fail(ctx, src, res, started, err)
	}

	today := s.now().Format(domain.DateLayout)
	records := make([]domain.ExternalBooking, 0, len(events))
	for _, ev := range events {
		// The parser keeps past events; blocking only cares about
		// current-and-future stays.
		if ev.Dates.CheckOut < today {
			continue
		}
		records = append(records, domain.ExternalBooking{
			ApartmentID: src.ApartmentID,
			SourceName:  src.SourceName,
			ExternalID:  ev.UID,
			Dates:       ev.Dates,
			RawData:     ev.Raw,
		})
	}

	if err := s.store.ReplaceFuture(ctx, src.ApartmentID, src.SourceName, records, today); err != nil {
		return s.fail(ctx, src, res, started, err)
	}

	duration := s.now().Sub(started)
	res.Status = string(domain.SyncSuccess)
	res.Count = len(records)
	res.DurationMs = duration.Milliseconds()

	s.record(src, domain.SyncSuccess, "", len(records), duration)
	s.broadcast(res)
	return res
}

// fail records an error outcome without touching the external booking
// store: a broken feed degrades to last-known-good, never to empty.
func (s *Service) fail(ctx context.Context, src domain.IcsSource, res SourceResult, started time.Time, cause error) SourceResult {
	duration := s.now().Sub(started)
	res.Status = string(domain.SyncError)
	res.Error = cause.Error()
	res.DurationMs = duration.Milliseconds()

	log.Printf("sync error source=%s apartment=%s: %v", src.SourceName, src.ApartmentID, cause)
	s.record(src, domain.SyncError, cause.Error(), 0, duration)
	s.broadcast(res)
	return res
}

// record persists the status row and the audit log entry. Bookkeeping uses
// a fresh context so a cancelled sync still leaves a trace.
func (s *Service) record(src domain.IcsSource, status domain.SyncStatus, errMsg string, count int, duration time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.sources.UpdateSyncStatus(ctx, src.ID, status, errMsg); err != nil {
		log.Printf("sync: failed to update source status %s: %v", src.ID, err)
	}
	entry := &domain.SyncLog{
		SourceName:   src.SourceName,
		ApartmentID:  src.ApartmentID,
		Action:       domain.SyncActionImport,
		Status:       status,
		EventsCount:  count,
		ErrorMessage: errMsg,
		DurationMs:   duration.Milliseconds(),
	}
	if err := s.logs.Append(ctx, entry); err != nil {
		log.Printf("sync: failed to append sync log for %s: %v", src.SourceName, err)
	}
}

func (s *Service) broadcast(res SourceResult) {
	if s.hub != nil {
		s.hub.Broadcast(res)
	}
}

// SyncAll refreshes every active source matching the filter. Failure
// domains are isolated per source: one unreachable feed never aborts the
// rest of the pass, and there is no retry within a pass.
func (s *Service) SyncAll(ctx context.Context, f repository.SourceFilter) ([]SourceResult, error) {
	sources, err := s.sources.ListActive(ctx, f)
	if err != nil {
		return nil, err
	}

	results := make([]SourceResult, 0, len(sources))
	for _, src := range sources {
		if ctx.Err() != nil {
			return results, ctx.Err()
		}
		results = append(results, s.SyncOne(ctx, src))
	}
	return results, nil
}

// SyncByID resolves a source and runs SyncOne; used by the manual admin
// trigger.
func (s *Service) SyncByID(ctx context.Context, sourceID string) (SourceResult, error) {
	src, err := s.sources.GetByID(ctx, sourceID)
	if err != nil {
		return SourceResult{}, err
	}
	return s.SyncOne(ctx, *src), nil
}

// AddSource registers a feed for an apartment. The (apartment, source name)
// pair must be unique; duplicates surface repository.ErrDuplicateSource.
func (s *Service) AddSource(ctx context.Context, apartmentID, sourceName, icsURL string) (*domain.IcsSource, error) {
	src := &domain.IcsSource{
		ApartmentID: apartmentID,
		SourceName:  sourceName,
		IcsURL:      icsURL,
		IsActive:    true,
		SyncStatus:  domain.SyncPending,
	}
	if err := s.sources.Create(ctx, src); err != nil {
		return nil, err
	}
	return src, nil
}

func (s *Service) ListSources(ctx context.Context) ([]repository.SourceWithApartment, error) {
	return s.sources.ListAll(ctx)
}

func (s *Service) UpdateSource(ctx context.Context, id string, upd repository.SourceUpdate) error {
	return s.sources.Update(ctx, id, upd)
}

func (s *Service) DeleteSource(ctx context.Context, id string) error {
	return s.sources.Delete(ctx, id)
}

func (s *Service) Logs(ctx context.Context, limit int) ([]domain.SyncLog, error) {
	return s.logs.Latest(ctx, limit)
}
