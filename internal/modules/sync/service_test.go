package sync

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OlegRadinuk/lifestyle-crimea/internal/database"
	"github.com/OlegRadinuk/lifestyle-crimea/internal/domain"
	"github.com/OlegRadinuk/lifestyle-crimea/internal/repository"
)

type syncFixture struct {
	service  *Service
	sources  *repository.IcsSourceRepository
	external *repository.ExternalBookingRepository
	logs     *repository.SyncLogRepository
}

func newSyncFixture(t *testing.T) *syncFixture {
	t.Helper()

	db, err := database.Connect(filepath.Join(t.TempDir(), "sync_test.sqlite"))
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(db))

	sources := repository.NewIcsSourceRepository(db)
	external := repository.NewExternalBookingRepository(db)
	logs := repository.NewSyncLogRepository(db)
	fetcher := NewFetcher(5 * time.Second)

	return &syncFixture{
		service:  NewService(sources, external, logs, fetcher, nil, 10*time.Second),
		sources:  sources,
		external: external,
		logs:     logs,
	}
}

func feedServer(t *testing.T, body string, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func feedWith(ranges ...domain.DateRange) string {
	body := "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:-//Test//EN\r\n"
	for i, r := range ranges {
		start, _ := time.Parse(domain.DateLayout, r.CheckIn)
		end, _ := time.Parse(domain.DateLayout, r.CheckOut)
		body += fmt.Sprintf(
			"BEGIN:VEVENT\r\nDTSTART;VALUE=DATE:%s\r\nDTEND;VALUE=DATE:%s\r\nUID:ev-%d@test\r\nEND:VEVENT\r\n",
			start.Format("20060102"), end.Format("20060102"), i,
		)
	}
	return body + "END:VCALENDAR\r\n"
}

// future returns a date n days from now in the storage layout.
func future(n int) string {
	return time.Now().AddDate(0, 0, n).Format(domain.DateLayout)
}

func (f *syncFixture) addSource(t *testing.T, apartmentID, name, url string) domain.IcsSource {
	t.Helper()
	src, err := f.service.AddSource(context.Background(), apartmentID, name, url)
	require.NoError(t, err)
	return *src
}

func TestSyncOne_ImportsFutureEvents(t *testing.T) {
	f := newSyncFixture(t)
	srv := feedServer(t, feedWith(
		domain.DateRange{CheckIn: future(10), CheckOut: future(14)},
		domain.DateRange{CheckIn: future(30), CheckOut: future(33)},
	), http.StatusOK)
	src := f.addSource(t, "apt-1", "airbnb", srv.URL)

	res := f.service.SyncOne(context.Background(), src)

	assert.Equal(t, string(domain.SyncSuccess), res.Status)
	assert.Equal(t, 2, res.Count)

	blocked, err := f.external.GetBlocked(context.Background(), "apt-1", future(0))
	require.NoError(t, err)
	require.Len(t, blocked, 2)
	assert.Equal(t, "airbnb", blocked[0].Source)

	updated, err := f.sources.GetByID(context.Background(), src.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SyncSuccess, updated.SyncStatus)
	assert.NotNil(t, updated.LastSync)
}

func TestSyncOne_FiltersPastEvents(t *testing.T) {
	f := newSyncFixture(t)
	srv := feedServer(t, feedWith(
		domain.DateRange{CheckIn: future(-20), CheckOut: future(-15)},
		domain.DateRange{CheckIn: future(5), CheckOut: future(8)},
	), http.StatusOK)
	src := f.addSource(t, "apt-1", "airbnb", srv.URL)

	res := f.service.SyncOne(context.Background(), src)

	assert.Equal(t, string(domain.SyncSuccess), res.Status)
	assert.Equal(t, 1, res.Count)
}

func TestSyncOne_ReplaceNotMerge(t *testing.T) {
	f := newSyncFixture(t)

	first := feedServer(t, feedWith(
		domain.DateRange{CheckIn: future(10), CheckOut: future(14)},
		domain.DateRange{CheckIn: future(20), CheckOut: future(22)},
	), http.StatusOK)
	src := f.addSource(t, "apt-1", "airbnb", first.URL)

	res := f.service.SyncOne(context.Background(), src)
	require.Equal(t, 2, res.Count)

	// The guest cancelled on the OTA side; the next snapshot has one stay.
	second := feedServer(t, feedWith(
		domain.DateRange{CheckIn: future(20), CheckOut: future(22)},
	), http.StatusOK)
	require.NoError(t, f.sources.Update(context.Background(), src.ID, repository.SourceUpdate{IcsURL: &second.URL}))
	src.IcsURL = second.URL

	res = f.service.SyncOne(context.Background(), src)
	require.Equal(t, 1, res.Count)

	blocked, err := f.external.GetBlocked(context.Background(), "apt-1", future(0))
	require.NoError(t, err)
	require.Len(t, blocked, 1)
	assert.Equal(t, future(20), blocked[0].CheckIn)
}

func TestSyncOne_Idempotent(t *testing.T) {
	f := newSyncFixture(t)
	srv := feedServer(t, feedWith(
		domain.DateRange{CheckIn: future(10), CheckOut: future(14)},
	), http.StatusOK)
	src := f.addSource(t, "apt-1", "airbnb", srv.URL)

	for i := 0; i < 3; i++ {
		res := f.service.SyncOne(context.Background(), src)
		require.Equal(t, string(domain.SyncSuccess), res.Status)
	}

	records, err := f.external.ListBySource(context.Background(), "apt-1", "airbnb")
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestSyncOne_ErrorKeepsLastGoodSnapshot(t *testing.T) {
	f := newSyncFixture(t)
	good := feedServer(t, feedWith(
		domain.DateRange{CheckIn: future(10), CheckOut: future(14)},
	), http.StatusOK)
	src := f.addSource(t, "apt-1", "airbnb", good.URL)

	res := f.service.SyncOne(context.Background(), src)
	require.Equal(t, string(domain.SyncSuccess), res.Status)

	bad := feedServer(t, "server exploded", http.StatusInternalServerError)
	require.NoError(t, f.sources.Update(context.Background(), src.ID, repository.SourceUpdate{IcsURL: &bad.URL}))
	src.IcsURL = bad.URL

	res = f.service.SyncOne(context.Background(), src)
	assert.Equal(t, string(domain.SyncError), res.Status)
	assert.NotEmpty(t, res.Error)

	// Previous snapshot still blocks.
	blocked, err := f.external.GetBlocked(context.Background(), "apt-1", future(0))
	require.NoError(t, err)
	assert.Len(t, blocked, 1)

	updated, err := f.sources.GetByID(context.Background(), src.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SyncError, updated.SyncStatus)
	assert.NotEmpty(t, updated.ErrorMessage)
}

func TestSyncAll_FailureIsolation(t *testing.T) {
	f := newSyncFixture(t)

	okFeed := feedWith(domain.DateRange{CheckIn: future(10), CheckOut: future(12)})
	good1 := feedServer(t, okFeed, http.StatusOK)
	broken := feedServer(t, "not a calendar", http.StatusOK)
	good2 := feedServer(t, okFeed, http.StatusOK)

	f.addSource(t, "apt-1", "airbnb", good1.URL)
	f.addSource(t, "apt-2", "avito", broken.URL)
	f.addSource(t, "apt-3", "sutochno", good2.URL)

	results, err := f.service.SyncAll(context.Background(), repository.SourceFilter{})
	require.NoError(t, err)
	require.Len(t, results, 3)

	var ok, failed int
	for _, r := range results {
		if r.Status == string(domain.SyncSuccess) {
			ok++
		} else {
			failed++
		}
	}
	assert.Equal(t, 2, ok)
	assert.Equal(t, 1, failed)

	// Healthy sources landed their snapshots despite the broken one.
	blocked, err := f.external.GetBlocked(context.Background(), "apt-3", future(0))
	require.NoError(t, err)
	assert.Len(t, blocked, 1)

	logs, err := f.logs.Latest(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, logs, 3)
}

func TestSyncOne_Timeout(t *testing.T) {
	f := newSyncFixture(t)

	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	t.Cleanup(slow.Close)

	src := f.addSource(t, "apt-1", "airbnb", slow.URL)
	f.service.syncTimeout = 100 * time.Millisecond

	res := f.service.SyncOne(context.Background(), src)

	assert.Equal(t, string(domain.SyncError), res.Status)
	assert.NotEmpty(t, res.Error)

	logs, err := f.logs.Latest(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, domain.SyncError, logs[0].Status)
}

func TestAddSource_DuplicatePairRejected(t *testing.T) {
	f := newSyncFixture(t)

	_, err := f.service.AddSource(context.Background(), "apt-1", "airbnb", "https://example.com/a.ics")
	require.NoError(t, err)

	_, err = f.service.AddSource(context.Background(), "apt-1", "airbnb", "https://example.com/b.ics")
	assert.ErrorIs(t, err, repository.ErrDuplicateSource)

	// Same source name on another apartment is fine.
	_, err = f.service.AddSource(context.Background(), "apt-2", "airbnb", "https://example.com/c.ics")
	assert.NoError(t, err)
}
