package sync

import "errors"

var (
	// ErrFeedFetch covers transport-level failures: timeout, DNS, non-2xx.
	ErrFeedFetch = errors.New("feed fetch failed")
	// ErrFeedParse covers a fetched document that is not valid calendar
	// grammar.
	ErrFeedParse = errors.New("feed parse failed")
	// ErrSyncInFlight is reported when a sync for the same
	// (apartment, source) pair is already running; the new run is skipped,
	// not queued.
	ErrSyncInFlight = errors.New("sync already in progress for this source")
)
