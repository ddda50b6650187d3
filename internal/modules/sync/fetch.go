package sync

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// OTAs are picky about anonymous clients; the UA mirrors what the booking
// site sends from production.
const userAgent = "Mozilla/5.0 (compatible; StylishLife/1.0; +https://stylelife.ru)"

// maxFeedSize caps a single ICS document; real OTA feeds are a few KB.
const maxFeedSize = 5 << 20

// Fetcher downloads ICS documents with a bounded timeout. Any transport
// problem, including a non-2xx status, is an ErrFeedFetch — malformed
// content is the parser's department.
type Fetcher struct {
	client *http.Client
}

func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
	}
}

func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedFetch, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: HTTP %d", ErrFeedFetch, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedSize))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedFetch, err)
	}
	return body, nil
}
