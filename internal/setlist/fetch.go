package setlist

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/desertthunder/setx/internal/shared"
)

const defaultFetchTimeout = 30 * time.Second

// Fetcher retrieves setlist pages and parses them into queryable documents.
type Fetcher struct {
	httpClient *http.Client
}

// NewFetcher creates a Fetcher backed by the given HTTP client.
//
// A nil client gets a default with a sane request timeout.
func NewFetcher(httpClient *http.Client) *Fetcher {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultFetchTimeout}
	}
	return &Fetcher{httpClient: httpClient}
}

// Fetch issues a GET for the setlist page and parses the body.
//
// Transport errors and non-2xx statuses are treated uniformly as a fetch
// failure wrapping [shared.ErrFetchFailed].
func (f *Fetcher) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrFetchFailed, err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", shared.ErrFetchFailed, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrFetchFailed, err)
	}

	return doc, nil
}
