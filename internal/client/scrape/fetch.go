package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/time/rate"
)

// maxPageBytes caps how much of a page is parsed.
const maxPageBytes = 5 << 20

const userAgent = "jobtracker-cli/1.0"

// Fetcher downloads posting pages, at most perSecond requests per second.
type Fetcher struct {
	client  *http.Client
	limiter *rate.Limiter
}

// NewFetcher returns a Fetcher. A non-positive perSecond disables the limit.
func NewFetcher(perSecond float64, timeout time.Duration) *Fetcher {
	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}
	return &Fetcher{
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(limit, 1),
	}
}

// Fetch downloads and parses pageURL.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (*html.Node, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", pageURL, resp.StatusCode)
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", pageURL, err)
	}
	return doc, nil
}

// Scrape fetches pageURL and extracts a Posting from it. The boolean
// reports whether the page looks like a job posting.
func (f *Fetcher) Scrape(ctx context.Context, pageURL string) (Posting, bool, error) {
	doc, err := f.Fetch(ctx, pageURL)
	if err != nil {
		return Posting{}, false, err
	}
	return Extract(doc, pageURL), IsJobPosting(doc, pageURL), nil
}
