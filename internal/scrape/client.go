package scrape

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	// DefaultBaseURL is the source site for all league data.
	DefaultBaseURL = "https://www.asia-basket.com"

	// LeaguePath is the main league page (standings, stats leaders).
	LeaguePath = "/Lebanon/basketball-League-LBL.aspx"

	// SchedulePath is the full schedule page (results, upcoming games).
	SchedulePath = "/Lebanon/basketball-League-LBL-Schedule.aspx"

	// UserAgent mimics a desktop browser; the site serves a reduced page
	// to clients it does not recognize.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

	// Timeout bounds a single page fetch. One attempt per cycle, no retries.
	Timeout = 10 * time.Second
)

// FetchError reports a failed page fetch: transport failure, timeout, or a
// non-2xx response.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetching %s: unexpected status %d", e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Client fetches and parses the source site's pages.
type Client struct {
	http      *http.Client
	baseURL   string
	userAgent string
	browser   *BrowserFetcher
}

// NewClient creates a page fetcher rooted at baseURL. An empty baseURL or
// userAgent falls back to the defaults.
func NewClient(baseURL, userAgent string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if userAgent == "" {
		userAgent = UserAgent
	}
	return &Client{
		http:      &http.Client{Timeout: Timeout},
		baseURL:   baseURL,
		userAgent: userAgent,
	}
}

// WithBrowser attaches a headless-browser fetcher used as a fallback when
// the plain HTTP fetch fails. The site intermittently blocks non-browser
// clients outright.
func (c *Client) WithBrowser(b *BrowserFetcher) *Client {
	c.browser = b
	return c
}

// BaseURL returns the configured site root, used to absolutize scraped hrefs.
func (c *Client) BaseURL() string { return c.baseURL }

// LeaguePage fetches and parses the main league page.
func (c *Client) LeaguePage(ctx context.Context) (*goquery.Document, error) {
	return c.fetchDocument(ctx, LeaguePath)
}

// SchedulePage fetches and parses the schedule page.
func (c *Client) SchedulePage(ctx context.Context) (*goquery.Document, error) {
	return c.fetchDocument(ctx, SchedulePath)
}

func (c *Client) fetchDocument(ctx context.Context, path string) (*goquery.Document, error) {
	url := c.baseURL + path

	doc, err := c.fetchHTTP(ctx, url)
	if err != nil && c.browser != nil {
		return c.browser.FetchDocument(ctx, url)
	}
	return doc, err
}

func (c *Client) fetchHTTP(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("parsing HTML: %w", err)}
	}
	return doc, nil
}
