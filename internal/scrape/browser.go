package scrape

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
)

// BrowserFetcher loads pages through a headless Chrome instance. It exists
// because the source site sometimes rejects plain HTTP clients while still
// serving full pages to a real browser.
type BrowserFetcher struct {
	allocCtx context.Context
	cancel   context.CancelFunc
}

// NewBrowserFetcher starts a shared headless Chrome allocator. Callers must
// Close it on shutdown.
func NewBrowserFetcher(userAgent string) *BrowserFetcher {
	if userAgent == "" {
		userAgent = UserAgent
	}
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(userAgent),
	)

	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)
	return &BrowserFetcher{allocCtx: allocCtx, cancel: cancel}
}

// Close releases the browser allocator.
func (b *BrowserFetcher) Close() {
	if b.cancel != nil {
		b.cancel()
	}
}

// FetchDocument navigates to url and returns the rendered page as a parsed
// document.
func (b *BrowserFetcher) FetchDocument(ctx context.Context, url string) (*goquery.Document, error) {
	browserCtx, cancel := chromedp.NewContext(b.allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, 30*time.Second)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitVisible(`body`, chromedp.ByQuery),
		chromedp.OuterHTML(`html`, &html, chromedp.ByQuery),
	)
	if err != nil {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("chromedp: %w", err)}
	}
	if html == "" {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("empty page returned")}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("parsing HTML: %w", err)}
	}
	return doc, nil
}
