package scrape

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

// mustDoc parses an inline HTML fixture.
func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}
	return doc
}
