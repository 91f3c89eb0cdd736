package scrape

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientFetchesAndParses(t *testing.T) {
	var gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		if r.URL.Path != LeaguePath {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`<html><body><table><tr><th>h</th></tr><tr><td>1</td><td>Al Riyadi</td><td>8-0</td></tr></table></body></html>`))
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "")
	doc, err := client.LeaguePage(context.Background())
	if err != nil {
		t.Fatalf("LeaguePage failed: %v", err)
	}
	if gotUA != UserAgent {
		t.Errorf("expected default user agent, got %q", gotUA)
	}
	if doc.Find("table").Length() != 1 {
		t.Error("expected parsed document with one table")
	}
}

func TestClientNonSuccessStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "")
	_, err := client.SchedulePage(context.Background())
	if err == nil {
		t.Fatal("expected an error for a 403 response")
	}

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected *FetchError, got %T", err)
	}
	if fetchErr.StatusCode != http.StatusForbidden {
		t.Errorf("expected status 403, got %d", fetchErr.StatusCode)
	}
}

func TestClientNetworkFailure(t *testing.T) {
	// Point at a closed server so the dial fails.
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()

	client := NewClient(ts.URL, "")
	_, err := client.LeaguePage(context.Background())

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected *FetchError, got %T (%v)", err, err)
	}
	if fetchErr.Err == nil {
		t.Error("expected an underlying cause")
	}
}
