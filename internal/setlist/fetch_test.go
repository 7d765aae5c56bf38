package setlist

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/desertthunder/setx/internal/shared"
)

func TestFetcher(t *testing.T) {
	t.Run("parses a successful response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(setlistPage))
		}))
		defer srv.Close()

		f := NewFetcher(srv.Client())
		doc, err := f.Fetch(context.Background(), srv.URL)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if doc.Find("ol.songsList").Length() == 0 {
			t.Error("expected parsed document to be queryable")
		}
	})

	t.Run("non-2xx status is a fetch failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "gone", http.StatusNotFound)
		}))
		defer srv.Close()

		f := NewFetcher(srv.Client())
		_, err := f.Fetch(context.Background(), srv.URL)
		if !errors.Is(err, shared.ErrFetchFailed) {
			t.Errorf("expected ErrFetchFailed, got %v", err)
		}
	})

	t.Run("transport error is a fetch failure", func(t *testing.T) {
		f := NewFetcher(&http.Client{})
		_, err := f.Fetch(context.Background(), "http://127.0.0.1:1/unreachable")
		if !errors.Is(err, shared.ErrFetchFailed) {
			t.Errorf("expected ErrFetchFailed, got %v", err)
		}
	})

	t.Run("nil client gets a default timeout", func(t *testing.T) {
		f := NewFetcher(nil)
		if f.httpClient == nil {
			t.Fatal("expected default client")
		}
		if f.httpClient.Timeout != defaultFetchTimeout {
			t.Errorf("expected default timeout %v, got %v", defaultFetchTimeout, f.httpClient.Timeout)
		}
	})
}
