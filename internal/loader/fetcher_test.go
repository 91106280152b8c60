package loader

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"orderlens/internal/config"
)

func testRetryPolicy() *config.RetryPolicy {
	return &config.RetryPolicy{
		MaxAttempts:       3,
		InitialDelayMs:    0,
		MaxDelayMs:        0,
		BackoffMultiplier: 1.0,
		TimeoutSec:        5,
	}
}

func TestFetcher_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"Phone":"555-1111"}]`))
	}))
	defer srv.Close()

	f := NewFetcherWithConfig(testRetryPolicy(), 64)

	body, err := f.Fetch(srv.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if body != `[{"Phone":"555-1111"}]` {
		t.Errorf("unexpected body: %q", body)
	}
}

func TestFetcher_RetriesOnServiceUnavailable(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)

			return
		}

		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	f := NewFetcherWithConfig(testRetryPolicy(), 64)

	body, err := f.Fetch(srv.URL)
	if err != nil {
		t.Fatalf("Fetch failed after retries: %v", err)
	}

	if body != "ok" {
		t.Errorf("unexpected body: %q", body)
	}

	if calls.Load() != 3 {
		t.Errorf("expected 3 attempts, got %d", calls.Load())
	}
}

func TestFetcher_ErrorStatusSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewFetcherWithConfig(testRetryPolicy(), 64)

	_, err := f.Fetch(srv.URL)
	if !errors.Is(err, ErrUnexpectedStatusCode) {
		t.Fatalf("err = %v, want ErrUnexpectedStatusCode", err)
	}
}

func TestClient_LoadURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"rows":[{"Phone":"555-1111","Amount":"10"}]}`))
	}))
	defer srv.Close()

	client := NewClientWithFetcher(NewFetcherWithConfig(testRetryPolicy(), 64))

	rows, err := client.LoadURL(srv.URL)
	if err != nil {
		t.Fatalf("LoadURL failed: %v", err)
	}

	if len(rows) != 1 || rows[0]["Phone"] != "555-1111" {
		t.Errorf("unexpected rows: %+v", rows)
	}
}

func TestClient_LoadFile_Missing(t *testing.T) {
	client := NewClient()

	if _, err := client.LoadFile("does-not-exist.json"); err == nil {
		t.Error("expected error for missing file")
	}
}
