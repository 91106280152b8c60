// Package loader obtains raw order rows from a Google Sheet export, a
// remote JSON endpoint, or a local file.
package loader

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"orderlens/internal/config"
)

// ErrUnexpectedStatusCode indicates an HTTP response with unexpected status.
var ErrUnexpectedStatusCode = errors.New("unexpected status code")

// Fetcher performs HTTP fetches with config-driven retry logic.
type Fetcher struct {
	client       *http.Client
	retryPolicy  *config.RetryPolicy
	bufferSizeKb int
}

// NewFetcher creates a new fetcher instance with default retry policy.
func NewFetcher() *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		retryPolicy: &config.RetryPolicy{
			MaxAttempts:       3,
			InitialDelayMs:    500,
			MaxDelayMs:        30000,
			BackoffMultiplier: 2.0,
			TimeoutSec:        30,
		},
		bufferSizeKb: 4096,
	}
}

// NewFetcherWithConfig creates a new fetcher with a custom retry policy.
func NewFetcherWithConfig(retryPolicy *config.RetryPolicy, bufferSizeKb int) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: retryPolicy.GetTimeout(),
		},
		retryPolicy:  retryPolicy,
		bufferSizeKb: bufferSizeKb,
	}
}

// FetchWithMetrics returns (body, statusCode, duration, error).
func (f *Fetcher) FetchWithMetrics(url string) (string, int, time.Duration, error) {
	var lastErr error

	var lastStatusCode int

	totalDuration := time.Duration(0)

	for attempt := 1; attempt <= f.retryPolicy.MaxAttempts; attempt++ {
		startTime := time.Now()

		req, err := http.NewRequest(http.MethodGet, url, http.NoBody)
		if err != nil {
			lastErr = fmt.Errorf("failed to create request: %w", err)

			continue
		}

		req.Header.Set("User-Agent", "orderlens/1.0")
		req.Header.Set("Accept", "application/json, text/plain;q=0.9, */*;q=0.8")

		resp, err := f.client.Do(req)
		duration := time.Since(startTime)
		totalDuration += duration

		if err != nil {
			lastErr = fmt.Errorf("request failed (attempt %d/%d): %w", attempt, f.retryPolicy.MaxAttempts, err)

			f.backoff(attempt)

			continue
		}

		lastStatusCode = resp.StatusCode

		if resp.StatusCode != http.StatusOK {
			lastErr = fmt.Errorf("%w: %d", ErrUnexpectedStatusCode, resp.StatusCode)

			if closeErr := resp.Body.Close(); closeErr != nil {
				lastErr = fmt.Errorf("failed to close response body: %w", closeErr)
			}

			if isRetryableStatus(resp.StatusCode) {
				f.backoff(attempt)
			}

			continue
		}

		// bufferSizeKb is in KB, convert to bytes
		limit := int64(f.bufferSizeKb) * 1024
		body, err := io.ReadAll(io.LimitReader(resp.Body, limit))

		if closeErr := resp.Body.Close(); closeErr != nil && err == nil {
			err = closeErr
		}

		if err != nil {
			lastErr = fmt.Errorf("failed to read response body: %w", err)

			continue
		}

		return string(body), resp.StatusCode, totalDuration, nil
	}

	return "", lastStatusCode, totalDuration, lastErr
}

// Fetch retrieves content from the given URL.
func (f *Fetcher) Fetch(url string) (string, error) {
	content, _, _, err := f.FetchWithMetrics(url)

	return content, err
}

// ReadLocalFile reads content from a local file path.
func (f *Fetcher) ReadLocalFile(filePath string) (string, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read local file %s: %w", filePath, err)
	}

	return string(content), nil
}

func (f *Fetcher) backoff(attempt int) {
	if attempt >= f.retryPolicy.MaxAttempts {
		return
	}

	if delay := f.retryPolicy.GetRetryDelay(attempt); delay > 0 {
		time.Sleep(delay)
	}
}

// isRetryableStatus determines if we should retry based on HTTP status code.
func isRetryableStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusServiceUnavailable: // 503
		return true
	case http.StatusGatewayTimeout: // 504
		return true
	case http.StatusTooManyRequests: // 429
		return true
	case http.StatusRequestTimeout: // 408
		return true
	}

	return false
}
