// Package fetch provides URL fetching for organization websites and report
// documents. This package centralizes HTTP fetching logic used by discovery
// and ingestion; bodies are kept as raw bytes so PDF documents survive intact.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; FinReportAgent/1.0)"

// MaxBodyBytes caps how much of a response body is read. Annual reports can
// be large; anything beyond this is truncated rather than rejected.
const MaxBodyBytes = 25 << 20 // 25 MiB

// Result holds the raw content from a URL fetch.
type Result struct {
	URL         string
	Body        []byte
	ContentType string
	StatusCode  int
}

// HTML returns the body as a string for HTML processing.
func (r *Result) HTML() string {
	return string(r.Body)
}

// IsPDF reports whether the response looks like a PDF document, by header,
// URL extension or magic bytes.
func (r *Result) IsPDF() bool {
	if strings.Contains(strings.ToLower(r.ContentType), "application/pdf") {
		return true
	}
	if strings.HasSuffix(strings.ToLower(r.URL), ".pdf") {
		return true
	}
	return len(r.Body) >= 5 && string(r.Body[:5]) == "%PDF-"
}

// Error represents an error during URL fetching.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures the fetch behavior.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string

	// Limiter paces outbound requests when set; all fetchers sharing one
	// limiter share one budget. Politeness toward the scanned sites.
	Limiter *rate.Limiter
}

// DefaultOptions returns sensible defaults for fetching.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// NewLimiter builds a rate limiter enforcing a fixed delay between requests.
// A zero or negative delay disables pacing.
func NewLimiter(delay time.Duration) *rate.Limiter {
	if delay <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Every(delay), 1)
}

// URL retrieves content from a URL.
func URL(ctx context.Context, urlStr string, opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	// Validate URL
	parsedURL, err := url.Parse(urlStr)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, &Error{
			URL:     urlStr,
			Message: "invalid URL",
			Cause:   err,
		}
	}

	if opts.Limiter != nil {
		if err := opts.Limiter.Wait(ctx); err != nil {
			return nil, &Error{
				URL:     urlStr,
				Message: "rate limit wait aborted",
				Cause:   err,
			}
		}
	}

	// Create HTTP client with timeout
	client := &http.Client{
		Timeout: opts.Timeout,
	}

	// Create request with context
	req, err := http.NewRequestWithContext(ctx, "GET", urlStr, nil)
	if err != nil {
		return nil, &Error{
			URL:     urlStr,
			Message: "failed to create request",
			Cause:   err,
		}
	}

	// Set headers
	req.Header.Set("User-Agent", opts.UserAgent)
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	// Execute request
	resp, err := client.Do(req)
	if err != nil {
		return nil, &Error{
			URL:     urlStr,
			Message: "HTTP request failed",
			Cause:   err,
		}
	}
	defer func() { _ = resp.Body.Close() }()

	// Read response body, capped
	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes))
	if err != nil {
		return nil, &Error{
			URL:     urlStr,
			Message: "failed to read response body",
			Cause:   err,
		}
	}

	result := &Result{
		URL:         urlStr,
		Body:        bodyBytes,
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
	}

	// Check for non-success status
	if resp.StatusCode != http.StatusOK {
		return result, &Error{
			URL:     urlStr,
			Message: fmt.Sprintf("HTTP status %d", resp.StatusCode),
		}
	}

	return result, nil
}
