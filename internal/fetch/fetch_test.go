package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURL_Success(t *testing.T) {
	// Create test server
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("<html><body><h1>Test</h1></body></html>"))
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, server.URL, result.URL)
	assert.Contains(t, result.HTML(), "<h1>Test</h1>")
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.False(t, result.IsPDF())
}

func TestURL_InvalidURL(t *testing.T) {
	_, err := URL(context.Background(), "not-a-valid-url", nil)
	require.Error(t, err)

	var fetchErr *Error
	assert.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, err.Error(), "invalid URL")
}

func TestURL_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, nil)
	require.Error(t, err)
	assert.NotNil(t, result) // Result is returned even on error
	assert.Equal(t, http.StatusNotFound, result.StatusCode)

	var fetchErr *Error
	assert.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, err.Error(), "404")
}

func TestURL_RespectsLimiter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	opts := DefaultOptions()
	opts.Limiter = NewLimiter(50 * time.Millisecond)

	start := time.Now()
	for i := 0; i < 3; i++ {
		_, err := URL(context.Background(), server.URL, opts)
		require.NoError(t, err)
	}
	// First request is free, the next two wait one interval each.
	assert.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond)
}

func TestNewLimiter_DisabledForZeroDelay(t *testing.T) {
	assert.Nil(t, NewLimiter(0))
	assert.Nil(t, NewLimiter(-time.Second))
	assert.NotNil(t, NewLimiter(time.Second))
}

func TestIsPDF(t *testing.T) {
	byHeader := &Result{URL: "https://example.com/doc", ContentType: "application/pdf"}
	assert.True(t, byHeader.IsPDF())

	byExtension := &Result{URL: "https://example.com/annual-report.PDF", ContentType: "application/octet-stream"}
	assert.True(t, byExtension.IsPDF())

	byMagic := &Result{URL: "https://example.com/doc", Body: []byte("%PDF-1.7 ...")}
	assert.True(t, byMagic.IsPDF())

	html := &Result{URL: "https://example.com/page", ContentType: "text/html", Body: []byte("<html>")}
	assert.False(t, html.IsPDF())
}

func TestShouldUseBrowser(t *testing.T) {
	assert.True(t, ShouldUseBrowser(""))
	assert.True(t, ShouldUseBrowser("short page"))

	long := make([]byte, MinContentLength+1)
	for i := range long {
		long[i] = 'x'
	}
	assert.False(t, ShouldUseBrowser(string(long)))
}
