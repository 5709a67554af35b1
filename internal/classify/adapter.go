package classify

import (
	"context"
	"log"
	"time"

	"github.com/jonathan/finreport-discovery/internal/fetch"
	"github.com/jonathan/finreport-discovery/internal/ingestion"
	"github.com/jonathan/finreport-discovery/internal/types"
)

// Adapter drives the full per-URL path: fetch, extract, classify with
// retries. Every failure mode collapses into an error document; ClassifyURL
// never returns an error.
type Adapter struct {
	classifier Classifier
	fetchOpts  *fetch.Options
	attempts   int
	retryDelay time.Duration
	verbose    bool

	// sleep is swappable for tests.
	sleep func(time.Duration)
}

// NewAdapter wires a classifier with fetch options and retry policy.
// attempts below 1 is treated as 1.
func NewAdapter(classifier Classifier, fetchOpts *fetch.Options, attempts int, retryDelay time.Duration, verbose bool) *Adapter {
	if attempts < 1 {
		attempts = 1
	}
	if fetchOpts == nil {
		fetchOpts = fetch.DefaultOptions()
	}
	return &Adapter{
		classifier: classifier,
		fetchOpts:  fetchOpts,
		attempts:   attempts,
		retryDelay: retryDelay,
		verbose:    verbose,
		sleep:      time.Sleep,
	}
}

// ClassifyURL produces exactly one ClassifiedDocument for the URL. Fetch or
// extraction failures short-circuit; classification failures are retried up
// to the configured attempt count with a fixed delay between attempts.
func (a *Adapter) ClassifyURL(ctx context.Context, url string) *types.ClassifiedDocument {
	result, err := fetch.URL(ctx, url, a.fetchOpts)
	if err != nil {
		if a.verbose {
			log.Printf("[VERBOSE] fetch failed for %s: %v", url, err)
		}
		return errorDocument(url, types.FailureFetch, err)
	}

	content, err := ingestion.FromResult(result)
	if err != nil {
		if a.verbose {
			log.Printf("[VERBOSE] content extraction failed for %s: %v", url, err)
		}
		return errorDocument(url, types.FailureExtraction, err)
	}

	var lastErr error
	for attempt := 1; attempt <= a.attempts; attempt++ {
		doc, err := a.classifier.Classify(ctx, url, content.Title, content.Snippet())
		if err == nil {
			return doc
		}
		lastErr = err
		if a.verbose {
			log.Printf("[VERBOSE] classification attempt %d/%d failed for %s: %v", attempt, a.attempts, url, err)
		}
		if attempt < a.attempts {
			if ctx.Err() != nil {
				break
			}
			a.sleep(a.retryDelay)
		}
	}

	return errorDocument(url, types.FailureClassification, lastErr)
}
