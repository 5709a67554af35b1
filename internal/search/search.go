// Package search finds candidate report URLs and official websites through
// the Google Programmable Search API. Query failures degrade to empty result
// lists; discovery keeps going with whatever the other queries returned.
package search

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/time/rate"
	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"
)

// Result is one search hit.
type Result struct {
	Link  string
	Title string
}

// Provider abstracts the search backend.
type Provider interface {
	Search(ctx context.Context, query string, num int) ([]Result, error)
}

// GoogleProvider implements Provider on the Custom Search JSON API.
type GoogleProvider struct {
	svc     *customsearch.Service
	cx      string
	limiter *rate.Limiter
	verbose bool
}

// NewGoogleProvider creates a search provider. The limiter, when non-nil,
// paces queries against the API quota.
func NewGoogleProvider(ctx context.Context, apiKey, cx string, limiter *rate.Limiter, verbose bool) (*GoogleProvider, error) {
	svc, err := customsearch.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create customsearch service: %w", err)
	}
	return &GoogleProvider{
		svc:     svc,
		cx:      cx,
		limiter: limiter,
		verbose: verbose,
	}, nil
}

// Search runs one query and returns up to num hits.
func (p *GoogleProvider) Search(ctx context.Context, query string, num int) ([]Result, error) {
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("search rate limit wait aborted: %w", err)
		}
	}
	if p.verbose {
		log.Printf("[VERBOSE] search: %s", query)
	}

	resp, err := p.svc.Cse.List().Context(ctx).Cx(p.cx).Q(query).Num(int64(num)).Do()
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	results := make([]Result, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Link == "" {
			continue
		}
		results = append(results, Result{Link: item.Link, Title: item.Title})
	}
	return results, nil
}
