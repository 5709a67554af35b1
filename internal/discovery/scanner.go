// Package discovery finds candidate report URLs for one organization by
// scanning its website: homepage, then the investor relations page, then a
// reports index, collecting plausible report links from each.
package discovery

import (
	"context"
	"log"
	"sort"

	"github.com/jonathan/finreport-discovery/internal/fetch"
	"github.com/jonathan/finreport-discovery/internal/ingestion"
	"github.com/jonathan/finreport-discovery/internal/scoring"
	"github.com/jonathan/finreport-discovery/internal/search"
)

// PageLoader fetches one page and returns its HTML.
type PageLoader interface {
	Load(ctx context.Context, url string) (string, error)
}

// HTTPLoader loads pages over plain HTTP. With a browser session attached,
// pages whose extracted text is too thin are re-rendered in the browser,
// which recovers JavaScript-built report indexes.
type HTTPLoader struct {
	Options *fetch.Options
	Session *fetch.Session
}

// Load implements PageLoader.
func (l *HTTPLoader) Load(ctx context.Context, url string) (string, error) {
	result, err := fetch.URL(ctx, url, l.Options)
	if err != nil {
		return "", err
	}

	html := result.HTML()
	if l.Session == nil || !needsRender(html, url) {
		return html, nil
	}

	rendered, _, err := l.Session.Render(ctx, url)
	if err != nil {
		// The thin HTTP content still stands when the render fails.
		log.Printf("browser render failed for %s, keeping HTTP content: %v", url, err)
		return html, nil
	}
	return rendered, nil
}

// needsRender reports whether a fetched page reads like an unrendered SPA
// shell: parseable HTML whose visible text is too short to scan for links.
func needsRender(html, url string) bool {
	content, err := ingestion.FromHTML(html, url)
	if err != nil {
		return false
	}
	return fetch.ShouldUseBrowser(content.Text)
}

// BrowserLoader renders pages in a headless browser, falling back to nothing:
// a failed render is a failed load.
type BrowserLoader struct {
	Session *fetch.Session
}

// Load implements PageLoader.
func (l *BrowserLoader) Load(ctx context.Context, url string) (string, error) {
	html, _, err := l.Session.Render(ctx, url)
	return html, err
}

// Scanner walks an organization's website for report URLs.
type Scanner struct {
	provider       search.Provider
	loader         PageLoader
	rubric         *scoring.Rubric
	resultsToCheck int
	verbose        bool
}

// NewScanner assembles a website scanner.
func NewScanner(provider search.Provider, loader PageLoader, rubric *scoring.Rubric, resultsToCheck int, verbose bool) *Scanner {
	return &Scanner{
		provider:       provider,
		loader:         loader,
		rubric:         rubric,
		resultsToCheck: resultsToCheck,
		verbose:        verbose,
	}
}

// ScanWebsite discovers candidate report URLs from the organization's own
// website. The homepage itself is always a candidate; every failure past
// website discovery degrades to returning what was found so far.
func (s *Scanner) ScanWebsite(ctx context.Context, companyName string) []string {
	found := make(map[string]struct{})

	baseURL := search.DiscoverWebsite(ctx, s.provider, companyName, s.resultsToCheck)
	if baseURL == "" {
		if s.verbose {
			log.Printf("[VERBOSE] no website found for %s", companyName)
		}
		return nil
	}
	found[baseURL] = struct{}{}

	homepage, err := s.loader.Load(ctx, baseURL)
	if err != nil {
		log.Printf("could not fetch homepage %s: %v", baseURL, err)
		return sortedURLs(found)
	}

	homeLinks, err := scoring.CollectLinkCandidates(homepage, baseURL)
	if err != nil {
		log.Printf("could not parse homepage %s: %v", baseURL, err)
		return sortedURLs(found)
	}

	pagesToScan := map[string]struct{}{baseURL: {}}

	// Investor relations page, found from the homepage.
	irURL := scoring.ResolveNavigation(homeLinks, baseURL, scoring.InvestorRelationsKeywords())
	if irURL != "" {
		pagesToScan[irURL] = struct{}{}
	}

	// Reports index, found from the IR page when there is one, otherwise
	// from the homepage.
	reportsNavLinks, reportsNavBase := homeLinks, baseURL
	if irURL != "" {
		if irHTML, err := s.loader.Load(ctx, irURL); err == nil {
			if irLinks, err := scoring.CollectLinkCandidates(irHTML, irURL); err == nil {
				reportsNavLinks, reportsNavBase = irLinks, irURL
			}
		}
	}
	reportsURL := scoring.ResolveNavigation(reportsNavLinks, reportsNavBase, scoring.ReportsPageKeywords())
	if reportsURL != "" {
		pagesToScan[reportsURL] = struct{}{}
	}

	if s.verbose {
		log.Printf("[VERBOSE] pages to scan for %s: %v", companyName, sortedURLs(pagesToScan))
	}

	for pageURL := range pagesToScan {
		pageHTML, err := s.loader.Load(ctx, pageURL)
		if err != nil {
			log.Printf("could not fetch %s: %v", pageURL, err)
			continue
		}
		links, err := scoring.CollectLinkCandidates(pageHTML, pageURL)
		if err != nil {
			continue
		}
		for url := range scoring.ExtractReportLinks(pageURL, links, baseURL, s.rubric) {
			found[url] = struct{}{}
		}
	}

	return sortedURLs(found)
}

// sortedURLs flattens a URL set deterministically.
func sortedURLs(set map[string]struct{}) []string {
	urls := make([]string, 0, len(set))
	for url := range set {
		urls = append(urls, url)
	}
	sort.Strings(urls)
	return urls
}
