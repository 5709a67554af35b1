// Package pipeline provides the high-level orchestration for financial report
// discovery: per organization, discover candidate URLs, classify each, select
// the primary report plus alternates, and emit the result rows.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/finreport-discovery/internal/classify"
	"github.com/jonathan/finreport-discovery/internal/config"
	"github.com/jonathan/finreport-discovery/internal/db"
	"github.com/jonathan/finreport-discovery/internal/discovery"
	"github.com/jonathan/finreport-discovery/internal/fetch"
	"github.com/jonathan/finreport-discovery/internal/llm"
	"github.com/jonathan/finreport-discovery/internal/observability"
	"github.com/jonathan/finreport-discovery/internal/output"
	"github.com/jonathan/finreport-discovery/internal/scoring"
	"github.com/jonathan/finreport-discovery/internal/search"
	"github.com/jonathan/finreport-discovery/internal/selection"
	"github.com/jonathan/finreport-discovery/internal/types"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Organization types.Organization `json:"organization"`
	Stage        string             `json:"stage"`
	Message      string             `json:"message"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Progress stages.
const (
	StageDiscovery = "discovery"
	StageClassify  = "classify"
	StageSelection = "selection"
)

// Runner holds the assembled components for one discovery run.
type Runner struct {
	cfg        *config.Config
	provider   search.Provider
	scanner    *discovery.Scanner
	adapter    *classify.Adapter
	printer    *observability.Printer
	database   *db.DB
	runID      uuid.UUID
	session    *fetch.Session
	onProgress ProgressCallback
}

// NewRunner assembles the pipeline from configuration. The returned Runner
// must be closed after use.
func NewRunner(ctx context.Context, cfg *config.Config, onProgress ProgressCallback) (*Runner, error) {
	if cfg.SearchAPIKey == "" || cfg.SearchEngineID == "" {
		return nil, fmt.Errorf("search API key and engine ID are required (set GOOGLE_SEARCH_API_KEY and GOOGLE_SEARCH_ENGINE_ID)")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("LLM API key is required (set GEMINI_API_KEY)")
	}

	limiter := fetch.NewLimiter(cfg.RequestDelay)
	fetchOpts := fetch.DefaultOptions()
	fetchOpts.Limiter = limiter

	provider, err := search.NewGoogleProvider(ctx, cfg.SearchAPIKey, cfg.SearchEngineID, limiter, cfg.Verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize search provider: %w", err)
	}

	rubric, err := scoring.NewRubric(cfg.TargetYears)
	if err != nil {
		return nil, fmt.Errorf("failed to build scoring rubric: %w", err)
	}

	// Pages are fetched over HTTP first; with a session attached the loader
	// falls back to browser rendering for thin SPA shells.
	var session *fetch.Session
	loader := &discovery.HTTPLoader{Options: fetchOpts}
	if cfg.UseBrowser {
		session, err = fetch.NewSession(ctx, 0, cfg.Verbose)
		if err != nil {
			fmt.Printf("Warning: Failed to start browser session: %v\n", err)
			fmt.Printf("Continuing with plain HTTP fetching...\n")
		} else {
			loader.Session = session
		}
	}

	scanner := discovery.NewScanner(provider, loader, rubric, cfg.SearchResultsToCheck, cfg.Verbose)

	client, err := llm.NewClient(ctx, nil, cfg.APIKey)
	if err != nil {
		if session != nil {
			session.Close()
		}
		return nil, fmt.Errorf("failed to initialize LLM client: %w", err)
	}
	classifier := classify.NewGeminiClassifier(client, cfg.TargetYears)
	adapter := classify.NewAdapter(classifier, fetchOpts, cfg.ClassifyAttempts, cfg.ClassifyRetryDelay, cfg.Verbose)

	runner := &Runner{
		cfg:        cfg,
		provider:   provider,
		scanner:    scanner,
		adapter:    adapter,
		printer:    observability.NewPrinter(os.Stdout),
		session:    session,
		onProgress: onProgress,
	}

	// Persistence is best-effort: a missing database never blocks a run.
	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			fmt.Printf("Warning: Failed to connect to database: %v\n", err)
			fmt.Printf("Continuing without database persistence...\n")
		} else {
			runner.database = database
			if cfg.Verbose {
				fmt.Printf("[VERBOSE] Connected to database\n")
			}
		}
	}

	return runner, nil
}

// Close releases the browser session and database connection.
func (r *Runner) Close() {
	if r.session != nil {
		r.session.Close()
	}
	if r.database != nil {
		r.database.Close()
	}
}

func (r *Runner) emitProgress(org types.Organization, stage, message string) {
	if r.onProgress != nil {
		r.onProgress(ProgressEvent{Organization: org, Stage: stage, Message: message})
	}
}

// Run processes every organization in the input roster and writes six result
// rows each. A failing organization never stops the run.
func (r *Runner) Run(ctx context.Context) error {
	orgs, err := output.ReadOrganizationsFile(r.cfg.Input)
	if err != nil {
		return fmt.Errorf("failed to read organizations: %w", err)
	}
	if len(orgs) == 0 {
		return fmt.Errorf("no organizations found in %s", r.cfg.Input)
	}

	outFile, err := os.Create(r.cfg.Output)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = outFile.Close() }()
	writer := output.NewWriter(outFile)

	if r.database != nil {
		runID, err := r.database.CreateRun(ctx, r.cfg.Input, r.cfg.TargetYears, len(orgs))
		if err != nil {
			fmt.Printf("Warning: Failed to create database run: %v\n", err)
		} else {
			r.runID = runID
			if r.cfg.Verbose {
				fmt.Printf("[VERBOSE] Created database run: %s\n", runID)
			}
		}
	}

	processed, withPrimary, failed := 0, 0, 0
	for i, org := range orgs {
		if ctx.Err() != nil {
			break
		}

		fmt.Printf("Processing %d/%d: %s (%s)...\n", i+1, len(orgs), org.Name, org.ID)

		result, candidates := r.ProcessOrganization(ctx, org)
		processed++
		if result.Primary != nil {
			withPrimary++
		}
		if result.Primary == nil && allFailed(candidates) && len(candidates) > 0 {
			failed++
		}

		if r.cfg.Verbose {
			r.printer.PrintOrganizationResult(result)
		}

		if err := writer.WriteResult(result); err != nil {
			return fmt.Errorf("failed to write result for %s: %w", org.ID, err)
		}

		if r.database != nil && r.runID != uuid.Nil {
			if err := r.database.SaveOrganizationResult(ctx, r.runID, result, candidates); err != nil {
				fmt.Printf("Warning: Failed to persist result for %s: %v\n", org.ID, err)
			}
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}

	if r.database != nil && r.runID != uuid.Nil {
		status := db.StatusCompleted
		if ctx.Err() != nil {
			status = db.StatusFailed
		}
		_ = r.database.CompleteRun(ctx, r.runID, status)
	}

	r.printer.PrintRunSummary(processed, withPrimary, failed)
	return ctx.Err()
}

// ProcessOrganization runs the full per-organization flow: discovery,
// classification, selection. It always produces a complete result, even when
// nothing was found.
func (r *Runner) ProcessOrganization(ctx context.Context, org types.Organization) (*types.OrganizationResult, []*types.ClassifiedDocument) {
	urls := r.DiscoverURLs(ctx, org)
	r.emitProgress(org, StageDiscovery, fmt.Sprintf("discovered %d candidate URLs", len(urls)))
	if r.cfg.Verbose {
		r.printer.PrintCandidateURLs(org, urls)
	}

	docs := r.ClassifyURLs(ctx, urls)
	r.emitProgress(org, StageClassify, fmt.Sprintf("classified %d documents", len(docs)))
	if r.cfg.Verbose {
		r.printer.PrintClassifiedDocuments(org, docs)
	}

	result := selection.Select(org, docs)
	r.emitProgress(org, StageSelection, selectionMessage(result))
	return result, docs
}

// DiscoverURLs merges the search battery hits with the website scan, keeping
// search-result order first.
func (r *Runner) DiscoverURLs(ctx context.Context, org types.Organization) []string {
	seen := make(map[string]bool)
	var urls []string

	for _, url := range search.CollectReportLinks(ctx, r.provider, org.Name, r.cfg.TargetYears, r.cfg.SearchResultsToCheck) {
		if !seen[url] {
			seen[url] = true
			urls = append(urls, url)
		}
	}

	for _, url := range r.scanner.ScanWebsite(ctx, org.Name) {
		if !seen[url] {
			seen[url] = true
			urls = append(urls, url)
		}
	}

	return urls
}

// ClassifyURLs classifies every candidate concurrently, bounded by the
// configured concurrency, preserving input order in the output.
func (r *Runner) ClassifyURLs(ctx context.Context, urls []string) []*types.ClassifiedDocument {
	if len(urls) == 0 {
		return nil
	}

	docs := make([]*types.ClassifiedDocument, len(urls))
	var mu sync.Mutex

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(max(r.cfg.Concurrency, 1))

	for i, url := range urls {
		g.Go(func() error {
			doc := r.adapter.ClassifyURL(gCtx, url)
			mu.Lock()
			docs[i] = doc
			mu.Unlock()
			return nil
		})
	}

	// Workers never return errors; classification failures become error
	// documents instead.
	_ = g.Wait()
	return docs
}

func selectionMessage(result *types.OrganizationResult) string {
	if result.Primary == nil {
		return "no primary report found"
	}
	return fmt.Sprintf("primary report: %s", result.Primary.URL)
}

func allFailed(docs []*types.ClassifiedDocument) bool {
	for _, doc := range docs {
		if doc != nil && !doc.Failed() {
			return false
		}
	}
	return true
}
