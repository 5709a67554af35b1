package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/finreport-discovery/internal/config"
	"github.com/jonathan/finreport-discovery/internal/discovery"
	"github.com/jonathan/finreport-discovery/internal/fetch"
	"github.com/jonathan/finreport-discovery/internal/scoring"
	"github.com/jonathan/finreport-discovery/internal/search"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan one organization's website for report links",
	Long:  "Discovers the organization's official website, walks its investor relations and reports pages, and prints every plausible report URL found. Useful for debugging discovery without burning classification quota.",
	RunE:  runScan,
}

var (
	scanName       string
	scanUseBrowser bool
	scanVerbose    bool
)

func init() {
	scanCmd.Flags().StringVarP(&scanName, "name", "n", "", "Organization name (required)")
	scanCmd.Flags().BoolVar(&scanUseBrowser, "use-browser", false, "Use headless browser for JS-heavy sites (requires Chrome)")
	scanCmd.Flags().BoolVarP(&scanVerbose, "verbose", "v", false, "Print detailed debug information")

	if err := scanCmd.MarkFlagRequired("name"); err != nil {
		panic(fmt.Sprintf("failed to mark name flag as required: %v", err))
	}

	rootCmd.AddCommand(scanCmd)
}

func runScan(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	env := config.FromEnv()
	cfg := env.MergeWithDefaults(config.Config{})
	if cfg.SearchAPIKey == "" || cfg.SearchEngineID == "" {
		return fmt.Errorf("GOOGLE_SEARCH_API_KEY and GOOGLE_SEARCH_ENGINE_ID environment variables are required")
	}

	limiter := fetch.NewLimiter(cfg.RequestDelay)
	fetchOpts := fetch.DefaultOptions()
	fetchOpts.Limiter = limiter

	provider, err := search.NewGoogleProvider(ctx, cfg.SearchAPIKey, cfg.SearchEngineID, limiter, scanVerbose)
	if err != nil {
		return fmt.Errorf("failed to initialize search provider: %w", err)
	}

	rubric, err := scoring.NewRubric(cfg.TargetYears)
	if err != nil {
		return fmt.Errorf("failed to build scoring rubric: %w", err)
	}

	var loader discovery.PageLoader = &discovery.HTTPLoader{Options: fetchOpts}
	if scanUseBrowser {
		session, err := fetch.NewSession(ctx, 0, scanVerbose)
		if err != nil {
			return fmt.Errorf("failed to start browser session: %w", err)
		}
		defer session.Close()
		loader = &discovery.BrowserLoader{Session: session}
	}

	scanner := discovery.NewScanner(provider, loader, rubric, cfg.SearchResultsToCheck, scanVerbose)
	urls := scanner.ScanWebsite(ctx, scanName)

	if len(urls) == 0 {
		_, _ = fmt.Fprintf(os.Stdout, "No report links found for %q\n", scanName)
		return nil
	}

	_, _ = fmt.Fprintf(os.Stdout, "Found %d candidate URLs for %q:\n", len(urls), scanName)
	for _, url := range urls {
		_, _ = fmt.Fprintf(os.Stdout, "  %s\n", url)
	}
	return nil
}
