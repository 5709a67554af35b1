package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/finreport-discovery/internal/config"
	"github.com/jonathan/finreport-discovery/internal/pipeline"
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Run report discovery for a batch of organizations",
	Long: `Reads an organizations CSV (ID,NAME), discovers candidate report URLs per
organization via search and website scanning, classifies each URL, and writes
six result rows per organization (1 FIN_REP + 5 OTHER) to the output CSV.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values.`,
	RunE: runDiscover,
}

var (
	discoverConfigPath     string
	discoverInput          string
	discoverOutput         string
	discoverAPIKey         string
	discoverSearchKey      string
	discoverSearchEngineID string
	discoverTargetYears    []string
	discoverResultsToCheck int
	discoverRequestDelay   time.Duration
	discoverConcurrency    int
	discoverUseBrowser     bool
	discoverVerbose        bool
	discoverDatabaseURL    string
)

func init() {
	// Config file flag (processed first)
	discoverCmd.Flags().StringVar(&discoverConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	discoverCmd.Flags().StringVarP(&discoverInput, "input", "i", "", "Path to organizations CSV (columns ID,NAME)")
	discoverCmd.Flags().StringVarP(&discoverOutput, "output", "o", "", "Path for the results CSV")
	discoverCmd.Flags().StringSliceVar(&discoverTargetYears, "target-years", nil, "Reporting years of interest, most recent first (default 2024..2020)")
	discoverCmd.Flags().IntVar(&discoverResultsToCheck, "search-results", 0, "Search results to consider per query")
	discoverCmd.Flags().DurationVar(&discoverRequestDelay, "request-delay", 0, "Minimum delay between outbound requests")
	discoverCmd.Flags().IntVar(&discoverConcurrency, "concurrency", 0, "Concurrent URL classifications per organization")
	discoverCmd.Flags().BoolVar(&discoverUseBrowser, "use-browser", false, "Use headless browser for JS-heavy sites (requires Chrome)")
	discoverCmd.Flags().BoolVarP(&discoverVerbose, "verbose", "v", false, "Print detailed debug information")

	discoverCmd.Flags().StringVar(&discoverAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	discoverCmd.Flags().StringVar(&discoverSearchKey, "search-api-key", "", "Google Custom Search API key (defaults to GOOGLE_SEARCH_API_KEY env var)")
	discoverCmd.Flags().StringVar(&discoverSearchEngineID, "search-engine-id", "", "Programmable Search Engine ID (defaults to GOOGLE_SEARCH_ENGINE_ID env var)")
	discoverCmd.Flags().StringVar(&discoverDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(discoverCmd)
}

func runDiscover(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := buildDiscoverConfig(cmd, discoverConfigPath)
	if err != nil {
		return err
	}

	if cfg.Input == "" {
		return fmt.Errorf("--input is required (via flag or config)")
	}
	if cfg.Output == "" {
		return fmt.Errorf("--output is required (via flag or config)")
	}

	runner, err := pipeline.NewRunner(ctx, cfg, nil)
	if err != nil {
		return err
	}
	defer runner.Close()

	if err := runner.Run(ctx); err != nil {
		return fmt.Errorf("discovery run failed: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Done! Results written to %s\n", cfg.Output)
	return nil
}

// buildDiscoverConfig loads the optional config file, applies CLI overrides and
// environment fallbacks, and fills remaining gaps with package defaults.
func buildDiscoverConfig(cmd *cobra.Command, configPath string) (*config.Config, error) {
	var cfg config.Config
	if configPath != "" {
		loadedCfg, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loadedCfg
		if discoverVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", configPath)
		}
	}

	// CLI overrides: only when the flag was explicitly set
	if cmd.Flags().Changed("input") {
		cfg.Input = discoverInput
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = discoverOutput
	}
	if cmd.Flags().Changed("target-years") {
		cfg.TargetYears = discoverTargetYears
	}
	if cmd.Flags().Changed("search-results") {
		cfg.SearchResultsToCheck = discoverResultsToCheck
	}
	if cmd.Flags().Changed("request-delay") {
		cfg.RequestDelay = discoverRequestDelay
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency = discoverConcurrency
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = discoverUseBrowser
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = discoverVerbose
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = discoverAPIKey
	}
	if cmd.Flags().Changed("search-api-key") {
		cfg.SearchAPIKey = discoverSearchKey
	}
	if cmd.Flags().Changed("search-engine-id") {
		cfg.SearchEngineID = discoverSearchEngineID
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = discoverDatabaseURL
	}

	// Environment fills whatever the file and flags left empty
	merged := cfg.MergeWithDefaults(config.FromEnv())
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}
