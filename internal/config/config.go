// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
)

// Defaults applied by MergeWithDefaults when neither the config file nor the
// environment provides a value.
const (
	DefaultSearchResultsToCheck = 5
	DefaultClassifyAttempts     = 3
	DefaultClassifyRetryDelay   = 2 * time.Second
	DefaultRequestDelay         = 1 * time.Second
	DefaultConcurrency          = 4
)

// DefaultTargetYears lists the reporting years of interest, most recent first.
// The first entry drives the recency heuristics.
func DefaultTargetYears() []string {
	return []string{"2024", "2023", "2022", "2021", "2020"}
}

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via
// CLI flags or environment variables.
type Config struct {
	// Paths
	Input  string `json:"input,omitempty" validate:"omitempty,file"` // Path to organizations CSV
	Output string `json:"output,omitempty"`                          // Path for the results CSV

	// Credentials
	APIKey         string `json:"api_key,omitempty"`          // Gemini API key
	SearchAPIKey   string `json:"search_api_key,omitempty"`   // Google Custom Search API key
	SearchEngineID string `json:"search_engine_id,omitempty"` // Programmable Search Engine ID

	// Discovery behavior
	TargetYears          []string      `json:"target_years,omitempty" validate:"omitempty,dive,len=4,number"`
	SearchResultsToCheck int           `json:"search_results_to_check,omitempty" validate:"gte=0,lte=10"`
	RequestDelay         time.Duration `json:"request_delay,omitempty" validate:"gte=0"`
	UseBrowser           bool          `json:"use_browser,omitempty"` // Use headless browser for JS-heavy sites

	// Classification behavior
	ClassifyAttempts   int           `json:"classify_attempts,omitempty" validate:"gte=0,lte=10"`
	ClassifyRetryDelay time.Duration `json:"classify_retry_delay,omitempty" validate:"gte=0"`
	Concurrency        int           `json:"concurrency,omitempty" validate:"gte=0,lte=64"`

	// Behavior
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed debug information
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv builds a Config from environment variables. Call after godotenv has
// loaded any .env file so both sources are visible.
func FromEnv() Config {
	return Config{
		APIKey:         os.Getenv("GEMINI_API_KEY"),
		SearchAPIKey:   os.Getenv("GOOGLE_SEARCH_API_KEY"),
		SearchEngineID: os.Getenv("GOOGLE_SEARCH_ENGINE_ID"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required credentials since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return fmt.Errorf("config error: %w", err)
		}
		for _, fieldErr := range err.(validator.ValidationErrors) {
			return fmt.Errorf("config error: field %q failed %q validation", fieldErr.Field(), fieldErr.Tag())
		}
	}

	// Years must be in strictly descending order; the heuristics assume the
	// first entry is the most recent.
	for i := 1; i < len(c.TargetYears); i++ {
		if c.TargetYears[i] >= c.TargetYears[i-1] {
			return fmt.Errorf("config error: 'target_years' must be in descending order")
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults, then from the package defaults. This is used to apply config file
// values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Input == "" {
		result.Input = defaults.Input
	}
	if result.Output == "" {
		result.Output = defaults.Output
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.SearchAPIKey == "" {
		result.SearchAPIKey = defaults.SearchAPIKey
	}
	if result.SearchEngineID == "" {
		result.SearchEngineID = defaults.SearchEngineID
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	if len(result.TargetYears) == 0 {
		result.TargetYears = defaults.TargetYears
	}
	if len(result.TargetYears) == 0 {
		result.TargetYears = DefaultTargetYears()
	}

	// Int/duration fields: use default if zero
	if result.SearchResultsToCheck == 0 {
		result.SearchResultsToCheck = defaults.SearchResultsToCheck
	}
	if result.SearchResultsToCheck == 0 {
		result.SearchResultsToCheck = DefaultSearchResultsToCheck
	}
	if result.ClassifyAttempts == 0 {
		result.ClassifyAttempts = defaults.ClassifyAttempts
	}
	if result.ClassifyAttempts == 0 {
		result.ClassifyAttempts = DefaultClassifyAttempts
	}
	if result.ClassifyRetryDelay == 0 {
		result.ClassifyRetryDelay = defaults.ClassifyRetryDelay
	}
	if result.ClassifyRetryDelay == 0 {
		result.ClassifyRetryDelay = DefaultClassifyRetryDelay
	}
	if result.RequestDelay == 0 {
		result.RequestDelay = defaults.RequestDelay
	}
	if result.RequestDelay == 0 {
		result.RequestDelay = DefaultRequestDelay
	}
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}
	if result.Concurrency == 0 {
		result.Concurrency = DefaultConcurrency
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
