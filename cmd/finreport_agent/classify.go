package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/finreport-discovery/internal/classify"
	"github.com/jonathan/finreport-discovery/internal/config"
	"github.com/jonathan/finreport-discovery/internal/fetch"
	"github.com/jonathan/finreport-discovery/internal/ingestion"
	"github.com/jonathan/finreport-discovery/internal/llm"
	"github.com/jonathan/finreport-discovery/internal/types"
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify a single URL",
	Long:  "Fetches one URL, extracts its content, classifies it with the LLM, and prints the resulting document record as JSON. Useful for debugging classification verdicts.",
	RunE:  runClassify,
}

var (
	classifyURL        string
	classifyAPIKey     string
	classifyTier       string
	classifyUseBrowser bool
	classifyVerbose    bool
)

func init() {
	classifyCmd.Flags().StringVarP(&classifyURL, "url", "u", "", "URL to classify (required)")
	classifyCmd.Flags().StringVar(&classifyAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	classifyCmd.Flags().StringVar(&classifyTier, "tier", "", "Model tier: lite, standard or advanced (default lite)")
	classifyCmd.Flags().BoolVar(&classifyUseBrowser, "use-browser", false, "Render the URL in a headless browser before classifying (requires Chrome)")
	classifyCmd.Flags().BoolVarP(&classifyVerbose, "verbose", "v", false, "Print detailed debug information")

	if err := classifyCmd.MarkFlagRequired("url"); err != nil {
		panic(fmt.Sprintf("failed to mark url flag as required: %v", err))
	}

	rootCmd.AddCommand(classifyCmd)
}

func runClassify(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	apiKey := classifyAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("API key required: set --api-key flag or GEMINI_API_KEY environment variable")
	}

	env := config.FromEnv()
	cfg := env.MergeWithDefaults(config.Config{})

	client, err := llm.NewClient(ctx, nil, apiKey)
	if err != nil {
		return fmt.Errorf("failed to initialize LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	classifier := classify.NewGeminiClassifier(client, cfg.TargetYears)
	if classifyTier != "" {
		tier, err := llm.ParseTier(classifyTier)
		if err != nil {
			return err
		}
		classifier = classifier.WithTier(tier)
	}

	var doc *types.ClassifiedDocument
	if classifyUseBrowser {
		doc, err = classifyRendered(ctx, classifier, classifyURL)
		if err != nil {
			return err
		}
	} else {
		adapter := classify.NewAdapter(classifier, fetch.DefaultOptions(), cfg.ClassifyAttempts, cfg.ClassifyRetryDelay, classifyVerbose)
		doc = adapter.ClassifyURL(ctx, classifyURL)
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}
	_, _ = fmt.Fprintln(os.Stdout, string(out))
	return nil
}

// classifyRendered renders the URL in a throwaway browser session and
// classifies the rendered content directly.
func classifyRendered(ctx context.Context, classifier classify.Classifier, url string) (*types.ClassifiedDocument, error) {
	html, err := fetch.RenderSimple(ctx, url, classifyVerbose)
	if err != nil {
		return nil, fmt.Errorf("browser rendering failed: %w", err)
	}

	content, err := ingestion.FromHTML(html, url)
	if err != nil {
		return nil, fmt.Errorf("failed to extract content: %w", err)
	}

	doc, err := classifier.Classify(ctx, url, content.Title, content.Snippet())
	if err != nil {
		return nil, fmt.Errorf("classification failed: %w", err)
	}
	return doc, nil
}
