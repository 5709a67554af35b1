package classify

import (
	"context"
	"strings"

	"github.com/jonathan/finreport-discovery/internal/llm"
	"github.com/jonathan/finreport-discovery/internal/prompts"
	"github.com/jonathan/finreport-discovery/internal/types"
)

// Classifier assigns a content type and reference year to one URL's content.
type Classifier interface {
	Classify(ctx context.Context, url, title, snippet string) (*types.ClassifiedDocument, error)
}

// GeminiClassifier classifies documents with a Gemini model via the shared
// LLM client.
type GeminiClassifier struct {
	client      llm.Client
	tier        llm.ModelTier
	targetYears []string
}

// NewGeminiClassifier builds a classifier on top of an existing LLM client.
// Classification is a simple extraction task, so TierLite is the default.
func NewGeminiClassifier(client llm.Client, targetYears []string) *GeminiClassifier {
	return &GeminiClassifier{
		client:      client,
		tier:        llm.TierLite,
		targetYears: targetYears,
	}
}

// WithTier overrides the model tier, for runs where lite-tier verdicts prove
// too noisy.
func (c *GeminiClassifier) WithTier(tier llm.ModelTier) *GeminiClassifier {
	c.tier = tier
	return c
}

// Classify sends one document snippet to the model and parses the verdict.
func (c *GeminiClassifier) Classify(ctx context.Context, url, title, snippet string) (*types.ClassifiedDocument, error) {
	prompt := c.buildPrompt(url, title, snippet)

	responseText, err := c.client.GenerateJSON(ctx, prompt, c.tier)
	if err != nil {
		return nil, &ClassificationError{
			Message: "failed to generate content from LLM",
			Cause:   err,
		}
	}

	return ParseResponse(responseText, url)
}

// buildPrompt constructs the classification prompt from the embedded template.
func (c *GeminiClassifier) buildPrompt(url, title, snippet string) string {
	template := prompts.MustGet("classify.json", "classify-document")
	return prompts.Format(template, map[string]string{
		"URL":         url,
		"Title":       title,
		"Snippet":     snippet,
		"TargetYears": strings.Join(c.targetYears, ", "),
	})
}
