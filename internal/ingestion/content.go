// Package ingestion turns fetched pages and documents into plain text
// suitable for classification. HTML is stripped of navigation chrome; PDFs
// contribute their opening pages only, which is where annual reports state
// the title, period and key figures.
package ingestion

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/finreport-discovery/internal/fetch"
)

// SnippetLimit caps the text handed to the classifier, in runes. Enough for
// a cover page and summary table, cheap enough to classify in one call.
const SnippetLimit = 5000

// Kind tags which extractor produced the content.
type Kind string

const (
	KindHTML Kind = "html"
	KindPDF  Kind = "pdf"
)

// Content is the extracted text of one fetched URL.
type Content struct {
	URL       string
	Title     string
	Text      string
	Kind      Kind
	Truncated bool
}

// Snippet returns the classification snippet: title and leading text,
// truncated to SnippetLimit.
func (c *Content) Snippet() string {
	text := c.Text
	if c.Title != "" {
		text = c.Title + "\n\n" + text
	}
	runes := []rune(text)
	if len(runes) <= SnippetLimit {
		return text
	}
	return string(runes[:SnippetLimit])
}

// FromResult extracts content from a fetch result, dispatching on the
// detected document type.
func FromResult(res *fetch.Result) (*Content, error) {
	if res.IsPDF() {
		return FromPDF(res.Body, res.URL)
	}
	return FromHTML(res.HTML(), res.URL)
}

// FromHTML extracts the page title and main body text from raw HTML.
func FromHTML(html, pageURL string) (*Content, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())

	// Remove common unwanted elements (nav, footer, scripts, ads, etc.)
	doc.Find("nav, footer, header, script, style, noscript, .ad, .advertisement, .ads, .sidebar, .cookie-banner, .popup").Remove()

	body := doc.Find("body")
	text := CleanText(body.Text())

	content := &Content{
		URL:   pageURL,
		Title: title,
		Text:  text,
		Kind:  KindHTML,
	}
	if len([]rune(text)) > SnippetLimit {
		content.Truncated = true
	}
	return content, nil
}
