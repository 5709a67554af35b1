package ingestion

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// pdfPageLimit bounds how many pages are read from a PDF. The cover, table
// of contents and highlights of an annual report all sit at the front.
const pdfPageLimit = 3

// pdfScanPlaceholder stands in for PDFs that parse cleanly but carry no text
// layer, typically scanned image documents. The URL still gives the
// classifier enough signal to type them.
const pdfScanPlaceholder = "PDF content extracted (text might be image-based or empty)."

// FromPDF extracts text from the opening pages of a PDF document.
// The underlying reader panics on some malformed files, so this recovers and
// reports those as errors.
func FromPDF(body []byte, docURL string) (content *Content, err error) {
	defer func() {
		if r := recover(); r != nil {
			content = nil
			err = fmt.Errorf("malformed PDF %s: %v", docURL, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	pages := reader.NumPage()
	truncated := pages > pdfPageLimit
	if truncated {
		pages = pdfPageLimit
	}

	var allText strings.Builder
	for pageNum := 1; pageNum <= pages; pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page should not sink the document.
			continue
		}
		allText.WriteString(text)
		allText.WriteString("\n")
	}

	return pdfContent(docURL, CleanText(allText.String()), truncated), nil
}

// pdfContent assembles the extracted Content, substituting the scan
// placeholder when no text came out of a readable PDF.
func pdfContent(docURL, text string, truncated bool) *Content {
	if text == "" {
		return &Content{
			URL:  docURL,
			Text: pdfScanPlaceholder,
			Kind: KindPDF,
		}
	}
	return &Content{
		URL:       docURL,
		Text:      text,
		Kind:      KindPDF,
		Truncated: truncated || len([]rune(text)) > SnippetLimit,
	}
}
