// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/finreport-discovery/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintCandidateURLs outputs the discovered candidate URLs before classification.
func (p *Printer) PrintCandidateURLs(org types.Organization, urls []string) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Candidates found: %d\n", len(urls)))

	count := min(len(urls), maxItemsToShow)
	if count > 0 {
		sb.WriteString("\n")
	}
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("• %s\n", truncate(urls[i], 62)))
	}
	if len(urls) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(urls)-maxItemsToShow))
	}

	title := fmt.Sprintf("DISCOVERED URLS - %s (%s)", org.Name, org.ID)
	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintClassifiedDocuments outputs a per-URL classification summary.
func (p *Printer) PrintClassifiedDocuments(org types.Organization, docs []*types.ClassifiedDocument) {
	if len(docs) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Classified %d documents:\n\n", len(docs)))

	count := min(len(docs), maxItemsToShow)
	for i := 0; i < count; i++ {
		doc := docs[i]
		sb.WriteString(fmt.Sprintf("• %s\n", truncate(doc.URL, 62)))
		if doc.Failed() {
			sb.WriteString(fmt.Sprintf("  ✗ %s\n", truncate(doc.Err, 60)))
		} else {
			sb.WriteString(fmt.Sprintf("  %s  year=%s  direct=%s  data=%d/4\n",
				doc.ContentType, yearLabel(doc), doc.IsDirectFileLink, doc.DataPoints.CountYes()))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(docs) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more documents", len(docs)-maxItemsToShow))
	}

	title := fmt.Sprintf("CLASSIFICATION - %s", org.Name)
	p.printBox(title, sb.String())
}

// PrintOrganizationResult outputs the final selection for one organization.
func (p *Printer) PrintOrganizationResult(result *types.OrganizationResult) {
	if result == nil {
		return
	}

	var sb strings.Builder

	if result.Primary != nil {
		sb.WriteString(fmt.Sprintf("FIN_REP  %s\n", truncate(result.Primary.URL, 60)))
		sb.WriteString(fmt.Sprintf("         year=%s  score=%.2f\n", yearLabel(result.Primary), result.Primary.CalculatedScore))
	} else {
		sb.WriteString("FIN_REP  (none found)\n")
	}
	sb.WriteString("\n")

	for i, alt := range result.Alternates {
		if alt == nil {
			sb.WriteString(fmt.Sprintf("OTHER %d  (empty)\n", i+1))
			continue
		}
		sb.WriteString(fmt.Sprintf("OTHER %d  %s\n", i+1, truncate(alt.URL, 60)))
		sb.WriteString(fmt.Sprintf("         year=%s  %s\n", yearLabel(alt), alt.SelectionCategory))
	}

	title := fmt.Sprintf("SELECTION - %s (%s)", result.Organization.Name, result.Organization.ID)
	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRunSummary outputs aggregate counts at the end of a run.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintRunSummary(processed, withPrimary, failed int) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Organizations processed:  %d\n", processed))
	sb.WriteString(fmt.Sprintf("Primary report found:     %d\n", withPrimary))
	sb.WriteString(fmt.Sprintf("Failed:                   %d", failed))
	p.printBox("RUN SUMMARY", sb.String())
}

func yearLabel(doc *types.ClassifiedDocument) string {
	if !doc.YearKnown() {
		return "?"
	}
	return fmt.Sprintf("%d", doc.RefYear)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
