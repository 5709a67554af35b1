package search

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"sort"
	"strings"
	"unicode"
)

// ReportQueries builds the query battery run for one organization. The first
// two target years get dedicated PDF queries; the rest of the battery is
// year-agnostic.
func ReportQueries(companyName string, targetYears []string) []string {
	queries := make([]string, 0, 8)

	for i, year := range targetYears {
		if i >= 2 {
			break
		}
		queries = append(queries,
			fmt.Sprintf("%q annual consolidated financial statements report results FY %q filetype:pdf", companyName, year))
	}

	queries = append(queries,
		fmt.Sprintf("%q investor relations financial reports", companyName),
		fmt.Sprintf("%q sustainability report OR ESG report OR Environmental report OR Corporate report OR Responsibility report filetype:pdf", companyName),
		fmt.Sprintf("%q financial highlights OR key figures", companyName),
		fmt.Sprintf("site:*.%s.com investor OR financial OR report OR results OR Download filetype:pdf", simplifyName(companyName)),
	)

	if len(targetYears) >= 2 {
		queries = append(queries,
			fmt.Sprintf("%q \"annual report\" OR \"financial results\" %s OR %s", companyName, targetYears[1], targetYears[0]))
	}

	return queries
}

// CollectReportLinks runs the full query battery and returns the deduplicated
// union of hits, in discovery order. Individual query failures are logged
// and skipped.
func CollectReportLinks(ctx context.Context, provider Provider, companyName string, targetYears []string, perQuery int) []string {
	seen := make(map[string]bool)
	var links []string

	for _, query := range ReportQueries(companyName, targetYears) {
		results, err := provider.Search(ctx, query, perQuery)
		if err != nil {
			log.Printf("search query failed for %s: %v", companyName, err)
			continue
		}
		for _, result := range results {
			if seen[result.Link] {
				continue
			}
			seen[result.Link] = true
			links = append(links, result.Link)
		}
	}

	return links
}

// DiscoverWebsite finds the organization's official website, preferring
// candidates whose domain carries the company name or looks like an investor
// relations site. Returns "" when nothing plausible is found.
func DiscoverWebsite(ctx context.Context, provider Provider, companyName string, resultsToCheck int) string {
	query := fmt.Sprintf("%s official website investor", companyName)
	results, err := provider.Search(ctx, query, resultsToCheck)
	if err != nil {
		log.Printf("website discovery failed for %s: %v", companyName, err)
		return ""
	}
	if len(results) == 0 {
		return ""
	}

	simplified := simplifyName(companyName)

	type candidate struct {
		url   string
		score int
	}
	var candidates []candidate
	for _, result := range results {
		parsed, err := url.Parse(result.Link)
		if err != nil || parsed.Host == "" {
			continue
		}
		domain := strings.TrimPrefix(strings.ToLower(parsed.Host), "www.")

		score := 0
		if simplified != "" && strings.Contains(domain, simplified) {
			score += 2
		}
		if strings.Contains(domain, "investor") || strings.Contains(domain, "ir") {
			score += 1
		}
		candidates = append(candidates, candidate{url: result.Link, score: score})
	}

	if len(candidates) == 0 {
		return ""
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	return candidates[0].url
}

// simplifyName reduces a company name to the alphanumeric runes of its first
// word, for naive domain matching.
func simplifyName(companyName string) string {
	first := strings.ToLower(companyName)
	if idx := strings.IndexByte(first, ' '); idx >= 0 {
		first = first[:idx]
	}
	var sb strings.Builder
	for _, r := range first {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
