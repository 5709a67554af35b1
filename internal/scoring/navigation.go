package scoring

import (
	"sort"
	"strings"
)

// navCandidate is a link that matched a navigation keyword.
type navCandidate struct {
	url            string
	priority       int // keyword list index, lower is better
	textMatchBonus int // 2 when the keyword appeared in the anchor text
	textLength     int // shorter anchor text reads as a more direct label
}

// ResolveNavigation picks the single best navigation-page URL of the requested
// type (investor relations, reports index) from a page's outbound links.
// Keywords are matched in list order; the list order is the priority. Links
// leaving the page's registrable domain and links to downloadable documents
// are discarded outright. Returns "" when nothing matched.
func ResolveNavigation(links []LinkCandidate, baseURL string, keywords []string) string {
	baseHost := hostOf(baseURL)
	var candidates []navCandidate

	for _, link := range links {
		if skippableHref(link.Href) || link.ResolvedURL == "" {
			continue
		}
		if !SameSite(hostOf(link.ResolvedURL), baseHost) {
			continue
		}
		if hasDocumentExtension(link.ResolvedURL) {
			continue
		}

		text := strings.ToLower(strings.TrimSpace(link.AnchorText))
		href := strings.ToLower(link.Href)

		for i, keyword := range keywords {
			textMatch := strings.Contains(text, keyword)
			if !textMatch && !hrefMatchesKeyword(href, keyword) {
				continue
			}
			bonus := 0
			if textMatch {
				bonus = 2
			}
			candidates = append(candidates, navCandidate{
				url:            link.ResolvedURL,
				priority:       i,
				textMatchBonus: bonus,
				textLength:     len(strings.TrimSpace(link.AnchorText)),
			})
			break // first keyword wins for this link
		}
	}

	if len(candidates) == 0 {
		return ""
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].priority != candidates[j].priority {
			return candidates[i].priority < candidates[j].priority
		}
		if candidates[i].textMatchBonus != candidates[j].textMatchBonus {
			return candidates[i].textMatchBonus > candidates[j].textMatchBonus
		}
		return candidates[i].textLength < candidates[j].textLength
	})

	return candidates[0].url
}

// hrefMatchesKeyword checks a lowercased href for a segment-bounded keyword
// occurrence. Loose substring matching is deliberately avoided so "sec" never
// matches "section".
func hrefMatchesKeyword(href, keyword string) bool {
	joined := strings.ReplaceAll(keyword, " ", "")
	dashed := strings.ReplaceAll(keyword, " ", "-")
	return strings.Contains(href, "/"+joined+"/") ||
		strings.Contains(href, "/"+dashed+"/") ||
		strings.HasSuffix(href, joined) ||
		strings.HasSuffix(href, dashed) ||
		strings.Contains(href, joined+".") // investors.example.com
}

// hasDocumentExtension reports whether the URL points at a downloadable file
// rather than a navigable page.
func hasDocumentExtension(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	for _, ext := range documentExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
