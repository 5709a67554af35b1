package scoring

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// CollectLinkCandidates parses HTML and returns every anchor as a
// LinkCandidate with its href resolved against the page URL. Mail, script
// and fragment links are dropped here so callers never see them.
func CollectLinkCandidates(htmlContent, pageURL string) ([]LinkCandidate, error) {
	base, err := url.Parse(pageURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, &LinkExtractionError{
			Message: "invalid page URL: " + pageURL,
			Cause:   err,
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, &LinkExtractionError{
			Message: "failed to parse HTML",
			Cause:   err,
		}
	}

	var links []LinkCandidate
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, exists := s.Attr("href")
		if !exists || skippableHref(href) {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		resolved := base.ResolveReference(ref)
		resolved.Fragment = ""
		links = append(links, LinkCandidate{
			Href:        href,
			AnchorText:  s.Text(),
			ResolvedURL: resolved.String(),
		})
	})

	return links, nil
}

// ExtractReportLinks collects the set of plausible report URLs from a page's
// outbound links. Links are considered only when they stay on the
// organization's registrable domain or carry a known filing-repository
// marker. When nothing scores high enough and the page itself looks like a
// document index, every same-site PDF is taken unscored as a low-precision,
// high-recall safety net.
func ExtractReportLinks(pageURL string, links []LinkCandidate, homeDomain string, rubric *Rubric) map[string]struct{} {
	found := make(map[string]struct{})
	homeHost := hostOf(normalizeDomainURL(homeDomain))

	for _, link := range links {
		if skippableHref(link.Href) || link.ResolvedURL == "" {
			continue
		}
		if !SameSite(hostOf(link.ResolvedURL), homeHost) && !looksLikeFilingSite(link.ResolvedURL) {
			continue
		}
		scored := rubric.Score(link.AnchorText, link.Href)
		if scored.Accepted {
			found[link.ResolvedURL] = struct{}{}
		}
	}

	if len(found) == 0 && looksLikeListingPage(pageURL) {
		for _, link := range links {
			if !strings.HasSuffix(strings.ToLower(link.Href), ".pdf") {
				continue
			}
			if SameSite(hostOf(link.ResolvedURL), homeHost) {
				found[link.ResolvedURL] = struct{}{}
			}
		}
	}

	return found
}

// looksLikeFilingSite whitelists off-domain URLs hosted by known regulatory
// filing repositories.
func looksLikeFilingSite(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	for _, marker := range filingSiteMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// looksLikeListingPage reports whether the page URL itself suggests a pure
// document index, which qualifies for the broad PDF fallback.
func looksLikeListingPage(pageURL string) bool {
	lower := strings.ToLower(pageURL)
	for _, marker := range listingPathMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// normalizeDomainURL lets callers pass either a bare domain or a full URL as
// the organization home domain.
func normalizeDomainURL(domain string) string {
	if domain == "" {
		return ""
	}
	if !strings.Contains(domain, "://") {
		return "https://" + domain
	}
	return domain
}
