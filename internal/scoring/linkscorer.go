package scoring

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// LinkCandidate is one outbound link collected while scanning a page.
// Transient: produced by CollectLinkCandidates and consumed immediately.
type LinkCandidate struct {
	Href        string // raw href attribute
	AnchorText  string // visible anchor text, untrimmed case
	ResolvedURL string // href resolved against the page URL
}

// ScoredLink is the rubric's verdict on a single candidate.
type ScoredLink struct {
	URL         string
	Score       int
	MatchedYear string // set only when an explicit target year matched
	Accepted    bool
}

// Rubric bundles the compiled keyword/year tables for report-link scoring.
// Build one per page-scan batch; Score is pure and safe for concurrent use.
type Rubric struct {
	targetYears  []string
	yearPatterns []*regexp.Regexp
	anyYear      *regexp.Regexp
	currentYear  int
	minimumYear  int

	primary   []string
	secondary []string
	avoid     []string
}

// anyYearPattern matches any plausible 4-digit year (late 80s onward).
var anyYearPattern = regexp.MustCompile(`\b(19[89]\d|20\d{2})\b`)

// NewRubric compiles a report-extraction rubric for the given target years,
// most recent first. The default keyword tables are used.
func NewRubric(targetYears []string) (*Rubric, error) {
	if len(targetYears) == 0 {
		return nil, fmt.Errorf("scoring: at least one target year is required")
	}

	patterns := make([]*regexp.Regexp, 0, len(targetYears))
	for _, year := range targetYears {
		p, err := regexp.Compile(`\b` + regexp.QuoteMeta(year) + `\b`)
		if err != nil {
			return nil, fmt.Errorf("scoring: invalid target year %q: %w", year, err)
		}
		patterns = append(patterns, p)
	}

	firstTarget := 0
	if _, err := fmt.Sscanf(targetYears[0], "%d", &firstTarget); err != nil {
		return nil, fmt.Errorf("scoring: target year %q is not numeric: %w", targetYears[0], err)
	}

	return &Rubric{
		targetYears:  targetYears,
		yearPatterns: patterns,
		anyYear:      anyYearPattern,
		currentYear:  time.Now().Year(),
		minimumYear:  firstTarget - plausibleYearWindow,
		primary:      PrimaryReportKeywords(),
		secondary:    SecondaryReportKeywords(),
		avoid:        AvoidKeywords(),
	}, nil
}

// Score applies the report-extraction rubric to one anchor/href pair.
func (r *Rubric) Score(anchorText, href string) ScoredLink {
	text := strings.ToLower(strings.TrimSpace(anchorText))
	normalizedHref := strings.ToLower(href)
	isPDF := strings.HasSuffix(normalizedHref, ".pdf")

	result := ScoredLink{URL: href}

	// Explicit target year beats any other year signal.
	for i, pattern := range r.yearPatterns {
		if pattern.MatchString(text) || pattern.MatchString(normalizedHref) {
			result.Score += weightTargetYear
			result.MatchedYear = r.targetYears[i]
			break
		}
	}
	if result.MatchedYear == "" {
		if year, ok := r.findPlausibleYear(text, normalizedHref); ok && year >= r.minimumYear && year <= r.currentYear {
			result.Score += weightPlausibleYear
		}
	}

	for _, kw := range r.primary {
		if strings.Contains(text, kw) || strings.Contains(normalizedHref, strings.ReplaceAll(kw, " ", "")) {
			result.Score += weightPrimaryKeyword
			break
		}
	}

	if isPDF {
		result.Score += weightPDF
	}

	if result.Score < strongScore {
		for _, kw := range r.secondary {
			if strings.Contains(text, kw) || strings.Contains(normalizedHref, kw) {
				result.Score += weightSecondaryKeyword
				break
			}
		}
	}

	for _, kw := range r.avoid {
		if strings.Contains(text, kw) || strings.Contains(normalizedHref, kw) {
			// A strong candidate may legitimately mention interim material
			// ("Annual Report and Q4 Results"), so it only loses a point.
			if result.Score > strongScore {
				result.Score -= penaltyAvoidStrong
			} else {
				result.Score -= penaltyAvoidWeak
			}
			break
		}
	}

	result.Accepted = result.Score >= acceptThreshold ||
		(isPDF && result.MatchedYear != "" && result.Score >= pdfAcceptThreshold)
	return result
}

// findPlausibleYear returns the first 4-digit year found in either string.
func (r *Rubric) findPlausibleYear(text, href string) (int, bool) {
	match := r.anyYear.FindString(text)
	if match == "" {
		match = r.anyYear.FindString(href)
	}
	if match == "" {
		return 0, false
	}
	var year int
	if _, err := fmt.Sscanf(match, "%d", &year); err != nil {
		return 0, false
	}
	return year, true
}

// skippableHref reports whether a raw href can never lead anywhere useful.
func skippableHref(href string) bool {
	return href == "" ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "#")
}
