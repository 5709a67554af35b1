package search

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProvider replays canned results per query substring.
type stubProvider struct {
	results map[string][]Result
	queries []string
	err     error
}

func (s *stubProvider) Search(_ context.Context, query string, _ int) ([]Result, error) {
	s.queries = append(s.queries, query)
	if s.err != nil {
		return nil, s.err
	}
	for key, results := range s.results {
		if key == "" || strings.Contains(query, key) {
			return results, nil
		}
	}
	return nil, nil
}

func TestReportQueries_Battery(t *testing.T) {
	queries := ReportQueries("Acme Holdings", []string{"2024", "2023", "2022"})

	require.Len(t, queries, 7)
	assert.Contains(t, queries[0], `"2024"`)
	assert.Contains(t, queries[0], "filetype:pdf")
	assert.Contains(t, queries[1], `"2023"`)
	assert.Contains(t, queries[2], "investor relations financial reports")
	assert.Contains(t, queries[3], "sustainability report")
	assert.Contains(t, queries[5], "site:*.acme.com")
	assert.Contains(t, queries[6], `"annual report"`)
}

func TestReportQueries_SingleTargetYear(t *testing.T) {
	queries := ReportQueries("Acme", []string{"2024"})

	// One year query, no year-pair query at the end.
	require.Len(t, queries, 5)
	assert.Contains(t, queries[0], `"2024"`)
}

func TestCollectReportLinks_DeduplicatesAcrossQueries(t *testing.T) {
	provider := &stubProvider{
		results: map[string][]Result{
			"": {
				{Link: "https://acme.example/ar-2024.pdf"},
				{Link: "https://acme.example/ir"},
			},
		},
	}

	links := CollectReportLinks(context.Background(), provider, "Acme", []string{"2024", "2023"}, 5)

	assert.Equal(t, []string{"https://acme.example/ar-2024.pdf", "https://acme.example/ir"}, links)
	assert.Len(t, provider.queries, 7)
}

func TestCollectReportLinks_FailuresYieldEmptyList(t *testing.T) {
	provider := &stubProvider{err: errors.New("quota exceeded")}

	links := CollectReportLinks(context.Background(), provider, "Acme", []string{"2024", "2023"}, 5)

	assert.Empty(t, links)
	assert.Len(t, provider.queries, 7) // every query is still attempted
}

func TestDiscoverWebsite_PrefersNameMatchedDomain(t *testing.T) {
	provider := &stubProvider{
		results: map[string][]Result{
			"official website": {
				{Link: "https://news.aggregator.example/acme-profile"},
				{Link: "https://www.acme.com/"},
			},
		},
	}

	got := DiscoverWebsite(context.Background(), provider, "Acme Holdings", 5)
	assert.Equal(t, "https://www.acme.com/", got)
}

func TestDiscoverWebsite_InvestorDomainBonus(t *testing.T) {
	provider := &stubProvider{
		results: map[string][]Result{
			"official website": {
				{Link: "https://somewhere.example/"},
				{Link: "https://investor.example/"},
			},
		},
	}

	got := DiscoverWebsite(context.Background(), provider, "Zeta Group", 5)
	assert.Equal(t, "https://investor.example/", got)
}

func TestDiscoverWebsite_ErrorReturnsEmpty(t *testing.T) {
	provider := &stubProvider{err: errors.New("boom")}

	got := DiscoverWebsite(context.Background(), provider, "Acme", 5)
	assert.Empty(t, got)
}

func TestSimplifyName(t *testing.T) {
	assert.Equal(t, "acme", simplifyName("Acme Holdings Plc"))
	assert.Equal(t, "abc", simplifyName("A.B.C. Industries"))
	assert.Equal(t, "", simplifyName(""))
}
