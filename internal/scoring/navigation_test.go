package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveNavigation_PrefersEarlierKeyword(t *testing.T) {
	links := []LinkCandidate{
		{Href: "/shareholders", AnchorText: "Shareholder Information", ResolvedURL: "https://example.com/shareholders"},
		{Href: "/ir", AnchorText: "Investor Relations", ResolvedURL: "https://example.com/ir"},
	}

	got := ResolveNavigation(links, "https://example.com", InvestorRelationsKeywords())
	assert.Equal(t, "https://example.com/ir", got)
}

func TestResolveNavigation_TextMatchBeatsHrefOnlyMatch(t *testing.T) {
	links := []LinkCandidate{
		{Href: "/investors/", AnchorText: "More", ResolvedURL: "https://example.com/investors/"},
		{Href: "/about", AnchorText: "Investors", ResolvedURL: "https://example.com/about"},
	}

	got := ResolveNavigation(links, "https://example.com", []string{"investors"})
	assert.Equal(t, "https://example.com/about", got)
}

func TestResolveNavigation_ShorterAnchorWinsTies(t *testing.T) {
	links := []LinkCandidate{
		{Href: "/a", AnchorText: "Read all our reports here", ResolvedURL: "https://example.com/a"},
		{Href: "/b", AnchorText: "Reports", ResolvedURL: "https://example.com/b"},
	}

	got := ResolveNavigation(links, "https://example.com", []string{"reports"})
	assert.Equal(t, "https://example.com/b", got)
}

func TestResolveNavigation_SkipsOffSiteAndDocuments(t *testing.T) {
	links := []LinkCandidate{
		{Href: "https://other.example.net/investors", AnchorText: "Investors", ResolvedURL: "https://other.example.net/investors"},
		{Href: "/investors.pdf", AnchorText: "Investors", ResolvedURL: "https://example.com/investors.pdf"},
	}

	got := ResolveNavigation(links, "https://example.com", []string{"investors"})
	assert.Empty(t, got)
}

func TestResolveNavigation_AllowsSubdomains(t *testing.T) {
	links := []LinkCandidate{
		{Href: "https://ir.example.com/", AnchorText: "Investor Relations", ResolvedURL: "https://ir.example.com/"},
	}

	got := ResolveNavigation(links, "https://www.example.com", InvestorRelationsKeywords())
	assert.Equal(t, "https://ir.example.com/", got)
}

func TestHrefMatchesKeyword(t *testing.T) {
	assert.True(t, hrefMatchesKeyword("/investor-relations/", "investor relations"))
	assert.True(t, hrefMatchesKeyword("/en/investors/", "investors"))
	assert.True(t, hrefMatchesKeyword("/company/investors", "investors"))
	assert.True(t, hrefMatchesKeyword("https://investors.example.com/", "investors"))
	assert.False(t, hrefMatchesKeyword("/section", "sec"))
}

func TestHasDocumentExtension(t *testing.T) {
	assert.True(t, hasDocumentExtension("https://example.com/report.PDF"))
	assert.True(t, hasDocumentExtension("/files/data.xlsx"))
	assert.False(t, hasDocumentExtension("/reports"))
}

func TestRegistrableDomain(t *testing.T) {
	assert.Equal(t, "example.com", RegistrableDomain("www.example.com"))
	assert.Equal(t, "example.co.uk", RegistrableDomain("ir.example.co.uk"))
	assert.Equal(t, "", RegistrableDomain(""))
}

func TestSameSite(t *testing.T) {
	assert.True(t, SameSite("ir.example.com", "www.example.com"))
	assert.False(t, SameSite("example.com", "example.net"))
	assert.False(t, SameSite("", "example.com"))
}
