package selection

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/finreport-discovery/internal/types"
)

func org() types.Organization {
	return types.Organization{ID: "42", Name: "Acme Holdings"}
}

func directReport(url string, year int) *types.ClassifiedDocument {
	return &types.ClassifiedDocument{
		URL:              url,
		ContentType:      types.ContentAnnualReport,
		RefYear:          year,
		IsDirectFileLink: types.Yes,
	}
}

func dataPage(url string, year int, yesCount int) *types.ClassifiedDocument {
	points := types.DataPoints{CountryHQ: types.No, Employees: types.No, NetTurnover: types.No, TotalAssets: types.No}
	flags := []*types.TriState{&points.CountryHQ, &points.Employees, &points.NetTurnover, &points.TotalAssets}
	for i := 0; i < yesCount && i < len(flags); i++ {
		*flags[i] = types.Yes
	}
	return &types.ClassifiedDocument{
		URL:         url,
		ContentType: types.ContentFinancialDataPage,
		RefYear:     year,
		DataPoints:  points,
	}
}

func TestYearMultiplier(t *testing.T) {
	tests := []struct {
		year int
		want float64
	}{
		{2025, 1.0},
		{2024, 1.0},
		{2023, 1.0},
		{2022, 0.8},
		{2021, 0.6},
		{2020, 0.4},
		{2019, 0.2},
		{2018, 0.0},
		{1999, 0.0},
		{0, 0.0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, YearMultiplier(tt.year), "year %d", tt.year)
	}
}

func TestYearMultiplier_MonotonicallyNonIncreasing(t *testing.T) {
	prev := YearMultiplier(2026)
	for year := 2025; year >= 2015; year-- {
		cur := YearMultiplier(year)
		assert.LessOrEqual(t, cur, prev, "multiplier increased at year %d", year)
		prev = cur
	}
}

func TestSelect_SingleDirectReportBecomesPrimary(t *testing.T) {
	doc := directReport("https://acme.example/annual-2024.pdf", 2024)
	result := Select(org(), []*types.ClassifiedDocument{doc})

	require.NotNil(t, result.Primary)
	assert.Equal(t, doc.URL, result.Primary.URL)
	assert.Equal(t, 1.0, result.Primary.CalculatedScore)
	assert.Equal(t, types.OutputFinRep, result.Primary.FinalType)
	assert.Equal(t, types.CategoryPotentialFinRep, result.Primary.SelectionCategory)
}

func TestSelect_OutputAlwaysHasFiveAlternateSlots(t *testing.T) {
	inputs := [][]*types.ClassifiedDocument{
		nil,
		{directReport("https://acme.example/ar.pdf", 2024)},
	}

	// A large input set as well: 200 candidates.
	var big []*types.ClassifiedDocument
	for i := 0; i < 200; i++ {
		big = append(big, dataPage(fmt.Sprintf("https://acme.example/data/%d", i), 2023, 3))
	}
	inputs = append(inputs, big)

	for _, docs := range inputs {
		result := Select(org(), docs)
		assert.Len(t, result.Alternates, types.AlternateSlots)
	}
}

func TestSelect_NoURLAppearsTwice(t *testing.T) {
	docs := []*types.ClassifiedDocument{
		directReport("https://acme.example/ar-2024.pdf", 2024),
		directReport("https://acme.example/ar-2023.pdf", 2023),
		dataPage("https://acme.example/figures", 2023, 3),
		dataPage("https://acme.example/highlights", 2022, 2),
		{URL: "https://acme.example/news", ContentType: types.ContentNewsOrPress, RefYear: 2023},
		{URL: "https://acme.example/hub", ContentType: types.ContentInvestorHub, RefYear: 2024},
	}
	result := Select(org(), docs)

	seen := make(map[string]bool)
	if result.Primary != nil {
		seen[result.Primary.URL] = true
	}
	for _, alt := range result.Alternates {
		if alt == nil {
			continue
		}
		assert.False(t, seen[alt.URL], "duplicate URL %s", alt.URL)
		seen[alt.URL] = true
	}
}

func TestSelect_NoPrimaryWhenScoreIsZero(t *testing.T) {
	// A direct report far outside the recency window has multiplier 0.
	doc := directReport("https://acme.example/ar-2001.pdf", 2001)
	result := Select(org(), []*types.ClassifiedDocument{doc})

	assert.Nil(t, result.Primary)
}

func TestSelect_DataPointRule(t *testing.T) {
	strong := dataPage("https://acme.example/full-figures", 2023, 3)  // 3/4 -> 0.75
	weak := dataPage("https://acme.example/sparse-figures", 2023, 1) // 1/4 -> disqualified, 0

	result := Select(org(), []*types.ClassifiedDocument{weak, strong})

	require.NotNil(t, result.Alternates[0])
	assert.Equal(t, strong.URL, result.Alternates[0].URL)
	assert.Equal(t, 0.75, result.Alternates[0].CalculatedScore)

	// The weak page still appears (year known), but scored zero, ranked below.
	require.NotNil(t, result.Alternates[1])
	assert.Equal(t, weak.URL, result.Alternates[1].URL)
	assert.Equal(t, 0.0, result.Alternates[1].CalculatedScore)
}

func TestSelect_DemotedReportScoresBetweenLandingPageAndPrimary(t *testing.T) {
	primary := directReport("https://acme.example/ar-a.pdf", 2023)
	runnerUp := directReport("https://acme.example/ar-b.pdf", 2023)
	landing := &types.ClassifiedDocument{
		URL:              "https://acme.example/annual-report",
		ContentType:      types.ContentAnnualReport,
		RefYear:          2023,
		IsDirectFileLink: types.No,
	}

	result := Select(org(), []*types.ClassifiedDocument{landing, runnerUp, primary})

	require.NotNil(t, result.Primary)
	assert.Equal(t, 1.0, result.Primary.CalculatedScore)

	require.NotNil(t, result.Alternates[0])
	assert.Equal(t, runnerUp.URL, result.Alternates[0].URL)
	assert.Equal(t, 0.75, result.Alternates[0].CalculatedScore)
	assert.Equal(t, types.CategoryDemotedFinRep, result.Alternates[0].SelectionCategory)

	require.NotNil(t, result.Alternates[1])
	assert.Equal(t, landing.URL, result.Alternates[1].URL)
	assert.Equal(t, 0.5, result.Alternates[1].CalculatedScore)
	assert.Equal(t, types.CategoryReportLandingPage, result.Alternates[1].SelectionCategory)
}

func TestSelect_BackfillStopsAtFiveAndNeverDuplicates(t *testing.T) {
	docs := []*types.ClassifiedDocument{
		directReport("https://acme.example/ar.pdf", 2024),
	}
	// Ten no-evidence pages: unknown year, no data points. They only enter
	// via backfill.
	for i := 0; i < 10; i++ {
		docs = append(docs, &types.ClassifiedDocument{
			URL:         fmt.Sprintf("https://acme.example/page/%d", i),
			ContentType: types.ContentOther,
		})
	}

	result := Select(org(), docs)

	require.NotNil(t, result.Primary)
	assert.Len(t, result.Alternates, types.AlternateSlots)
	seen := map[string]bool{result.Primary.URL: true}
	for _, alt := range result.Alternates {
		require.NotNil(t, alt)
		assert.False(t, seen[alt.URL])
		seen[alt.URL] = true
	}
}

func TestSelect_BackfillPrefersReportsByYearThenType(t *testing.T) {
	docs := []*types.ClassifiedDocument{
		{URL: "https://acme.example/hub", ContentType: types.ContentInvestorHub},
		{URL: "https://acme.example/old-report", ContentType: types.ContentAnnualReport, RefYear: 2015},
		{URL: "https://acme.example/old-data", ContentType: types.ContentFinancialDataPage, RefYear: 2015},
	}
	result := Select(org(), docs)

	// All three have score 0 with either unknown year or stale year; only
	// the dated ones pass the pool's zero-evidence gate, the hub backfills.
	var urls []string
	for _, alt := range result.Alternates {
		if alt != nil {
			urls = append(urls, alt.URL)
		}
	}
	require.Len(t, urls, 3)
	// Pool entries (dated, report before data page via stable order on equal
	// score/year) precede the backfilled hub.
	assert.Equal(t, "https://acme.example/old-report", urls[0])
	assert.Equal(t, "https://acme.example/old-data", urls[1])
	assert.Equal(t, "https://acme.example/hub", urls[2])
}

func TestSelect_ErrorDocumentsNeverSelected(t *testing.T) {
	failed := &types.ClassifiedDocument{
		URL:         "https://acme.example/broken",
		ContentType: types.ContentError,
		Err:         "fetch timeout",
	}
	good := directReport("https://acme.example/ar.pdf", 2024)

	result := Select(org(), []*types.ClassifiedDocument{failed, good})

	require.NotNil(t, result.Primary)
	assert.Equal(t, good.URL, result.Primary.URL)
	for _, alt := range result.Alternates {
		if alt != nil {
			assert.NotEqual(t, failed.URL, alt.URL)
		}
	}
	assert.Equal(t, types.CategoryError, failed.SelectionCategory)
	assert.Equal(t, 0.0, failed.CalculatedScore)
}

func TestSelect_EmptyInputYieldsPlaceholders(t *testing.T) {
	result := Select(org(), nil)

	assert.Nil(t, result.Primary)
	require.Len(t, result.Alternates, types.AlternateSlots)
	for _, alt := range result.Alternates {
		assert.Nil(t, alt)
	}
}

func TestSelect_PrimaryTieBreaksOnYear(t *testing.T) {
	older := directReport("https://acme.example/ar-2023.pdf", 2023)
	newer := directReport("https://acme.example/ar-2024.pdf", 2024)

	// Both years carry multiplier 1.0; the newer year must win the tie.
	result := Select(org(), []*types.ClassifiedDocument{older, newer})

	require.NotNil(t, result.Primary)
	assert.Equal(t, newer.URL, result.Primary.URL)
}
