// Package selection turns a set of classified documents for one organization
// into a deterministic 1-primary + 5-alternate result. All functions are pure
// given their inputs; documents are owned by a single Select invocation.
package selection

import (
	"sort"

	"github.com/jonathan/finreport-discovery/internal/types"
)

// Scoring weights for the non-primary evidence paths.
const (
	landingPageWeight   = 0.5  // a landing page pointing at a report is worth half a direct document
	demotedFinRepWeight = 0.75 // a near-miss report is still valuable evidence, discounted
	minDataPointsForYes = 2    // fewer than 2 of the 4 data points is no evidence at all
	totalDataPoints     = 4.0
)

// YearMultiplier is the recency-decay weight applied to a document's
// reference year. Freshness dominates all other signals multiplicatively.
func YearMultiplier(year int) float64 {
	switch {
	case year >= 2023:
		return 1.0
	case year == 2022:
		return 0.8
	case year == 2021:
		return 0.6
	case year == 2020:
		return 0.4
	case year == 2019:
		return 0.2
	default:
		return 0.0
	}
}

// dataPointScore implements the data-point presence rule: zero unless at
// least two of the four points are affirmatively present.
func dataPointScore(points types.DataPoints) float64 {
	yes := points.CountYes()
	if yes < minDataPointsForYes {
		return 0
	}
	return float64(yes) / totalDataPoints
}

// categorize assigns exactly one selection category and score to a document.
func categorize(doc *types.ClassifiedDocument) {
	switch {
	case doc.Failed():
		doc.SelectionCategory = types.CategoryError
		doc.CalculatedScore = 0

	case doc.ContentType == types.ContentAnnualReport && doc.IsDirectFileLink.IsYes() && doc.YearKnown():
		// Direct, dated, full-report documents are the gold standard:
		// multiplier alone, no other weighting.
		doc.SelectionCategory = types.CategoryPotentialFinRep
		doc.CalculatedScore = YearMultiplier(doc.RefYear)

	case doc.ContentType == types.ContentFinancialDataPage && doc.YearKnown():
		doc.SelectionCategory = types.CategoryFinancialDataPage
		doc.CalculatedScore = dataPointScore(doc.DataPoints) * YearMultiplier(doc.RefYear)

	case doc.ContentType == types.ContentAnnualReport && doc.YearKnown():
		doc.SelectionCategory = types.CategoryReportLandingPage
		doc.CalculatedScore = landingPageWeight * YearMultiplier(doc.RefYear)

	default:
		doc.SelectionCategory = types.CategoryOtherGeneric
		doc.CalculatedScore = dataPointScore(doc.DataPoints) * YearMultiplier(doc.RefYear)
	}
}

// yearOrLowest maps an unknown reference year to -1 for tie-break purposes.
func yearOrLowest(doc *types.ClassifiedDocument) int {
	if !doc.YearKnown() {
		return -1
	}
	return doc.RefYear
}

// contentTypePreference ranks content types for the backfill order, which
// encodes "most plausible leftover" rather than "best evidence".
func contentTypePreference(ct types.ContentType) int {
	switch ct {
	case types.ContentAnnualReport:
		return 3
	case types.ContentFinancialDataPage:
		return 2
	case types.ContentInvestorHub:
		return 1
	default:
		return 0
	}
}

// Select computes the organization result for one organization's classified
// documents: exactly one primary slot and exactly five alternate slots,
// placeholders allowed, no URL appearing twice.
func Select(org types.Organization, docs []*types.ClassifiedDocument) *types.OrganizationResult {
	var finReps, otherSources []*types.ClassifiedDocument
	for _, doc := range docs {
		categorize(doc)
		if doc.SelectionCategory == types.CategoryPotentialFinRep {
			finReps = append(finReps, doc)
		} else {
			otherSources = append(otherSources, doc)
		}
	}

	// Primary: best direct report, but only if it carries any recency weight.
	sort.SliceStable(finReps, func(i, j int) bool {
		if finReps[i].CalculatedScore != finReps[j].CalculatedScore {
			return finReps[i].CalculatedScore > finReps[j].CalculatedScore
		}
		return finReps[i].RefYear > finReps[j].RefYear
	})

	var primary *types.ClassifiedDocument
	if len(finReps) > 0 && finReps[0].CalculatedScore > 0 {
		primary = finReps[0]
		primary.FinalType = types.OutputFinRep
	}

	// Alternates pool: demoted near-miss reports plus every other source.
	var pool []*types.ClassifiedDocument
	for _, doc := range finReps {
		if doc == primary {
			continue
		}
		demoted := *doc
		demoted.CalculatedScore = demotedFinRepWeight * YearMultiplier(demoted.RefYear)
		demoted.SelectionCategory = types.CategoryDemotedFinRep
		demoted.FinalType = types.OutputOther
		pool = append(pool, &demoted)
	}
	for _, doc := range otherSources {
		if primary != nil && doc.URL == primary.URL {
			continue
		}
		other := *doc
		other.FinalType = types.OutputOther
		pool = append(pool, &other)
	}

	sort.SliceStable(pool, func(i, j int) bool {
		if pool[i].CalculatedScore != pool[j].CalculatedScore {
			return pool[i].CalculatedScore > pool[j].CalculatedScore
		}
		return yearOrLowest(pool[i]) > yearOrLowest(pool[j])
	})

	seen := make(map[string]bool)
	if primary != nil {
		seen[primary.URL] = true
	}

	alternates := make([]*types.ClassifiedDocument, 0, types.AlternateSlots)
	for _, doc := range pool {
		if len(alternates) >= types.AlternateSlots {
			break
		}
		if seen[doc.URL] {
			continue
		}
		// Zero score with no year is no evidence at all; leave it to backfill.
		if doc.CalculatedScore <= 0 && !doc.YearKnown() {
			continue
		}
		alternates = append(alternates, doc)
		seen[doc.URL] = true
	}

	alternates = backfill(alternates, docs, seen)

	// Pad to the fixed cardinality with explicit placeholders.
	for len(alternates) < types.AlternateSlots {
		alternates = append(alternates, nil)
	}

	return &types.OrganizationResult{
		Organization: org,
		Primary:      primary,
		Alternates:   alternates,
	}
}

// backfill draws additional candidates from the original, unfiltered document
// list when fewer than five alternates were selected. Error documents and
// already-emitted URLs never backfill.
func backfill(alternates []*types.ClassifiedDocument, docs []*types.ClassifiedDocument, seen map[string]bool) []*types.ClassifiedDocument {
	if len(alternates) >= types.AlternateSlots {
		return alternates
	}

	var fillers []*types.ClassifiedDocument
	for _, doc := range docs {
		if doc.Failed() || seen[doc.URL] {
			continue
		}
		filler := *doc
		filler.FinalType = types.OutputOther
		fillers = append(fillers, &filler)
	}

	sort.SliceStable(fillers, func(i, j int) bool {
		yi, yj := yearOrLowest(fillers[i]), yearOrLowest(fillers[j])
		if yi != yj {
			return yi > yj
		}
		pi, pj := contentTypePreference(fillers[i].ContentType), contentTypePreference(fillers[j].ContentType)
		if pi != pj {
			return pi > pj
		}
		return fillers[i].CalculatedScore > fillers[j].CalculatedScore
	})

	for _, filler := range fillers {
		if len(alternates) >= types.AlternateSlots {
			break
		}
		if seen[filler.URL] {
			continue
		}
		alternates = append(alternates, filler)
		seen[filler.URL] = true
	}

	return alternates
}
