// Package types defines the shared domain types for financial report discovery.
package types

// ContentType is the classifier's verdict on what a URL points at.
type ContentType string

// Content type values mirror the structured classifier's vocabulary.
const (
	ContentAnnualReport      ContentType = "ANNUAL_FINANCIAL_REPORT_DOCUMENT"
	ContentFinancialDataPage ContentType = "FINANCIAL_DATA_PAGE"
	ContentNewsOrPress       ContentType = "NEWS_ARTICLE_OR_PRESS_RELEASE"
	ContentInvestorHub       ContentType = "INVESTOR_HUB_OR_INDEX"
	ContentOther             ContentType = "OTHER"
	ContentError             ContentType = "ERROR"
	ContentUnknown           ContentType = "UNKNOWN"
)

// TriState is a yes/no answer that may also be unknown, as returned by the classifier.
type TriState string

// TriState values.
const (
	Yes     TriState = "YES"
	No      TriState = "NO"
	Unknown TriState = "UNKNOWN"
)

// IsYes reports whether the flag is affirmatively set.
func (t TriState) IsYes() bool {
	return t == Yes
}

// DataPoints flags the presence of the four required financial facts on a page.
type DataPoints struct {
	CountryHQ   TriState `json:"country_hq"`
	Employees   TriState `json:"employees"`
	NetTurnover TriState `json:"net_turnover"`
	TotalAssets TriState `json:"total_assets"`
}

// CountYes returns how many of the four data points are affirmatively present.
func (d DataPoints) CountYes() int {
	count := 0
	for _, v := range []TriState{d.CountryHQ, d.Employees, d.NetTurnover, d.TotalAssets} {
		if v.IsYes() {
			count++
		}
	}
	return count
}

// SelectionCategory is assigned by the selection engine, one per document.
type SelectionCategory string

// Selection categories.
const (
	CategoryError             SelectionCategory = "ERROR"
	CategoryPotentialFinRep   SelectionCategory = "POTENTIAL_FIN_REP"
	CategoryFinancialDataPage SelectionCategory = "POTENTIAL_OTHER_FINANCIAL_DATA_PAGE"
	CategoryReportLandingPage SelectionCategory = "POTENTIAL_OTHER_REPORT_LANDING_PAGE"
	CategoryOtherGeneric      SelectionCategory = "POTENTIAL_OTHER_GENERIC"
	CategoryDemotedFinRep     SelectionCategory = "DEMOTED_FIN_REP_AS_OTHER"
	CategoryUnset             SelectionCategory = ""
)

// OutputType is the row type emitted for a document in the final output.
type OutputType string

// Output types: one FIN_REP row then five OTHER rows per organization.
const (
	OutputFinRep OutputType = "FIN_REP"
	OutputOther  OutputType = "OTHER"
)

// FailureKind names the stage at which a URL's classification failed.
type FailureKind string

// Failure kinds recorded on error documents.
const (
	FailureFetch          FailureKind = "FETCH_FAILURE"
	FailureExtraction     FailureKind = "EXTRACTION_FAILURE"
	FailureClassification FailureKind = "CLASSIFICATION_FAILURE"
)

// ClassifiedDocument is the durable per-URL record for one organization.
// Exactly one of Err or a meaningful ContentType is set. CalculatedScore,
// SelectionCategory and FinalType are only valid after selection has run.
type ClassifiedDocument struct {
	URL              string      `json:"url"`
	ContentType      ContentType `json:"content_type"`
	RefYear          int         `json:"ref_year"` // 0 = unknown
	IsDirectFileLink TriState    `json:"is_direct_file_link"`
	DataPoints       DataPoints  `json:"data_points_present"`
	Err              string      `json:"error,omitempty"`
	Failure          FailureKind `json:"failure_kind,omitempty"`

	CalculatedScore   float64           `json:"calculated_score"`
	SelectionCategory SelectionCategory `json:"selection_category"`
	FinalType         OutputType        `json:"final_type,omitempty"`
}

// YearKnown reports whether the classifier resolved a reference year.
func (d *ClassifiedDocument) YearKnown() bool {
	return d.RefYear != 0
}

// Failed reports whether the record represents a fetch/classification failure.
func (d *ClassifiedDocument) Failed() bool {
	return d.Err != ""
}

// Organization identifies one company to discover reports for.
type Organization struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AlternateSlots is the fixed number of secondary references per organization.
const AlternateSlots = 5

// OrganizationResult is the selection output for one organization: one primary
// slot and exactly five alternate slots. Nil entries are explicit placeholders.
type OrganizationResult struct {
	Organization Organization          `json:"organization"`
	Primary      *ClassifiedDocument   `json:"primary"`
	Alternates   []*ClassifiedDocument `json:"alternates"` // always length AlternateSlots
}
