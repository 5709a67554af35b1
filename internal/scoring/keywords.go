// Package scoring implements the heuristic link relevance rubric used to find
// navigation pages and report-like links on company websites. The rubric is
// table-driven: keyword lists and weights live here, the control flow in
// linkscorer.go never changes when a language or term is added.
package scoring

// PrimaryReportKeywords are strong indicators that a link points at an annual
// financial report. Matching is case-insensitive; href matching ignores spaces.
func PrimaryReportKeywords() []string {
	return []string{
		"annual report", "financial report", "form 10-k", "10-k", "20-f", "sec filing",
		"financial results", "financial statements", "shareholder report", "annual accounts",
		"consolidated financial", "statutory accounts",
		// German
		"jahresbericht", "geschäftsbericht", "finanzbericht",
		// French
		"rapport annuel", "états financiers",
		// Greek
		"ετήσια αναφορά", "οικονομική αναφορά", "έντυπο 10-k",
		"κατάθεση sec", "οικονομικά αποτελέσματα", "οικονομικές καταστάσεις",
		"αναφορά μετόχων", "ετήσιοι λογαριασμοί", "ενοποιημένες οικονομικές",
		"νομικοί λογαριασμοί",
	}
}

// SecondaryReportKeywords are weak synonyms that also appear on quarterly or
// news pages; they only contribute when no strong signal has fired yet.
func SecondaryReportKeywords() []string {
	return []string{
		"results", "report", "filing", "financials", "accounts",
		"αποτελέσματα", "αναφορά", "κατάθεση", "οικονομικά", "λογαριασμοί",
	}
}

// AvoidKeywords mark interim or presentation material that is not a full
// annual report.
func AvoidKeywords() []string {
	return []string{
		"quarterly", "q1", "q2", "q3", "q4", "interim", "half-year", "halbjahres", "semi-annual",
		"quartalsbericht", "presentation", "earnings call", "webcast", "investor day",
		"fact sheet", "summary",
		"τριμηνιαίο", "ενδιάμεσο", "εξαμηνιαίο", "τριμηνιαία έκθεση", "παρουσίαση",
		"τηλεδιάσκεψη αποτελεσμάτων", "ημερίδα επενδυτών", "ενημερωτικό δελτίο",
		"περίληψη",
	}
}

// InvestorRelationsKeywords locate the investor relations page from a
// homepage, in priority order (earlier entries win ties).
func InvestorRelationsKeywords() []string {
	return []string{
		"investor relations", "investors", "für investoren", "investisseur",
		"shareholder information",
		"επενδυτικές σχέσεις", "επενδυτές", "για επενδυτές", "επενδυτής",
		"πληροφορίες μετόχων",
	}
}

// ReportsPageKeywords locate a reports/financials index page, in priority order.
func ReportsPageKeywords() []string {
	return []string{
		"financial reports", "financial results", "annual reports", "sec filings",
		"reports", "publications", "financial statements", "berichte",
		"rapports financiers", "downloads", "archive",
		"οικονομικές αναφορές", "οικονομικά αποτελέσματα", "ετήσιες αναφορές",
		"καταθέσεις", "καταθέσεις sec", "αναφορές", "εκδόσεις",
		"οικονομικές καταστάσεις", "λήψεις", "αρχείο",
	}
}

// filingSiteMarkers whitelist off-domain URLs that still plausibly carry the
// organization's regulatory filings.
var filingSiteMarkers = []string{"sec.gov", "sedar.com", "filing", "document"}

// listingPathMarkers identify pages that look like pure document indexes,
// eligible for the broad PDF fallback scan.
var listingPathMarkers = []string{"/reports", "/financials", "/downloads", "/archive", "/filings"}

// documentExtensions are file types a navigation target must not have; a
// navigation page is page-like, never a downloadable document.
var documentExtensions = []string{
	".pdf", ".xls", ".xlsx", ".doc", ".docx", ".zip", ".jpg", ".png",
}

// Rubric weights. Kept together so the whole scoring table reads in one place.
const (
	weightTargetYear       = 5
	weightPlausibleYear    = 2
	weightPrimaryKeyword   = 3
	weightPDF              = 4
	weightSecondaryKeyword = 1
	penaltyAvoidStrong     = 1 // applied when the candidate is already strong
	penaltyAvoidWeak       = 3

	// acceptThreshold admits a candidate outright; pdfAcceptThreshold admits
	// a PDF carrying an explicit target year at a lower bar, since file type
	// plus year is itself strong evidence.
	acceptThreshold    = 4
	pdfAcceptThreshold = 2
	strongScore        = 5

	// plausibleYearWindow bounds how far before the first target year a
	// 4-digit year may fall and still earn the weak year bonus.
	plausibleYearWindow = 5
)
