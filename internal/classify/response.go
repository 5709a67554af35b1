package classify

import (
	"encoding/json"
	"strconv"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"

	"github.com/jonathan/finreport-discovery/internal/llm"
	"github.com/jonathan/finreport-discovery/internal/schemas"
	"github.com/jonathan/finreport-discovery/internal/types"
)

// rawResponse mirrors the JSON shape the classification prompt asks for.
type rawResponse struct {
	URL              string        `json:"url"`
	ContentType      string        `json:"content_type"`
	RefYear          string        `json:"ref_year"`
	IsDirectFileLink string        `json:"is_direct_file_link"`
	DataPoints       rawDataPoints `json:"data_points_present"`
}

type rawDataPoints struct {
	CountryHQ   string `json:"country_hq"`
	Employees   string `json:"employees"`
	NetTurnover string `json:"net_turnover"`
	TotalAssets string `json:"total_assets"`
}

// ParseResponse turns raw model output into a ClassifiedDocument. The text is
// stripped of markdown fences, repaired if the model emitted sloppy JSON, and
// validated against the response schema before being trusted.
func ParseResponse(responseText, url string) (*types.ClassifiedDocument, error) {
	cleaned := llm.CleanJSONBlock(responseText)

	repaired, err := jsonrepair.RepairJSON(cleaned)
	if err != nil {
		return nil, &ClassificationError{
			Message: "response is not recoverable JSON",
			Cause:   err,
		}
	}

	if err := schemas.ValidateClassifiedDocument(repaired); err != nil {
		return nil, &ClassificationError{
			Message: "response failed schema validation",
			Cause:   err,
		}
	}

	var raw rawResponse
	if err := json.Unmarshal([]byte(repaired), &raw); err != nil {
		return nil, &ClassificationError{
			Message: "failed to unmarshal classification JSON",
			Cause:   err,
		}
	}

	doc := &types.ClassifiedDocument{
		// The model echoes the URL back but is not trusted with it.
		URL:              url,
		ContentType:      parseContentType(raw.ContentType),
		RefYear:          parseRefYear(raw.RefYear),
		IsDirectFileLink: parseTriState(raw.IsDirectFileLink),
		DataPoints: types.DataPoints{
			CountryHQ:   parseTriState(raw.DataPoints.CountryHQ),
			Employees:   parseTriState(raw.DataPoints.Employees),
			NetTurnover: parseTriState(raw.DataPoints.NetTurnover),
			TotalAssets: parseTriState(raw.DataPoints.TotalAssets),
		},
	}
	return doc, nil
}

func parseContentType(s string) types.ContentType {
	switch types.ContentType(strings.ToUpper(strings.TrimSpace(s))) {
	case types.ContentAnnualReport:
		return types.ContentAnnualReport
	case types.ContentFinancialDataPage:
		return types.ContentFinancialDataPage
	case types.ContentNewsOrPress:
		return types.ContentNewsOrPress
	case types.ContentInvestorHub:
		return types.ContentInvestorHub
	case types.ContentOther:
		return types.ContentOther
	default:
		return types.ContentUnknown
	}
}

// parseRefYear maps "UNKNOWN" (and anything implausible) to 0.
func parseRefYear(s string) int {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "UNKNOWN") {
		return 0
	}
	year, err := strconv.Atoi(s)
	if err != nil || year < 1900 || year > 2100 {
		return 0
	}
	return year
}

func parseTriState(s string) types.TriState {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "YES":
		return types.Yes
	case "NO":
		return types.No
	default:
		return types.Unknown
	}
}

// errorDocument builds the failure record stored when a URL cannot be
// fetched or classified.
func errorDocument(url string, kind types.FailureKind, cause error) *types.ClassifiedDocument {
	msg := "unknown failure"
	if cause != nil {
		msg = cause.Error()
	}
	return &types.ClassifiedDocument{
		URL:              url,
		ContentType:      types.ContentError,
		IsDirectFileLink: types.Unknown,
		Err:              msg,
		Failure:          kind,
	}
}
