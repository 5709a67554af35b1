package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateClassifiedDocument_Valid(t *testing.T) {
	doc := `{
		"url": "https://example.com/annual-report-2024.pdf",
		"content_type": "ANNUAL_FINANCIAL_REPORT_DOCUMENT",
		"ref_year": "2024",
		"is_direct_file_link": "YES",
		"data_points_present": {
			"country_hq": "YES",
			"employees": "NO",
			"net_turnover": "UNKNOWN",
			"total_assets": "YES"
		}
	}`

	assert.NoError(t, ValidateClassifiedDocument(doc))
}

func TestValidateClassifiedDocument_UnknownYearAllowed(t *testing.T) {
	doc := `{
		"content_type": "INVESTOR_HUB_OR_INDEX",
		"ref_year": "UNKNOWN"
	}`

	assert.NoError(t, ValidateClassifiedDocument(doc))
}

func TestValidateClassifiedDocument_BadContentType(t *testing.T) {
	doc := `{
		"content_type": "SOMETHING_ELSE",
		"ref_year": "2024"
	}`

	err := ValidateClassifiedDocument(doc)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Greater(t, len(validationErr.Errors), 0)
	assert.Equal(t, "content_type", validationErr.Errors[0].Field)
}

func TestValidateClassifiedDocument_MissingContentType(t *testing.T) {
	doc := `{"url": "https://example.com"}`

	err := ValidateClassifiedDocument(doc)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidateClassifiedDocument_BadYearFormat(t *testing.T) {
	doc := `{
		"content_type": "FINANCIAL_DATA_PAGE",
		"ref_year": "24"
	}`

	err := ValidateClassifiedDocument(doc)
	require.Error(t, err)
}

func TestValidateJSONString_MalformedDocument(t *testing.T) {
	err := ValidateJSONString(`{"type": "object"}`, `{ invalid json }`)
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}
