package db

import (
	"encoding/json"
	"testing"

	"github.com/jonathan/finreport-discovery/internal/types"
)

func TestOrganizationResultRoundTrip(t *testing.T) {
	// Verifies the marshaling used by SaveOrganizationResult and the
	// unmarshaling used by GetOrganizationResult agree. Integration tests
	// cover the database operations themselves.
	result := &types.OrganizationResult{
		Organization: types.Organization{ID: "1001", Name: "Acme Holdings"},
		Primary: &types.ClassifiedDocument{
			URL:               "https://acme.example/ar-2024.pdf",
			ContentType:       types.ContentAnnualReport,
			RefYear:           2024,
			IsDirectFileLink:  types.Yes,
			CalculatedScore:   1.0,
			SelectionCategory: types.CategoryPotentialFinRep,
			FinalType:         types.OutputFinRep,
		},
		Alternates: []*types.ClassifiedDocument{
			{URL: "https://acme.example/financials", ContentType: types.ContentFinancialDataPage, RefYear: 2023},
			nil, nil, nil, nil,
		},
	}

	jsonBytes, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("Failed to marshal result: %v", err)
	}

	var got types.OrganizationResult
	if err := json.Unmarshal(jsonBytes, &got); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}

	if got.Organization.ID != "1001" {
		t.Errorf("Organization.ID = %q, want '1001'", got.Organization.ID)
	}
	if got.Primary == nil || got.Primary.URL != "https://acme.example/ar-2024.pdf" {
		t.Errorf("Primary = %+v, want the 2024 report", got.Primary)
	}
	if len(got.Alternates) != types.AlternateSlots {
		t.Errorf("Alternates count = %d, want %d", len(got.Alternates), types.AlternateSlots)
	}
	if got.Alternates[1] != nil {
		t.Errorf("Alternates[1] = %+v, want nil placeholder", got.Alternates[1])
	}
}

func TestClassifiedDocumentErrorRecordRoundTrip(t *testing.T) {
	doc := &types.ClassifiedDocument{
		URL:         "https://acme.example/broken",
		ContentType: types.ContentError,
		Err:         "fetch failed: status 503",
	}

	jsonBytes, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Failed to marshal document: %v", err)
	}

	var got types.ClassifiedDocument
	if err := json.Unmarshal(jsonBytes, &got); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}

	if !got.Failed() {
		t.Error("Failed() = false, want true")
	}
	if got.ContentType != types.ContentError {
		t.Errorf("ContentType = %q, want ERROR", got.ContentType)
	}
}
