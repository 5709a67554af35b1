package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/finreport-discovery/internal/types"
)

func TestReadOrganizations(t *testing.T) {
	input := "ID,NAME\n1001,Acme Holdings\n1002,\"Beta, Inc.\"\n"

	orgs, err := ReadOrganizations(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []types.Organization{
		{ID: "1001", Name: "Acme Holdings"},
		{ID: "1002", Name: "Beta, Inc."},
	}, orgs)
}

func TestReadOrganizations_ExtraColumnsAndOrder(t *testing.T) {
	input := "NAME,COUNTRY,ID\nAcme,GR,42\n"

	orgs, err := ReadOrganizations(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, orgs, 1)
	assert.Equal(t, "42", orgs[0].ID)
	assert.Equal(t, "Acme", orgs[0].Name)
}

func TestReadOrganizations_DuplicateIDsCollapsed(t *testing.T) {
	input := "ID,NAME\n1,First\n1,Second\n2,Other\n"

	orgs, err := ReadOrganizations(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, orgs, 2)
	assert.Equal(t, "First", orgs[0].Name)
}

func TestReadOrganizations_MissingColumns(t *testing.T) {
	_, err := ReadOrganizations(strings.NewReader("CODE,TITLE\n1,Acme\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ID and NAME")
}

func TestReadOrganizations_BlankIDSkipped(t *testing.T) {
	orgs, err := ReadOrganizations(strings.NewReader("ID,NAME\n,Nameless\n7,Kept\n"))
	require.NoError(t, err)
	require.Len(t, orgs, 1)
	assert.Equal(t, "7", orgs[0].ID)
}

func TestWriteResult_FullResult(t *testing.T) {
	org := types.Organization{ID: "1001", Name: "Acme Holdings"}
	result := &types.OrganizationResult{
		Organization: org,
		Primary: &types.ClassifiedDocument{
			URL:     "https://acme.example/ar-2024.pdf",
			RefYear: 2024,
		},
		Alternates: []*types.ClassifiedDocument{
			{URL: "https://acme.example/financials", RefYear: 2023},
			{URL: "https://acme.example/ir"}, // year unknown
			nil,
			nil,
			nil,
		},
	}

	var sb strings.Builder
	w := NewWriter(&sb)
	require.NoError(t, w.WriteResult(result))
	require.NoError(t, w.Flush())

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "ID;NAME;TYPE;SRC;REFYEAR", lines[0])
	assert.Equal(t, "1001;Acme Holdings;FIN_REP;https://acme.example/ar-2024.pdf;2024", lines[1])
	assert.Equal(t, "1001;Acme Holdings;OTHER;https://acme.example/financials;2023", lines[2])
	assert.Equal(t, "1001;Acme Holdings;OTHER;https://acme.example/ir;", lines[3])
	assert.Equal(t, "1001;Acme Holdings;OTHER;;", lines[4])
	assert.Equal(t, "1001;Acme Holdings;OTHER;;", lines[5])
	assert.Equal(t, "1001;Acme Holdings;OTHER;;", lines[6])
}

func TestWriteResult_EmptyResultStillWritesSixRows(t *testing.T) {
	result := &types.OrganizationResult{
		Organization: types.Organization{ID: "9", Name: "Ghost Corp"},
		Alternates:   make([]*types.ClassifiedDocument, types.AlternateSlots),
	}

	var sb strings.Builder
	w := NewWriter(&sb)
	require.NoError(t, w.WriteResult(result))
	require.NoError(t, w.Flush())

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "9;Ghost Corp;FIN_REP;;", lines[1])
	for _, line := range lines[2:] {
		assert.Equal(t, "9;Ghost Corp;OTHER;;", line)
	}
}

func TestWriteResult_HeaderWrittenOnce(t *testing.T) {
	result := &types.OrganizationResult{
		Organization: types.Organization{ID: "1", Name: "A"},
		Alternates:   make([]*types.ClassifiedDocument, types.AlternateSlots),
	}

	var sb strings.Builder
	w := NewWriter(&sb)
	require.NoError(t, w.WriteResult(result))
	result.Organization = types.Organization{ID: "2", Name: "B"}
	require.NoError(t, w.WriteResult(result))

	assert.Equal(t, 1, strings.Count(sb.String(), "ID;NAME;TYPE;SRC;REFYEAR"))
	assert.Len(t, strings.Split(strings.TrimRight(sb.String(), "\n"), "\n"), 13)
}
