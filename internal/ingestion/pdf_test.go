package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPDFContent_EmptyTextGetsScanPlaceholder(t *testing.T) {
	content := pdfContent("https://acme.example/ar-2024.pdf", "", false)

	require.NotNil(t, content)
	assert.Equal(t, "https://acme.example/ar-2024.pdf", content.URL)
	assert.Equal(t, pdfScanPlaceholder, content.Text)
	assert.Equal(t, KindPDF, content.Kind)
	assert.False(t, content.Truncated)
}

func TestPDFContent_TextPassesThrough(t *testing.T) {
	content := pdfContent("https://acme.example/ar-2024.pdf", "Annual Report 2024", true)

	assert.Equal(t, "Annual Report 2024", content.Text)
	assert.Equal(t, KindPDF, content.Kind)
	assert.True(t, content.Truncated)
}

func TestFromPDF_MalformedInput(t *testing.T) {
	_, err := FromPDF([]byte("not a pdf at all"), "https://acme.example/broken.pdf")
	require.Error(t, err)

	_, err = FromPDF(nil, "https://acme.example/empty.pdf")
	require.Error(t, err)
}
