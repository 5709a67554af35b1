// Package output reads the organization roster and writes discovery results.
// The result file carries exactly six rows per organization: one FIN_REP row
// followed by five OTHER rows, semicolon-delimited, empty SRC for unfilled
// slots.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jonathan/finreport-discovery/internal/types"
)

// resultHeader is the column layout of the results file.
var resultHeader = []string{"ID", "NAME", "TYPE", "SRC", "REFYEAR"}

// ReadOrganizations parses the input roster CSV (comma-delimited, with an
// ID and NAME column). Duplicate IDs are collapsed, first name wins.
func ReadOrganizations(r io.Reader) ([]types.Organization, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read roster header: %w", err)
	}

	idCol, nameCol := -1, -1
	for i, col := range header {
		switch strings.ToUpper(strings.TrimSpace(col)) {
		case "ID":
			idCol = i
		case "NAME":
			nameCol = i
		}
	}
	if idCol < 0 || nameCol < 0 {
		return nil, fmt.Errorf("roster must have ID and NAME columns, got %v", header)
	}

	var orgs []types.Organization
	seen := make(map[string]bool)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read roster row: %w", err)
		}
		if idCol >= len(record) || nameCol >= len(record) {
			continue
		}
		id := strings.TrimSpace(record[idCol])
		name := strings.TrimSpace(record[nameCol])
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		orgs = append(orgs, types.Organization{ID: id, Name: name})
	}

	return orgs, nil
}

// ReadOrganizationsFile reads the roster from a file path.
func ReadOrganizationsFile(path string) ([]types.Organization, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open roster %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return ReadOrganizations(f)
}

// Writer emits result rows as they are produced, one organization at a time.
type Writer struct {
	w           *csv.Writer
	wroteHeader bool
}

// NewWriter wraps an output stream in a semicolon-delimited result writer.
func NewWriter(w io.Writer) *Writer {
	cw := csv.NewWriter(w)
	cw.Comma = ';'
	return &Writer{w: cw}
}

// WriteResult appends the six rows for one organization.
func (w *Writer) WriteResult(result *types.OrganizationResult) error {
	if !w.wroteHeader {
		if err := w.w.Write(resultHeader); err != nil {
			return fmt.Errorf("failed to write result header: %w", err)
		}
		w.wroteHeader = true
	}

	org := result.Organization

	if err := w.w.Write(documentRow(org, types.OutputFinRep, result.Primary)); err != nil {
		return fmt.Errorf("failed to write FIN_REP row for %s: %w", org.ID, err)
	}

	for i := 0; i < types.AlternateSlots; i++ {
		var doc *types.ClassifiedDocument
		if i < len(result.Alternates) {
			doc = result.Alternates[i]
		}
		if err := w.w.Write(documentRow(org, types.OutputOther, doc)); err != nil {
			return fmt.Errorf("failed to write OTHER row for %s: %w", org.ID, err)
		}
	}

	w.w.Flush()
	return w.w.Error()
}

// Flush forces buffered rows out.
func (w *Writer) Flush() error {
	w.w.Flush()
	return w.w.Error()
}

// documentRow renders one document (or an empty placeholder) as a record.
func documentRow(org types.Organization, rowType types.OutputType, doc *types.ClassifiedDocument) []string {
	src, year := "", ""
	if doc != nil {
		src = doc.URL
		if doc.YearKnown() {
			year = strconv.Itoa(doc.RefYear)
		}
	}
	return []string{org.ID, org.Name, string(rowType), src, year}
}
