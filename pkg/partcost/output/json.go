// Package output renders processing reports as JSON, TOON, Markdown or PDF.
package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ukaji3/partcost-go/pkg/partcost/models"
)

// Format names a report encoding.
type Format string

const (
	FormatJSON     Format = "json"
	FormatTOON     Format = "toon"
	FormatMarkdown Format = "markdown"
	FormatPDF      Format = "pdf"
)

// ParseFormat resolves a format name; "md" is accepted for markdown.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "toon":
		return FormatTOON, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "pdf":
		return FormatPDF, nil
	}
	return "", fmt.Errorf("invalid format: %s (must be json, toon, markdown, or pdf)", s)
}

// Extension returns the file extension for per-sheet output files.
func (f Format) Extension() string {
	switch f {
	case FormatTOON:
		return ".toon"
	case FormatMarkdown:
		return ".md"
	case FormatPDF:
		return ".pdf"
	}
	return ".json"
}

// ToJSON serializes the reports to JSON. A single report is written as an
// object, several as an array.
func ToJSON(reports []*models.WorkbookReport, pretty bool) ([]byte, error) {
	var v any = reports
	if len(reports) == 1 {
		v = reports[0]
	}
	return marshal(v, pretty)
}

// SheetToJSON serializes a single sheet report to JSON.
func SheetToJSON(s *models.SheetReport, pretty bool) ([]byte, error) {
	return marshal(s, pretty)
}

func marshal(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// Render encodes the reports in the given format.
func Render(reports []*models.WorkbookReport, f Format, pretty bool) ([]byte, error) {
	switch f {
	case FormatTOON:
		s, err := ToTOON(reports)
		return []byte(s), err
	case FormatMarkdown:
		return []byte(ToMarkdown(reports)), nil
	case FormatPDF:
		return ToPDF(reports)
	}
	return ToJSON(reports, pretty)
}

// RenderSheet encodes one sheet report of book in the given format.
func RenderSheet(book *models.WorkbookReport, s *models.SheetReport, f Format, pretty bool) ([]byte, error) {
	if f == FormatJSON {
		return SheetToJSON(s, pretty)
	}
	view := *book
	view.Sheets = []models.SheetReport{*s}
	view.GrandTotal = s.Total
	return Render([]*models.WorkbookReport{&view}, f, pretty)
}
