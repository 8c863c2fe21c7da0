package parser

import (
	"github.com/ukaji3/partcost-go/pkg/partcost/models"
	"github.com/ukaji3/partcost-go/pkg/partcost/sheet"
)

// Range is an inclusive span of rows.
type Range struct {
	Start int
	End   int
}

// FindSectionMarkers returns, in ascending order, every row in which at
// least one text cell contains the matcher's marker token.
func FindSectionMarkers(r sheet.Reader, m *SectionMatcher) []int {
	var markers []int
	for row := 1; row <= r.MaxRow(); row++ {
		if _, ok := markerText(r, row, m); ok {
			markers = append(markers, row)
		}
	}
	return markers
}

// SectionRanges splits rows into one range per marker. Each range starts at
// its marker and ends on the row before the next marker; the last range ends
// at lastRow.
func SectionRanges(markers []int, lastRow int) []Range {
	ranges := make([]Range, 0, len(markers))
	for i, start := range markers {
		end := lastRow
		if i+1 < len(markers) {
			end = markers[i+1] - 1
		}
		ranges = append(ranges, Range{Start: start, End: end})
	}
	return ranges
}

// FindSections segments r into sections. The name comes from the first
// marker cell on the row that yields one.
func FindSections(r sheet.Reader, m *SectionMatcher) []models.Section {
	markers := FindSectionMarkers(r, m)
	ranges := SectionRanges(markers, r.MaxRow())

	sections := make([]models.Section, len(ranges))
	for i, rg := range ranges {
		sections[i] = models.Section{
			MarkerRow: rg.Start,
			Name:      sectionName(r, rg.Start, m),
			Start:     rg.Start,
			End:       rg.End,
		}
	}
	return sections
}

func markerText(r sheet.Reader, row int, m *SectionMatcher) (string, bool) {
	for col := 1; col <= r.MaxCol(); col++ {
		v := r.Cell(row, col)
		if v.IsText() && m.IsMarker(v.Text) {
			return v.Text, true
		}
	}
	return "", false
}

func sectionName(r sheet.Reader, row int, m *SectionMatcher) string {
	for col := 1; col <= r.MaxCol(); col++ {
		v := r.Cell(row, col)
		if !v.IsText() || !m.IsMarker(v.Text) {
			continue
		}
		if name, ok := m.Name(v.Text); ok {
			return name
		}
	}
	return ""
}

// RowTexts returns the text cells of row, left to right.
func RowTexts(r sheet.Reader, row int) []string {
	var out []string
	for col := 1; col <= r.MaxCol(); col++ {
		if v := r.Cell(row, col); v.IsText() {
			out = append(out, v.Text)
		}
	}
	return out
}
