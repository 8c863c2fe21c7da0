package pricing

import (
	"testing"

	"github.com/ukaji3/partcost-go/pkg/partcost/models"
	"github.com/ukaji3/partcost-go/pkg/partcost/sheet"
)

func TestNearest(t *testing.T) {
	table := NewTable(
		models.PriceRow{Row: 2, Thickness: 5, ContourUnitPrice: 100, CutUnitPrice: 20},
		models.PriceRow{Row: 3, Thickness: 10, ContourUnitPrice: 150, CutUnitPrice: 30},
	)

	tests := []struct {
		query    float64
		expected int
	}{
		{7, 2},
		{8, 3},
		{5, 2},
		{100, 3},
		{-1, 2},
		// Equidistant: the first row wins.
		{7.5, 2},
	}

	for _, tt := range tests {
		got, ok := table.Nearest(tt.query)
		if !ok {
			t.Fatalf("Nearest(%v) found nothing", tt.query)
		}
		if got.Row != tt.expected {
			t.Errorf("Nearest(%v) = row %d, expected row %d", tt.query, got.Row, tt.expected)
		}
	}
}

func TestNearestUnsortedDuplicates(t *testing.T) {
	table := NewTable(
		models.PriceRow{Row: 2, Thickness: 20, ContourUnitPrice: 1},
		models.PriceRow{Row: 3, Thickness: 4, ContourUnitPrice: 2},
		models.PriceRow{Row: 4, Thickness: 4, ContourUnitPrice: 3},
	)
	got, ok := table.Nearest(4)
	if !ok || got.Row != 3 {
		t.Errorf("Expected first duplicate row 3, got %+v", got)
	}
}

func TestNearestEmpty(t *testing.T) {
	if _, ok := NewTable().Nearest(5); ok {
		t.Error("Expected no match from an empty table")
	}
	var nilTable *Table
	if _, ok := nilTable.Nearest(5); ok {
		t.Error("Expected no match from a nil table")
	}
}

func TestLoadTable(t *testing.T) {
	g := sheet.GridFromValues(DefaultSheetName, [][]any{
		{"Thickness", "Tube", "Contour", "Cut"},
		{3, 500, 80, 15},
		{"n/a", 1, 2, 3},
		{nil, 1, 2, 3},
		{"5", nil, 100, nil},
		{6, "x", "bad", 30},
	})

	table := LoadTable(g)
	if table.Len() != 2 {
		t.Fatalf("Expected 2 usable rows, got %d", table.Len())
	}

	first, ok := table.Nearest(3)
	if !ok || first.Row != 2 || first.Thickness != 3 || first.ContourUnitPrice != 80 || first.CutUnitPrice != 15 {
		t.Errorf("Unexpected first row %+v", first)
	}
	if first.TubePrice == nil || *first.TubePrice != 500 {
		t.Errorf("Expected tube price 500, got %v", first.TubePrice)
	}

	// Empty cut price reads as zero.
	second, ok := table.Nearest(5)
	if !ok || second.Row != 5 || second.Thickness != 5 || second.CutUnitPrice != 0 || second.TubePrice != nil {
		t.Errorf("Unexpected second row %+v", second)
	}

	// Row 6 has an unparseable contour price, so 6 resolves to the 5-row.
	got, ok := table.Nearest(6)
	if !ok || got.Row != 5 {
		t.Errorf("Nearest(6) = %+v, expected row 5", got)
	}
}

func TestTubePrice(t *testing.T) {
	g := sheet.GridFromValues(DefaultSheetName, [][]any{
		{"Thickness", "Tube", "Contour", "Cut"},
		{4, nil, 1, 1},
		{4.005, 250, 1, 1},
		{5, 300, "bad", 1},
		{5, 999, 1, 1},
	})
	table := LoadTable(g)

	tests := []struct {
		thickness float64
		expected  float64
		found     bool
	}{
		{4, 250, true},
		// Rows with unusable contour prices still carry tube prices.
		{5, 300, true},
		{6, 0, false},
	}

	for _, tt := range tests {
		got, ok := table.TubePrice(tt.thickness, DefaultTubeTolerance)
		if ok != tt.found || got != tt.expected {
			t.Errorf("TubePrice(%v) = (%v, %v), expected (%v, %v)", tt.thickness, got, ok, tt.expected, tt.found)
		}
	}
}
