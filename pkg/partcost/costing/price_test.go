package costing

import (
	"errors"
	"testing"

	"github.com/ukaji3/partcost-go/pkg/partcost/models"
	"github.com/ukaji3/partcost-go/pkg/partcost/parser"
	"github.com/ukaji3/partcost-go/pkg/partcost/pricing"
	"github.com/ukaji3/partcost-go/pkg/partcost/sheet"
)

var header = []any{"ID", "Part Name", "Qty", "Part Length(mm)", "Contour Qty", "Cut Length(mm)", "Price(₽)"}

func testTable() *pricing.Table {
	tube := 50.0
	return pricing.NewTable(
		models.PriceRow{Row: 2, Thickness: 5, ContourUnitPrice: 100, CutUnitPrice: 20},
		models.PriceRow{Row: 3, Thickness: 10, TubePrice: &tube, ContourUnitPrice: 150, CutUnitPrice: 30},
	)
}

func TestPriceSection(t *testing.T) {
	g := sheet.GridFromValues("Part Info", [][]any{
		{"Section: Frame A Толщина стенки: 5"},
		header,
		{"1", "bracket", 2, 1000, 1, 2000},
	})

	cost, err := New(DefaultRules()).PriceSection(g, testTable(), 1, 3)
	if err != nil {
		t.Fatalf("PriceSection failed: %v", err)
	}

	if cost.Total != 280 {
		t.Errorf("Expected section total 280, got %v", cost.Total)
	}
	if got := g.Cell(3, 7); got != models.Number(140) {
		t.Errorf("Expected unit price 140, got %+v", got)
	}
	if cost.Thickness != 5 || cost.Price.Row != 2 || cost.LogisticsCost != 0 {
		t.Errorf("Unexpected metadata %+v", cost)
	}
	if len(cost.Items) != 1 || cost.Items[0].ID != "1" || cost.Items[0].UnitPrice != 140 {
		t.Errorf("Unexpected items %+v", cost.Items)
	}
}

func TestPriceSectionLogisticsProration(t *testing.T) {
	g := sheet.GridFromValues("Part Info", [][]any{
		{"Section: A толщина 5", nil, nil, nil, nil, nil, "logistics cost: 300"},
		header,
		{"1", "a", 1, 1000, 0, 0},
		{"2", "b", 2, 500, 0, 0},
		// Rows without an ID neither count nor get a price.
		{nil, "note", 10, 10000},
	})

	cost, err := New(DefaultRules()).PriceSection(g, testTable(), 1, 5)
	if err != nil {
		t.Fatalf("PriceSection failed: %v", err)
	}

	if cost.LogisticsCost != 300 || cost.TotalLength != 2000 {
		t.Errorf("Unexpected logistics %v / total length %v", cost.LogisticsCost, cost.TotalLength)
	}
	if got := g.Cell(3, 7); got != models.Number(150) {
		t.Errorf("Expected 150 for row 3, got %+v", got)
	}
	if got := g.Cell(4, 7); got != models.Number(75) {
		t.Errorf("Expected 75 for row 4, got %+v", got)
	}
	if got := g.Cell(5, 7); !got.IsEmpty() {
		t.Errorf("Expected untouched price for row without ID, got %+v", got)
	}
	// The whole logistics cost is allocated.
	if cost.Total != 300 {
		t.Errorf("Expected total 300, got %v", cost.Total)
	}
}

func TestPriceSectionRowError(t *testing.T) {
	g := sheet.GridFromValues("Part Info", [][]any{
		{"Section: A Толщина стенки: 5"},
		header,
		{"1", "a", "many", 1000, 1, 0},
		{"2", "b", 1, 1000, 1, 0},
	})

	cost, err := New(DefaultRules()).PriceSection(g, testTable(), 1, 4)
	if err != nil {
		t.Fatalf("PriceSection failed: %v", err)
	}

	if got := g.Cell(3, 7); got != models.Text(ErrorMarker) {
		t.Errorf("Expected ERROR marker, got %+v", got)
	}
	if got := g.Cell(4, 7); got != models.Number(100) {
		t.Errorf("Expected following row to be priced, got %+v", got)
	}
	if len(cost.RowErrors) != 1 {
		t.Fatalf("Expected one row error, got %d", len(cost.RowErrors))
	}
	rowErr := cost.RowErrors[0]
	if rowErr.Row != 3 || rowErr.ID != "1" || rowErr.Field != parser.FieldQty {
		t.Errorf("Unexpected row error %+v", rowErr)
	}
	if cost.Total != 100 {
		t.Errorf("Expected total 100, got %v", cost.Total)
	}
}

func TestPriceSectionMissingMetadata(t *testing.T) {
	tests := []struct {
		name     string
		rows     [][]any
		table    *pricing.Table
		expected error
	}{
		{
			name:     "no thickness",
			rows:     [][]any{{"Section: A"}, header, {"1", "a", 1, 1, 1, 1}},
			table:    testTable(),
			expected: ErrNoThickness,
		},
		{
			name:     "empty price table",
			rows:     [][]any{{"Section: A толщина 5"}, header, {"1", "a", 1, 1, 1, 1}},
			table:    pricing.NewTable(),
			expected: ErrLookupMiss,
		},
		{
			name:     "no price table",
			rows:     [][]any{{"Section: A толщина 5"}, header, {"1", "a", 1, 1, 1, 1}},
			table:    nil,
			expected: ErrLookupMiss,
		},
		{
			name:     "header lacks price",
			rows:     [][]any{{"Section: A толщина 5"}, header[:6], {"1", "a", 1, 1, 1, 1}},
			table:    testTable(),
			expected: ErrMissingHeader,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := sheet.GridFromValues("Part Info", tt.rows)

			_, err := New(DefaultRules()).PriceSection(g, tt.table, 1, 3)
			if !errors.Is(err, tt.expected) {
				t.Fatalf("Expected %v, got %v", tt.expected, err)
			}
			if !errors.Is(err, ErrMissingMetadata) {
				t.Errorf("Expected error to match ErrMissingMetadata: %v", err)
			}
			if got := g.Cell(3, 7); !got.IsEmpty() {
				t.Errorf("Expected no writes, got %+v", got)
			}
		})
	}
}

func TestPriceSectionHeaderError(t *testing.T) {
	g := sheet.GridFromValues("Part Info", [][]any{
		{"Section: A толщина 5"},
		{"ID", "Qty"},
	})

	_, err := New(DefaultRules()).PriceSection(g, testTable(), 1, 2)
	var headerErr *HeaderError
	if !errors.As(err, &headerErr) {
		t.Fatalf("Expected HeaderError, got %v", err)
	}
	if headerErr.Row != 2 || len(headerErr.Missing) != 4 {
		t.Errorf("Unexpected header error %+v", headerErr)
	}
}

func TestLogistics(t *testing.T) {
	tests := []struct {
		name     string
		row      []any
		expected float64
	}{
		{"absent", []any{"Section: A"}, 0},
		{"labeled", []any{"Section: A", "Logistics Cost: 12.5"}, 12.5},
		{"last cell wins", []any{"Logistics Cost: 1", "LOGISTICS COST: 2"}, 2},
		{"decimal comma", []any{"Section: A", "Logistics Cost: 12,5"}, 12.5},
		{"unreadable", []any{"Logistics Cost: 5", "Logistics Cost: ?"}, 0},
	}

	c := New(DefaultRules())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := sheet.GridFromValues("Part Info", [][]any{tt.row})
			if got := c.Logistics(g, 1); got != tt.expected {
				t.Errorf("Logistics = %v, expected %v", got, tt.expected)
			}
		})
	}
}
