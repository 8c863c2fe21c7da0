package costing

import (
	"testing"

	"github.com/ukaji3/partcost-go/pkg/partcost/models"
	"github.com/ukaji3/partcost-go/pkg/partcost/parser"
	"github.com/ukaji3/partcost-go/pkg/partcost/sheet"
)

func twoSectionGrid() *sheet.Grid {
	return sheet.GridFromValues("Part Info", [][]any{
		{"Section: Frame A Толщина стенки: 5"},
		header,
		{"1", "bracket", 2, 1000, 1, 2000},
		{"2", "plate", 1, 500, 0, 0},
		{"Section: Rail толщина 9,6"},
		header,
		{"7", "rail", 1, 3000, 2, 1000},
	})
}

func TestWriteTotals(t *testing.T) {
	g := twoSectionGrid()
	c := New(DefaultRules())

	total := 280.0
	sec := models.Section{MarkerRow: 1, Start: 1, End: 4}
	totals, err := c.WriteTotals(g, sec, &total)
	if err != nil {
		t.Fatalf("WriteTotals failed: %v", err)
	}
	if totals == nil || !totals.Inserted || totals.Row != 5 {
		t.Fatalf("Expected totals inserted at row 5, got %+v", totals)
	}

	expected := map[int]models.Value{
		1: models.Empty(),
		3: models.Text("Total Qty: 3"),
		4: models.Text("Total Length: 2500"),
		5: models.Text("Total Contour: 2"),
		6: models.Text("Total Cut Length: 4000"),
		7: models.Text("Total Price Section: 280.00"),
	}
	for col, want := range expected {
		if got := g.Cell(5, col); got != want {
			t.Errorf("Cell(5, %d) = %+v, expected %+v", col, got, want)
		}
	}

	// The next section moved down by one row.
	if got := g.Cell(6, 1); got != models.Text("Section: Rail толщина 9,6") {
		t.Errorf("Expected next marker at row 6, got %+v", got)
	}
}

func TestWriteTotalsIdempotent(t *testing.T) {
	g := twoSectionGrid()
	c := New(DefaultRules())
	m := c.Rules().Sections

	total := 280.0
	if _, err := c.WriteTotals(g, parser.FindSections(g, m)[0], &total); err != nil {
		t.Fatalf("first WriteTotals failed: %v", err)
	}
	rows := g.MaxRow()

	total = 300
	totals, err := c.WriteTotals(g, parser.FindSections(g, m)[0], &total)
	if err != nil {
		t.Fatalf("second WriteTotals failed: %v", err)
	}
	if totals.Inserted || totals.Row != 5 {
		t.Errorf("Expected in-place update of row 5, got %+v", totals)
	}
	if g.MaxRow() != rows {
		t.Errorf("Expected %d rows after re-run, got %d", rows, g.MaxRow())
	}
	if got := g.Cell(5, 7); got != models.Text("Total Price Section: 300.00") {
		t.Errorf("Expected updated section total, got %+v", got)
	}
}

func TestWriteTotalsSkipsZeroSums(t *testing.T) {
	g := sheet.GridFromValues("Part Info", [][]any{
		{"Section: A"},
		header,
		{"1", "a", 2, 100, 0, 0},
	})

	totals, err := New(DefaultRules()).WriteTotals(g, models.Section{MarkerRow: 1, Start: 1, End: 3}, nil)
	if err != nil {
		t.Fatalf("WriteTotals failed: %v", err)
	}
	if totals == nil || totals.Row != 4 {
		t.Fatalf("Expected totals at row 4, got %+v", totals)
	}
	for _, col := range []int{5, 6, 7} {
		if got := g.Cell(4, col); !got.IsEmpty() {
			t.Errorf("Expected empty Cell(4, %d), got %+v", col, got)
		}
	}
}

func TestWriteTotalsNoItems(t *testing.T) {
	tests := []struct {
		name string
		rows [][]any
	}{
		{"no header", [][]any{{"Section: A"}, {"1", "a", 1}}},
		{"empty block", [][]any{{"Section: A"}, header, {"x", "a", 1}}},
		{"header without length", [][]any{{"Section: A"}, {"ID", "Part Name", "Qty"}, {"1", "a", 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := sheet.GridFromValues("Part Info", tt.rows)
			rows := g.MaxRow()
			totals, err := New(DefaultRules()).WriteTotals(g, models.Section{MarkerRow: 1, Start: 1, End: rows}, nil)
			if err != nil {
				t.Fatalf("WriteTotals failed: %v", err)
			}
			if totals != nil || g.MaxRow() != rows {
				t.Errorf("Expected no totals row, got %+v", totals)
			}
		})
	}
}
