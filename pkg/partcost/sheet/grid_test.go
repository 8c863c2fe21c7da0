package sheet

import (
	"testing"

	"github.com/ukaji3/partcost-go/pkg/partcost/models"
)

func TestGridFromValues(t *testing.T) {
	g := GridFromValues("Part Info", [][]any{
		{"Section: A"},
		nil,
		{1, 2.5, "", "x"},
	})

	if g.MaxRow() != 3 {
		t.Errorf("MaxRow() = %d, expected 3", g.MaxRow())
	}
	if g.MaxCol() != 4 {
		t.Errorf("MaxCol() = %d, expected 4", g.MaxCol())
	}
	if got := g.Cell(3, 2); got != models.Number(2.5) {
		t.Errorf("Cell(3, 2) = %+v", got)
	}
	if got := g.Cell(3, 3); !got.IsEmpty() {
		t.Errorf("Cell(3, 3) = %+v, expected empty", got)
	}
	if got := g.Cell(0, 1); !got.IsEmpty() {
		t.Errorf("Cell(0, 1) = %+v, expected empty", got)
	}
}

func TestGridInsertRow(t *testing.T) {
	tests := []struct {
		name    string
		at      int
		rows    int
		shifted int // row where "b" lands
	}{
		{"middle", 2, 4, 3},
		{"first", 1, 4, 3},
		{"after end", 5, 5, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := GridFromValues("s", [][]any{{"a"}, {"b"}, {"c"}})
			if err := g.InsertRow(tt.at); err != nil {
				t.Fatalf("InsertRow(%d) error = %v", tt.at, err)
			}
			if g.MaxRow() != tt.rows {
				t.Errorf("MaxRow() = %d, want %d", g.MaxRow(), tt.rows)
			}
			if got := g.Cell(tt.shifted, 1); got != models.Text("b") {
				t.Errorf("Cell(%d, 1) = %+v, want b", tt.shifted, got)
			}
		})
	}
}

func TestRowValues(t *testing.T) {
	g := GridFromValues("s", [][]any{{"a", 1}, {"b"}})
	got := RowValues(g, 2)
	if len(got) != 2 || got[0] != models.Text("b") || !got[1].IsEmpty() {
		t.Errorf("RowValues() = %+v", got)
	}
}
