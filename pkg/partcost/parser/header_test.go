package parser

import (
	"testing"

	"github.com/ukaji3/partcost-go/pkg/partcost/models"
	"github.com/ukaji3/partcost-go/pkg/partcost/sheet"
)

func TestLabelsMatch(t *testing.T) {
	labels := DefaultLabels()

	tests := []struct {
		value    models.Value
		expected Field
		found    bool
	}{
		{models.Text("ID"), FieldID, true},
		{models.Text("  qty "), FieldQty, true},
		{models.Text("Part Length(mm)"), FieldPartLength, true},
		{models.Text("Цена"), FieldPrice, true},
		{models.Text("price"), FieldPrice, true},
		{models.Text("Weight"), 0, false},
		{models.Number(1), 0, false},
	}

	for _, tt := range tests {
		got, ok := labels.Match(tt.value)
		if ok != tt.found || (ok && got != tt.expected) {
			t.Errorf("Match(%+v) = (%v, %v), expected (%v, %v)", tt.value, got, ok, tt.expected, tt.found)
		}
	}
}

func TestResolveColumns(t *testing.T) {
	g := sheet.GridFromValues("Part Info", [][]any{
		{"Section: A"},
		{"ID", "Part Name", "Qty", "Part Length(mm)", "Contour Qty", "Cut Length(mm)", "Price(₽)", "Qty"},
	})

	m := ResolveColumns(g, 2, DefaultLabels())
	if !m.Has(PricingFields...) {
		t.Fatalf("Expected all pricing fields, missing %v", m.Missing(PricingFields...))
	}
	if m[FieldQty] != 3 {
		t.Errorf("Expected leftmost Qty column 3, got %d", m[FieldQty])
	}
	if m[FieldPrice] != 7 {
		t.Errorf("Expected price column 7, got %d", m[FieldPrice])
	}

	partial := ResolveColumns(g, 1, DefaultLabels())
	missing := partial.Missing(FieldID, FieldQty)
	if len(missing) != 2 {
		t.Errorf("Expected two missing fields, got %v", missing)
	}
	if got := partial.Cell(g, 1, FieldQty); !got.IsEmpty() {
		t.Errorf("Expected empty value for unmapped field, got %+v", got)
	}
}

func TestFindHeaderRow(t *testing.T) {
	g := sheet.GridFromValues("Part Info", [][]any{
		{"Section: A"},
		{"notes"},
		{"id", "part name", "QTY"},
		{"1", "x", 2},
	})

	row, m := FindHeaderRow(g, 2, 4, DefaultLabels(), BlockFields...)
	if row != 3 {
		t.Fatalf("Expected header row 3, got %d", row)
	}
	if m[FieldID] != 1 || m[FieldPartName] != 2 || m[FieldQty] != 3 {
		t.Errorf("Unexpected column map %v", m)
	}

	if row, _ := FindHeaderRow(g, 4, 4, DefaultLabels(), BlockFields...); row != 0 {
		t.Errorf("Expected no header row, got %d", row)
	}
}

func TestIsItemID(t *testing.T) {
	tests := []struct {
		value    models.Value
		expected bool
	}{
		{models.Text("12"), true},
		{models.Text(" 7 "), true},
		{models.Number(3), true},
		{models.Text("A1"), false},
		{models.Text("1.5"), false},
		{models.Text("  "), false},
		{models.Empty(), false},
	}

	for _, tt := range tests {
		if got := IsItemID(tt.value); got != tt.expected {
			t.Errorf("IsItemID(%+v) = %v, expected %v", tt.value, got, tt.expected)
		}
	}
}

func TestItemBlockEnd(t *testing.T) {
	g := sheet.GridFromValues("Part Info", [][]any{
		{"ID"},
		{"1"},
		{2},
		{nil, "Total Qty: 3"},
		{"4"},
	})

	if got := ItemBlockEnd(g, 1, 5, 1); got != 3 {
		t.Errorf("ItemBlockEnd = %d, expected 3", got)
	}
	if got := ItemBlockEnd(g, 3, 5, 1); got != 3 {
		t.Errorf("Expected empty block to return header row, got %d", got)
	}
}

func TestFieldString(t *testing.T) {
	if FieldCutLength.String() != "Cut Length(mm)" {
		t.Errorf("unexpected name %q", FieldCutLength.String())
	}
	if Field(99).String() != "unknown" {
		t.Errorf("unexpected name %q", Field(99).String())
	}
}
