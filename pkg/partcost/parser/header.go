package parser

import (
	"strings"

	"github.com/ukaji3/partcost-go/pkg/partcost/models"
	"github.com/ukaji3/partcost-go/pkg/partcost/sheet"
)

// Field identifies a line-item column.
type Field int

const (
	FieldID Field = iota
	FieldPartName
	FieldQty
	FieldPartLength
	FieldContourQty
	FieldCutLength
	FieldPrice
)

var fieldNames = [...]string{
	FieldID:         "ID",
	FieldPartName:   "Part Name",
	FieldQty:        "Qty",
	FieldPartLength: "Part Length(mm)",
	FieldContourQty: "Contour Qty",
	FieldCutLength:  "Cut Length(mm)",
	FieldPrice:      "Price(₽)",
}

// Fields lists every field in column order of a typical header row.
var Fields = []Field{FieldID, FieldPartName, FieldQty, FieldPartLength, FieldContourQty, FieldCutLength, FieldPrice}

func (f Field) String() string {
	if f < 0 || int(f) >= len(fieldNames) {
		return "unknown"
	}
	return fieldNames[f]
}

// PricingFields must all be present in a header row before a section is priced.
var PricingFields = []Field{FieldID, FieldQty, FieldPartLength, FieldContourQty, FieldCutLength, FieldPrice}

// BlockFields identify the header row that opens a line-item block.
var BlockFields = []Field{FieldID, FieldPartName, FieldQty}

// Labels maps each field to the header texts accepted for it.
type Labels map[Field][]string

// DefaultLabels returns the stock header labels.
func DefaultLabels() Labels {
	l := Labels{}
	for _, f := range Fields {
		l[f] = []string{f.String()}
	}
	l[FieldPrice] = []string{"Price(₽)", "Price", "Цена"}
	return l
}

// Match returns the field whose label equals v, ignoring case and
// surrounding whitespace.
func (l Labels) Match(v models.Value) (Field, bool) {
	if !v.IsText() {
		return 0, false
	}
	text := strings.TrimSpace(v.Text)
	for _, f := range Fields {
		if l.Is(f, text) {
			return f, true
		}
	}
	return 0, false
}

// Is reports whether text is one of the labels of f.
func (l Labels) Is(f Field, text string) bool {
	text = strings.TrimSpace(text)
	for _, label := range l[f] {
		if strings.EqualFold(text, label) {
			return true
		}
	}
	return false
}

// ColumnMap maps fields to 1-based column indexes, built once per section
// and passed to row-level operations.
type ColumnMap map[Field]int

// Has reports whether every field in fields is mapped.
func (m ColumnMap) Has(fields ...Field) bool {
	return len(m.Missing(fields...)) == 0
}

// Missing returns the fields not present in the map.
func (m ColumnMap) Missing(fields ...Field) []Field {
	var out []Field
	for _, f := range fields {
		if m[f] == 0 {
			out = append(out, f)
		}
	}
	return out
}

// Cell returns the value of field f on row, or empty if f is unmapped.
func (m ColumnMap) Cell(r sheet.Reader, row int, f Field) models.Value {
	col := m[f]
	if col == 0 {
		return models.Empty()
	}
	return r.Cell(row, col)
}

// ResolveColumns reads row as a header row. The leftmost column wins when a
// label repeats.
func ResolveColumns(r sheet.Reader, row int, labels Labels) ColumnMap {
	m := ColumnMap{}
	for col := 1; col <= r.MaxCol(); col++ {
		f, ok := labels.Match(r.Cell(row, col))
		if !ok {
			continue
		}
		if _, seen := m[f]; !seen {
			m[f] = col
		}
	}
	return m
}

// FindHeaderRow returns the first row in [from, to] whose labels cover
// every field in required, with its column map. It returns 0 when no row
// qualifies.
func FindHeaderRow(r sheet.Reader, from, to int, labels Labels, required ...Field) (int, ColumnMap) {
	for row := from; row <= to; row++ {
		m := ResolveColumns(r, row, labels)
		if m.Has(required...) {
			return row, m
		}
	}
	return 0, nil
}

// IsItemID reports whether v identifies a line item: a number, or text made
// only of digits.
func IsItemID(v models.Value) bool {
	switch v.Kind {
	case models.KindNumber:
		return true
	case models.KindText:
		s := strings.TrimSpace(v.Text)
		return s != "" && isDigits(s)
	}
	return false
}

// ItemBlockEnd returns the last row of the contiguous line-item block that
// starts below headerRow, or headerRow when the block is empty.
func ItemBlockEnd(r sheet.Reader, headerRow, end, idCol int) int {
	last := headerRow
	for row := headerRow + 1; row <= end; row++ {
		if !IsItemID(r.Cell(row, idCol)) {
			break
		}
		last = row
	}
	return last
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
