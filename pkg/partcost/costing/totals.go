package costing

import (
	"fmt"
	"strings"

	"github.com/ukaji3/partcost-go/pkg/partcost/models"
	"github.com/ukaji3/partcost-go/pkg/partcost/parser"
	"github.com/ukaji3/partcost-go/pkg/partcost/sheet"
)

// Totals row labels. All share parser.TotalsLabelPrefix so a totals row is
// never read back as a section marker.
const (
	LabelTotalQty     = parser.TotalsLabelPrefix + "Qty: "
	LabelTotalLength  = parser.TotalsLabelPrefix + "Length: "
	LabelTotalContour = parser.TotalsLabelPrefix + "Contour: "
	LabelTotalCut     = parser.TotalsLabelPrefix + "Cut Length: "
	LabelTotalPrice   = parser.TotalsLabelPrefix + "Price Section: "
)

// WriteTotals sums the contiguous item block of a section and writes a
// totals row directly below it. An existing totals row in that position is
// rewritten in place, so running twice never stacks totals rows. total, when
// non-nil, is written into the price column.
//
// It returns nil totals when the section has no header row or no items.
// A newly inserted row shifts every row below it down by one, so callers
// handling several sections must go from the last section to the first.
func (c *Calculator) WriteTotals(s sheet.Sheet, sec models.Section, total *float64) (*models.Totals, error) {
	header, cols := parser.FindHeaderRow(s, sec.MarkerRow+1, sec.End, c.rules.Labels, parser.BlockFields...)
	if header == 0 || !cols.Has(parser.FieldQty, parser.FieldPartLength) {
		return nil, nil
	}

	last := parser.ItemBlockEnd(s, header, sec.End, cols[parser.FieldID])
	if last == header {
		return nil, nil
	}

	t := &models.Totals{}
	for row := header + 1; row <= last; row++ {
		qty := floatOrZero(cols.Cell(s, row, parser.FieldQty))
		t.Qty += qty
		t.Length += qty * floatOrZero(cols.Cell(s, row, parser.FieldPartLength))
		t.Contour += qty * floatOrZero(cols.Cell(s, row, parser.FieldContourQty))
		t.CutLength += qty * floatOrZero(cols.Cell(s, row, parser.FieldCutLength))
	}

	t.Row = last + 1
	if t.Row > sec.End || !c.isTotalsRow(s, cols, t.Row) {
		if err := s.InsertRow(t.Row); err != nil {
			return nil, err
		}
		t.Inserted = true
	}

	cells := []struct {
		field parser.Field
		label string
		value float64
		keep  bool
	}{
		{parser.FieldQty, LabelTotalQty, t.Qty, true},
		{parser.FieldPartLength, LabelTotalLength, t.Length, true},
		{parser.FieldContourQty, LabelTotalContour, t.Contour, t.Contour > 0},
		{parser.FieldCutLength, LabelTotalCut, t.CutLength, t.CutLength > 0},
	}
	for _, cell := range cells {
		col := cols[cell.field]
		if col == 0 {
			continue
		}
		v := models.Empty()
		if cell.keep {
			v = models.Text(cell.label + models.FormatNumber(cell.value))
		} else if !hasPrefix(s.Cell(t.Row, col), cell.label) {
			continue
		}
		if err := s.SetCell(t.Row, col, v); err != nil {
			return nil, err
		}
	}

	if col := cols[parser.FieldPrice]; col != 0 {
		v := models.Empty()
		if total != nil {
			v = models.Text(fmt.Sprintf("%s%.2f", LabelTotalPrice, *total))
		}
		if total != nil || hasPrefix(s.Cell(t.Row, col), LabelTotalPrice) {
			if err := s.SetCell(t.Row, col, v); err != nil {
				return nil, err
			}
		}
	}
	return t, nil
}

func (c *Calculator) isTotalsRow(r sheet.Reader, cols parser.ColumnMap, row int) bool {
	if !cols.Cell(r, row, parser.FieldID).IsEmpty() {
		return false
	}
	return hasPrefix(cols.Cell(r, row, parser.FieldQty), strings.TrimSpace(LabelTotalQty))
}

func hasPrefix(v models.Value, prefix string) bool {
	return v.IsText() && strings.HasPrefix(strings.TrimSpace(v.Text), strings.TrimSpace(prefix))
}
