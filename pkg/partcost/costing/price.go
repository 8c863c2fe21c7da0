package costing

import (
	"fmt"
	"strings"

	"github.com/ukaji3/partcost-go/pkg/partcost/models"
	"github.com/ukaji3/partcost-go/pkg/partcost/parser"
	"github.com/ukaji3/partcost-go/pkg/partcost/pricing"
	"github.com/ukaji3/partcost-go/pkg/partcost/sheet"
)

// SectionCost is the outcome of pricing one section.
type SectionCost struct {
	Thickness     float64
	LogisticsCost float64
	Price         models.PriceRow
	HeaderRow     int
	Columns       parser.ColumnMap
	// TotalLength is the quantity-weighted part length used for logistics
	// proration.
	TotalLength float64
	Items       []models.LineItem
	RowErrors   []*RowError
	// Total is the section cost rounded to two decimals.
	Total float64
}

// Logistics returns the logistics cost on the marker row, or 0 when none is
// labeled. Matching is case-insensitive, a decimal comma is accepted and the
// last labeled cell wins.
func (c *Calculator) Logistics(r sheet.Reader, markerRow int) float64 {
	cost := 0.0
	for _, text := range parser.RowTexts(r, markerRow) {
		if !parser.ContainsFold(text, c.rules.LogisticsLabel) {
			continue
		}
		cost = 0
		if v, ok := c.logistics.Extract(text); ok {
			cost = v
		}
	}
	return cost
}

// Thickness returns the section thickness from the marker row: the first
// text cell, left to right, in which any thickness label yields a value.
// The annotation column holds a rounded copy written by AnnotateMarker, so
// it is read only when no other cell carries a thickness.
func (c *Calculator) Thickness(r sheet.Reader, markerRow int) (float64, bool) {
	annotated := c.rules.Output.Thickness
	for col := 1; col <= r.MaxCol(); col++ {
		if col == annotated {
			continue
		}
		if v := r.Cell(markerRow, col); v.IsText() {
			if th, ok := c.rules.Thickness.Extract(v.Text); ok {
				return th, true
			}
		}
	}
	if v := r.Cell(markerRow, annotated); v.IsText() {
		return c.rules.Thickness.Extract(v.Text)
	}
	return 0, false
}

// PriceSection prices the items of the section whose marker is at markerRow
// and whose range ends at end. The header is expected directly below the
// marker. Every row with a non-empty ID gets a unit price (or ErrorMarker)
// in the price column.
//
// Missing thickness, an empty price table or an incomplete header abort the
// section with an error matching ErrMissingMetadata before anything is
// written.
func (c *Calculator) PriceSection(s sheet.Sheet, table *pricing.Table, markerRow, end int) (*SectionCost, error) {
	cost := &SectionCost{LogisticsCost: c.Logistics(s, markerRow)}

	thickness, ok := c.Thickness(s, markerRow)
	if !ok {
		return nil, fmt.Errorf("section at row %d: %w", markerRow, ErrNoThickness)
	}
	cost.Thickness = thickness

	price, ok := table.Nearest(thickness)
	if !ok {
		return nil, fmt.Errorf("section at row %d, thickness %v: %w", markerRow, thickness, ErrLookupMiss)
	}
	cost.Price = price

	cost.HeaderRow = markerRow + 1
	cols := parser.ResolveColumns(s, cost.HeaderRow, c.rules.Labels)
	if missing := cols.Missing(parser.PricingFields...); len(missing) > 0 {
		return nil, fmt.Errorf("section at row %d: %w", markerRow, &HeaderError{Row: cost.HeaderRow, Missing: missing})
	}
	cost.Columns = cols

	first := markerRow + 2
	for row := first; row <= end; row++ {
		if cols.Cell(s, row, parser.FieldID).IsEmpty() {
			continue
		}
		qty := floatOrZero(cols.Cell(s, row, parser.FieldQty))
		length := floatOrZero(cols.Cell(s, row, parser.FieldPartLength))
		cost.TotalLength += length * qty
	}

	total := 0.0
	for row := first; row <= end; row++ {
		id := cols.Cell(s, row, parser.FieldID)
		if id.IsEmpty() {
			continue
		}

		item, rowErr := readItem(s, cols, row)
		if rowErr != nil {
			cost.RowErrors = append(cost.RowErrors, rowErr)
			if err := s.SetCell(row, cols[parser.FieldPrice], models.Text(ErrorMarker)); err != nil {
				return nil, err
			}
			continue
		}

		unit := item.ContourQty*price.ContourUnitPrice + item.CutLength/1000*price.CutUnitPrice
		if cost.TotalLength > 0 {
			unit += item.PartLength / cost.TotalLength * cost.LogisticsCost
		}
		item.UnitPrice = round2(unit)

		if err := s.SetCell(row, cols[parser.FieldPrice], models.Number(item.UnitPrice)); err != nil {
			return nil, err
		}
		total += unit * item.Qty
		cost.Items = append(cost.Items, item)
	}

	cost.Total = round2(total)
	return cost, nil
}

// readItem reads the numeric fields of an item row. Empty cells read as
// zero; the first unreadable field is reported.
func readItem(r sheet.Reader, cols parser.ColumnMap, row int) (models.LineItem, *RowError) {
	item := models.LineItem{
		Row: row,
		ID:  strings.TrimSpace(cols.Cell(r, row, parser.FieldID).String()),
	}

	fields := []struct {
		field parser.Field
		dst   *float64
	}{
		{parser.FieldQty, &item.Qty},
		{parser.FieldPartLength, &item.PartLength},
		{parser.FieldContourQty, &item.ContourQty},
		{parser.FieldCutLength, &item.CutLength},
	}
	for _, f := range fields {
		v, err := cols.Cell(r, row, f.field).Float()
		if err != nil {
			return item, &RowError{Row: row, ID: item.ID, Field: f.field, Err: err}
		}
		*f.dst = v
	}
	return item, nil
}

func floatOrZero(v models.Value) float64 {
	f, err := v.Float()
	if err != nil {
		return 0
	}
	return f
}
