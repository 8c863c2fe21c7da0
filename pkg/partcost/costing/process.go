package costing

import (
	"errors"

	"github.com/ukaji3/partcost-go/pkg/partcost/models"
	"github.com/ukaji3/partcost-go/pkg/partcost/parser"
	"github.com/ukaji3/partcost-go/pkg/partcost/pricing"
	"github.com/ukaji3/partcost-go/pkg/partcost/sheet"
)

// SectionResult is what happened to one section during ProcessSheet.
type SectionResult struct {
	Section    models.Section
	Annotation Annotation
	// Cost is nil when the section was skipped.
	Cost *SectionCost
	// Skipped matches ErrMissingMetadata when Cost is nil.
	Skipped error
	Totals  *models.Totals
}

// ProcessSheet runs every section of s through annotation, pricing and
// totals. Sections are handled from last to first so that inserted totals
// rows never move a section that is still to be processed. Results are
// returned in sheet order with row numbers as they stand afterwards.
func (c *Calculator) ProcessSheet(s sheet.Sheet, table *pricing.Table) ([]SectionResult, error) {
	sections := parser.FindSections(s, c.rules.Sections)
	results := make([]SectionResult, len(sections))

	for i := len(sections) - 1; i >= 0; i-- {
		sec := sections[i]
		res := SectionResult{Section: sec}

		a, err := c.AnnotateMarker(s, sec.MarkerRow, table)
		if err != nil {
			return nil, err
		}
		res.Annotation = a

		cost, err := c.PriceSection(s, table, sec.MarkerRow, sec.End)
		switch {
		case errors.Is(err, ErrMissingMetadata):
			res.Skipped = err
		case err != nil:
			return nil, err
		default:
			res.Cost = cost
		}

		var total *float64
		if cost != nil {
			total = &cost.Total
		}
		totals, err := c.WriteTotals(s, sec, total)
		if err != nil {
			return nil, err
		}
		res.Totals = totals
		results[i] = res
	}

	shiftRows(results)
	return results, nil
}

// shiftRows moves the recorded rows of each section down by the number of
// totals rows inserted above it.
func shiftRows(results []SectionResult) {
	shift := 0
	for i := range results {
		r := &results[i]
		r.Section.MarkerRow += shift
		r.Section.Start += shift
		r.Section.End += shift
		if r.Cost != nil {
			r.Cost.HeaderRow += shift
			for j := range r.Cost.Items {
				r.Cost.Items[j].Row += shift
			}
			for _, e := range r.Cost.RowErrors {
				e.Row += shift
			}
		}
		if r.Totals != nil {
			r.Totals.Row += shift
			if r.Totals.Inserted {
				shift++
				r.Section.End++
			}
		}
	}
}

// ResetPrices clears the price column before a fresh run. The column is
// found by its label on row 1; label cells are kept. It returns the number
// of cells cleared.
func (c *Calculator) ResetPrices(s sheet.Sheet) (int, error) {
	col := 0
	for i := 1; i <= s.MaxCol(); i++ {
		if v := s.Cell(1, i); v.IsText() && c.rules.Labels.Is(parser.FieldPrice, v.Text) {
			col = i
			break
		}
	}
	if col == 0 {
		return 0, nil
	}

	cleared := 0
	for row := 1; row <= s.MaxRow(); row++ {
		v := s.Cell(row, col)
		if v.IsEmpty() || (v.IsText() && c.rules.Labels.Is(parser.FieldPrice, v.Text)) {
			continue
		}
		if err := s.SetCell(row, col, models.Empty()); err != nil {
			return cleared, err
		}
		cleared++
	}
	return cleared, nil
}
