// Package pricing indexes the reference price table by wall thickness.
package pricing

import (
	"math"

	"github.com/ukaji3/partcost-go/pkg/partcost/models"
	"github.com/ukaji3/partcost-go/pkg/partcost/sheet"
)

// Price table columns (1-based).
const (
	ColThickness = 1
	ColTubePrice = 2
	ColContour   = 3
	ColCut       = 4
)

// DefaultTubeTolerance is the thickness tolerance for per-tube price lookup.
const DefaultTubeTolerance = 0.01

type entry struct {
	row models.PriceRow
	// priced is false when the contour or cut price does not parse.
	priced bool
}

// Table is the reference price table. Thickness values need not be sorted
// or unique.
type Table struct {
	entries []entry
}

// NewTable builds a table from already-parsed rows.
func NewTable(rows ...models.PriceRow) *Table {
	t := &Table{}
	for _, r := range rows {
		t.entries = append(t.entries, entry{row: r, priced: true})
	}
	return t
}

// LoadTable reads a price sheet. Row 1 is a header. Rows whose thickness
// does not parse are skipped; empty price cells read as zero.
func LoadTable(r sheet.Reader) *Table {
	t := &Table{}
	for row := 2; row <= r.MaxRow(); row++ {
		th := r.Cell(row, ColThickness)
		if th.IsEmpty() {
			continue
		}
		thickness, err := th.Float()
		if err != nil {
			continue
		}

		e := entry{row: models.PriceRow{Row: row, Thickness: thickness}, priced: true}
		if tp := r.Cell(row, ColTubePrice); !tp.IsEmpty() {
			if v, err := tp.Float(); err == nil {
				e.row.TubePrice = &v
			}
		}
		contour, errC := r.Cell(row, ColContour).Float()
		cut, errD := r.Cell(row, ColCut).Float()
		if errC != nil || errD != nil {
			e.priced = false
		}
		e.row.ContourUnitPrice = contour
		e.row.CutUnitPrice = cut
		t.entries = append(t.entries, e)
	}
	return t
}

// Len returns the number of rows usable for nearest-price lookup.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	n := 0
	for _, e := range t.entries {
		if e.priced {
			n++
		}
	}
	return n
}

// Nearest returns the row whose thickness is closest to thickness. On a tie
// the first row encountered wins.
func (t *Table) Nearest(thickness float64) (models.PriceRow, bool) {
	var best models.PriceRow
	found := false
	if t == nil {
		return best, found
	}
	minDiff := math.Inf(1)
	for _, e := range t.entries {
		if !e.priced {
			continue
		}
		if d := math.Abs(e.row.Thickness - thickness); d < minDiff {
			minDiff = d
			best = e.row
			found = true
		}
	}
	return best, found
}

// TubePrice returns the per-tube price of the first row whose thickness is
// within tolerance of thickness.
func (t *Table) TubePrice(thickness, tolerance float64) (float64, bool) {
	if t == nil {
		return 0, false
	}
	for _, e := range t.entries {
		if e.row.TubePrice == nil {
			continue
		}
		if math.Abs(e.row.Thickness-thickness) < tolerance {
			return *e.row.TubePrice, true
		}
	}
	return 0, false
}
