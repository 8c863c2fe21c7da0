// Package sheet provides row/column access to worksheet cells.
//
// Rows and columns are 1-based throughout, matching spreadsheet addressing.
package sheet

import "github.com/ukaji3/partcost-go/pkg/partcost/models"

// Reader gives random read access to a sheet's cells.
type Reader interface {
	// Name returns the sheet name.
	Name() string
	// Cell returns the value at (row, col); cells outside the used range are empty.
	Cell(row, col int) models.Value
	// MaxRow returns the last used row.
	MaxRow() int
	// MaxCol returns the last used column.
	MaxCol() int
}

// Sheet is a mutable Reader. InsertRow shifts the rows at and below row
// down by one.
type Sheet interface {
	Reader
	SetCell(row, col int, v models.Value) error
	InsertRow(row int) error
}

// RowValues returns the cells of row from column 1 to MaxCol.
func RowValues(r Reader, row int) []models.Value {
	n := r.MaxCol()
	out := make([]models.Value, n)
	for col := 1; col <= n; col++ {
		out[col-1] = r.Cell(row, col)
	}
	return out
}
