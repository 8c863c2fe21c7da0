package sheet

import (
	"fmt"

	"github.com/ukaji3/partcost-go/pkg/partcost/models"
)

// Grid is an in-memory Sheet.
type Grid struct {
	name   string
	rows   [][]models.Value
	maxCol int
}

// NewGrid creates an empty grid.
func NewGrid(name string) *Grid {
	return &Grid{name: name}
}

// GridFromValues builds a grid from plain Go values. Supported cell types are
// nil, string, models.Value and the integer and float kinds.
func GridFromValues(name string, rows [][]any) *Grid {
	g := NewGrid(name)
	for r, row := range rows {
		g.grow(r + 1)
		for c, v := range row {
			_ = g.SetCell(r+1, c+1, ToValue(v))
		}
	}
	return g
}

// ToValue converts a plain Go value to a cell value.
func ToValue(v any) models.Value {
	switch x := v.(type) {
	case nil:
		return models.Empty()
	case models.Value:
		return x
	case string:
		if x == "" {
			return models.Empty()
		}
		return models.Text(x)
	case int:
		return models.Number(float64(x))
	case int64:
		return models.Number(float64(x))
	case float32:
		return models.Number(float64(x))
	case float64:
		return models.Number(x)
	}
	return models.Text(fmt.Sprint(v))
}

// Name returns the grid name.
func (g *Grid) Name() string { return g.name }

// MaxRow returns the number of rows.
func (g *Grid) MaxRow() int { return len(g.rows) }

// MaxCol returns the widest row's length.
func (g *Grid) MaxCol() int { return g.maxCol }

// Cell returns the value at (row, col).
func (g *Grid) Cell(row, col int) models.Value {
	if row < 1 || row > len(g.rows) {
		return models.Empty()
	}
	r := g.rows[row-1]
	if col < 1 || col > len(r) {
		return models.Empty()
	}
	return r[col-1]
}

// SetCell stores v at (row, col), growing the grid as needed.
func (g *Grid) SetCell(row, col int, v models.Value) error {
	if row < 1 || col < 1 {
		return fmt.Errorf("cell (%d, %d) out of range", row, col)
	}
	g.grow(row)
	r := g.rows[row-1]
	for len(r) < col {
		r = append(r, models.Empty())
	}
	r[col-1] = v
	g.rows[row-1] = r
	if col > g.maxCol {
		g.maxCol = col
	}
	return nil
}

// InsertRow inserts a blank row at row.
func (g *Grid) InsertRow(row int) error {
	if row < 1 {
		return fmt.Errorf("row %d out of range", row)
	}
	if row > len(g.rows) {
		g.grow(row)
		return nil
	}
	g.rows = append(g.rows, nil)
	copy(g.rows[row:], g.rows[row-1:])
	g.rows[row-1] = nil
	return nil
}

func (g *Grid) grow(rows int) {
	for len(g.rows) < rows {
		g.rows = append(g.rows, nil)
	}
}
