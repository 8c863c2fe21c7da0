package parser

import (
	"math"
	"strconv"
	"strings"

	"github.com/ukaji3/partcost-go/pkg/partcost/models"
	"github.com/ukaji3/partcost-go/pkg/partcost/sheet"
)

// ErrorLiteral is the spreadsheet error text left untouched by normalization.
const ErrorLiteral = "ERROR:#VALUE!"

// NormalizeValue canonicalizes a cell value. Fractional numbers are rounded
// up, "a/b" fractions keep their numerator, and numeric text (with either
// decimal separator) becomes a number. Other text is trimmed. numeric
// reports whether the result is a number.
func NormalizeValue(v models.Value) (out models.Value, numeric bool) {
	switch v.Kind {
	case models.KindEmpty:
		return v, false
	case models.KindNumber:
		return models.Number(ceilFinite(v.Num)), true
	}

	if v.Text == ErrorLiteral {
		return v, false
	}
	s := strings.TrimSpace(v.Text)

	if head, _, ok := strings.Cut(s, "/"); ok && head != "" {
		rest := strings.Replace(s, "/", "", 1)
		if isDigits(rest) {
			if n, err := strconv.ParseFloat(head, 64); err == nil {
				return models.Number(n), true
			}
		}
	}

	if f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return models.Number(ceilFinite(f)), true
	}
	return models.Text(s), false
}

func ceilFinite(f float64) float64 {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return f
	}
	return math.Ceil(f)
}

// Cell addresses one cell.
type Cell struct {
	Row int
	Col int
}

// NormalizeSheet rewrites every cell of s through NormalizeValue. Only
// changed cells are written. It returns the cells holding numbers
// afterwards.
func NormalizeSheet(s sheet.Sheet) ([]Cell, error) {
	var numeric []Cell
	maxRow, maxCol := s.MaxRow(), s.MaxCol()
	for row := 1; row <= maxRow; row++ {
		for col := 1; col <= maxCol; col++ {
			in := s.Cell(row, col)
			out, isNum := NormalizeValue(in)
			if out != in {
				if err := s.SetCell(row, col, out); err != nil {
					return numeric, err
				}
			}
			if isNum {
				numeric = append(numeric, Cell{Row: row, Col: col})
			}
		}
	}
	return numeric, nil
}
