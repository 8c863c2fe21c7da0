package sheet

import (
	"strconv"

	"github.com/ukaji3/partcost-go/pkg/partcost/models"
	"github.com/xuri/excelize/v2"
)

// ExcelSheet is a Sheet backed by a worksheet of an open workbook. Writes go
// straight to the workbook; row insertion uses excelize so merged ranges and
// formulas below the insertion point move with their rows.
type ExcelSheet struct {
	f      *excelize.File
	name   string
	maxRow int
	maxCol int
}

// OpenExcelSheet wraps the named worksheet of f.
func OpenExcelSheet(f *excelize.File, name string) (*ExcelSheet, error) {
	rows, err := f.GetRows(name)
	if err != nil {
		return nil, err
	}

	s := &ExcelSheet{f: f, name: name, maxRow: len(rows)}
	for _, row := range rows {
		if len(row) > s.maxCol {
			s.maxCol = len(row)
		}
	}
	return s, nil
}

// File returns the underlying workbook.
func (s *ExcelSheet) File() *excelize.File { return s.f }

// Name returns the worksheet name.
func (s *ExcelSheet) Name() string { return s.name }

// MaxRow returns the last used row.
func (s *ExcelSheet) MaxRow() int { return s.maxRow }

// MaxCol returns the last used column.
func (s *ExcelSheet) MaxCol() int { return s.maxCol }

// Cell reads the raw stored value at (row, col) and decodes it by cell type.
func (s *ExcelSheet) Cell(row, col int) models.Value {
	if row < 1 || col < 1 || row > s.maxRow || col > s.maxCol {
		return models.Empty()
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return models.Empty()
	}
	raw, err := s.f.GetCellValue(s.name, cell, excelize.Options{RawCellValue: true})
	if err != nil || raw == "" {
		return models.Empty()
	}
	typ, err := s.f.GetCellType(s.name, cell)
	if err != nil {
		return models.Text(raw)
	}
	return decodeValue(raw, typ)
}

// SetCell writes v at (row, col).
func (s *ExcelSheet) SetCell(row, col int, v models.Value) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}

	switch v.Kind {
	case models.KindNumber:
		err = s.f.SetCellFloat(s.name, cell, v.Num, -1, 64)
	case models.KindText:
		err = s.f.SetCellStr(s.name, cell, v.Text)
	default:
		err = s.f.SetCellValue(s.name, cell, nil)
	}
	if err != nil {
		return err
	}

	if row > s.maxRow {
		s.maxRow = row
	}
	if col > s.maxCol {
		s.maxCol = col
	}
	return nil
}

// InsertRow inserts one blank row at row.
func (s *ExcelSheet) InsertRow(row int) error {
	if err := s.f.InsertRows(s.name, row, 1); err != nil {
		return err
	}
	if row <= s.maxRow {
		s.maxRow++
	} else {
		s.maxRow = row
	}
	return nil
}

// decodeValue maps a raw cell string to a Value. String-typed cells stay
// text even when they look numeric, so an ID typed as text keeps its kind.
func decodeValue(raw string, typ excelize.CellType) models.Value {
	switch typ {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString,
		excelize.CellTypeBool, excelize.CellTypeError:
		return models.Text(raw)
	}
	return parseValue(raw)
}

// parseValue attempts to parse a string value as a number.
// Returns a number for integers and decimals, or the original string as text.
func parseValue(s string) models.Value {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return models.Number(float64(i))
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return models.Number(f)
	}
	return models.Text(s)
}
