package pricing

import (
	"math"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/thedatashed/xlsxreader"
	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/partcost-go/pkg/partcost/models"
	"github.com/ukaji3/partcost-go/pkg/partcost/sheet"
)

// DefaultSheetName is the worksheet the imported price table is stored in.
const DefaultSheetName = "Price Data"

// priceNumFmt is the built-in "0.00" number format.
const priceNumFmt = 2

// ErrEmptyWorkbook is returned when a price workbook has no worksheets.
var ErrEmptyWorkbook = eris.New("price workbook has no sheets")

// ImportWorkbook streams the first worksheet of the price workbook at path
// into a grid. Numeric text (spaces removed, decimal comma accepted) becomes
// a number, and numbers are rounded to two decimals.
func ImportWorkbook(path string) (*sheet.Grid, error) {
	xl, err := xlsxreader.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to open price workbook %s", path)
	}
	defer xl.Close()

	if len(xl.Sheets) == 0 {
		return nil, eris.Wrapf(ErrEmptyWorkbook, "%s", path)
	}

	g := sheet.NewGrid(xl.Sheets[0])
	for row := range xl.ReadRows(xl.Sheets[0]) {
		if row.Error != nil {
			return nil, eris.Wrapf(row.Error, "failed to read price workbook %s", path)
		}
		for _, c := range row.Cells {
			col, err := excelize.ColumnNameToNumber(c.Column)
			if err != nil {
				continue
			}
			_ = g.SetCell(c.Row, col, importValue(c))
		}
	}
	return g, nil
}

func importValue(c xlsxreader.Cell) models.Value {
	if c.Value == "" {
		return models.Empty()
	}
	if c.Type == xlsxreader.TypeNumerical {
		if f, err := strconv.ParseFloat(c.Value, 64); err == nil {
			return models.Number(round2(f))
		}
	}
	return convertPrice(models.Text(c.Value))
}

// convertPrice applies the import conversion rules to one value.
func convertPrice(v models.Value) models.Value {
	switch v.Kind {
	case models.KindNumber:
		return models.Number(round2(v.Num))
	case models.KindText:
		s := strings.ReplaceAll(strings.ReplaceAll(v.Text, ",", "."), " ", "")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return v
		}
		return models.Number(round2(f))
	}
	return v
}

// AttachSheet copies src into f as worksheet name, replacing an existing
// sheet of that name. Numbers get the "0.00" number format.
func AttachSheet(f *excelize.File, src sheet.Reader, name string) (*sheet.ExcelSheet, error) {
	idx, err := f.GetSheetIndex(name)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to look up sheet %q", name)
	}
	if idx != -1 {
		if err := f.DeleteSheet(name); err != nil {
			return nil, eris.Wrapf(err, "failed to remove sheet %q", name)
		}
	}
	if _, err := f.NewSheet(name); err != nil {
		return nil, eris.Wrapf(err, "failed to create sheet %q", name)
	}

	style, err := f.NewStyle(&excelize.Style{NumFmt: priceNumFmt})
	if err != nil {
		return nil, eris.Wrap(err, "failed to create price number style")
	}

	dst, err := sheet.OpenExcelSheet(f, name)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to open sheet %q", name)
	}
	for row := 1; row <= src.MaxRow(); row++ {
		for col := 1; col <= src.MaxCol(); col++ {
			v := convertPrice(src.Cell(row, col))
			if v.Kind == models.KindEmpty {
				continue
			}
			if err := dst.SetCell(row, col, v); err != nil {
				return nil, eris.Wrapf(err, "failed to write %s!%s", name, sheet.CellName(row, col))
			}
			if v.IsNumber() {
				cell := sheet.CellName(row, col)
				if err := f.SetCellStyle(name, cell, cell, style); err != nil {
					return nil, eris.Wrapf(err, "failed to style %s!%s", name, cell)
				}
			}
		}
	}
	return dst, nil
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
