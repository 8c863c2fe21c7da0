package format

import (
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/partcost-go/pkg/partcost/parser"
	"github.com/ukaji3/partcost-go/pkg/partcost/sheet"
)

// Palette holds the named colors used by the cosmetic pass, as RGB hex.
type Palette struct {
	DarkRed     string
	LightYellow string
}

// DefaultPalette returns the stock colors.
func DefaultPalette() Palette {
	return Palette{DarkRed: "8B0000", LightYellow: "FFFF99"}
}

// Built-in number formats.
const (
	numFmtGeneral = 0
	numFmtInteger = 1
)

const maxColWidth = 255

// Summary counts what the pass changed.
type Summary struct {
	Unmerged    int                `json:"unmerged"`
	MergedFirst bool               `json:"merged_first_row"`
	Rows        map[string]int     `json:"rows"`
	Widths      map[string]float64 `json:"-"`
}

type styleKey struct {
	kind   RowKind
	numFmt int
}

// Formatter styles worksheets of one workbook. Style IDs are cached per
// workbook, so a Formatter must not be shared between workbooks.
type Formatter struct {
	f          *excelize.File
	palette    Palette
	classifier Classifier
	styles     map[styleKey]int
	numFmts    map[int]int
}

// New returns a Formatter for f.
func New(f *excelize.File, p Palette, c Classifier) *Formatter {
	return &Formatter{
		f:          f,
		palette:    p,
		classifier: c,
		styles:     map[styleKey]int{},
		numFmts:    map[int]int{},
	}
}

// Apply runs the whole pass on s: unmerge, style rows, merge the first row
// and fit column widths. integers lists cells that get the "0" number
// format; other cells keep their number format.
func (fm *Formatter) Apply(s *sheet.ExcelSheet, integers []parser.Cell) (Summary, error) {
	sum := Summary{Rows: map[string]int{}}

	n, err := fm.Unmerge(s.Name())
	if err != nil {
		return sum, err
	}
	sum.Unmerged = n

	kinds, err := fm.StyleRows(s, integers)
	if err != nil {
		return sum, err
	}
	for _, k := range kinds {
		sum.Rows[k.String()]++
	}

	if sum.MergedFirst, err = fm.MergeFirstRow(s); err != nil {
		return sum, err
	}

	if sum.Widths, err = fm.AutoWidth(s); err != nil {
		return sum, err
	}
	return sum, nil
}

// Unmerge dissolves every merged range of the sheet without filling the
// freed cells.
func (fm *Formatter) Unmerge(name string) (int, error) {
	merged, err := fm.f.GetMergeCells(name)
	if err != nil {
		return 0, err
	}
	for _, m := range merged {
		if err := fm.f.UnmergeCell(name, m.GetStartAxis(), m.GetEndAxis()); err != nil {
			return 0, err
		}
	}
	return len(merged), nil
}

// MergeFirstRow merges row 1 across the used width when only its first cell
// holds a value, then bolds and centers it. Merging a row with several
// values would discard all but the first, so such rows are left alone.
func (fm *Formatter) MergeFirstRow(s *sheet.ExcelSheet) (bool, error) {
	lastCol := 0
	for row := 1; row <= s.MaxRow(); row++ {
		for col := s.MaxCol(); col > lastCol; col-- {
			if !s.Cell(row, col).IsEmpty() {
				lastCol = col
				break
			}
		}
	}
	if lastCol <= 1 {
		return false, nil
	}
	for col := 2; col <= lastCol; col++ {
		if !s.Cell(1, col).IsEmpty() {
			return false, nil
		}
	}

	start, end := sheet.CellName(1, 1), sheet.CellName(1, lastCol)
	if err := fm.f.MergeCell(s.Name(), start, end); err != nil {
		return false, err
	}
	if s.Cell(1, 1).IsEmpty() {
		return true, nil
	}
	style, err := fm.style(RowSection, fm.cellNumFmt(s.Name(), start))
	if err != nil {
		return true, err
	}
	return true, fm.f.SetCellStyle(s.Name(), start, start, style)
}

// StyleRows classifies every row and applies its height and cell style.
func (fm *Formatter) StyleRows(s *sheet.ExcelSheet, integers []parser.Cell) ([]RowKind, error) {
	ints := make(map[parser.Cell]bool, len(integers))
	for _, c := range integers {
		ints[c] = true
	}

	name := s.Name()
	kinds := make([]RowKind, 0, s.MaxRow())
	for row := 1; row <= s.MaxRow(); row++ {
		kind := fm.classifier.Classify(sheet.RowValues(s, row))
		kinds = append(kinds, kind)

		if err := fm.f.SetRowHeight(name, row, rowHeights[kind]); err != nil {
			return kinds, err
		}
		if kind == RowEmpty {
			continue
		}
		for col := 1; col <= s.MaxCol(); col++ {
			cell := sheet.CellName(row, col)
			numFmt := fm.cellNumFmt(name, cell)
			if ints[parser.Cell{Row: row, Col: col}] {
				numFmt = numFmtInteger
			}
			style, err := fm.style(kind, numFmt)
			if err != nil {
				return kinds, err
			}
			if err := fm.f.SetCellStyle(name, cell, cell, style); err != nil {
				return kinds, err
			}
		}
	}
	return kinds, nil
}

// AutoWidth sets every used column to its longest displayed value plus two.
func (fm *Formatter) AutoWidth(s *sheet.ExcelSheet) (map[string]float64, error) {
	widths := make(map[string]float64, s.MaxCol())
	for col := 1; col <= s.MaxCol(); col++ {
		longest := 0
		for row := 1; row <= s.MaxRow(); row++ {
			v := s.Cell(row, col)
			if v.IsEmpty() {
				continue
			}
			if n := utf8.RuneCountInString(v.String()); n > longest {
				longest = n
			}
		}
		w := float64(min(longest+2, maxColWidth))
		name := sheet.ColumnName(col)
		if err := fm.f.SetColWidth(s.Name(), name, name, w); err != nil {
			return widths, err
		}
		widths[name] = w
	}
	return widths, nil
}

// cellNumFmt returns the built-in number format currently on cell.
func (fm *Formatter) cellNumFmt(sheetName, cell string) int {
	id, err := fm.f.GetCellStyle(sheetName, cell)
	if err != nil || id == 0 {
		return numFmtGeneral
	}
	if n, ok := fm.numFmts[id]; ok {
		return n
	}
	n := numFmtGeneral
	if st, err := fm.f.GetStyle(id); err == nil && st != nil {
		n = st.NumFmt
	}
	fm.numFmts[id] = n
	return n
}

func (fm *Formatter) style(kind RowKind, numFmt int) (int, error) {
	key := styleKey{kind: kind, numFmt: numFmt}
	if id, ok := fm.styles[key]; ok {
		return id, nil
	}

	st := &excelize.Style{NumFmt: numFmt}
	switch kind {
	case RowSection, RowHeader:
		st.Font = &excelize.Font{Bold: true}
		st.Alignment = &excelize.Alignment{Horizontal: "center", Vertical: "center"}
	case RowResult:
		st.Font = &excelize.Font{Bold: true, Color: fm.palette.DarkRed}
		st.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{fm.palette.LightYellow}}
	}

	id, err := fm.f.NewStyle(st)
	if err != nil {
		return 0, err
	}
	fm.styles[key] = id
	return id, nil
}
