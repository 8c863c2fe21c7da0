package sheet

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ParseColumn converts a column reference to its 1-based index.
// Accepted forms: "E", "$E", "e" and plain numbers such as "5".
func ParseColumn(ref string) (int, error) {
	ref = strings.TrimSpace(strings.ReplaceAll(ref, "$", ""))
	if ref == "" {
		return 0, fmt.Errorf("empty column reference")
	}

	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > excelize.MaxColumns {
			return 0, fmt.Errorf("column %d out of range", n)
		}
		return n, nil
	}

	return excelize.ColumnNameToNumber(strings.ToUpper(ref))
}

// ColumnName converts a 1-based column index to its letter form.
func ColumnName(col int) string {
	name, err := excelize.ColumnNumberToName(col)
	if err != nil {
		return strconv.Itoa(col)
	}
	return name
}

// CellName returns the A1-style name of (row, col).
func CellName(row, col int) string {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Sprintf("R%dC%d", row, col)
	}
	return name
}
