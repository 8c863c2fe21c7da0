package models

// WorkbookReport is the result of processing one workbook.
type WorkbookReport struct {
	// RunID identifies the processing run.
	RunID string `json:"run_id"`
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// Path is the workbook path as given.
	Path string `json:"path"`
	// BackupPath is the backup copy made before modification.
	BackupPath string `json:"backup_path,omitempty"`
	// PriceSheet is the sheet the price table was read from.
	PriceSheet string `json:"price_sheet,omitempty"`
	// PriceRows is the number of parseable price table rows.
	PriceRows int `json:"price_rows"`
	// TubeCounts maps section name to tube count copied onto the target sheet.
	TubeCounts map[string]int `json:"tube_counts,omitempty"`
	// TubeCountSource names the sheet kind the tube counts came from.
	TubeCountSource string `json:"tube_count_source,omitempty"`
	// Normalized is the number of cells holding numbers after normalization.
	Normalized int `json:"normalized_cells"`
	// Sheets contains one report per processed target sheet.
	Sheets []SheetReport `json:"sheets"`
	// GrandTotal is the sum of all section totals across sheets.
	GrandTotal float64 `json:"grand_total"`
	// Saved reports whether the workbook was written back.
	Saved bool `json:"saved"`
}
