package models

// Section is a run of rows opened by a marker row. It is derived from the
// sheet on every pass and never stored.
type Section struct {
	// MarkerRow is the row holding the "section:" label (1-based).
	MarkerRow int `json:"marker_row"`
	// Name is the normalized section name parsed from the marker text.
	Name string `json:"name,omitempty"`
	// Start is the first row of the range; it equals MarkerRow.
	Start int `json:"start"`
	// End is the last row of the range (inclusive).
	End int `json:"end"`
}

// PriceRow is one row of the reference price table.
type PriceRow struct {
	// Row is the sheet row the entry was read from (1-based).
	Row int `json:"row"`
	// Thickness is the wall thickness the prices apply to.
	Thickness float64 `json:"thickness"`
	// TubePrice is the logistics price per tube (column B).
	TubePrice *float64 `json:"tube_price,omitempty"`
	// ContourUnitPrice is the price per contour.
	ContourUnitPrice float64 `json:"contour_unit_price"`
	// CutUnitPrice is the price per metre of cut.
	CutUnitPrice float64 `json:"cut_unit_price"`
}

// LineItem is the numeric view of one item row within a section.
type LineItem struct {
	// Row is the sheet row (1-based).
	Row int `json:"row"`
	// ID is the item identifier as displayed.
	ID string `json:"id"`
	Qty float64 `json:"qty"`
	// PartLength is the part length in millimetres.
	PartLength float64 `json:"part_length"`
	ContourQty float64 `json:"contour_qty"`
	// CutLength is the cut length in millimetres.
	CutLength float64 `json:"cut_length"`
	// UnitPrice is the computed price of one part.
	UnitPrice float64 `json:"unit_price"`
}

// Totals holds the quantity-weighted sums written into a totals row.
type Totals struct {
	Qty        float64 `json:"qty"`
	Length     float64 `json:"length"`
	Contour    float64 `json:"contour"`
	CutLength  float64 `json:"cut_length"`
	// Row is the row the totals were written to.
	Row int `json:"row"`
	// Inserted is false when an existing totals row was rewritten.
	Inserted bool `json:"inserted"`
}
