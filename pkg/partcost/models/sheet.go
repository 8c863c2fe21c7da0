package models

// SectionStatus describes how a section came out of a costing pass.
type SectionStatus string

const (
	// StatusPriced means unit prices and a section total were computed.
	StatusPriced SectionStatus = "priced"
	// StatusSkipped means the section lacked metadata and was left unpriced.
	StatusSkipped SectionStatus = "skipped"
)

// RowIssue records a line item whose price could not be computed.
type RowIssue struct {
	// Row is the sheet row (1-based) after totals insertion.
	Row int `json:"row"`
	// ID is the line item identifier.
	ID string `json:"id"`
	// Message describes the failure.
	Message string `json:"message"`
}

// SectionReport summarizes the processing of one section.
type SectionReport struct {
	// MarkerRow is the row of the section marker (1-based).
	MarkerRow int `json:"marker_row"`
	// Name is the normalized section name, if the marker carries one.
	Name string `json:"name,omitempty"`
	// Thickness is the thickness used for the price lookup.
	Thickness *float64 `json:"thickness,omitempty"`
	// LogisticsCost is the section logistics cost (0 when absent).
	LogisticsCost float64 `json:"logistics_cost"`
	// TubeCount is the tube count found on the marker row.
	TubeCount *int `json:"tube_count,omitempty"`
	// Price is the price table row the thickness resolved to.
	Price *PriceRow `json:"price,omitempty"`
	// Status is priced or skipped.
	Status SectionStatus `json:"status"`
	// Reason explains a skipped section.
	Reason string `json:"reason,omitempty"`
	// Items is the number of line items priced.
	Items int `json:"items"`
	// LineItems are the priced items with their unit prices.
	LineItems []LineItem `json:"line_items,omitempty"`
	// RowErrors lists items marked "ERROR".
	RowErrors []RowIssue `json:"row_errors,omitempty"`
	// Total is the section cost, rounded to 2 decimals.
	Total *float64 `json:"total,omitempty"`
	// Totals is the totals row written after the item block.
	Totals *Totals `json:"totals,omitempty"`
}

// SheetReport summarizes the processing of a target sheet.
type SheetReport struct {
	// Name is the sheet name.
	Name string `json:"name"`
	// Sections are listed in sheet order.
	Sections []SectionReport `json:"sections"`
	// Total is the sum of all computed section totals.
	Total float64 `json:"total"`
}
