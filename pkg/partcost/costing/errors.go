package costing

import (
	"errors"
	"fmt"

	"github.com/ukaji3/partcost-go/pkg/partcost/parser"
)

// ErrMissingMetadata marks a section that could not be priced. Its line-item
// price cells are left untouched.
var ErrMissingMetadata = errors.New("missing section metadata")

// Specific causes of ErrMissingMetadata.
var (
	ErrNoThickness   = fmt.Errorf("%w: no thickness", ErrMissingMetadata)
	ErrLookupMiss    = fmt.Errorf("%w: no usable price row", ErrMissingMetadata)
	ErrMissingHeader = fmt.Errorf("%w: missing header label", ErrMissingMetadata)
)

// ErrorMarker is written to the price cell of a row that cannot be priced.
const ErrorMarker = "ERROR"

// RowError records a line item whose numbers could not be read.
type RowError struct {
	Row   int
	ID    string
	Field parser.Field
	Err   error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d (id %s): %s: %v", e.Row, e.ID, e.Field, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// HeaderError reports the labels missing from a section's header row.
type HeaderError struct {
	Row     int
	Missing []parser.Field
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("header row %d lacks %v", e.Row, e.Missing)
}

func (e *HeaderError) Unwrap() error {
	return ErrMissingHeader
}
