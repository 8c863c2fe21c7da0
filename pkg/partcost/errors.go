package partcost

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file is not a valid xlsx format.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ErrNoTargetSheet indicates the workbook lacks the sheet to be priced.
var ErrNoTargetSheet = errors.New("target sheet not found")

// ErrNoPriceTable indicates no price table was available. Sections are then
// skipped rather than failing the run.
var ErrNoPriceTable = errors.New("no price table")

// ProcessingError represents an error while processing a workbook.
type ProcessingError struct {
	SheetName string
	Component string // "open", "enrich", "prices", "normalize", "costing", "format", "save"
	Err       error
}

func (e *ProcessingError) Error() string {
	if e.SheetName == "" {
		return fmt.Sprintf("processing error (%s): %v", e.Component, e.Err)
	}
	return fmt.Sprintf("processing error in sheet %q (%s): %v", e.SheetName, e.Component, e.Err)
}

func (e *ProcessingError) Unwrap() error {
	return e.Err
}

// NewProcessingError creates a new ProcessingError.
func NewProcessingError(sheetName, component string, err error) *ProcessingError {
	return &ProcessingError{
		SheetName: sheetName,
		Component: component,
		Err:       err,
	}
}
