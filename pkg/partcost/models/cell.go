// Package models defines data structures for sectioned part costing.
package models

import (
	"strconv"
	"strings"
)

// Kind is the variant tag of a cell Value.
type Kind int

const (
	// KindEmpty marks a cell with no value.
	KindEmpty Kind = iota
	// KindNumber marks a numeric cell.
	KindNumber
	// KindText marks a text cell.
	KindText
)

// Value is the decoded content of a single cell.
type Value struct {
	// Kind selects which of Num or Text is meaningful.
	Kind Kind
	// Num holds the value of a numeric cell.
	Num float64
	// Text holds the value of a text cell.
	Text string
}

// Empty returns an empty cell value.
func Empty() Value {
	return Value{}
}

// Number returns a numeric cell value.
func Number(f float64) Value {
	return Value{Kind: KindNumber, Num: f}
}

// Text returns a text cell value.
func Text(s string) Value {
	return Value{Kind: KindText, Text: s}
}

// IsEmpty reports whether the cell carries no value. Text consisting only of
// whitespace counts as empty.
func (v Value) IsEmpty() bool {
	switch v.Kind {
	case KindEmpty:
		return true
	case KindText:
		return strings.TrimSpace(v.Text) == ""
	}
	return false
}

// IsText reports whether the cell holds text.
func (v Value) IsText() bool {
	return v.Kind == KindText
}

// IsNumber reports whether the cell holds a number.
func (v Value) IsNumber() bool {
	return v.Kind == KindNumber
}

// Float returns the numeric reading of the cell. Empty cells read as zero;
// text is parsed after trimming and fails when it is not a plain number.
func (v Value) Float() (float64, error) {
	switch v.Kind {
	case KindEmpty:
		return 0, nil
	case KindNumber:
		return v.Num, nil
	}
	s := strings.TrimSpace(v.Text)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

// String renders the cell the way it would be displayed.
func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		return FormatNumber(v.Num)
	case KindText:
		return v.Text
	}
	return ""
}

// FormatNumber renders f with the shortest representation that round-trips,
// without exponent notation.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
