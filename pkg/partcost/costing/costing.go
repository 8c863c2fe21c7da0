// Package costing prices line items section by section and writes the
// derived annotations and totals rows back into the sheet.
//
// Nothing here logs or aborts a run: section-level problems come back as
// errors matching ErrMissingMetadata, row-level problems as RowError values
// in the result, and any other error is a failure of the underlying sheet.
package costing

import (
	"math"

	"github.com/ukaji3/partcost-go/pkg/partcost/parser"
)

// Columns are the 1-based marker-row columns annotations are written to.
type Columns struct {
	Thickness int
	TubeCount int
	Logistics int
}

// Rules configures how sections are read and where results are written.
type Rules struct {
	// Sections recognizes marker rows and extracts section names.
	Sections *parser.SectionMatcher
	// Thickness lists thickness labels in priority order.
	Thickness *parser.LabelExtractor
	// Labels are the accepted header texts per line-item field.
	Labels parser.Labels

	// ThicknessLabel prefixes the thickness annotation.
	ThicknessLabel string
	LogisticsLabel string
	TubeCountLabel string

	// Output holds the annotation columns on the marker row.
	Output Columns
	// TubeInfoColumn is the column holding counts on the tube info sheet.
	TubeInfoColumn int
	// NestingLookahead is how many cells right of a nesting marker are
	// searched for a tube count.
	NestingLookahead int
	// TubeTolerance bounds the thickness difference for per-tube prices.
	TubeTolerance float64
}

// DefaultRules returns the stock Part Info layout.
func DefaultRules() Rules {
	return Rules{
		Sections:         parser.NewSectionMatcher(parser.DefaultSectionMarker, parser.DefaultNameTerminators...),
		Thickness:        parser.NewLabelExtractor(parser.DefaultThicknessKeywords...),
		Labels:           parser.DefaultLabels(),
		ThicknessLabel:   "Толщина стенки",
		LogisticsLabel:   parser.DefaultLogisticsLabel,
		TubeCountLabel:   parser.DefaultTubeCountLabel,
		Output:           Columns{Thickness: 5, TubeCount: 6, Logistics: 7},
		TubeInfoColumn:   1,
		NestingLookahead: 4,
		TubeTolerance:    0.01,
	}
}

// Calculator applies Rules to sheets. It holds no per-sheet state and may be
// shared between goroutines working on different sheets.
type Calculator struct {
	rules     Rules
	logistics *parser.LabelExtractor
}

// New returns a Calculator for rules. Zero-valued fields fall back to the
// defaults.
func New(rules Rules) *Calculator {
	def := DefaultRules()
	if rules.Sections == nil {
		rules.Sections = def.Sections
	}
	if rules.Thickness == nil {
		rules.Thickness = def.Thickness
	}
	if rules.Labels == nil {
		rules.Labels = def.Labels
	}
	if rules.ThicknessLabel == "" {
		rules.ThicknessLabel = def.ThicknessLabel
	}
	if rules.LogisticsLabel == "" {
		rules.LogisticsLabel = def.LogisticsLabel
	}
	if rules.TubeCountLabel == "" {
		rules.TubeCountLabel = def.TubeCountLabel
	}
	if rules.Output.Thickness == 0 {
		rules.Output.Thickness = def.Output.Thickness
	}
	if rules.Output.TubeCount == 0 {
		rules.Output.TubeCount = def.Output.TubeCount
	}
	if rules.Output.Logistics == 0 {
		rules.Output.Logistics = def.Output.Logistics
	}
	if rules.TubeInfoColumn == 0 {
		rules.TubeInfoColumn = def.TubeInfoColumn
	}
	if rules.NestingLookahead == 0 {
		rules.NestingLookahead = def.NestingLookahead
	}
	if rules.TubeTolerance == 0 {
		rules.TubeTolerance = def.TubeTolerance
	}

	return &Calculator{
		rules:     rules,
		logistics: parser.NewLabelExtractor(rules.LogisticsLabel),
	}
}

// Rules returns the effective rules.
func (c *Calculator) Rules() Rules { return c.rules }

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
