// Package format applies the cosmetic pass to processed worksheets: row
// styling by row kind, first-row merging and column widths.
package format

import (
	"github.com/ukaji3/partcost-go/pkg/partcost/models"
	"github.com/ukaji3/partcost-go/pkg/partcost/parser"
)

// RowKind classifies a row for styling.
type RowKind int

const (
	RowOther RowKind = iota
	RowSection
	RowHeader
	RowResult
	RowEmpty
)

func (k RowKind) String() string {
	switch k {
	case RowSection:
		return "section"
	case RowHeader:
		return "header"
	case RowResult:
		return "result"
	case RowEmpty:
		return "empty"
	}
	return "other"
}

// Row heights in points.
var rowHeights = map[RowKind]float64{
	RowSection: 35,
	RowHeader:  25,
	RowResult:  35,
	RowEmpty:   35,
	RowOther:   15,
}

// Classifier decides the kind of a row from its values.
type Classifier struct {
	Sections *parser.SectionMatcher
	Labels   parser.Labels
	// ResultMarkers flag totals and cost rows; matched case-insensitively.
	ResultMarkers []string
}

// DefaultClassifier returns the stock classifier.
func DefaultClassifier() Classifier {
	return Classifier{
		Sections:      parser.NewSectionMatcher(parser.DefaultSectionMarker, parser.DefaultNameTerminators...),
		Labels:        parser.DefaultLabels(),
		ResultMarkers: []string{"total", parser.DefaultLogisticsLabel},
	}
}

// Classify returns the kind of a row. Section beats header, header beats
// result.
func (c Classifier) Classify(values []models.Value) RowKind {
	var section, header, result bool
	empty := true
	for _, v := range values {
		if v.Kind != models.KindEmpty {
			empty = false
		}
		if !v.IsText() {
			continue
		}
		if c.Sections.IsMarker(v.Text) {
			section = true
		}
		if _, ok := c.Labels.Match(v); ok {
			header = true
		}
		for _, m := range c.ResultMarkers {
			if parser.ContainsFold(v.Text, m) {
				result = true
			}
		}
	}

	switch {
	case section:
		return RowSection
	case header:
		return RowHeader
	case result:
		return RowResult
	case empty:
		return RowEmpty
	}
	return RowOther
}
