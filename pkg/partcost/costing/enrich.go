package costing

import (
	"fmt"
	"math"

	"github.com/ukaji3/partcost-go/pkg/partcost/models"
	"github.com/ukaji3/partcost-go/pkg/partcost/parser"
	"github.com/ukaji3/partcost-go/pkg/partcost/sheet"
)

// CountSource names where tube counts were found.
type CountSource string

const (
	SourceNone     CountSource = ""
	SourceNesting  CountSource = "nesting"
	SourceTubeInfo CountSource = "tube_info"
)

// NestingCounts maps section names to the tube count labeled within a few
// cells to the right of each marker cell. A later marker with the same name
// overrides an earlier one.
func (c *Calculator) NestingCounts(r sheet.Reader) map[string]int {
	counts := map[string]int{}
	for row := 1; row <= r.MaxRow(); row++ {
		for col := 1; col <= r.MaxCol(); col++ {
			v := r.Cell(row, col)
			if !v.IsText() || !c.rules.Sections.IsMarker(v.Text) {
				continue
			}
			name, ok := c.rules.Sections.Name(v.Text)
			if !ok {
				continue
			}
			for off := 1; off <= c.rules.NestingLookahead; off++ {
				next := r.Cell(row, col+off)
				if !next.IsText() {
					continue
				}
				if n, ok := parser.ExtractCount(next.Text, c.rules.TubeCountLabel); ok {
					counts[name] = n
				}
			}
		}
	}
	return counts
}

// TubeInfoCounts maps section names to the first number found in the count
// column after each marker.
func (c *Calculator) TubeInfoCounts(r sheet.Reader) map[string]int {
	counts := map[string]int{}
	current, pending := "", false
	for row := 1; row <= r.MaxRow(); row++ {
		for col := 1; col <= r.MaxCol(); col++ {
			v := r.Cell(row, col)
			if v.IsText() && c.rules.Sections.IsMarker(v.Text) {
				name, ok := c.rules.Sections.Name(v.Text)
				current, pending = name, ok
				continue
			}
			if pending && col == c.rules.TubeInfoColumn && v.IsNumber() {
				counts[current] = int(math.Trunc(v.Num))
				pending = false
			}
		}
	}
	return counts
}

// CollectTubeCounts reads counts from the nesting summary and falls back to
// the tube info sheet when the former yields nothing. Either reader may be
// nil.
func (c *Calculator) CollectTubeCounts(nesting, tubeInfo sheet.Reader) (map[string]int, CountSource) {
	if nesting != nil {
		if counts := c.NestingCounts(nesting); len(counts) > 0 {
			return counts, SourceNesting
		}
	}
	if tubeInfo != nil {
		if counts := c.TubeInfoCounts(tubeInfo); len(counts) > 0 {
			return counts, SourceTubeInfo
		}
	}
	return map[string]int{}, SourceNone
}

// ApplyTubeCounts writes a tube count annotation onto every marker row of
// target whose section name has a count. Sections without a match are left
// alone. It returns the names that were written, in row order.
func (c *Calculator) ApplyTubeCounts(target sheet.Sheet, counts map[string]int) ([]string, error) {
	var applied []string
	for row := 1; row <= target.MaxRow(); row++ {
		for col := 1; col <= target.MaxCol(); col++ {
			v := target.Cell(row, col)
			if !v.IsText() || !c.rules.Sections.IsMarker(v.Text) {
				continue
			}
			name, ok := c.rules.Sections.Name(v.Text)
			if !ok {
				continue
			}
			n, ok := counts[name]
			if !ok {
				continue
			}
			label := models.Text(fmt.Sprintf("%s %d", c.rules.TubeCountLabel, n))
			if err := target.SetCell(row, c.rules.Output.TubeCount, label); err != nil {
				return applied, err
			}
			applied = append(applied, name)
		}
	}
	return applied, nil
}
