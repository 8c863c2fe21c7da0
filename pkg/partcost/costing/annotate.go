package costing

import (
	"fmt"
	"math"
	"strings"

	"github.com/ukaji3/partcost-go/pkg/partcost/models"
	"github.com/ukaji3/partcost-go/pkg/partcost/parser"
	"github.com/ukaji3/partcost-go/pkg/partcost/pricing"
	"github.com/ukaji3/partcost-go/pkg/partcost/sheet"
)

// Annotation is what AnnotateMarker derived from a marker row.
type Annotation struct {
	// Thickness is the rounded-up maximum thickness found on the row.
	Thickness *float64
	TubeCount *int
	// LogisticsCost is TubeCount times the per-tube price, when known.
	LogisticsCost *float64
}

// AnnotateMarker summarizes a marker row in place. Every thickness label on
// the row is read; the rounded-up maximum is written to the thickness
// column. When the row also carries a tube count and table has a per-tube
// price for that thickness, the logistics cost is written to the logistics
// column, where PriceSection will pick it up.
func (c *Calculator) AnnotateMarker(s sheet.Sheet, markerRow int, table *pricing.Table) (Annotation, error) {
	var (
		a      Annotation
		values []float64
	)
	for _, text := range parser.RowTexts(s, markerRow) {
		values = append(values, c.rules.Thickness.ExtractAll(text)...)
		if parser.ContainsFold(text, c.rules.TubeCountLabel) {
			if n, ok := parser.ExtractCount(text, c.rules.TubeCountLabel); ok {
				a.TubeCount = &n
			}
		}
	}
	if len(values) == 0 {
		return a, nil
	}

	maxValue := values[0]
	for _, v := range values[1:] {
		maxValue = math.Max(maxValue, v)
	}
	thickness := math.Ceil(maxValue)
	a.Thickness = &thickness

	label := fmt.Sprintf("%s: %s", c.rules.ThicknessLabel, models.FormatNumber(thickness))
	if err := s.SetCell(markerRow, c.rules.Output.Thickness, models.Text(label)); err != nil {
		return a, err
	}

	if a.TubeCount == nil {
		return a, nil
	}
	perTube, ok := table.TubePrice(thickness, c.rules.TubeTolerance)
	if !ok {
		return a, nil
	}
	cost := float64(*a.TubeCount) * perTube
	a.LogisticsCost = &cost

	label = fmt.Sprintf("%s %.2f", strings.TrimSpace(c.rules.LogisticsLabel), cost)
	if err := s.SetCell(markerRow, c.rules.Output.Logistics, models.Text(label)); err != nil {
		return a, err
	}
	return a, nil
}
