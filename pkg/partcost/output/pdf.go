package output

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/ukaji3/partcost-go/pkg/partcost/models"
)

var (
	headerBg     = &props.Color{Red: 139, Green: 0, Blue: 0}
	skippedBg    = &props.Color{Red: 255, Green: 255, Blue: 153}
	summaryBg    = &props.Color{Red: 240, Green: 240, Blue: 240}
	mutedColor   = &props.Color{Red: 100, Green: 100, Blue: 100}
	headerColumn = []struct {
		title string
		size  int
	}{
		{"Row", 1}, {"Section", 3}, {"Status", 2}, {"Thickness", 1},
		{"Logistics", 2}, {"Items", 1}, {"Total", 2},
	}
)

// ToPDF renders the reports as an A4 PDF document, one block per sheet.
func ToPDF(reports []*models.WorkbookReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   mutedColor,
		}).
		Build()

	m := maroto.New(cfg)
	m.AddRows(row.New(12).Add(
		col.New(12).Add(text.New("Part Cost Report", props.Text{
			Size:  16,
			Style: fontstyle.Bold,
			Align: align.Center,
		})),
	))

	for _, r := range reports {
		addBook(m, r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func addBook(m core.Maroto, r *models.WorkbookReport) {
	m.AddRows(row.New(4))
	m.AddRows(row.New(8).Add(
		col.New(8).Add(text.New(r.BookName, props.Text{Size: 11, Style: fontstyle.Bold})),
		col.New(4).Add(text.New("Run "+r.RunID, props.Text{Size: 7, Align: align.Right, Color: mutedColor})),
	))

	for i := range r.Sheets {
		addSheet(m, &r.Sheets[i])
	}

	summary := &props.Cell{BackgroundColor: summaryBg}
	bold := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}
	m.AddRows(row.New(8).Add(
		col.New(10).Add(text.New("Grand total", bold)).WithStyle(summary),
		col.New(2).Add(text.New(money(r.GrandTotal), bold)).WithStyle(summary),
	))
}

func addSheet(m core.Maroto, s *models.SheetReport) {
	m.AddRows(row.New(7).Add(
		col.New(12).Add(text.New(s.Name, props.Text{Size: 9, Style: fontstyle.Bold})),
	))

	head := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headCell := &props.Cell{BackgroundColor: headerBg}
	cols := make([]core.Col, 0, len(headerColumn))
	for _, h := range headerColumn {
		cols = append(cols, col.New(h.size).Add(text.New(h.title, head)).WithStyle(headCell))
	}
	m.AddRows(row.New(7).Add(cols...))

	for _, sec := range s.Sections {
		addSection(m, sec)
	}

	right := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right}
	m.AddRows(row.New(7).Add(
		col.New(10).Add(text.New("Sheet total", right)),
		col.New(2).Add(text.New(money(s.Total), right)),
	))
}

func addSection(m core.Maroto, sec models.SectionReport) {
	base := props.Text{Size: 7, Align: align.Center}
	left := base
	left.Align = align.Left
	right := base
	right.Align = align.Right

	cols := []core.Col{
		col.New(1).Add(text.New(fmt.Sprint(sec.MarkerRow), base)),
		col.New(3).Add(text.New(sec.Name, left)),
		col.New(2).Add(text.New(string(sec.Status), base)),
		col.New(1).Add(text.New(optional(sec.Thickness, models.FormatNumber), right)),
		col.New(2).Add(text.New(money(sec.LogisticsCost), right)),
		col.New(1).Add(text.New(fmt.Sprint(sec.Items), right)),
		col.New(2).Add(text.New(optional(sec.Total, money), right)),
	}
	if sec.Status == models.StatusSkipped {
		cell := &props.Cell{BackgroundColor: skippedBg}
		for i := range cols {
			cols[i] = cols[i].WithStyle(cell)
		}
	}
	m.AddRows(row.New(6).Add(cols...))

	if sec.Reason != "" {
		m.AddRows(row.New(5).Add(
			col.New(1),
			col.New(11).Add(text.New(sec.Reason, props.Text{Size: 6, Color: mutedColor})),
		))
	}
}
