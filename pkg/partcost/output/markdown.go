package output

import (
	"fmt"
	"strings"

	"github.com/ukaji3/partcost-go/pkg/partcost/models"
)

// ToMarkdown renders the reports as a Markdown document.
func ToMarkdown(reports []*models.WorkbookReport) string {
	var b strings.Builder
	b.WriteString("# Part Cost Report\n")

	for _, r := range reports {
		b.WriteString(fmt.Sprintf("\n## %s\n\n", escapeMarkdownCell(r.BookName)))
		b.WriteString(fmt.Sprintf("- Run: %s\n", r.RunID))
		if r.PriceSheet != "" {
			b.WriteString(fmt.Sprintf("- Price table: %s (%d rows)\n", escapeMarkdownCell(r.PriceSheet), r.PriceRows))
		} else {
			b.WriteString("- Price table: none\n")
		}
		if r.BackupPath != "" {
			b.WriteString(fmt.Sprintf("- Backup: %s\n", r.BackupPath))
		}
		b.WriteString(fmt.Sprintf("- Grand total: %s\n", money(r.GrandTotal)))

		for _, s := range r.Sheets {
			writeSheetMarkdown(&b, &s)
		}
	}
	return b.String()
}

func writeSheetMarkdown(b *strings.Builder, s *models.SheetReport) {
	b.WriteString(fmt.Sprintf("\n### %s\n\n", escapeMarkdownCell(s.Name)))
	b.WriteString("| Row | Section | Status | Thickness | Logistics | Items | Total |\n")
	b.WriteString("| ---: | --- | --- | ---: | ---: | ---: | ---: |\n")
	for _, sec := range s.Sections {
		status := string(sec.Status)
		if sec.Reason != "" {
			status += ": " + sec.Reason
		}
		b.WriteString(fmt.Sprintf("| %d | %s | %s | %s | %s | %d | %s |\n",
			sec.MarkerRow,
			escapeMarkdownCell(sec.Name),
			escapeMarkdownCell(status),
			optional(sec.Thickness, models.FormatNumber),
			money(sec.LogisticsCost),
			sec.Items,
			optional(sec.Total, money),
		))
	}
	b.WriteString(fmt.Sprintf("\nSheet total: %s\n", money(s.Total)))

	var issues []string
	for _, sec := range s.Sections {
		for _, e := range sec.RowErrors {
			issues = append(issues, fmt.Sprintf("- row %d (%s): %s", e.Row, escapeMarkdownCell(e.ID), e.Message))
		}
	}
	if len(issues) > 0 {
		b.WriteString("\n#### Row errors\n\n")
		b.WriteString(strings.Join(issues, "\n"))
		b.WriteString("\n")
	}
}

func escapeMarkdownCell(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	v = strings.ReplaceAll(v, "\\", "\\\\")
	v = strings.ReplaceAll(v, "|", "\\|")
	v = strings.ReplaceAll(v, "\n", " ")
	return v
}

func money(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

func optional(f *float64, render func(float64) string) string {
	if f == nil {
		return "-"
	}
	return render(*f)
}
