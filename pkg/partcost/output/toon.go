package output

import (
	toon "github.com/mateuszkardas/toon-go"

	"github.com/ukaji3/partcost-go/pkg/partcost/models"
)

// ToTOON encodes the reports as TOON. Sections are flattened into one
// uniform list so the encoder can emit them as a table.
func ToTOON(reports []*models.WorkbookReport) (string, error) {
	return toon.Marshal(buildTOONPayload(reports), nil)
}

func buildTOONPayload(reports []*models.WorkbookReport) map[string]any {
	books := make([]map[string]any, 0, len(reports))
	sections := make([]map[string]any, 0)
	errs := make([]map[string]any, 0)

	for _, r := range reports {
		books = append(books, map[string]any{
			"book":        r.BookName,
			"run_id":      r.RunID,
			"price_rows":  r.PriceRows,
			"normalized":  r.Normalized,
			"grand_total": r.GrandTotal,
			"saved":       r.Saved,
		})
		for _, s := range r.Sheets {
			for _, sec := range s.Sections {
				sections = append(sections, map[string]any{
					"book":       r.BookName,
					"sheet":      s.Name,
					"marker_row": sec.MarkerRow,
					"name":       sec.Name,
					"status":     string(sec.Status),
					"thickness":  floatOrNil(sec.Thickness),
					"logistics":  sec.LogisticsCost,
					"items":      sec.Items,
					"total":      floatOrNil(sec.Total),
				})
				for _, e := range sec.RowErrors {
					errs = append(errs, map[string]any{
						"book":    r.BookName,
						"sheet":   s.Name,
						"row":     e.Row,
						"id":      e.ID,
						"message": e.Message,
					})
				}
			}
		}
	}

	payload := map[string]any{
		"books":    books,
		"sections": sections,
	}
	if len(errs) > 0 {
		payload["row_errors"] = errs
	}
	return payload
}

func floatOrNil(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}
