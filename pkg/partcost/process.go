package partcost

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/ukaji3/partcost-go/pkg/partcost/config"
	"github.com/ukaji3/partcost-go/pkg/partcost/costing"
	"github.com/ukaji3/partcost-go/pkg/partcost/format"
	"github.com/ukaji3/partcost-go/pkg/partcost/models"
	"github.com/ukaji3/partcost-go/pkg/partcost/parser"
	"github.com/ukaji3/partcost-go/pkg/partcost/pricing"
	"github.com/ukaji3/partcost-go/pkg/partcost/sheet"
)

// Process prices the workbook at path in place and returns a report.
//
// The pass runs in a fixed order: tube counts are copied onto the target
// sheet, the price table is attached, every sheet is normalized, the target
// sheet is costed section by section, and finally the cosmetic pass runs.
// Sections lacking metadata are reported as skipped; only I/O failures and
// sheet access errors abort the run.
func Process(path string, opts Options) (*models.WorkbookReport, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, eris.Wrapf(ErrFileNotFound, "%s", path)
		}
		return nil, eris.Wrapf(err, "failed to stat %s", path)
	}

	cfg := opts.config()
	rules, err := cfg.Rules()
	if err != nil {
		return nil, eris.Wrap(err, "invalid configuration")
	}

	report := &models.WorkbookReport{
		RunID:    uuid.NewString(),
		BookName: filepath.Base(path),
		Path:     path,
	}
	log := opts.logger().With(zap.String("run_id", report.RunID), zap.String("book", report.BookName))

	if opts.ShouldBackup() {
		backup, err := CreateBackup(path, cfg.Backup.Dir, opts.now())
		if err != nil {
			return nil, err
		}
		report.BackupPath = backup
		log.Info("backup created", zap.String("path", backup))
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(fmt.Errorf("%w: %w", ErrInvalidFormat, err), "failed to open %s", path)
	}
	defer f.Close()
	log.Info("workbook opened", zap.Int("sheets", len(f.GetSheetList())))

	p := &pass{
		f:      f,
		cfg:    cfg,
		calc:   costing.New(rules),
		log:    log,
		report: report,
	}
	if err := p.run(opts); err != nil {
		return nil, err
	}

	if opts.DryRun {
		log.Info("dry run, workbook not saved")
		return report, nil
	}
	if err := f.Save(); err != nil {
		return nil, eris.Wrapf(NewProcessingError("", "save", err), "failed to save %s", path)
	}
	report.Saved = true
	log.Info("workbook saved", zap.Float64("grand_total", report.GrandTotal))
	return report, nil
}

// pass holds the state of one run over an open workbook.
type pass struct {
	f      *excelize.File
	cfg    *config.Config
	calc   *costing.Calculator
	log    *zap.Logger
	report *models.WorkbookReport
}

func (p *pass) run(opts Options) error {
	target := p.cfg.Sheets.Target
	if !p.hasSheet(target) {
		return eris.Wrapf(ErrNoTargetSheet, "%q in %s", target, p.report.BookName)
	}

	if err := p.enrich(target); err != nil {
		return err
	}

	table, err := p.loadPrices(opts.priceFile())
	if err != nil {
		return err
	}

	var fm *format.Formatter
	if opts.ShouldStyle() {
		fm = format.New(p.f, p.cfg.Style.Palette(), p.cfg.Classifier())
	}

	for _, name := range p.f.GetSheetList() {
		s, err := sheet.OpenExcelSheet(p.f, name)
		if err != nil {
			return NewProcessingError(name, "open", err)
		}

		var integers []parser.Cell
		if p.cfg.Normalize.Enabled && !p.cfg.SkipNormalize(name) {
			if integers, err = parser.NormalizeSheet(s); err != nil {
				return NewProcessingError(name, "normalize", err)
			}
			p.report.Normalized += len(integers)
		}

		if name == target {
			inserted, err := p.cost(s, table)
			if err != nil {
				return err
			}
			integers = integerCells(s, shiftCells(integers, inserted))
		}

		if fm != nil {
			sum, err := fm.Apply(s, integers)
			if err != nil {
				return NewProcessingError(name, "format", err)
			}
			p.log.Debug("sheet formatted", zap.String("sheet", name), zap.Any("rows", sum.Rows), zap.Bool("merged_first_row", sum.MergedFirst))
		}
	}
	return nil
}

func (p *pass) hasSheet(name string) bool {
	idx, err := p.f.GetSheetIndex(name)
	return err == nil && idx != -1
}

func (p *pass) openIfPresent(name string) (sheet.Reader, error) {
	if name == "" || !p.hasSheet(name) {
		return nil, nil
	}
	s, err := sheet.OpenExcelSheet(p.f, name)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// enrich copies tube counts from the nesting summary or tube info sheet onto
// the target sheet's marker rows.
func (p *pass) enrich(target string) error {
	nesting, err := p.openIfPresent(p.cfg.Sheets.Nesting)
	if err != nil {
		return NewProcessingError(p.cfg.Sheets.Nesting, "enrich", err)
	}
	tubeInfo, err := p.openIfPresent(p.cfg.Sheets.TubeInfo)
	if err != nil {
		return NewProcessingError(p.cfg.Sheets.TubeInfo, "enrich", err)
	}

	counts, source := p.calc.CollectTubeCounts(nesting, tubeInfo)
	if len(counts) == 0 {
		p.log.Debug("no tube counts found")
		return nil
	}

	s, err := sheet.OpenExcelSheet(p.f, target)
	if err != nil {
		return NewProcessingError(target, "enrich", err)
	}
	applied, err := p.calc.ApplyTubeCounts(s, counts)
	if err != nil {
		return NewProcessingError(target, "enrich", err)
	}

	p.report.TubeCounts = counts
	p.report.TubeCountSource = string(source)
	p.log.Info("tube counts copied",
		zap.String("source", string(source)),
		zap.Int("found", len(counts)),
		zap.Strings("applied", applied))
	return nil
}

// loadPrices attaches the external price workbook, if any, and reads the
// price table. A missing table is not an error: every section will be
// reported as skipped.
func (p *pass) loadPrices(priceFile string) (*pricing.Table, error) {
	name := p.cfg.Sheets.Price

	var src sheet.Reader
	if priceFile != "" {
		g, err := pricing.ImportWorkbook(priceFile)
		if err != nil {
			return nil, NewProcessingError(name, "prices", err)
		}
		attached, err := pricing.AttachSheet(p.f, g, name)
		if err != nil {
			return nil, NewProcessingError(name, "prices", err)
		}
		p.log.Info("price sheet attached", zap.String("file", filepath.Base(priceFile)), zap.Int("rows", g.MaxRow()))
		src = attached
	} else {
		var err error
		if src, err = p.openIfPresent(name); err != nil {
			return nil, NewProcessingError(name, "prices", err)
		}
	}

	if src == nil {
		p.log.Warn("sections will not be priced", zap.Error(ErrNoPriceTable), zap.String("sheet", name))
		return nil, nil
	}

	table := pricing.LoadTable(src)
	p.report.PriceSheet = name
	p.report.PriceRows = table.Len()
	if table.Len() == 0 {
		p.log.Warn("price table has no usable rows", zap.String("sheet", name))
	}
	return table, nil
}

// cost runs the costing pass on the target sheet and records its report.
// It returns the rows of inserted totals rows, ascending.
func (p *pass) cost(s *sheet.ExcelSheet, table *pricing.Table) ([]int, error) {
	name := s.Name()

	if p.cfg.Pricing.ResetPrices {
		n, err := p.calc.ResetPrices(s)
		if err != nil {
			return nil, NewProcessingError(name, "costing", err)
		}
		p.log.Info("price column cleared", zap.String("sheet", name), zap.Int("cells", n))
	}

	results, err := p.calc.ProcessSheet(s, table)
	if err != nil {
		return nil, NewProcessingError(name, "costing", err)
	}

	sr := models.SheetReport{Name: name, Sections: make([]models.SectionReport, 0, len(results))}
	var inserted []int
	for _, res := range results {
		rep := sectionReport(res)
		log := p.log.With(zap.String("sheet", name), zap.Int("marker_row", rep.MarkerRow), zap.String("section", rep.Name))

		switch {
		case res.Cost != nil:
			sr.Total += res.Cost.Total
			log.Info("section priced", zap.Float64("total", res.Cost.Total), zap.Int("items", len(res.Cost.Items)))
			for _, e := range res.Cost.RowErrors {
				log.Warn("row not priced", zap.Int("row", e.Row), zap.String("id", e.ID), zap.Error(e))
			}
		case errors.Is(res.Skipped, costing.ErrMissingMetadata):
			log.Warn("section skipped", zap.Error(res.Skipped))
		}

		if res.Totals != nil {
			log.Debug("totals written", zap.Int("row", res.Totals.Row), zap.Bool("inserted", res.Totals.Inserted))
			if res.Totals.Inserted {
				inserted = append(inserted, res.Totals.Row)
			}
		}
		sr.Sections = append(sr.Sections, rep)
	}

	sr.Total = round2(sr.Total)
	p.report.Sheets = append(p.report.Sheets, sr)
	p.report.GrandTotal = round2(p.report.GrandTotal + sr.Total)
	return inserted, nil
}

func sectionReport(res costing.SectionResult) models.SectionReport {
	rep := models.SectionReport{
		MarkerRow: res.Section.MarkerRow,
		Name:      res.Section.Name,
		TubeCount: res.Annotation.TubeCount,
		Totals:    res.Totals,
		Status:    models.StatusSkipped,
	}
	if res.Skipped != nil {
		rep.Reason = res.Skipped.Error()
	}

	c := res.Cost
	if c == nil {
		return rep
	}
	rep.Status = models.StatusPriced
	rep.Thickness = &c.Thickness
	rep.LogisticsCost = c.LogisticsCost
	price := c.Price
	rep.Price = &price
	rep.Items = len(c.Items)
	rep.LineItems = c.Items
	total := c.Total
	rep.Total = &total
	for _, e := range c.RowErrors {
		rep.RowErrors = append(rep.RowErrors, models.RowIssue{
			Row:     e.Row,
			ID:      e.ID,
			Message: fmt.Sprintf("%s: %v", e.Field, e.Err),
		})
	}
	return rep
}

// shiftCells maps row-major cell positions taken before totals rows were
// inserted to their positions afterwards. inserted holds the final rows of
// the inserted rows, ascending.
func shiftCells(cells []parser.Cell, inserted []int) []parser.Cell {
	if len(inserted) == 0 {
		return cells
	}
	out := make([]parser.Cell, len(cells))
	k := 0
	for i, c := range cells {
		for k < len(inserted) && inserted[k] <= c.Row+k {
			k++
		}
		out[i] = parser.Cell{Row: c.Row + k, Col: c.Col}
	}
	return out
}

// integerCells keeps the cells that still hold whole numbers. Costing may
// have overwritten a normalized cell with a fractional price.
func integerCells(r sheet.Reader, cells []parser.Cell) []parser.Cell {
	out := cells[:0]
	for _, c := range cells {
		v := r.Cell(c.Row, c.Col)
		if v.IsNumber() && v.Num == math.Trunc(v.Num) {
			out = append(out, c)
		}
	}
	return out
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
