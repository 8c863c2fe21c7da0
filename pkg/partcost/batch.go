package partcost

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ukaji3/partcost-go/pkg/partcost/models"
)

// FileResult is the outcome for one file of a batch.
type FileResult struct {
	Path   string
	Report *models.WorkbookReport
	Err    error
}

// ProcessFiles processes paths with at most opts.Jobs files in flight. Each
// file is still handled by a single sequential pass. A failing file does not
// stop the others; the returned error joins every per-file failure. Once ctx
// is canceled no further file is started and the cancellation is returned.
// Results are in input order.
func ProcessFiles(ctx context.Context, paths []string, opts Options) ([]FileResult, error) {
	log := opts.logger()
	results := make([]FileResult, len(paths))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Jobs, 1))
	for i, path := range paths {
		g.Go(func() error {
			results[i].Path = path
			if err := gCtx.Err(); err != nil {
				results[i].Err = err
				return err
			}

			report, err := Process(path, opts)
			if err != nil {
				log.Error("file failed", zap.String("path", path), zap.Error(err))
			}
			results[i].Report = report
			results[i].Err = err
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, fmt.Errorf("batch stopped: %w", err)
	}

	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.Path, r.Err))
		}
	}
	return results, errors.Join(errs...)
}

// Reports returns the reports of the successful results.
func Reports(results []FileResult) []*models.WorkbookReport {
	var out []*models.WorkbookReport
	for _, r := range results {
		if r.Report != nil {
			out = append(out, r.Report)
		}
	}
	return out
}
