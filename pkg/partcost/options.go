// Package partcost prices sectioned "Part Info" workbooks in place.
package partcost

import (
	"time"

	"go.uber.org/zap"

	"github.com/ukaji3/partcost-go/pkg/partcost/config"
)

// Options configures a processing run.
type Options struct {
	// Config supplies sheet names, keywords and layout. If nil, defaults are used.
	Config *config.Config
	// Logger receives progress events. If nil, nothing is logged.
	Logger *zap.Logger
	// PriceFile is a price workbook to import. If empty, Config.Pricing.File is used.
	PriceFile string
	// DryRun processes the workbook without saving it or making a backup.
	DryRun bool
	// Backup specifies whether to back up the input first.
	// If nil, defaults to Config.Backup.Enabled.
	Backup *bool
	// Style specifies whether to run the cosmetic pass.
	// If nil, defaults to Config.Style.Enabled.
	Style *bool
	// Jobs bounds how many files ProcessFiles handles at once.
	Jobs int
	// Now stamps backup names. If nil, time.Now is used.
	Now func() time.Time
}

// DefaultOptions returns default processing options.
func DefaultOptions() Options {
	return Options{
		Config: config.DefaultConfig(),
		Jobs:   1,
	}
}

func (o Options) config() *config.Config {
	if o.Config != nil {
		return o.Config
	}
	return config.DefaultConfig()
}

func (o Options) logger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.NewNop()
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

func (o Options) priceFile() string {
	if o.PriceFile != "" {
		return o.PriceFile
	}
	return o.config().Pricing.File
}

// ShouldBackup returns whether to back up the input before saving.
func (o Options) ShouldBackup() bool {
	if o.DryRun {
		return false
	}
	if o.Backup != nil {
		return *o.Backup
	}
	return o.config().Backup.Enabled
}

// ShouldStyle returns whether to run the cosmetic pass.
func (o Options) ShouldStyle() bool {
	if o.Style != nil {
		return *o.Style
	}
	return o.config().Style.Enabled
}
