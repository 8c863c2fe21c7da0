// Package config loads partcost settings from TOML.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/ukaji3/partcost-go/pkg/partcost/costing"
	"github.com/ukaji3/partcost-go/pkg/partcost/format"
	"github.com/ukaji3/partcost-go/pkg/partcost/parser"
	"github.com/ukaji3/partcost-go/pkg/partcost/pricing"
	"github.com/ukaji3/partcost-go/pkg/partcost/sheet"
)

// DefaultFileName is the config file looked up when none is given.
const DefaultFileName = "partcost.toml"

// Environment overrides.
const (
	EnvPriceFile   = "PARTCOST_PRICE_FILE"
	EnvTargetSheet = "PARTCOST_TARGET_SHEET"
)

// Config is the complete partcost configuration.
type Config struct {
	Sheets    SheetsConfig    `toml:"sheets"`
	Keywords  KeywordsConfig  `toml:"keywords"`
	Labels    LabelsConfig    `toml:"labels"`
	Columns   ColumnsConfig   `toml:"columns"`
	Pricing   PricingConfig   `toml:"pricing"`
	Normalize NormalizeConfig `toml:"normalize"`
	Style     StyleConfig     `toml:"style"`
	Backup    BackupConfig    `toml:"backup"`
	Output    OutputConfig    `toml:"output"`
}

// SheetsConfig names the worksheets involved in a run.
type SheetsConfig struct {
	Target   string `toml:"target"`
	Price    string `toml:"price"`
	Nesting  string `toml:"nesting"`
	TubeInfo string `toml:"tube_info"`
}

// KeywordsConfig holds the labels searched for in free text.
type KeywordsConfig struct {
	SectionMarker   string   `toml:"section_marker"`
	Thickness       []string `toml:"thickness"`
	NameTerminators []string `toml:"name_terminators"`
	ThicknessLabel  string   `toml:"thickness_label"`
	Logistics       string   `toml:"logistics"`
	TubeCount       string   `toml:"tube_count"`
}

// LabelsConfig lists the accepted header texts per column.
type LabelsConfig struct {
	ID         []string `toml:"id"`
	PartName   []string `toml:"part_name"`
	Qty        []string `toml:"qty"`
	PartLength []string `toml:"part_length"`
	ContourQty []string `toml:"contour_qty"`
	CutLength  []string `toml:"cut_length"`
	Price      []string `toml:"price"`
}

// ColumnsConfig places annotations; columns are letters or numbers.
type ColumnsConfig struct {
	Thickness        string `toml:"thickness"`
	TubeCount        string `toml:"tube_count"`
	Logistics        string `toml:"logistics"`
	TubeInfoCount    string `toml:"tube_info_count"`
	NestingLookahead int    `toml:"nesting_lookahead"`
}

// PricingConfig controls the price table.
type PricingConfig struct {
	// File is a price workbook imported into the price sheet on every run.
	File          string  `toml:"file"`
	TubeTolerance float64 `toml:"tube_tolerance"`
	ResetPrices   bool    `toml:"reset_prices"`
}

// NormalizeConfig controls value normalization.
type NormalizeConfig struct {
	Enabled    bool     `toml:"enabled"`
	SkipSheets []string `toml:"skip_sheets"`
}

// StyleConfig controls the cosmetic pass.
type StyleConfig struct {
	Enabled     bool   `toml:"enabled"`
	DarkRed     string `toml:"dark_red"`
	LightYellow string `toml:"light_yellow"`
}

// Palette returns the configured colors.
func (s StyleConfig) Palette() format.Palette {
	return format.Palette{DarkRed: s.DarkRed, LightYellow: s.LightYellow}
}

// BackupConfig controls backups of processed files.
type BackupConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// OutputConfig controls the run report.
type OutputConfig struct {
	Format string `toml:"format"`
	Pretty bool   `toml:"pretty"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() *Config {
	labels := parser.DefaultLabels()
	palette := format.DefaultPalette()
	return &Config{
		Sheets: SheetsConfig{
			Target:   "Part Info",
			Price:    pricing.DefaultSheetName,
			Nesting:  "Nesting  Summary",
			TubeInfo: "Tube Info",
		},
		Keywords: KeywordsConfig{
			SectionMarker:   parser.DefaultSectionMarker,
			Thickness:       append([]string(nil), parser.DefaultThicknessKeywords...),
			NameTerminators: append([]string(nil), parser.DefaultNameTerminators...),
			ThicknessLabel:  "Толщина стенки",
			Logistics:       parser.DefaultLogisticsLabel,
			TubeCount:       parser.DefaultTubeCountLabel,
		},
		Labels: LabelsConfig{
			ID:         labels[parser.FieldID],
			PartName:   labels[parser.FieldPartName],
			Qty:        labels[parser.FieldQty],
			PartLength: labels[parser.FieldPartLength],
			ContourQty: labels[parser.FieldContourQty],
			CutLength:  labels[parser.FieldCutLength],
			Price:      labels[parser.FieldPrice],
		},
		Columns: ColumnsConfig{
			Thickness:        "E",
			TubeCount:        "F",
			Logistics:        "G",
			TubeInfoCount:    "A",
			NestingLookahead: 4,
		},
		Pricing: PricingConfig{
			TubeTolerance: pricing.DefaultTubeTolerance,
		},
		Normalize: NormalizeConfig{
			Enabled:    true,
			SkipSheets: []string{pricing.DefaultSheetName},
		},
		Style: StyleConfig{
			Enabled:     true,
			DarkRed:     palette.DarkRed,
			LightYellow: palette.LightYellow,
		},
		Backup: BackupConfig{
			Enabled: true,
			Dir:     "backups",
		},
		Output: OutputConfig{
			Format: "json",
		},
	}
}

// Load reads the TOML file at path over the defaults and applies
// environment overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, err
		default:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}

	if v := os.Getenv(EnvPriceFile); v != "" {
		cfg.Pricing.File = v
	}
	if v := os.Getenv(EnvTargetSheet); v != "" {
		cfg.Sheets.Target = v
	}
	return cfg, nil
}

// Save writes cfg to path as TOML.
func Save(path string, cfg *Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Rules converts the keyword, label and column settings into costing rules.
func (c *Config) Rules() (costing.Rules, error) {
	rules := costing.Rules{
		Sections:         parser.NewSectionMatcher(c.Keywords.SectionMarker, c.Keywords.NameTerminators...),
		Thickness:        parser.NewLabelExtractor(c.Keywords.Thickness...),
		Labels:           c.HeaderLabels(),
		ThicknessLabel:   c.Keywords.ThicknessLabel,
		LogisticsLabel:   c.Keywords.Logistics,
		TubeCountLabel:   c.Keywords.TubeCount,
		NestingLookahead: c.Columns.NestingLookahead,
		TubeTolerance:    c.Pricing.TubeTolerance,
	}

	cols := []struct {
		key string
		ref string
		dst *int
	}{
		{"thickness", c.Columns.Thickness, &rules.Output.Thickness},
		{"tube_count", c.Columns.TubeCount, &rules.Output.TubeCount},
		{"logistics", c.Columns.Logistics, &rules.Output.Logistics},
		{"tube_info_count", c.Columns.TubeInfoCount, &rules.TubeInfoColumn},
	}
	for _, col := range cols {
		n, err := sheet.ParseColumn(col.ref)
		if err != nil {
			return rules, fmt.Errorf("columns.%s: %w", col.key, err)
		}
		*col.dst = n
	}
	return rules, nil
}

// HeaderLabels returns the configured header labels.
func (c *Config) HeaderLabels() parser.Labels {
	l := parser.DefaultLabels()
	set := func(f parser.Field, v []string) {
		if len(v) > 0 {
			l[f] = v
		}
	}
	set(parser.FieldID, c.Labels.ID)
	set(parser.FieldPartName, c.Labels.PartName)
	set(parser.FieldQty, c.Labels.Qty)
	set(parser.FieldPartLength, c.Labels.PartLength)
	set(parser.FieldContourQty, c.Labels.ContourQty)
	set(parser.FieldCutLength, c.Labels.CutLength)
	set(parser.FieldPrice, c.Labels.Price)
	return l
}

// Classifier returns the row classifier for the cosmetic pass.
func (c *Config) Classifier() format.Classifier {
	return format.Classifier{
		Sections:      parser.NewSectionMatcher(c.Keywords.SectionMarker, c.Keywords.NameTerminators...),
		Labels:        c.HeaderLabels(),
		ResultMarkers: []string{"total", c.Keywords.Logistics},
	}
}

// SkipNormalize reports whether normalization skips the named sheet.
func (c *Config) SkipNormalize(name string) bool {
	for _, s := range c.Normalize.SkipSheets {
		if s == name {
			return true
		}
	}
	return false
}
