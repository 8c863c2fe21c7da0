// Package main provides the CLI entry point for partcost-go.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/ukaji3/partcost-go/pkg/partcost"
	"github.com/ukaji3/partcost-go/pkg/partcost/config"
	"github.com/ukaji3/partcost-go/pkg/partcost/models"
	"github.com/ukaji3/partcost-go/pkg/partcost/output"
)

var (
	configPath string
	priceFile  string
	outputPath string
	format     string
	pretty     bool
	sheetsDir  string
	dryRun     bool
	noBackup   bool
	noStyle    bool
	jobs       int
	verbose    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "partcost [input.xlsx...]",
		Short: "Price sectioned Part Info workbooks",
		Long: `partcost-go computes per-item and per-section prices for "Part Info"
workbooks from a thickness price table, writes totals rows back into each
workbook and reports the results.`,
		Args:         cobra.MinimumNArgs(1),
		RunE:         run,
		SilenceUsage: true,
	}
	addFlags(rootCmd.Flags())

	rootCmd.AddCommand(&cobra.Command{
		Use:   "init-config [path]",
		Short: "Write the default configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func addFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&configPath, "config", "c", config.DefaultFileName, "Configuration file")
	fs.StringVar(&priceFile, "prices", "", "Price workbook to import into the price sheet")
	fs.StringVarP(&outputPath, "output", "o", "", "Report file path (default: stdout)")
	fs.StringVar(&format, "format", "", "Report format: json, toon, markdown, pdf (default from config)")
	fs.BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	fs.StringVar(&sheetsDir, "sheets-dir", "", "Directory for per-sheet report files")
	fs.BoolVar(&dryRun, "dry-run", false, "Process without saving the workbooks")
	fs.BoolVar(&noBackup, "no-backup", false, "Do not back up workbooks before saving")
	fs.BoolVar(&noStyle, "no-style", false, "Skip the formatting pass")
	fs.IntVarP(&jobs, "jobs", "j", 1, "Number of workbooks processed in parallel")
	fs.BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Changed("format") {
		cfg.Output.Format = format
	}
	if cmd.Flags().Changed("pretty") {
		cfg.Output.Pretty = pretty
	}
	reportFormat, err := output.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}
	if reportFormat == output.FormatPDF && outputPath == "" && sheetsDir == "" {
		return fmt.Errorf("pdf output requires --output or --sheets-dir")
	}

	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()

	opts := partcost.Options{
		Config:    cfg,
		Logger:    logger,
		PriceFile: priceFile,
		DryRun:    dryRun,
		Jobs:      jobs,
	}
	if noBackup {
		opts.Backup = new(bool)
	}
	if noStyle {
		opts.Style = new(bool)
	}

	results, procErr := partcost.ProcessFiles(cmd.Context(), args, opts)
	reports := partcost.Reports(results)
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", r.Path, r.Err)
		}
	}

	if len(reports) > 0 {
		if err := writeReports(reports, reportFormat, cfg.Output.Pretty); err != nil {
			return err
		}
	}
	if procErr != nil {
		return fmt.Errorf("%d of %d workbooks failed", len(args)-len(reports), len(args))
	}
	return nil
}

func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func writeReports(reports []*models.WorkbookReport, f output.Format, pretty bool) error {
	data, err := output.Render(reports, f, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else if sheetsDir == "" {
		fmt.Println(string(data))
	}

	if sheetsDir != "" {
		if err := writeSheetFiles(reports, f, pretty, sheetsDir); err != nil {
			return fmt.Errorf("failed to write sheet files: %w", err)
		}
	}
	return nil
}

func writeSheetFiles(reports []*models.WorkbookReport, f output.Format, pretty bool, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	for _, r := range reports {
		book := strings.TrimSuffix(r.BookName, filepath.Ext(r.BookName))
		for i := range r.Sheets {
			s := &r.Sheets[i]
			data, err := output.RenderSheet(r, s, f, pretty)
			if err != nil {
				return err
			}

			filename := filepath.Join(dir, book+"_"+s.Name+f.Extension())
			if err := os.WriteFile(filename, data, 0644); err != nil {
				return err
			}
		}
	}
	return nil
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := config.DefaultFileName
	if len(args) == 1 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := config.Save(path, config.DefaultConfig()); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}
