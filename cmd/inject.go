/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fulmenhq/goinject/pkg/exitcode"
	"github.com/fulmenhq/goinject/pkg/filter"
	"github.com/fulmenhq/goinject/pkg/inject"
	"github.com/fulmenhq/goinject/pkg/logger"
	"github.com/fulmenhq/goinject/pkg/report"
)

func newInjectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inject",
		Short: "Inject mapped files into a target",
		Long: `Inject writes every file of the mapping into the target directory.

Files are processed in category priority order. A file whose content already
matches is skipped; a differing file is replaced. Failures are reported per
file and never stop the run.

Exit Codes:
  0  - All files created or skipped
  1  - Report file could not be written
  2  - Configuration or mapping could not be loaded
  4  - Target directory does not exist
  10 - One or more files failed`,
		Args: cobra.NoArgs,
		RunE: runInject,
	}

	addMappingFlags(cmd)
	cmd.Flags().Bool("dry-run", false, "Show what would be written without touching the target")
	cmd.Flags().String("report", "", "Also write the report to this file")
	cmd.Flags().String("report-format", "text", "Report format (text|json|yaml)")
	cmd.Flags().String("filter-mode", "auto", "File filtering mode (none|auto|minimal|full)")
	cmd.Flags().Bool("skip-repo-dir", false, "Skip files under the overlay directory (default: paths are adapted instead)")
	cmd.Flags().Bool("no-skip-repo-dir", false, "Include files under the overlay directory")
	cmd.Flags().Bool("adapt-paths", true, "Adapt paths for the detected repository type")
	cmd.Flags().Bool("no-adapt-paths", false, "Disable path adaptation")
	cmd.Flags().String("overlay-dir", "", "Overlay directory name (default .repo)")
	cmd.Flags().StringArray("exclude", nil, "Glob of manifest paths to skip (repeatable)")
	return cmd
}

// addMappingFlags adds the flags shared by commands that read a mapping
func addMappingFlags(cmd *cobra.Command) {
	cmd.Flags().String("mapping", "", "Mapping file (default from config)")
	cmd.Flags().String("target", "", "Target repository root (default from config)")
}

func runInject(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	mode, err := filter.ParseMode(cfg.FilterMode)
	if err != nil {
		return withExitCode(exitcode.ConfigError, err)
	}
	format, err := report.ParseFormat(cfg.ReportFormat)
	if err != nil {
		return withExitCode(exitcode.ConfigError, err)
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	if noOp, _ := cmd.Flags().GetBool("no-op"); noOp {
		dryRun = true
	}
	noColor, _ := cmd.Flags().GetBool("no-color")

	out := cmd.OutOrStdout()
	// Keep stdout parseable when it carries a machine-readable report
	stream := out
	if format != report.FormatText && cfg.Report == "" {
		stream = cmd.ErrOrStderr()
	}
	printer := newOutcomePrinter(stream, !noColor)
	printer.Info("Target: %s", cfg.Target)
	printer.Info("Mapping: %s", cfg.Mapping)
	if dryRun {
		printer.Info("Dry run: no files will be written")
	}

	result, err := inject.Run(inject.Options{
		TargetRoot:     cfg.Target,
		MappingFile:    cfg.Mapping,
		DryRun:         dryRun,
		FilterMode:     mode,
		SkipOverlayDir: cfg.SkipOverlayDir,
		AdaptPaths:     cfg.AdaptPaths,
		OverlayDir:     cfg.OverlayDir,
		Exclude:        cfg.Exclude,
		Substitutions:  cfg.Substitutions,
		Observer:       printer.Print,
	})
	if err != nil {
		return err
	}

	rep := report.New(result, report.Inspect(cfg.Target))
	if cfg.Report != "" {
		if err := rep.WriteFile(cfg.Report, format); err != nil {
			return withExitCode(exitcode.GeneralError, err)
		}
		logger.Info("Report written", logger.String("path", cfg.Report))
		format = report.FormatText
	}
	if format == report.FormatText {
		if _, err := fmt.Fprintln(out); err != nil {
			return err
		}
	}
	if err := rep.Write(out, format); err != nil {
		return err
	}

	if result.HasErrors() {
		c := result.Counts()
		return withExitCode(exitcode.InjectionFailed, fmt.Errorf("%d of %d file(s) failed", c.Errors, c.Processed))
	}
	return nil
}
