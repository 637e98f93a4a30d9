/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/fulmenhq/goinject/pkg/exitcode"
	"github.com/fulmenhq/goinject/pkg/manifest"
)

func newValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [mapping...]",
		Short: "Validate mapping files against the schema",
		Long: `Validate checks mapping files against the file mapping schema.

Loading during injection is lenient: malformed categories or entries are
treated as empty. Validate reports them instead. With no arguments the
configured mapping file is checked.

Exit Codes:
  0 - All mappings valid
  2 - A mapping could not be read or parsed
  3 - Schema violations found`,
		RunE: runValidate,
	}
	cmd.Flags().String("format", "text", "Output format (text|json)")
	cmd.Flags().Int("workers", 0, "Parallel workers (default: number of CPUs)")
	return cmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		args = []string{cfg.Mapping}
	}

	workers, _ := cmd.Flags().GetInt("workers")
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]*manifest.ValidationResult, len(args))
	g, gctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(workers)
	for idx, path := range args {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			res, err := manifest.ValidateFile(path)
			if err != nil {
				return err
			}
			results[idx] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	invalid := 0
	for _, r := range results {
		if !r.Valid {
			invalid++
		}
	}

	if format, _ := cmd.Flags().GetString("format"); format == "json" {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to format JSON: %w", err)
		}
		if _, err := fmt.Fprintln(out, string(data)); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			if r.Valid {
				_, _ = fmt.Fprintf(out, "✅ %s: valid\n", r.Source)
				continue
			}
			_, _ = fmt.Fprintf(out, "❌ %s: %d error(s)\n", r.Source, len(r.Errors))
			for _, e := range r.Errors {
				_, _ = fmt.Fprintf(out, "   - %s: %s\n", e.Path, e.Message)
			}
		}
	}

	if invalid > 0 {
		return withExitCode(exitcode.ValidationError, fmt.Errorf("%d of %d mapping(s) invalid", invalid, len(results)))
	}
	return nil
}
