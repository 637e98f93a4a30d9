/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fulmenhq/goinject/pkg/ascii"
	"github.com/fulmenhq/goinject/pkg/exitcode"
	"github.com/fulmenhq/goinject/pkg/manifest"
	"github.com/fulmenhq/goinject/pkg/plan"
)

const planCellWidth = 60

func newPlanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the ordered, deduplicated injection plan",
		Long: `Plan prints the files a mapping would inject, in injection order.

Tiered categories come first in their fixed priority; other categories follow
in declaration order. When a path is declared twice, the first occurrence in
this order wins. Records without content are not listed.`,
		Args: cobra.NoArgs,
		RunE: runPlan,
	}
	cmd.Flags().String("mapping", "", "Mapping file (default from config)")
	cmd.Flags().String("format", "table", "Output format (table|json)")
	return cmd
}

type planRow struct {
	Index    int    `json:"index"`
	Path     string `json:"path"`
	Category string `json:"category"`
	Tier     int    `json:"tier"`
	Bytes    int    `json:"bytes"`
}

func runPlan(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	format, _ := cmd.Flags().GetString("format")
	if format != "table" && format != "json" {
		return withExitCode(exitcode.UnsupportedFormat, fmt.Errorf("unsupported plan format: %s", format))
	}

	m, err := manifest.Load(cfg.Mapping)
	if err != nil {
		return err
	}

	files := plan.Build(m)
	rows := make([]planRow, 0, len(files))
	for i, f := range files {
		rows = append(rows, planRow{
			Index:    i + 1,
			Path:     f.Path,
			Category: f.Category,
			Tier:     plan.Tier(f.Category),
			Bytes:    len(f.Content()),
		})
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to format JSON: %w", err)
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}

	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		tier := "-"
		if r.Tier >= 0 {
			tier = strconv.Itoa(r.Tier + 1)
		}
		cells = append(cells, []string{strconv.Itoa(r.Index), r.Path, plan.DisplayName(r.Category), tier, strconv.Itoa(r.Bytes)})
	}
	_, _ = fmt.Fprintf(out, "Plan for %s: %d file(s) from %d categories (%d records declared)\n\n",
		cfg.Mapping, len(rows), len(m.Categories), m.FileCount())
	_, err = fmt.Fprint(out, ascii.Table([]string{"#", "PATH", "CATEGORY", "TIER", "BYTES"}, cells, planCellWidth))
	return err
}
