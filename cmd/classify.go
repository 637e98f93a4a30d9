/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fulmenhq/goinject/pkg/ascii"
	"github.com/fulmenhq/goinject/pkg/inject"
	"github.com/fulmenhq/goinject/pkg/repotype"
	"github.com/fulmenhq/goinject/pkg/targetfs"
)

func newClassifyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Detect the target repository type",
		Long: `Classify inspects the target root and prints the repository type used to
decide which mapped files apply, together with the signals behind it.`,
		Args: cobra.NoArgs,
		RunE: runClassify,
	}
	cmd.Flags().String("target", "", "Target repository root (default from config)")
	cmd.Flags().String("format", "text", "Output format (text|json)")
	return cmd
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func runClassify(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	fsys := targetfs.NewOS(cfg.Target)
	if !targetfs.IsDir(fsys, ".") {
		return fmt.Errorf("%w: %s", inject.ErrTargetMissing, cfg.Target)
	}

	rt, signals := repotype.Detect(fsys, cfg.OverlayDir)

	out := cmd.OutOrStdout()
	if format, _ := cmd.Flags().GetString("format"); format == "json" {
		data, err := json.MarshalIndent(map[string]interface{}{
			"target":    cfg.Target,
			"repo_type": rt,
			"signals":   signals,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to format JSON: %w", err)
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}

	frameworkConfig := signals.FrameworkConfig
	if frameworkConfig == "" {
		frameworkConfig = "none"
	}
	_, err = fmt.Fprint(out, ascii.Box([]string{
		"Target:               " + cfg.Target,
		"Repository type:      " + rt.String(),
		"",
		"Framework config:     " + frameworkConfig,
		"Framework dependency: " + yesNo(signals.FrameworkDependency),
		"Overlay directory:    " + yesNo(signals.HasOverlayDir),
	}))
	return err
}
