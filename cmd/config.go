/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/fulmenhq/goinject/pkg/config"
	"github.com/fulmenhq/goinject/pkg/exitcode"
	"github.com/fulmenhq/goinject/pkg/logger"
)

// loadConfig reads layered configuration and applies the flags the user set
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadConfig(config.LoadOptions{ConfigFile: path})
	if err != nil {
		return nil, withExitCode(exitcode.ConfigError, err)
	}
	if cfg.Source != "" {
		logger.Debug("Loaded configuration", logger.String("path", cfg.Source))
	}
	applyFlagOverrides(cmd.Flags(), cfg)
	return cfg, nil
}

func changed(flags *pflag.FlagSet, name string) bool {
	f := flags.Lookup(name)
	return f != nil && f.Changed
}

// applyFlagOverrides copies explicitly set flags over configured values.
// Negated pairs such as --no-adapt-paths win over their positive form.
func applyFlagOverrides(flags *pflag.FlagSet, cfg *config.Config) {
	for name, dst := range map[string]*string{
		"mapping":       &cfg.Mapping,
		"target":        &cfg.Target,
		"filter-mode":   &cfg.FilterMode,
		"report":        &cfg.Report,
		"report-format": &cfg.ReportFormat,
		"overlay-dir":   &cfg.OverlayDir,
	} {
		if changed(flags, name) {
			*dst, _ = flags.GetString(name)
		}
	}

	for name, dst := range map[string]*bool{
		"skip-repo-dir": &cfg.SkipOverlayDir,
		"adapt-paths":   &cfg.AdaptPaths,
	} {
		if changed(flags, name) {
			*dst, _ = flags.GetBool(name)
		}
		if changed(flags, "no-"+name) {
			if neg, _ := flags.GetBool("no-" + name); neg {
				*dst = false
			}
		}
	}

	if changed(flags, "exclude") {
		extra, _ := flags.GetStringArray("exclude")
		cfg.Exclude = append(cfg.Exclude, extra...)
	}
}
