package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/fulmenhq/goinject/pkg/adapt"
	"github.com/fulmenhq/goinject/pkg/manifest"
	"github.com/fulmenhq/goinject/pkg/repotype"
)

// FileName is the project configuration file, without extension
const FileName = ".goinject"

// EnvPrefix prefixes environment overrides, e.g. GOINJECT_FILTER_MODE
const EnvPrefix = "GOINJECT"

// Config holds all configuration for goinject
type Config struct {
	Mapping        string                          `mapstructure:"mapping"`
	Target         string                          `mapstructure:"target"`
	FilterMode     string                          `mapstructure:"filter_mode"`
	SkipOverlayDir bool                            `mapstructure:"skip_overlay_dir"`
	AdaptPaths     bool                            `mapstructure:"adapt_paths"`
	Report         string                          `mapstructure:"report"`
	ReportFormat   string                          `mapstructure:"report_format"`
	OverlayDir     string                          `mapstructure:"overlay_dir"`
	Exclude        []string                        `mapstructure:"exclude"`
	Substitutions  map[string][]adapt.Substitution `mapstructure:"substitutions"`

	// Source is the config file that was read, if any
	Source string `mapstructure:"-"`
}

var defaultConfig = Config{
	Mapping:        manifest.DefaultMappingFile,
	Target:         ".",
	FilterMode:     "auto",
	SkipOverlayDir: false,
	AdaptPaths:     true,
	ReportFormat:   "text",
	OverlayDir:     repotype.OverlayDir,
	Exclude:        []string{},
}

// Defaults returns a copy of the built-in configuration
func Defaults() Config {
	c := defaultConfig
	c.Exclude = append([]string{}, defaultConfig.Exclude...)
	return c
}

// LoadOptions controls where configuration is looked up
type LoadOptions struct {
	// ConfigFile is an explicit config path; it must exist when set
	ConfigFile string
	// SearchDirs replaces the default lookup of the working directory
	// followed by the goinject home
	SearchDirs []string
}

// LoadConfig layers defaults, the config file and GOINJECT_* environment
// variables. Flags are applied by the caller.
func LoadConfig(opts LoadOptions) (*Config, error) {
	v := viper.New()

	v.SetDefault("mapping", defaultConfig.Mapping)
	v.SetDefault("target", defaultConfig.Target)
	v.SetDefault("filter_mode", defaultConfig.FilterMode)
	v.SetDefault("skip_overlay_dir", defaultConfig.SkipOverlayDir)
	v.SetDefault("adapt_paths", defaultConfig.AdaptPaths)
	v.SetDefault("report", defaultConfig.Report)
	v.SetDefault("report_format", defaultConfig.ReportFormat)
	v.SetDefault("overlay_dir", defaultConfig.OverlayDir)
	v.SetDefault("exclude", defaultConfig.Exclude)

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		dirs := opts.SearchDirs
		if len(dirs) == 0 {
			dirs = []string{"."}
			if home, err := GetGoinjectHome(); err == nil {
				dirs = append(dirs, home)
			}
		}
		for _, dir := range dirs {
			v.AddConfigPath(dir)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	source := v.ConfigFileUsed()
	if source != "" {
		data, err := os.ReadFile(filepath.Clean(source))
		if err != nil {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
		if err := ValidateConfig(data); err != nil {
			return nil, fmt.Errorf("%s: %w", source, err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	config.Source = source

	for key := range config.Substitutions {
		if _, err := repotype.Parse(key); err != nil {
			return nil, fmt.Errorf("substitutions: %w", err)
		}
	}

	return &config, nil
}

// GetGoinjectHome returns the goinject home directory
func GetGoinjectHome() (string, error) {
	if home := os.Getenv("GOINJECT_HOME"); home != "" {
		return home, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, ".goinject"), nil
}
