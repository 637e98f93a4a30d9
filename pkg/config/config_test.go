package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fulmenhq/goinject/pkg/adapt"
	"github.com/fulmenhq/goinject/pkg/manifest"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(LoadOptions{SearchDirs: []string{t.TempDir()}})
	require.NoError(t, err)

	assert.Equal(t, manifest.DefaultMappingFile, cfg.Mapping)
	assert.Equal(t, ".", cfg.Target)
	assert.Equal(t, "auto", cfg.FilterMode)
	assert.False(t, cfg.SkipOverlayDir)
	assert.True(t, cfg.AdaptPaths)
	assert.Equal(t, "text", cfg.ReportFormat)
	assert.Equal(t, ".repo", cfg.OverlayDir)
	assert.Empty(t, cfg.Source)
}

func TestLoadConfig_ProjectFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".goinject.yaml"), `
mapping: mappings/agents.yaml
filter_mode: minimal
adapt_paths: false
exclude:
  - ".github/**"
substitutions:
  framework_app:
    - from: .repo/docs
      to: docs
`)

	cfg, err := LoadConfig(LoadOptions{SearchDirs: []string{dir}})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, ".goinject.yaml"), cfg.Source)
	assert.Equal(t, "mappings/agents.yaml", cfg.Mapping)
	assert.Equal(t, "minimal", cfg.FilterMode)
	assert.False(t, cfg.AdaptPaths)
	assert.False(t, cfg.SkipOverlayDir, "unset keys keep defaults")
	assert.Equal(t, []string{".github/**"}, cfg.Exclude)
	assert.Equal(t, []adapt.Substitution{{From: ".repo/docs", To: "docs"}}, cfg.Substitutions["framework_app"])
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".goinject.yaml"), "filter_mode: minimal\n")
	t.Setenv("GOINJECT_FILTER_MODE", "full")
	t.Setenv("GOINJECT_TARGET", "/srv/repo")

	cfg, err := LoadConfig(LoadOptions{SearchDirs: []string{dir}})
	require.NoError(t, err)
	assert.Equal(t, "full", cfg.FilterMode)
	assert.Equal(t, "/srv/repo", cfg.Target)
}

func TestLoadConfig_ExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, path, "report: out/report.txt\nreport_format: json\n")

	cfg, err := LoadConfig(LoadOptions{ConfigFile: path})
	require.NoError(t, err)
	assert.Equal(t, "out/report.txt", cfg.Report)
	assert.Equal(t, "json", cfg.ReportFormat)

	_, err = LoadConfig(LoadOptions{ConfigFile: filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err, "explicit config must exist")
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".goinject.yaml"), "filter_mode: sometimes\n")

	_, err := LoadConfig(LoadOptions{SearchDirs: []string{dir}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration validation failed")
}

func TestLoadConfig_UnknownSubstitutionKey(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".goinject.yaml"), "substitutions:\n  webapp:\n    - {from: a, to: b}\n")

	_, err := LoadConfig(LoadOptions{SearchDirs: []string{dir}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown repository type "webapp"`)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr bool
	}{
		{"empty", "", false},
		{"valid", "filter_mode: auto\nexclude: [a, b]\n", false},
		{"unknown key", "colour: blue\n", true},
		{"bad report format", "report_format: html\n", true},
		{"missing to", "substitutions:\n  framework_app:\n    - {from: a}\n", true},
		{"json input", `{"adapt_paths": true}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConfig([]byte(tt.data))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetGoinjectHome(t *testing.T) {
	t.Setenv("GOINJECT_HOME", "/opt/goinject")
	home, err := GetGoinjectHome()
	require.NoError(t, err)
	assert.Equal(t, "/opt/goinject", home)
}

func TestDefaultsIsCopy(t *testing.T) {
	d := Defaults()
	d.Exclude = append(d.Exclude, "x")
	assert.Empty(t, Defaults().Exclude)
}
