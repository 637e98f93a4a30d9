// Package report renders run results as text, JSON or YAML.
package report

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aymerick/raymond"
	"gopkg.in/yaml.v3"

	"github.com/fulmenhq/goinject/pkg/inject"
)

// Format selects the report serialization
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a report format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported report format: %s", s)
	}
}

// Text listing limits
const (
	CreatedLimit = 20
	SkippedLimit = 10
)

// Separator frames the text report
var Separator = strings.Repeat("=", 60)

// SchemaDescriptor identifies the machine-readable report layout
type SchemaDescriptor struct {
	Name    string `json:"name" yaml:"name"`
	Version string `json:"version" yaml:"version"`
}

// Report is the serializable view of a run
type Report struct {
	Schema      SchemaDescriptor  `json:"schema" yaml:"schema"`
	GeneratedAt time.Time         `json:"generated_at" yaml:"generated_at"`
	Counts      inject.Counts     `json:"counts" yaml:"counts"`
	Run         *inject.RunResult `json:"run" yaml:"run"`
	Provenance  *Provenance       `json:"provenance,omitempty" yaml:"provenance,omitempty"`
}

// New builds a report for result. prov may be nil.
func New(result *inject.RunResult, prov *Provenance) *Report {
	return &Report{
		Schema:      SchemaDescriptor{Name: "goinject.report", Version: "v1"},
		GeneratedAt: time.Now().UTC(),
		Counts:      result.Counts(),
		Run:         result,
		Provenance:  prov,
	}
}

//go:embed templates/report.txt.hbs
var textTemplateSource string

var (
	textTemplate     *raymond.Template
	textTemplateOnce sync.Once
)

func loadTextTemplate() *raymond.Template {
	textTemplateOnce.Do(func() {
		tpl := raymond.MustParse(textTemplateSource)
		tpl.RegisterHelper("short", func(commit string) string {
			if len(commit) > 12 {
				return commit[:12]
			}
			return commit
		})
		textTemplate = tpl
	})
	return textTemplate
}

// Render serializes the report. Rendering has no side effects.
func (r *Report) Render(format Format) (string, error) {
	switch format {
	case FormatText, "":
		return r.renderText()
	case FormatJSON:
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return string(data) + "\n", nil
	case FormatYAML:
		data, err := yaml.Marshal(r)
		if err != nil {
			return "", fmt.Errorf("failed to marshal yaml: %w", err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unsupported report format: %s", format)
	}
}

func (r *Report) renderText() (string, error) {
	out, err := loadTextTemplate().Exec(r.textData())
	if err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return out, nil
}

func (r *Report) textData() map[string]interface{} {
	run := r.Run
	created := run.Filter(inject.KindCreated)
	skipped := run.Filter(inject.KindSkipped)

	data := map[string]interface{}{
		"separator":  Separator,
		"runID":      run.RunID,
		"target":     run.TargetRoot,
		"mapping":    run.MappingFile,
		"repoType":   run.RepoType.String(),
		"filterMode": string(run.FilterMode),
		"dryRun":     run.DryRun,
		"counts": map[string]interface{}{
			"processed": r.Counts.Processed,
			"created":   r.Counts.Created,
			"skipped":   r.Counts.Skipped,
			"errors":    r.Counts.Errors,
			"warnings":  r.Counts.Warnings,
		},
		"created":     outcomeRows(head(created, CreatedLimit)),
		"createdMore": remaining(created, CreatedLimit),
		"skipped":     outcomeRows(head(skipped, SkippedLimit)),
		"skippedMore": remaining(skipped, SkippedLimit),
		"errors":      outcomeRows(run.Filter(inject.KindError)),
		"warnings":    outcomeRows(run.Filter(inject.KindWarning)),
	}
	if r.Provenance != nil {
		data["provenance"] = map[string]interface{}{
			"commit": r.Provenance.Commit,
			"ref":    r.Provenance.Ref,
			"dirty":  r.Provenance.Dirty,
		}
	}
	return data
}

func head(outcomes []inject.Outcome, n int) []inject.Outcome {
	if len(outcomes) > n {
		return outcomes[:n]
	}
	return outcomes
}

func remaining(outcomes []inject.Outcome, n int) int {
	if len(outcomes) > n {
		return len(outcomes) - n
	}
	return 0
}

func outcomeRows(outcomes []inject.Outcome) []map[string]interface{} {
	rows := make([]map[string]interface{}, 0, len(outcomes))
	for _, o := range outcomes {
		rows = append(rows, map[string]interface{}{
			"path":    o.Path,
			"reason":  o.Reason,
			"message": o.Message,
			"updated": o.Updated,
		})
	}
	return rows
}

// Write renders the report to w
func (r *Report) Write(w io.Writer, format Format) error {
	out, err := r.Render(format)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// WriteFile renders the report to a UTF-8 file, creating parent directories
func (r *Report) WriteFile(path string, format Format) error {
	out, err := r.Render(format)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}
	// #nosec G306 -- reports are meant to be shared with the project
	if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
