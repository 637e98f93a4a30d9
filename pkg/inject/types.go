package inject

import (
	"time"

	"github.com/fulmenhq/goinject/pkg/adapt"
	"github.com/fulmenhq/goinject/pkg/filter"
	"github.com/fulmenhq/goinject/pkg/manifest"
	"github.com/fulmenhq/goinject/pkg/repotype"
	"github.com/fulmenhq/goinject/pkg/targetfs"
)

// Kind classifies an outcome
type Kind string

const (
	KindCreated Kind = "created"
	KindSkipped Kind = "skipped"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
)

// Skip reasons
const (
	ReasonNotApplicable = "not applicable"
	ReasonIdentical     = "identical content"
)

// Outcome records what happened to one planned file, or a run warning
type Outcome struct {
	Kind     Kind   `json:"kind" yaml:"kind"`
	Path     string `json:"path,omitempty" yaml:"path,omitempty"`
	Category string `json:"category,omitempty" yaml:"category,omitempty"`
	// Reason is set on skipped outcomes
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
	// Message is set on error and warning outcomes
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
	// Updated marks a created outcome that replaced an existing file
	Updated bool `json:"updated,omitempty" yaml:"updated,omitempty"`
	// AdaptedFrom holds the manifest path when adaptation changed it
	AdaptedFrom string `json:"adapted_from,omitempty" yaml:"adapted_from,omitempty"`
}

// Options configures a run
type Options struct {
	TargetRoot     string
	MappingFile    string
	DryRun         bool
	FilterMode     filter.Mode
	SkipOverlayDir bool
	AdaptPaths     bool
	// OverlayDir overrides the overlay directory name used for classification,
	// filtering and adaptation
	OverlayDir string
	Exclude    []string
	// Substitutions are keyed by repository type tag
	Substitutions map[string][]adapt.Substitution

	// Manifest skips loading MappingFile when set
	Manifest *manifest.Manifest
	// FS replaces the host filesystem rooted at TargetRoot
	FS targetfs.FS
	// Observer receives each outcome as it is recorded
	Observer func(Outcome)
}

// Counts summarizes outcomes
type Counts struct {
	Processed int `json:"processed" yaml:"processed"`
	Created   int `json:"created" yaml:"created"`
	Updated   int `json:"updated" yaml:"updated"`
	Skipped   int `json:"skipped" yaml:"skipped"`
	Errors    int `json:"errors" yaml:"errors"`
	Warnings  int `json:"warnings" yaml:"warnings"`
}

// RunResult is the complete record of one run
type RunResult struct {
	RunID          string            `json:"run_id" yaml:"run_id"`
	StartedAt      time.Time         `json:"started_at" yaml:"started_at"`
	Duration       time.Duration     `json:"duration_ns" yaml:"duration_ns"`
	TargetRoot     string            `json:"target_root" yaml:"target_root"`
	MappingFile    string            `json:"mapping_file" yaml:"mapping_file"`
	DryRun         bool              `json:"dry_run" yaml:"dry_run"`
	RepoType       repotype.RepoType `json:"repo_type" yaml:"repo_type"`
	Signals        repotype.Signals  `json:"signals" yaml:"signals"`
	FilterMode     filter.Mode       `json:"filter_mode" yaml:"filter_mode"`
	AdaptPaths     bool              `json:"adapt_paths" yaml:"adapt_paths"`
	SkipOverlayDir bool              `json:"skip_overlay_dir" yaml:"skip_overlay_dir"`
	Planned        int               `json:"planned" yaml:"planned"`
	Outcomes       []Outcome         `json:"outcomes" yaml:"outcomes"`
}

// Filter returns outcomes of the given kind in arrival order
func (r *RunResult) Filter(kind Kind) []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Kind == kind {
			out = append(out, o)
		}
	}
	return out
}

// Counts tallies outcomes
func (r *RunResult) Counts() Counts {
	c := Counts{Processed: r.Planned}
	for _, o := range r.Outcomes {
		switch o.Kind {
		case KindCreated:
			c.Created++
			if o.Updated {
				c.Updated++
			}
		case KindSkipped:
			c.Skipped++
		case KindError:
			c.Errors++
		case KindWarning:
			c.Warnings++
		}
	}
	return c
}

// HasErrors reports whether any file failed
func (r *RunResult) HasErrors() bool {
	for _, o := range r.Outcomes {
		if o.Kind == KindError {
			return true
		}
	}
	return false
}
