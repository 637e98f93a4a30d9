// Package filter decides whether a planned file applies to a target.
package filter

import (
	"fmt"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/fulmenhq/goinject/pkg/ignore"
	"github.com/fulmenhq/goinject/pkg/repotype"
)

// Mode selects how aggressively files are filtered
type Mode string

const (
	ModeNone    Mode = "none"
	ModeAuto    Mode = "auto"
	ModeMinimal Mode = "minimal"
	ModeFull    Mode = "full"
)

// Modes lists accepted filter modes in flag-help order
var Modes = []Mode{ModeNone, ModeAuto, ModeMinimal, ModeFull}

// ParseMode validates a filter mode value
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Modes {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("invalid filter mode %q (expected none, auto, minimal or full)", s)
}

// Rejection reasons
const (
	ReasonOverlayExcluded = "overlay directory excluded"
	ReasonSplitDirs       = "split-architecture directories not present in this variant"
	ReasonExcluded        = "excluded by pattern"
	ReasonIgnored         = "ignored by " + ignore.FileName
	ReasonNotEssential    = "not in minimal essentials"
)

// SplitDirs are the directories absent from marketing-site variants
var SplitDirs = []string{"backend", "frontend"}

// Essentials are the base names kept in minimal mode
var Essentials = []string{"AGENTS.md", "PR_TEMPLATE.md"}

// Filter holds the per-run applicability inputs
type Filter struct {
	Mode           Mode
	RepoType       repotype.RepoType
	SkipOverlayDir bool
	AdaptPaths     bool
	// OverlayDir defaults to repotype.OverlayDir
	OverlayDir string
	// Exclude holds doublestar patterns matched against the manifest path
	Exclude []string
	Ignore  *ignore.Matcher
}

// ValidateExcludes reports the first malformed exclude pattern
func ValidateExcludes(patterns []string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid exclude pattern %q", p)
		}
	}
	return nil
}

// Applicable returns whether rel should be injected and, if not, why.
// rel is a normalized slash-separated path relative to the target root.
func (f Filter) Applicable(rel, category string) (bool, string) {
	if f.Mode == ModeNone {
		return true, ""
	}

	if f.SkipOverlayDir && under(rel, repotype.ResolveOverlay(f.OverlayDir)) {
		return false, ReasonOverlayExcluded
	}

	if f.RepoType == repotype.FrameworkMarketingSite {
		for _, dir := range SplitDirs {
			if under(rel, dir) {
				return false, ReasonSplitDirs
			}
		}
	}

	for _, pattern := range f.Exclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return false, ReasonExcluded
		}
	}
	if f.Ignore.IsIgnored(rel) {
		return false, ReasonIgnored
	}

	if f.AdaptPaths {
		return true, ""
	}

	if f.Mode == ModeMinimal && !isEssential(rel) {
		return false, ReasonNotEssential
	}

	return true, ""
}

func under(rel, dir string) bool {
	return rel == dir || strings.HasPrefix(rel, dir+"/")
}

func isEssential(rel string) bool {
	base := path.Base(rel)
	for _, name := range Essentials {
		if base == name {
			return true
		}
	}
	return false
}
