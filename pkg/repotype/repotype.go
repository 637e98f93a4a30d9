// Package repotype labels an injection target with a repository-type tag.
//
// Classification is split in two: Inspect gathers Signals through a
// filesystem capability and never fails, Classify is a pure decision over
// those signals.
package repotype

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fulmenhq/goinject/pkg/targetfs"
)

// RepoType is the detected repository variant
type RepoType string

const (
	Unknown                RepoType = "unknown"
	GovernanceFramework    RepoType = "governance_framework"
	FrameworkApp           RepoType = "framework_app"
	FrameworkMarketingSite RepoType = "framework_marketing_site"
)

// All lists every tag in decision order
var All = []RepoType{FrameworkMarketingSite, FrameworkApp, GovernanceFramework, Unknown}

// Parse converts a tag string into a RepoType
func Parse(s string) (RepoType, error) {
	for _, rt := range All {
		if string(rt) == strings.TrimSpace(strings.ToLower(s)) {
			return rt, nil
		}
	}
	return Unknown, fmt.Errorf("unknown repository type %q", s)
}

func (r RepoType) String() string { return string(r) }

// OverlayDir is the reserved governance/policy overlay directory
const OverlayDir = ".repo"

// ResolveOverlay returns dir without surrounding slashes, or OverlayDir when
// dir is empty
func ResolveOverlay(dir string) string {
	if d := strings.Trim(strings.TrimSpace(dir), "/"); d != "" {
		return d
	}
	return OverlayDir
}

// FrameworkPackage is the dependency name that marks a framework project
const FrameworkPackage = "next"

// PackageDescriptor is the package manifest inspected for dependencies
const PackageDescriptor = "package.json"

// FrameworkConfigFiles are the recognized web-framework config files
var FrameworkConfigFiles = []string{"next.config.mjs", "next.config.js", "next.config.ts"}

// Signals are the facts classification is based on
type Signals struct {
	FrameworkConfig     string `json:"framework_config,omitempty" yaml:"framework_config,omitempty"`
	FrameworkDependency bool   `json:"framework_dependency" yaml:"framework_dependency"`
	HasOverlayDir       bool   `json:"has_overlay_dir" yaml:"has_overlay_dir"`
}

// HasFrameworkConfig reports whether a framework config file was found
func (s Signals) HasFrameworkConfig() bool {
	return s.FrameworkConfig != ""
}

// Classify decides the repository type. Rules, first match wins:
// framework without overlay, framework with overlay, overlay only, unknown.
func Classify(s Signals) RepoType {
	if s.HasFrameworkConfig() && s.FrameworkDependency {
		if !s.HasOverlayDir {
			return FrameworkMarketingSite
		}
		return FrameworkApp
	}
	if s.HasOverlayDir {
		return GovernanceFramework
	}
	return Unknown
}

// Inspect collects classification signals from the target. overlayDir names
// the overlay directory; empty means OverlayDir. Read or parse failures leave
// the corresponding signal unset.
func Inspect(fsys targetfs.FS, overlayDir string) Signals {
	var s Signals
	for _, name := range FrameworkConfigFiles {
		if targetfs.Exists(fsys, name) {
			s.FrameworkConfig = name
			break
		}
	}
	if s.HasFrameworkConfig() {
		s.FrameworkDependency = hasDependency(fsys, PackageDescriptor, FrameworkPackage)
	}
	s.HasOverlayDir = targetfs.IsDir(fsys, ResolveOverlay(overlayDir))
	return s
}

// Detect inspects the target and classifies it
func Detect(fsys targetfs.FS, overlayDir string) (RepoType, Signals) {
	s := Inspect(fsys, overlayDir)
	return Classify(s), s
}

type packageDescriptor struct {
	Dependencies map[string]interface{} `json:"dependencies"`
}

func hasDependency(fsys targetfs.FS, descriptor, dep string) bool {
	data, err := fsys.ReadFile(descriptor)
	if err != nil {
		return false
	}
	var pkg packageDescriptor
	if err := json.Unmarshal(data, &pkg); err != nil {
		return false
	}
	_, ok := pkg.Dependencies[dep]
	return ok
}
