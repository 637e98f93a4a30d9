// Package plan flattens a manifest into the ordered, deduplicated sequence of
// files to inject.
package plan

import (
	"path"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/fulmenhq/goinject/pkg/manifest"
)

// Priority lists the tiered categories in injection order. Categories not
// listed follow in manifest order.
var Priority = []string{
	"policy_governance",
	"root_entry_points",
	"agent_framework",
	"task_management",
	"templates_schemas",
	"automation_scripts",
	"shell_scripts",
	"context_files",
	"folder_guides",
	"cicd_integration",
	"supporting_documentation",
}

// PlannedFile is one file scheduled for injection
type PlannedFile struct {
	// Path is the normalized manifest path
	Path     string
	Category string
	Record   manifest.FileRecord
}

// Content returns the record content
func (p PlannedFile) Content() string {
	return p.Record.ContentString()
}

// Normalize converts a manifest path to slash form without leading
// separators. It does not check containment.
func Normalize(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = strings.TrimLeft(p, "/")
	if p == "" {
		return ""
	}
	return path.Clean(p)
}

// Tier returns the priority position of a category, or -1 when untiered
func Tier(category string) int {
	for i, name := range Priority {
		if name == category {
			return i
		}
	}
	return -1
}

// Order returns category names in injection order
func Order(m *manifest.Manifest) []string {
	declared := make(map[string]bool, len(m.Categories))
	for _, c := range m.Categories {
		declared[c.Name] = true
	}

	order := make([]string, 0, len(m.Categories))
	for _, name := range Priority {
		if declared[name] {
			order = append(order, name)
		}
	}
	for _, name := range m.CategoryNames() {
		if Tier(name) < 0 {
			order = append(order, name)
		}
	}
	return order
}

// Build returns the files to inject. A path declared more than once keeps its
// first occurrence in injection order; records without content are dropped.
func Build(m *manifest.Manifest) []PlannedFile {
	var files []PlannedFile
	seen := make(map[string]bool)

	for _, name := range Order(m) {
		cat, _ := m.Category(name)
		for _, rec := range cat.Files {
			if !rec.HasContent() {
				continue
			}
			p := Normalize(rec.Path)
			if seen[p] {
				continue
			}
			seen[p] = true
			files = append(files, PlannedFile{Path: p, Category: name, Record: rec})
		}
	}
	return files
}

var titleCaser = cases.Title(language.English)

// DisplayName renders a category name for humans, e.g. "Policy Governance"
func DisplayName(category string) string {
	return titleCaser.String(strings.ReplaceAll(category, "_", " "))
}
