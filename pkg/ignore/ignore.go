// Package ignore matches manifest paths against gitignore-style patterns
// declared in a target's .goinjectignore file.
package ignore

import (
	"strings"

	gitignore "github.com/go-git/go-git/v5/plumbing/format/gitignore"

	"github.com/fulmenhq/goinject/pkg/targetfs"
)

// FileName is the ignore file read from the target root
const FileName = ".goinjectignore"

// Matcher provides gitignore-based path filtering
type Matcher struct {
	matcher  gitignore.Matcher
	patterns int
}

// NewMatcher builds a matcher from the target's .goinjectignore. A missing
// or unreadable file yields a matcher that ignores nothing.
func NewMatcher(fsys targetfs.FS) *Matcher {
	var lines []string
	if data, err := fsys.ReadFile(FileName); err == nil {
		lines = parseLines(string(data))
	}
	return FromPatterns(lines)
}

// FromPatterns builds a matcher from raw gitignore pattern lines
func FromPatterns(lines []string) *Matcher {
	patterns := make([]gitignore.Pattern, 0, len(lines))
	for _, line := range lines {
		patterns = append(patterns, gitignore.ParsePattern(line, nil))
	}
	return &Matcher{
		matcher:  gitignore.NewMatcher(patterns),
		patterns: len(patterns),
	}
}

func parseLines(content string) []string {
	var patterns []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	return patterns
}

// Len returns the number of loaded patterns
func (m *Matcher) Len() int {
	if m == nil {
		return 0
	}
	return m.patterns
}

// IsIgnored checks a slash-separated path relative to the target root
func (m *Matcher) IsIgnored(path string) bool {
	if m.Len() == 0 {
		return false
	}
	parts := splitPath(path)
	if len(parts) == 0 {
		return false
	}
	return m.matcher.Match(parts, false)
}

// splitPath converts a slash-separated path into components for go-git matching
func splitPath(path string) []string {
	if path == "" || path == "." {
		return []string{}
	}

	path = strings.TrimPrefix(path, "/")
	parts := strings.Split(path, "/")

	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" && part != "." {
			result = append(result, part)
		}
	}

	return result
}
