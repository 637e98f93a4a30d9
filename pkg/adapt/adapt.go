// Package adapt rewrites manifest paths and in-file path references through a
// substitution table.
//
// Substitutions match whole path segments: "docs" rewrites "docs/a.md" but
// not "docsite/a.md". Content is rewritten in a single left-to-right pass,
// so text produced by one substitution is never rewritten by another.
package adapt

import (
	"strings"

	"github.com/fulmenhq/goinject/pkg/repotype"
)

// Substitution maps one path prefix to another
type Substitution struct {
	From string `mapstructure:"from" json:"from" yaml:"from"`
	To   string `mapstructure:"to" json:"to" yaml:"to"`
}

// Table is an ordered list of substitutions. The zero value is the identity.
type Table struct {
	Subs []Substitution
	// Overlay is the overlay directory whose prefix content references may
	// omit; empty means repotype.OverlayDir
	Overlay string
}

// Empty reports whether the table performs no rewriting
func (t Table) Empty() bool {
	return len(t.Subs) == 0
}

func (t Table) marker() string {
	return repotype.ResolveOverlay(t.Overlay) + "/"
}

// BuildSubstitutions returns the table for a repository type. No type has
// built-in substitutions; configured tables are keyed by repo-type tag.
func BuildSubstitutions(rt repotype.RepoType, configured map[string][]Substitution, overlayDir string) Table {
	table := Table{Overlay: repotype.ResolveOverlay(overlayDir)}
	for _, s := range configured[rt.String()] {
		from := trimSlashes(s.From)
		if from == "" {
			continue
		}
		table.Subs = append(table.Subs, Substitution{From: from, To: trimSlashes(s.To)})
	}
	return table
}

func trimSlashes(s string) string {
	return strings.Trim(strings.TrimSpace(s), "/")
}

// AdaptPath applies the first substitution whose From matches a leading run
// of path segments.
func AdaptPath(original string, t Table) string {
	for _, s := range t.Subs {
		if original == s.From {
			return s.To
		}
		if strings.HasPrefix(original, s.From+"/") {
			rest := original[len(s.From)+1:]
			if s.To == "" {
				return rest
			}
			return s.To + "/" + rest
		}
	}
	return original
}

// candidates lists the patterns matched in content: every From in table
// order, then the marker-stripped variants of overlay prefixes
func (t Table) candidates() []Substitution {
	marker := t.marker()
	out := make([]Substitution, 0, len(t.Subs)*2)
	out = append(out, t.Subs...)
	for _, s := range t.Subs {
		if strings.HasPrefix(s.From, marker) {
			stripped := strings.TrimPrefix(s.From, marker)
			if stripped != "" {
				out = append(out, Substitution{From: stripped, To: s.To})
			}
		}
	}
	return out
}

// AdaptContent rewrites path references in content. It is the identity when
// apply is false or the table is empty.
func AdaptContent(content string, t Table, apply bool) string {
	if !apply || t.Empty() || content == "" {
		return content
	}
	cands := t.candidates()

	var b strings.Builder
	b.Grow(len(content))
	for i := 0; i < len(content); {
		if leftBoundary(content, i) {
			if s, ok := matchAt(content, i, cands); ok {
				b.WriteString(s.To)
				i += len(s.From)
				continue
			}
		}
		b.WriteByte(content[i])
		i++
	}
	return b.String()
}

func matchAt(content string, i int, cands []Substitution) (Substitution, bool) {
	for _, s := range cands {
		end := i + len(s.From)
		if end > len(content) || content[i:end] != s.From {
			continue
		}
		if rightBoundary(content, end) {
			return s, true
		}
	}
	return Substitution{}, false
}

func isPathChar(c byte) bool {
	return c >= 'a' && c <= 'z' ||
		c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' ||
		c == '.' || c == '_' || c == '-'
}

func leftBoundary(s string, i int) bool {
	if i == 0 {
		return true
	}
	prev := s[i-1]
	return prev == '/' || !isPathChar(prev)
}

func rightBoundary(s string, end int) bool {
	if end == len(s) {
		return true
	}
	next := s[end]
	if next == '/' || !isPathChar(next) {
		return true
	}
	// sentence-ending period
	return next == '.' && (end+1 == len(s) || !isPathChar(s[end+1]))
}
