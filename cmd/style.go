/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/fulmenhq/goinject/pkg/inject"
)

// outcomePrinter streams outcome lines as they are recorded
type outcomePrinter struct {
	w                                 io.Writer
	ok, skip, fail, warn, adapt, info lipgloss.Style
}

func newOutcomePrinter(w io.Writer, color bool) *outcomePrinter {
	r := lipgloss.NewRenderer(w)
	p := &outcomePrinter{
		w:     w,
		ok:    r.NewStyle(),
		skip:  r.NewStyle(),
		fail:  r.NewStyle(),
		warn:  r.NewStyle(),
		adapt: r.NewStyle(),
		info:  r.NewStyle(),
	}
	if color {
		p.ok = p.ok.Foreground(lipgloss.Color("2")).Bold(true)
		p.skip = p.skip.Foreground(lipgloss.Color("8"))
		p.fail = p.fail.Foreground(lipgloss.Color("1")).Bold(true)
		p.warn = p.warn.Foreground(lipgloss.Color("3"))
		p.adapt = p.adapt.Foreground(lipgloss.Color("6"))
		p.info = p.info.Foreground(lipgloss.Color("4"))
	}
	return p
}

func (p *outcomePrinter) Info(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(p.w, "%s %s\n", p.info.Render("[INFO]"), fmt.Sprintf(format, args...))
}

// Print writes the line for one outcome
func (p *outcomePrinter) Print(o inject.Outcome) {
	if o.AdaptedFrom != "" && o.Kind != inject.KindWarning {
		_, _ = fmt.Fprintf(p.w, "%s %s -> %s\n", p.adapt.Render("[ADAPT]"), o.AdaptedFrom, o.Path)
	}
	switch o.Kind {
	case inject.KindCreated:
		suffix := ""
		if o.Updated {
			suffix = " (updated)"
		}
		_, _ = fmt.Fprintf(p.w, "%s %s%s\n", p.ok.Render("[OK]"), o.Path, suffix)
	case inject.KindSkipped:
		_, _ = fmt.Fprintf(p.w, "%s %s (%s)\n", p.skip.Render("[SKIP]"), o.Path, o.Reason)
	case inject.KindError:
		_, _ = fmt.Fprintf(p.w, "%s %s: %s\n", p.fail.Render("[ERROR]"), o.Path, o.Message)
	case inject.KindWarning:
		_, _ = fmt.Fprintf(p.w, "%s %s\n", p.warn.Render("[WARN]"), o.Message)
	}
}
