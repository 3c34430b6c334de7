/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package report renders resolution diagnostics for the terminal.
package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"bennypowers.dev/gvanim/engine"
)

// Terminal styles for diagnostic output. Lipgloss degrades colors
// automatically based on terminal capabilities.
var (
	styleError = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	styleWarn  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	styleHint  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Reporter writes styled diagnostics to a terminal.
type Reporter struct {
	w     io.Writer
	color bool
}

// New creates a reporter. When color is false, output is plain text.
func New(w io.Writer, color bool) *Reporter {
	return &Reporter{w: w, color: color}
}

// Report writes every diagnostic, one per line, in the order the engine
// accumulated them.
func (r *Reporter) Report(diags []engine.Diagnostic) {
	for _, d := range diags {
		label := r.render(styleWarn, "warning")
		if fatal(d.Kind) {
			label = r.render(styleError, "error")
		}
		fmt.Fprintf(r.w, "%s: %s\n", label, d.String())
	}
	if len(diags) > 0 {
		fmt.Fprintln(r.w, r.render(styleHint, fmt.Sprintf("%d diagnostic(s)", len(diags))))
	}
}

// fatal reports whether this kind always fails its path.
func fatal(kind engine.DiagnosticKind) bool {
	switch kind {
	case engine.DiagUnitMismatch, engine.DiagMalformedExpression, engine.DiagCycle:
		return true
	}
	return false
}

func (r *Reporter) render(style lipgloss.Style, text string) string {
	if !r.color {
		return text
	}
	return style.Render(text)
}
