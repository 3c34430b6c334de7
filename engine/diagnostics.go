/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package engine

import "strings"

// DiagnosticKind classifies a resolution problem.
type DiagnosticKind string

// Diagnostic kinds.
const (
	DiagCycle               DiagnosticKind = "cycle"
	DiagMissingReference    DiagnosticKind = "missing-reference"
	DiagUnitMismatch        DiagnosticKind = "unit-mismatch"
	DiagUnknownSet          DiagnosticKind = "unknown-set"
	DiagMalformedExpression DiagnosticKind = "malformed-expression"
)

// Diagnostic is one accumulated resolution problem. Non-fatal conditions
// are returned alongside the partial result; strict mode turns the first
// fatal condition into a request error instead.
type Diagnostic struct {
	// Kind classifies the problem.
	Kind DiagnosticKind `json:"kind"`

	// Paths lists the token paths involved (all members for a cycle).
	Paths []string `json:"paths,omitempty"`

	// Detail is a human-readable description.
	Detail string `json:"detail"`
}

// String renders the diagnostic for terminal output.
func (d Diagnostic) String() string {
	var sb strings.Builder
	sb.WriteString(string(d.Kind))
	if len(d.Paths) > 0 {
		sb.WriteString(" [")
		sb.WriteString(strings.Join(d.Paths, ", "))
		sb.WriteString("]")
	}
	if d.Detail != "" {
		sb.WriteString(": ")
		sb.WriteString(d.Detail)
	}
	return sb.String()
}
