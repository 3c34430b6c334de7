/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package engine orchestrates the token resolution pipeline: theme
// selection, set merging, alias resolution, arithmetic evaluation,
// color modifiers, composite expansion, and output filtering.
package engine

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"bennypowers.dev/gvanim/colormod"
	"bennypowers.dev/gvanim/expand"
	"bennypowers.dev/gvanim/mathexpr"
	"bennypowers.dev/gvanim/resolver"
	"bennypowers.dev/gvanim/theme"
	"bennypowers.dev/gvanim/token"
)

// Input is one resolution request. The engine never mutates the store; a
// request owns nothing beyond its output.
type Input struct {
	// Store maps set names to token sets.
	Store token.Store

	// Themes are the available theme definitions.
	Themes []theme.Theme

	// Selection chooses the sets to merge, explicitly or via themes.
	Selection theme.Selection

	// Options configures resolution behavior.
	Options Options
}

// ResolvedToken is one entry of the final resolved mapping.
type ResolvedToken struct {
	// Path is the token's dotted path.
	Path string `json:"name"`

	// Type is the token's type tag (inferred for expanded sub-tokens).
	Type token.Type `json:"$type,omitempty"`

	// Value is the fully resolved value.
	Value any `json:"$value"`

	// RawValue is the original unresolved value, retained when the
	// PreserveRawValue option is on.
	RawValue any `json:"rawValue,omitempty"`

	// ResolvedFrom is the set that last defined this token.
	ResolvedFrom string `json:"resolvedFrom,omitempty"`

	// WasAlias is true if the raw value contained references.
	WasAlias bool `json:"wasAlias,omitempty"`

	// Expanded is true for sub-tokens produced by composite expansion.
	Expanded bool `json:"expanded,omitempty"`

	// Description is the token's documentation, if any.
	Description string `json:"$description,omitempty"`
}

// Result is the resolved token map plus accumulated diagnostics.
type Result struct {
	// Tokens are the resolved tokens in lexical path order.
	Tokens []ResolvedToken

	// Diagnostics lists every non-fatal problem in deterministic order.
	Diagnostics []Diagnostic

	byPath map[string]int
}

// Get returns the resolved token at the given path.
func (r *Result) Get(path string) (ResolvedToken, bool) {
	i, ok := r.byPath[path]
	if !ok {
		return ResolvedToken{}, false
	}
	return r.Tokens[i], true
}

// Len returns the number of resolved tokens.
func (r *Result) Len() int {
	return len(r.Tokens)
}

// Resolve runs the full pipeline for one request. In strict mode the
// first fatal condition aborts with an error; otherwise per-path failures
// become diagnostics and unrelated paths resolve normally.
func Resolve(in Input) (*Result, error) {
	res := &Result{byPath: make(map[string]int)}
	opts := in.Options

	selected, problems := theme.Select(in.Themes, in.Selection)
	if err := res.addSelectionProblems(problems, opts.Strict); err != nil {
		return nil, err
	}
	selected, problems = theme.Validate(selected, in.Store)
	if err := res.addSelectionProblems(problems, opts.Strict); err != nil {
		return nil, err
	}

	merged := resolver.Merge(in.Store, selected)

	values := make(map[string]any, merged.Len())
	aliased := make(map[string]bool)
	if opts.ResolveReferences == ReferencesOff {
		for _, path := range merged.Paths() {
			entry, _ := merged.Get(path)
			values[path] = entry.Value
		}
	} else {
		aliases := resolver.ResolveAliases(merged)
		values = aliases.Values
		aliased = aliases.Aliased

		for _, cycle := range aliases.Cycles {
			if opts.Strict {
				return nil, fmt.Errorf("%w: %s", token.ErrCircularReference, strings.Join(cycle, " -> "))
			}
			res.Diagnostics = append(res.Diagnostics, Diagnostic{
				Kind:   DiagCycle,
				Paths:  cycle,
				Detail: "reference cycle: " + strings.Join(cycle, " -> "),
			})
		}

		missing := aliases.Missing
		sort.Slice(missing, func(i, j int) bool {
			if missing[i].Path != missing[j].Path {
				return missing[i].Path < missing[j].Path
			}
			return missing[i].Ref < missing[j].Ref
		})
		for _, m := range missing {
			if opts.Strict {
				return nil, fmt.Errorf("%w: %s references {%s}", token.ErrUnresolvedReference, m.Path, m.Ref)
			}
			res.Diagnostics = append(res.Diagnostics, Diagnostic{
				Kind:   DiagMissingReference,
				Paths:  []string{m.Path},
				Detail: fmt.Sprintf("{%s} not found", m.Ref),
			})
		}
	}

	if opts.ResolveReferences == ReferencesAndMath {
		for _, path := range merged.Paths() {
			entry, _ := merged.Get(path)
			value, errs := evaluateMath(entry.Type, values[path])
			for _, err := range errs {
				if opts.Strict {
					return nil, fmt.Errorf("%s: %w", path, err)
				}
				res.Diagnostics = append(res.Diagnostics, Diagnostic{
					Kind:   mathDiagKind(err),
					Paths:  []string{path},
					Detail: err.Error(),
				})
			}
			values[path] = value
		}
	}

	if err := res.applyModifiers(merged, values, opts); err != nil {
		return nil, err
	}

	for _, path := range merged.Paths() {
		entry, _ := merged.Get(path)
		if !entry.Exportable {
			continue
		}
		if excluded(opts.ExcludeSets, entry.Set, path) {
			continue
		}
		value := values[path]

		if opts.Expand.Enabled(entry.Type) {
			if subs, ok := expand.Expand(path, entry.Type, value); ok {
				for _, sub := range subs {
					res.Tokens = append(res.Tokens, ResolvedToken{
						Path:         sub.Path,
						Type:         sub.Type,
						Value:        sub.Value,
						ResolvedFrom: entry.Set,
						WasAlias:     aliased[path],
						Expanded:     true,
					})
				}
				continue
			}
		}

		rt := ResolvedToken{
			Path:         path,
			Type:         entry.Type,
			Value:        value,
			ResolvedFrom: entry.Set,
			WasAlias:     aliased[path],
			Description:  entry.Description,
		}
		if opts.PreserveRawValue {
			rt.RawValue = entry.Value
		}
		res.Tokens = append(res.Tokens, rt)
	}

	sort.Slice(res.Tokens, func(i, j int) bool { return res.Tokens[i].Path < res.Tokens[j].Path })
	for i := range res.Tokens {
		res.byPath[res.Tokens[i].Path] = i
	}
	return res, nil
}

// addSelectionProblems records unknown set/theme errors, or fails the
// request in strict mode.
func (r *Result) addSelectionProblems(problems []error, strict bool) error {
	for _, p := range problems {
		if strict {
			return p
		}
		r.Diagnostics = append(r.Diagnostics, Diagnostic{
			Kind:   DiagUnknownSet,
			Detail: p.Error(),
		})
	}
	return nil
}

// applyModifiers applies color modifiers declared in token extensions.
func (r *Result) applyModifiers(merged *resolver.Merged, values map[string]any, opts Options) error {
	for _, path := range merged.Paths() {
		entry, _ := merged.Get(path)
		if entry.Type != token.Color || entry.Extensions == nil {
			continue
		}
		mod, present, err := colormod.FromExtensions(entry.Extensions)
		if err != nil {
			if opts.Strict {
				return fmt.Errorf("%s: %w", path, err)
			}
			r.Diagnostics = append(r.Diagnostics, Diagnostic{
				Kind:   DiagMalformedExpression,
				Paths:  []string{path},
				Detail: err.Error(),
			})
			continue
		}
		if !present {
			continue
		}
		value, ok := values[path].(string)
		if !ok || token.HasReference(value) {
			// Unresolved values keep their text; the alias stage already
			// reported why.
			continue
		}
		modified, err := mod.Apply(value)
		if err != nil {
			if opts.Strict {
				return fmt.Errorf("%s: %w", path, err)
			}
			r.Diagnostics = append(r.Diagnostics, Diagnostic{
				Kind:   DiagMalformedExpression,
				Paths:  []string{path},
				Detail: err.Error(),
			})
			continue
		}
		values[path] = modified
	}
	return nil
}

// evaluateMath evaluates arithmetic in a resolved value. Scalar values are
// evaluated when the token type is numeric; composite sub-values when the
// inferred sub-type is numeric. Failed paths keep their substituted text.
func evaluateMath(typ token.Type, value any) (any, []error) {
	switch v := value.(type) {
	case string:
		if !typ.Numeric() || !mathexpr.HasExpression(v) {
			return value, nil
		}
		out, err := mathexpr.Eval(v)
		if err != nil {
			return value, []error{err}
		}
		return out, nil
	case map[string]any:
		if !typ.Composite() {
			return value, nil
		}
		return evaluateCompositeMath(typ, v)
	case []any:
		if !typ.Composite() {
			return value, nil
		}
		var errs []error
		out := make([]any, len(v))
		for i, layer := range v {
			m, ok := layer.(map[string]any)
			if !ok {
				out[i] = layer
				continue
			}
			evaluated, layerErrs := evaluateCompositeMath(typ, m)
			out[i] = evaluated
			errs = append(errs, layerErrs...)
		}
		return out, errs
	}
	return value, nil
}

func evaluateCompositeMath(typ token.Type, value map[string]any) (map[string]any, []error) {
	keys := make([]string, 0, len(value))
	for k := range value {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var errs []error
	out := make(map[string]any, len(value))
	for _, key := range keys {
		out[key] = value[key]
		s, ok := value[key].(string)
		if !ok || !expand.SubType(typ, key).Numeric() || !mathexpr.HasExpression(s) {
			continue
		}
		evaluated, err := mathexpr.Eval(s)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
			continue
		}
		out[key] = evaluated
	}
	return out, errs
}

// mathDiagKind maps an evaluation error to its diagnostic kind.
func mathDiagKind(err error) DiagnosticKind {
	if errors.Is(err, token.ErrUnitMismatch) {
		return DiagUnitMismatch
	}
	return DiagMalformedExpression
}
