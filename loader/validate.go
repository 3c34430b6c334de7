/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package loader

import (
	"sort"
	"strings"

	"bennypowers.dev/gvanim/token"
)

// ValidationError reports a malformed token definition found before
// resolution.
type ValidationError struct {
	// Set is the token set containing the problem.
	Set string
	// Path is the dotted path to the problematic token.
	Path string
	// Message describes what's wrong.
	Message string
	// Suggestion provides an actionable fix.
	Suggestion string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var sb strings.Builder
	if e.Set != "" {
		sb.WriteString(e.Set)
		sb.WriteString(": ")
	}
	if e.Path != "" {
		sb.WriteString(e.Path)
		sb.WriteString(": ")
	}
	sb.WriteString(e.Message)
	if e.Suggestion != "" {
		sb.WriteString(" (")
		sb.WriteString(e.Suggestion)
		sb.WriteString(")")
	}
	return sb.String()
}

// ValidateStore checks every loaded token for problems the resolver would
// otherwise surface late or confusingly: missing values, empty or
// unbalanced reference braces, unstructured composite values. Sets are
// visited in name order, tokens in definition order.
func ValidateStore(store token.Store) []ValidationError {
	names := make([]string, 0, len(store))
	for name := range store {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []ValidationError
	for _, name := range names {
		set := store[name]
		for _, path := range set.Paths() {
			tok, _ := set.Get(path)
			errs = append(errs, validateToken(name, tok)...)
		}
	}
	return errs
}

func validateToken(setName string, tok token.Token) []ValidationError {
	var errs []ValidationError

	if tok.Value == nil {
		errs = append(errs, ValidationError{
			Set:        setName,
			Path:       tok.Path,
			Message:    "token missing $value",
			Suggestion: "add a $value field or remove the token",
		})
		return errs
	}

	for _, s := range stringValues(tok.Value) {
		if strings.Count(s, "{") != strings.Count(s, "}") {
			errs = append(errs, ValidationError{
				Set:        setName,
				Path:       tok.Path,
				Message:    "unbalanced braces in value " + s,
				Suggestion: "references look like {token.path}",
			})
		}
		for _, ref := range token.References(s) {
			if ref == "" {
				errs = append(errs, ValidationError{
					Set:        setName,
					Path:       tok.Path,
					Message:    "empty reference {}",
					Suggestion: "name the referenced token path inside the braces",
				})
			}
		}
	}

	if tok.Type.Composite() {
		switch v := tok.Value.(type) {
		case map[string]any, []any:
			// structured as expected
		case string:
			if !token.HasReference(v) {
				errs = append(errs, ValidationError{
					Set:        setName,
					Path:       tok.Path,
					Message:    "composite token value is not structured",
					Suggestion: "use a sub-property map or a {reference}",
				})
			}
		default:
			errs = append(errs, ValidationError{
				Set:        setName,
				Path:       tok.Path,
				Message:    "composite token value is not structured",
				Suggestion: "use a sub-property map or a {reference}",
			})
		}
	}

	return errs
}

// stringValues collects every string in a raw value, descending into maps
// and slices in deterministic order.
func stringValues(value any) []string {
	var out []string
	switch v := value.(type) {
	case string:
		out = append(out, v)
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			out = append(out, stringValues(v[k])...)
		}
	case []any:
		for _, item := range v {
			out = append(out, stringValues(item)...)
		}
	}
	return out
}
