/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver

import (
	"fmt"
	"strconv"
	"strings"

	"bennypowers.dev/gvanim/token"
)

// Missing records a reference placeholder with no matching merged path.
type Missing struct {
	// Path is the token whose value contains the dangling reference.
	Path string

	// Ref is the referenced path that was not found.
	Ref string
}

// Result holds the outcome of alias resolution.
type Result struct {
	// Values maps each merged path to its value after substitution.
	// Cycle members keep their raw value; dangling placeholders pass
	// through unchanged.
	Values map[string]any

	// Aliased marks paths whose raw value contained references.
	Aliased map[string]bool

	// Cycles lists every reference cycle, sorted members, sorted by first
	// member.
	Cycles [][]string

	// Missing lists dangling references in (path, ref) order.
	Missing []Missing
}

// ResolveAliases substitutes every {token.path} placeholder in the merged
// mapping, leaves first, memoized so each path resolves once. Cycle members
// are left raw; paths outside a cycle are unaffected by it. Resolution is
// iterative with an explicit work stack, so arbitrarily deep reference
// chains cannot overflow the call stack.
func ResolveAliases(m *Merged) *Result {
	graph := BuildGraph(m)
	res := &Result{
		Values:  make(map[string]any, m.Len()),
		Aliased: make(map[string]bool),
		Cycles:  graph.Cycles(),
	}

	cyclic := make(map[string]bool)
	for _, cycle := range res.Cycles {
		for _, member := range cycle {
			cyclic[member] = true
		}
	}

	missingSeen := make(map[Missing]bool)
	r := &aliasPass{
		merged:      m,
		graph:       graph,
		cyclic:      cyclic,
		result:      res,
		missingSeen: missingSeen,
	}
	for _, path := range m.Paths() {
		r.resolve(path)
	}
	return res
}

type aliasPass struct {
	merged      *Merged
	graph       *Graph
	cyclic      map[string]bool
	result      *Result
	missingSeen map[Missing]bool
}

// resolve computes the value for path and memoizes it, resolving pending
// dependencies first via an explicit stack.
func (r *aliasPass) resolve(path string) {
	stack := []string{path}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		if _, done := r.result.Values[cur]; done {
			stack = stack[:len(stack)-1]
			continue
		}

		entry, _ := r.merged.Get(cur)
		deps := r.graph.Dependencies(cur)
		if len(deps) > 0 {
			r.result.Aliased[cur] = true
		}

		if r.cyclic[cur] {
			// Cycle members keep their raw value, so dependents see the
			// original reference text rather than looping forever.
			r.result.Values[cur] = entry.Value
			stack = stack[:len(stack)-1]
			continue
		}

		pending := false
		for _, dep := range deps {
			if _, done := r.result.Values[dep]; done {
				continue
			}
			if _, exists := r.merged.Get(dep); !exists {
				continue
			}
			stack = append(stack, dep)
			pending = true
		}
		if pending {
			continue
		}

		r.result.Values[cur] = r.substitute(cur, entry.Value)
		stack = stack[:len(stack)-1]
	}
}

// substitute replaces placeholders in value with memoized referenced
// values, descending into composite maps and layered slices.
func (r *aliasPass) substitute(path string, value any) any {
	switch v := value.(type) {
	case string:
		return r.substituteString(path, v)
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, sub := range v {
			out[key] = r.substitute(path, sub)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, sub := range v {
			out[i] = r.substitute(path, sub)
		}
		return out
	default:
		return value
	}
}

func (r *aliasPass) substituteString(path, value string) any {
	if !token.HasReference(value) {
		return value
	}

	// A value that is exactly one reference adopts the referenced value
	// whole, preserving its type (composite maps, numbers).
	if token.IsWholeReference(value) {
		ref := token.References(value)[0]
		if resolved, ok := r.lookup(path, ref); ok {
			return resolved
		}
		return value
	}

	return token.RefPattern.ReplaceAllStringFunc(value, func(placeholder string) string {
		ref := strings.TrimSpace(placeholder[1 : len(placeholder)-1])
		resolved, ok := r.lookup(path, ref)
		if !ok {
			return placeholder
		}
		return Stringify(resolved)
	})
}

// lookup fetches the memoized value for ref, recording a missing-reference
// diagnostic when the path does not exist.
func (r *aliasPass) lookup(path, ref string) (any, bool) {
	if _, exists := r.merged.Get(ref); !exists {
		miss := Missing{Path: path, Ref: ref}
		if !r.missingSeen[miss] {
			r.missingSeen[miss] = true
			r.result.Missing = append(r.result.Missing, miss)
		}
		return nil, false
	}
	resolved, ok := r.result.Values[ref]
	return resolved, ok
}

// Stringify renders a resolved value for interpolation into a string.
func Stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
