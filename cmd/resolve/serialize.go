/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolve

import (
	"encoding/json"
	"strings"

	"bennypowers.dev/gvanim/engine"
)

// Serialize renders a resolved result as JSON: nested groups following the
// token paths, or a shallow path → entry object when flat is true.
func Serialize(result *engine.Result, flat bool) ([]byte, error) {
	if flat {
		return json.MarshalIndent(buildFlatStructure(result), "", "  ")
	}
	return json.MarshalIndent(buildNestedStructure(result), "", "  ")
}

// buildFlatStructure creates a shallow map keyed by dotted path.
func buildFlatStructure(result *engine.Result) map[string]any {
	out := make(map[string]any, result.Len())
	for _, tok := range result.Tokens {
		out[tok.Path] = serializeToken(tok)
	}
	return out
}

// buildNestedStructure creates a nested map following the token paths.
// When a token's path collides with another token (one path a strict
// prefix of the other), the deeper token keeps its remaining dotted path
// as a literal sibling key instead of being injected into the leaf's
// serialized entry.
func buildNestedStructure(result *engine.Result) map[string]any {
	out := make(map[string]any)
	for _, tok := range result.Tokens {
		current := out
		path := strings.Split(tok.Path, ".")

		placed := true
		for i := 0; i < len(path)-1; i++ {
			segment := path[i]
			child, exists := current[segment]
			if !exists {
				group := make(map[string]any)
				current[segment] = group
				current = group
				continue
			}
			group, ok := child.(map[string]any)
			if !ok || isTokenEntry(group) {
				current[strings.Join(path[i:], ".")] = serializeToken(tok)
				placed = false
				break
			}
			current = group
		}
		if !placed {
			continue
		}

		last := path[len(path)-1]
		if group, ok := current[last].(map[string]any); ok && !isTokenEntry(group) {
			// A group already grew here; keep the token beside it under
			// its full dotted path rather than erasing the group.
			out[tok.Path] = serializeToken(tok)
			continue
		}
		current[last] = serializeToken(tok)
	}
	return out
}

// isTokenEntry distinguishes a serialized token from a path group.
func isTokenEntry(m map[string]any) bool {
	_, ok := m["$value"]
	return ok
}

// serializeToken converts one resolved token to its output map.
func serializeToken(tok engine.ResolvedToken) map[string]any {
	out := map[string]any{
		"$value": tok.Value,
	}
	if tok.Type != "" {
		out["$type"] = string(tok.Type)
	}
	if tok.Description != "" {
		out["$description"] = tok.Description
	}
	if tok.RawValue != nil {
		out["rawValue"] = tok.RawValue
	}
	if tok.ResolvedFrom != "" {
		out["resolvedFrom"] = tok.ResolvedFrom
	}
	if tok.WasAlias {
		out["wasAlias"] = true
	}
	if tok.Expanded {
		out["expanded"] = true
	}
	return out
}
