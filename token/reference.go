/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package token

import (
	"regexp"
	"strings"
)

// RefPattern matches curly brace token references: {token.path}
var RefPattern = regexp.MustCompile(`\{([^{}]+)\}`)

// References extracts all referenced token paths from a string value.
// Surrounding whitespace inside the braces is ignored.
func References(value string) []string {
	matches := RefPattern.FindAllStringSubmatch(value, -1)
	refs := make([]string, 0, len(matches))
	for _, m := range matches {
		if len(m) >= 2 {
			refs = append(refs, strings.TrimSpace(m[1]))
		}
	}
	return refs
}

// HasReference returns true if the string contains a reference placeholder.
func HasReference(value string) bool {
	return RefPattern.MatchString(value)
}

// IsWholeReference returns true if the value is exactly one reference and
// nothing else, in which case substitution preserves the referenced value's
// type instead of stringifying it.
func IsWholeReference(value string) bool {
	m := RefPattern.FindStringSubmatch(value)
	return m != nil && m[0] == strings.TrimSpace(value)
}

// ValueReferences extracts referenced paths from any raw token value,
// descending into composite maps and layered slices.
func ValueReferences(value any) []string {
	var refs []string
	switch v := value.(type) {
	case string:
		refs = append(refs, References(v)...)
	case map[string]any:
		for _, key := range sortedKeys(v) {
			refs = append(refs, ValueReferences(v[key])...)
		}
	case []any:
		for _, item := range v {
			refs = append(refs, ValueReferences(item)...)
		}
	}
	return refs
}
