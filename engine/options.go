/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package engine

import (
	"fmt"

	"bennypowers.dev/gvanim/expand"
)

// ReferenceMode selects how far reference resolution goes.
type ReferenceMode int

const (
	// ReferencesAndMath substitutes aliases and evaluates arithmetic.
	ReferencesAndMath ReferenceMode = iota

	// ReferencesOnly substitutes aliases but leaves arithmetic as literal
	// post-substitution strings.
	ReferencesOnly

	// ReferencesOff leaves raw values untouched.
	ReferencesOff
)

// ParseReferenceMode parses the mode strings accepted in config files and
// flags: "math" (default), "alias", "off".
func ParseReferenceMode(s string) (ReferenceMode, error) {
	switch s {
	case "", "math":
		return ReferencesAndMath, nil
	case "alias":
		return ReferencesOnly, nil
	case "off":
		return ReferencesOff, nil
	}
	return ReferencesAndMath, fmt.Errorf("invalid reference mode %q: expected math, alias, or off", s)
}

// Options configures a resolution request.
type Options struct {
	// Expand toggles composite flattening per type.
	Expand expand.Options

	// ResolveReferences selects alias/arithmetic behavior.
	ResolveReferences ReferenceMode

	// PreserveRawValue retains the original unresolved value on each
	// resolved token.
	PreserveRawValue bool

	// Strict aborts the whole request on the first fatal condition
	// instead of isolating failures per path.
	Strict bool

	// ExcludeSets drops tokens whose set name or path matches any of
	// these doublestar patterns.
	ExcludeSets []string
}
