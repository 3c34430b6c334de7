/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package theme provides theme definitions and token set selection.
package theme

import (
	"fmt"

	"bennypowers.dev/gvanim/token"
)

// SetStatus is a token set's status within a theme. Statuses form a
// lattice (Disabled < Source < Enabled); combining across simultaneously
// active themes takes the maximum, so any explicit enable wins.
type SetStatus int

const (
	// StatusDisabled excludes the set entirely.
	StatusDisabled SetStatus = iota

	// StatusSource includes the set for alias resolution only; its tokens
	// are excluded from the exported result.
	StatusSource

	// StatusEnabled includes the set in resolution and export.
	StatusEnabled
)

// ParseStatus parses a status string as found in theme files.
func ParseStatus(s string) (SetStatus, error) {
	switch s {
	case "disabled":
		return StatusDisabled, nil
	case "source":
		return StatusSource, nil
	case "enabled":
		return StatusEnabled, nil
	}
	return StatusDisabled, fmt.Errorf("invalid set status %q: expected enabled, source, or disabled", s)
}

// String returns the status string as used in theme files.
func (s SetStatus) String() string {
	switch s {
	case StatusSource:
		return "source"
	case StatusEnabled:
		return "enabled"
	}
	return "disabled"
}

// Combine merges two statuses from simultaneously active themes.
func Combine(a, b SetStatus) SetStatus {
	if b > a {
		return b
	}
	return a
}

// Theme is a named selection of token set statuses along one
// classification dimension (brand, mode, density, ...).
type Theme struct {
	// ID uniquely identifies the theme.
	ID string

	// Name is the human-readable theme name.
	Name string

	// Group is the classification dimension this theme belongs to.
	Group string

	// SelectedSets maps set name to its status within this theme.
	SelectedSets map[string]SetStatus

	// SetOrder preserves the order sets were listed in the theme
	// definition; it establishes merge order.
	SetOrder []string
}

// Status returns the status of the named set within this theme.
// Unmentioned sets are disabled.
func (t *Theme) Status(setName string) SetStatus {
	if s, ok := t.SelectedSets[setName]; ok {
		return s
	}
	return StatusDisabled
}

// Find returns the theme with the given id within the given group.
func Find(themes []Theme, group, id string) (*Theme, error) {
	for i := range themes {
		if themes[i].Group == group && themes[i].ID == id {
			return &themes[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s/%s", token.ErrUnknownTheme, group, id)
}
