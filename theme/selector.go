/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package theme

import (
	"fmt"

	"bennypowers.dev/gvanim/token"
)

// SelectedSet is one entry of the computed merge order.
type SelectedSet struct {
	// Name is the token set name.
	Name string

	// Exportable is false for source-only sets, whose tokens feed alias
	// resolution but are dropped from the final output.
	Exportable bool
}

// ActiveTheme selects one theme id within a group. Callers supply active
// themes in group priority order; the first group to mention a set
// establishes its merge position.
type ActiveTheme struct {
	Group string
	ID    string
}

// Selection chooses which sets resolve and in what order. When SetNames is
// non-empty it takes precedence: order is exactly as given and every listed
// set is exportable. Otherwise Active themes are combined.
type Selection struct {
	SetNames []string
	Active   []ActiveTheme
}

// Select computes the ordered merge list from a selection. Unknown theme
// ids are returned as errors wrapping token.ErrUnknownTheme; the caller
// decides whether they are fatal. Set names are not validated here; the
// merger reports names missing from the store.
func Select(themes []Theme, sel Selection) ([]SelectedSet, []error) {
	if len(sel.SetNames) > 0 {
		selected := make([]SelectedSet, 0, len(sel.SetNames))
		seen := make(map[string]bool)
		for _, name := range sel.SetNames {
			if seen[name] {
				continue
			}
			seen[name] = true
			selected = append(selected, SelectedSet{Name: name, Exportable: true})
		}
		return selected, nil
	}

	var problems []error
	var active []*Theme
	for _, at := range sel.Active {
		th, err := Find(themes, at.Group, at.ID)
		if err != nil {
			problems = append(problems, err)
			continue
		}
		active = append(active, th)
	}

	// Order: first appearance across the active themes' own set orderings,
	// themes visited in caller priority order. Status combines via the
	// lattice maximum so an enable in any theme wins.
	var order []string
	status := make(map[string]SetStatus)
	for _, th := range active {
		for _, name := range th.SetOrder {
			if _, seen := status[name]; !seen {
				order = append(order, name)
				status[name] = th.Status(name)
				continue
			}
			status[name] = Combine(status[name], th.Status(name))
		}
	}

	selected := make([]SelectedSet, 0, len(order))
	for _, name := range order {
		switch status[name] {
		case StatusEnabled:
			selected = append(selected, SelectedSet{Name: name, Exportable: true})
		case StatusSource:
			selected = append(selected, SelectedSet{Name: name, Exportable: false})
		}
	}
	return selected, problems
}

// Validate checks that every selected set exists in the store, returning
// the surviving selection and an error per unknown name.
func Validate(selected []SelectedSet, store token.Store) ([]SelectedSet, []error) {
	var problems []error
	valid := make([]SelectedSet, 0, len(selected))
	for _, s := range selected {
		if _, ok := store[s.Name]; !ok {
			problems = append(problems, fmt.Errorf("%w: %s", token.ErrUnknownSet, s.Name))
			continue
		}
		valid = append(valid, s)
	}
	return valid, problems
}
