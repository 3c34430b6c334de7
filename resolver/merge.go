/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package resolver provides token set merging and reference resolution.
package resolver

import (
	"sort"

	"bennypowers.dev/gvanim/theme"
	"bennypowers.dev/gvanim/token"
)

// Entry is a merged token with its provenance.
type Entry struct {
	token.Token

	// Set is the name of the set that last defined this path.
	Set string

	// Exportable is true if any defining set is exportable. A path owned
	// by a source-only override still exports when an exportable set also
	// defines it.
	Exportable bool
}

// Merged is the result of folding an ordered set list into one mapping.
type Merged struct {
	entries map[string]Entry
	paths   []string
}

// Merge folds the selected sets, in order, into a single token mapping.
// Later sets override earlier ones per path; the token record is replaced
// whole, never field-merged. The input store is not mutated.
func Merge(store token.Store, selected []theme.SelectedSet) *Merged {
	m := &Merged{entries: make(map[string]Entry)}
	for _, sel := range selected {
		set, ok := store[sel.Name]
		if !ok {
			continue
		}
		for _, path := range set.Paths() {
			tok, _ := set.Get(path)
			entry := Entry{Token: tok, Set: sel.Name, Exportable: sel.Exportable}
			if prev, exists := m.entries[path]; exists {
				entry.Exportable = entry.Exportable || prev.Exportable
			}
			m.entries[path] = entry
		}
	}
	m.paths = make([]string, 0, len(m.entries))
	for path := range m.entries {
		m.paths = append(m.paths, path)
	}
	sort.Strings(m.paths)
	return m
}

// Get returns the merged entry for a path.
func (m *Merged) Get(path string) (Entry, bool) {
	e, ok := m.entries[path]
	return e, ok
}

// Paths returns all merged paths in lexical order.
func (m *Merged) Paths() []string {
	return m.paths
}

// Len returns the number of merged entries.
func (m *Merged) Len() int {
	return len(m.entries)
}
