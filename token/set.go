/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package token

// Set is a named, ordered collection of tokens. Paths are unique within a
// set; insertion order is preserved for deterministic merging.
type Set struct {
	// Name is the set's identifier (e.g., "core", "semantic/light").
	Name string

	tokens map[string]Token
	order  []string
}

// NewSet creates a new empty token set.
func NewSet(name string) *Set {
	return &Set{
		Name:   name,
		tokens: make(map[string]Token),
	}
}

// Put adds or replaces the token at its path. First insertion fixes the
// path's position in the set order.
func (s *Set) Put(tok Token) {
	if _, exists := s.tokens[tok.Path]; !exists {
		s.order = append(s.order, tok.Path)
	}
	s.tokens[tok.Path] = tok
}

// Get returns the token at the given path.
func (s *Set) Get(path string) (Token, bool) {
	tok, ok := s.tokens[path]
	return tok, ok
}

// Paths returns all token paths in insertion order.
func (s *Set) Paths() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of tokens in the set.
func (s *Set) Len() int {
	return len(s.tokens)
}

// Store maps set names to token sets. It is the engine's input; the engine
// never mutates it.
type Store map[string]*Set
