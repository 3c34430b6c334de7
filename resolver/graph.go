/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver

import (
	"sort"

	"bennypowers.dev/gvanim/token"
)

// Graph is a directed dependency graph over token paths. An edge a → b
// means a's value references b. Traversal state lives here, never on the
// token records, so the merged mapping stays immutable.
type Graph struct {
	nodes        []string
	dependencies map[string][]string
	dependents   map[string][]string
}

// BuildGraph builds the dependency graph for a merged token mapping.
// Edges to paths absent from the mapping are kept; the alias resolver
// reports them as missing references.
func BuildGraph(m *Merged) *Graph {
	g := &Graph{
		nodes:        m.Paths(),
		dependencies: make(map[string][]string),
		dependents:   make(map[string][]string),
	}
	for _, path := range g.nodes {
		entry, _ := m.Get(path)
		refs := token.ValueReferences(entry.Value)
		if len(refs) == 0 {
			continue
		}
		deps := dedupe(refs)
		g.dependencies[path] = deps
		for _, dep := range deps {
			g.dependents[dep] = append(g.dependents[dep], path)
		}
	}
	return g
}

// Dependencies returns the paths the given path references.
func (g *Graph) Dependencies(path string) []string {
	return g.dependencies[path]
}

// Dependents returns the paths that reference the given path.
func (g *Graph) Dependents(path string) []string {
	return g.dependents[path]
}

// Cycles returns every reference cycle in the graph, each as a sorted
// member list, ordered by first member. A self-reference is a one-element
// cycle. Strongly connected components are computed with an iterative
// Tarjan so deep chains cannot exhaust the call stack.
func (g *Graph) Cycles() [][]string {
	index := make(map[string]int, len(g.nodes))
	lowlink := make(map[string]int, len(g.nodes))
	onStack := make(map[string]bool, len(g.nodes))
	var sccStack []string
	var cycles [][]string
	next := 0

	type frame struct {
		node string
		dep  int
	}

	for _, start := range g.nodes {
		if _, visited := index[start]; visited {
			continue
		}
		stack := []frame{{node: start}}
		index[start] = next
		lowlink[start] = next
		next++
		sccStack = append(sccStack, start)
		onStack[start] = true

		for len(stack) > 0 {
			f := &stack[len(stack)-1]
			deps := g.dependencies[f.node]
			if f.dep < len(deps) {
				dep := deps[f.dep]
				f.dep++
				if !g.has(dep) {
					// Missing references cannot form cycles.
					continue
				}
				if _, ok := index[dep]; !ok {
					index[dep] = next
					lowlink[dep] = next
					next++
					sccStack = append(sccStack, dep)
					onStack[dep] = true
					stack = append(stack, frame{node: dep})
				} else if onStack[dep] {
					if index[dep] < lowlink[f.node] {
						lowlink[f.node] = index[dep]
					}
				}
				continue
			}

			node := f.node
			stack = stack[:len(stack)-1]
			if len(stack) > 0 {
				parent := &stack[len(stack)-1]
				if lowlink[node] < lowlink[parent.node] {
					lowlink[parent.node] = lowlink[node]
				}
			}
			if lowlink[node] == index[node] {
				var scc []string
				for {
					top := sccStack[len(sccStack)-1]
					sccStack = sccStack[:len(sccStack)-1]
					onStack[top] = false
					scc = append(scc, top)
					if top == node {
						break
					}
				}
				if len(scc) > 1 || g.selfLoop(node) {
					sort.Strings(scc)
					cycles = append(cycles, scc)
				}
			}
		}
	}

	sort.Slice(cycles, func(i, j int) bool { return cycles[i][0] < cycles[j][0] })
	return cycles
}

func (g *Graph) has(path string) bool {
	_, okDeps := g.dependencies[path]
	if okDeps {
		return true
	}
	i := sort.SearchStrings(g.nodes, path)
	return i < len(g.nodes) && g.nodes[i] == path
}

func (g *Graph) selfLoop(path string) bool {
	for _, dep := range g.dependencies[path] {
		if dep == path {
			return true
		}
	}
	return false
}

// dedupe removes duplicates preserving first occurrence, then sorts for
// deterministic traversal.
func dedupe(refs []string) []string {
	seen := make(map[string]bool, len(refs))
	out := refs[:0]
	for _, r := range refs {
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	sort.Strings(out)
	return out
}
