/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package loader reads token set and theme files into engine input.
// Supported formats: JSON, JSONC, and YAML. Parsing goes through yaml.v3
// nodes in all cases (JSON is a YAML subset) so that definition order is
// preserved for deterministic merging.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"bennypowers.dev/gvanim/internal/logger"
	"bennypowers.dev/gvanim/token"
)

// Source names one glob pattern of token set files. Name overrides the
// derived set name when the pattern matches exactly one file.
type Source struct {
	Pattern string
	Name    string
}

// LoadSets loads every file matching the given glob patterns, one token
// set per file. Set names are the slash-separated file paths without
// extension, so "tokens/semantic/light.json" becomes
// "tokens/semantic/light".
func LoadSets(patterns []string) (token.Store, error) {
	sources := make([]Source, len(patterns))
	for i, p := range patterns {
		sources[i] = Source{Pattern: p}
	}
	return LoadSources(sources)
}

// LoadSources loads token sets from named sources into one store.
func LoadSources(sources []Source) (token.Store, error) {
	store := make(token.Store)
	seen := make(map[string]bool)
	for _, src := range sources {
		matches, err := doublestar.FilepathGlob(src.Pattern)
		if err != nil {
			return nil, fmt.Errorf("bad glob %q: %w", src.Pattern, err)
		}
		if len(matches) == 0 {
			logger.Warn("no files match %q", src.Pattern)
		}
		sort.Strings(matches)
		for _, file := range matches {
			if seen[file] {
				continue
			}
			seen[file] = true

			name := SetName(file)
			if src.Name != "" && len(matches) == 1 {
				name = src.Name
			}

			data, err := os.ReadFile(file)
			if err != nil {
				return nil, err
			}
			set, err := ParseSet(name, data)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", file, err)
			}
			store[set.Name] = set
		}
	}
	return store, nil
}

// SetName derives a set name from a file path: slashed, extension
// stripped.
func SetName(file string) string {
	name := filepath.ToSlash(file)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	return name
}

// ParseSet parses one token set document. Nested groups flatten into
// dotted paths; a mapping with a $value (or legacy value) key is a token.
// A $type on a group is inherited by the tokens beneath it.
func ParseSet(name string, data []byte) (*token.Set, error) {
	root, err := parseDocument(data)
	if err != nil {
		return nil, err
	}
	set := token.NewSet(name)
	if err := walkGroup(set, nil, root, ""); err != nil {
		return nil, err
	}
	return set, nil
}

// parseDocument decodes file bytes to an ordered yaml mapping node. JSONC
// comments and trailing commas are stripped first; plain JSON and YAML
// pass through jsonc untouched only when they look like JSON.
func parseDocument(data []byte) (*yaml.Node, error) {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		data = jsonc.ToJSON(data)
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, fmt.Errorf("empty document")
	}
	return doc.Content[0], nil
}

func walkGroup(set *token.Set, path []string, node *yaml.Node, inheritedType string) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("%s: expected a mapping", strings.Join(path, "."))
	}

	if valueNode := mapValue(node, "$value", "value"); valueNode != nil {
		return putToken(set, path, node, valueNode, inheritedType)
	}

	groupType := inheritedType
	if t := mapValue(node, "$type", "type"); t != nil {
		groupType = t.Value
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		if strings.HasPrefix(key, "$") {
			continue
		}
		child := node.Content[i+1]
		if err := walkGroup(set, append(path, key), child, groupType); err != nil {
			return err
		}
	}
	return nil
}

func putToken(set *token.Set, path []string, node, valueNode *yaml.Node, inheritedType string) error {
	if len(path) == 0 {
		return fmt.Errorf("token at document root has no name")
	}

	var value any
	if err := valueNode.Decode(&value); err != nil {
		return fmt.Errorf("%s: %w", strings.Join(path, "."), err)
	}

	tok := token.Token{
		Path:  strings.Join(path, "."),
		Type:  token.Type(inheritedType),
		Value: value,
	}
	if t := mapValue(node, "$type", "type"); t != nil {
		tok.Type = token.Type(t.Value)
	}
	if d := mapValue(node, "$description", "description"); d != nil {
		tok.Description = d.Value
	}
	if e := mapValue(node, "$extensions"); e != nil {
		var ext map[string]any
		if err := e.Decode(&ext); err != nil {
			return fmt.Errorf("%s: $extensions: %w", tok.Path, err)
		}
		tok.Extensions = ext
	}

	set.Put(tok)
	return nil
}

// mapValue returns the value node for the first of the given keys present
// in a mapping node.
func mapValue(node *yaml.Node, keys ...string) *yaml.Node {
	if node.Kind != yaml.MappingNode {
		return nil
	}
	for _, key := range keys {
		for i := 0; i+1 < len(node.Content); i += 2 {
			if node.Content[i].Value == key {
				return node.Content[i+1]
			}
		}
	}
	return nil
}
