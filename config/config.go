/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package config provides configuration loading for the token resolver.
package config

import (
	"encoding/json"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"bennypowers.dev/gvanim/engine"
	"bennypowers.dev/gvanim/expand"
)

// Config represents the resolver configuration.
type Config struct {
	// Files specifies token set files to load (paths or globs).
	Files []FileSpec `yaml:"files" json:"files"`

	// Themes is the path to the themes document.
	Themes string `yaml:"themes" json:"themes"`

	// Exclude drops tokens whose set name or path matches these patterns.
	Exclude []string `yaml:"exclude" json:"exclude"`

	// Expand toggles composite flattening per type.
	Expand ExpandConfig `yaml:"expand" json:"expand"`

	// ResolveReferences selects reference handling: math, alias, or off.
	ResolveReferences string `yaml:"resolveReferences" json:"resolveReferences"`

	// PreserveRawValue retains original values alongside resolved ones.
	PreserveRawValue bool `yaml:"preserveRawValue" json:"preserveRawValue"`

	// Strict aborts resolution on the first fatal condition.
	Strict bool `yaml:"strict" json:"strict"`
}

// ExpandConfig mirrors the per-type expansion toggles.
type ExpandConfig struct {
	Typography  bool `yaml:"typography" json:"typography"`
	Shadow      bool `yaml:"shadow" json:"shadow"`
	Border      bool `yaml:"border" json:"border"`
	Composition bool `yaml:"composition" json:"composition"`
}

// FileSpec represents a token file specification. It can be specified as
// a simple string path or as an object with a set name override.
type FileSpec struct {
	// Path is the file path (supports globs).
	Path string `yaml:"path" json:"path"`

	// Name overrides the derived set name for this file.
	Name string `yaml:"name" json:"name"`
}

// UnmarshalYAML handles both string and object forms for FileSpec.
func (f *FileSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		f.Path = node.Value
		return nil
	}

	type rawFileSpec FileSpec
	return node.Decode((*rawFileSpec)(f))
}

// UnmarshalJSON handles both string and object forms for FileSpec.
func (f *FileSpec) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		f.Path = s
		return nil
	}

	type rawFileSpec FileSpec
	return json.Unmarshal(data, (*rawFileSpec)(f))
}

// Default returns a config with default values.
func Default() *Config {
	return &Config{
		ResolveReferences: "math",
	}
}

// Load reads a config file. YAML and JSON both parse through yaml.v3.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FilePaths returns the list of file paths from all FileSpecs.
func (c *Config) FilePaths() []string {
	paths := make([]string, 0, len(c.Files))
	for _, spec := range c.Files {
		paths = append(paths, spec.Path)
	}
	return paths
}

// EngineOptions converts the config into engine options.
func (c *Config) EngineOptions() (engine.Options, error) {
	mode, err := engine.ParseReferenceMode(strings.TrimSpace(c.ResolveReferences))
	if err != nil {
		return engine.Options{}, err
	}
	return engine.Options{
		Expand: expand.Options{
			Typography:  c.Expand.Typography,
			Shadow:      c.Expand.Shadow,
			Border:      c.Expand.Border,
			Composition: c.Expand.Composition,
		},
		ResolveReferences: mode,
		PreserveRawValue:  c.PreserveRawValue,
		Strict:            c.Strict,
		ExcludeSets:       c.Exclude,
	}, nil
}
