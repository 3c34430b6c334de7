/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/gvanim/config"
	"bennypowers.dev/gvanim/engine"
)

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
files:
  - tokens/core.json
  - path: tokens/exported.json
    name: exported
themes: tokens/$themes.json
exclude:
  - internal/**
expand:
  typography: true
  shadow: true
resolveReferences: alias
preserveRawValue: true
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	require.Len(t, cfg.Files, 2)
	assert.Equal(t, "tokens/core.json", cfg.Files[0].Path)
	assert.Equal(t, "", cfg.Files[0].Name)
	assert.Equal(t, "tokens/exported.json", cfg.Files[1].Path)
	assert.Equal(t, "exported", cfg.Files[1].Name)

	assert.Equal(t, "tokens/$themes.json", cfg.Themes)
	assert.Equal(t, []string{"internal/**"}, cfg.Exclude)
	assert.True(t, cfg.Expand.Typography)
	assert.False(t, cfg.Expand.Border)
	assert.True(t, cfg.PreserveRawValue)

	assert.Equal(t, []string{"tokens/core.json", "tokens/exported.json"}, cfg.FilePaths())
}

func TestLoad_JSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{
		"files": ["tokens/core.json", {"path": "tokens/x.json", "name": "x"}],
		"strict": true
	}`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Files, 2)
	assert.Equal(t, "x", cfg.Files[1].Name)
	assert.True(t, cfg.Strict)
	// Defaults survive partial documents.
	assert.Equal(t, "math", cfg.ResolveReferences)
}

func TestEngineOptions(t *testing.T) {
	tests := []struct {
		mode     string
		expected engine.ReferenceMode
	}{
		{"math", engine.ReferencesAndMath},
		{"", engine.ReferencesAndMath},
		{"alias", engine.ReferencesOnly},
		{"off", engine.ReferencesOff},
	}

	for _, tt := range tests {
		cfg := config.Default()
		cfg.ResolveReferences = tt.mode
		opts, err := cfg.EngineOptions()
		require.NoError(t, err, tt.mode)
		assert.Equal(t, tt.expected, opts.ResolveReferences)
	}

	cfg := config.Default()
	cfg.ResolveReferences = "sometimes"
	_, err := cfg.EngineOptions()
	assert.Error(t, err)
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
