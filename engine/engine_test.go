/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package engine_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/gvanim/engine"
	"bennypowers.dev/gvanim/expand"
	"bennypowers.dev/gvanim/theme"
	"bennypowers.dev/gvanim/token"
)

func setOf(name string, tokens ...token.Token) *token.Set {
	s := token.NewSet(name)
	for _, tk := range tokens {
		s.Put(tk)
	}
	return s
}

func storeOf(sets ...*token.Set) token.Store {
	store := token.Store{}
	for _, s := range sets {
		store[s.Name] = s
	}
	return store
}

func selectNames(names ...string) theme.Selection {
	return theme.Selection{SetNames: names}
}

func TestResolve_AliasAndMath(t *testing.T) {
	in := engine.Input{
		Store: storeOf(setOf("core",
			token.Token{Path: "base", Type: token.Dimension, Value: "8px"},
			token.Token{Path: "double", Type: token.Dimension, Value: "{base} * 2"},
		)),
		Selection: selectNames("core"),
	}

	res, err := engine.Resolve(in)
	require.NoError(t, err)
	require.Empty(t, res.Diagnostics)

	double, ok := res.Get("double")
	require.True(t, ok)
	assert.Equal(t, "16px", double.Value)
	assert.True(t, double.WasAlias)
	assert.Equal(t, "core", double.ResolvedFrom)

	base, _ := res.Get("base")
	assert.False(t, base.WasAlias)
}

func TestResolve_Deterministic(t *testing.T) {
	// Healthy tokens plus one of every diagnostic-producing shape: the
	// output and the diagnostics must serialize identically across runs.
	in := engine.Input{
		Store: storeOf(
			setOf("core",
				token.Token{Path: "color.red", Type: token.Color, Value: "#f00"},
				token.Token{Path: "space.1", Type: token.Spacing, Value: "4px"},
				token.Token{Path: "space.2", Type: token.Spacing, Value: "{space.1} * 2"},
				token.Token{Path: "loop.a", Type: token.Dimension, Value: "{loop.b}"},
				token.Token{Path: "loop.b", Type: token.Dimension, Value: "{loop.a}"},
				token.Token{Path: "ghost", Type: token.Color, Value: "{color.gone}"},
				token.Token{Path: "bad", Type: token.Dimension, Value: "1px + 2%"},
			),
			setOf("semantic",
				token.Token{Path: "color.danger", Type: token.Color, Value: "{color.red}"},
			),
		),
		Selection: selectNames("core", "semantic", "nope"),
	}

	first, err := engine.Resolve(in)
	require.NoError(t, err)
	second, err := engine.Resolve(in)
	require.NoError(t, err)
	require.NotEmpty(t, first.Diagnostics)

	firstTokens, err := json.Marshal(first.Tokens)
	require.NoError(t, err)
	secondTokens, err := json.Marshal(second.Tokens)
	require.NoError(t, err)
	assert.Equal(t, string(firstTokens), string(secondTokens))

	firstDiags, err := json.Marshal(first.Diagnostics)
	require.NoError(t, err)
	secondDiags, err := json.Marshal(second.Diagnostics)
	require.NoError(t, err)
	assert.Equal(t, string(firstDiags), string(secondDiags))
}

func TestResolve_OverrideOrder(t *testing.T) {
	in := engine.Input{
		Store: storeOf(
			setOf("core", token.Token{Path: "color.bg", Type: token.Color, Value: "#fff"}),
			setOf("dark", token.Token{Path: "color.bg", Type: token.Color, Value: "#000"}),
		),
		Selection: selectNames("core", "dark"),
	}

	res, err := engine.Resolve(in)
	require.NoError(t, err)

	bg, ok := res.Get("color.bg")
	require.True(t, ok)
	assert.Equal(t, "#000", bg.Value)
	assert.Equal(t, "dark", bg.ResolvedFrom)
}

func TestResolve_CycleDiagnostic(t *testing.T) {
	in := engine.Input{
		Store: storeOf(setOf("core",
			token.Token{Path: "a", Type: token.Dimension, Value: "{b}"},
			token.Token{Path: "b", Type: token.Dimension, Value: "{a}"},
			token.Token{Path: "ok", Type: token.Dimension, Value: "4px"},
		)),
		Selection: selectNames("core"),
	}

	res, err := engine.Resolve(in)
	require.NoError(t, err)

	require.Len(t, res.Diagnostics, 1)
	diag := res.Diagnostics[0]
	assert.Equal(t, engine.DiagCycle, diag.Kind)
	assert.Equal(t, []string{"a", "b"}, diag.Paths)

	// Cycle members surface with their raw placeholder text.
	a, _ := res.Get("a")
	assert.Equal(t, "{b}", a.Value)
	ok, _ := res.Get("ok")
	assert.Equal(t, "4px", ok.Value)
}

func TestResolve_CycleStrict(t *testing.T) {
	in := engine.Input{
		Store: storeOf(setOf("core",
			token.Token{Path: "a", Type: token.Dimension, Value: "{b}"},
			token.Token{Path: "b", Type: token.Dimension, Value: "{a}"},
		)),
		Selection: selectNames("core"),
		Options:   engine.Options{Strict: true},
	}

	_, err := engine.Resolve(in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, token.ErrCircularReference))
}

func TestResolve_MissingReference(t *testing.T) {
	in := engine.Input{
		Store: storeOf(setOf("core",
			token.Token{Path: "broken", Type: token.Color, Value: "{color.ghost}"},
		)),
		Selection: selectNames("core"),
	}

	res, err := engine.Resolve(in)
	require.NoError(t, err)

	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, engine.DiagMissingReference, res.Diagnostics[0].Kind)
	assert.Equal(t, []string{"broken"}, res.Diagnostics[0].Paths)

	broken, _ := res.Get("broken")
	assert.Equal(t, "{color.ghost}", broken.Value)
}

func TestResolve_UnitMismatchIsolated(t *testing.T) {
	in := engine.Input{
		Store: storeOf(setOf("core",
			token.Token{Path: "bad", Type: token.Dimension, Value: "8px + 50%"},
			token.Token{Path: "good", Type: token.Dimension, Value: "8px * 2"},
		)),
		Selection: selectNames("core"),
	}

	res, err := engine.Resolve(in)
	require.NoError(t, err)

	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, engine.DiagUnitMismatch, res.Diagnostics[0].Kind)
	assert.Equal(t, []string{"bad"}, res.Diagnostics[0].Paths)

	bad, _ := res.Get("bad")
	assert.Equal(t, "8px + 50%", bad.Value)
	good, _ := res.Get("good")
	assert.Equal(t, "16px", good.Value)
}

func TestResolve_SourceSetsExcludedFromOutput(t *testing.T) {
	themes := []theme.Theme{{
		ID:    "light",
		Group: "mode",
		SelectedSets: map[string]theme.SetStatus{
			"primitives": theme.StatusSource,
			"semantic":   theme.StatusEnabled,
		},
		SetOrder: []string{"primitives", "semantic"},
	}}
	in := engine.Input{
		Store: storeOf(
			setOf("primitives", token.Token{Path: "palette.blue", Type: token.Color, Value: "#36c"}),
			setOf("semantic", token.Token{Path: "color.link", Type: token.Color, Value: "{palette.blue}"}),
		),
		Themes:    themes,
		Selection: theme.Selection{Active: []theme.ActiveTheme{{Group: "mode", ID: "light"}}},
	}

	res, err := engine.Resolve(in)
	require.NoError(t, err)
	require.Empty(t, res.Diagnostics)

	// Source tokens feed resolution but never reach the output.
	_, ok := res.Get("palette.blue")
	assert.False(t, ok)
	link, ok := res.Get("color.link")
	require.True(t, ok)
	assert.Equal(t, "#36c", link.Value)
	assert.Equal(t, 1, res.Len())
}

func TestResolve_UnknownSetDiagnostic(t *testing.T) {
	in := engine.Input{
		Store:     storeOf(setOf("core", token.Token{Path: "a", Value: "1"})),
		Selection: selectNames("core", "nope"),
	}

	res, err := engine.Resolve(in)
	require.NoError(t, err)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, engine.DiagUnknownSet, res.Diagnostics[0].Kind)
	assert.Equal(t, 1, res.Len())

	in.Options.Strict = true
	_, err = engine.Resolve(in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, token.ErrUnknownSet))
}

func TestResolve_TypographyExpansion(t *testing.T) {
	in := engine.Input{
		Store: storeOf(setOf("core",
			token.Token{Path: "scale.lg", Type: token.FontSizes, Value: "24px"},
			token.Token{Path: "heading", Type: token.Typography, Value: map[string]any{
				"fontFamily": "Inter",
				"fontSize":   "{scale.lg}",
			}},
		)),
		Selection: selectNames("core"),
		Options:   engine.Options{Expand: expandAll()},
	}

	res, err := engine.Resolve(in)
	require.NoError(t, err)

	// The composite itself is replaced by its sub-tokens.
	_, ok := res.Get("heading")
	assert.False(t, ok)

	size, ok := res.Get("heading.fontSize")
	require.True(t, ok)
	assert.Equal(t, "24px", size.Value)
	assert.Equal(t, token.FontSizes, size.Type)
	assert.True(t, size.Expanded)
	assert.True(t, size.WasAlias)

	family, ok := res.Get("heading.fontFamily")
	require.True(t, ok)
	assert.Equal(t, "Inter", family.Value)
	assert.Equal(t, token.FontFamilies, family.Type)
}

func TestResolve_ReferenceModes(t *testing.T) {
	store := storeOf(setOf("core",
		token.Token{Path: "base", Type: token.Dimension, Value: "8px"},
		token.Token{Path: "double", Type: token.Dimension, Value: "{base} * 2"},
	))

	t.Run("off keeps raw values", func(t *testing.T) {
		res, err := engine.Resolve(engine.Input{
			Store:     store,
			Selection: selectNames("core"),
			Options:   engine.Options{ResolveReferences: engine.ReferencesOff},
		})
		require.NoError(t, err)
		double, _ := res.Get("double")
		assert.Equal(t, "{base} * 2", double.Value)
	})

	t.Run("alias only skips math", func(t *testing.T) {
		res, err := engine.Resolve(engine.Input{
			Store:     store,
			Selection: selectNames("core"),
			Options:   engine.Options{ResolveReferences: engine.ReferencesOnly},
		})
		require.NoError(t, err)
		double, _ := res.Get("double")
		assert.Equal(t, "8px * 2", double.Value)
	})
}

func TestResolve_ExcludePatterns(t *testing.T) {
	in := engine.Input{
		Store: storeOf(setOf("core",
			token.Token{Path: "color.bg", Type: token.Color, Value: "#fff"},
			token.Token{Path: "internal.scratch", Type: token.Number, Value: "1"},
		)),
		Selection: selectNames("core"),
		Options:   engine.Options{ExcludeSets: []string{"internal.*"}},
	}

	res, err := engine.Resolve(in)
	require.NoError(t, err)

	_, ok := res.Get("internal.scratch")
	assert.False(t, ok)
	_, ok = res.Get("color.bg")
	assert.True(t, ok)
}

func TestResolve_PreserveRawValue(t *testing.T) {
	in := engine.Input{
		Store: storeOf(setOf("core",
			token.Token{Path: "base", Type: token.Dimension, Value: "8px"},
			token.Token{Path: "double", Type: token.Dimension, Value: "{base} * 2"},
		)),
		Selection: selectNames("core"),
		Options:   engine.Options{PreserveRawValue: true},
	}

	res, err := engine.Resolve(in)
	require.NoError(t, err)

	double, _ := res.Get("double")
	assert.Equal(t, "16px", double.Value)
	assert.Equal(t, "{base} * 2", double.RawValue)
}

func TestResolve_ColorModifier(t *testing.T) {
	in := engine.Input{
		Store: storeOf(setOf("core",
			token.Token{Path: "brand", Type: token.Color, Value: "#ff0000"},
			token.Token{
				Path:  "brand.faded",
				Type:  token.Color,
				Value: "{brand}",
				Extensions: map[string]any{
					"studio.tokens": map[string]any{
						"modify": map[string]any{"type": "alpha", "value": 0.5},
					},
				},
			},
		)),
		Selection: selectNames("core"),
	}

	res, err := engine.Resolve(in)
	require.NoError(t, err)
	require.Empty(t, res.Diagnostics)

	faded, ok := res.Get("brand.faded")
	require.True(t, ok)
	assert.Equal(t, "#ff000080", faded.Value)
}

func expandAll() expand.Options {
	return expand.Options{Typography: true, Shadow: true, Border: true, Composition: true}
}
