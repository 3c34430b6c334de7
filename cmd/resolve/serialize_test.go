/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolve_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/gvanim/cmd/resolve"
	"bennypowers.dev/gvanim/engine"
	"bennypowers.dev/gvanim/token"
)

func serializeResult(t *testing.T, tokens []engine.ResolvedToken, flat bool) map[string]any {
	t.Helper()
	out, err := resolve.Serialize(&engine.Result{Tokens: tokens}, flat)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	return decoded
}

func TestSerialize_Nested(t *testing.T) {
	decoded := serializeResult(t, []engine.ResolvedToken{
		{Path: "color.bg", Type: token.Color, Value: "#fff"},
		{Path: "color.fg", Type: token.Color, Value: "#000"},
	}, false)

	color, ok := decoded["color"].(map[string]any)
	require.True(t, ok)
	bg, ok := color["bg"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "#fff", bg["$value"])
	assert.Equal(t, "color", bg["$type"])
}

func TestSerialize_Flat(t *testing.T) {
	decoded := serializeResult(t, []engine.ResolvedToken{
		{Path: "color.bg", Type: token.Color, Value: "#fff"},
	}, true)

	bg, ok := decoded["color.bg"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "#fff", bg["$value"])
}

func TestSerialize_NestedPrefixCollision(t *testing.T) {
	// "a" is a token and also a path prefix of "a.b": the leaf keeps its
	// entry intact and the deeper token falls back to a dotted sibling key.
	decoded := serializeResult(t, []engine.ResolvedToken{
		{Path: "a", Type: token.Dimension, Value: "4px"},
		{Path: "a.b", Type: token.Dimension, Value: "8px"},
	}, false)

	a, ok := decoded["a"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "4px", a["$value"])
	_, corrupted := a["b"]
	assert.False(t, corrupted, "leaf entry must not grow group children")

	ab, ok := decoded["a.b"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "8px", ab["$value"])
}

func TestSerialize_NestedPrefixCollisionBelowRoot(t *testing.T) {
	decoded := serializeResult(t, []engine.ResolvedToken{
		{Path: "x.a", Type: token.Dimension, Value: "1px"},
		{Path: "x.a.b", Type: token.Dimension, Value: "2px"},
		{Path: "x.c", Type: token.Dimension, Value: "3px"},
	}, false)

	x, ok := decoded["x"].(map[string]any)
	require.True(t, ok)

	xa, ok := x["a"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "1px", xa["$value"])
	_, corrupted := xa["b"]
	assert.False(t, corrupted)

	// The fallback key lands beside the colliding leaf, inside its group.
	xab, ok := x["a.b"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "2px", xab["$value"])

	xc, ok := x["c"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "3px", xc["$value"])
}
