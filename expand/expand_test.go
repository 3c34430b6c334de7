/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package expand_test

import (
	"reflect"
	"testing"

	"bennypowers.dev/gvanim/expand"
	"bennypowers.dev/gvanim/token"
)

func TestOptions_Enabled(t *testing.T) {
	opts := expand.Options{Typography: true, Shadow: true}
	if !opts.Enabled(token.Typography) || !opts.Enabled(token.BoxShadow) {
		t.Error("typography and shadow should be enabled")
	}
	if opts.Enabled(token.Border) || opts.Enabled(token.Composition) {
		t.Error("border and composition should be disabled")
	}
	if opts.Enabled(token.Color) {
		t.Error("scalar types never expand")
	}
}

func TestExpand_Typography(t *testing.T) {
	subs, ok := expand.Expand("heading", token.Typography, map[string]any{
		"fontFamily": "Foo",
		"fontSize":   "16px",
	})
	if !ok {
		t.Fatal("expected expansion")
	}

	expected := []expand.Sub{
		{Path: "heading.fontFamily", Type: token.FontFamilies, Value: "Foo"},
		{Path: "heading.fontSize", Type: token.FontSizes, Value: "16px"},
	}
	if !reflect.DeepEqual(subs, expected) {
		t.Errorf("Expand() = %v, want %v", subs, expected)
	}
}

func TestExpand_LayeredShadows(t *testing.T) {
	subs, ok := expand.Expand("elevation.2", token.BoxShadow, []any{
		map[string]any{"x": "0", "y": "1px", "blur": "2px", "color": "#0003"},
		map[string]any{"x": "0", "y": "4px", "blur": "8px", "color": "#0001"},
	})
	if !ok {
		t.Fatal("expected expansion")
	}

	// Layers index deterministically in original order.
	byPath := map[string]expand.Sub{}
	for _, sub := range subs {
		byPath[sub.Path] = sub
	}
	if byPath["elevation.2.0.y"].Value != "1px" {
		t.Errorf("layer 0 y = %v, want 1px", byPath["elevation.2.0.y"].Value)
	}
	if byPath["elevation.2.1.blur"].Value != "8px" {
		t.Errorf("layer 1 blur = %v, want 8px", byPath["elevation.2.1.blur"].Value)
	}
	if byPath["elevation.2.0.color"].Type != token.Color {
		t.Errorf("shadow color type = %v, want color", byPath["elevation.2.0.color"].Type)
	}
	if byPath["elevation.2.0.blur"].Type != token.Dimension {
		t.Errorf("shadow blur type = %v, want dimension", byPath["elevation.2.0.blur"].Type)
	}
}

func TestExpand_UnstructuredValueDoesNotExpand(t *testing.T) {
	if _, ok := expand.Expand("heading", token.Typography, "{type.base}"); ok {
		t.Error("unresolved string should not expand")
	}
	if _, ok := expand.Expand("shadow", token.BoxShadow, []any{"oops"}); ok {
		t.Error("non-map layer should not expand")
	}
}

func TestSubType(t *testing.T) {
	tests := []struct {
		composite token.Type
		sub       string
		expected  token.Type
	}{
		{token.Typography, "fontSize", token.FontSizes},
		{token.Typography, "lineHeight", token.LineHeights},
		{token.Typography, "unknownProp", token.Other},
		{token.Border, "width", token.BorderWidth},
		{token.Border, "color", token.Color},
		{token.Border, "style", token.Text},
		{token.Composition, "gap", token.Dimension},
		{token.Composition, "fill", token.Color},
		{token.Composition, "opacity", token.Opacity},
	}

	for _, tt := range tests {
		t.Run(string(tt.composite)+"."+tt.sub, func(t *testing.T) {
			if got := expand.SubType(tt.composite, tt.sub); got != tt.expected {
				t.Errorf("SubType(%s, %s) = %v, want %v", tt.composite, tt.sub, got, tt.expected)
			}
		})
	}
}
