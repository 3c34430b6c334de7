/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package expand flattens composite tokens (typography, shadow, border,
// composition) into individually named scalar sub-tokens.
package expand

import (
	"sort"
	"strconv"

	"bennypowers.dev/gvanim/token"
)

// Options toggles expansion per composite type. All default off; disabled
// types keep their single structured entry.
type Options struct {
	Typography  bool
	Shadow      bool
	Border      bool
	Composition bool
}

// Enabled reports whether tokens of the given type expand under opts.
func (o Options) Enabled(t token.Type) bool {
	switch t {
	case token.Typography:
		return o.Typography
	case token.BoxShadow:
		return o.Shadow
	case token.Border:
		return o.Border
	case token.Composition:
		return o.Composition
	}
	return false
}

// Sub is one flattened sub-token produced by expansion.
type Sub struct {
	// Path is the full sub-token path: <original>.<sub> or, for layered
	// values, <original>.<layer>.<sub>.
	Path string

	// Type is the inferred scalar type of the sub-property.
	Type token.Type

	// Value is the sub-property's resolved scalar value.
	Value any
}

// Expand flattens a resolved composite value into sub-tokens. It returns
// nil (and false) when the value is not structured; an unresolved alias
// string stays a single entry. Layered shadow and border values expand
// with a zero-based layer index preserving original order.
func Expand(path string, typ token.Type, value any) ([]Sub, bool) {
	switch v := value.(type) {
	case map[string]any:
		return expandLayer(path, typ, v), true
	case []any:
		var subs []Sub
		for i, layer := range v {
			m, ok := layer.(map[string]any)
			if !ok {
				return nil, false
			}
			subs = append(subs, expandLayer(path+"."+strconv.Itoa(i), typ, m)...)
		}
		return subs, true
	}
	return nil, false
}

func expandLayer(prefix string, typ token.Type, value map[string]any) []Sub {
	keys := make([]string, 0, len(value))
	for k := range value {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	subs := make([]Sub, 0, len(keys))
	for _, key := range keys {
		subs = append(subs, Sub{
			Path:  prefix + "." + key,
			Type:  SubType(typ, key),
			Value: value[key],
		})
	}
	return subs
}

// SubType infers the scalar type of a composite sub-property.
func SubType(composite token.Type, sub string) token.Type {
	switch composite {
	case token.Typography:
		switch sub {
		case "fontFamily", "fontFamilies":
			return token.FontFamilies
		case "fontWeight", "fontWeights":
			return token.FontWeights
		case "fontSize", "fontSizes":
			return token.FontSizes
		case "lineHeight", "lineHeights":
			return token.LineHeights
		case "letterSpacing":
			return token.LetterSpacing
		case "paragraphSpacing":
			return token.ParagraphSpacing
		}
		return token.Other
	case token.BoxShadow:
		switch sub {
		case "color":
			return token.Color
		case "x", "y", "blur", "spread":
			return token.Dimension
		case "type":
			return token.Text
		}
		return token.Other
	case token.Border:
		switch sub {
		case "color":
			return token.Color
		case "width":
			return token.BorderWidth
		case "style":
			return token.Text
		}
		return token.Other
	case token.Composition:
		// Composition sub-properties are arbitrary style properties; infer
		// dimensions for the common spacing-like names.
		switch sub {
		case "sizing", "height", "width", "spacing", "gap", "padding",
			"margin", "borderRadius", "borderWidth":
			return token.Dimension
		case "fill", "color", "backgroundColor", "borderColor":
			return token.Color
		case "opacity":
			return token.Opacity
		}
		return token.Other
	}
	return token.Other
}
