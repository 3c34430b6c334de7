/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package token provides design token types for themed token sets.
package token

// Type is the token's type tag.
type Type string

// Known token types.
const (
	Color            Type = "color"
	Dimension        Type = "dimension"
	Spacing          Type = "spacing"
	Sizing           Type = "sizing"
	Opacity          Type = "opacity"
	BorderRadius     Type = "borderRadius"
	BorderWidth      Type = "borderWidth"
	FontFamilies     Type = "fontFamilies"
	FontWeights      Type = "fontWeights"
	FontSizes        Type = "fontSizes"
	LineHeights      Type = "lineHeights"
	LetterSpacing    Type = "letterSpacing"
	ParagraphSpacing Type = "paragraphSpacing"
	Number           Type = "number"
	Text             Type = "text"
	Typography       Type = "typography"
	BoxShadow        Type = "boxShadow"
	Border           Type = "border"
	Composition      Type = "composition"
	Other            Type = "other"
)

// Composite reports whether tokens of this type carry a structured
// sub-property value rather than a scalar.
func (t Type) Composite() bool {
	switch t {
	case Typography, BoxShadow, Border, Composition:
		return true
	}
	return false
}

// Numeric reports whether tokens of this type carry a scalar numeric or
// dimensional value, making them eligible for arithmetic evaluation.
func (t Type) Numeric() bool {
	switch t {
	case Dimension, Spacing, Sizing, Opacity, BorderRadius, BorderWidth,
		FontSizes, FontWeights, LineHeights, LetterSpacing, ParagraphSpacing,
		Number:
		return true
	}
	return false
}

// Token represents a single design token definition within a set.
type Token struct {
	// Path is the dotted path identifying the token (e.g., "color.brand.primary").
	Path string `json:"name"`

	// Type specifies the type of token (color, dimension, etc.).
	Type Type `json:"$type,omitempty"`

	// Value is the raw value: a scalar (string/number), a string containing
	// {token.path} references and arithmetic, or for composite types a map
	// of sub-property name to sub-value. Shadows and borders may be a slice
	// of such maps, one per layer.
	Value any `json:"$value"`

	// Description is optional documentation for the token.
	Description string `json:"$description,omitempty"`

	// Extensions allows for custom metadata, such as color modifiers.
	Extensions map[string]any `json:"$extensions,omitempty"`
}
