/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package colormod applies color modifiers (lighten, darken, alpha, mix)
// declared in a color token's extensions.
package colormod

import (
	"fmt"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/csscolorparser"

	"bennypowers.dev/gvanim/token"
)

// ExtensionKey is the extensions entry carrying a color modifier.
const ExtensionKey = "studio.tokens"

// Modifier transforms a resolved color value.
type Modifier struct {
	// Type is one of "lighten", "darken", "alpha", "mix".
	Type string

	// Value is the modifier amount in [0, 1].
	Value float64

	// Space selects the blend space: "srgb" (default), "lab", or "lch".
	Space string

	// Color is the second operand for mix.
	Color string
}

// FromExtensions extracts a modifier from a token's extensions, if present.
// The expected shape is extensions["studio.tokens"]["modify"] with string
// or numeric fields.
func FromExtensions(ext map[string]any) (*Modifier, bool, error) {
	studio, ok := ext[ExtensionKey].(map[string]any)
	if !ok {
		return nil, false, nil
	}
	modify, ok := studio["modify"].(map[string]any)
	if !ok {
		return nil, false, nil
	}

	m := &Modifier{Space: "srgb"}
	m.Type, _ = modify["type"].(string)
	switch m.Type {
	case "lighten", "darken", "alpha", "mix":
	default:
		return nil, true, fmt.Errorf("%w: unknown modifier type %q", token.ErrMalformedExpression, m.Type)
	}

	switch v := modify["value"].(type) {
	case float64:
		m.Value = v
	case int:
		m.Value = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, true, fmt.Errorf("%w: modifier value %q", token.ErrMalformedExpression, v)
		}
		m.Value = parsed
	default:
		return nil, true, fmt.Errorf("%w: modifier missing value", token.ErrMalformedExpression)
	}
	if m.Value < 0 || m.Value > 1 {
		return nil, true, fmt.Errorf("%w: modifier value %v out of range [0, 1]", token.ErrMalformedExpression, m.Value)
	}

	if space, ok := modify["space"].(string); ok && space != "" {
		m.Space = space
	}
	m.Color, _ = modify["color"].(string)
	if m.Type == "mix" && m.Color == "" {
		return nil, true, fmt.Errorf("%w: mix modifier missing color", token.ErrMalformedExpression)
	}

	return m, true, nil
}

// Apply transforms the resolved color string and returns the new value as
// a hex string (hex with alpha channel when alpha < 1).
func (m *Modifier) Apply(value string) (string, error) {
	base, err := csscolorparser.Parse(value)
	if err != nil {
		return "", fmt.Errorf("%w: %q is not a color: %v", token.ErrMalformedExpression, value, err)
	}
	c := colorful.Color{R: base.R, G: base.G, B: base.B}
	alpha := base.A

	switch m.Type {
	case "lighten":
		c = m.blend(c, colorful.Color{R: 1, G: 1, B: 1})
	case "darken":
		c = m.blend(c, colorful.Color{R: 0, G: 0, B: 0})
	case "alpha":
		alpha = m.Value
	case "mix":
		other, err := csscolorparser.Parse(m.Color)
		if err != nil {
			return "", fmt.Errorf("%w: mix color %q: %v", token.ErrMalformedExpression, m.Color, err)
		}
		c = m.blend(c, colorful.Color{R: other.R, G: other.G, B: other.B})
	}

	c = c.Clamped()
	out := csscolorparser.Color{R: c.R, G: c.G, B: c.B, A: alpha}
	return out.HexString(), nil
}

func (m *Modifier) blend(from, to colorful.Color) colorful.Color {
	switch m.Space {
	case "lab":
		return from.BlendLab(to, m.Value)
	case "lch":
		return from.BlendHcl(to, m.Value)
	default:
		return from.BlendRgb(to, m.Value)
	}
}
