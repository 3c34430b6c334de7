/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package token

import "errors"

// Sentinel errors for token resolution.
var (
	// ErrUnknownSet indicates a referenced set name was not found.
	ErrUnknownSet = errors.New("unknown token set")

	// ErrUnknownTheme indicates a selected theme id was not found.
	ErrUnknownTheme = errors.New("unknown theme")

	// ErrCircularReference indicates a reference cycle was detected.
	ErrCircularReference = errors.New("circular reference detected")

	// ErrUnresolvedReference indicates a reference could not be resolved.
	ErrUnresolvedReference = errors.New("unresolved token reference")

	// ErrUnitMismatch indicates incompatible units in an arithmetic expression.
	ErrUnitMismatch = errors.New("mismatched units in expression")

	// ErrMalformedExpression indicates unparseable arithmetic or modifier syntax.
	ErrMalformedExpression = errors.New("malformed expression")
)
