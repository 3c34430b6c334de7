/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package engine

import (
	"github.com/bmatcuk/doublestar/v4"
)

// excluded reports whether a token is dropped by the exclusion patterns.
// Patterns match against the owning set name and the token path.
func excluded(patterns []string, setName, path string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, setName); err == nil && ok {
			return true
		}
		if ok, err := doublestar.Match(pattern, path); err == nil && ok {
			return true
		}
	}
	return false
}
