/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package loader

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"bennypowers.dev/gvanim/theme"
)

// LoadThemes reads a themes document: a list of theme records, each with
// an id, name, group, and an ordered selectedTokenSets mapping from set
// name to status (enabled, source, disabled). Set listing order is
// preserved; it establishes merge order.
func LoadThemes(path string) ([]theme.Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	themes, err := ParseThemes(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return themes, nil
}

// ParseThemes parses a themes document from bytes.
func ParseThemes(data []byte) ([]theme.Theme, error) {
	root, err := parseDocument(data)
	if err != nil {
		return nil, err
	}
	if root.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("themes document must be a list")
	}

	themes := make([]theme.Theme, 0, len(root.Content))
	for _, item := range root.Content {
		var th theme.Theme
		if id := mapValue(item, "id"); id != nil {
			th.ID = id.Value
		}
		if name := mapValue(item, "name"); name != nil {
			th.Name = name.Value
		}
		if group := mapValue(item, "group"); group != nil {
			th.Group = group.Value
		}
		if th.ID == "" {
			return nil, fmt.Errorf("theme %q missing id", th.Name)
		}

		th.SelectedSets = make(map[string]theme.SetStatus)
		if sel := mapValue(item, "selectedTokenSets"); sel != nil {
			for i := 0; i+1 < len(sel.Content); i += 2 {
				setName := sel.Content[i].Value
				status, err := theme.ParseStatus(sel.Content[i+1].Value)
				if err != nil {
					return nil, fmt.Errorf("theme %s: set %s: %w", th.ID, setName, err)
				}
				th.SelectedSets[setName] = status
				th.SetOrder = append(th.SetOrder, setName)
			}
		}
		themes = append(themes, th)
	}
	return themes, nil
}
