/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package themes provides the themes command for gvanim.
package themes

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"bennypowers.dev/gvanim/loader"
)

// Cmd is the themes cobra command. It lists themes, their groups, and
// per-set statuses from a themes file.
var Cmd = &cobra.Command{
	Use:   "themes <themes file>",
	Short: "List themes and their token set statuses",
	Args:  cobra.ExactArgs(1),
	RunE:  run,
}

func run(cmd *cobra.Command, args []string) error {
	themes, err := loader.LoadThemes(args[0])
	if err != nil {
		return err
	}

	byGroup := make(map[string][]int)
	for i, th := range themes {
		byGroup[th.Group] = append(byGroup[th.Group], i)
	}
	groups := make([]string, 0, len(byGroup))
	for g := range byGroup {
		groups = append(groups, g)
	}
	sort.Strings(groups)

	for _, group := range groups {
		name := group
		if name == "" {
			name = "(ungrouped)"
		}
		fmt.Println(name)
		for _, i := range byGroup[group] {
			th := themes[i]
			fmt.Printf("  %s (%s)\n", th.Name, th.ID)
			for _, set := range th.SetOrder {
				fmt.Printf("    %-8s %s\n", th.SelectedSets[set], set)
			}
		}
	}
	return nil
}
