/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package cmd provides CLI commands for gvanim.
package cmd

import (
	"github.com/spf13/cobra"

	"bennypowers.dev/gvanim/cmd/resolve"
	"bennypowers.dev/gvanim/cmd/themes"
	"bennypowers.dev/gvanim/cmd/validate"
	"bennypowers.dev/gvanim/cmd/version"
)

var rootCmd = &cobra.Command{
	Use:   "gvanim",
	Short: "Resolve themed design token sets",
	Long:  `gvanim merges design token sets per theme, resolves aliases and arithmetic, and emits a flat resolved token map.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Config file (default: .config/gvanim.yaml)")

	rootCmd.AddCommand(resolve.Cmd)
	rootCmd.AddCommand(themes.Cmd)
	rootCmd.AddCommand(validate.Cmd)
	rootCmd.AddCommand(version.Cmd)
}
