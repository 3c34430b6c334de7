/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package resolve provides the resolve command for gvanim.
package resolve

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/gvanim/config"
	"bennypowers.dev/gvanim/engine"
	"bennypowers.dev/gvanim/internal/report"
	"bennypowers.dev/gvanim/loader"
	"bennypowers.dev/gvanim/theme"
	"bennypowers.dev/gvanim/token"
)

// Cmd is the resolve cobra command.
var Cmd = &cobra.Command{
	Use:   "resolve [token files...]",
	Short: "Resolve token sets into a flat token map",
	Long: `Resolve merges the selected token sets, substitutes {token.path}
aliases, evaluates arithmetic, optionally expands composite tokens, and
prints the resolved map as JSON.

Sets are selected either explicitly with --sets (in merge order) or via a
themes file with --themes plus one or more --theme group=id selections
(group priority order follows flag order).

Examples:
  # Explicit set order
  gvanim resolve --sets core --sets semantic/light tokens/**/*.json

  # Theme-driven selection
  gvanim resolve --themes \$themes.json --theme mode=light --theme brand=acme tokens/**/*.json

  # Expand typography and shadows for CSS-oriented consumers
  gvanim resolve --expand-typography --expand-shadow --sets core tokens/core.json`,
	Args: cobra.ArbitraryArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
	Cmd.Flags().Bool("flat", false, "Emit a flat path → value object instead of nested groups")
	Cmd.Flags().StringArray("sets", nil, "Explicit set names in merge order (repeatable)")
	Cmd.Flags().String("themes", "", "Themes file")
	Cmd.Flags().StringArray("theme", nil, "Active theme as group=id (repeatable, priority order)")
	Cmd.Flags().Bool("expand-typography", false, "Expand typography tokens into sub-tokens")
	Cmd.Flags().Bool("expand-shadow", false, "Expand shadow tokens into sub-tokens")
	Cmd.Flags().Bool("expand-border", false, "Expand border tokens into sub-tokens")
	Cmd.Flags().Bool("expand-composition", false, "Expand composition tokens into sub-tokens")
	Cmd.Flags().String("resolve-references", "math", "Reference handling: math, alias, or off")
	Cmd.Flags().Bool("preserve-raw", false, "Keep original values alongside resolved ones")
	Cmd.Flags().Bool("strict", false, "Abort on the first fatal condition")
	Cmd.Flags().StringArray("exclude", nil, "Exclude sets or paths matching pattern (repeatable)")

	_ = viper.BindPFlag("expand.typography", Cmd.Flags().Lookup("expand-typography"))
	_ = viper.BindPFlag("expand.shadow", Cmd.Flags().Lookup("expand-shadow"))
	_ = viper.BindPFlag("expand.border", Cmd.Flags().Lookup("expand-border"))
	_ = viper.BindPFlag("expand.composition", Cmd.Flags().Lookup("expand-composition"))
	_ = viper.BindPFlag("resolveReferences", Cmd.Flags().Lookup("resolve-references"))
	_ = viper.BindPFlag("preserveRawValue", Cmd.Flags().Lookup("preserve-raw"))
	_ = viper.BindPFlag("strict", Cmd.Flags().Lookup("strict"))
	_ = viper.BindPFlag("exclude", Cmd.Flags().Lookup("exclude"))
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	opts, err := engineOptions(cmd, cfg)
	if err != nil {
		return err
	}

	store, err := loadStore(cfg, args)
	if err != nil {
		return err
	}
	if len(store) == 0 {
		return fmt.Errorf("no token files specified and none found in config")
	}

	selection, themes, err := buildSelection(cmd, cfg)
	if err != nil {
		return err
	}

	result, err := engine.Resolve(engine.Input{
		Store:     store,
		Themes:    themes,
		Selection: selection,
		Options:   opts,
	})
	if err != nil {
		return err
	}

	reporter := report.New(os.Stderr, true)
	reporter.Report(result.Diagnostics)

	flat, _ := cmd.Flags().GetBool("flat")
	out, err := Serialize(result, flat)
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		fmt.Println(string(out))
		return nil
	}
	return os.WriteFile(output, append(out, '\n'), 0o644)
}

// loadConfig reads the config file named by the root --config flag, the
// default location, or returns defaults.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path, _ = cmd.InheritedFlags().GetString("config")
	}
	if path != "" {
		return config.Load(path)
	}
	for _, candidate := range []string{".config/gvanim.yaml", ".config/gvanim.json"} {
		if _, err := os.Stat(candidate); err == nil {
			return config.Load(candidate)
		}
	}
	return config.Default(), nil
}

// engineOptions merges config file values with flag overrides. Flags win
// only when explicitly set; boolean toggles combine so either source can
// enable them.
func engineOptions(cmd *cobra.Command, cfg *config.Config) (engine.Options, error) {
	if cmd.Flags().Changed("resolve-references") {
		cfg.ResolveReferences = viper.GetString("resolveReferences")
	}
	cfg.Strict = cfg.Strict || viper.GetBool("strict")
	cfg.PreserveRawValue = cfg.PreserveRawValue || viper.GetBool("preserveRawValue")
	cfg.Expand.Typography = cfg.Expand.Typography || viper.GetBool("expand.typography")
	cfg.Expand.Shadow = cfg.Expand.Shadow || viper.GetBool("expand.shadow")
	cfg.Expand.Border = cfg.Expand.Border || viper.GetBool("expand.border")
	cfg.Expand.Composition = cfg.Expand.Composition || viper.GetBool("expand.composition")
	cfg.Exclude = append(cfg.Exclude, viper.GetStringSlice("exclude")...)
	return cfg.EngineOptions()
}

// loadStore loads token sets from CLI args, falling back to config files.
func loadStore(cfg *config.Config, args []string) (token.Store, error) {
	if len(args) > 0 {
		return loader.LoadSets(args)
	}
	sources := make([]loader.Source, 0, len(cfg.Files))
	for _, f := range cfg.Files {
		sources = append(sources, loader.Source{Pattern: f.Path, Name: f.Name})
	}
	return loader.LoadSources(sources)
}

// buildSelection derives the set selection from flags and config.
func buildSelection(cmd *cobra.Command, cfg *config.Config) (theme.Selection, []theme.Theme, error) {
	var sel theme.Selection
	sel.SetNames, _ = cmd.Flags().GetStringArray("sets")

	themesPath, _ := cmd.Flags().GetString("themes")
	if themesPath == "" {
		themesPath = cfg.Themes
	}

	var themes []theme.Theme
	if themesPath != "" {
		var err error
		themes, err = loader.LoadThemes(themesPath)
		if err != nil {
			return sel, nil, err
		}
	}

	pairs, _ := cmd.Flags().GetStringArray("theme")
	for _, pair := range pairs {
		group, id, found := strings.Cut(pair, "=")
		if !found {
			return sel, nil, fmt.Errorf("invalid theme selection %q: expected group=id", pair)
		}
		sel.Active = append(sel.Active, theme.ActiveTheme{Group: group, ID: id})
	}

	if len(sel.SetNames) == 0 && len(sel.Active) == 0 {
		return sel, nil, fmt.Errorf("select sets with --sets or themes with --theme")
	}
	return sel, themes, nil
}
