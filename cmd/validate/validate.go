/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package validate provides the validate command for gvanim.
package validate

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bennypowers.dev/gvanim/loader"
)

// Cmd is the validate cobra command. It lints token files for problems
// the resolver would otherwise surface late: missing values, malformed
// references, unstructured composite values.
var Cmd = &cobra.Command{
	Use:   "validate [token files...]",
	Short: "Validate token set files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  run,
}

func run(cmd *cobra.Command, args []string) error {
	store, err := loader.LoadSets(args)
	if err != nil {
		return err
	}

	errs := loader.ValidateStore(store)
	for i := range errs {
		fmt.Fprintln(os.Stderr, errs[i].Error())
	}
	if len(errs) > 0 {
		return fmt.Errorf("%d validation error(s)", len(errs))
	}

	fmt.Printf("%d set(s) valid\n", len(store))
	return nil
}
