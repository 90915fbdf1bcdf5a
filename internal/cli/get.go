// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yourbase/javaprops/properties"
	"zombiezen.com/go/log"
)

func newGetCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key> <file> [<file>...]",
		Short: "Print the value of a property",
		Long: `Print the value of a property. When more than one file is given, the
first file that defines the key wins. Files that do not exist are skipped.

Exits with status 1 if no file defines the key.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd, opts, args[0], args[1:])
		},
	}
}

func runGet(cmd *cobra.Command, opts *rootOptions, key string, paths []string) error {
	enc, err := opts.encoding()
	if err != nil {
		return err
	}
	fset, err := properties.ReadFiles(&properties.ParseOptions{Encoding: enc}, paths...)
	if err != nil {
		return err
	}
	for i, f := range fset {
		if f == nil {
			log.Debugf(cmd.Context(), "Skipping %s: file does not exist", paths[i])
		}
	}
	value, ok := fset.Lookup(key)
	if !ok {
		log.Debugf(cmd.Context(), "%q not found in %d file(s)", key, len(paths))
		return exitError{code: 1}
	}
	fmt.Fprintln(cmd.OutOrStdout(), value)
	return nil
}
