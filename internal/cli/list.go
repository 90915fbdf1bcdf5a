// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yourbase/javaprops/charset"
	"github.com/yourbase/javaprops/properties"
	"zombiezen.com/go/log"
)

func newListCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list <file>",
		Short: "Print every comment and property in a file",
		Long: `Print every comment and property in a .properties file with the number
of the line it starts on. Escape sequences and continuation lines are resolved.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, opts, args[0])
		},
	}
}

func runList(cmd *cobra.Command, opts *rootOptions, path string) error {
	enc, err := opts.encoding()
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	log.Debugf(cmd.Context(), "Reading %s as %s", path, charset.Name(enc))

	out := cmd.OutOrStdout()
	n := 0
	for line, err := range properties.NewReaderEncoding(f, enc).All() {
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		n++
		fmt.Fprintln(out, line)
	}
	log.Debugf(cmd.Context(), "Read %d records from %s", n, path)
	return nil
}
