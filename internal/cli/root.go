// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

// Package cli provides the command-line interface for javaprops.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yourbase/javaprops/charset"
	"github.com/yourbase/javaprops/envvar"
	"golang.org/x/text/encoding"
	"zombiezen.com/go/log"
)

// Environment variables that provide flag defaults.
const (
	charsetEnv    = "JAVAPROPS_CHARSET"
	lineEndingEnv = "JAVAPROPS_LINE_ENDING"
	debugEnv      = "JAVAPROPS_DEBUG"
)

// exitError is returned by a command that should exit with a status other
// than 0 or 2 without printing an error.
type exitError struct {
	code int
}

func (e exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// rootOptions holds the persistent flags.
type rootOptions struct {
	charset string
	debug   bool
	logger  *log.LevelFilter // nil when not installed as the default
}

// encoding returns the encoding named by the --charset flag.
func (opts *rootOptions) encoding() (encoding.Encoding, error) {
	enc, err := charset.Lookup(opts.charset)
	if err != nil {
		return nil, fmt.Errorf("--charset: %w", err)
	}
	return enc, nil
}

// Execute runs the root command and returns the exit code.
func Execute() int {
	logger := newLogger(os.Stderr, envvar.Bool(debugEnv))
	log.SetDefault(logger)
	rootCmd := newRootCommand(logger)
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		var e exitError
		if errors.As(err, &e) {
			return e.code
		}
		log.Errorf(context.Background(), "%v", err)
		return 2
	}
	return 0
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	return newRootCommand(nil)
}

func newRootCommand(logger *log.LevelFilter) *cobra.Command {
	opts := &rootOptions{logger: logger}
	rootCmd := &cobra.Command{
		Use:   "javaprops",
		Short: "Read, query and convert Java .properties files",
		Long: `javaprops reads Java .properties files the way java.util.Properties does.

Files are read as ISO-8859-1 unless --charset names another encoding.
Flag defaults can be set with the environment variables:
  JAVAPROPS_CHARSET       default for --charset
  JAVAPROPS_LINE_ENDING   default for convert --line-ending
  JAVAPROPS_DEBUG         default for --debug`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				setDebug(opts.logger, opts.debug)
			}
		},
	}
	rootCmd.PersistentFlags().StringVar(&opts.charset, "charset", envvar.Get(charsetEnv, charset.Name(charset.Default)), "character encoding of input files")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", envvar.Bool(debugEnv), "show debug logging")

	rootCmd.AddCommand(newListCommand(opts))
	rootCmd.AddCommand(newGetCommand(opts))
	rootCmd.AddCommand(newConvertCommand(opts))
	return rootCmd
}
