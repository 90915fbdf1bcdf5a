// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yourbase/javaprops/charset"
	"github.com/yourbase/javaprops/envvar"
	"github.com/yourbase/javaprops/properties"
	"gopkg.in/yaml.v3"
	"zombiezen.com/go/log"
)

// Output formats for convert.
const (
	formatProperties = "properties"
	formatJSON       = "json"
	formatYAML       = "yaml"
)

type convertOptions struct {
	to            string
	output        string
	outCharset    string
	separator     string
	commentPrefix string
	lineEnding    string
}

func newConvertCommand(opts *rootOptions) *cobra.Command {
	copts := new(convertOptions)
	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Rewrite a file in another encoding, style or format",
		Long: `Rewrite a .properties file.

With --to properties (the default), the file is written back with its comments,
using the given output charset, separator, comment prefix and line ending.
Characters the output charset cannot represent are written as \u escapes.

With --to json or --to yaml, the properties are written as a flat object.
If a key appears more than once, the last value wins.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, opts, copts, args[0])
		},
	}
	defaultLineEnding, err := envvar.OneOf(lineEndingEnv, properties.LF.String(),
		properties.LF.String(), properties.CR.String(), properties.CRLF.String())
	if err != nil {
		log.Warnf(context.Background(), "%v (using %v)", err, properties.LF)
		defaultLineEnding = properties.LF.String()
	}
	cmd.Flags().StringVar(&copts.to, "to", formatProperties, "output format: properties, json or yaml")
	cmd.Flags().StringVarP(&copts.output, "output", "o", "", "write to `file` instead of stdout")
	cmd.Flags().StringVar(&copts.outCharset, "out-charset", "", "character encoding of the output (default same as --charset)")
	cmd.Flags().StringVar(&copts.separator, "separator", properties.DefaultSeparator, "text between each key and value")
	cmd.Flags().StringVar(&copts.commentPrefix, "comment-prefix", properties.DefaultCommentPrefix, "text before each comment")
	cmd.Flags().StringVar(&copts.lineEnding, "line-ending", defaultLineEnding, "line terminator: LF, CR or CRLF")
	return cmd
}

func runConvert(cmd *cobra.Command, opts *rootOptions, copts *convertOptions, path string) (err error) {
	ctx := cmd.Context()
	to := strings.ToLower(copts.to)
	switch to {
	case formatProperties, formatJSON, formatYAML:
	default:
		return fmt.Errorf("--to: unknown format %q", copts.to)
	}
	enc, err := opts.encoding()
	if err != nil {
		return err
	}

	in, err := os.Open(path)
	if err != nil {
		return err
	}
	log.Debugf(ctx, "Reading %s as %s", path, charset.Name(enc))
	file, err := properties.Parse(in, &properties.ParseOptions{Encoding: enc})
	in.Close()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	out := cmd.OutOrStdout()
	if copts.output != "" {
		f, err := os.Create(copts.output)
		if err != nil {
			return err
		}
		defer func() {
			if closeErr := f.Close(); err == nil && closeErr != nil {
				err = closeErr
			}
		}()
		out = f
	}

	switch to {
	case formatJSON:
		data, err := json.MarshalIndent(file.Map(), "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "%s\n", data)
		return err
	case formatYAML:
		data, err := yaml.Marshal(file.Map())
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	default:
		return writeProperties(ctx, out, opts, copts, file)
	}
}

func writeProperties(ctx context.Context, out io.Writer, opts *rootOptions, copts *convertOptions, file *properties.File) error {
	name := copts.outCharset
	if name == "" {
		name = opts.charset
	}
	enc, err := charset.Lookup(name)
	if err != nil {
		return fmt.Errorf("--out-charset: %w", err)
	}
	le, err := properties.ParseLineEnding(copts.lineEnding)
	if err != nil {
		return fmt.Errorf("--line-ending: %w", err)
	}
	w := properties.NewWriterEncoding(out, enc)
	if err := w.SetSeparator(copts.separator); err != nil {
		return fmt.Errorf("--separator: %w", err)
	}
	if err := w.SetCommentPrefix(copts.commentPrefix); err != nil {
		return fmt.Errorf("--comment-prefix: %w", err)
	}
	w.SetLineEnding(le)
	log.Debugf(ctx, "Writing %d properties as %s with %v line endings", len(file.Keys()), charset.Name(enc), le)
	if err := file.Encode(w); err != nil {
		return err
	}
	return w.Finish()
}
