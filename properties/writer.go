// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package properties

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/yourbase/javaprops/charset"
	"golang.org/x/text/encoding"
)

// LineEnding is a line terminator.
type LineEnding int

// Line endings allowed in a .properties file.
const (
	LF LineEnding = iota
	CR
	CRLF
)

func (le LineEnding) String() string {
	switch le {
	case LF:
		return "LF"
	case CR:
		return "CR"
	case CRLF:
		return "CRLF"
	default:
		return fmt.Sprintf("LineEnding(%d)", int(le))
	}
}

func (le LineEnding) terminator() string {
	switch le {
	case CR:
		return "\r"
	case CRLF:
		return "\r\n"
	default:
		return "\n"
	}
}

// ParseLineEnding returns the LineEnding named by s, one of "LF", "CR" or
// "CRLF" (in any case).
func ParseLineEnding(s string) (LineEnding, error) {
	for _, le := range []LineEnding{LF, CR, CRLF} {
		if strings.EqualFold(s, le.String()) {
			return le, nil
		}
	}
	return 0, &Error{Kind: KindBadConfiguration, Description: fmt.Sprintf("bad line ending %q", s)}
}

// Default Writer settings.
const (
	DefaultCommentPrefix = "# "
	DefaultSeparator     = "="
)

// A Writer writes a .properties file. Finish must be called after the last
// record has been written.
type Writer struct {
	commentPrefix string
	separator     string
	lineEnding    LineEnding

	w    *charset.Writer
	line int // number of the last line written
}

// NewWriter returns a Writer that writes ISO-8859-1 text to w.
func NewWriter(w io.Writer) *Writer {
	return NewWriterEncoding(w, charset.Default)
}

// NewWriterEncoding returns a Writer that writes text in the given encoding
// to w. The .properties format is defined in ISO-8859-1, so most callers
// should use NewWriter.
func NewWriterEncoding(w io.Writer, enc encoding.Encoding) *Writer {
	if w == nil {
		panic("properties.NewWriterEncoding(nil, ...)")
	}
	return &Writer{
		commentPrefix: DefaultCommentPrefix,
		separator:     DefaultSeparator,
		lineEnding:    LF,
		w:             charset.NewWriter(w, enc),
	}
}

// SetCommentPrefix sets the text written before each comment. See
// IsValidCommentPrefix for the accepted values.
func (w *Writer) SetCommentPrefix(prefix string) error {
	if !IsValidCommentPrefix(prefix) {
		return &Error{Kind: KindBadConfiguration, Description: fmt.Sprintf("bad comment prefix %q", prefix)}
	}
	w.commentPrefix = prefix
	return nil
}

// SetSeparator sets the text written between each key and value. See
// IsValidSeparator for the accepted values.
func (w *Writer) SetSeparator(separator string) error {
	if !IsValidSeparator(separator) {
		return &Error{Kind: KindBadConfiguration, Description: fmt.Sprintf("bad key/value separator %q", separator)}
	}
	w.separator = separator
	return nil
}

// SetLineEnding sets the line terminator. It panics if le is not LF, CR or
// CRLF.
func (w *Writer) SetLineEnding(le LineEnding) {
	if le != LF && le != CR && le != CRLF {
		panic("properties.Writer.SetLineEnding invalid line ending: " + le.String())
	}
	w.lineEnding = le
}

// WriteComment writes a comment line. The comment is written without
// escaping.
func (w *Writer) WriteComment(comment string) error {
	return w.writeLine(w.commentPrefix + comment)
}

// Write writes a property.
func (w *Writer) Write(key, value string) error {
	return w.writeLine(Escape(key) + w.separator + Escape(value))
}

func (w *Writer) writeLine(s string) error {
	w.line++
	if err := w.w.WriteString(s + w.lineEnding.terminator()); err != nil {
		return writeError(w.line, err)
	}
	return nil
}

// Flush flushes the underlying writer.
func (w *Writer) Flush() error {
	if err := w.w.Flush(); err != nil {
		return writeError(w.line, err)
	}
	return nil
}

// Finish completes the output and flushes the underlying writer. It must be
// called exactly once, after the last record has been written.
func (w *Writer) Finish() error {
	if err := w.w.Finish(); err != nil {
		return writeError(w.line, err)
	}
	return nil
}

// Write writes a map as an ISO-8859-1 .properties file, in key order.
func Write(w io.Writer, m map[string]string) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pw := NewWriter(w)
	for _, k := range keys {
		if err := pw.Write(k, m[k]); err != nil {
			return err
		}
	}
	return pw.Finish()
}

// IsValidCommentPrefix reports whether prefix can start a comment line:
// optional spaces, tabs or form feeds, then '#' or '!', then any text
// without carriage returns or line feeds.
func IsValidCommentPrefix(prefix string) bool {
	rest := strings.TrimLeft(prefix, " \t\f")
	if rest == "" || (rest[0] != '#' && rest[0] != '!') {
		return false
	}
	return !strings.ContainsAny(rest, "\r\n")
}

// IsValidSeparator reports whether separator can separate a key from its
// value: either one or more spaces, tabs or form feeds, or a single ':' or
// '=' with optional spaces, tabs or form feeds on either side.
func IsValidSeparator(separator string) bool {
	if separator == "" {
		return false
	}
	rest := strings.TrimLeft(separator, " \t\f")
	if rest == "" {
		return true
	}
	if rest[0] != ':' && rest[0] != '=' {
		return false
	}
	return strings.TrimLeft(rest[1:], " \t\f") == ""
}
