// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package properties

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yourbase/javaprops/charset"
)

// ErrorKind classifies an Error.
type ErrorKind int

// Error kinds.
const (
	// KindTransport is a failure of the underlying reader or writer.
	KindTransport ErrorKind = 1 + iota
	// KindMalformedEscape is a bad \u escape in the input.
	KindMalformedEscape
	// KindBadConfiguration is an invalid Writer setting.
	KindBadConfiguration
	// KindEncodeFailure is text that could not be written in the output
	// encoding.
	KindEncodeFailure
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindMalformedEscape:
		return "malformed escape"
	case KindBadConfiguration:
		return "bad configuration"
	case KindEncodeFailure:
		return "encode failure"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is the error type returned by this package's readers and writers.
type Error struct {
	Kind        ErrorKind
	Description string
	// Line is the 1-based number of the line being read or written, or zero
	// if the error is not associated with a line.
	Line int
	// Err is the underlying error, if any.
	Err error
}

func (e *Error) Error() string {
	sb := new(strings.Builder)
	if e.Line > 0 {
		fmt.Fprintf(sb, "line %d: ", e.Line)
	}
	sb.WriteString(e.Description)
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// LineNumber returns the 1-based line number associated with the error, if
// there is one.
func (e *Error) LineNumber() (int, bool) {
	return e.Line, e.Line > 0
}

func transportError(description string, line int, err error) *Error {
	return &Error{Kind: KindTransport, Description: description, Line: line, Err: err}
}

func malformedEscape(reason string, line int, err error) *Error {
	return &Error{
		Kind:        KindMalformedEscape,
		Description: `malformed \uxxxx encoding: ` + reason,
		Line:        line,
		Err:         err,
	}
}

// writeError classifies an error from the charset layer.
func writeError(line int, err error) *Error {
	var uerr *charset.UnmappableError
	if errors.As(err, &uerr) {
		return &Error{Kind: KindEncodeFailure, Description: "encode properties", Line: line, Err: err}
	}
	return transportError("write properties", line, err)
}
