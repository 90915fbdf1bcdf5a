// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package properties

import (
	"io"
	"strings"
)

// whitespace is the set of characters the format ignores around keys,
// separators and comments.
const whitespace = " \t\r\n\f"

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f'
}

// A naturalLine is the text between two line terminators.
type naturalLine struct {
	number int
	text   string
}

// naturalLines splits decoded text into natural lines. Input always has at
// least one line, even if it is empty.
type naturalLines struct {
	rs    io.RuneScanner
	count int
	eof   bool
	err   error // read error to report on the next call
}

func (nl *naturalLines) next() (naturalLine, error) {
	if nl.eof {
		return naturalLine{}, io.EOF
	}
	sb := new(strings.Builder)
	for {
		if nl.err != nil {
			return naturalLine{}, transportError("read properties", nl.count+1, nl.err)
		}
		c, _, err := nl.rs.ReadRune()
		switch {
		case err == io.EOF:
			nl.eof = true
			return nl.emit(sb), nil
		case err != nil:
			nl.err = err
		case c == '\r':
			// CR LF is a single terminator.
			c, _, err := nl.rs.ReadRune()
			switch {
			case err == nil && c != '\n':
				// The rune after CR starts the next line. If it can't be
				// pushed back, report that on the next call instead of
				// dropping the rune.
				if err := nl.rs.UnreadRune(); err != nil {
					nl.err = err
				}
			case err != nil && err != io.EOF:
				nl.err = err
			}
			return nl.emit(sb), nil
		case c == '\n':
			return nl.emit(sb), nil
		default:
			sb.WriteRune(c)
		}
	}
}

func (nl *naturalLines) emit(sb *strings.Builder) naturalLine {
	nl.count++
	return naturalLine{number: nl.count, text: sb.String()}
}

// A logicalLine is one or more natural lines joined by backslash
// continuations. Its number is the number of its first natural line.
type logicalLine struct {
	number int
	text   string
}

type naturalLineSource interface {
	next() (naturalLine, error)
}

// logicalLines joins continued natural lines.
type logicalLines struct {
	src naturalLineSource
	eof bool
	buf []byte
}

func (ll *logicalLines) next() (logicalLine, error) {
	if ll.eof {
		return logicalLine{}, io.EOF
	}
	ll.buf = ll.buf[:0]
	number := 0
	for first := true; ; first = false {
		line, err := ll.src.next()
		if err == io.EOF {
			ll.eof = true
			if first {
				return logicalLine{}, io.EOF
			}
			// Input ended inside a continuation.
			return logicalLine{number: number, text: string(ll.buf)}, nil
		}
		if err != nil {
			return logicalLine{}, err
		}
		if first {
			number = line.number
			ll.buf = append(ll.buf, line.text...)
			// "#a\" followed by "b" is two lines, but "a\" followed by "#b"
			// is the single line "a#b", so comments have to be detected here.
			if isCommentStart(line.text) {
				return logicalLine{number: number, text: string(ll.buf)}, nil
			}
		} else {
			ll.buf = append(ll.buf, strings.TrimLeft(line.text, whitespace)...)
		}
		if trailingBackslashes(line.text)%2 == 0 {
			return logicalLine{number: number, text: string(ll.buf)}, nil
		}
		ll.buf = ll.buf[:len(ll.buf)-1]
	}
}

// isCommentStart reports whether the first character of s after any
// whitespace is '#' or '!'.
func isCommentStart(s string) bool {
	s = strings.TrimLeft(s, whitespace)
	return s != "" && (s[0] == '#' || s[0] == '!')
}

func trailingBackslashes(s string) int {
	n := 0
	for n < len(s) && s[len(s)-1-n] == '\\' {
		n++
	}
	return n
}
