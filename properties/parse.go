// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package properties

import "strings"

type tokenKind int

const (
	noToken tokenKind = iota
	commentToken
	keyValueToken
)

// A token is the classification of a logical line. Its strings still contain
// escape sequences.
type token struct {
	kind    tokenKind
	comment string
	key     string
	value   string
}

// parseLine splits a logical line into a comment or a key and value. It never
// fails: a line that is all whitespace has no token.
//
// The grammar is equivalent to the regular expression
//
//	^WS*(?:[#!]WS*(.*?)WS*|((?:[^\\:=WS]|\\.)*(?:\\$)?)(?:(?:WS*[:=]WS*|WS+)((?:[^\\]|\\.)*?(?:\\$)?))?)$
//
// where WS is [ \t\r\n\f].
func parseLine(line string) token {
	i := 0
	for i < len(line) && isWhitespace(line[i]) {
		i++
	}
	if i < len(line) && (line[i] == '#' || line[i] == '!') {
		return token{
			kind:    commentToken,
			comment: strings.Trim(line[i+1:], whitespace),
		}
	}

	// Key. An escaped character always belongs to the key. The delimiters
	// are all ASCII, so skipping a single byte after a backslash never
	// lands inside a delimiter.
	start := i
	for i < len(line) {
		c := line[i]
		if c == '\\' {
			i += 2
			continue
		}
		if c == ':' || c == '=' || isWhitespace(c) {
			break
		}
		i++
	}
	if i > len(line) {
		// Trailing lone backslash.
		i = len(line)
	}
	key := line[start:i]

	// Separator.
	j := i
	for j < len(line) && isWhitespace(line[j]) {
		j++
	}
	if j < len(line) && (line[j] == ':' || line[j] == '=') {
		j++
		for j < len(line) && isWhitespace(line[j]) {
			j++
		}
		return token{kind: keyValueToken, key: key, value: line[j:]}
	}
	if j > i {
		return token{kind: keyValueToken, key: key, value: line[j:]}
	}

	// No separator: the key ran to the end of the line.
	if key == "" {
		return token{kind: noToken}
	}
	return token{kind: keyValueToken, key: key}
}
