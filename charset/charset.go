// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

// Package charset provides streaming conversion between bytes in a named
// character encoding and Unicode text.
//
// A Decoder turns an io.Reader into a sequence of runes and a Writer turns
// text into encoded bytes on an io.Writer. Both grow their internal buffers
// as needed and never assume that the underlying reader or writer transfers
// data in any particular chunk size. Encodings come from golang.org/x/text.
package charset

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
)

// Default is the encoding used for .properties files when none is given:
// ISO-8859-1, where every byte maps to the code point of the same value.
var Default encoding.Encoding = charmap.ISO8859_1

// Lookup returns the encoding with the given name. IANA names and aliases
// (like "ISO-8859-1", "latin1" or "UTF-16BE") are tried first, then the
// labels defined by the WHATWG Encoding Standard. Matching is
// case-insensitive.
func Lookup(name string) (encoding.Encoding, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("look up charset: empty name")
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err == nil && enc != nil {
		return enc, nil
	}
	if enc, herr := htmlindex.Get(name); herr == nil {
		return enc, nil
	}
	if err == nil {
		// IANA knows the name, but x/text has no implementation for it.
		return nil, fmt.Errorf("look up charset %q: unsupported", name)
	}
	return nil, fmt.Errorf("look up charset %q: %w", name, err)
}

// Name returns the preferred MIME name of enc (such as "ISO-8859-1"), or its
// String form if it has no registered name.
func Name(enc encoding.Encoding) string {
	if name, err := ianaindex.MIME.Name(enc); err == nil {
		return name
	}
	if s, ok := enc.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", enc)
}
