// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package properties

import (
	"bytes"
	"fmt"
	"io"

	"github.com/yourbase/javaprops/charset"
	"golang.org/x/text/encoding"
)

// A File is a .properties document that keeps comments and the order of
// properties, for read-modify-write editing. The zero value is an empty file.
// Files can be read by multiple concurrent goroutines.
type File struct {
	properties       []property
	trailingComments []string
}

type property struct {
	comments []string // comments immediately before the property
	key      string
	value    string
}

// ParseOptions holds optional parameters for Parse.
type ParseOptions struct {
	// Encoding is the encoding of the file. If nil, ISO-8859-1 is used.
	Encoding encoding.Encoding

	// NormalizeKey is called on each key to apply text transformations.
	// This can be used to make keys case-insensitive, for instance.
	// If nil, no transformations are made.
	NormalizeKey func(key string) string
}

func (opts *ParseOptions) encoding() encoding.Encoding {
	if opts == nil || opts.Encoding == nil {
		return charset.Default
	}
	return opts.Encoding
}

// Parse parses a .properties file. Nil options are treated identically as
// passing the zero value. On error, Parse returns the properties read before
// the error.
func Parse(r io.Reader, opts *ParseOptions) (*File, error) {
	f := new(File)
	var comments []string
	for line, err := range NewReaderEncoding(r, opts.encoding()).All() {
		if err != nil {
			return f, fmt.Errorf("parse properties: %w", err)
		}
		switch c := line.Content.(type) {
		case Comment:
			comments = append(comments, c.Text)
		case KeyValue:
			key := c.Key
			if opts != nil && opts.NormalizeKey != nil {
				key = opts.NormalizeKey(key)
			}
			f.properties = append(f.properties, property{
				comments: comments,
				key:      key,
				value:    c.Value,
			})
			comments = nil
		}
	}
	f.trailingComments = comments
	return f, nil
}

// Get returns the last value associated with the given key. If there are no
// values associated with the key, Get returns the empty string.
func (f *File) Get(key string) string {
	v, _ := f.Lookup(key)
	return v
}

// Lookup returns the last value associated with the given key and whether
// the key is present.
func (f *File) Lookup(key string) (_ string, ok bool) {
	if f == nil {
		return "", false
	}
	for i := len(f.properties) - 1; i >= 0; i-- {
		if p := &f.properties[i]; p.key == key {
			return p.value, true
		}
	}
	return "", false
}

// Find returns all the values associated with the given key, in file order.
func (f *File) Find(key string) []string {
	if f == nil {
		return nil
	}
	var values []string
	for _, p := range f.properties {
		if p.key == key {
			values = append(values, p.value)
		}
	}
	return values
}

// Keys returns the distinct keys in the file in order of first appearance.
func (f *File) Keys() []string {
	if f == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(f.properties))
	var keys []string
	for _, p := range f.properties {
		if _, dup := seen[p.key]; !dup {
			seen[p.key] = struct{}{}
			keys = append(keys, p.key)
		}
	}
	return keys
}

// Map returns the file's properties as a map. If a key appears more than
// once, the last value wins.
func (f *File) Map() map[string]string {
	if f == nil {
		return nil
	}
	m := make(map[string]string, len(f.properties))
	for _, p := range f.properties {
		m[p.key] = p.value
	}
	return m
}

// Set sets the property to the given value.
//
// If the file already had at least one property with the given key, then the
// last one will be set to value and the properties defined earlier in the
// file will be removed, along with their comments. Otherwise, the property
// will be appended to the end of the file.
func (f *File) Set(key, value string) {
	wrote := false
	for i := len(f.properties) - 1; i >= 0; i-- {
		p := &f.properties[i]
		if p.key != key {
			continue
		}
		if wrote {
			f.removeAt(i)
		} else {
			p.value = value
			wrote = true
		}
	}
	if !wrote {
		f.properties = append(f.properties, property{key: key, value: value})
	}
}

// Delete deletes any property with the given key. Comments attached to a
// deleted property are removed with it.
func (f *File) Delete(key string) {
	n := 0
	for _, p := range f.properties {
		if p.key != key {
			f.properties[n] = p
			n++
		}
	}
	for i := n; i < len(f.properties); i++ {
		// Zero out for garbage collection.
		f.properties[i] = property{}
	}
	f.properties = f.properties[:n]
}

func (f *File) removeAt(i int) {
	copy(f.properties[i:], f.properties[i+1:])
	// Zero out truncated element for garbage collection.
	f.properties[len(f.properties)-1] = property{}
	f.properties = f.properties[:len(f.properties)-1]
}

// Encode writes the file's comments and properties to w. It does not call
// w.Finish. Comments are escaped so that parsing the output yields the same
// comment text.
func (f *File) Encode(w *Writer) error {
	if f == nil {
		return nil
	}
	for _, p := range f.properties {
		for _, comment := range p.comments {
			if err := w.WriteComment(escapeComment(comment)); err != nil {
				return err
			}
		}
		if err := w.Write(p.key, p.value); err != nil {
			return err
		}
	}
	for _, comment := range f.trailingComments {
		if err := w.WriteComment(escapeComment(comment)); err != nil {
			return err
		}
	}
	return nil
}

// MarshalText serializes the file as ISO-8859-1 .properties text with the
// default Writer settings, including comments from the original file.
func (f *File) MarshalText() ([]byte, error) {
	if f == nil {
		return nil, nil
	}
	buf := new(bytes.Buffer)
	w := NewWriter(buf)
	if err := f.Encode(w); err != nil {
		return nil, err
	}
	if err := w.Finish(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalText parses ISO-8859-1 .properties text with default options,
// replacing any properties in f.
func (f *File) UnmarshalText(data []byte) error {
	parsed, err := Parse(bytes.NewReader(data), nil)
	if err != nil {
		return err
	}
	*f = *parsed
	return nil
}
