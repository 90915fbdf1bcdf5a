// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package properties

import (
	"fmt"
	"io"
	"iter"

	"github.com/yourbase/javaprops/charset"
	"golang.org/x/text/encoding"
)

// A Line is a record read from a .properties file.
type Line struct {
	// Number is the 1-based number of the first physical line of the record.
	Number  int
	Content LineContent
}

func (l Line) String() string {
	return fmt.Sprintf("line %d: %v", l.Number, l.Content)
}

// LineContent is either a Comment or a KeyValue.
type LineContent interface {
	fmt.Stringer
	isLineContent()
}

// Comment is the text of a comment line, without the comment character and
// surrounding whitespace.
type Comment struct {
	Text string
}

func (Comment) isLineContent() {}

func (c Comment) String() string {
	return fmt.Sprintf("Comment(%q)", c.Text)
}

// KeyValue is a property.
type KeyValue struct {
	Key   string
	Value string
}

func (KeyValue) isLineContent() {}

func (kv KeyValue) String() string {
	return fmt.Sprintf("KeyValue(%q, %q)", kv.Key, kv.Value)
}

// A Reader reads records from a .properties file. Blank lines are skipped.
//
// Once Next returns an error other than io.EOF, the result of further calls
// is undefined: callers must stop reading.
type Reader struct {
	lines logicalLines
}

// NewReader returns a Reader that reads ISO-8859-1 text from r.
func NewReader(r io.Reader) *Reader {
	return NewReaderEncoding(r, charset.Default)
}

// NewReaderEncoding returns a Reader that reads text in the given encoding
// from r. The .properties format is defined in ISO-8859-1, so most callers
// should use NewReader.
func NewReaderEncoding(r io.Reader, enc encoding.Encoding) *Reader {
	if r == nil {
		panic("properties.NewReaderEncoding(nil, ...)")
	}
	nl := &naturalLines{rs: charset.NewDecoder(r, enc)}
	return &Reader{lines: logicalLines{src: nl}}
}

// Next returns the next record. It returns io.EOF after the last record.
// Other errors are of type *Error.
func (r *Reader) Next() (Line, error) {
	for {
		ll, err := r.lines.next()
		if err != nil {
			return Line{}, err
		}
		tok := parseLine(ll.text)
		switch tok.kind {
		case commentToken:
			text, err := unescape(tok.comment, ll.number)
			if err != nil {
				return Line{}, err
			}
			return Line{Number: ll.number, Content: Comment{Text: text}}, nil
		case keyValueToken:
			key, err := unescape(tok.key, ll.number)
			if err != nil {
				return Line{}, err
			}
			value, err := unescape(tok.value, ll.number)
			if err != nil {
				return Line{}, err
			}
			return Line{Number: ll.number, Content: KeyValue{Key: key, Value: value}}, nil
		}
	}
}

// All returns an iterator over the remaining records. Iteration stops after
// the first error, which is yielded with a zero Line.
func (r *Reader) All() iter.Seq2[Line, error] {
	return func(yield func(Line, error) bool) {
		for {
			line, err := r.Next()
			if err == io.EOF {
				return
			}
			if !yield(line, err) || err != nil {
				return
			}
		}
	}
}

// ReadInto calls f for each property, skipping comments. It stops at the
// first error and returns it; f may already have been called for earlier
// properties.
func (r *Reader) ReadInto(f func(key, value string)) error {
	for line, err := range r.All() {
		if err != nil {
			return err
		}
		if kv, ok := line.Content.(KeyValue); ok {
			f(kv.Key, kv.Value)
		}
	}
	return nil
}

// Read reads an ISO-8859-1 .properties file into a map. If a key appears
// more than once, the last value wins.
func Read(r io.Reader) (map[string]string, error) {
	m := make(map[string]string)
	err := NewReader(r).ReadInto(func(key, value string) {
		m[key] = value
	})
	return m, err
}
