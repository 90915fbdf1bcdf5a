// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package charset

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

const initialWriteBufferSize = 256

// UnmappableError is returned by a Writer when a character cannot be
// represented in the Writer's encoding, even as a \u escape.
type UnmappableError struct {
	Rune rune
	Err  error // error reported by the encoder, if any
}

func (e *UnmappableError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("charset: cannot encode %U", e.Rune)
	}
	return fmt.Sprintf("charset: cannot encode %U: %v", e.Rune, e.Err)
}

func (e *UnmappableError) Unwrap() error {
	return e.Err
}

// A Writer encodes text into an io.Writer. Characters that the encoding
// cannot represent are written as the ASCII text \u followed by at least four
// lowercase hexadecimal digits of the character's code point.
//
// Every call to WriteString or Write passes all of its encoded bytes to the
// underlying writer before returning. Finish must be called exactly once
// after the last write so that encodings with trailing state (like
// ISO-2022-JP) can emit their final bytes.
type Writer struct {
	w        io.Writer
	t        transform.Transformer
	buf      []byte
	pending  []byte // incomplete UTF-8 sequence held until more text arrives
	finished bool
}

// NewWriter returns a Writer that encodes text with enc and writes it to w.
// A nil enc is treated as Default.
func NewWriter(w io.Writer, enc encoding.Encoding) *Writer {
	if w == nil {
		panic("charset.NewWriter(nil, ...)")
	}
	if enc == nil {
		enc = Default
	}
	return &Writer{
		w:   w,
		t:   enc.NewEncoder(),
		buf: make([]byte, 0, initialWriteBufferSize),
	}
}

// WriteString encodes s and writes the result to the underlying writer.
func (w *Writer) WriteString(s string) error {
	src := []byte(s)
	if len(w.pending) > 0 {
		src = append(w.pending, src...)
		w.pending = nil
	}
	if err := w.encode(src, false, true); err != nil {
		return err
	}
	return w.flushBuffer()
}

// Write encodes p as UTF-8 text. It implements io.Writer.
func (w *Writer) Write(p []byte) (n int, err error) {
	if err := w.WriteString(string(p)); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Flush writes any buffered bytes and then flushes the underlying writer if it
// has a Flush method (like *bufio.Writer).
func (w *Writer) Flush() error {
	if err := w.flushBuffer(); err != nil {
		return err
	}
	if f, ok := w.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// Finish completes the encoding and flushes the underlying writer. Any
// character that cannot be encoded at this point is an *UnmappableError.
// After the first call to Finish, it returns an error.
func (w *Writer) Finish() error {
	if w.finished {
		return errors.New("charset.Writer.Finish called multiple times")
	}
	w.finished = true
	src := w.pending
	w.pending = nil
	if err := w.encode(src, true, false); err != nil {
		return err
	}
	return w.Flush()
}

// encode runs the encoder over src, appending to w.buf. If escape is true,
// unmappable characters are replaced by a \u escape. Otherwise they are an
// error.
func (w *Writer) encode(src []byte, atEOF bool, escape bool) error {
	for {
		nDst, nSrc, err := w.t.Transform(w.buf[len(w.buf):cap(w.buf)], src, atEOF)
		w.buf = w.buf[:len(w.buf)+nDst]
		src = src[nSrc:]
		switch {
		case err == nil:
			return nil
		case errors.Is(err, transform.ErrShortDst):
			w.buf = slices.Grow(w.buf, cap(w.buf))
		case errors.Is(err, transform.ErrShortSrc) && !atEOF:
			w.pending = append([]byte(nil), src...)
			return nil
		case len(src) == 0:
			return fmt.Errorf("charset: encode: %w", err)
		default:
			r, size := utf8.DecodeRune(src)
			if !escape {
				return &UnmappableError{Rune: r, Err: err}
			}
			fallback := fmt.Appendf(nil, `\u%04x`, r)
			if ferr := w.encode(fallback, false, false); ferr != nil {
				return fmt.Errorf("escape %U: %w", r, ferr)
			}
			src = src[size:]
		}
	}
}

func (w *Writer) flushBuffer() error {
	if len(w.buf) == 0 {
		return nil
	}
	_, err := w.w.Write(w.buf)
	w.buf = w.buf[:0]
	return err
}
