// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package charset

import (
	"errors"
	"io"
	"slices"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

const (
	initialInputSize  = 64
	initialOutputSize = 64

	maxConsecutiveEmptyReads = 100
)

// ErrInvalidUnreadRune is returned by Decoder.UnreadRune when the previous
// operation was not a successful ReadRune.
var ErrInvalidUnreadRune = errors.New("charset: invalid use of UnreadRune")

// A Decoder reads runes from an io.Reader of bytes in a fixed encoding. It
// is a single-pass sequence: once ReadRune returns io.EOF it keeps
// returning io.EOF. Once it returns any other error, the result of further
// calls is undefined.
//
// Decoder implements io.RuneScanner.
type Decoder struct {
	r io.Reader
	t transform.Transformer

	in    []byte // undecoded input
	out   []byte // scratch space for the transformer; doubled as needed
	runes []rune // decoded runes not yet returned
	pos   int    // index of the next rune to return

	short     bool  // transformer asked for more input
	eof       bool  // r returned io.EOF
	done      bool  // all input decoded
	readErr   error // deferred error from r
	canUnread bool
}

// NewDecoder returns a Decoder that reads bytes from r and decodes them with
// enc. A nil enc is treated as Default.
func NewDecoder(r io.Reader, enc encoding.Encoding) *Decoder {
	if r == nil {
		panic("charset.NewDecoder(nil, ...)")
	}
	if enc == nil {
		enc = Default
	}
	return &Decoder{
		r:   r,
		t:   enc.NewDecoder(),
		in:  make([]byte, 0, initialInputSize),
		out: make([]byte, initialOutputSize),
	}
}

// ReadRune returns the next decoded rune and its size when encoded as UTF-8.
// It returns io.EOF after the last rune. Errors from the underlying reader
// are returned after every rune decoded before the error has been returned.
func (d *Decoder) ReadRune() (r rune, size int, err error) {
	d.canUnread = false
	if d.pos >= len(d.runes) {
		if err := d.fill(); err != nil {
			return 0, 0, err
		}
	}
	r = d.runes[d.pos]
	d.pos++
	d.canUnread = true
	return r, utf8.RuneLen(r), nil
}

// UnreadRune causes the next call to ReadRune to return the last rune read.
func (d *Decoder) UnreadRune() error {
	if !d.canUnread || d.pos == 0 {
		return ErrInvalidUnreadRune
	}
	d.pos--
	d.canUnread = false
	return nil
}

// fill decodes at least one more rune into d.runes, discarding the runes
// already returned.
func (d *Decoder) fill() error {
	d.runes = d.runes[:0]
	d.pos = 0
	emptyReads := 0
	for len(d.runes) == 0 {
		if d.done {
			if d.readErr != nil {
				return d.readErr
			}
			return io.EOF
		}
		if (len(d.in) == 0 || d.short) && !d.eof {
			if d.readErr != nil {
				return d.readErr
			}
			if len(d.in) == cap(d.in) {
				d.in = slices.Grow(d.in, cap(d.in))
			}
			n, err := d.r.Read(d.in[len(d.in):cap(d.in)])
			d.in = d.in[:len(d.in)+n]
			switch {
			case err == io.EOF:
				d.eof = true
			case err != nil:
				d.readErr = err
				if n == 0 {
					return err
				}
			case n == 0:
				emptyReads++
				if emptyReads >= maxConsecutiveEmptyReads {
					d.readErr = io.ErrNoProgress
					return d.readErr
				}
				continue
			}
			emptyReads = 0
			d.short = false
		}

		nDst, nSrc, err := d.t.Transform(d.out, d.in, d.eof)
		for b := d.out[:nDst]; len(b) > 0; {
			c, size := utf8.DecodeRune(b)
			d.runes = append(d.runes, c)
			b = b[size:]
		}
		d.in = d.in[:copy(d.in, d.in[nSrc:])]
		switch {
		case err == nil:
			if d.eof && len(d.in) == 0 {
				d.done = true
			}
		case errors.Is(err, transform.ErrShortDst):
			d.out = make([]byte, 2*len(d.out))
		case errors.Is(err, transform.ErrShortSrc):
			if d.eof {
				d.readErr = io.ErrUnexpectedEOF
				d.done = true
			}
			d.short = true
		default:
			d.readErr = err
			d.done = true
		}
	}
	return nil
}
