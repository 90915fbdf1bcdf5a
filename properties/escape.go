// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package properties

import (
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// Escape returns s with every character that has a special meaning in a key
// or value replaced by an escape sequence, so that Unescape(Escape(s)) == s
// for any valid UTF-8 string s. Characters the output encoding cannot
// represent are not escaped here; Writer handles those.
func Escape(s string) string {
	sb := new(strings.Builder)
	sb.Grow(len(s))
	for _, c := range s {
		switch c {
		case '\\':
			sb.WriteString(`\\`)
		case ' ':
			sb.WriteString(`\ `)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		case '\n':
			sb.WriteString(`\n`)
		case '\f':
			sb.WriteString(`\f`)
		case ':', '=', '!', '#':
			sb.WriteByte('\\')
			sb.WriteRune(c)
		default:
			if c < ' ' {
				const hexDigits = "0123456789abcdef"
				sb.WriteString(`\u00`)
				sb.WriteByte(hexDigits[c>>4])
				sb.WriteByte(hexDigits[c&0xf])
				continue
			}
			sb.WriteRune(c)
		}
	}
	return sb.String()
}

// Unescape resolves the escape sequences in a raw key, value or comment.
// The returned error is an *Error of kind KindMalformedEscape.
func Unescape(raw string) (string, error) {
	return unescape(raw, 0)
}

func unescape(s string, line int) (string, error) {
	if strings.IndexByte(s, '\\') == -1 {
		return s, nil
	}
	sb := new(strings.Builder)
	sb.Grow(len(s))
	for len(s) > 0 {
		i := strings.IndexByte(s, '\\')
		if i == -1 {
			sb.WriteString(s)
			break
		}
		sb.WriteString(s[:i])
		s = s[i+1:]
		if s == "" {
			// java.util.Properties reads a dangling backslash as U+0000.
			sb.WriteByte(0)
			break
		}
		c, size := utf8.DecodeRuneInString(s)
		s = s[size:]
		switch c {
		case 't':
			sb.WriteByte('\t')
		case 'n':
			sb.WriteByte('\n')
		case 'f':
			sb.WriteByte('\f')
		case 'r':
			sb.WriteByte('\r')
		case 'u':
			// Four characters, not four bytes.
			n := 0
			for k := 0; k < 4; k++ {
				if n >= len(s) {
					return "", malformedEscape("not enough digits", line, nil)
				}
				_, size := utf8.DecodeRuneInString(s[n:])
				n += size
			}
			v, err := strconv.ParseUint(s[:n], 16, 16)
			if err != nil {
				return "", malformedEscape("not hex", line, err)
			}
			r := rune(v)
			if utf16.IsSurrogate(r) {
				return "", malformedEscape("invalid character", line, nil)
			}
			sb.WriteRune(r)
			s = s[n:]
		default:
			sb.WriteRune(c)
		}
	}
	return sb.String(), nil
}

// escapeComment escapes comment text so that it reads back unchanged after a
// comment prefix: backslashes and line terminators are always escaped, and
// whitespace is escaped at either end, where the reader would trim it.
func escapeComment(s string) string {
	sb := new(strings.Builder)
	sb.Grow(len(s))
	for i, c := range s {
		switch c {
		case '\\':
			sb.WriteString(`\\`)
			continue
		case '\n':
			sb.WriteString(`\n`)
			continue
		case '\r':
			sb.WriteString(`\r`)
			continue
		}
		if (i == 0 || i+utf8.RuneLen(c) == len(s)) && c < utf8.RuneSelf && isWhitespace(byte(c)) {
			switch c {
			case '\t':
				sb.WriteString(`\t`)
			case '\f':
				sb.WriteString(`\f`)
			default:
				// "\ " would lose its space to trimming at the end of a line.
				sb.WriteString(`\u0020`)
			}
			continue
		}
		sb.WriteRune(c)
	}
	return sb.String()
}
