// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package properties

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/yourbase/javaprops/charset"
	"golang.org/x/text/encoding/unicode"
)

func readNaturalLines(t *testing.T, input string) []string {
	t.Helper()
	nl := &naturalLines{rs: charset.NewDecoder(strings.NewReader(input), unicode.UTF8)}
	var got []string
	for {
		line, err := nl.next()
		if err == io.EOF {
			return got
		}
		if err != nil {
			t.Fatalf("next() #%d: %v", len(got)+1, err)
		}
		if want := len(got) + 1; line.number != want {
			t.Errorf("line %q number = %d; want %d", line.text, line.number, want)
		}
		got = append(got, line.text)
	}
}

func TestNaturalLines(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{""}},
		{"a", []string{"a"}},
		{"a\n", []string{"a", ""}},
		{"\n", []string{"", ""}},
		{"\r", []string{"", ""}},
		{"\r\n", []string{"", ""}},
		{"\n\r", []string{"", "", ""}},
		{"\r\r", []string{"", "", ""}},
		{"\n\n", []string{"", "", ""}},
		{"a\nb\rc\r\nd", []string{"a", "b", "c", "d"}},
		{"a\r\rb", []string{"a", "", "b"}},
		{"日本語\nb", []string{"日本語", "b"}},
	}
	for _, test := range tests {
		got := readNaturalLines(t, test.input)
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("natural lines of %q (-want +got):\n%s", test.input, diff)
		}
	}
}

func TestNaturalLinesReconstruct(t *testing.T) {
	// Joining the lines with any terminator and splitting again is stable.
	inputs := []string{
		"",
		"a=b\nc=d\\\ne=f\ng=h\r#comment1\r\n#comment2\\\ni=j\\\n#comment3\n \n#comment4",
		"\r\n\r\n",
		"x\r",
	}
	for _, input := range inputs {
		lines := readNaturalLines(t, input)
		for _, term := range []string{"\n", "\r", "\r\n"} {
			got := readNaturalLines(t, strings.Join(lines, term))
			if diff := cmp.Diff(lines, got); diff != "" {
				t.Errorf("natural lines of %q joined with %q (-want +got):\n%s", input, term, diff)
			}
		}
	}
}

// noUnreadScanner is an io.RuneScanner that cannot push runes back.
type noUnreadScanner struct {
	*strings.Reader
}

var errNoUnread = errors.New("cannot unread")

func (noUnreadScanner) UnreadRune() error {
	return errNoUnread
}

func TestNaturalLinesUnreadError(t *testing.T) {
	nl := &naturalLines{rs: noUnreadScanner{strings.NewReader("a\rb")}}
	line, err := nl.next()
	if err != nil {
		t.Fatal(err)
	}
	if line.text != "a" || line.number != 1 {
		t.Errorf("first line = %d %q; want 1 \"a\"", line.number, line.text)
	}
	_, err = nl.next()
	var perr *Error
	if !errors.As(err, &perr) || perr.Kind != KindTransport || perr.Line != 2 || !errors.Is(err, errNoUnread) {
		t.Errorf("second next() = _, %v; want transport error on line 2 wrapping %v", err, errNoUnread)
	}
}

// sliceLines is a naturalLineSource over fixed lines.
type sliceLines struct {
	lines []string
	i     int
}

func (s *sliceLines) next() (naturalLine, error) {
	if s.i >= len(s.lines) {
		return naturalLine{}, io.EOF
	}
	s.i++
	return naturalLine{number: s.i, text: s.lines[s.i-1]}, nil
}

func joinLogicalLines(t *testing.T, lines []string) []logicalLine {
	t.Helper()
	ll := &logicalLines{src: &sliceLines{lines: lines}}
	var got []logicalLine
	for {
		line, err := ll.next()
		if err == io.EOF {
			return got
		}
		if err != nil {
			t.Fatalf("next() #%d: %v", len(got)+1, err)
		}
		got = append(got, line)
	}
}

func TestLogicalLines(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  []logicalLine
	}{
		{
			name:  "Empty",
			lines: []string{""},
			want:  []logicalLine{{1, ""}},
		},
		{
			name:  "Simple",
			lines: []string{"foo", "bar"},
			want:  []logicalLine{{1, "foo"}, {2, "bar"}},
		},
		{
			name:  "Continuation",
			lines: []string{"foo\\", "bar"},
			want:  []logicalLine{{1, "foobar"}},
		},
		{
			name:  "ContinuationTrimsLeadingWhitespace",
			lines: []string{"foo\\", " \t\fbar"},
			want:  []logicalLine{{1, "foobar"}},
		},
		{
			name:  "EscapedBackslash",
			lines: []string{"foo\\\\", "bar"},
			want:  []logicalLine{{1, "foo\\\\"}, {2, "bar"}},
		},
		{
			name:  "ThreeBackslashes",
			lines: []string{"foo\\\\\\", "bar"},
			want:  []logicalLine{{1, "foo\\\\bar"}},
		},
		{
			name:  "MultipleContinuations",
			lines: []string{"a\\", "b\\", "c", "d"},
			want:  []logicalLine{{1, "abc"}, {4, "d"}},
		},
		{
			name:  "CommentDoesNotContinue",
			lines: []string{"#foo\\", " bar"},
			want:  []logicalLine{{1, "#foo\\"}, {2, " bar"}},
		},
		{
			name:  "IndentedCommentDoesNotContinue",
			lines: []string{" !foo\\", "bar"},
			want:  []logicalLine{{1, " !foo\\"}, {2, "bar"}},
		},
		{
			name:  "ContinuationIntoComment",
			lines: []string{"foo\\", "# bar"},
			want:  []logicalLine{{1, "foo# bar"}},
		},
		{
			name:  "EOFDuringContinuation",
			lines: []string{"a", "foo\\"},
			want:  []logicalLine{{1, "a"}, {2, "foo"}},
		},
		{
			name:  "BlankContinuation",
			lines: []string{"foo\\", "   ", "bar"},
			want:  []logicalLine{{1, "foo"}, {3, "bar"}},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := joinLogicalLines(t, test.lines)
			diff := cmp.Diff(test.want, got, cmp.AllowUnexported(logicalLine{}))
			if diff != "" {
				t.Errorf("logical lines (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLogicalLinesIdempotent(t *testing.T) {
	inputs := [][]string{
		{"foo\\", "bar"},
		{"#foo\\", " bar"},
		{"foo\\", "# bar"},
		{"a\\", "  b\\", "c", "d\\\\"},
	}
	for _, input := range inputs {
		first := joinLogicalLines(t, input)
		texts := make([]string, 0, len(first))
		for _, line := range first {
			texts = append(texts, line.text)
		}
		second := joinLogicalLines(t, texts)
		for i := range min(len(first), len(second)) {
			second[i].number = first[i].number
		}
		if diff := cmp.Diff(first, second, cmp.AllowUnexported(logicalLine{})); diff != "" {
			t.Errorf("logical lines of %q joined twice (-once +twice):\n%s", input, diff)
		}
	}
}

func TestTrailingBackslashes(t *testing.T) {
	tests := []struct {
		s    string
		want int
	}{
		{"", 0},
		{"x", 0},
		{"\\", 1},
		{"x\\", 1},
		{"\\\\", 2},
		{"x\\\\", 2},
		{"\\x\\\\\\", 3},
	}
	for _, test := range tests {
		if got := trailingBackslashes(test.s); got != test.want {
			t.Errorf("trailingBackslashes(%q) = %d; want %d", test.s, got, test.want)
		}
	}
}
