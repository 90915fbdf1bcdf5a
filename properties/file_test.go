// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package properties

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"golang.org/x/text/encoding/unicode"
)

func TestNilFile(t *testing.T) {
	f := (*File)(nil)
	if got := f.Get("foo"); got != "" {
		t.Errorf("Get(...) = %q; want empty", got)
	}
	if got, ok := f.Lookup("foo"); ok {
		t.Errorf("Lookup(...) = %q, true; want _, false", got)
	}
	if got := f.Find("foo"); len(got) > 0 {
		t.Errorf("Find(...) = %q; want empty", got)
	}
	if got := f.Keys(); len(got) > 0 {
		t.Errorf("Keys() = %q; want empty", got)
	}
	if got := f.Map(); len(got) > 0 {
		t.Errorf("Map() = %q; want empty", got)
	}
	if got, err := f.MarshalText(); len(got) > 0 || err != nil {
		t.Errorf("MarshalText() = %q, %v; want \"\", <nil>", got, err)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		opts     *ParseOptions
		wantKeys []string
		wantMap  map[string]string
	}{
		{
			name:     "Empty",
			source:   "",
			wantKeys: []string{},
			wantMap:  map[string]string{},
		},
		{
			name:     "Order",
			source:   "zebra=1\nalpha=2\nzebra=3\n",
			wantKeys: []string{"zebra", "alpha"},
			wantMap:  map[string]string{"zebra": "3", "alpha": "2"},
		},
		{
			name:     "Comments",
			source:   "# hello\n! world\nkey value\n",
			wantKeys: []string{"key"},
			wantMap:  map[string]string{"key": "value"},
		},
		{
			name:     "NormalizeKey",
			source:   "Foo=bar\nFOO=baz\n",
			opts:     &ParseOptions{NormalizeKey: strings.ToLower},
			wantKeys: []string{"foo"},
			wantMap:  map[string]string{"foo": "baz"},
		},
		{
			name:     "Encoding",
			source:   "greeting=こんにちは\n",
			opts:     &ParseOptions{Encoding: unicode.UTF8},
			wantKeys: []string{"greeting"},
			wantMap:  map[string]string{"greeting": "こんにちは"},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f, err := Parse(strings.NewReader(test.source), test.opts)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(test.wantKeys, f.Keys(), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Keys() (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(test.wantMap, f.Map(), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Map() (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseError(t *testing.T) {
	f, err := Parse(strings.NewReader("a=b\nc=\\uzzzz\n"), nil)
	var perr *Error
	if !errors.As(err, &perr) || perr.Kind != KindMalformedEscape || perr.Line != 2 {
		t.Errorf("Parse(...) error = %v; want malformed escape on line 2", err)
	}
	if got := f.Get("a"); got != "b" {
		t.Errorf("partial file Get(%q) = %q; want %q", "a", got, "b")
	}
}

func TestAccess(t *testing.T) {
	f, err := Parse(strings.NewReader("foo=bar\nbaz=quux\nfoo=xyzzy\nempty=\n"), nil)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		key      string
		wantGet  string
		wantOK   bool
		wantFind []string
	}{
		{key: "foo", wantGet: "xyzzy", wantOK: true, wantFind: []string{"bar", "xyzzy"}},
		{key: "baz", wantGet: "quux", wantOK: true, wantFind: []string{"quux"}},
		{key: "empty", wantGet: "", wantOK: true, wantFind: []string{""}},
		{key: "bork", wantGet: "", wantOK: false, wantFind: nil},
	}
	for _, test := range tests {
		if got := f.Get(test.key); got != test.wantGet {
			t.Errorf("Get(%q) = %q; want %q", test.key, got, test.wantGet)
		}
		if got, ok := f.Lookup(test.key); got != test.wantGet || ok != test.wantOK {
			t.Errorf("Lookup(%q) = %q, %t; want %q, %t", test.key, got, ok, test.wantGet, test.wantOK)
		}
		if diff := cmp.Diff(test.wantFind, f.Find(test.key), cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("Find(%q) (-want +got):\n%s", test.key, diff)
		}
	}
}

func TestSet(t *testing.T) {
	tests := []struct {
		name   string
		source string
		key    string
		value  string
		want   string
	}{
		{
			name:  "AddToEmpty",
			key:   "foo",
			value: "bar",
			want:  "foo=bar\n",
		},
		{
			name:   "Overwrite",
			source: "foo=bar\n",
			key:    "foo",
			value:  "xyzzy",
			want:   "foo=xyzzy\n",
		},
		{
			name:   "DeletePrevious",
			source: "# Comment 1\nfoo=bar\n# Comment 2\nfoo=baz\n",
			key:    "foo",
			value:  "quux",
			want:   "# Comment 2\nfoo=quux\n",
		},
		{
			name:   "Append",
			source: "foo=bar\n",
			key:    "baz",
			value:  "quux",
			want:   "foo=bar\nbaz=quux\n",
		},
		{
			name:   "AppendBeforeTrailingComments",
			source: "foo=bar\n! the end\n",
			key:    "baz",
			value:  "a b",
			want:   "foo=bar\nbaz=a\\ b\n# the end\n",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f := new(File)
			if test.source != "" {
				var err error
				f, err = Parse(strings.NewReader(test.source), nil)
				if err != nil {
					t.Fatal(err)
				}
			}
			f.Set(test.key, test.value)
			got, err := f.MarshalText()
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(test.want, string(got)); diff != "" {
				t.Errorf("MarshalText (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDelete(t *testing.T) {
	f, err := Parse(strings.NewReader("# one\nfoo=1\n# two\nbar=2\n# three\nfoo=3\n"), nil)
	if err != nil {
		t.Fatal(err)
	}
	f.Delete("foo")
	got, err := f.MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff("# two\nbar=2\n", string(got)); diff != "" {
		t.Errorf("MarshalText (-want +got):\n%s", diff)
	}
	f.Delete("nonexistent")
	if diff := cmp.Diff([]string{"bar"}, f.Keys()); diff != "" {
		t.Errorf("Keys() after deleting missing key (-want +got):\n%s", diff)
	}
}

func TestEncode(t *testing.T) {
	f, err := Parse(strings.NewReader("# hello\na=b\n"), nil)
	if err != nil {
		t.Fatal(err)
	}
	buf := new(strings.Builder)
	w := NewWriterEncoding(buf, unicode.UTF8)
	w.SetLineEnding(CRLF)
	if err := w.SetCommentPrefix("!"); err != nil {
		t.Fatal(err)
	}
	if err := w.SetSeparator(": "); err != nil {
		t.Fatal(err)
	}
	f.Set("name", "日本")
	if err := f.Encode(w); err != nil {
		t.Fatal(err)
	}
	if err := w.Finish(); err != nil {
		t.Fatal(err)
	}
	const want = "!hello\r\na: b\r\nname: 日本\r\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("Encode (-want +got):\n%s", diff)
	}
}

func TestEncodeCommentsRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "EscapedLineFeed",
			source: "# note\\nsecret=1\nk=v\n",
			want:   "# note\\nsecret=1\nk=v\n",
		},
		{
			name:   "EscapedBackslash",
			source: "k=v\n# a\\\\b\n",
			want:   "k=v\n# a\\\\b\n",
		},
		{
			name:   "EscapedWhitespace",
			source: "#\\u0020padded\\t\nk=v\n",
			want:   "# \\u0020padded\\t\nk=v\n",
		},
		{
			name:   "OtherEscapesResolved",
			source: "# caf\\u00e9 \\:\nk=v\n",
			want:   "# caf\xe9 :\nk=v\n",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f, err := Parse(strings.NewReader(test.source), nil)
			if err != nil {
				t.Fatal(err)
			}
			got, err := f.MarshalText()
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(test.want, string(got)); diff != "" {
				t.Errorf("MarshalText (-want +got):\n%s", diff)
			}

			// Parsing the output again gives the same file.
			reparsed, err := Parse(strings.NewReader(string(got)), nil)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff([]string{"k"}, reparsed.Keys()); diff != "" {
				t.Errorf("Keys() after round trip (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(f, reparsed, cmp.AllowUnexported(File{}, property{})); diff != "" {
				t.Errorf("file after round trip (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUnmarshalText(t *testing.T) {
	f := new(File)
	f.Set("old", "value")
	if err := f.UnmarshalText([]byte("new=caf\xe9\n")); err != nil {
		t.Fatal(err)
	}
	want := map[string]string{"new": "café"}
	if diff := cmp.Diff(want, f.Map()); diff != "" {
		t.Errorf("Map() after UnmarshalText (-want +got):\n%s", diff)
	}
	if err := f.UnmarshalText([]byte("bad=\\u")); err == nil {
		t.Error("UnmarshalText with bad escape did not return an error")
	}
}
