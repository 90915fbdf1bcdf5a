// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

/*
Package properties reads and writes Java .properties files.
See https://docs.oracle.com/javase/8/docs/api/java/util/Properties.html#load-java.io.Reader-.

Where the Java documentation is ambiguous or incomplete, this package follows
the behavior of java.util.Properties. Values are opaque strings: no types,
lists or nested structure are interpreted.

Reader and Writer stream records one line at a time. Read and Write convert a
whole file to and from a map. File keeps comments and ordering for
read-modify-write editing, and FileSet layers several files.

Syntax

A .properties file is text in ISO-8859-1 unless another encoding is chosen.
Lines are terminated by a carriage return, a line feed, or a carriage return
followed by a line feed.

A line whose first non-whitespace character is a hash ('#') or an
exclamation mark ('!') is a comment. Whitespace here is space, tab, form feed,
carriage return and line feed.

	# This is a comment
	! So is this

Any other line that is not blank holds a key and a value. The key starts at
the first non-whitespace character and ends at the first unescaped
whitespace, colon (':') or equals sign ('='). The separator is either a colon
or equals sign with optional whitespace on either side, or just whitespace.
The rest of the line is the value, including any trailing whitespace. A line
with only a key has an empty value.

	key=value
	key = value
	key:value
	key value

A line ending with an odd number of backslashes continues on the next line.
The final backslash is removed and leading whitespace on the next line is
skipped. Comment lines never continue.

	fruits = apple, banana, \
	         cherry

Keys, values and comments may contain escape sequences:

	\t      U+0009 horizontal tab
	\n      U+000A line feed
	\f      U+000C form feed
	\r      U+000D carriage return
	\uXXXX  UTF-16 code unit, written as exactly four hex digits

A backslash before any other character stands for that character, so "\:",
"\=", "\ " and "\\" can be used in keys. A backslash at the very end of the
input stands for U+0000, as in Java. A \u escape that names half of a
surrogate pair is rejected.

Writing

Writer escapes keys and values so that they read back unchanged. Characters
that the output encoding cannot represent are written as a \u escape of their
code point. For characters outside the Basic Multilingual Plane the escape has
five or six digits and does not read back as the same character. Comments
are written as-is after the comment prefix.
*/
package properties
