// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package cli

import (
	"io"

	"zombiezen.com/go/log"
)

// newLogger returns a logger that writes one line per entry to w. Debug
// entries are dropped unless debug is true.
func newLogger(w io.Writer, debug bool) *log.LevelFilter {
	l := &log.LevelFilter{
		Min:    log.Info,
		Output: log.New(w, "javaprops: ", log.ShowLevel, nil),
	}
	setDebug(l, debug)
	return l
}

func setDebug(l *log.LevelFilter, debug bool) {
	if debug {
		l.Min = log.Debug
	} else {
		l.Min = log.Info
	}
}
