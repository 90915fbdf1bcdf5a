// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

// javaprops reads, queries and converts Java .properties files.
package main

import (
	"os"

	"github.com/yourbase/javaprops/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
