// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

// Package envvar provides functions to read environment variables for
// configuration.
package envvar

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Get returns the value of the given environment variable. If it is empty or
// unset, it returns the default value.
func Get(key string, defaultValue string) string {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	return v
}

// Bool returns the value of a boolean environment variable. If it is unset or
// not one of the strings 1, t, T, TRUE, true, or True, then it returns false.
func Bool(key string) bool {
	v := os.Getenv(key)
	if v == "" {
		return false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false
	}
	return b
}

// OneOf returns the value of an environment variable that must be one of the
// allowed values, compared case-insensitively. If it is empty or unset, it
// returns the default value. The returned value is the matching element of
// allowed.
func OneOf(key string, defaultValue string, allowed ...string) (string, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return a, nil
		}
	}
	return "", fmt.Errorf("%s=%q: must be one of %s", key, v, strings.Join(allowed, ", "))
}
