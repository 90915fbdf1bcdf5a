// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package properties

import (
	"fmt"
	"os"
	"sort"
)

// FileSet is a list of files to obtain properties from in descending order
// of precedence.
type FileSet []*File

// ReadFiles parses the files at the given paths and returns a FileSet.
// If the returned error is nil, the returned file set's length will be the
// same as the number of arguments. ReadFiles will stop on the first error,
// but ignores missing file errors, instead filling the corresponding element
// of the set with a nil *File.
func ReadFiles(opts *ParseOptions, paths ...string) (FileSet, error) {
	fset := make(FileSet, 0, len(paths))
	for _, p := range paths {
		f, err := os.Open(p)
		if os.IsNotExist(err) {
			fset = append(fset, nil)
			continue
		}
		if err != nil {
			return fset, fmt.Errorf("read properties files: %w", err)
		}
		parsed, err := Parse(f, opts)
		f.Close() // Close errors irrelevant.
		if err != nil {
			return fset, fmt.Errorf("read properties files: %s: %w", p, err)
		}
		fset = append(fset, parsed)
	}
	return fset, nil
}

// Get returns the value of the key from the first file that has it, or the
// empty string if no file does.
func (fset FileSet) Get(key string) string {
	v, _ := fset.Lookup(key)
	return v
}

// Lookup returns the value of the key from the first file that has it and
// whether any file does.
func (fset FileSet) Lookup(key string) (_ string, ok bool) {
	for _, f := range fset {
		if v, ok := f.Lookup(key); ok {
			return v, true
		}
	}
	return "", false
}

// Keys returns the sorted keys set in any file.
func (fset FileSet) Keys() []string {
	m := fset.Map()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Map merges the files into a single map, with earlier files taking
// precedence.
func (fset FileSet) Map() map[string]string {
	merged := make(map[string]string)
	for i := len(fset) - 1; i >= 0; i-- {
		for k, v := range fset[i].Map() {
			merged[k] = v
		}
	}
	return merged
}

// Set sets the property on the first file and deletes the property in all
// subsequent files. Set will panic if len(fset) == 0.
//
// If fset[0] == nil, Set allocates a new File. Any other nil files in the set
// will be ignored.
func (fset FileSet) Set(key, value string) {
	if fset[0] == nil {
		fset[0] = new(File)
	}
	fset[0].Set(key, value)
	fset[1:].Delete(key)
}

// Delete deletes any property with the given key. Nil elements of the set
// are ignored.
func (fset FileSet) Delete(key string) {
	for _, f := range fset {
		if f != nil {
			f.Delete(key)
		}
	}
}
