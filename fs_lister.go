// fs_lister.go: Default filesystem enumeration of candidate shared libraries
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package justplug

import (
	"io/fs"
	"os"
	"path/filepath"
)

// libraryExtensions are the filename suffixes treated as shared libraries.
var libraryExtensions = map[string]bool{
	".so":    true,
	".dylib": true,
	".dll":   true,
}

// osLister walks the real filesystem with os and path/filepath. Results are
// absolute paths in lexical order.
type osLister struct{}

// NewOSLister returns the default LibraryLister backed by the local
// filesystem.
func NewOSLister() LibraryLister {
	return osLister{}
}

func (osLister) List(dir string, recursive bool) ([]string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, NewListFilesError(dir, err)
	}

	if !recursive {
		return listFlat(abs)
	}
	return listRecursive(abs)
}

func listFlat(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, NewListFilesError(dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if libraryExtensions[filepath.Ext(entry.Name())] {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	return paths, nil
}

// listRecursive tolerates unreadable subtrees: it keeps walking, collects
// what it can, and reports the first error alongside the partial results.
func listRecursive(dir string) ([]string, error) {
	var paths []string
	var firstErr error

	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if libraryExtensions[filepath.Ext(path)] {
			paths = append(paths, path)
		}
		return nil
	})
	if walkErr != nil && firstErr == nil {
		firstErr = walkErr
	}

	if firstErr != nil {
		return paths, NewListFilesError(dir, firstErr)
	}
	return paths, nil
}
