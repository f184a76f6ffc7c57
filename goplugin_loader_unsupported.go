// goplugin_loader_unsupported.go: GoPluginLoader stub for platforms without
// Go plugin support
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

//go:build !linux && !darwin && !freebsd

package justplug

import (
	"fmt"
	"runtime"
)

// GoPluginLoader is unavailable on this platform; Open always fails. Hosts
// on unsupported platforms must inject their own LibraryLoader.
type GoPluginLoader struct{}

// NewGoPluginLoader returns the stub loader for unsupported platforms.
func NewGoPluginLoader() LibraryLoader {
	return GoPluginLoader{}
}

// Open always fails on this platform.
func (GoPluginLoader) Open(path string) (SharedLibrary, error) {
	return nil, NewLibraryOpenError(path,
		fmt.Errorf("go plugins are not supported on %s/%s", runtime.GOOS, runtime.GOARCH))
}
