// types.go: Common data types for the plugin manager
//
// This file holds the shared data models used throughout the manager: the
// immutable plugin manifest snapshot, dependency declarations, and the
// memoized dependency status enumeration.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package justplug

import (
	"fmt"
	"strings"
)

// Dependency declares a required peer plugin and the minimum version the
// declaring plugin was built against.
type Dependency struct {
	Name       string `json:"name"`
	MinVersion string `json:"version"`
}

// PluginInfo is the manifest of a plugin, immutable after parse.
//
// Name is the unique registry key: non-empty, printable ASCII. The remaining
// string fields are informational. The api field of the manifest is consumed
// during parsing to gate API compatibility and is not retained here.
//
// Snapshots returned by Manager.Info are copies owned by the caller.
type PluginInfo struct {
	Name         string       `json:"name"`
	PrettyName   string       `json:"prettyName"`
	Version      string       `json:"version"`
	Author       string       `json:"author"`
	URL          string       `json:"url"`
	License      string       `json:"license"`
	Copyright    string       `json:"copyright"`
	Dependencies []Dependency `json:"dependencies"`
}

// String renders the manifest as a multi-line human-readable dump.
func (info PluginInfo) String() string {
	if info.Name == "" {
		return "Invalid PluginInfo"
	}

	var b strings.Builder
	b.WriteString("Plugin info:\n")
	fmt.Fprintf(&b, "Name: %s\n", info.Name)
	fmt.Fprintf(&b, "Pretty name: %s\n", info.PrettyName)
	fmt.Fprintf(&b, "Version: %s\n", info.Version)
	fmt.Fprintf(&b, "Author: %s\n", info.Author)
	fmt.Fprintf(&b, "Url: %s\n", info.URL)
	fmt.Fprintf(&b, "License: %s\n", info.License)
	fmt.Fprintf(&b, "Copyright: %s\n", info.Copyright)
	b.WriteString("Dependencies:\n")
	for _, dep := range info.Dependencies {
		fmt.Fprintf(&b, " - %s (%s)\n", dep.Name, dep.MinVersion)
	}
	return b.String()
}

// clone returns a deep copy so external holders never alias registry state.
func (info PluginInfo) clone() PluginInfo {
	out := info
	out.Dependencies = make([]Dependency, len(info.Dependencies))
	copy(out.Dependencies, info.Dependencies)
	return out
}

// DepStatus is the memoized result of the dependency satisfaction check for
// a single record.
type DepStatus int

const (
	// DepUnknown means the check has not run for this record yet, or the
	// record's own dependencies resolved but one of them failed further down
	// the chain.
	DepUnknown DepStatus = iota
	// DepOk means every declared dependency resolves, transitively, to a
	// registered record in a compatible version.
	DepOk
	// DepMissing means a declared dependency is not registered.
	DepMissing
	// DepBadVersion means a declared dependency is registered in an
	// incompatible version.
	DepBadVersion
)

// String returns a human-readable representation of the dependency status.
func (s DepStatus) String() string {
	switch s {
	case DepOk:
		return "ok"
	case DepMissing:
		return "missing"
	case DepBadVersion:
		return "bad_version"
	default:
		return "unknown"
	}
}
