// version.go: Version compatibility predicate
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package justplug

import (
	"github.com/Masterminds/semver/v3"
)

// PluginAPI is the plugin API version this host declares. Manifests whose
// api field is not compatible with it are rejected during discovery.
const PluginAPI = "1.0.0"

// VersionCompatible reports whether an installed version satisfies a
// required minimum: both parse as semantic versions, share the same major
// component, and the installed version is not lower than the required one.
//
// Unparseable versions are never compatible.
func VersionCompatible(installed, required string) bool {
	iv, err := semver.NewVersion(installed)
	if err != nil {
		return false
	}
	rv, err := semver.NewVersion(required)
	if err != nil {
		return false
	}
	return iv.Major() == rv.Major() && !iv.LessThan(rv)
}
