// doc.go: Package documentation for justplug
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

// Package justplug is a plugin manager for shared-library plugins.
//
// The manager discovers candidate shared libraries on disk, validates their
// embedded JSON manifests against the host's plugin API version, resolves
// declared inter-plugin dependencies through a directed graph with
// deterministic topological ordering and cycle detection, instantiates the
// plugins through their exported factory symbol, brokers inter-plugin
// requests while they are loaded, and tears everything down in exact
// reverse load order.
//
// A module qualifies as a plugin when it exports the three well-known
// symbols jp_name (the registered name), jp_metadata (the JSON manifest)
// and jp_createPlugin (the factory receiving the request trampoline). The
// default loader adapts these names onto the exported Go identifiers
// JPName, JPMetadata and JPCreatePlugin of a shared object built with
// -buildmode=plugin; hosts with a native dlopen-based loader inject their
// own LibraryLoader instead.
//
// Basic usage:
//
//	m := justplug.Instance()
//	if code := m.Search("./plugins", false, nil); !code.Ok() {
//	    log.Fatal(code.Message())
//	}
//	if code := m.Load(true, nil); !code.Ok() {
//	    log.Fatal(code.Message())
//	}
//	defer m.Unload(nil)
//
// Loaded plugins address each other and the manager through the request
// trampoline injected at construction; see IPlugin and PluginBase.
package justplug
