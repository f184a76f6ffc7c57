// search.go: Plugin discovery: directory walk, symbol probe, registration
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package justplug

import (
	"github.com/agilira/go-timecache"
)

// Search enumerates candidate shared libraries under dir, honoring
// recursive, and registers every one that qualifies as a plugin: the library
// must export jp_name, jp_metadata and jp_createPlugin, carry a fresh name,
// and a parseable manifest. Qualifying libraries stay open in the registry;
// everything else is closed.
//
// Per-item failures are delivered through callback; the summary code is
// Success when at least one plugin was registered this call,
// SearchNothingFound otherwise, and SearchListFilesError when the directory
// scan failed and produced no candidates at all.
func (m *Manager) Search(dir string, recursive bool, callback EventFunc) ReturnCode {
	paths, listErr := m.lister.List(dir, recursive)
	if listErr != nil {
		m.logger.Warn("plugin directory scan failed", "dir", dir, "error", listErr)
		emitEvent(callback, SearchListFilesError, listErr.Error())
		if len(paths) == 0 {
			return SearchListFilesError
		}
	}

	found := false
	for _, path := range paths {
		if m.examineCandidate(path, callback) {
			found = true
		}
	}

	if !found {
		return SearchNothingFound
	}
	m.reg.addLocation(dir)
	return Success
}

// examineCandidate opens one candidate and registers it when it qualifies.
// Reports whether a record was created.
func (m *Manager) examineCandidate(path string, callback EventFunc) bool {
	lib, err := m.loader.Open(path)
	if err != nil {
		// Not loadable as a shared library; not a plugin.
		m.logger.Debug("candidate is not loadable", "path", path, "error", err)
		return false
	}

	if !lib.HasSymbol(SymbolName) || !lib.HasSymbol(SymbolMetadata) || !lib.HasSymbol(SymbolCreate) {
		_ = lib.Close()
		return false
	}

	m.logger.Info("found plugin library", "path", path, "at", timecache.CachedTime())

	name, err := lib.StringSymbol(SymbolName)
	if err != nil {
		m.logger.Warn("cannot resolve plugin name", "path", path, "error", err)
		_ = lib.Close()
		return false
	}

	// name is the unique registry key; the first registration wins.
	if m.reg.has(name) {
		emitEvent(callback, SearchNameAlreadyExists, path)
		_ = lib.Close()
		return false
	}

	metadata, err := lib.StringSymbol(SymbolMetadata)
	if err != nil {
		emitEvent(callback, SearchCannotParseMetadata, path)
		_ = lib.Close()
		return false
	}

	info, err := parseMetadata([]byte(metadata))
	if err != nil {
		m.logger.Warn("plugin metadata rejected", "path", path, "error", err)
		emitEvent(callback, SearchCannotParseMetadata, path)
		_ = lib.Close()
		return false
	}

	m.reg.add(name, newPluginRecord(lib.Path(), lib, info))
	m.logger.Debug("registered plugin", "name", name, "version", info.Version, "path", lib.Path())
	return true
}
