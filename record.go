// record.go: Per-plugin state held by the registry
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package justplug

// pluginRecord is the mutable core entity tracking one registered plugin.
//
// The registry exclusively owns every record. Invariants:
//   - if instance is non-nil, lib is open
//   - destruction order is instance first (after notifying it), library last
type pluginRecord struct {
	info PluginInfo
	path string

	lib      SharedLibrary
	factory  PluginFactory
	instance IPlugin

	depStatus DepStatus
	// checking marks a record that is mid-way through the recursive
	// dependency check; re-entering it yields a provisional Ok and leaves
	// the topological sort to report the true cycle.
	checking bool
	// graphID is the node index assigned in the latest load pass; it is -1
	// until one assigns it and is reset to -1 at the start of every pass.
	graphID int
}

func newPluginRecord(path string, lib SharedLibrary, info PluginInfo) *pluginRecord {
	return &pluginRecord{
		info:    info,
		path:    path,
		lib:     lib,
		graphID: -1,
	}
}

func (r *pluginRecord) loaded() bool {
	return r.lib != nil && r.lib.IsOpen() && r.instance != nil
}

// destroy tears the record down on every exit path: notify the instance if
// one exists, drop it, then close the library. Reports whether the library
// handle ended up closed.
func (r *pluginRecord) destroy() bool {
	if r.instance != nil {
		r.instance.AboutToBeUnloaded()
		r.instance = nil
	}
	r.factory = nil

	if r.lib == nil {
		return true
	}
	_ = r.lib.Close()
	return !r.lib.IsOpen()
}
