// manager.go: The plugin manager: construction, singleton, and query surface
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package justplug

import (
	"os"
	"path/filepath"
	"sync"
)

// Manager discovers shared-library plugins on disk, validates their declared
// metadata and inter-plugin dependencies, computes a correct load order,
// instantiates them, brokers inter-plugin requests while loaded, and tears
// them down in reverse order.
//
// The manager is single-threaded from the host's perspective: callers must
// serialize Search, Load, Unload and the query operations. The request
// trampoline may be invoked from any goroutine, but its correctness depends
// on the registry being quiescent; hosts that allow plugins to send requests
// concurrently with Load or Unload must provide external synchronization.
//
// Typical host flow:
//
//	m := justplug.Instance()
//	m.Search("./plugins", false, nil)
//	m.Load(true, nil)
//	defer m.Unload(nil)
type Manager struct {
	logger Logger
	loader LibraryLoader
	lister LibraryLister

	reg *registry

	requests        *RequestLog
	managerHandlers map[uint16]ManagerRequestFunc
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger. Accepts a Logger or nil (silent).
func WithLogger(logger any) Option {
	return func(m *Manager) { m.logger = NewLogger(logger) }
}

// WithLibraryLoader replaces the default Go plugin loader.
func WithLibraryLoader(loader LibraryLoader) Option {
	return func(m *Manager) { m.loader = loader }
}

// WithLibraryLister replaces the default filesystem lister.
func WithLibraryLister(lister LibraryLister) Option {
	return func(m *Manager) { m.lister = lister }
}

// NewManager creates an isolated manager. Hosts normally use the
// process-global Instance; isolated managers exist for tests and for
// embedding several independent plugin universes in one process.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		logger:          NewNoOpLogger(),
		loader:          NewGoPluginLoader(),
		lister:          NewOSLister(),
		reg:             newRegistry(),
		requests:        newRequestLog(defaultRequestLogSize),
		managerHandlers: make(map[uint16]ManagerRequestFunc),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

var (
	instanceOnce sync.Once
	instance     *Manager
)

// Instance returns the process-global manager, lazily initialized on first
// access. The global exists so that a single trampoline can serve every
// plugin in the process; hosts that have not unloaded by process exit leak
// nothing the OS does not reclaim.
func Instance() *Manager {
	instanceOnce.Do(func() {
		instance = NewManager()
	})
	return instance
}

//
// Query surface
//

// PluginsCount returns the number of registered plugins.
func (m *Manager) PluginsCount() int {
	return len(m.reg.records)
}

// PluginsList returns the names of all registered plugins, unordered.
func (m *Manager) PluginsList() []string {
	names := make([]string, 0, len(m.reg.records))
	for name := range m.reg.records {
		names = append(names, name)
	}
	return names
}

// PluginsLocations returns the searched directories that contributed at
// least one plugin, in insertion order, deduplicated.
func (m *Manager) PluginsLocations() []string {
	out := make([]string, len(m.reg.locations))
	copy(out, m.reg.locations)
	return out
}

// LoadOrder returns the load order produced by the last Load that reached
// instantiation, including one that reported dependency failures under
// continueOnError. A Load that aborts or finds a cycle leaves it unchanged.
func (m *Manager) LoadOrder() []string {
	out := make([]string, len(m.reg.loadOrder))
	copy(out, m.reg.loadOrder)
	return out
}

// HasPlugin reports whether a plugin with the given name is registered.
func (m *Manager) HasPlugin(name string) bool {
	return m.reg.has(name)
}

// HasPluginVersion reports whether a plugin with the given name is
// registered in a version compatible with minVersion.
func (m *Manager) HasPluginVersion(name, minVersion string) bool {
	rec := m.reg.get(name)
	return rec != nil && VersionCompatible(rec.info.Version, minVersion)
}

// IsPluginLoaded reports whether the named plugin is instantiated and its
// library is open.
func (m *Manager) IsPluginLoaded(name string) bool {
	rec := m.reg.get(name)
	return rec != nil && rec.loaded()
}

// Info returns a snapshot of the named plugin's manifest. The snapshot is
// owned by the caller.
func (m *Manager) Info(name string) (PluginInfo, bool) {
	rec := m.reg.get(name)
	if rec == nil {
		return PluginInfo{}, false
	}
	return rec.info.clone(), true
}

// DependencyStatus returns the memoized dependency status of the named
// plugin, DepUnknown if it is not registered, not yet checked, or failed only
// through a dependency further down the chain.
func (m *Manager) DependencyStatus(name string) DepStatus {
	rec := m.reg.get(name)
	if rec == nil {
		return DepUnknown
	}
	return rec.depStatus
}

// PluginObject returns the live plugin instance downcast to a host-defined
// type. The second result is false if the plugin is absent, not loaded, or
// its dynamic type does not match. The reference stays valid until Unload.
func PluginObject[T any](m *Manager, name string) (T, bool) {
	var zero T
	rec := m.reg.get(name)
	if rec == nil || rec.instance == nil {
		return zero, false
	}
	obj, ok := rec.instance.(T)
	if !ok {
		return zero, false
	}
	return obj, true
}

// AppDirectory returns the directory holding the running executable.
func AppDirectory() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	return filepath.Dir(exe)
}

// PluginAPIVersion returns the plugin API version this host declares.
func PluginAPIVersion() string {
	return PluginAPI
}
