// testing_helpers_test.go: Shared fakes and fixtures for the manager tests
//
// The native collaborators (library loader, directory lister) are replaced
// by in-memory fakes so the full discovery/load/route/unload cycle runs
// without building real shared objects.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package justplug

import (
	"encoding/json"
	"sync"
	"testing"
)

// callRecorder captures lifecycle and request callbacks in invocation order.
type callRecorder struct {
	mu     sync.Mutex
	events []string
}

func (r *callRecorder) add(event string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *callRecorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	copy(out, r.events)
	return out
}

// testPlugin implements IPlugin and reports every callback to the recorder.
type testPlugin struct {
	PluginBase
	pluginName string
	recorder   *callRecorder
	handleFn   func(sender string, code uint16, payload *Payload) uint16
}

func (p *testPlugin) Loaded() {
	p.recorder.add(p.pluginName + ".loaded")
}

func (p *testPlugin) AboutToBeUnloaded() {
	p.recorder.add(p.pluginName + ".aboutToBeUnloaded")
}

func (p *testPlugin) HandleRequest(sender string, code uint16, payload *Payload) uint16 {
	p.recorder.add(p.pluginName + ".handleRequest")
	if p.handleFn != nil {
		return p.handleFn(sender, code, payload)
	}
	return 0
}

// fakeLibrary is an in-memory SharedLibrary. Opens are reference-counted
// like dlopen: closing a duplicate handle leaves the first one open.
type fakeLibrary struct {
	path       string
	refs       int
	strings    map[string]string
	factory    PluginFactory
	failClose  bool
	closeCalls int
}

func (l *fakeLibrary) Path() string { return l.path }

func (l *fakeLibrary) IsOpen() bool { return l.refs > 0 }

func (l *fakeLibrary) HasSymbol(name string) bool {
	if name == SymbolCreate {
		return l.factory != nil
	}
	_, ok := l.strings[name]
	return ok
}

func (l *fakeLibrary) StringSymbol(name string) (string, error) {
	if !l.IsOpen() {
		return "", NewLibraryClosedError(l.path)
	}
	s, ok := l.strings[name]
	if !ok {
		return "", NewSymbolNotFoundError(l.path, name, nil)
	}
	return s, nil
}

func (l *fakeLibrary) FactorySymbol(name string) (PluginFactory, error) {
	if !l.IsOpen() {
		return nil, NewLibraryClosedError(l.path)
	}
	if name != SymbolCreate || l.factory == nil {
		return nil, NewSymbolNotFoundError(l.path, name, nil)
	}
	return l.factory, nil
}

func (l *fakeLibrary) Close() error {
	l.closeCalls++
	if !l.failClose && l.refs > 0 {
		l.refs--
	}
	return nil
}

// fakeLoader serves fakeLibrary handles by path. Unknown paths fail to open
// like any non-library file would.
type fakeLoader struct {
	libs map[string]*fakeLibrary
}

func newFakeLoader() *fakeLoader {
	return &fakeLoader{libs: make(map[string]*fakeLibrary)}
}

func (f *fakeLoader) Open(path string) (SharedLibrary, error) {
	lib, ok := f.libs[path]
	if !ok {
		return nil, NewLibraryOpenError(path, nil)
	}
	lib.refs++
	return lib, nil
}

// fakeLister serves candidate paths by directory, optionally with a listing
// error alongside partial results.
type fakeLister struct {
	dirs map[string][]string
	errs map[string]error
}

func newFakeLister() *fakeLister {
	return &fakeLister{
		dirs: make(map[string][]string),
		errs: make(map[string]error),
	}
}

func (f *fakeLister) List(dir string, recursive bool) ([]string, error) {
	return f.dirs[dir], f.errs[dir]
}

// manifestJSON builds a valid manifest document for the given identity.
func manifestJSON(t *testing.T, name, version string, deps []Dependency) string {
	t.Helper()

	entries := make([]map[string]string, 0, len(deps))
	for _, dep := range deps {
		entries = append(entries, map[string]string{"name": dep.Name, "version": dep.MinVersion})
	}
	doc := map[string]any{
		"api":          PluginAPI,
		"name":         name,
		"prettyName":   "The " + name + " plugin",
		"version":      version,
		"author":       "AGILira",
		"url":          "https://example.com/" + name,
		"license":      "MPL-2.0",
		"copyright":    "(c) 2025 AGILira",
		"dependencies": entries,
	}
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal manifest: %v", err)
	}
	return string(data)
}

// fixture wires a manager to fake collaborators and tracks the libraries it
// fabricates.
type fixture struct {
	t        *testing.T
	manager  *Manager
	loader   *fakeLoader
	lister   *fakeLister
	recorder *callRecorder
	libs     map[string]*fakeLibrary
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	loader := newFakeLoader()
	lister := newFakeLister()
	return &fixture{
		t:        t,
		manager:  NewManager(WithLibraryLoader(loader), WithLibraryLister(lister)),
		loader:   loader,
		lister:   lister,
		recorder: &callRecorder{},
		libs:     make(map[string]*fakeLibrary),
	}
}

// addPlugin fabricates a plugin library under dir whose factory produces a
// recording testPlugin. Returns the library for state assertions.
func (f *fixture) addPlugin(dir, name, version string, deps []Dependency) *fakeLibrary {
	f.t.Helper()
	return f.addPluginWithHandler(dir, name, version, deps, nil)
}

func (f *fixture) addPluginWithHandler(dir, name, version string, deps []Dependency,
	handleFn func(sender string, code uint16, payload *Payload) uint16) *fakeLibrary {
	f.t.Helper()

	path := dir + "/lib" + name + ".so"
	recorder := f.recorder
	lib := &fakeLibrary{
		path: path,
		strings: map[string]string{
			SymbolName:     name,
			SymbolMetadata: manifestJSON(f.t, name, version, deps),
		},
		factory: func(send RequestFunc) IPlugin {
			return &testPlugin{
				PluginBase: NewPluginBase(name, send),
				pluginName: name,
				recorder:   recorder,
				handleFn:   handleFn,
			}
		},
	}
	f.loader.libs[path] = lib
	f.lister.dirs[dir] = append(f.lister.dirs[dir], path)
	f.libs[name] = lib
	return lib
}

// addLibrary fabricates a non-plugin shared library (no jp_* symbols).
func (f *fixture) addLibrary(dir, name string) *fakeLibrary {
	f.t.Helper()
	path := dir + "/lib" + name + ".so"
	lib := &fakeLibrary{path: path, strings: map[string]string{}}
	f.loader.libs[path] = lib
	f.lister.dirs[dir] = append(f.lister.dirs[dir], path)
	return lib
}

// eventCollector gathers callback events for assertions.
type eventCollector struct {
	codes   []ReturnCode
	details []string
}

func (c *eventCollector) callback() EventFunc {
	return func(code ReturnCode, detail string) {
		c.codes = append(c.codes, code)
		c.details = append(c.details, detail)
	}
}
