// load_test.go: Tests for dependency resolution and plugin instantiation
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package justplug

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_SinglePluginNoDeps(t *testing.T) {
	f := newFixture(t)
	f.addPlugin("/plugins", "alpha", "1.0.0", nil)
	require.Equal(t, Success, f.manager.Search("/plugins", false, nil))

	var events eventCollector
	code := f.manager.Load(true, events.callback())

	assert.Equal(t, Success, code)
	assert.Empty(t, events.codes)
	assert.Equal(t, []string{"alpha.loaded"}, f.recorder.all())
	assert.True(t, f.manager.IsPluginLoaded("alpha"))
	assert.Equal(t, DepOk, f.manager.DependencyStatus("alpha"))
	assert.Equal(t, []string{"alpha"}, f.manager.LoadOrder())
}

func TestLoad_LinearChainOrder(t *testing.T) {
	f := newFixture(t)
	// Registered in reverse dependency order on purpose.
	f.addPlugin("/plugins", "c", "1.0.0", []Dependency{{Name: "b", MinVersion: "1.0.0"}})
	f.addPlugin("/plugins", "b", "1.0.0", []Dependency{{Name: "a", MinVersion: "1.0.0"}})
	f.addPlugin("/plugins", "a", "1.0.0", nil)
	require.Equal(t, Success, f.manager.Search("/plugins", false, nil))

	code := f.manager.Load(true, nil)
	require.Equal(t, Success, code)

	assert.Equal(t, []string{"a.loaded", "b.loaded", "c.loaded"}, f.recorder.all())
	assert.Equal(t, []string{"a", "b", "c"}, f.manager.LoadOrder())
}

func TestLoad_MissingDependencyAborts(t *testing.T) {
	f := newFixture(t)
	lib := f.addPlugin("/plugins", "x", "1.0.0", []Dependency{{Name: "missing", MinVersion: "1.0.0"}})
	require.Equal(t, Success, f.manager.Search("/plugins", false, nil))

	var events eventCollector
	code := f.manager.Load(false, events.callback())

	assert.Equal(t, LoadDependencyNotFound, code)
	require.Len(t, events.codes, 1)
	assert.Equal(t, LoadDependencyNotFound, events.codes[0])
	assert.Equal(t, lib.path, events.details[0])
	assert.Empty(t, f.recorder.all(), "x.loaded must never fire")
	assert.Equal(t, DepMissing, f.manager.DependencyStatus("x"))
	assert.False(t, f.manager.IsPluginLoaded("x"))
}

func TestLoad_MissingDependencySkippedWhenContinuing(t *testing.T) {
	f := newFixture(t)
	f.addPlugin("/plugins", "x", "1.0.0", []Dependency{{Name: "missing", MinVersion: "1.0.0"}})
	f.addPlugin("/plugins", "ok", "1.0.0", nil)
	require.Equal(t, Success, f.manager.Search("/plugins", false, nil))

	var events eventCollector
	code := f.manager.Load(true, events.callback())

	assert.Equal(t, LoadDependencyNotFound, code)
	assert.Equal(t, []string{"ok.loaded"}, f.recorder.all())
	assert.True(t, f.manager.IsPluginLoaded("ok"))
	assert.False(t, f.manager.IsPluginLoaded("x"))
}

func TestLoad_DependencyBadVersion(t *testing.T) {
	f := newFixture(t)
	f.addPlugin("/plugins", "p", "1.0.0", nil)
	libQ := f.addPlugin("/plugins", "q", "1.0.0", []Dependency{{Name: "p", MinVersion: "2.0.0"}})
	require.Equal(t, Success, f.manager.Search("/plugins", false, nil))

	var events eventCollector
	code := f.manager.Load(true, events.callback())

	assert.Equal(t, LoadDependencyBadVersion, code)
	require.Len(t, events.codes, 1)
	assert.Equal(t, LoadDependencyBadVersion, events.codes[0])
	assert.Equal(t, libQ.path, events.details[0])

	assert.Equal(t, []string{"p.loaded"}, f.recorder.all())
	assert.True(t, f.manager.IsPluginLoaded("p"))
	assert.False(t, f.manager.IsPluginLoaded("q"))
	assert.Equal(t, DepBadVersion, f.manager.DependencyStatus("q"))
}

func TestLoad_DependencyCycle(t *testing.T) {
	f := newFixture(t)
	f.addPlugin("/plugins", "u", "1.0.0", []Dependency{{Name: "v", MinVersion: "1.0.0"}})
	f.addPlugin("/plugins", "v", "1.0.0", []Dependency{{Name: "u", MinVersion: "1.0.0"}})
	require.Equal(t, Success, f.manager.Search("/plugins", false, nil))

	var events eventCollector
	code := f.manager.Load(true, events.callback())

	assert.Equal(t, LoadDependencyCycle, code)
	require.Len(t, events.codes, 1)
	assert.Equal(t, LoadDependencyCycle, events.codes[0])
	assert.Empty(t, events.details[0], "cycle events carry no detail")

	assert.Empty(t, f.recorder.all(), "neither plugin is instantiated")
	assert.False(t, f.manager.IsPluginLoaded("u"))
	assert.False(t, f.manager.IsPluginLoaded("v"))
}

func TestLoad_TransitiveDependencies(t *testing.T) {
	f := newFixture(t)
	f.addPlugin("/plugins", "app", "1.0.0", []Dependency{{Name: "mid", MinVersion: "1.0.0"}})
	f.addPlugin("/plugins", "mid", "1.2.0", []Dependency{{Name: "base", MinVersion: "0.9.0"}})
	f.addPlugin("/plugins", "base", "0.9.5", nil)
	require.Equal(t, Success, f.manager.Search("/plugins", false, nil))

	code := f.manager.Load(false, nil)
	require.Equal(t, Success, code)
	assert.Equal(t, []string{"base.loaded", "mid.loaded", "app.loaded"}, f.recorder.all())
}

func TestLoad_TransitiveFailurePropagates(t *testing.T) {
	// app -> mid -> gone: app's own deps resolve but mid's do not.
	f := newFixture(t)
	f.addPlugin("/plugins", "app", "1.0.0", []Dependency{{Name: "mid", MinVersion: "1.0.0"}})
	libMid := f.addPlugin("/plugins", "mid", "1.0.0", []Dependency{{Name: "gone", MinVersion: "1.0.0"}})
	require.Equal(t, Success, f.manager.Search("/plugins", false, nil))

	var events eventCollector
	code := f.manager.Load(true, events.callback())

	assert.Equal(t, LoadDependencyNotFound, code)
	require.NotEmpty(t, events.codes)
	assert.Equal(t, LoadDependencyNotFound, events.codes[0])
	assert.Equal(t, libMid.path, events.details[0], "the record whose direct dependency is missing is reported")
	assert.Empty(t, f.recorder.all())
}

func TestLoad_SharedDependencyCheckedOnce(t *testing.T) {
	f := newFixture(t)
	f.addPlugin("/plugins", "left", "1.0.0", []Dependency{{Name: "base", MinVersion: "1.0.0"}})
	f.addPlugin("/plugins", "right", "1.0.0", []Dependency{{Name: "base", MinVersion: "1.0.0"}})
	f.addPlugin("/plugins", "base", "1.0.0", nil)
	require.Equal(t, Success, f.manager.Search("/plugins", false, nil))

	code := f.manager.Load(false, nil)
	require.Equal(t, Success, code)
	assert.Equal(t, []string{"base.loaded", "left.loaded", "right.loaded"}, f.recorder.all())
}

func TestLoad_Idempotent(t *testing.T) {
	f := newFixture(t)
	f.addPlugin("/plugins", "alpha", "1.0.0", nil)
	require.Equal(t, Success, f.manager.Search("/plugins", false, nil))
	require.Equal(t, Success, f.manager.Load(true, nil))

	code := f.manager.Load(true, nil)
	assert.Equal(t, Success, code)
	assert.Equal(t, []string{"alpha.loaded"}, f.recorder.all(), "loaded fires exactly once")
}

func TestLoad_SecondLoadPicksUpNewPlugins(t *testing.T) {
	f := newFixture(t)
	f.addPlugin("/a", "alpha", "1.0.0", nil)
	require.Equal(t, Success, f.manager.Search("/a", false, nil))
	require.Equal(t, Success, f.manager.Load(true, nil))

	// A dependent of alpha shows up later.
	f.addPlugin("/b", "beta", "1.0.0", []Dependency{{Name: "alpha", MinVersion: "1.0.0"}})
	require.Equal(t, Success, f.manager.Search("/b", false, nil))

	code := f.manager.Load(true, nil)
	require.Equal(t, Success, code)

	assert.Equal(t, []string{"alpha.loaded", "beta.loaded"}, f.recorder.all())
	assert.Equal(t, []string{"alpha", "beta"}, f.manager.LoadOrder())
}

func TestLoad_LoadedCallbackSeesDependencyLoaded(t *testing.T) {
	f := newFixture(t)
	f.addPlugin("/plugins", "base", "1.0.0", nil)

	// dep-checking plugin asserts its dependency from inside Loaded.
	m := f.manager
	recorder := f.recorder
	path := "/plugins/libdependent.so"
	var baseLoadedDuringCallback bool
	lib := &fakeLibrary{
		path: path,
		strings: map[string]string{
			SymbolName: "dependent",
			SymbolMetadata: manifestJSON(t, "dependent", "1.0.0",
				[]Dependency{{Name: "base", MinVersion: "1.0.0"}}),
		},
		factory: func(send RequestFunc) IPlugin {
			return &loadObserverPlugin{
				PluginBase: NewPluginBase("dependent", send),
				recorder:   recorder,
				observe: func() {
					baseLoadedDuringCallback = m.IsPluginLoaded("base")
				},
			}
		},
	}
	f.loader.libs[path] = lib
	f.lister.dirs["/plugins"] = append(f.lister.dirs["/plugins"], path)

	require.Equal(t, Success, f.manager.Search("/plugins", false, nil))
	require.Equal(t, Success, f.manager.Load(false, nil))
	assert.True(t, baseLoadedDuringCallback, "dependencies are loaded before their dependents")
}

// loadObserverPlugin runs a probe from inside its Loaded callback.
type loadObserverPlugin struct {
	PluginBase
	recorder *callRecorder
	observe  func()
}

func (p *loadObserverPlugin) Loaded() {
	p.observe()
	p.recorder.add("dependent.loaded")
}
