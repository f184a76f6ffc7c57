// goplugin_loader.go: Default LibraryLoader over the Go plugin runtime
//
// Shared objects built with -buildmode=plugin cannot export C symbols under
// the jp_* names, so this adapter maps the well-known symbol names onto the
// exported Go identifiers JPName, JPMetadata (both *string) and
// JPCreatePlugin (func(RequestFunc) IPlugin). The Go runtime never unmaps a
// loaded plugin; Close drops the reference and marks the handle closed.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

//go:build linux || darwin || freebsd

package justplug

import (
	"path/filepath"
	goplugin "plugin"
)

// goSymbolNames maps the jp_* ABI names onto the exported Go identifiers a
// -buildmode=plugin module can actually carry.
var goSymbolNames = map[string]string{
	SymbolName:     "JPName",
	SymbolMetadata: "JPMetadata",
	SymbolCreate:   "JPCreatePlugin",
}

// GoPluginLoader is the default LibraryLoader. It opens Go plugin shared
// objects with the stdlib plugin package.
type GoPluginLoader struct{}

// NewGoPluginLoader returns the default loader for Go plugin modules.
func NewGoPluginLoader() LibraryLoader {
	return GoPluginLoader{}
}

// Open opens the shared object at path.
func (GoPluginLoader) Open(path string) (SharedLibrary, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, NewLibraryOpenError(path, err)
	}
	p, err := goplugin.Open(abs)
	if err != nil {
		return nil, NewLibraryOpenError(abs, err)
	}
	return &goPluginLibrary{path: abs, plugin: p, open: true}, nil
}

type goPluginLibrary struct {
	path   string
	plugin *goplugin.Plugin
	open   bool
}

func (l *goPluginLibrary) Path() string {
	return l.path
}

func (l *goPluginLibrary) IsOpen() bool {
	return l.open
}

func (l *goPluginLibrary) lookup(name string) (goplugin.Symbol, error) {
	goName, ok := goSymbolNames[name]
	if !ok {
		goName = name
	}
	return l.plugin.Lookup(goName)
}

func (l *goPluginLibrary) HasSymbol(name string) bool {
	if !l.open {
		return false
	}
	_, err := l.lookup(name)
	return err == nil
}

func (l *goPluginLibrary) StringSymbol(name string) (string, error) {
	if !l.open {
		return "", NewLibraryClosedError(l.path)
	}
	sym, err := l.lookup(name)
	if err != nil {
		return "", NewSymbolNotFoundError(l.path, name, err)
	}
	s, ok := sym.(*string)
	if !ok {
		return "", NewSymbolTypeError(l.path, name)
	}
	return *s, nil
}

func (l *goPluginLibrary) FactorySymbol(name string) (PluginFactory, error) {
	if !l.open {
		return nil, NewLibraryClosedError(l.path)
	}
	sym, err := l.lookup(name)
	if err != nil {
		return nil, NewSymbolNotFoundError(l.path, name, err)
	}
	switch f := sym.(type) {
	case func(RequestFunc) IPlugin:
		return f, nil
	case PluginFactory:
		return f, nil
	case *PluginFactory:
		return *f, nil
	default:
		return nil, NewSymbolTypeError(l.path, name)
	}
}

// Close marks the handle closed. The Go runtime keeps the object mapped for
// the process lifetime; the manager only needs the handle to stop resolving.
func (l *goPluginLibrary) Close() error {
	l.open = false
	l.plugin = nil
	return nil
}
