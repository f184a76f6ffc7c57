// shared_library.go: Interfaces consumed from the native loading collaborators
//
// The manager core never touches dlopen or the filesystem directly. It
// consumes a LibraryLister to enumerate candidate shared libraries, a
// LibraryLoader to open them, and a SharedLibrary handle for symbol lookup
// and closing. Hosts with their own native loader inject implementations of
// these interfaces; default implementations ship in fs_lister.go and
// goplugin_loader.go.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package justplug

// Well-known exported symbols a shared library must carry to qualify as a
// plugin.
const (
	// SymbolName resolves to a C string: the plugin's registered name.
	SymbolName = "jp_name"
	// SymbolMetadata resolves to a C string: the UTF-8 JSON manifest.
	SymbolMetadata = "jp_metadata"
	// SymbolCreate resolves to the factory: fn(trampoline) -> plugin object.
	SymbolCreate = "jp_createPlugin"
)

// SharedLibrary is an open native module handle.
//
// Exactly one record owns each handle; the handle is released only by the
// unloader, strictly after the plugin instance it produced is destroyed.
type SharedLibrary interface {
	// Path returns the absolute path the library was opened from.
	Path() string

	// IsOpen reports whether the handle is still open.
	IsOpen() bool

	// HasSymbol reports whether the library exports the named symbol.
	HasSymbol(name string) bool

	// StringSymbol resolves a C-string symbol.
	StringSymbol(name string) (string, error)

	// FactorySymbol resolves the plugin factory symbol.
	FactorySymbol(name string) (PluginFactory, error)

	// Close releases the handle. Closing an already-closed handle is a no-op.
	Close() error
}

// LibraryLoader opens shared libraries.
type LibraryLoader interface {
	Open(path string) (SharedLibrary, error)
}

// LibraryLister enumerates candidate shared libraries under a directory.
//
// List may return both partial results and an error when parts of the tree
// could not be read; discovery continues with whatever was found.
type LibraryLister interface {
	List(dir string, recursive bool) ([]string, error)
}
