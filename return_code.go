// return_code.go: Enumerated outcome values for the public manager operations
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package justplug

// ReturnCode is the summary outcome of every public manager operation.
//
// Success is reserved for "the operation achieved its intent". Per-item
// failures during bulk operations (search, load) are delivered through the
// EventFunc callback; the operation still returns a single summary code.
type ReturnCode int

const (
	// Success indicates the operation achieved its intent.
	Success ReturnCode = iota
	// UnknownError indicates a failure that fits no other code.
	UnknownError
	// SearchNothingFound indicates a search registered no plugins.
	SearchNothingFound
	// SearchCannotParseMetadata indicates a candidate carried an invalid manifest.
	SearchCannotParseMetadata
	// SearchNameAlreadyExists indicates a candidate's name is already registered.
	SearchNameAlreadyExists
	// SearchListFilesError indicates the directory scan failed.
	SearchListFilesError
	// LoadDependencyBadVersion indicates a dependency is present in an incompatible version.
	LoadDependencyBadVersion
	// LoadDependencyNotFound indicates a declared dependency is not registered.
	LoadDependencyNotFound
	// LoadDependencyCycle indicates the dependency graph contains a cycle.
	LoadDependencyCycle
	// UnloadNotAll indicates at least one library handle survived its close.
	UnloadNotAll
)

// Ok reports whether the code is Success.
func (c ReturnCode) Ok() bool {
	return c == Success
}

// Message returns the fixed human-readable phrase for the code.
func (c ReturnCode) Message() string {
	switch c {
	case Success:
		return "Success"
	case UnknownError:
		return "Unknown error"
	case SearchNothingFound:
		return "No plugins was found in that directory"
	case SearchCannotParseMetadata:
		return "Plugins metadata cannot be parsed (maybe they are invalid ?)"
	case SearchNameAlreadyExists:
		return "A plugin with the same name was already found"
	case SearchListFilesError:
		return "An error occurs during the scan of the plugin dir"
	case LoadDependencyBadVersion:
		return "The plugin requires a dependency that's in an incorrect version"
	case LoadDependencyNotFound:
		return "The plugin requires a dependency that wasn't found"
	case LoadDependencyCycle:
		return "The dependencies graph contains a cycle, which makes impossible to load plugins"
	case UnloadNotAll:
		return "Not all plugins have been unloaded"
	}
	return ""
}

// String returns a short identifier for logs and test output.
func (c ReturnCode) String() string {
	switch c {
	case Success:
		return "success"
	case UnknownError:
		return "unknown_error"
	case SearchNothingFound:
		return "search_nothing_found"
	case SearchCannotParseMetadata:
		return "search_cannot_parse_metadata"
	case SearchNameAlreadyExists:
		return "search_name_already_exists"
	case SearchListFilesError:
		return "search_listfiles_error"
	case LoadDependencyBadVersion:
		return "load_dependency_bad_version"
	case LoadDependencyNotFound:
		return "load_dependency_not_found"
	case LoadDependencyCycle:
		return "load_dependency_cycle"
	case UnloadNotAll:
		return "unload_not_all"
	}
	return "invalid"
}

// EventFunc receives per-item failures during bulk operations.
//
// The detail string is a filesystem path or a system error string; it is
// empty when the event carries no detail (dependency cycles).
type EventFunc func(code ReturnCode, detail string)

func emitEvent(callback EventFunc, code ReturnCode, detail string) {
	if callback != nil {
		callback(code, detail)
	}
}
