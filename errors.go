// errors.go: structured error definitions for the justplug manager
//
// The public bulk operations report outcomes through ReturnCode; structured
// errors cover the collaborator boundaries (metadata parsing, library
// loading, configuration) where callers need cause and context.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package justplug

import (
	"github.com/agilira/go-errors"
)

// Error codes for the justplug manager
const (
	// Metadata errors (1000-1099)
	ErrCodeMetadataParse   = "METADATA_1001"
	ErrCodeMetadataField   = "METADATA_1002"
	ErrCodeMetadataName    = "METADATA_1003"
	ErrCodeAPIIncompatible = "METADATA_1004"

	// Library loading errors (1100-1199)
	ErrCodeLibraryOpen    = "LIBRARY_1101"
	ErrCodeLibraryClosed  = "LIBRARY_1102"
	ErrCodeSymbolNotFound = "LIBRARY_1103"
	ErrCodeSymbolType     = "LIBRARY_1104"
	ErrCodeListFiles      = "LIBRARY_1105"

	// Configuration errors (1200-1299)
	ErrCodeConfigPath    = "CONFIG_1201"
	ErrCodeConfigParse   = "CONFIG_1202"
	ErrCodeConfigEmpty   = "CONFIG_1203"
	ErrCodeConfigWatcher = "CONFIG_1204"
)

// Metadata error constructors

func NewMetadataParseError(cause error) *errors.Error {
	return errors.Wrap(cause, ErrCodeMetadataParse, "Cannot parse plugin metadata").
		WithUserMessage("The plugin manifest is not a valid JSON object").
		WithSeverity("error")
}

func NewMetadataFieldError(field string) *errors.Error {
	return errors.New(ErrCodeMetadataField, "Missing or mistyped manifest field").
		WithUserMessage("A required manifest field is absent or has the wrong type").
		WithContext("field", field).
		WithSeverity("error")
}

func NewMetadataNameError(name string) *errors.Error {
	return errors.New(ErrCodeMetadataName, "Invalid plugin name").
		WithUserMessage("Plugin names must be non-empty printable ASCII").
		WithContext("name", name).
		WithSeverity("error")
}

func NewAPIIncompatibleError(api string) *errors.Error {
	return errors.New(ErrCodeAPIIncompatible, "Incompatible plugin API version").
		WithUserMessage("The plugin was built against an incompatible plugin API").
		WithContext("plugin_api", api).
		WithContext("host_api", PluginAPI).
		WithSeverity("error")
}

// Library loading error constructors

func NewLibraryOpenError(path string, cause error) *errors.Error {
	if cause == nil {
		return errors.New(ErrCodeLibraryOpen, "Cannot open shared library").
			WithUserMessage("The shared library could not be opened").
			WithContext("path", path).
			WithSeverity("error")
	}
	return errors.Wrap(cause, ErrCodeLibraryOpen, "Cannot open shared library").
		WithUserMessage("The shared library could not be opened").
		WithContext("path", path).
		WithSeverity("error")
}

func NewLibraryClosedError(path string) *errors.Error {
	return errors.New(ErrCodeLibraryClosed, "Library is closed").
		WithUserMessage("The operation requires an open library handle").
		WithContext("path", path).
		WithSeverity("error")
}

func NewSymbolNotFoundError(path, symbol string, cause error) *errors.Error {
	if cause == nil {
		return errors.New(ErrCodeSymbolNotFound, "Exported symbol not found").
			WithUserMessage("The shared library does not export a required symbol").
			WithContext("path", path).
			WithContext("symbol", symbol).
			WithSeverity("error")
	}
	return errors.Wrap(cause, ErrCodeSymbolNotFound, "Exported symbol not found").
		WithUserMessage("The shared library does not export a required symbol").
		WithContext("path", path).
		WithContext("symbol", symbol).
		WithSeverity("error")
}

func NewSymbolTypeError(path, symbol string) *errors.Error {
	return errors.New(ErrCodeSymbolType, "Exported symbol has the wrong type").
		WithUserMessage("The exported symbol does not match the plugin ABI").
		WithContext("path", path).
		WithContext("symbol", symbol).
		WithSeverity("error")
}

func NewListFilesError(dir string, cause error) *errors.Error {
	return errors.Wrap(cause, ErrCodeListFiles, "Cannot list plugin directory").
		WithUserMessage("The plugin directory could not be scanned").
		WithContext("dir", dir).
		WithSeverity("error")
}

// Configuration error constructors

func NewConfigPathError(path string, message string) *errors.Error {
	return errors.New(ErrCodeConfigPath, "Configuration path error: "+message).
		WithUserMessage("Invalid configuration file path").
		WithContext("config_path", path).
		WithSeverity("error")
}

func NewConfigParseError(path string, cause error) *errors.Error {
	return errors.Wrap(cause, ErrCodeConfigParse, "Configuration parse error").
		WithUserMessage("Failed to parse the manager configuration file").
		WithContext("config_path", path).
		WithSeverity("error")
}

func NewConfigEmptyError(path string) *errors.Error {
	return errors.New(ErrCodeConfigEmpty, "Configuration lists no search paths").
		WithUserMessage("The manager configuration must list at least one search path").
		WithContext("config_path", path).
		WithSeverity("error")
}

func NewConfigWatcherError(message string, cause error) *errors.Error {
	if cause == nil {
		return errors.New(ErrCodeConfigWatcher, "Configuration watcher error: "+message).
			WithUserMessage("Configuration monitoring failed").
			WithSeverity("error")
	}
	return errors.Wrap(cause, ErrCodeConfigWatcher, "Configuration watcher error: "+message).
		WithUserMessage("Configuration monitoring failed").
		WithSeverity("error")
}
