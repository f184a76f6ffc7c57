// metadata.go: Plugin manifest validation and extraction
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package justplug

import (
	"encoding/json"
	"fmt"
)

// manifestFields are the keys every manifest object must carry, besides the
// dependencies array.
var manifestFields = []string{"api", "name", "prettyName", "version", "author", "url", "license", "copyright"}

// parseMetadata validates a UTF-8 JSON manifest and extracts a PluginInfo.
//
// The object must contain string fields api, name, prettyName, version,
// author, url, license, copyright and a dependencies array of {name, version}
// objects. A manifest whose api is not compatible with the host's PluginAPI
// is rejected the same way an unparseable one is. Parser panics are trapped
// here and never propagate.
func parseMetadata(data []byte) (info PluginInfo, err error) {
	defer func() {
		if r := recover(); r != nil {
			info = PluginInfo{}
			err = NewMetadataParseError(fmt.Errorf("parser panic: %v", r))
		}
	}()

	var raw map[string]json.RawMessage
	if jsonErr := json.Unmarshal(data, &raw); jsonErr != nil {
		return PluginInfo{}, NewMetadataParseError(jsonErr)
	}

	fields := make(map[string]string, len(manifestFields))
	for _, key := range manifestFields {
		value, fieldErr := stringField(raw, key)
		if fieldErr != nil {
			return PluginInfo{}, fieldErr
		}
		fields[key] = value
	}

	if !VersionCompatible(fields["api"], PluginAPI) {
		return PluginInfo{}, NewAPIIncompatibleError(fields["api"])
	}
	if !validPluginName(fields["name"]) {
		return PluginInfo{}, NewMetadataNameError(fields["name"])
	}

	deps, depErr := dependencyField(raw)
	if depErr != nil {
		return PluginInfo{}, depErr
	}

	return PluginInfo{
		Name:         fields["name"],
		PrettyName:   fields["prettyName"],
		Version:      fields["version"],
		Author:       fields["author"],
		URL:          fields["url"],
		License:      fields["license"],
		Copyright:    fields["copyright"],
		Dependencies: deps,
	}, nil
}

func stringField(raw map[string]json.RawMessage, key string) (string, error) {
	message, ok := raw[key]
	if !ok {
		return "", NewMetadataFieldError(key)
	}
	var value string
	if err := json.Unmarshal(message, &value); err != nil {
		return "", NewMetadataFieldError(key)
	}
	return value, nil
}

func dependencyField(raw map[string]json.RawMessage) ([]Dependency, error) {
	message, ok := raw["dependencies"]
	if !ok {
		return nil, NewMetadataFieldError("dependencies")
	}

	var entries []map[string]json.RawMessage
	if err := json.Unmarshal(message, &entries); err != nil {
		return nil, NewMetadataFieldError("dependencies")
	}

	deps := make([]Dependency, 0, len(entries))
	for _, entry := range entries {
		name, err := stringField(entry, "name")
		if err != nil {
			return nil, NewMetadataFieldError("dependencies.name")
		}
		version, err := stringField(entry, "version")
		if err != nil {
			return nil, NewMetadataFieldError("dependencies.version")
		}
		deps = append(deps, Dependency{Name: name, MinVersion: version})
	}
	return deps, nil
}

// validPluginName enforces the registry key rule: non-empty printable ASCII.
func validPluginName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		if name[i] < 0x20 || name[i] > 0x7e {
			return false
		}
	}
	return true
}
