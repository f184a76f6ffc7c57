// config.go: Manager configuration file support
//
// A manager configuration lists the directories to search and the load
// policy. YAML is a superset of JSON, so one parser serves both formats.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package justplug

import (
	"os"

	"gopkg.in/yaml.v3"
)

// ManagerConfig is the host-facing configuration document.
type ManagerConfig struct {
	// SearchPaths are the directories handed to Search, in order.
	SearchPaths []string `json:"search_paths" yaml:"search_paths"`
	// Recursive applies to every search.
	Recursive bool `json:"recursive" yaml:"recursive"`
	// ContinueOnError is the Load policy.
	ContinueOnError bool `json:"continue_on_error" yaml:"continue_on_error"`
}

// Validate checks the configuration for structural problems.
func (c ManagerConfig) Validate(path string) error {
	if len(c.SearchPaths) == 0 {
		return NewConfigEmptyError(path)
	}
	for _, dir := range c.SearchPaths {
		if dir == "" {
			return NewConfigPathError(path, "search path entries must be non-empty")
		}
	}
	return nil
}

// LoadManagerConfig reads and validates a configuration file (YAML or JSON).
func LoadManagerConfig(path string) (ManagerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ManagerConfig{}, NewConfigPathError(path, err.Error())
	}

	var cfg ManagerConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return ManagerConfig{}, NewConfigParseError(path, err)
	}
	if err := cfg.Validate(path); err != nil {
		return ManagerConfig{}, err
	}
	return cfg, nil
}

// ApplyConfig runs Search over every configured path. The summary is
// Success when any search succeeded; otherwise the last non-success code.
func (m *Manager) ApplyConfig(cfg ManagerConfig, callback EventFunc) ReturnCode {
	summary := SearchNothingFound
	anyFound := false
	for _, dir := range cfg.SearchPaths {
		code := m.Search(dir, cfg.Recursive, callback)
		if code.Ok() {
			anyFound = true
		} else if !anyFound {
			summary = code
		}
	}
	if anyFound {
		return Success
	}
	return summary
}
