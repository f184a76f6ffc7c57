// config_watcher.go: Argus-backed watching of the manager configuration file
//
// The watcher re-runs discovery when the configuration file changes, so new
// search paths take effect without host intervention. Discovery is additive:
// every listed directory is searched again, names already registered are
// skipped, and already-loaded plugins are never touched. Loading what was
// discovered stays a host decision.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package justplug

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/agilira/argus"
)

// SearchPathWatcherOptions tunes the configuration watcher.
type SearchPathWatcherOptions struct {
	// PollInterval is the file polling cadence. Default 2s.
	PollInterval time.Duration
	// Callback receives per-item discovery events from the re-runs.
	Callback EventFunc
}

// SearchPathWatcher watches a manager configuration file and re-applies it
// to the manager on every change.
type SearchPathWatcher struct {
	manager    *Manager
	logger     Logger
	watcher    *argus.Watcher
	configPath string
	options    SearchPathWatcherOptions

	enabled  atomic.Bool
	stopped  atomic.Bool
	stopOnce sync.Once
	mutex    sync.Mutex
}

// NewSearchPathWatcher creates a watcher for the given configuration file.
// Nothing is watched until Start.
func NewSearchPathWatcher(manager *Manager, configPath string, options SearchPathWatcherOptions) (*SearchPathWatcher, error) {
	if configPath == "" {
		return nil, NewConfigPathError(configPath, "configuration path must be non-empty")
	}
	if options.PollInterval <= 0 {
		options.PollInterval = 2 * time.Second
	}

	spw := &SearchPathWatcher{
		manager:    manager,
		logger:     manager.logger,
		configPath: configPath,
		options:    options,
	}
	spw.watcher = argus.New(argus.Config{
		PollInterval:         options.PollInterval,
		OptimizationStrategy: argus.OptimizationSingleEvent,
		ErrorHandler: func(err error, filepath string) {
			spw.logger.Error("config file watching error", "error", err, "file", filepath)
		},
	})
	return spw, nil
}

// Start loads and applies the configuration once, then begins watching it.
func (spw *SearchPathWatcher) Start() error {
	if spw.stopped.Load() {
		return NewConfigWatcherError("watcher has been stopped and cannot be restarted", nil)
	}

	spw.mutex.Lock()
	defer spw.mutex.Unlock()

	if !spw.enabled.CompareAndSwap(false, true) {
		return NewConfigWatcherError("watcher is already running", nil)
	}

	cfg, err := LoadManagerConfig(spw.configPath)
	if err != nil {
		spw.enabled.Store(false)
		return NewConfigWatcherError("failed to load initial configuration", err)
	}
	spw.manager.ApplyConfig(cfg, spw.options.Callback)

	if err := spw.watcher.Watch(spw.configPath, spw.handleChange); err != nil {
		spw.enabled.Store(false)
		return NewConfigWatcherError("failed to watch configuration file", err)
	}
	if err := spw.watcher.Start(); err != nil {
		spw.enabled.Store(false)
		return NewConfigWatcherError("failed to start configuration watcher", err)
	}

	spw.logger.Info("configuration watcher started",
		"config_path", spw.configPath,
		"poll_interval", spw.options.PollInterval)
	return nil
}

// Stop permanently stops the watcher.
func (spw *SearchPathWatcher) Stop() error {
	if spw.stopped.Load() {
		return NewConfigWatcherError("watcher is already stopped", nil)
	}

	var stopErr error
	spw.stopOnce.Do(func() {
		spw.mutex.Lock()
		defer spw.mutex.Unlock()

		spw.stopped.Store(true)
		if spw.enabled.CompareAndSwap(true, false) {
			stopErr = spw.watcher.Stop()
		}
	})
	if stopErr != nil {
		return NewConfigWatcherError("failed to stop configuration watcher", stopErr)
	}
	return nil
}

// IsRunning reports whether the watcher is active.
func (spw *SearchPathWatcher) IsRunning() bool {
	return spw.enabled.Load()
}

func (spw *SearchPathWatcher) handleChange(event argus.ChangeEvent) {
	if event.IsDelete {
		spw.logger.Warn("configuration file deleted, keeping last applied state", "path", event.Path)
		return
	}

	cfg, err := LoadManagerConfig(event.Path)
	if err != nil {
		spw.logger.Error("failed to reload configuration", "error", err, "path", event.Path)
		return
	}

	code := spw.manager.ApplyConfig(cfg, spw.options.Callback)
	spw.logger.Info("configuration change applied",
		"path", event.Path,
		"result", code.String(),
		"plugins", spw.manager.PluginsCount())
}
