// load.go: Dependency resolution, load ordering, and instantiation
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package justplug

// Load resolves every registered plugin's dependencies, computes a
// topological load order, instantiates the plugins that are not yet
// instantiated, and invokes their Loaded callbacks in that order.
//
// With continueOnError false the call aborts on the first dependency
// failure. With continueOnError true all failures are collected through
// callback, records with unsatisfied dependencies are skipped, and the
// summary is the first failure's code when any occurred, Success otherwise.
//
// Load is idempotent: records already instantiated are not re-instantiated
// and their Loaded is not re-invoked. A later call recomputes the graph,
// possibly including newly discovered plugins, without reordering
// already-loaded plugins relative to each other.
func (m *Manager) Load(continueOnError bool, callback EventFunc) ReturnCode {
	for _, rec := range m.reg.records {
		rec.graphID = -1
	}

	// Dependency check in registration order; graph ids follow it so the
	// ordering is deterministic for a given discovery sequence.
	firstFailure := Success
	graph := newDependencyGraph(len(m.reg.order))
	for _, name := range m.reg.order {
		rec := m.reg.get(name)
		code := m.checkDependencies(rec, callback)
		if !code.Ok() {
			if !continueOnError {
				return code
			}
			if firstFailure.Ok() {
				firstFailure = code
			}
		}
		if rec.depStatus == DepOk {
			rec.graphID = graph.addNode(name)
		}
	}

	// Parent links: a plugin's node depends on each of its dependencies'
	// nodes. A dependency without a node can only occur when a provisional Ok
	// from a dependency cycle let a record pass while a member of that cycle
	// failed; that is reported as a cycle.
	for _, name := range m.reg.order {
		rec := m.reg.get(name)
		if rec.graphID == -1 {
			continue
		}
		for _, dep := range rec.info.Dependencies {
			parent := m.reg.get(dep.Name).graphID
			if parent == -1 {
				emitEvent(callback, LoadDependencyCycle, "")
				return LoadDependencyCycle
			}
			graph.addParent(rec.graphID, parent)
		}
	}

	order, hasCycle := graph.topologicalSort()
	if hasCycle {
		emitEvent(callback, LoadDependencyCycle, "")
		return LoadDependencyCycle
	}

	m.logger.Debug("computed load order", "order", order)

	for _, name := range order {
		rec := m.reg.get(name)
		if rec.instance != nil {
			continue
		}
		factory, err := rec.lib.FactorySymbol(SymbolCreate)
		if err != nil {
			// Discovery verified the symbol; failure here means the module
			// changed underneath us.
			m.logger.Error("cannot resolve plugin factory", "name", name, "error", err)
			emitEvent(callback, UnknownError, rec.path)
			if !continueOnError {
				return UnknownError
			}
			if firstFailure.Ok() {
				firstFailure = UnknownError
			}
			continue
		}
		rec.factory = factory
		rec.instance = factory(m.route)
		rec.instance.Loaded()
		m.logger.Info("plugin loaded", "name", name, "version", rec.info.Version)
	}

	m.reg.loadOrder = order
	return firstFailure
}

// checkDependencies verifies, transitively, that every declared dependency
// of rec resolves to a registered record in a compatible version. The result
// is memoized in rec.depStatus so a shared dependency is visited once. A
// record whose own dependencies resolve but fail further down the chain
// keeps DepUnknown; only the record with the unresolved dependency is marked.
//
// A record that is re-entered while its own check is still running answers a
// provisional Success; the topological sort reports the true cycle.
func (m *Manager) checkDependencies(rec *pluginRecord, callback EventFunc) ReturnCode {
	switch rec.depStatus {
	case DepOk:
		return Success
	case DepMissing:
		return LoadDependencyNotFound
	case DepBadVersion:
		return LoadDependencyBadVersion
	}

	if rec.checking {
		return Success
	}
	rec.checking = true
	defer func() { rec.checking = false }()

	for _, dep := range rec.info.Dependencies {
		depRec := m.reg.get(dep.Name)
		if depRec == nil {
			rec.depStatus = DepMissing
			emitEvent(callback, LoadDependencyNotFound, rec.path)
			return LoadDependencyNotFound
		}
		if !VersionCompatible(depRec.info.Version, dep.MinVersion) {
			rec.depStatus = DepBadVersion
			emitEvent(callback, LoadDependencyBadVersion, rec.path)
			return LoadDependencyBadVersion
		}
		if code := m.checkDependencies(depRec, callback); !code.Ok() {
			return code
		}
	}

	rec.depStatus = DepOk
	return Success
}
