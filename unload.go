// unload.go: Reverse-order teardown with residual cleanup
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package justplug

// Unload tears down every registered plugin: first the load order in exact
// reverse, then any residual records that were discovered but never loaded.
// Each record is destroyed instance-first: AboutToBeUnloaded is invoked
// whenever an instance exists, the instance is dropped, and only then is the
// library handle closed.
//
// The registry and the locations list are cleared unconditionally. When any
// library handle is still reported open after its close, UnloadNotAll is
// emitted and returned; otherwise Success.
func (m *Manager) Unload(callback EventFunc) ReturnCode {
	allUnloaded := true

	for i := len(m.reg.loadOrder) - 1; i >= 0; i-- {
		name := m.reg.loadOrder[i]
		rec := m.reg.get(name)
		if rec == nil {
			continue
		}
		if !rec.destroy() {
			allUnloaded = false
		}
		m.reg.remove(name)
		m.logger.Debug("plugin unloaded", "name", name)
	}

	// Residual records: discovered but never loaded. Same instance-then-
	// library discipline, registration order.
	for _, name := range m.reg.names() {
		rec := m.reg.get(name)
		if !rec.destroy() {
			allUnloaded = false
		}
		m.reg.remove(name)
		m.logger.Debug("residual plugin destroyed", "name", name)
	}

	m.reg.clear()

	if !allUnloaded {
		emitEvent(callback, UnloadNotAll, "")
		return UnloadNotAll
	}
	return Success
}
