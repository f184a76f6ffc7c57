// router.go: Inter-plugin request routing and the request log
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package justplug

import (
	"sync"
	"time"

	"github.com/agilira/go-timecache"
	"github.com/google/uuid"
)

// defaultRequestLogSize bounds the in-memory request log.
const defaultRequestLogSize = 256

// ManagerRequestFunc answers a request addressed to the manager itself
// (empty receiver).
type ManagerRequestFunc func(sender string, code uint16, payload *Payload) uint16

// RequestRecord is one routed request as seen by the router.
type RequestRecord struct {
	ID       string
	Sender   string
	Receiver string
	Code     uint16
	Result   uint16
	At       time.Time
}

// RequestLog is a bounded in-memory log of routed requests. It keeps the
// most recent entries and is safe to read from any goroutine, since the
// trampoline may run on any.
type RequestLog struct {
	mu      sync.Mutex
	max     int
	entries []RequestRecord
}

func newRequestLog(max int) *RequestLog {
	return &RequestLog{max: max}
}

func (l *RequestLog) append(entry RequestRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
	if len(l.entries) > l.max {
		l.entries = l.entries[len(l.entries)-l.max:]
	}
}

// Entries returns a copy of the logged requests, oldest first.
func (l *RequestLog) Entries() []RequestRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]RequestRecord, len(l.entries))
	copy(out, l.entries)
	return out
}

// Requests returns the manager's request log.
func (m *Manager) Requests() *RequestLog {
	return m.requests
}

// HandleManagerRequest registers a handler for a manager-addressed request
// code (empty receiver). Codes without a handler answer 0.
func (m *Manager) HandleManagerRequest(code uint16, handler ManagerRequestFunc) {
	m.managerHandlers[code] = handler
}

// route is the trampoline injected into every plugin factory. An empty
// receiver addresses the manager; otherwise the request is dispatched to the
// receiver's live instance and its answer returned verbatim. Any other
// outcome answers 0.
//
// The payload belongs to the sender and must remain valid until the call
// returns. The router does not synchronize concurrent calls.
func (m *Manager) route(sender, receiver string, code uint16, payload *Payload) uint16 {
	m.logger.Debug("routing request", "sender", sender, "receiver", receiver, "code", code)

	var result uint16
	if receiver == "" {
		if handler := m.managerHandlers[code]; handler != nil {
			result = handler(sender, code, payload)
		}
	} else if rec := m.reg.get(receiver); rec != nil && rec.loaded() {
		result = rec.instance.HandleRequest(sender, code, payload)
	}

	m.requests.append(RequestRecord{
		ID:       uuid.NewString(),
		Sender:   sender,
		Receiver: receiver,
		Code:     code,
		Result:   result,
		At:       timecache.CachedTime(),
	})
	return result
}
