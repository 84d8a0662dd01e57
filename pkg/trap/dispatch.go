// Copyright 2026 The taskcore Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package trap implements the extensible trap-dispatch tables described
// in spec.md §4.7: interrupt, exception, external-interrupt and
// syscall causes are each routed through their own HandlerMap, with a
// panicking default for any cause nobody registered a handler for.
package trap

import "sync"

// HandlerMap is a registry from a numeric trap cause to a handler
// function, keyed generically so the same implementation backs all
// four tables (interrupt/exception/extintr/syscall) despite their
// differing handler signatures.
//
// register_trap_handler/register_extintr_handler/register_syscall_handler
// in the original always fully replace whatever was previously
// registered for a cause rather than composing handlers; Register here
// does the same, per SPEC_FULL.md §12.
type HandlerMap[K comparable, F any] struct {
	mu       sync.RWMutex
	handlers map[K]F
	def      F
}

// NewHandlerMap returns an empty table that falls back to def for any
// unregistered cause. def should panic: spec.md §7 treats an
// unhandled trap cause as a contract violation, not a recoverable
// error.
func NewHandlerMap[K comparable, F any](def F) *HandlerMap[K, F] {
	return &HandlerMap[K, F]{handlers: make(map[K]F), def: def}
}

// Register installs h as the handler for key, discarding whatever was
// registered before.
func (m *HandlerMap[K, F]) Register(key K, h F) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[key] = h
}

// Lookup returns the handler registered for key, or the table's default
// if none was registered.
func (m *HandlerMap[K, F]) Lookup(key K) F {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if h, ok := m.handlers[key]; ok {
		return h
	}
	return m.def
}

// Unregister removes any handler for key, reverting lookups to the
// table's default.
func (m *HandlerMap[K, F]) Unregister(key K) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.handlers, key)
}
