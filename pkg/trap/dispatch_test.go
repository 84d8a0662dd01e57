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

package trap

import "testing"

func TestHandlerMapFallsBackToDefault(t *testing.T) {
	m := NewHandlerMap[uint64, func() string](func() string { return "default" })
	if got := m.Lookup(7)(); got != "default" {
		t.Fatalf("Lookup(unregistered) = %q, want default", got)
	}
	m.Register(7, func() string { return "seven" })
	if got := m.Lookup(7)(); got != "seven" {
		t.Fatalf("Lookup(7) = %q, want seven", got)
	}
}

func TestHandlerMapRegisterReplacesPriorHandler(t *testing.T) {
	m := NewHandlerMap[uint64, func() int](func() int { return -1 })
	m.Register(1, func() int { return 1 })
	m.Register(1, func() int { return 2 })
	if got := m.Lookup(1)(); got != 2 {
		t.Fatalf("Lookup(1) = %d, want 2 (last registration wins)", got)
	}
}

func TestHandlerMapUnregisterRevertsToDefault(t *testing.T) {
	m := NewHandlerMap[uint64, func() int](func() int { return -1 })
	m.Register(1, func() int { return 1 })
	m.Unregister(1)
	if got := m.Lookup(1)(); got != -1 {
		t.Fatalf("Lookup(1) after Unregister = %d, want default -1", got)
	}
}

func TestDefaultHandlersPanicOnUnregisteredCause(t *testing.T) {
	tbl := NewTables()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic from unregistered interrupt cause")
		}
	}()
	tbl.Interrupts.Lookup(999)(nil, 999)
}
