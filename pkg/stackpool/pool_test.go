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

package stackpool

import "testing"

func TestFetchAllocatesWhenEmpty(t *testing.T) {
	p := New()
	s := p.Fetch()
	if s == nil {
		t.Fatal("Fetch returned nil")
	}
	if len(s.Bytes()) != Size {
		t.Fatalf("stack size = %d, want %d", len(s.Bytes()), Size)
	}
}

func TestRecycleThenFetchReusesStack(t *testing.T) {
	p := New()
	s1 := p.Fetch()
	p.Recycle(s1)
	s2 := p.Fetch()
	if s1 != s2 {
		t.Fatalf("expected recycled stack to be reused, got different stacks (%d != %d)", s1.ID(), s2.ID())
	}
}

func TestSwapCurr(t *testing.T) {
	p := New()
	s1 := p.Fetch()
	old := p.SwapCurr(s1)
	if old != nil {
		t.Fatalf("expected nil previous stack, got %v", old)
	}
	s2 := p.Fetch()
	old2 := p.SwapCurr(s2)
	if old2 != s1 {
		t.Fatalf("expected SwapCurr to return s1")
	}
}

func TestRecycleNilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic recycling nil stack")
		}
	}()
	New().Recycle(nil)
}
