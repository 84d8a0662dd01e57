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

package kernel

import (
	"testing"

	"github.com/arceos-go/taskcore/pkg/stackpool"
)

func TestTaskKindAndFlags(t *testing.T) {
	pool := stackpool.New()
	th := NewThread(pool.Fetch())
	if !th.IsThread() {
		t.Fatal("expected NewThread to produce a thread task")
	}
	if th.IsIdle() || th.IsOriginal() {
		t.Fatal("plain thread should not be idle or original")
	}

	co := NewCoroutine(pollFunc(func(c *CPU) (int32, bool) { return 0, true }))
	if co.IsThread() {
		t.Fatal("expected NewCoroutine to produce a non-thread task")
	}

	idle := NewIdle(pool.Fetch())
	if !idle.IsIdle() || !idle.IsThread() {
		t.Fatal("idle task should be a thread flagged idle")
	}

	orig := NewOriginal()
	if !orig.IsOriginal() || !orig.IsThread() {
		t.Fatal("original task should be a thread flagged original")
	}
}

func TestTaskIDsAreUnique(t *testing.T) {
	pool := stackpool.New()
	a := NewThread(pool.Fetch())
	b := NewThread(pool.Fetch())
	if a.TaskID() == b.TaskID() {
		t.Fatal("expected distinct task IDs")
	}
}

func TestWakeupStateTransitions(t *testing.T) {
	pool := stackpool.New()

	blocked := NewThread(pool.Fetch())
	blocked.beginBlock()
	blocked.finishBlock(nil)
	if !blocked.wakeup() {
		t.Fatal("expected Blocked->Runnable wakeup to require enqueue")
	}
	if blocked.State() != Runnable {
		t.Fatalf("state = %v, want Runnable", blocked.State())
	}

	blocking := NewThread(pool.Fetch())
	blocking.beginBlock()
	if blocking.wakeup() {
		t.Fatal("expected Blocking->Runnable wakeup to need no enqueue")
	}
	if blocking.State() != Runnable {
		t.Fatalf("state = %v, want Runnable", blocking.State())
	}

	runnable := NewThread(pool.Fetch())
	if runnable.wakeup() {
		t.Fatal("expected Runnable->Runnable wakeup (race) to need no enqueue")
	}
}

func TestWakeupOnExitedPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic waking an exited task")
		}
	}()
	th := NewThread(stackpool.New().Fetch())
	th.markExited(0)
	th.wakeup()
}

func TestPreemptDisableCounting(t *testing.T) {
	th := NewThread(stackpool.New().Fetch())
	if th.PreemptDisabled() {
		t.Fatal("expected preemption enabled by default")
	}
	th.DisablePreempt()
	th.DisablePreempt()
	if !th.PreemptDisabled() {
		t.Fatal("expected preemption disabled after DisablePreempt")
	}
	th.EnablePreempt()
	if !th.PreemptDisabled() {
		t.Fatal("expected preemption still disabled (nested)")
	}
	th.EnablePreempt()
	if th.PreemptDisabled() {
		t.Fatal("expected preemption enabled after matching EnablePreempt calls")
	}
}

func TestEnablePreemptWithoutDisablePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic from unmatched EnablePreempt")
		}
	}()
	NewThread(stackpool.New().Fetch()).EnablePreempt()
}

// pollFunc adapts a plain function to the Future interface for tests.
type pollFunc func(c *CPU) (int32, bool)

func (f pollFunc) Poll(c *CPU) (int32, bool) { return f(c) }
