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
	"github.com/arceos-go/taskcore/internal/klog"
	"github.com/arceos-go/taskcore/pkg/riscv64"
)

// beginBlock transitions the calling task from Runnable to Blocking. It
// is always called by a task on itself, immediately before it decides
// to park; it panics if the task was not Runnable, a contract violation
// per spec.md §7.
func (t *Task) beginBlock() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != Runnable {
		panic("kernel: beginBlock on task not Runnable: " + t.state.String())
	}
	t.state = Blocking
}

// finishBlock installs the saved context and transitions Blocking to
// Blocked, making the task safe to wake from another CPU. If a racing
// wakeup already flipped the task back to Runnable while the context
// was being saved, finishBlock leaves it Runnable: this is the
// Blocking→Runnable race spec.md §3 describes as a deliberate no-op,
// not an error.
func (t *Task) finishBlock(ctx *riscv64.Context) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch t.state {
	case Blocking:
		t.ctx = ctx
		t.state = Blocked
		return true
	case Runnable:
		return false
	default:
		panic("kernel: finishBlock on task in unexpected state: " + t.state.String())
	}
}

// wakeup implements the Blocking→Runnable (no enqueue) vs Blocked→
// Runnable (enqueue) split from the original's task::wakeup, per
// SPEC_FULL.md §12. It reports whether the caller must now enqueue the
// task into a ready queue; Waker.Wake enqueues onto the global queue
// and Waker.WakeLocal onto a local one. Any other starting state is a contract
// violation and panics, matching the original's behavior.
func (t *Task) wakeup() (needsEnqueue bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch t.state {
	case Blocking:
		// The task has not finished saving its context yet; flipping
		// the state back to Runnable in place is enough: the task still
		// parks, but afterPark then finds it Runnable and re-enqueues it
		// instead of marking it Blocked.
		t.state = Runnable
		return false
	case Blocked:
		t.state = Runnable
		return true
	case Runnable:
		// Waking an already-runnable task is tolerated as a race, per
		// spec.md §3's Runnable→Runnable noop transition.
		return false
	default:
		panic("kernel: wakeup on task in unexpected state: " + t.state.String())
	}
}

// markExited transitions the task to Exited and records its exit code.
// It panics if called on a task that is not currently running on some
// CPU's Runnable slot (i.e. not actually Runnable), since only a
// running task can exit itself.
func (t *Task) markExited(code int32) {
	t.mu.Lock()
	if t.state != Runnable {
		t.mu.Unlock()
		panic("kernel: markExited on task not Runnable: " + t.state.String())
	}
	t.state = Exited
	t.mu.Unlock()
	t.exitCode.Store(code)
	klog.WithTask(t.id).Debugf("exited with code %d", code)
}

// savedContext returns the task's saved register context, valid only
// while the task is Blocked or freshly picked by PickNext (not yet
// resumed). It is nil for tasks that have never blocked (including one
// about to run for the first time via its trampoline).
func (t *Task) savedContext() *riscv64.Context { return t.ctx }

func (t *Task) clearContext() { t.ctx = nil }
