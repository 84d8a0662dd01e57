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
	"sync"
	"sync/atomic"

	"github.com/arceos-go/taskcore/pkg/riscv64"
	"github.com/arceos-go/taskcore/pkg/stackpool"
)

var nextTaskID uint64

// Kind discriminates a Task's execution model. spec.md's DESIGN NOTES §9
// recommends an explicit tag over relying on a dangling sentinel pointer
// to distinguish thread tasks from coroutine tasks; Kind is that tag.
type Kind uint8

const (
	// Thread tasks are stackful and preemptible: in this hosted model
	// each is backed by a dedicated goroutine parked on a channel
	// between switches, since Go provides no way to swap a goroutine's
	// stack pointer the way the original swaps %sp directly.
	Thread Kind = iota + 1
	// Coroutine tasks are stackless: the dispatch loop polls their
	// Future directly with no goroutine of their own.
	Coroutine
)

func (k Kind) String() string {
	if k == Thread {
		return "Thread"
	}
	return "Coroutine"
}

// Task is the single task object backing both execution models, per
// spec.md §3. Every field group below is either immutable after
// construction or protected by the mutex noted in its comment.
type Task struct {
	id uint64

	// Immutable for the life of the task.
	kind       Kind
	isIdle     bool
	isInit     bool
	isOriginal bool

	mu    sync.Mutex
	state State

	exitCode atomic.Int32

	preemptDisableCount atomic.Int32

	// Coroutine fields. future is nil for Thread tasks.
	future Future

	// Thread fields. frame is the task's live architectural register
	// file: syscall/exception dispatch reads and writes it directly
	// (SyscallArgs/SetReturnValue and friends), the way a real trap
	// handler operates on the interrupted context in place. ctx is nil
	// while the thread is actually running (no saved frame to restore)
	// or before it has ever run; it holds frame's contents, saved via
	// riscv64.SaveFrame at the moment the thread parks, while
	// Blocked/Blocking/ready-but-not-running, and is copied back into
	// frame via riscv64.LoadFrame just before the thread resumes.
	// ownedStack is nil for Coroutine tasks and the original task; the
	// idle task holds a stack from its own separate pool.
	frame      riscv64.Context
	ctx        *riscv64.Context
	ownedStack *stackpool.Stack
	entry      func(c *CPU) int32
	startOnce  sync.Once

	// resume/parked implement the goroutine-parking hosted-model
	// substitute for a manual stack-pointer swap: runCurrentOnce sends on
	// resume to let a thread's goroutine continue running, and the
	// goroutine sends on parked just before it blocks on resume again,
	// so the dispatcher knows the switch is complete.
	resume chan struct{}
	parked chan struct{}
}

// Future is polled directly by a CPU's dispatch loop in place of a
// context switch, per spec.md §3's coroutine model. Poll returns the
// task's exit code and true once it has run to completion; otherwise it
// returns false having arranged for a future wake (typically by
// registering the supplied CPU's current task as a block-queue waiter).
type Future interface {
	Poll(c *CPU) (exitCode int32, done bool)
}

// NewThread creates an unstarted thread task with no saved context; the
// CPU's Spawn* methods set its entry function. ctx is first filled in
// when the task parks while blocking.
func NewThread(stack *stackpool.Stack) *Task {
	t := newTaskBase(Thread)
	t.ownedStack = stack
	t.resume = make(chan struct{})
	t.parked = make(chan struct{})
	return t
}

// NewCoroutine creates an unstarted coroutine task wrapping fut.
func NewCoroutine(fut Future) *Task {
	t := newTaskBase(Coroutine)
	t.future = fut
	return t
}

// NewIdle creates the per-CPU idle task. Idle tasks are threads (they
// still need a stack to run their halt loop) but are flagged so the
// scheduler never places them in a ready queue: a CPU falls back to its
// own idle task only when both ready queues report sched.NoPriority.
func NewIdle(stack *stackpool.Stack) *Task {
	t := NewThread(stack)
	t.isIdle = true
	return t
}

// NewOriginal creates the synthetic task representing the CPU's boot
// execution context before the scheduler takes over, per spec.md §4.2.
// It owns no pool stack because it runs on the native boot stack.
func NewOriginal() *Task {
	t := newTaskBase(Thread)
	t.isOriginal = true
	t.resume = make(chan struct{})
	t.parked = make(chan struct{})
	return t
}

func newTaskBase(k Kind) *Task {
	t := &Task{
		id:    atomic.AddUint64(&nextTaskID, 1),
		kind:  k,
		state: Runnable,
	}
	return t
}

// TaskID implements sched.Identifiable and sched.Waiter.
func (t *Task) TaskID() uint64 { return t.id }

// IsThread reports whether this task is stackful.
func (t *Task) IsThread() bool { return t.kind == Thread }

// IsIdle reports whether this is a per-CPU idle task.
func (t *Task) IsIdle() bool { return t.isIdle }

// IsOriginal reports whether this is a CPU's synthetic boot task.
func (t *Task) IsOriginal() bool { return t.isOriginal }

// State returns the task's current state under its state lock.
func (t *Task) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// ExitCode returns the task's exit code. Only meaningful once State()
// reports Exited.
func (t *Task) ExitCode() int32 { return t.exitCode.Load() }

// PreemptDisableCount reports the task's current preemption-disable
// nesting depth.
func (t *Task) PreemptDisableCount() int32 { return t.preemptDisableCount.Load() }

// DisablePreempt increments the nesting depth.
func (t *Task) DisablePreempt() { t.preemptDisableCount.Add(1) }

// EnablePreempt decrements the nesting depth. It panics if called more
// times than DisablePreempt, a contract violation per spec.md §7.
func (t *Task) EnablePreempt() {
	if t.preemptDisableCount.Add(-1) < 0 {
		panic("kernel: EnablePreempt without matching DisablePreempt")
	}
}

// PreemptDisabled reports whether preemption is currently disabled.
func (t *Task) PreemptDisabled() bool { return t.preemptDisableCount.Load() > 0 }

// Frame returns the task's live register frame, the context syscall and
// exception handlers read arguments from and write results into. It is
// only meaningful while the task is actually running: once parked, its
// contents are captured into the saved context returned by
// savedContext instead.
func (t *Task) Frame() *riscv64.Context { return &t.frame }
