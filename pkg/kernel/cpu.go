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
	"runtime"

	"github.com/arceos-go/taskcore/pkg/sched"
)

// CPU is the explicit handle threaded through every task body and
// Future.Poll call. spec.md's original design keeps an ambient
// thread-local "current processor" (the Rust percpu crate); Go has no
// clean analogue that isn't goroutine-local-storage trickery, so this
// runtime follows gVisor's own idiom instead (explicit *Task/*Context
// receivers, see task_exec.go) and threads *CPU explicitly through
// every call that needs it.
type CPU struct {
	proc *Processor

	// irqGuard/irqRelease back SwitchGuard. They are host hooks
	// rather than real interrupt-mask instructions; internal/hostsim's
	// BootCluster passes nil for both.
	irqGuard   func()
	irqRelease func()

	// pendingIntr/intrHandler are how the hosted model delivers an
	// interrupt "on" this CPU without a second goroutine racing the
	// run loop's own mutation of proc.current and the ready queues:
	// anything that wants to interrupt this CPU posts a cause here,
	// and Run drains it between task executions, a safe point the way
	// PreemptCurrent already treats thread preemption. Real hardware
	// has no such restriction, but this runtime only ever preempts at
	// safe points to begin with (spec.md §4.8), so the simplification
	// does not change observable scheduling behavior.
	pendingIntr chan uint64
	intrHandler func(c *CPU, cause uint64)

	// guardHeld tracks whether a SwitchGuard is currently outstanding on
	// this CPU. acquireSwitchGuard is only ever called by the CPU's own
	// Run loop, never concurrently with itself, so a plain bool (not an
	// atomic) is enough.
	guardHeld bool
}

// NewCPU wraps proc in a dispatch handle. irqGuard/irqRelease may be
// nil, in which case SwitchGuard is a no-op.
func NewCPU(proc *Processor, irqGuard, irqRelease func()) *CPU {
	return &CPU{
		proc:        proc,
		irqGuard:    irqGuard,
		irqRelease:  irqRelease,
		pendingIntr: make(chan uint64, 4),
	}
}

// SetInterruptHandler installs the callback Run invokes for each
// pending interrupt cause raised via RaiseInterrupt. Package trap's
// Tables.DispatchInterrupt is the handler internal/hostsim installs.
func (c *CPU) SetInterruptHandler(h func(c *CPU, cause uint64)) {
	c.intrHandler = h
}

// RaiseInterrupt posts cause for delivery the next time Run reaches a
// safe point. It never blocks: a full queue drops the interrupt and
// the caller should treat that as a missed tick, the same tolerance
// spec.md §7 gives other races that cannot corrupt state, only delay
// scheduling fairness.
func (c *CPU) RaiseInterrupt(cause uint64) bool {
	select {
	case c.pendingIntr <- cause:
		return true
	default:
		return false
	}
}

// ID returns the owning processor's logical CPU number.
func (c *CPU) ID() uint64 { return c.proc.ID() }

// Current returns the task currently occupying this CPU.
func (c *CPU) Current() *Task { return c.proc.Current() }

// SpawnToLocal creates a thread task running entry and adds it to this
// CPU's local ready queue, per spec.md §4.3.
func (c *CPU) SpawnToLocal(entry func(c *CPU) int32) *Task {
	t := c.newThreadTask(entry)
	c.proc.local.Add(t)
	return t
}

// SpawnToGlobal behaves like SpawnToLocal but adds the new task to the
// shared global ready queue instead, making it eligible to run on any
// CPU.
func (c *CPU) SpawnToGlobal(entry func(c *CPU) int32) *Task {
	t := c.newThreadTask(entry)
	globalScheduler.enqueue(t)
	return t
}

// SpawnToLocalWithPriority is SpawnToLocal plus an initial priority
// assignment. It returns *sched.InvalidPriorityError if the active
// local policy rejects the priority.
func (c *CPU) SpawnToLocalWithPriority(entry func(c *CPU) int32, priority int) (*Task, error) {
	t := c.newThreadTask(entry)
	if !c.proc.local.SetPriority(t, priority) {
		return nil, &sched.InvalidPriorityError{Priority: priority}
	}
	c.proc.local.Add(t)
	return t, nil
}

// SpawnToGlobalWithPriority is SpawnToGlobal plus an initial priority
// assignment.
func (c *CPU) SpawnToGlobalWithPriority(entry func(c *CPU) int32, priority int) (*Task, error) {
	t := c.newThreadTask(entry)
	if !globalScheduler.setPriority(t, priority) {
		return nil, &sched.InvalidPriorityError{Priority: priority}
	}
	globalScheduler.enqueue(t)
	return t, nil
}

// SpawnCoroutineToLocal adds a stackless coroutine task to this CPU's
// local ready queue.
func (c *CPU) SpawnCoroutineToLocal(fut Future) *Task {
	t := NewCoroutine(fut)
	c.proc.local.Add(t)
	return t
}

// SpawnCoroutineToGlobal adds a stackless coroutine task to the shared
// global ready queue.
func (c *CPU) SpawnCoroutineToGlobal(fut Future) *Task {
	t := NewCoroutine(fut)
	globalScheduler.enqueue(t)
	return t
}

func (c *CPU) newThreadTask(entry func(c *CPU) int32) *Task {
	stack := c.proc.pool.Fetch()
	t := NewThread(stack)
	t.entry = entry
	return t
}

// ChangePriority records a new priority for t in both the local and the
// global policy. It returns *sched.InvalidPriorityError if the local
// policy rejects the priority; the global policy's answer is not
// checked. A task already sitting in a ready queue is not moved by this
// call.
func (c *CPU) ChangePriority(t *Task, priority int) error {
	if !c.proc.local.SetPriority(t, priority) {
		return &sched.InvalidPriorityError{Priority: priority}
	}
	globalScheduler.setPriority(t, priority)
	return nil
}

// Yield gives up the CPU while remaining Runnable: the caller is
// rescheduled onto the local ready queue and will run again once
// picked by PickNext.
func Yield(c *CPU) {
	t := c.proc.current
	parkSelf(c, t)
}

// Block parks the calling task on q, transitioning it out of Runnable
// first via beginBlock so a racing Wake is handled per spec.md §3.
func Block(c *CPU, q *sched.BlockQueue[*Waker]) {
	t := c.proc.current
	t.beginBlock()
	q.Add(NewWaker(t))
	parkSelf(c, t)
}

// BlockWithCond behaves like Block but only permits wakeup while cond
// reports true, using the block queue's add_with_cond variant.
func BlockWithCond(c *CPU, q *sched.BlockQueue[*Waker], cond func() bool) {
	t := c.proc.current
	t.beginBlock()
	q.AddWithCond(NewWaker(t), cond)
	parkSelf(c, t)
}

// Exit terminates the calling task with the given exit code. It never
// returns: the underlying goroutine (for a thread task) is torn down
// with runtime.Goexit after handing control back to the CPU's
// dispatch loop.
func Exit(c *CPU, code int32) {
	t := c.proc.current
	t.markExited(code)
	t.parked <- struct{}{}
	if t.IsThread() {
		runtime.Goexit()
	}
}

func parkSelf(c *CPU, t *Task) {
	t.parked <- struct{}{}
	<-t.resume
}

// PreemptCurrent is invoked by the timer trap handler (package trap)
// when SchedulerTick reports the running task's slice has expired. It
// runs at the safe point where Run drains pending interrupts, while the
// current thread task is parked, so it puts that task back on the local
// ready queue and picks the next task. A task with preemption disabled
// is left in place and the request is dropped, not deferred.
func (c *CPU) PreemptCurrent() {
	t := c.proc.current
	if t.IsIdle() || t.IsOriginal() || t.PreemptDisabled() {
		return
	}
	if t.IsThread() {
		c.proc.local.Add(t)
		guard := acquireSwitchGuard(c)
		c.dispatchNext()
		guard.Release()
	}
	// Coroutines are preempted implicitly: the dispatch loop re-checks
	// priority after every Poll, so there is nothing further to do here.
}

// SchedulerTick accounts one timer tick against the current task using
// whichever queue it would be re-added to (local, since per-CPU
// policies own tick accounting for tasks they dispatched) and reports
// whether it should be rescheduled.
func (c *CPU) SchedulerTick() bool {
	return c.proc.local.TickCurrent(c.proc.current)
}
