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
	"github.com/arceos-go/taskcore/pkg/riscv64"
	"github.com/arceos-go/taskcore/pkg/sched"
)

// idleLoop is the body every CPU's idle task runs: it never appears in
// a ready queue (dispatchNext selects it only as a fallback) and simply
// yields forever so the run loop keeps cycling and re-evaluating both
// ready queues.
func idleLoop(c *CPU) int32 {
	for {
		Yield(c)
	}
}

// Run starts c's perpetual dispatch loop. It does not return; callers
// (internal/hostsim) run it on a goroutine pinned to its own OS thread
// via runtime.LockOSThread, standing in for a dedicated physical CPU.
func (c *CPU) Run() {
	for {
		c.DrainPendingInterrupts()
		c.runCurrentOnce()
		guard := acquireSwitchGuard(c)
		c.dispatchNext()
		guard.Release()
	}
}

// DrainPendingInterrupts delivers every interrupt cause queued by
// RaiseInterrupt since the last safe point. Run calls this before
// runCurrentOnce on every iteration; it is also exported for harnesses
// (and tests) that single-step a CPU instead of calling Run.
func (c *CPU) DrainPendingInterrupts() {
	for {
		select {
		case cause := <-c.pendingIntr:
			if c.intrHandler != nil {
				c.intrHandler(c, cause)
			}
		default:
			return
		}
	}
}

// runCurrentOnce executes whatever task currently occupies the CPU
// until it yields, blocks or exits, then reconciles its resulting
// state. Coroutines are polled in-line; thread tasks are handed off to
// their dedicated goroutine via the resume/parked rendezvous described
// on Task.
func (c *CPU) runCurrentOnce() {
	t := c.proc.current
	if t.IsOriginal() {
		// The original task stands for the boot context that called Run;
		// it has no entry to execute and is never put back in a queue.
		return
	}
	if !t.IsThread() {
		code, done := t.future.Poll(c)
		if done {
			t.markExited(code)
			return
		}
		if t.State() == Runnable {
			c.proc.local.Add(t)
		}
		return
	}

	t.startOnce.Do(func() {
		go c.runThreadGoroutine(t)
	})
	if t.ctx != nil {
		riscv64.LoadFrame(&t.frame, t.ctx)
		t.clearContext()
	}
	t.resume <- struct{}{}
	<-t.parked
	c.afterPark(t)
}

func (c *CPU) runThreadGoroutine(t *Task) {
	<-t.resume
	code := t.entry(c)
	Exit(c, code)
}

// afterPark reconciles a thread task's state immediately after its
// goroutine signals parked, per the Switch step 6 semantics carried
// over from the original's exchange_current (SPEC_FULL.md §12).
func (c *CPU) afterPark(t *Task) {
	switch t.State() {
	case Exited:
		if t.ownedStack != nil && !t.IsIdle() {
			c.proc.pool.Recycle(t.ownedStack)
		}
	case Blocked:
		// Already installed into a block queue by Block/BlockWithCond;
		// nothing further to enqueue.
	case Blocking:
		// A Wake has not yet raced in; capture the task's live frame
		// into a saved context (SIE bit already cleared, since nothing
		// in the hosted model raises it while a task is parking) and
		// finalize the park now that the goroutine has actually
		// suspended.
		var saved riscv64.Context
		riscv64.SaveFrame(&saved, &t.frame, 0)
		if !t.finishBlock(&saved) {
			// The race described in spec.md §3 resolved to Runnable
			// between beginBlock and here: re-enqueue it as Runnable.
			c.proc.local.Add(t)
		}
	case Runnable:
		if !t.IsIdle() {
			c.proc.local.Add(t)
		}
	}
}

// dispatchNext selects the next task to run by comparing the local and
// global ready queues' HighestPriorityHint, per spec.md §4.5: lower
// numeric hint wins, ties favor the local queue for cache locality, and
// an entirely empty pair of queues falls back to the idle task.
func (c *CPU) dispatchNext() {
	localHint := c.proc.local.HighestPriorityHint()
	globalHint := globalScheduler.highestPriorityHint()

	var next *Task
	switch {
	case localHint == sched.NoPriority && globalHint == sched.NoPriority:
		next = c.proc.idle
	case globalHint < localHint:
		t, ok := globalScheduler.pickNext()
		if !ok {
			t, _ = c.proc.local.PickNext()
		}
		next = t
	default:
		t, ok := c.proc.local.PickNext()
		if !ok {
			t, _ = globalScheduler.pickNext()
		}
		next = t
	}
	if next == nil {
		next = c.proc.idle
	}
	c.proc.current = next
}
