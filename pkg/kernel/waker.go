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

import "github.com/arceos-go/taskcore/pkg/sched"

// Waker wraps a *Task so it can be stored in a sched.BlockQueue, which
// only knows about the sched.Waiter interface (TaskID + Wake). This is
// the wake-by-ref side of the wake-by-ref vs drop distinction in
// spec.md's DESIGN NOTES §9: waking a parked task never destroys
// anything, it only flips state and conditionally re-enqueues.
type Waker struct {
	task *Task
}

// NewWaker wraps t for insertion into a block queue.
func NewWaker(t *Task) *Waker { return &Waker{task: t} }

// TaskID implements sched.Identifiable.
func (w *Waker) TaskID() uint64 { return w.task.TaskID() }

// Task returns the wrapped task.
func (w *Waker) Task() *Task { return w.task }

// Wake implements sched.Waiter by running the full Wakeup algorithm
// against the wrapped task: flip its state and, if it was parked in a
// block queue (Blocked, not merely Blocking), enqueue it onto the
// global ready queue so any CPU can pick it up. This is the wake-to-
// global half of the local-vs-global distinction spec.md §4.6 describes
// for the wake variants; the wake-to-local half is WakeOneLocal/
// WakeAllLocal below, which go through WakeLocal instead of Wake.
func (w *Waker) Wake() {
	if w.task.wakeup() {
		globalScheduler.enqueue(w.task)
	}
}

// WakeLocal behaves like Wake but enqueues onto cpu's local ready queue
// instead of the global one, for callers that know the waiter should
// stay on the current CPU for cache locality.
func (w *Waker) WakeLocal(cpu *CPU) {
	if w.task.wakeup() {
		cpu.proc.local.Add(w.task)
	}
}

// WakeOneLocal wakes and removes the first eligible waiter in q,
// enqueuing it onto cpu's local ready queue instead of the shared
// global one that q.WakeOne always targets. It reports whether any
// waiter was woken.
func WakeOneLocal(q *sched.BlockQueue[*Waker], cpu *CPU) bool {
	return q.WakeOneWith(func(w *Waker) { w.WakeLocal(cpu) })
}

// WakeAllLocal behaves like WakeOneLocal but wakes every eligible
// waiter in q, reporting how many were woken.
func WakeAllLocal(q *sched.BlockQueue[*Waker], cpu *CPU) int {
	return q.WakeAllWith(func(w *Waker) { w.WakeLocal(cpu) })
}
