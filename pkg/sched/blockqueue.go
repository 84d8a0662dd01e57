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

package sched

// Waiter is what a BlockQueue needs from a parked task: identity plus
// the hook the queue calls to actually wake it. Package kernel's Waker
// type implements this by wrapping a *kernel.Task and running the
// task's wakeup transition, keeping this package free of any scheduling-orchestration
// dependency.
type Waiter interface {
	Identifiable
	Wake()
}

type waitEntry[W Waiter] struct {
	w    W
	cond func() bool
}

// BlockQueue is an ordered list of parked waiters, per spec.md §4.6. The
// with-cond/without-cond half of the eight wake variants comes from the
// per-entry optional predicate Add/AddWithCond install: a
// predicate-bearing entry is only woken if its predicate currently
// reports true. The local/global half comes from WakeOneWith/
// WakeAllWith's wake parameter: WakeOne/WakeAll wake through the
// waiter's own Wake (global, for package kernel's Waker), while package
// kernel's WakeOneLocal/WakeAllLocal call WakeOneWith/WakeAllWith with a
// wake func that enqueues onto a specific CPU's local ready queue
// instead.
type BlockQueue[W Waiter] struct {
	waiters []waitEntry[W]
}

// NewBlockQueue returns an empty block queue.
func NewBlockQueue[W Waiter]() *BlockQueue[W] {
	return &BlockQueue[W]{}
}

// Add appends an unconditional waiter to the back of the queue.
func (q *BlockQueue[W]) Add(w W) {
	q.waiters = append(q.waiters, waitEntry[W]{w: w})
}

// AddWithCond appends a waiter guarded by a wake predicate: WakeAll and
// the predicate-checking wake variants skip this entry while cond()
// reports false.
func (q *BlockQueue[W]) AddWithCond(w W, cond func() bool) {
	q.waiters = append(q.waiters, waitEntry[W]{w: w, cond: cond})
}

// Len reports the number of parked waiters.
func (q *BlockQueue[W]) Len() int { return len(q.waiters) }

func (q *BlockQueue[W]) removeAt(i int) waitEntry[W] {
	e := q.waiters[i]
	q.waiters = append(q.waiters[:i], q.waiters[i+1:]...)
	return e
}

func eligible[W Waiter](e waitEntry[W]) bool {
	return e.cond == nil || e.cond()
}

// WakeOne wakes and removes the first eligible waiter, in queue order.
// It reports whether any waiter was woken.
func (q *BlockQueue[W]) WakeOne() bool {
	return q.WakeOneWith(func(w W) { w.Wake() })
}

// WakeAll wakes and removes every eligible waiter, reporting how many
// were woken. Ineligible (predicate-false) waiters remain queued.
func (q *BlockQueue[W]) WakeAll() int {
	return q.WakeAllWith(func(w W) { w.Wake() })
}

// WakeOneWith wakes and removes the first eligible waiter, in queue
// order, using wake instead of the waiter's own Wake method. This is
// the hook package kernel's WakeOneLocal builds on: a caller that wants
// a waiter re-enqueued onto a specific CPU's local ready queue, rather
// than the global one Wake always targets, supplies a wake func that
// does that instead. It reports whether any waiter was woken.
func (q *BlockQueue[W]) WakeOneWith(wake func(W)) bool {
	for i, e := range q.waiters {
		if eligible(e) {
			q.removeAt(i)
			wake(e.w)
			return true
		}
	}
	return false
}

// WakeAllWith behaves like WakeAll but wakes every eligible waiter
// through wake instead of its own Wake method. It reports how many
// waiters were woken; ineligible waiters remain queued.
func (q *BlockQueue[W]) WakeAllWith(wake func(W)) int {
	kept := q.waiters[:0]
	woken := 0
	for _, e := range q.waiters {
		if eligible(e) {
			wake(e.w)
			woken++
		} else {
			kept = append(kept, e)
		}
	}
	q.waiters = kept
	return woken
}

// Remove drops a specific waiter from the queue without waking it, used
// when a wait is cancelled before it is ever woken.
func (q *BlockQueue[W]) Remove(w W) bool {
	for i, e := range q.waiters {
		if e.w.TaskID() == w.TaskID() {
			q.removeAt(i)
			return true
		}
	}
	return false
}
