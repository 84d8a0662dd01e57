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

// Package sched implements the pluggable scheduler policies and the
// block-queue wakeup machinery described in spec.md §4.4-§4.5. It is
// parametric over the task type the way the Rust original's
// Scheduler<T>/BlockQueue<T> were, so it carries no dependency on the
// concrete Task type defined by package kernel.
package sched

import "fmt"

// NoPriority is the sentinel HighestPriorityHint reports for an empty
// queue. Lower numeric values mean higher priority, so the sentinel
// always loses priority comparisons against any real queued task.
const NoPriority uint8 = 255

// Identifiable is the minimum a task type must support to be scheduled:
// a stable identity used for removal and de-duplication.
type Identifiable interface {
	TaskID() uint64
}

// Policy is a pluggable scheduling algorithm for a single ready queue
// (either a Processor's local queue or the shared global queue).
// Implementations must be safe for concurrent use only to the extent
// their caller serializes access; the two-tier scheduler in package
// kernel holds the local policy exclusively and the global one behind a
// lock, per spec.md §4.5.
type Policy[T Identifiable] interface {
	// Init prepares the policy for use. Called once before any Add.
	Init()
	// Add enqueues a task that is not currently present in any queue.
	Add(t T)
	// PickNext removes and returns the highest-priority task, or the
	// zero value and false if the queue is empty.
	PickNext() (T, bool)
	// HighestPriorityHint reports the priority of the best task
	// currently queued, or NoPriority if empty. Lower is better.
	HighestPriorityHint() uint8
	// TickCurrent accounts one timer tick against the currently running
	// task (which is not itself queued) and reports whether its slice
	// has expired and it should be rescheduled.
	TickCurrent(t T) bool
	// SetPriority changes a task's priority metadata. It reports
	// whether the requested priority was accepted.
	SetPriority(t T, priority int) bool
	// Remove drops a task from the queue if present, used when a task
	// must be pulled out of a ready queue it was mistakenly added to.
	Remove(t T)
}

// InvalidPriorityError is returned by package kernel's
// SpawnToLocalWithPriority, SpawnToGlobalWithPriority and ChangePriority
// when a policy rejects the requested priority.
// It is the only error variant this runtime's scheduling API returns;
// everything else is either a panic (contract violation) or silent
// (tolerated race), per spec.md §7.
type InvalidPriorityError struct {
	Priority int
}

func (e *InvalidPriorityError) Error() string {
	return fmt.Sprintf("sched: invalid priority %d", e.Priority)
}
