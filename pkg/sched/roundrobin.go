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

// DefaultTimeSlice is the number of timer ticks a round-robin task
// receives before TickCurrent requests it be rescheduled.
const DefaultTimeSlice = 5

// RoundRobin cycles through ready tasks giving each a fixed slice of
// timer ticks, per spec.md §4.4. It has no priority concept; every
// task shares one FIFO ring.
type RoundRobin[T Identifiable] struct {
	ring      []T
	slice     int
	remaining int
}

// NewRoundRobin returns an initialized RoundRobin policy with the
// default time slice.
func NewRoundRobin[T Identifiable]() *RoundRobin[T] {
	r := &RoundRobin[T]{}
	r.Init()
	return r
}

func (r *RoundRobin[T]) Init() {
	r.ring = nil
	r.slice = DefaultTimeSlice
}

func (r *RoundRobin[T]) Add(t T) { r.ring = append(r.ring, t) }

func (r *RoundRobin[T]) PickNext() (T, bool) {
	var zero T
	if len(r.ring) == 0 {
		return zero, false
	}
	t := r.ring[0]
	r.ring = r.ring[1:]
	r.remaining = r.slice
	return t, true
}

func (r *RoundRobin[T]) HighestPriorityHint() uint8 {
	if len(r.ring) == 0 {
		return NoPriority
	}
	return 0
}

// TickCurrent decrements the running task's remaining slice, reporting
// true (reschedule requested) once it is exhausted. The slice resets
// for whichever task PickNext hands out next.
func (r *RoundRobin[T]) TickCurrent(T) bool {
	if r.remaining <= 0 {
		return true
	}
	r.remaining--
	return r.remaining <= 0
}

// SetPriority is unsupported; round robin treats all tasks equally.
func (r *RoundRobin[T]) SetPriority(T, int) bool { return false }

func (r *RoundRobin[T]) Remove(t T) {
	for i, q := range r.ring {
		if q.TaskID() == t.TaskID() {
			r.ring = append(r.ring[:i], r.ring[i+1:]...)
			return
		}
	}
}
