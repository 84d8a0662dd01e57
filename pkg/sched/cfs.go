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

import "github.com/google/btree"

// niceToWeight mirrors the Linux CFS sched_prio_to_weight table: index 0
// is nice -20 (heaviest), index 39 is nice +19 (lightest). CFS spends
// vruntime inversely proportional to a task's weight, so a nice -20
// task accrues vruntime roughly 5,900 times slower than a nice +19 one.
var niceToWeight = [40]uint64{
	88761, 71755, 56483, 46273, 36291,
	29154, 23254, 18705, 14949, 11916,
	9548, 7620, 6100, 4904, 3906,
	3121, 2501, 1991, 1586, 1277,
	1024, 820, 655, 526, 423,
	335, 272, 215, 172, 137,
	110, 87, 70, 56, 45,
	36, 29, 23, 18, 15,
}

const niceZeroLoad = 1024

func weightForNice(nice int) uint64 {
	idx := nice + 20
	if idx < 0 {
		idx = 0
	}
	if idx > 39 {
		idx = 39
	}
	return niceToWeight[idx]
}

type cfsEntry[T Identifiable] struct {
	vruntime uint64
	seq      uint64
	task     T
}

func (e *cfsEntry[T]) Less(other btree.Item) bool {
	o := other.(*cfsEntry[T])
	if e.vruntime != o.vruntime {
		return e.vruntime < o.vruntime
	}
	return e.seq < o.seq
}

// CFS is a simplified Completely Fair Scheduler policy: a vruntime-
// ordered tree (google/btree standing in for the kernel's red-black
// tree) always yields the task with the least accumulated vruntime,
// per spec.md §4.4.
type CFS[T Identifiable] struct {
	tree       *btree.BTree
	byID       map[uint64]*cfsEntry[T]
	nice       map[uint64]int
	running    map[uint64]uint64
	minVrt     uint64
	nextSeq    uint64
}

// NewCFS returns an initialized CFS policy.
func NewCFS[T Identifiable]() *CFS[T] {
	c := &CFS[T]{}
	c.Init()
	return c
}

func (c *CFS[T]) Init() {
	c.tree = btree.New(32)
	c.byID = make(map[uint64]*cfsEntry[T])
	c.nice = make(map[uint64]int)
	c.running = make(map[uint64]uint64)
	c.minVrt = 0
	c.nextSeq = 0
}

func (c *CFS[T]) Add(t T) {
	vrt := c.minVrt
	if v, ok := c.running[t.TaskID()]; ok {
		vrt = v
		delete(c.running, t.TaskID())
	}
	e := &cfsEntry[T]{vruntime: vrt, seq: c.nextSeq, task: t}
	c.nextSeq++
	c.byID[t.TaskID()] = e
	c.tree.ReplaceOrInsert(e)
}

func (c *CFS[T]) PickNext() (T, bool) {
	var zero T
	item := c.tree.Min()
	if item == nil {
		return zero, false
	}
	e := item.(*cfsEntry[T])
	c.tree.Delete(e)
	delete(c.byID, e.task.TaskID())
	c.minVrt = e.vruntime
	return e.task, true
}

func (c *CFS[T]) HighestPriorityHint() uint8 {
	item := c.tree.Min()
	if item == nil {
		return NoPriority
	}
	return 0
}

// TickCurrent charges the running task's vruntime for one tick,
// weighted by its niceness (the charge is 1024/weight, at least 1),
// and requests rescheduling once the running task's vruntime exceeds
// the smallest vruntime still queued. With an empty queue it never
// requests rescheduling.
func (c *CFS[T]) TickCurrent(t T) bool {
	weight := weightForNice(c.nice[t.TaskID()])
	delta := niceZeroLoad / weight
	if delta == 0 {
		delta = 1
	}
	id := t.TaskID()
	v, ok := c.running[id]
	if !ok {
		v = c.minVrt
	}
	v += delta
	c.running[id] = v
	return v > c.queueMin()
}

func (c *CFS[T]) queueMin() uint64 {
	item := c.tree.Min()
	if item == nil {
		return ^uint64(0)
	}
	return item.(*cfsEntry[T]).vruntime
}

// SetPriority treats priority as a Linux-style nice value in [-20, 19].
func (c *CFS[T]) SetPriority(t T, priority int) bool {
	if priority < -20 || priority > 19 {
		return false
	}
	c.nice[t.TaskID()] = priority
	return true
}

func (c *CFS[T]) Remove(t T) {
	if e, ok := c.byID[t.TaskID()]; ok {
		c.tree.Delete(e)
		delete(c.byID, t.TaskID())
	}
	delete(c.running, t.TaskID())
}
